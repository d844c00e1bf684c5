package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/suittrip/backend/internal/ratelimit"
)

const maxEmailLimitBody = 1 << 20 // 1 MiB

// EmailLimiter throttles the send-verification endpoint per email address: by
// default one request per minute. Requests without a parseable email fall back
// to the client IP so an empty body cannot bypass the limit.
type EmailLimiter struct {
	store  *ratelimit.WindowStore
	window time.Duration
	max    int
}

func NewEmailLimiter(store *ratelimit.WindowStore, window time.Duration, max int) *EmailLimiter {
	return &EmailLimiter{store: store, window: window, max: max}
}

// Limit reads the request body to extract the email key, then restores the
// body for the handler.
func (el *EmailLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxEmailLimitBody))
		if err != nil {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "could not read request body", nil)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		hits, resetTime := el.store.Increment(el.key(r, body))
		windowSecs := int(el.window.Seconds())
		w.Header().Set("RateLimit-Limit", strconv.Itoa(el.max))
		remaining := el.max - hits
		if remaining < 0 {
			remaining = 0
		}
		w.Header().Set("RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if hits > el.max {
			retryAfter := windowSecs
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			writeError(w, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED",
				fmt.Sprintf("인증 코드는 %d초에 1회만 요청할 수 있습니다. %d초 후에 다시 시도해주세요.", windowSecs, retryAfter),
				map[string]interface{}{
					"retryAfter": retryAfter,
					"windowMs":   el.window.Milliseconds(),
				})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (el *EmailLimiter) key(r *http.Request, body []byte) string {
	var payload struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Email != "" {
		return payload.Email
	}
	if ip := realIP(r); ip != "" {
		return ip
	}
	return "unknown"
}
