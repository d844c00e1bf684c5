package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suittrip/backend/internal/ratelimit"
)

func emailLimitHandler(window time.Duration, max int) (http.Handler, *ratelimit.WindowStore) {
	store := ratelimit.NewWindowStore(window)
	el := NewEmailLimiter(store, window, max)
	h := el.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The handler must still see the body the limiter consumed.
		body, _ := io.ReadAll(r.Body)
		w.Write(body)
	}))
	return h, store
}

func sendVerification(h http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/email/send-verification", strings.NewReader(body))
	req.RemoteAddr = "203.0.113.5:4321"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestEmailLimiter_FirstRequestPasses_SecondBlocked(t *testing.T) {
	h, _ := emailLimitHandler(time.Minute, 1)

	rec := sendVerification(h, `{"email":"a@b.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"email":"a@b.com"}`, rec.Body.String())

	rec = sendVerification(h, `{"email":"a@b.com"}`)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	var resp struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string `json:"code"`
			Details struct {
				RetryAfter int   `json:"retryAfter"`
				WindowMs   int64 `json:"windowMs"`
			} `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", resp.Error.Code)
	assert.Equal(t, 60, resp.Error.Details.RetryAfter)
	assert.Equal(t, int64(60000), resp.Error.Details.WindowMs)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
}

func TestEmailLimiter_DifferentEmailsIndependent(t *testing.T) {
	h, _ := emailLimitHandler(time.Minute, 1)

	require.Equal(t, http.StatusOK, sendVerification(h, `{"email":"a@b.com"}`).Code)
	require.Equal(t, http.StatusOK, sendVerification(h, `{"email":"c@d.com"}`).Code)
	require.Equal(t, http.StatusTooManyRequests, sendVerification(h, `{"email":"a@b.com"}`).Code)
}

func TestEmailLimiter_NoEmailFallsBackToIP(t *testing.T) {
	h, _ := emailLimitHandler(time.Minute, 1)

	require.Equal(t, http.StatusOK, sendVerification(h, `{}`).Code)
	// Same IP, still no email: second request shares the key.
	require.Equal(t, http.StatusTooManyRequests, sendVerification(h, `not json`).Code)
}

func TestEmailLimiter_WindowRollover(t *testing.T) {
	h, store := emailLimitHandler(time.Minute, 1)

	require.Equal(t, http.StatusOK, sendVerification(h, `{"email":"a@b.com"}`).Code)
	store.Backdate("a@b.com", 2*time.Minute)
	require.Equal(t, http.StatusOK, sendVerification(h, `{"email":"a@b.com"}`).Code)
}

func TestEmailLimiter_ResetKeyUnblocks(t *testing.T) {
	h, store := emailLimitHandler(time.Minute, 1)

	require.Equal(t, http.StatusOK, sendVerification(h, `{"email":"a@b.com"}`).Code)
	require.Equal(t, http.StatusTooManyRequests, sendVerification(h, `{"email":"a@b.com"}`).Code)
	store.ResetKey("a@b.com")
	require.Equal(t, http.StatusOK, sendVerification(h, `{"email":"a@b.com"}`).Code)
}

func TestEmailLimiter_RateLimitHeaders(t *testing.T) {
	h, _ := emailLimitHandler(time.Minute, 1)

	rec := sendVerification(h, `{"email":"a@b.com"}`)
	assert.Equal(t, "1", rec.Header().Get("RateLimit-Limit"))
	assert.Equal(t, "0", rec.Header().Get("RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("RateLimit-Reset"))
}
