package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/suittrip/backend/internal/domain"
	"github.com/suittrip/backend/internal/transport/http/middleware"
)

// SuccessEnvelope is the wrapper every 2xx response uses.
type SuccessEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Message string      `json:"message,omitempty"`
}

// ErrorBody carries the machine-readable error code plus a human message.
type ErrorBody struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Timestamp string                 `json:"timestamp"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// ErrorEnvelope is the wrapper every error response uses.
type ErrorEnvelope struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

func writeSuccess(w http.ResponseWriter, status int, data interface{}, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(SuccessEnvelope{
		Success: true,
		Data:    data,
		Message: message,
	})
}

func writeError(w http.ResponseWriter, status int, code, message string, details map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorEnvelope{
		Success: false,
		Error: ErrorBody{
			Code:      code,
			Message:   message,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Details:   details,
		},
	})
}

// writeDomainError maps service-layer sentinels onto HTTP status codes and
// the API's error codes. Anything unrecognized becomes a DATABASE_ERROR 500
// without leaking internals.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrStorageOccupied):
		writeError(w, http.StatusConflict, "STORAGE_OCCUPIED", "보관함이 사용 중입니다", nil)
	case errors.Is(err, domain.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "INVALID_STATUS", err.Error(), nil)
	case errors.Is(err, domain.ErrResponseExists):
		writeError(w, http.StatusConflict, "RESPONSE_ALREADY_EXISTS", "이미 답글이 등록된 리뷰입니다", nil)
	case errors.Is(err, domain.ErrResponseNotFound):
		writeError(w, http.StatusNotFound, "RESPONSE_NOT_FOUND", "등록된 답글이 없습니다", nil)
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
	case errors.Is(err, domain.ErrConflict):
		// 400, not 409: the mobile client treats EMAIL_ALREADY_EXISTS as a
		// form validation failure.
		writeError(w, http.StatusBadRequest, "EMAIL_ALREADY_EXISTS", err.Error(), nil)
	case errors.Is(err, domain.ErrEmailNotVerified):
		writeError(w, http.StatusForbidden, "EMAIL_NOT_VERIFIED", err.Error(), nil)
	case errors.Is(err, domain.ErrEmailSend):
		writeError(w, http.StatusInternalServerError, "EMAIL_SEND_ERROR", "이메일 발송에 실패했습니다", nil)
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", err.Error(), nil)
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "FORBIDDEN", err.Error(), nil)
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	default:
		writeError(w, http.StatusInternalServerError, "DATABASE_ERROR", "요청을 처리하지 못했습니다", nil)
	}
}

// writeVerifyError maps the verification failure kinds. They all share one
// error code; details.reason lets the client branch without string matching.
func writeVerifyError(w http.ResponseWriter, err error) {
	reason := ""
	message := ""
	switch {
	case errors.Is(err, domain.ErrCodeNotFound):
		reason, message = "not_found", "발송된 인증 코드가 없습니다. 먼저 인증 코드를 요청해주세요."
	case errors.Is(err, domain.ErrCodeUsed):
		reason, message = "already_used", "이미 사용된 인증 코드입니다. 새 코드를 요청해주세요."
	case errors.Is(err, domain.ErrTooManyAttempts):
		reason, message = "too_many_attempts", "인증 시도 횟수를 초과했습니다. 새 코드를 요청해주세요."
	case errors.Is(err, domain.ErrCodeExpired):
		reason, message = "expired", "인증 코드가 만료되었습니다. 새 코드를 요청해주세요."
	case errors.Is(err, domain.ErrCodeMismatch):
		reason, message = "mismatch", "인증 코드가 일치하지 않습니다."
	default:
		writeDomainError(w, err)
		return
	}
	writeError(w, http.StatusBadRequest, "VERIFICATION_FAILED", message,
		map[string]interface{}{"reason": reason})
}

// storeID pulls the authenticated store from the JWT claims. Returns false
// (after writing the error) when the auth middleware did not run.
func storeID(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing claims", nil)
		return "", false
	}
	return claims.StoreID, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid JSON body", nil)
		return false
	}
	return true
}

// Pagination describes the slice of a list a response carries.
type Pagination struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}

// paginate slices items according to the request's page/limit query params
// (defaults 1/20, limit capped at 100).
func paginate[T any](r *http.Request, items []T) ([]T, Pagination) {
	page := 1
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	limit := 20
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}

	total := len(items)
	totalPages := (total + limit - 1) / limit
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	paged := items[start:end]
	if paged == nil {
		paged = []T{}
	}
	return paged, Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalItems:   total,
		ItemsPerPage: limit,
	}
}

// writePage wraps a paginated list in the success envelope with the list
// under "items".
func writePage[T any](w http.ResponseWriter, r *http.Request, items []T) {
	paged, pg := paginate(r, items)
	writeSuccess(w, http.StatusOK, map[string]interface{}{
		"items":      paged,
		"pagination": pg,
	}, "")
}
