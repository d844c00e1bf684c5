package handler

import (
	"net/http"
	"time"

	"github.com/suittrip/backend/internal/application/auth"
	"github.com/suittrip/backend/internal/domain"
	"github.com/suittrip/backend/internal/transport/http/middleware"
)

// AuthHandler serves the /api/auth routes: email verification, registration
// and the session lifecycle.
type AuthHandler struct {
	svc     auth.Service
	codeTTL time.Duration
}

func NewAuthHandler(svc auth.Service, codeTTL time.Duration) *AuthHandler {
	return &AuthHandler{svc: svc, codeTTL: codeTTL}
}

type sendVerificationRequest struct {
	Email string `json:"email"`
}

func (h *AuthHandler) SendVerification(w http.ResponseWriter, r *http.Request) {
	var req sendVerificationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "이메일이 필요합니다",
			map[string]interface{}{"field": "email"})
		return
	}
	if err := h.svc.RequestCode(r.Context(), req.Email); err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]interface{}{
		"email":     req.Email,
		"expiresIn": int(h.codeTTL.Seconds()),
	}, "인증 코드가 이메일로 발송되었습니다")
}

type verifyCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (h *AuthHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req verifyCodeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Code == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "이메일과 인증 코드가 필요합니다",
			map[string]interface{}{"required": []string{"email", "code"}})
		return
	}
	if err := h.svc.ConfirmCode(r.Context(), req.Email, req.Code); err != nil {
		writeVerifyError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]interface{}{
		"email":    req.Email,
		"verified": true,
	}, "이메일 인증이 완료되었습니다")
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	store, err := h.svc.Register(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, store, "회원가입이 완료되었습니다")
}

type loginResponse struct {
	AccessToken  string          `json:"accessToken"`
	RefreshToken string          `json:"refreshToken"`
	Store        *domain.Store   `json:"store"`
	Session      *domain.Session `json:"session"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.Login(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, loginResponse{
		AccessToken:  result.Bearer,
		RefreshToken: result.RefreshToken,
		Store:        result.Session.Store,
		Session:      result.Session,
	}, "")
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.RefreshToken == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "refreshToken이 필요합니다", nil)
		return
	}
	result, err := h.svc.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, loginResponse{
		AccessToken:  result.Bearer,
		RefreshToken: result.RefreshToken,
		Store:        result.Session.Store,
		Session:      result.Session,
	}, "")
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing claims", nil)
		return
	}
	if err := h.svc.Logout(r.Context(), claims.SessionID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, nil, "로그아웃되었습니다")
}
