package handler

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/suittrip/backend/internal/application/auth"
	"github.com/suittrip/backend/internal/config"
	"github.com/suittrip/backend/internal/domain"
	jwtinfra "github.com/suittrip/backend/internal/infrastructure/jwt"
	"github.com/suittrip/backend/internal/ratelimit"
	"github.com/suittrip/backend/internal/transport/http/middleware"
)

// --- mock ---

type mockAuthSvc struct{ mock.Mock }

func (m *mockAuthSvc) RequestCode(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *mockAuthSvc) ConfirmCode(ctx context.Context, email, codeStr string) error {
	return m.Called(ctx, email, codeStr).Error(0)
}

func (m *mockAuthSvc) Register(ctx context.Context, req auth.RegisterRequest) (*domain.Store, error) {
	args := m.Called(ctx, req)
	if s, _ := args.Get(0).(*domain.Store); s != nil {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthSvc) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResult, error) {
	args := m.Called(ctx, req)
	if r, _ := args.Get(0).(*auth.LoginResult); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthSvc) Refresh(ctx context.Context, refreshToken string) (*auth.LoginResult, error) {
	args := m.Called(ctx, refreshToken)
	if r, _ := args.Get(0).(*auth.LoginResult); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthSvc) Logout(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

// --- helpers ---

// newTestJWTProvider generates a fresh RSA key pair and returns a *jwtinfra.Provider.
func newTestJWTProvider(t *testing.T) *jwtinfra.Provider {
	t.Helper()
	privKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	dir := t.TempDir()
	privPath := filepath.Join(dir, "private.pem")
	pubPath := filepath.Join(dir, "public.pem")

	privPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(privKey)})
	require.NoError(t, os.WriteFile(privPath, privPEM, 0600))

	pubBytes, err := x509.MarshalPKIXPublicKey(&privKey.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubBytes})
	require.NoError(t, os.WriteFile(pubPath, pubPEM, 0600))

	p, err := jwtinfra.NewProvider(&config.Config{
		JWTPrivateKeyPath: privPath,
		JWTPublicKeyPath:  pubPath,
		JWTExpiry:         24 * time.Hour,
	})
	require.NoError(t, err)
	return p
}

func postJSON(target string, payload interface{}) *http.Request {
	body, _ := json.Marshal(payload)
	r := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func decodeErrorEnvelope(t *testing.T, rr *httptest.ResponseRecorder) ErrorEnvelope {
	t.Helper()
	var env ErrorEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	assert.False(t, env.Success)
	return env
}

// --- SendVerification tests ---

func TestSendVerification_InvalidBody(t *testing.T) {
	svc := &mockAuthSvc{}
	h := NewAuthHandler(svc, 3*time.Minute)
	r := httptest.NewRequest(http.MethodPost, "/api/auth/email/send-verification", bytes.NewBufferString("not-json"))
	rr := httptest.NewRecorder()
	h.SendVerification(rr, r)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSendVerification_MissingEmail(t *testing.T) {
	svc := &mockAuthSvc{}
	h := NewAuthHandler(svc, 3*time.Minute)
	rr := httptest.NewRecorder()
	h.SendVerification(rr, postJSON("/api/auth/email/send-verification", map[string]string{}))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	env := decodeErrorEnvelope(t, rr)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Equal(t, "email", env.Error.Details["field"])
}

func TestSendVerification_AlreadyRegistered(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("RequestCode", mock.Anything, "owner@example.com").Return(domain.ErrConflict)
	h := NewAuthHandler(svc, 3*time.Minute)
	rr := httptest.NewRecorder()
	h.SendVerification(rr, postJSON("/api/auth/email/send-verification", map[string]string{"email": "owner@example.com"}))

	// The client treats a taken email as a form error, so 400 rather than 409.
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	env := decodeErrorEnvelope(t, rr)
	assert.Equal(t, "EMAIL_ALREADY_EXISTS", env.Error.Code)
	svc.AssertExpectations(t)
}

func TestSendVerification_MailFailureKeepsCode(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("RequestCode", mock.Anything, "owner@example.com").Return(domain.ErrEmailSend)
	h := NewAuthHandler(svc, 3*time.Minute)
	rr := httptest.NewRecorder()
	h.SendVerification(rr, postJSON("/api/auth/email/send-verification", map[string]string{"email": "owner@example.com"}))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	env := decodeErrorEnvelope(t, rr)
	assert.Equal(t, "EMAIL_SEND_ERROR", env.Error.Code)
	svc.AssertExpectations(t)
}

func TestSendVerification_HappyPath(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("RequestCode", mock.Anything, "owner@example.com").Return(nil)
	h := NewAuthHandler(svc, 3*time.Minute)
	rr := httptest.NewRecorder()
	h.SendVerification(rr, postJSON("/api/auth/email/send-verification", map[string]string{"email": "owner@example.com"}))

	assert.Equal(t, http.StatusOK, rr.Code)
	var env SuccessEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	assert.True(t, env.Success)
	svc.AssertExpectations(t)
}

// TestSendVerification_RateLimited drives the endpoint through the fixed
// window limiter the router mounts on it: the second send for the same email
// inside the window gets a 429, a different email still passes.
func TestSendVerification_RateLimited(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("RequestCode", mock.Anything, mock.Anything).Return(nil)
	h := NewAuthHandler(svc, 3*time.Minute)

	limiter := middleware.NewEmailLimiter(ratelimit.NewWindowStore(time.Minute), time.Minute, 1)
	mux := chi.NewRouter()
	mux.With(limiter.Limit).Post("/api/auth/email/send-verification", h.SendVerification)

	send := func(email string) *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, postJSON("/api/auth/email/send-verification", map[string]string{"email": email}))
		return rr
	}

	assert.Equal(t, http.StatusOK, send("a@example.com").Code)

	blocked := send("a@example.com")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	env := decodeErrorEnvelope(t, blocked)
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", env.Error.Code)

	// Window is keyed per email, not per connection.
	assert.Equal(t, http.StatusOK, send("b@example.com").Code)
}

// --- VerifyCode tests ---

func TestVerifyCode_MissingFields(t *testing.T) {
	svc := &mockAuthSvc{}
	h := NewAuthHandler(svc, 3*time.Minute)
	rr := httptest.NewRecorder()
	h.VerifyCode(rr, postJSON("/api/auth/email/verify-code", map[string]string{"email": "a@example.com"}))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	env := decodeErrorEnvelope(t, rr)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestVerifyCode_FailureReasons(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		reason string
	}{
		{"no code issued", domain.ErrCodeNotFound, "not_found"},
		{"already used", domain.ErrCodeUsed, "already_used"},
		{"attempts exceeded", domain.ErrTooManyAttempts, "too_many_attempts"},
		{"expired", domain.ErrCodeExpired, "expired"},
		{"wrong code", domain.ErrCodeMismatch, "mismatch"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockAuthSvc{}
			svc.On("ConfirmCode", mock.Anything, "a@example.com", "123456").Return(tc.err)
			h := NewAuthHandler(svc, 3*time.Minute)
			rr := httptest.NewRecorder()
			h.VerifyCode(rr, postJSON("/api/auth/email/verify-code",
				map[string]string{"email": "a@example.com", "code": "123456"}))

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			env := decodeErrorEnvelope(t, rr)
			assert.Equal(t, "VERIFICATION_FAILED", env.Error.Code)
			assert.Equal(t, tc.reason, env.Error.Details["reason"])
			svc.AssertExpectations(t)
		})
	}
}

func TestVerifyCode_HappyPath(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("ConfirmCode", mock.Anything, "a@example.com", "123456").Return(nil)
	h := NewAuthHandler(svc, 3*time.Minute)
	rr := httptest.NewRecorder()
	h.VerifyCode(rr, postJSON("/api/auth/email/verify-code",
		map[string]string{"email": "a@example.com", "code": "123456"}))

	assert.Equal(t, http.StatusOK, rr.Code)
	var env SuccessEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	data := env.Data.(map[string]interface{})
	assert.Equal(t, true, data["verified"])
	svc.AssertExpectations(t)
}

// --- Register tests ---

func TestRegister_EmailNotVerified(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("Register", mock.Anything, mock.Anything).Return(nil, domain.ErrEmailNotVerified)
	h := NewAuthHandler(svc, 3*time.Minute)
	rr := httptest.NewRecorder()
	h.Register(rr, postJSON("/api/auth/register", auth.RegisterRequest{
		Email: "a@example.com", Password: "secret123", Name: "수트트립 명동점",
	}))

	assert.Equal(t, http.StatusForbidden, rr.Code)
	env := decodeErrorEnvelope(t, rr)
	assert.Equal(t, "EMAIL_NOT_VERIFIED", env.Error.Code)
	svc.AssertExpectations(t)
}

func TestRegister_HappyPath(t *testing.T) {
	svc := &mockAuthSvc{}
	created := &domain.Store{StoreID: "st1", Email: "a@example.com", Name: "수트트립 명동점"}
	svc.On("Register", mock.Anything, mock.Anything).Return(created, nil)
	h := NewAuthHandler(svc, 3*time.Minute)
	rr := httptest.NewRecorder()
	h.Register(rr, postJSON("/api/auth/register", auth.RegisterRequest{
		Email: "a@example.com", Password: "secret123", Name: "수트트립 명동점",
		OwnerName: "김사장", Phone: "010-1234-5678", BusinessNumber: "123-45-67890",
		Address: "서울 중구 명동길 26",
	}))

	assert.Equal(t, http.StatusCreated, rr.Code)
	svc.AssertExpectations(t)
}

// --- Login / Logout tests ---

func TestLogin_BadCredentials(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("Login", mock.Anything, mock.Anything).Return(nil, domain.ErrUnauthorized)
	h := NewAuthHandler(svc, 3*time.Minute)
	rr := httptest.NewRecorder()
	h.Login(rr, postJSON("/api/auth/login", auth.LoginRequest{Email: "a@example.com", Password: "wrong"}))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	svc.AssertExpectations(t)
}

func TestLogin_HappyPath(t *testing.T) {
	svc := &mockAuthSvc{}
	result := &auth.LoginResult{
		Bearer:       "access-token",
		RefreshToken: "refresh-token",
		Session: &domain.Session{
			SessionID: "sess1",
			StoreID:   "st1",
			Store:     &domain.Store{StoreID: "st1", Email: "a@example.com"},
		},
	}
	svc.On("Login", mock.Anything, mock.Anything).Return(result, nil)
	h := NewAuthHandler(svc, 3*time.Minute)
	rr := httptest.NewRecorder()
	h.Login(rr, postJSON("/api/auth/login", auth.LoginRequest{Email: "a@example.com", Password: "secret123"}))

	assert.Equal(t, http.StatusOK, rr.Code)
	var env SuccessEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	data := env.Data.(map[string]interface{})
	assert.Equal(t, "access-token", data["accessToken"])
	svc.AssertExpectations(t)
}

func TestLogout_HappyPath(t *testing.T) {
	p := newTestJWTProvider(t)
	svc := &mockAuthSvc{}
	svc.On("Logout", mock.Anything, "sess1").Return(nil)
	h := NewAuthHandler(svc, 3*time.Minute)

	token, err := p.Sign("st1", "a@example.com", "sess1")
	require.NoError(t, err)
	r := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	middleware.Auth(p)(http.HandlerFunc(h.Logout)).ServeHTTP(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}

func TestLogout_MissingClaims(t *testing.T) {
	svc := &mockAuthSvc{}
	h := NewAuthHandler(svc, 3*time.Minute)
	rr := httptest.NewRecorder()
	h.Logout(rr, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
