// Package auth covers the store account lifecycle: email verification before
// signup, registration, login, token refresh and logout.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/suittrip/backend/internal/application/verification"
	"github.com/suittrip/backend/internal/domain"
	"github.com/suittrip/backend/internal/pkg/code"
	"github.com/suittrip/backend/internal/pkg/id"
	pkgtoken "github.com/suittrip/backend/internal/pkg/token"
	"github.com/suittrip/backend/internal/pkg/validate"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8"`
	Name           string `json:"name" validate:"required"`
	OwnerName      string `json:"ownerName" validate:"required"`
	Phone          string `json:"phone" validate:"required"`
	BusinessNumber string `json:"businessNumber" validate:"required"`
	Address        string `json:"address" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult bundles the tokens and session handed back after login/refresh.
type LoginResult struct {
	Bearer       string
	RefreshToken string
	Session      *domain.Session
}

type StoreAccounts interface {
	Put(ctx context.Context, s *domain.Store) error
	Get(ctx context.Context, storeID string) (*domain.Store, error)
	GetByEmail(ctx context.Context, email string) (*domain.Store, error)
}

type Sessions interface {
	Put(ctx context.Context, s *domain.Session) error
	GetByRefreshToken(ctx context.Context, token string) (*domain.Session, error)
	Update(ctx context.Context, sessionID string, updates map[string]interface{}) error
	SoftDeleteByStore(ctx context.Context, storeID string) error
}

type Mailer interface {
	SendEmail(to, subject, body string) error
}

type JWTSigner interface {
	Sign(storeID, email, sessionID string) (string, error)
}

type Service interface {
	// RequestCode issues a verification code to email and delivers it. The
	// code stays saved even when delivery fails, so a retried or delayed
	// mail can still be redeemed.
	RequestCode(ctx context.Context, email string) error
	// ConfirmCode redeems a previously issued code.
	ConfirmCode(ctx context.Context, email, codeStr string) error
	Register(ctx context.Context, req RegisterRequest) (*domain.Store, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
}

type ServiceDeps struct {
	StoreRepo       StoreAccounts
	SessionRepo     Sessions
	Verification    verification.Service
	Mailer          Mailer
	JWTProvider     JWTSigner
	CodeLength      int
	RefreshTokenDur time.Duration
}

type service struct {
	storeRepo       StoreAccounts
	sessionRepo     Sessions
	verification    verification.Service
	mailer          Mailer
	jwtProvider     JWTSigner
	codeLength      int
	refreshTokenDur time.Duration
}

func NewService(deps ServiceDeps) Service {
	return &service{
		storeRepo:       deps.StoreRepo,
		sessionRepo:     deps.SessionRepo,
		verification:    deps.Verification,
		mailer:          deps.Mailer,
		jwtProvider:     deps.JWTProvider,
		codeLength:      deps.CodeLength,
		refreshTokenDur: deps.RefreshTokenDur,
	}
}

func (s *service) RequestCode(ctx context.Context, email string) error {
	if !validate.Email(email) {
		return fmt.Errorf("invalid email format: %w", domain.ErrBadRequest)
	}
	if _, err := s.storeRepo.GetByEmail(ctx, email); err == nil {
		return fmt.Errorf("email already registered: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("check existing account: %w", err)
	}

	codeStr := code.Generate(s.codeLength)
	if err := s.verification.SaveCode(ctx, email, codeStr); err != nil {
		return err
	}

	body := fmt.Sprintf(`Suittrip 이메일 인증 코드

안녕하세요,
Suittrip 회원가입을 위한 이메일 인증 코드입니다.

인증 코드: %s

이 코드는 3분 내에만 유효합니다.
5회 이상 잘못된 코드 입력 시 새로운 코드를 요청해야 합니다.
요청하지 않으셨다면 이 이메일을 무시하셔도 됩니다.`, codeStr)

	if err := s.mailer.SendEmail(email, "[Suittrip] 이메일 인증 코드", body); err != nil {
		slog.Error("verification email delivery failed", "email", email, "err", err)
		return fmt.Errorf("%w: %v", domain.ErrEmailSend, err)
	}
	return nil
}

func (s *service) ConfirmCode(ctx context.Context, email, codeStr string) error {
	if !validate.Email(email) {
		return fmt.Errorf("invalid email format: %w", domain.ErrBadRequest)
	}
	return s.verification.VerifyCode(ctx, email, codeStr)
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*domain.Store, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	if !s.verification.IsEmailVerified(ctx, req.Email) {
		return nil, fmt.Errorf("complete email verification first: %w", domain.ErrEmailNotVerified)
	}
	if _, err := s.storeRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check existing account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	store := &domain.Store{
		StoreID:        id.New(),
		Email:          req.Email,
		PasswordHash:   string(hash),
		Name:           req.Name,
		OwnerName:      req.OwnerName,
		Phone:          req.Phone,
		BusinessNumber: req.BusinessNumber,
		Address:        req.Address,
		Status:         domain.StoreStatusPreparing,
		Settings: domain.Settings{
			OpenTime:            "09:00",
			CloseTime:           "22:00",
			NotifyOnReservation: true,
		},
		Enable:    1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.storeRepo.Put(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	store, err := s.storeRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if store.Enable == 0 {
		return nil, fmt.Errorf("account disabled: %w", domain.ErrUnauthorized)
	}
	if bcrypt.CompareHashAndPassword([]byte(store.PasswordHash), []byte(req.Password)) != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}

	// One live session per store: stale sessions get disabled on each login.
	if err := s.sessionRepo.SoftDeleteByStore(ctx, store.StoreID); err != nil {
		slog.Warn("could not disable previous sessions", "store_id", store.StoreID, "err", err)
	}

	return s.openSession(ctx, store)
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	sess, err := s.sessionRepo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", domain.ErrUnauthorized)
	}
	if !sess.Enable {
		return nil, fmt.Errorf("session revoked: %w", domain.ErrUnauthorized)
	}
	if sess.RefreshExpiresAt < time.Now().Unix() {
		return nil, fmt.Errorf("refresh token expired: %w", domain.ErrUnauthorized)
	}
	store, err := s.storeRepo.Get(ctx, sess.StoreID)
	if err != nil {
		return nil, fmt.Errorf("account not found: %w", domain.ErrUnauthorized)
	}

	newToken, err := pkgtoken.NewRefreshToken()
	if err != nil {
		return nil, err
	}
	newExpiry := time.Now().Add(s.refreshTokenDur).Unix()
	if err := s.sessionRepo.Update(ctx, sess.SessionID, map[string]interface{}{
		"refresh_token":      newToken,
		"refresh_expires_at": newExpiry,
	}); err != nil {
		return nil, err
	}

	bearer, err := s.jwtProvider.Sign(store.StoreID, store.Email, sess.SessionID)
	if err != nil {
		return nil, err
	}
	sess.RefreshToken = newToken
	sess.RefreshExpiresAt = newExpiry
	sess.Store = store
	return &LoginResult{Bearer: bearer, RefreshToken: newToken, Session: sess}, nil
}

func (s *service) Logout(ctx context.Context, sessionID string) error {
	return s.sessionRepo.Update(ctx, sessionID, map[string]interface{}{"enable": false})
}

func (s *service) openSession(ctx context.Context, store *domain.Store) (*LoginResult, error) {
	refreshToken, err := pkgtoken.NewRefreshToken()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	sess := &domain.Session{
		SessionID:        id.New(),
		StoreID:          store.StoreID,
		Enable:           true,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: now.Add(s.refreshTokenDur).Unix(),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.sessionRepo.Put(ctx, sess); err != nil {
		return nil, err
	}
	bearer, err := s.jwtProvider.Sign(store.StoreID, store.Email, sess.SessionID)
	if err != nil {
		return nil, err
	}
	sess.Store = store
	return &LoginResult{Bearer: bearer, RefreshToken: refreshToken, Session: sess}, nil
}
