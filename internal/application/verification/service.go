// Package verification implements the email verification code lifecycle:
// issuing codes, checking submitted codes against the stored record, and
// answering whether an email has ever completed verification.
package verification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/suittrip/backend/internal/domain"
)

// CodeStore is the persistence surface the service needs. Implemented by
// dynamo.VerificationRepo.
type CodeStore interface {
	Put(ctx context.Context, v *domain.EmailVerification) error
	Latest(ctx context.Context, email string) (*domain.EmailVerification, error)
	DeleteUnverified(ctx context.Context, email string) error
	Update(ctx context.Context, email string, createdAt int64, updates map[string]interface{}) error
	HasVerified(ctx context.Context, email string) (bool, error)
}

type Service interface {
	// SaveCode records a freshly issued code for email, superseding any
	// unverified codes issued earlier.
	SaveCode(ctx context.Context, email, code string) error
	// VerifyCode checks code against the most recent record for email and
	// marks it verified on match. Failures come back as the ErrCode*
	// sentinels in the domain package.
	VerifyCode(ctx context.Context, email, code string) error
	// IsEmailVerified reports whether email has a completed verification.
	// Fails closed: storage errors count as not verified.
	IsEmailVerified(ctx context.Context, email string) bool
}

type ServiceDeps struct {
	Repo        CodeStore
	CodeTTL     time.Duration
	MaxAttempts int
}

type service struct {
	repo        CodeStore
	codeTTL     time.Duration
	maxAttempts int
}

func NewService(deps ServiceDeps) Service {
	return &service{
		repo:        deps.Repo,
		codeTTL:     deps.CodeTTL,
		maxAttempts: deps.MaxAttempts,
	}
}

func (s *service) SaveCode(ctx context.Context, email, code string) error {
	email = strings.TrimSpace(email)
	code = strings.TrimSpace(code)
	if email == "" || code == "" {
		return fmt.Errorf("email and code required: %w", domain.ErrBadRequest)
	}
	// Superseding delete first, so at most one unverified record exists per
	// email. Verified records stay: they are the proof consulted at
	// registration time.
	if err := s.repo.DeleteUnverified(ctx, email); err != nil {
		return fmt.Errorf("supersede old codes: %w", err)
	}
	now := time.Now()
	v := &domain.EmailVerification{
		Email:        email,
		CreatedAt:    now.UnixNano(),
		Code:         code,
		ExpiresAt:    now.Add(s.codeTTL).Unix(),
		IsVerified:   false,
		AttemptCount: 0,
	}
	if err := s.repo.Put(ctx, v); err != nil {
		return fmt.Errorf("save verification code: %w", err)
	}
	return nil
}

func (s *service) VerifyCode(ctx context.Context, email, code string) error {
	v, err := s.repo.Latest(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrCodeNotFound
		}
		return fmt.Errorf("load verification record: %w", err)
	}

	// Check order matters: a used code reports as used even when it is also
	// expired, and the attempt gate fires before the expiry check.
	if v.IsVerified {
		return domain.ErrCodeUsed
	}
	if v.AttemptCount >= s.maxAttempts {
		return domain.ErrTooManyAttempts
	}
	// A code whose expiry second has arrived is already unusable.
	if v.ExpiresAt <= time.Now().Unix() {
		return domain.ErrCodeExpired
	}
	if v.Code != code {
		// Read-modify-write: two concurrent mismatches may record a single
		// attempt. Acceptable, the window is per-human retry.
		if err := s.repo.Update(ctx, email, v.CreatedAt, map[string]interface{}{
			"attempt_count": v.AttemptCount + 1,
		}); err != nil {
			slog.Warn("failed to record verification attempt", "email", email, "err", err)
		}
		return domain.ErrCodeMismatch
	}

	if err := s.repo.Update(ctx, email, v.CreatedAt, map[string]interface{}{
		"is_verified": true,
	}); err != nil {
		return fmt.Errorf("mark code verified: %w", err)
	}
	return nil
}

func (s *service) IsEmailVerified(ctx context.Context, email string) bool {
	ok, err := s.repo.HasVerified(ctx, email)
	if err != nil {
		slog.Warn("verified-email lookup failed, treating as unverified", "email", email, "err", err)
		return false
	}
	return ok
}
