package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")
	ErrStorage      = errors.New("storage failure")
)

// Verification failure kinds. The verify-code endpoint collapses all of them
// into one HTTP error code, but services and tests discriminate via errors.Is.
var (
	ErrCodeNotFound    = errors.New("verification code not found")
	ErrCodeUsed        = errors.New("verification code already used")
	ErrCodeExpired     = errors.New("verification code expired")
	ErrCodeMismatch    = errors.New("verification code mismatch")
	ErrTooManyAttempts = errors.New("verification attempts exceeded")

	ErrEmailNotVerified = errors.New("email not verified")

	// ErrEmailSend marks SMTP delivery failures. The code itself is already
	// saved at that point and stays usable if the mail eventually arrives.
	ErrEmailSend = errors.New("email send failed")
)

// Marketplace conflicts that carry their own API error codes.
var (
	ErrStorageOccupied  = errors.New("storage unit occupied")
	ErrInvalidStatus    = errors.New("invalid status transition")
	ErrResponseExists   = errors.New("review response already exists")
	ErrResponseNotFound = errors.New("review response not found")
)
