package domain

// EmailVerification is one issued verification code for an email address.
// PK: email, SK: created_at (unix nanoseconds); the most recently created
// record is the only one consulted during verification. Verified records are
// retained for audit; issuing a new code supersedes (deletes) unverified ones.
type EmailVerification struct {
	Email        string `json:"email" dynamodbav:"email"`
	CreatedAt    int64  `json:"created_at" dynamodbav:"created_at"` // unix nanos
	Code         string `json:"-" dynamodbav:"code"`
	ExpiresAt    int64  `json:"expires_at" dynamodbav:"expires_at"` // unix seconds
	IsVerified   bool   `json:"is_verified" dynamodbav:"is_verified"`
	AttemptCount int    `json:"attempt_count" dynamodbav:"attempt_count"`
}
