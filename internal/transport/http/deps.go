package http

import (
	"context"
	"io"

	"github.com/suittrip/backend/internal/domain"
)

// StoreRepository is the minimal interface the router requires from the store table.
type StoreRepository interface {
	Put(ctx context.Context, s *domain.Store) error
	Get(ctx context.Context, storeID string) (*domain.Store, error)
	GetByEmail(ctx context.Context, email string) (*domain.Store, error)
	Update(ctx context.Context, storeID string, updates map[string]interface{}) error
	SoftDelete(ctx context.Context, storeID string) error
}

// SessionRepository is the minimal interface the router requires from the session table.
type SessionRepository interface {
	Put(ctx context.Context, s *domain.Session) error
	Get(ctx context.Context, sessionID string) (*domain.Session, error)
	GetByRefreshToken(ctx context.Context, token string) (*domain.Session, error)
	RotateRefreshToken(ctx context.Context, sessionID, newToken string, newExpiry int64) error
	Update(ctx context.Context, sessionID string, updates map[string]interface{}) error
	SoftDeleteByStore(ctx context.Context, storeID string) error
}

// VerificationRepository is the minimal interface the router requires from the
// email verification table.
type VerificationRepository interface {
	Put(ctx context.Context, v *domain.EmailVerification) error
	Latest(ctx context.Context, email string) (*domain.EmailVerification, error)
	DeleteUnverified(ctx context.Context, email string) error
	Update(ctx context.Context, email string, createdAt int64, updates map[string]interface{}) error
	HasVerified(ctx context.Context, email string) (bool, error)
}

// StorageRepository is the minimal interface the router requires from the storage unit table.
type StorageRepository interface {
	Put(ctx context.Context, u *domain.StorageUnit) error
	Get(ctx context.Context, storageID string) (*domain.StorageUnit, error)
	ListByStore(ctx context.Context, storeID string) ([]domain.StorageUnit, error)
	Update(ctx context.Context, storageID string, updates map[string]interface{}) error
	Delete(ctx context.Context, storageID string) error
}

// ReservationRepository is the minimal interface the router requires from the reservation table.
type ReservationRepository interface {
	Put(ctx context.Context, r *domain.Reservation) error
	Get(ctx context.Context, reservationID string) (*domain.Reservation, error)
	ListByStore(ctx context.Context, storeID string, status *string) ([]domain.Reservation, error)
	ActiveByStorage(ctx context.Context, storageID string) ([]domain.Reservation, error)
	Update(ctx context.Context, reservationID string, updates map[string]interface{}) error
}

// ReviewRepository is the minimal interface the router requires from the review table.
type ReviewRepository interface {
	Put(ctx context.Context, r *domain.Review) error
	Get(ctx context.Context, reviewID string) (*domain.Review, error)
	ListByStore(ctx context.Context, storeID string) ([]domain.Review, error)
	Update(ctx context.Context, reviewID string, updates map[string]interface{}) error
}

// NotificationRepository is the minimal interface the router requires from the notification table.
type NotificationRepository interface {
	Put(ctx context.Context, n *domain.Notification) error
	Get(ctx context.Context, notificationID string) (*domain.Notification, error)
	ListByStore(ctx context.Context, storeID string, unreadOnly bool) ([]domain.Notification, error)
	MarkRead(ctx context.Context, notificationID string) error
	MarkAllRead(ctx context.Context, storeID string) (int, error)
	Delete(ctx context.Context, notificationID string) error
}

// CheckinRepository is the minimal interface the router requires from the checkin table.
type CheckinRepository interface {
	Put(ctx context.Context, c *domain.Checkin) error
	Get(ctx context.Context, checkinID string) (*domain.Checkin, error)
	GetByReservation(ctx context.Context, reservationID string) (*domain.Checkin, error)
	ListByStore(ctx context.Context, storeID string, activeOnly bool) ([]domain.Checkin, error)
	Update(ctx context.Context, checkinID string, updates map[string]interface{}) error
}

// ObjectStore is the minimal interface the router requires from an object storage backend.
type ObjectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	UploadBase64(ctx context.Context, key, b64Data string) (string, error)
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}
