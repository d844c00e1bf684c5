// Package reservation drives the reservation state machine from the store
// side: approval, rejection, cancellation, and luggage photo handling.
package reservation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/suittrip/backend/internal/domain"
	"github.com/suittrip/backend/internal/pkg/id"
	"github.com/suittrip/backend/internal/pkg/validate"
)

type Reservations interface {
	Put(ctx context.Context, rv *domain.Reservation) error
	Get(ctx context.Context, reservationID string) (*domain.Reservation, error)
	ListByStore(ctx context.Context, storeID string, status *string) ([]domain.Reservation, error)
	Update(ctx context.Context, reservationID string, updates map[string]interface{}) error
}

type Storages interface {
	Get(ctx context.Context, storageID string) (*domain.StorageUnit, error)
	Update(ctx context.Context, storageID string, updates map[string]interface{}) error
}

type Notifier interface {
	Notify(ctx context.Context, storeID, notifType, title, message string, referenceID *string) error
}

type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type PhotoStore interface {
	UploadBase64(ctx context.Context, key, b64Data string) (string, error)
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// CreateRequest books a walk-in customer onto one of the store's units.
type CreateRequest struct {
	StorageID     string    `json:"storageId" validate:"required"`
	CustomerName  string    `json:"customerName" validate:"required"`
	CustomerPhone string    `json:"customerPhone"`
	CustomerEmail string    `json:"customerEmail"`
	StartTime     time.Time `json:"startTime" validate:"required"`
	EndTime       time.Time `json:"endTime" validate:"required"`
	BagCount      int       `json:"bagCount" validate:"required,gt=0"`
	TotalAmount   int       `json:"totalAmount" validate:"gte=0"`
	Message       string    `json:"message"`
}

type Service interface {
	Create(ctx context.Context, storeID string, req CreateRequest) (*domain.Reservation, error)
	List(ctx context.Context, storeID string, status *string) ([]domain.Reservation, error)
	Get(ctx context.Context, storeID, reservationID string) (*domain.Reservation, error)
	// UpdateStatus drives an arbitrary validated transition. Approve, Reject
	// and Cancel are the named shortcuts the app uses most.
	UpdateStatus(ctx context.Context, storeID, reservationID, status string) (*domain.Reservation, error)
	// Approve moves a pending reservation to confirmed and marks the unit
	// occupied. The customer gets an SMS when a phone number is on file.
	Approve(ctx context.Context, storeID, reservationID string) (*domain.Reservation, error)
	Reject(ctx context.Context, storeID, reservationID, reason string) (*domain.Reservation, error)
	Cancel(ctx context.Context, storeID, reservationID string) (*domain.Reservation, error)
	// AttachLuggagePhotos uploads base64 photos to S3 and records their URLs
	// on the reservation.
	AttachLuggagePhotos(ctx context.Context, storeID, reservationID string, photos []string) (*domain.Reservation, error)
}

type ServiceDeps struct {
	ReservationRepo Reservations
	StorageRepo     Storages
	Notifier        Notifier
	SMSSender       SMSSender
	PhotoStore      PhotoStore
}

type service struct {
	reservationRepo Reservations
	storageRepo     Storages
	notifier        Notifier
	smsSender       SMSSender
	photoStore      PhotoStore
}

func NewService(deps ServiceDeps) Service {
	return &service{
		reservationRepo: deps.ReservationRepo,
		storageRepo:     deps.StorageRepo,
		notifier:        deps.Notifier,
		smsSender:       deps.SMSSender,
		photoStore:      deps.PhotoStore,
	}
}

func (s *service) Create(ctx context.Context, storeID string, req CreateRequest) (*domain.Reservation, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	if !req.EndTime.After(req.StartTime) {
		return nil, fmt.Errorf("end time must be after start time: %w", domain.ErrBadRequest)
	}
	unit, err := s.storageRepo.Get(ctx, req.StorageID)
	if err != nil {
		return nil, err
	}
	if unit.StoreID != storeID {
		return nil, fmt.Errorf("storage unit belongs to another store: %w", domain.ErrForbidden)
	}
	if unit.Status != domain.StorageAvailable {
		return nil, fmt.Errorf("unit %s is not available: %w", unit.Number, domain.ErrStorageOccupied)
	}

	now := time.Now().UTC()
	rv := &domain.Reservation{
		ReservationID: id.New(),
		StoreID:       storeID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		StorageID:     unit.StorageID,
		StorageNumber: unit.Number,
		Status:        domain.ReservationPending,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Duration:      int(req.EndTime.Sub(req.StartTime).Hours()),
		BagCount:      req.BagCount,
		TotalAmount:   req.TotalAmount,
		Message:       req.Message,
		PaymentStatus: domain.PaymentPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.reservationRepo.Put(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *service) List(ctx context.Context, storeID string, status *string) ([]domain.Reservation, error) {
	if status != nil {
		switch *status {
		case domain.ReservationPending, domain.ReservationConfirmed, domain.ReservationInProgress,
			domain.ReservationCompleted, domain.ReservationCancelled, domain.ReservationRejected:
		default:
			return nil, fmt.Errorf("unknown reservation status %q: %w", *status, domain.ErrBadRequest)
		}
	}
	return s.reservationRepo.ListByStore(ctx, storeID, status)
}

func (s *service) Get(ctx context.Context, storeID, reservationID string) (*domain.Reservation, error) {
	return s.owned(ctx, storeID, reservationID)
}

func (s *service) UpdateStatus(ctx context.Context, storeID, reservationID, status string) (*domain.Reservation, error) {
	switch status {
	case domain.ReservationConfirmed:
		return s.Approve(ctx, storeID, reservationID)
	case domain.ReservationRejected:
		return s.Reject(ctx, storeID, reservationID, "")
	case domain.ReservationCancelled:
		return s.Cancel(ctx, storeID, reservationID)
	case domain.ReservationInProgress:
		rv, err := s.owned(ctx, storeID, reservationID)
		if err != nil {
			return nil, err
		}
		if rv.Status != domain.ReservationConfirmed {
			return nil, fmt.Errorf("cannot start storage from %s: %w", rv.Status, domain.ErrInvalidStatus)
		}
		now := time.Now().UTC()
		if err := s.reservationRepo.Update(ctx, reservationID, map[string]interface{}{
			"status":            domain.ReservationInProgress,
			"actual_start_time": now.Format(time.RFC3339Nano),
		}); err != nil {
			return nil, err
		}
		rv.Status = domain.ReservationInProgress
		rv.ActualStartTime = &now
		return rv, nil
	case domain.ReservationCompleted:
		rv, err := s.owned(ctx, storeID, reservationID)
		if err != nil {
			return nil, err
		}
		if rv.Status != domain.ReservationInProgress {
			return nil, fmt.Errorf("cannot complete from %s: %w", rv.Status, domain.ErrInvalidStatus)
		}
		now := time.Now().UTC()
		if err := s.reservationRepo.Update(ctx, reservationID, map[string]interface{}{
			"status":          domain.ReservationCompleted,
			"actual_end_time": now.Format(time.RFC3339Nano),
		}); err != nil {
			return nil, err
		}
		rv.Status = domain.ReservationCompleted
		rv.ActualEndTime = &now
		if err := s.storageRepo.Update(ctx, rv.StorageID, map[string]interface{}{
			"status": domain.StorageAvailable,
		}); err != nil {
			slog.Warn("could not release storage unit", "storage_id", rv.StorageID, "err", err)
		}
		return rv, nil
	default:
		return nil, fmt.Errorf("unknown reservation status %q: %w", status, domain.ErrInvalidStatus)
	}
}

func (s *service) Approve(ctx context.Context, storeID, reservationID string) (*domain.Reservation, error) {
	rv, err := s.owned(ctx, storeID, reservationID)
	if err != nil {
		return nil, err
	}
	if rv.Status != domain.ReservationPending {
		return nil, fmt.Errorf("only pending reservations can be approved, got %s: %w", rv.Status, domain.ErrInvalidStatus)
	}

	if err := s.reservationRepo.Update(ctx, reservationID, map[string]interface{}{
		"status": domain.ReservationConfirmed,
	}); err != nil {
		return nil, err
	}
	rv.Status = domain.ReservationConfirmed

	if err := s.storageRepo.Update(ctx, rv.StorageID, map[string]interface{}{
		"status": domain.StorageOccupied,
	}); err != nil {
		slog.Warn("could not mark storage unit occupied", "storage_id", rv.StorageID, "err", err)
	}

	s.notifyCustomerSMS(ctx, rv, fmt.Sprintf(
		"[Suittrip] 예약이 승인되었습니다. 보관함 %s, %s부터 이용 가능합니다.",
		rv.StorageNumber, rv.StartTime.Format("01/02 15:04")))
	s.notifyStore(ctx, rv, domain.NotifyReservationApproved, "예약 승인 완료",
		fmt.Sprintf("%s님의 예약을 승인했습니다", rv.CustomerName))
	return rv, nil
}

func (s *service) Reject(ctx context.Context, storeID, reservationID, reason string) (*domain.Reservation, error) {
	rv, err := s.owned(ctx, storeID, reservationID)
	if err != nil {
		return nil, err
	}
	if rv.Status != domain.ReservationPending {
		return nil, fmt.Errorf("only pending reservations can be rejected, got %s: %w", rv.Status, domain.ErrInvalidStatus)
	}
	updates := map[string]interface{}{"status": domain.ReservationRejected}
	if reason != "" {
		updates["message"] = reason
	}
	if err := s.reservationRepo.Update(ctx, reservationID, updates); err != nil {
		return nil, err
	}
	rv.Status = domain.ReservationRejected

	s.notifyCustomerSMS(ctx, rv, "[Suittrip] 예약이 거절되었습니다. 다른 보관소를 이용해 주세요.")
	return rv, nil
}

func (s *service) Cancel(ctx context.Context, storeID, reservationID string) (*domain.Reservation, error) {
	rv, err := s.owned(ctx, storeID, reservationID)
	if err != nil {
		return nil, err
	}
	switch rv.Status {
	case domain.ReservationPending, domain.ReservationConfirmed, domain.ReservationInProgress:
	default:
		return nil, fmt.Errorf("reservation in state %s cannot be cancelled: %w", rv.Status, domain.ErrInvalidStatus)
	}

	if err := s.reservationRepo.Update(ctx, reservationID, map[string]interface{}{
		"status": domain.ReservationCancelled,
	}); err != nil {
		return nil, err
	}
	wasActive := rv.Active()
	rv.Status = domain.ReservationCancelled

	if wasActive {
		if err := s.storageRepo.Update(ctx, rv.StorageID, map[string]interface{}{
			"status": domain.StorageAvailable,
		}); err != nil {
			slog.Warn("could not release storage unit", "storage_id", rv.StorageID, "err", err)
		}
	}

	s.notifyCustomerSMS(ctx, rv, "[Suittrip] 예약이 취소되었습니다.")
	s.notifyStore(ctx, rv, domain.NotifyReservationCancelled, "예약 취소",
		fmt.Sprintf("%s님의 예약이 취소되었습니다", rv.CustomerName))
	return rv, nil
}

func (s *service) AttachLuggagePhotos(ctx context.Context, storeID, reservationID string, photos []string) (*domain.Reservation, error) {
	if len(photos) == 0 {
		return nil, fmt.Errorf("no photos supplied: %w", domain.ErrBadRequest)
	}
	rv, err := s.owned(ctx, storeID, reservationID)
	if err != nil {
		return nil, err
	}
	if !rv.Active() {
		return nil, fmt.Errorf("photos can only be attached to active reservations: %w", domain.ErrConflict)
	}

	urls := rv.LuggageImageURLs
	for _, b64 := range photos {
		key := fmt.Sprintf("reservations/%s/%s.jpg", reservationID, id.New())
		url, err := s.photoStore.UploadBase64(ctx, key, b64)
		if err != nil {
			return nil, fmt.Errorf("upload luggage photo: %w", err)
		}
		urls = append(urls, url)
	}
	if err := s.reservationRepo.Update(ctx, reservationID, map[string]interface{}{
		"luggage_image_urls": urls,
	}); err != nil {
		return nil, err
	}
	rv.LuggageImageURLs = urls
	return rv, nil
}

func (s *service) owned(ctx context.Context, storeID, reservationID string) (*domain.Reservation, error) {
	rv, err := s.reservationRepo.Get(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if rv.StoreID != storeID {
		return nil, fmt.Errorf("reservation belongs to another store: %w", domain.ErrForbidden)
	}
	return rv, nil
}

// notifyCustomerSMS is best-effort: SMS failures never fail the operation.
func (s *service) notifyCustomerSMS(ctx context.Context, rv *domain.Reservation, message string) {
	if s.smsSender == nil || rv.CustomerPhone == "" {
		return
	}
	if err := s.smsSender.SendSMS(ctx, rv.CustomerPhone, message); err != nil {
		slog.Warn("customer SMS failed", "reservation_id", rv.ReservationID, "err", err)
	}
}

func (s *service) notifyStore(ctx context.Context, rv *domain.Reservation, notifType, title, message string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, rv.StoreID, notifType, title, message, &rv.ReservationID); err != nil {
		slog.Warn("store notification failed", "reservation_id", rv.ReservationID, "err", err)
	}
}
