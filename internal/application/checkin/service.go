// Package checkin records physical luggage handover and pickup against
// confirmed reservations.
package checkin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/suittrip/backend/internal/domain"
	"github.com/suittrip/backend/internal/pkg/id"
)

type Checkins interface {
	Put(ctx context.Context, c *domain.Checkin) error
	Get(ctx context.Context, checkinID string) (*domain.Checkin, error)
	GetByReservation(ctx context.Context, reservationID string) (*domain.Checkin, error)
	ListByStore(ctx context.Context, storeID string, activeOnly bool) ([]domain.Checkin, error)
	Update(ctx context.Context, checkinID string, updates map[string]interface{}) error
}

type Reservations interface {
	Get(ctx context.Context, reservationID string) (*domain.Reservation, error)
	Update(ctx context.Context, reservationID string, updates map[string]interface{}) error
}

type Storages interface {
	Update(ctx context.Context, storageID string, updates map[string]interface{}) error
}

type PhotoStore interface {
	UploadBase64(ctx context.Context, key, b64Data string) (string, error)
}

type CheckinRequest struct {
	ReservationID string   `json:"reservationId" validate:"required"`
	BagCount      int      `json:"bagCount"`
	Photos        []string `json:"photos"` // base64
}

type Service interface {
	// Checkin starts storage for a confirmed reservation: the reservation
	// moves to in_progress and luggage photos are archived.
	Checkin(ctx context.Context, storeID string, req CheckinRequest) (*domain.Checkin, error)
	// Checkout ends storage: the reservation completes and the unit frees up.
	Checkout(ctx context.Context, storeID, checkinID string) (*domain.Checkin, error)
	Get(ctx context.Context, storeID, checkinID string) (*domain.Checkin, error)
	List(ctx context.Context, storeID string, activeOnly bool) ([]domain.Checkin, error)
}

type ServiceDeps struct {
	CheckinRepo     Checkins
	ReservationRepo Reservations
	StorageRepo     Storages
	PhotoStore      PhotoStore
}

type service struct {
	checkinRepo     Checkins
	reservationRepo Reservations
	storageRepo     Storages
	photoStore      PhotoStore
}

func NewService(deps ServiceDeps) Service {
	return &service{
		checkinRepo:     deps.CheckinRepo,
		reservationRepo: deps.ReservationRepo,
		storageRepo:     deps.StorageRepo,
		photoStore:      deps.PhotoStore,
	}
}

func (s *service) Checkin(ctx context.Context, storeID string, req CheckinRequest) (*domain.Checkin, error) {
	rv, err := s.reservationRepo.Get(ctx, req.ReservationID)
	if err != nil {
		return nil, err
	}
	if rv.StoreID != storeID {
		return nil, fmt.Errorf("reservation belongs to another store: %w", domain.ErrForbidden)
	}
	if rv.Status != domain.ReservationConfirmed {
		return nil, fmt.Errorf("reservation must be confirmed to check in, got %s: %w", rv.Status, domain.ErrInvalidStatus)
	}
	if _, err := s.checkinRepo.GetByReservation(ctx, req.ReservationID); err == nil {
		return nil, fmt.Errorf("reservation already checked in: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	checkinID := id.New()
	var photoURLs []string
	for _, b64 := range req.Photos {
		key := fmt.Sprintf("checkins/%s/%s.jpg", checkinID, id.New())
		url, err := s.photoStore.UploadBase64(ctx, key, b64)
		if err != nil {
			return nil, fmt.Errorf("upload checkin photo: %w", err)
		}
		photoURLs = append(photoURLs, url)
	}

	bagCount := req.BagCount
	if bagCount == 0 {
		bagCount = rv.BagCount
	}
	now := time.Now().UTC()
	c := &domain.Checkin{
		CheckinID:     checkinID,
		StoreID:       storeID,
		ReservationID: rv.ReservationID,
		StorageID:     rv.StorageID,
		StorageNumber: rv.StorageNumber,
		CustomerName:  rv.CustomerName,
		BagCount:      bagCount,
		PhotoURLs:     photoURLs,
		Status:        domain.CheckinInStorage,
		CheckedInAt:   now,
	}
	if err := s.checkinRepo.Put(ctx, c); err != nil {
		return nil, err
	}

	if err := s.reservationRepo.Update(ctx, rv.ReservationID, map[string]interface{}{
		"status":            domain.ReservationInProgress,
		"actual_start_time": now.Format(time.RFC3339Nano),
	}); err != nil {
		slog.Warn("could not advance reservation to in_progress", "reservation_id", rv.ReservationID, "err", err)
	}
	return c, nil
}

func (s *service) Checkout(ctx context.Context, storeID, checkinID string) (*domain.Checkin, error) {
	c, err := s.checkinRepo.Get(ctx, checkinID)
	if err != nil {
		return nil, err
	}
	if c.StoreID != storeID {
		return nil, fmt.Errorf("checkin belongs to another store: %w", domain.ErrForbidden)
	}
	if c.Status != domain.CheckinInStorage {
		return nil, fmt.Errorf("luggage already checked out: %w", domain.ErrInvalidStatus)
	}

	now := time.Now().UTC()
	if err := s.checkinRepo.Update(ctx, checkinID, map[string]interface{}{
		"status":         domain.CheckinCheckedOut,
		"checked_out_at": now.Format(time.RFC3339Nano),
	}); err != nil {
		return nil, err
	}
	c.Status = domain.CheckinCheckedOut
	c.CheckedOutAt = &now

	if err := s.reservationRepo.Update(ctx, c.ReservationID, map[string]interface{}{
		"status":          domain.ReservationCompleted,
		"actual_end_time": now.Format(time.RFC3339Nano),
	}); err != nil {
		slog.Warn("could not complete reservation", "reservation_id", c.ReservationID, "err", err)
	}
	if err := s.storageRepo.Update(ctx, c.StorageID, map[string]interface{}{
		"status": domain.StorageAvailable,
	}); err != nil {
		slog.Warn("could not release storage unit", "storage_id", c.StorageID, "err", err)
	}
	return c, nil
}

func (s *service) Get(ctx context.Context, storeID, checkinID string) (*domain.Checkin, error) {
	c, err := s.checkinRepo.Get(ctx, checkinID)
	if err != nil {
		return nil, err
	}
	if c.StoreID != storeID {
		return nil, fmt.Errorf("checkin belongs to another store: %w", domain.ErrForbidden)
	}
	return c, nil
}

func (s *service) List(ctx context.Context, storeID string, activeOnly bool) ([]domain.Checkin, error) {
	return s.checkinRepo.ListByStore(ctx, storeID, activeOnly)
}
