// Package storageunit manages a store's rentable lockers and shelf slots.
package storageunit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/suittrip/backend/internal/domain"
	"github.com/suittrip/backend/internal/pkg/id"
	"github.com/suittrip/backend/internal/pkg/validate"
)

type CreateRequest struct {
	Number   string          `json:"number" validate:"required"`
	Type     string          `json:"type" validate:"required,oneof=small medium large locker"`
	Size     domain.Size     `json:"size"`
	Pricing  int             `json:"pricing" validate:"required,gt=0"`
	Location domain.Location `json:"location"`
}

type UpdateRequest struct {
	Number  *string      `json:"number"`
	Type    *string      `json:"type"`
	Size    *domain.Size `json:"size"`
	Pricing *int         `json:"pricing"`
	Status  *string      `json:"status"`
}

type Storages interface {
	Put(ctx context.Context, u *domain.StorageUnit) error
	Get(ctx context.Context, storageID string) (*domain.StorageUnit, error)
	ListByStore(ctx context.Context, storeID string) ([]domain.StorageUnit, error)
	Update(ctx context.Context, storageID string, updates map[string]interface{}) error
	Delete(ctx context.Context, storageID string) error
}

type Reservations interface {
	ActiveByStorage(ctx context.Context, storageID string) ([]domain.Reservation, error)
}

type Service interface {
	Create(ctx context.Context, storeID string, req CreateRequest) (*domain.StorageUnit, error)
	// List returns the store's units, optionally filtered by status and type,
	// with CurrentReservation joined in for occupied ones.
	List(ctx context.Context, storeID string, status, unitType *string) ([]domain.StorageUnit, error)
	Get(ctx context.Context, storeID, storageID string) (*domain.StorageUnit, error)
	Update(ctx context.Context, storeID, storageID string, req UpdateRequest) (*domain.StorageUnit, error)
	Delete(ctx context.Context, storeID, storageID string) error
}

type ServiceDeps struct {
	StorageRepo     Storages
	ReservationRepo Reservations
}

type service struct {
	storageRepo     Storages
	reservationRepo Reservations
}

func NewService(deps ServiceDeps) Service {
	return &service{storageRepo: deps.StorageRepo, reservationRepo: deps.ReservationRepo}
}

func (s *service) Create(ctx context.Context, storeID string, req CreateRequest) (*domain.StorageUnit, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	existing, err := s.storageRepo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	for _, u := range existing {
		if u.Number == req.Number {
			return nil, fmt.Errorf("storage number %s already in use: %w", req.Number, domain.ErrConflict)
		}
	}
	now := time.Now().UTC()
	unit := &domain.StorageUnit{
		StorageID: id.New(),
		StoreID:   storeID,
		Number:    req.Number,
		Type:      req.Type,
		Status:    domain.StorageAvailable,
		Size:      req.Size,
		Pricing:   req.Pricing,
		Location:  req.Location,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.storageRepo.Put(ctx, unit); err != nil {
		return nil, err
	}
	return unit, nil
}

func (s *service) List(ctx context.Context, storeID string, status, unitType *string) ([]domain.StorageUnit, error) {
	if status != nil {
		switch *status {
		case domain.StorageAvailable, domain.StorageOccupied, domain.StorageMaintenance, domain.StorageDisabled:
		default:
			return nil, fmt.Errorf("unknown storage status %q: %w", *status, domain.ErrBadRequest)
		}
	}
	if unitType != nil {
		switch *unitType {
		case domain.StorageTypeSmall, domain.StorageTypeMedium, domain.StorageTypeLarge, domain.StorageTypeLocker:
		default:
			return nil, fmt.Errorf("unknown storage type %q: %w", *unitType, domain.ErrBadRequest)
		}
	}

	all, err := s.storageRepo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	units := all[:0:0]
	for _, u := range all {
		if status != nil && u.Status != *status {
			continue
		}
		if unitType != nil && u.Type != *unitType {
			continue
		}
		units = append(units, u)
	}
	for i := range units {
		if units[i].Status != domain.StorageOccupied {
			continue
		}
		active, err := s.reservationRepo.ActiveByStorage(ctx, units[i].StorageID)
		if err != nil {
			slog.Warn("could not resolve current reservation", "storage_id", units[i].StorageID, "err", err)
			continue
		}
		if len(active) > 0 {
			units[i].CurrentReservation = &active[0]
		}
	}
	return units, nil
}

func (s *service) Get(ctx context.Context, storeID, storageID string) (*domain.StorageUnit, error) {
	unit, err := s.storageRepo.Get(ctx, storageID)
	if err != nil {
		return nil, err
	}
	if unit.StoreID != storeID {
		return nil, fmt.Errorf("storage unit belongs to another store: %w", domain.ErrForbidden)
	}
	if unit.Status == domain.StorageOccupied {
		active, err := s.reservationRepo.ActiveByStorage(ctx, storageID)
		if err == nil && len(active) > 0 {
			unit.CurrentReservation = &active[0]
		}
	}
	return unit, nil
}

func (s *service) Update(ctx context.Context, storeID, storageID string, req UpdateRequest) (*domain.StorageUnit, error) {
	unit, err := s.storageRepo.Get(ctx, storageID)
	if err != nil {
		return nil, err
	}
	if unit.StoreID != storeID {
		return nil, fmt.Errorf("storage unit belongs to another store: %w", domain.ErrForbidden)
	}

	updates := map[string]interface{}{}
	if req.Number != nil {
		updates["number"] = *req.Number
	}
	if req.Type != nil {
		switch *req.Type {
		case domain.StorageTypeSmall, domain.StorageTypeMedium, domain.StorageTypeLarge, domain.StorageTypeLocker:
		default:
			return nil, fmt.Errorf("unknown storage type %q: %w", *req.Type, domain.ErrBadRequest)
		}
		updates["type"] = *req.Type
	}
	if req.Size != nil {
		updates["size"] = *req.Size
	}
	if req.Pricing != nil {
		if *req.Pricing <= 0 {
			return nil, fmt.Errorf("pricing must be positive: %w", domain.ErrBadRequest)
		}
		updates["pricing"] = *req.Pricing
	}
	if req.Status != nil {
		switch *req.Status {
		case domain.StorageAvailable, domain.StorageOccupied, domain.StorageMaintenance, domain.StorageDisabled:
		default:
			return nil, fmt.Errorf("unknown storage status %q: %w", *req.Status, domain.ErrBadRequest)
		}
		// An occupied unit cannot be taken out of service while luggage sits
		// in it.
		if unit.Status == domain.StorageOccupied && *req.Status != domain.StorageAvailable && *req.Status != domain.StorageOccupied {
			return nil, fmt.Errorf("unit is occupied: %w", domain.ErrStorageOccupied)
		}
		updates["status"] = *req.Status
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update: %w", domain.ErrBadRequest)
	}
	if err := s.storageRepo.Update(ctx, storageID, updates); err != nil {
		return nil, err
	}
	return s.storageRepo.Get(ctx, storageID)
}

func (s *service) Delete(ctx context.Context, storeID, storageID string) error {
	unit, err := s.storageRepo.Get(ctx, storageID)
	if err != nil {
		return err
	}
	if unit.StoreID != storeID {
		return fmt.Errorf("storage unit belongs to another store: %w", domain.ErrForbidden)
	}
	if unit.Status == domain.StorageOccupied {
		return fmt.Errorf("unit is occupied: %w", domain.ErrStorageOccupied)
	}
	return s.storageRepo.Delete(ctx, storageID)
}
