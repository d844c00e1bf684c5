// Package store manages the merchant's own profile, operating status and
// settings.
package store

import (
	"context"
	"fmt"

	"github.com/suittrip/backend/internal/domain"
	"github.com/suittrip/backend/internal/pkg/validate"
)

type UpdateProfileRequest struct {
	Name      *string `json:"name"`
	OwnerName *string `json:"ownerName"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
}

type UpdateSettingsRequest struct {
	OpenTime            *string `json:"openTime"`
	CloseTime           *string `json:"closeTime"`
	AutoApprove         *bool   `json:"autoApprove"`
	NotifyOnReservation *bool   `json:"notifyOnReservation"`
}

type Stores interface {
	Get(ctx context.Context, storeID string) (*domain.Store, error)
	Update(ctx context.Context, storeID string, updates map[string]interface{}) error
	SoftDelete(ctx context.Context, storeID string) error
}

type Service interface {
	Profile(ctx context.Context, storeID string) (*domain.Store, error)
	UpdateProfile(ctx context.Context, storeID string, req UpdateProfileRequest) (*domain.Store, error)
	UpdateStatus(ctx context.Context, storeID, status string) error
	UpdateSettings(ctx context.Context, storeID string, req UpdateSettingsRequest) (*domain.Store, error)
	Deactivate(ctx context.Context, storeID string) error
}

type ServiceDeps struct {
	StoreRepo Stores
}

type service struct {
	storeRepo Stores
}

func NewService(deps ServiceDeps) Service {
	return &service{storeRepo: deps.StoreRepo}
}

func (s *service) Profile(ctx context.Context, storeID string) (*domain.Store, error) {
	return s.storeRepo.Get(ctx, storeID)
}

func (s *service) UpdateProfile(ctx context.Context, storeID string, req UpdateProfileRequest) (*domain.Store, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.OwnerName != nil {
		updates["owner_name"] = *req.OwnerName
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update: %w", domain.ErrBadRequest)
	}
	if err := s.storeRepo.Update(ctx, storeID, updates); err != nil {
		return nil, err
	}
	return s.storeRepo.Get(ctx, storeID)
}

func (s *service) UpdateStatus(ctx context.Context, storeID, status string) error {
	switch status {
	case domain.StoreStatusOpen, domain.StoreStatusClosed, domain.StoreStatusPreparing:
	default:
		return fmt.Errorf("unknown store status %q: %w", status, domain.ErrBadRequest)
	}
	return s.storeRepo.Update(ctx, storeID, map[string]interface{}{"status": status})
}

func (s *service) UpdateSettings(ctx context.Context, storeID string, req UpdateSettingsRequest) (*domain.Store, error) {
	store, err := s.storeRepo.Get(ctx, storeID)
	if err != nil {
		return nil, err
	}
	settings := store.Settings
	if req.OpenTime != nil {
		if !validate.TimeOfDay(*req.OpenTime) {
			return nil, fmt.Errorf("openTime must be HH:MM: %w", domain.ErrBadRequest)
		}
		settings.OpenTime = *req.OpenTime
	}
	if req.CloseTime != nil {
		if !validate.TimeOfDay(*req.CloseTime) {
			return nil, fmt.Errorf("closeTime must be HH:MM: %w", domain.ErrBadRequest)
		}
		settings.CloseTime = *req.CloseTime
	}
	if req.AutoApprove != nil {
		settings.AutoApprove = *req.AutoApprove
	}
	if req.NotifyOnReservation != nil {
		settings.NotifyOnReservation = *req.NotifyOnReservation
	}
	if err := s.storeRepo.Update(ctx, storeID, map[string]interface{}{"settings": settings}); err != nil {
		return nil, err
	}
	store.Settings = settings
	return store, nil
}

func (s *service) Deactivate(ctx context.Context, storeID string) error {
	return s.storeRepo.SoftDelete(ctx, storeID)
}
