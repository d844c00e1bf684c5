// Package notification manages the store owner's in-app notification feed.
package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/suittrip/backend/internal/domain"
	"github.com/suittrip/backend/internal/pkg/id"
)

type Notifications interface {
	Put(ctx context.Context, n *domain.Notification) error
	Get(ctx context.Context, notificationID string) (*domain.Notification, error)
	ListByStore(ctx context.Context, storeID string, unreadOnly bool) ([]domain.Notification, error)
	MarkRead(ctx context.Context, notificationID string) error
	MarkAllRead(ctx context.Context, storeID string) (int, error)
	Delete(ctx context.Context, notificationID string) error
}

type Service interface {
	// Notify records a notification for the store. Other services call this
	// when reservations or reviews change.
	Notify(ctx context.Context, storeID, notifType, title, message string, referenceID *string) error
	List(ctx context.Context, storeID string, unreadOnly bool) ([]domain.Notification, error)
	Get(ctx context.Context, storeID, notificationID string) (*domain.Notification, error)
	UnreadCount(ctx context.Context, storeID string) (int, error)
	MarkRead(ctx context.Context, storeID, notificationID string) error
	MarkAllRead(ctx context.Context, storeID string) (int, error)
	Delete(ctx context.Context, storeID, notificationID string) error
}

type ServiceDeps struct {
	NotificationRepo Notifications
}

type service struct {
	notificationRepo Notifications
}

func NewService(deps ServiceDeps) Service {
	return &service{notificationRepo: deps.NotificationRepo}
}

func (s *service) Notify(ctx context.Context, storeID, notifType, title, message string, referenceID *string) error {
	now := time.Now().UTC()
	return s.notificationRepo.Put(ctx, &domain.Notification{
		NotificationID: id.New(),
		StoreID:        storeID,
		Type:           notifType,
		Title:          title,
		Message:        message,
		ReferenceID:    referenceID,
		Read:           false,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
}

func (s *service) List(ctx context.Context, storeID string, unreadOnly bool) ([]domain.Notification, error) {
	return s.notificationRepo.ListByStore(ctx, storeID, unreadOnly)
}

func (s *service) UnreadCount(ctx context.Context, storeID string) (int, error) {
	unread, err := s.notificationRepo.ListByStore(ctx, storeID, true)
	if err != nil {
		return 0, err
	}
	return len(unread), nil
}

func (s *service) Get(ctx context.Context, storeID, notificationID string) (*domain.Notification, error) {
	return s.owned(ctx, storeID, notificationID)
}

func (s *service) MarkRead(ctx context.Context, storeID, notificationID string) error {
	if _, err := s.owned(ctx, storeID, notificationID); err != nil {
		return err
	}
	return s.notificationRepo.MarkRead(ctx, notificationID)
}

func (s *service) Delete(ctx context.Context, storeID, notificationID string) error {
	if _, err := s.owned(ctx, storeID, notificationID); err != nil {
		return err
	}
	return s.notificationRepo.Delete(ctx, notificationID)
}

func (s *service) owned(ctx context.Context, storeID, notificationID string) (*domain.Notification, error) {
	n, err := s.notificationRepo.Get(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if n.StoreID != storeID {
		return nil, fmt.Errorf("notification belongs to another store: %w", domain.ErrForbidden)
	}
	return n, nil
}

func (s *service) MarkAllRead(ctx context.Context, storeID string) (int, error) {
	return s.notificationRepo.MarkAllRead(ctx, storeID)
}
