// Package review exposes customer reviews to the store owner and lets them
// post a single reply per review.
package review

import (
	"context"
	"fmt"
	"time"

	"github.com/suittrip/backend/internal/domain"
)

type Reviews interface {
	Get(ctx context.Context, reviewID string) (*domain.Review, error)
	ListByStore(ctx context.Context, storeID string) ([]domain.Review, error)
	Update(ctx context.Context, reviewID string, updates map[string]interface{}) error
}

// Summary aggregates a store's review scores.
type Summary struct {
	Count         int         `json:"count"`
	AverageRating float64     `json:"averageRating"`
	Distribution  map[int]int `json:"distribution"` // rating -> count
}

type Service interface {
	List(ctx context.Context, storeID string, rating *int) ([]domain.Review, error)
	Get(ctx context.Context, storeID, reviewID string) (*domain.Review, error)
	Summarize(ctx context.Context, storeID string) (*Summary, error)
	// Respond posts the owner's reply. A review holds at most one reply;
	// posting over an existing one is refused.
	Respond(ctx context.Context, storeID, reviewID, content string) (*domain.Review, error)
	UpdateResponse(ctx context.Context, storeID, reviewID, content string) (*domain.Review, error)
	DeleteResponse(ctx context.Context, storeID, reviewID string) (*domain.Review, error)
}

type ServiceDeps struct {
	ReviewRepo Reviews
}

type service struct {
	reviewRepo Reviews
}

func NewService(deps ServiceDeps) Service {
	return &service{reviewRepo: deps.ReviewRepo}
}

func (s *service) List(ctx context.Context, storeID string, rating *int) ([]domain.Review, error) {
	if rating != nil && (*rating < 1 || *rating > 5) {
		return nil, fmt.Errorf("rating must be 1-5: %w", domain.ErrBadRequest)
	}
	reviews, err := s.reviewRepo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if rating == nil {
		return reviews, nil
	}
	filtered := reviews[:0:0]
	for _, r := range reviews {
		if r.Rating == *rating {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

func (s *service) Get(ctx context.Context, storeID, reviewID string) (*domain.Review, error) {
	return s.owned(ctx, storeID, reviewID)
}

func (s *service) Summarize(ctx context.Context, storeID string) (*Summary, error) {
	reviews, err := s.reviewRepo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	sum := &Summary{Distribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}}
	total := 0
	for _, r := range reviews {
		if r.Rating < 1 || r.Rating > 5 {
			continue
		}
		sum.Count++
		sum.Distribution[r.Rating]++
		total += r.Rating
	}
	if sum.Count > 0 {
		sum.AverageRating = float64(total) / float64(sum.Count)
	}
	return sum, nil
}

func (s *service) Respond(ctx context.Context, storeID, reviewID, content string) (*domain.Review, error) {
	if content == "" {
		return nil, fmt.Errorf("response content required: %w", domain.ErrBadRequest)
	}
	rv, err := s.owned(ctx, storeID, reviewID)
	if err != nil {
		return nil, err
	}
	if rv.Response != nil {
		return nil, fmt.Errorf("review %s: %w", reviewID, domain.ErrResponseExists)
	}

	now := time.Now().UTC()
	resp := &domain.ReviewResponse{Content: content, CreatedAt: now, UpdatedAt: now}
	if err := s.reviewRepo.Update(ctx, reviewID, map[string]interface{}{
		"response": resp,
	}); err != nil {
		return nil, err
	}
	rv.Response = resp
	return rv, nil
}

func (s *service) UpdateResponse(ctx context.Context, storeID, reviewID, content string) (*domain.Review, error) {
	if content == "" {
		return nil, fmt.Errorf("response content required: %w", domain.ErrBadRequest)
	}
	rv, err := s.owned(ctx, storeID, reviewID)
	if err != nil {
		return nil, err
	}
	if rv.Response == nil {
		return nil, fmt.Errorf("review %s: %w", reviewID, domain.ErrResponseNotFound)
	}

	// Editing keeps the original reply timestamp.
	resp := &domain.ReviewResponse{
		Content:   content,
		CreatedAt: rv.Response.CreatedAt,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.reviewRepo.Update(ctx, reviewID, map[string]interface{}{
		"response": resp,
	}); err != nil {
		return nil, err
	}
	rv.Response = resp
	return rv, nil
}

func (s *service) DeleteResponse(ctx context.Context, storeID, reviewID string) (*domain.Review, error) {
	rv, err := s.owned(ctx, storeID, reviewID)
	if err != nil {
		return nil, err
	}
	if rv.Response == nil {
		return nil, fmt.Errorf("review %s: %w", reviewID, domain.ErrResponseNotFound)
	}
	if err := s.reviewRepo.Update(ctx, reviewID, map[string]interface{}{
		"response": nil,
	}); err != nil {
		return nil, err
	}
	rv.Response = nil
	return rv, nil
}

func (s *service) owned(ctx context.Context, storeID, reviewID string) (*domain.Review, error) {
	rv, err := s.reviewRepo.Get(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if rv.StoreID != storeID {
		return nil, fmt.Errorf("review belongs to another store: %w", domain.ErrForbidden)
	}
	return rv, nil
}
