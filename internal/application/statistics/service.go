// Package statistics aggregates reservation data into the dashboards the
// store app shows: daily usage, monthly trends and revenue.
package statistics

import (
	"context"
	"time"

	"github.com/suittrip/backend/internal/domain"
)

type Reservations interface {
	ListByStore(ctx context.Context, storeID string, status *string) ([]domain.Reservation, error)
}

type Storages interface {
	ListByStore(ctx context.Context, storeID string) ([]domain.StorageUnit, error)
}

// Daily is a single day's dashboard snapshot.
type Daily struct {
	Date            string  `json:"date"` // "2026-08-29"
	Reservations    int     `json:"reservations"`
	Completed       int     `json:"completed"`
	Cancelled       int     `json:"cancelled"`
	Revenue         int     `json:"revenue"` // KRW, completed reservations only
	BagCount        int     `json:"bagCount"`
	OccupancyRate   float64 `json:"occupancyRate"` // occupied / total units
	AvailableUnits  int     `json:"availableUnits"`
	OccupiedUnits   int     `json:"occupiedUnits"`
	TotalUnits      int     `json:"totalUnits"`
	PendingApproval int     `json:"pendingApproval"`
}

// MonthlyPoint is one month's totals within a trend series.
type MonthlyPoint struct {
	Month        string `json:"month"` // "2026-08"
	Reservations int    `json:"reservations"`
	Completed    int    `json:"completed"`
	Revenue      int    `json:"revenue"`
}

// Revenue summarizes earnings over a period.
type Revenue struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
	ByMethod  map[string]int `json:"byMethod"`
}

type Service interface {
	Daily(ctx context.Context, storeID string, day time.Time) (*Daily, error)
	// Monthly returns one point per month, oldest first, covering the last
	// months calendar months including the current one.
	Monthly(ctx context.Context, storeID string, months int) ([]MonthlyPoint, error)
	Revenue(ctx context.Context, storeID string, from, to time.Time) (*Revenue, error)
}

type ServiceDeps struct {
	ReservationRepo Reservations
	StorageRepo     Storages
}

type service struct {
	reservationRepo Reservations
	storageRepo     Storages
}

func NewService(deps ServiceDeps) Service {
	return &service{reservationRepo: deps.ReservationRepo, storageRepo: deps.StorageRepo}
}

func (s *service) Daily(ctx context.Context, storeID string, day time.Time) (*Daily, error) {
	reservations, err := s.reservationRepo.ListByStore(ctx, storeID, nil)
	if err != nil {
		return nil, err
	}
	units, err := s.storageRepo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	d := &Daily{Date: dayStart.Format("2006-01-02")}
	for _, rv := range reservations {
		if rv.CreatedAt.Before(dayStart) || !rv.CreatedAt.Before(dayEnd) {
			if rv.Status == domain.ReservationPending {
				d.PendingApproval++
			}
			continue
		}
		d.Reservations++
		d.BagCount += rv.BagCount
		switch rv.Status {
		case domain.ReservationCompleted:
			d.Completed++
			d.Revenue += rv.TotalAmount
		case domain.ReservationCancelled:
			d.Cancelled++
		case domain.ReservationPending:
			d.PendingApproval++
		}
	}
	for _, u := range units {
		switch u.Status {
		case domain.StorageAvailable:
			d.AvailableUnits++
		case domain.StorageOccupied:
			d.OccupiedUnits++
		}
	}
	d.TotalUnits = len(units)
	if d.TotalUnits > 0 {
		d.OccupancyRate = float64(d.OccupiedUnits) / float64(d.TotalUnits)
	}
	return d, nil
}

func (s *service) Monthly(ctx context.Context, storeID string, months int) ([]MonthlyPoint, error) {
	if months <= 0 {
		months = 6
	}
	reservations, err := s.reservationRepo.ListByStore(ctx, storeID, nil)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	points := make([]MonthlyPoint, months)
	index := make(map[string]*MonthlyPoint, months)
	for i := 0; i < months; i++ {
		m := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
			AddDate(0, i-(months-1), 0)
		key := m.Format("2006-01")
		points[i] = MonthlyPoint{Month: key}
		index[key] = &points[i]
	}

	for _, rv := range reservations {
		p, ok := index[rv.CreatedAt.Format("2006-01")]
		if !ok {
			continue
		}
		p.Reservations++
		if rv.Status == domain.ReservationCompleted {
			p.Completed++
			p.Revenue += rv.TotalAmount
		}
	}
	return points, nil
}

func (s *service) Revenue(ctx context.Context, storeID string, from, to time.Time) (*Revenue, error) {
	completed := domain.ReservationCompleted
	reservations, err := s.reservationRepo.ListByStore(ctx, storeID, &completed)
	if err != nil {
		return nil, err
	}

	r := &Revenue{
		From:     from.Format("2006-01-02"),
		To:       to.Format("2006-01-02"),
		ByMethod: map[string]int{},
	}
	for _, rv := range reservations {
		done := rv.CreatedAt
		if rv.ActualEndTime != nil {
			done = *rv.ActualEndTime
		}
		if done.Before(from) || done.After(to) {
			continue
		}
		r.Completed++
		r.Total += rv.TotalAmount
		method := rv.PaymentMethod
		if method == "" {
			method = "unknown"
		}
		r.ByMethod[method] += rv.TotalAmount
	}
	return r, nil
}
