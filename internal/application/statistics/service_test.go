package statistics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/suittrip/backend/internal/domain"
)

type mockReservations struct{ mock.Mock }

func (m *mockReservations) ListByStore(ctx context.Context, storeID string, status *string) ([]domain.Reservation, error) {
	args := m.Called(ctx, storeID, status)
	if rs, _ := args.Get(0).([]domain.Reservation); rs != nil {
		return rs, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockStorages struct{ mock.Mock }

func (m *mockStorages) ListByStore(ctx context.Context, storeID string) ([]domain.StorageUnit, error) {
	args := m.Called(ctx, storeID)
	if us, _ := args.Get(0).([]domain.StorageUnit); us != nil {
		return us, args.Error(1)
	}
	return nil, args.Error(1)
}

func newService(rr *mockReservations, sr *mockStorages) Service {
	return NewService(ServiceDeps{ReservationRepo: rr, StorageRepo: sr})
}

func TestDaily_CountsAndOccupancy(t *testing.T) {
	rr := &mockReservations{}
	sr := &mockStorages{}

	today := time.Date(2026, 8, 29, 14, 0, 0, 0, time.UTC)
	yesterday := today.Add(-24 * time.Hour)

	rr.On("ListByStore", mock.Anything, "s1", (*string)(nil)).Return([]domain.Reservation{
		{Status: domain.ReservationCompleted, TotalAmount: 12000, BagCount: 2, CreatedAt: today},
		{Status: domain.ReservationCancelled, BagCount: 1, CreatedAt: today},
		{Status: domain.ReservationPending, BagCount: 1, CreatedAt: today},
		{Status: domain.ReservationCompleted, TotalAmount: 8000, CreatedAt: yesterday},
	}, nil)
	sr.On("ListByStore", mock.Anything, "s1").Return([]domain.StorageUnit{
		{Status: domain.StorageOccupied},
		{Status: domain.StorageAvailable},
		{Status: domain.StorageAvailable},
		{Status: domain.StorageMaintenance},
	}, nil)

	d, err := newService(rr, sr).Daily(context.Background(), "s1", today)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-29", d.Date)
	assert.Equal(t, 3, d.Reservations) // yesterday's excluded
	assert.Equal(t, 1, d.Completed)
	assert.Equal(t, 1, d.Cancelled)
	assert.Equal(t, 1, d.PendingApproval)
	assert.Equal(t, 12000, d.Revenue)
	assert.Equal(t, 4, d.BagCount)
	assert.Equal(t, 4, d.TotalUnits)
	assert.Equal(t, 1, d.OccupiedUnits)
	assert.Equal(t, 2, d.AvailableUnits)
	assert.InDelta(t, 0.25, d.OccupancyRate, 1e-9)
}

func TestDaily_NoUnits_ZeroOccupancy(t *testing.T) {
	rr := &mockReservations{}
	sr := &mockStorages{}
	rr.On("ListByStore", mock.Anything, "s1", (*string)(nil)).Return([]domain.Reservation{}, nil)
	sr.On("ListByStore", mock.Anything, "s1").Return([]domain.StorageUnit{}, nil)

	d, err := newService(rr, sr).Daily(context.Background(), "s1", time.Now())
	require.NoError(t, err)
	assert.Zero(t, d.OccupancyRate)
}

func TestMonthly_BucketsByMonth(t *testing.T) {
	rr := &mockReservations{}
	now := time.Now()
	lastMonth := now.AddDate(0, -1, 0)

	rr.On("ListByStore", mock.Anything, "s1", (*string)(nil)).Return([]domain.Reservation{
		{Status: domain.ReservationCompleted, TotalAmount: 5000, CreatedAt: now},
		{Status: domain.ReservationPending, CreatedAt: now},
		{Status: domain.ReservationCompleted, TotalAmount: 7000, CreatedAt: lastMonth},
		{Status: domain.ReservationCompleted, TotalAmount: 9000, CreatedAt: now.AddDate(-1, 0, 0)}, // outside window
	}, nil)

	points, err := newService(rr, nil).Monthly(context.Background(), "s1", 3)
	require.NoError(t, err)
	require.Len(t, points, 3)

	last := points[2]
	assert.Equal(t, now.Format("2006-01"), last.Month)
	assert.Equal(t, 2, last.Reservations)
	assert.Equal(t, 1, last.Completed)
	assert.Equal(t, 5000, last.Revenue)

	prev := points[1]
	assert.Equal(t, lastMonth.Format("2006-01"), prev.Month)
	assert.Equal(t, 7000, prev.Revenue)
}

func TestRevenue_FiltersWindowAndGroupsByMethod(t *testing.T) {
	rr := &mockReservations{}
	completed := domain.ReservationCompleted
	in := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	out := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)

	rr.On("ListByStore", mock.Anything, "s1", &completed).Return([]domain.Reservation{
		{Status: completed, TotalAmount: 10000, PaymentMethod: "card", CreatedAt: in},
		{Status: completed, TotalAmount: 4000, CreatedAt: in},
		{Status: completed, TotalAmount: 9000, PaymentMethod: "card", CreatedAt: out},
	}, nil)

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)
	r, err := newService(rr, nil).Revenue(context.Background(), "s1", from, to)
	require.NoError(t, err)
	assert.Equal(t, 14000, r.Total)
	assert.Equal(t, 2, r.Completed)
	assert.Equal(t, 10000, r.ByMethod["card"])
	assert.Equal(t, 4000, r.ByMethod["unknown"])
}
