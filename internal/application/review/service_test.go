package review

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/suittrip/backend/internal/domain"
)

type mockReviews struct{ mock.Mock }

func (m *mockReviews) Get(ctx context.Context, reviewID string) (*domain.Review, error) {
	args := m.Called(ctx, reviewID)
	if r, _ := args.Get(0).(*domain.Review); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockReviews) ListByStore(ctx context.Context, storeID string) ([]domain.Review, error) {
	args := m.Called(ctx, storeID)
	if rs, _ := args.Get(0).([]domain.Review); rs != nil {
		return rs, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockReviews) Update(ctx context.Context, reviewID string, updates map[string]interface{}) error {
	return m.Called(ctx, reviewID, updates).Error(0)
}

func newSvc(repo *mockReviews) Service {
	return NewService(ServiceDeps{ReviewRepo: repo})
}

func sample(rating int) domain.Review {
	return domain.Review{ReviewID: "rv1", StoreID: "s1", Rating: rating, CreatedAt: time.Now().UTC()}
}

func TestList_RatingFilter(t *testing.T) {
	repo := &mockReviews{}
	repo.On("ListByStore", mock.Anything, "s1").Return([]domain.Review{
		sample(5), sample(3), sample(5),
	}, nil)

	five := 5
	out, err := newSvc(repo).List(context.Background(), "s1", &five)
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestList_RatingOutOfRange(t *testing.T) {
	six := 6
	_, err := newSvc(&mockReviews{}).List(context.Background(), "s1", &six)
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestSummarize_SkipsInvalidRatings(t *testing.T) {
	repo := &mockReviews{}
	repo.On("ListByStore", mock.Anything, "s1").Return([]domain.Review{
		sample(5), sample(4), sample(0),
	}, nil)

	sum, err := newSvc(repo).Summarize(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Count)
	assert.InDelta(t, 4.5, sum.AverageRating, 0.001)
	assert.Equal(t, 1, sum.Distribution[5])
}

func TestRespond_OnlyOnce(t *testing.T) {
	repo := &mockReviews{}
	rv := sample(5)
	rv.Response = &domain.ReviewResponse{Content: "감사합니다"}
	repo.On("Get", mock.Anything, "rv1").Return(&rv, nil)

	_, err := newSvc(repo).Respond(context.Background(), "s1", "rv1", "또 감사합니다")
	assert.ErrorIs(t, err, domain.ErrResponseExists)
}

func TestRespond_HappyPath(t *testing.T) {
	repo := &mockReviews{}
	rv := sample(5)
	repo.On("Get", mock.Anything, "rv1").Return(&rv, nil)
	repo.On("Update", mock.Anything, "rv1", mock.Anything).Return(nil)

	out, err := newSvc(repo).Respond(context.Background(), "s1", "rv1", "감사합니다")
	require.NoError(t, err)
	require.NotNil(t, out.Response)
	assert.Equal(t, "감사합니다", out.Response.Content)
	repo.AssertExpectations(t)
}

func TestRespond_WrongStore(t *testing.T) {
	repo := &mockReviews{}
	rv := sample(5)
	repo.On("Get", mock.Anything, "rv1").Return(&rv, nil)

	_, err := newSvc(repo).Respond(context.Background(), "other", "rv1", "감사합니다")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdateResponse_RequiresExisting(t *testing.T) {
	repo := &mockReviews{}
	rv := sample(5)
	repo.On("Get", mock.Anything, "rv1").Return(&rv, nil)

	_, err := newSvc(repo).UpdateResponse(context.Background(), "s1", "rv1", "수정합니다")
	assert.ErrorIs(t, err, domain.ErrResponseNotFound)
}

func TestUpdateResponse_KeepsOriginalTimestamp(t *testing.T) {
	repo := &mockReviews{}
	created := time.Now().UTC().Add(-24 * time.Hour)
	rv := sample(5)
	rv.Response = &domain.ReviewResponse{Content: "감사합니다", CreatedAt: created}
	repo.On("Get", mock.Anything, "rv1").Return(&rv, nil)
	repo.On("Update", mock.Anything, "rv1", mock.Anything).Return(nil)

	out, err := newSvc(repo).UpdateResponse(context.Background(), "s1", "rv1", "수정했습니다")
	require.NoError(t, err)
	assert.Equal(t, created, out.Response.CreatedAt)
	assert.Equal(t, "수정했습니다", out.Response.Content)
}

func TestDeleteResponse_RequiresExisting(t *testing.T) {
	repo := &mockReviews{}
	rv := sample(5)
	repo.On("Get", mock.Anything, "rv1").Return(&rv, nil)

	_, err := newSvc(repo).DeleteResponse(context.Background(), "s1", "rv1")
	assert.ErrorIs(t, err, domain.ErrResponseNotFound)
}

func TestDeleteResponse_ClearsReply(t *testing.T) {
	repo := &mockReviews{}
	rv := sample(5)
	rv.Response = &domain.ReviewResponse{Content: "감사합니다"}
	repo.On("Get", mock.Anything, "rv1").Return(&rv, nil)
	repo.On("Update", mock.Anything, "rv1", map[string]interface{}{
		"response": nil,
	}).Return(nil)

	out, err := newSvc(repo).DeleteResponse(context.Background(), "s1", "rv1")
	require.NoError(t, err)
	assert.Nil(t, out.Response)
	repo.AssertExpectations(t)
}
