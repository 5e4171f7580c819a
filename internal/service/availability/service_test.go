package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/availability"
)

type fakeRepo struct {
	stored    map[string]*domain.ProviderAvailability
	getErr    error
	upserted  []*domain.ProviderAvailability
	deleteErr error
}

func (f *fakeRepo) GetByProviderID(_ context.Context, providerID string) (*domain.ProviderAvailability, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	pa, ok := f.stored[providerID]
	if !ok {
		return nil, availabilityRepo.ErrAvailabilityNotFound
	}
	return pa, nil
}

func (f *fakeRepo) Upsert(_ context.Context, pa *domain.ProviderAvailability) (*domain.ProviderAvailability, error) {
	f.upserted = append(f.upserted, pa)
	return pa, nil
}

func (f *fakeRepo) Delete(context.Context, string) error { return f.deleteErr }

type fakeCache struct{ invalidated []string }

func (f *fakeCache) InvalidateProvider(_ context.Context, providerID string) error {
	f.invalidated = append(f.invalidated, providerID)
	return nil
}

type fakePublisher struct{ published int }

func (f *fakePublisher) PublishAvailabilityUpdated(context.Context, *domain.ProviderAvailability) error {
	f.published++
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService(repo *fakeRepo) (*Service, *fakeCache, *fakePublisher) {
	cache, pub := &fakeCache{}, &fakePublisher{}
	s := NewService(repo, cache, pub, nopLogger{})
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return s, cache, pub
}

func TestGet(t *testing.T) {
	stored := &domain.ProviderAvailability{ID: "a-1", ProviderID: "provider-1"}
	s, _, _ := newService(&fakeRepo{stored: map[string]*domain.ProviderAvailability{"provider-1": stored}})

	resp, err := s.Get(context.Background(), "provider-1")
	require.NoError(t, err)
	assert.False(t, resp.IsDefault)
	assert.Equal(t, "a-1", resp.ID)
	assert.NotNil(t, resp.Breaks)

	resp, err = s.Get(context.Background(), "provider-2")
	require.NoError(t, err)
	assert.True(t, resp.IsDefault)
	assert.Equal(t, "availability-provider-2-1700000000000", resp.ID)
	assert.Len(t, resp.WeeklySchedule, 7)
}

func TestGet_Errors(t *testing.T) {
	s, _, _ := newService(&fakeRepo{getErr: errors.New("boom")})

	_, err := s.Get(context.Background(), "provider-1")
	assert.ErrorIs(t, err, ErrInternal)

	_, err = s.Get(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestReset(t *testing.T) {
	repo := &fakeRepo{}
	s, cache, pub := newService(repo)

	_, err := s.Reset(context.Background(), "provider-1", "someone-else")
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.upserted)

	resp, err := s.Reset(context.Background(), "provider-1", "provider-1")
	require.NoError(t, err)
	assert.Len(t, resp.WeeklySchedule, 7)
	require.Len(t, repo.upserted, 1)
	assert.Equal(t, []string{"provider-1"}, cache.invalidated)
	assert.Equal(t, 1, pub.published)
}

func TestDelete(t *testing.T) {
	s, cache, _ := newService(&fakeRepo{})
	require.NoError(t, s.Delete(context.Background(), "provider-1", "provider-1"))
	assert.Equal(t, []string{"provider-1"}, cache.invalidated)

	s, _, _ = newService(&fakeRepo{deleteErr: availabilityRepo.ErrAvailabilityNotFound})
	assert.ErrorIs(t, s.Delete(context.Background(), "provider-1", "provider-1"), ErrAvailabilityNotFound)
	assert.ErrorIs(t, s.Delete(context.Background(), "provider-1", "x"), ErrAccessDenied)
}

func TestValidateIntervals(t *testing.T) {
	s, _, _ := newService(&fakeRepo{})

	assert.True(t, s.ValidateIntervals([]domain.TimeInterval{{Start: "09:00", End: "12:00"}, {Start: "12:00", End: "13:00"}}).IsValid)

	res := s.ValidateIntervals([]domain.TimeInterval{{Start: "09:00", End: "12:00"}, {Start: "11:00", End: "13:00"}})
	assert.False(t, res.IsValid)
	assert.Equal(t, "Time intervals cannot overlap", res.Error)
}
