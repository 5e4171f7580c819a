package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

type fakeRepo struct {
	byID      map[int64]*domain.Appointment
	list      []*domain.Appointment
	filter    domain.AppointmentsFilter
	cancelled []int64
	cancelErr error
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := f.byID[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	copied := *appt
	return &copied, nil
}

func (f *fakeRepo) GetByProviderWithFilter(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	f.filter = filter
	return f.list, nil
}

func (f *fakeRepo) Cancel(_ context.Context, id int64, _ *string) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.cancelled = append(f.cancelled, id)
	return nil
}

type fakeCache struct{ invalidated []string }

func (f *fakeCache) InvalidateProvider(_ context.Context, providerID string) error {
	f.invalidated = append(f.invalidated, providerID)
	return nil
}

type fakePublisher struct{ published []*domain.Appointment }

func (f *fakePublisher) PublishAppointmentCancelled(_ context.Context, appt *domain.Appointment) error {
	f.published = append(f.published, appt)
	return errors.New("kafka down")
}

type fakeMetrics struct{ events []string }

func (f *fakeMetrics) RecordAppointment(event string) { f.events = append(f.events, event) }

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type env struct {
	repo      *fakeRepo
	cache     *fakeCache
	publisher *fakePublisher
	metrics   *fakeMetrics
	service   *Service
}

func newEnv() *env {
	e := &env{
		repo: &fakeRepo{byID: map[int64]*domain.Appointment{
			1: {ID: 1, ProviderID: "provider-1", ClientID: "client-1", StartTime: "10:00", EndTime: "10:30", Status: domain.StatusConfirmed},
			2: {ID: 2, ProviderID: "provider-1", ClientID: "client-1", StartTime: "11:00", EndTime: "11:30", Status: domain.StatusCompleted},
		}},
		cache:     &fakeCache{},
		publisher: &fakePublisher{},
		metrics:   &fakeMetrics{},
	}
	e.service = NewService(e.repo, e.cache, e.publisher, e.metrics, fakeTxManager{}, nopLogger{})
	e.service.now = func() time.Time { return time.Date(2025, 10, 13, 8, 0, 0, 0, time.UTC) }
	return e
}

func TestGetByID(t *testing.T) {
	e := newEnv()

	resp, err := e.service.GetByID(context.Background(), 1, "client-1")
	require.NoError(t, err)
	assert.Equal(t, 30, resp.DurationMinutes)

	_, err = e.service.GetByID(context.Background(), 1, "provider-1")
	assert.NoError(t, err)

	_, err = e.service.GetByID(context.Background(), 1, "stranger")
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = e.service.GetByID(context.Background(), 99, "client-1")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestGetProviderAppointments(t *testing.T) {
	e := newEnv()
	start := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 6)

	resp, err := e.service.GetProviderAppointments(context.Background(), &models.GetProviderAppointmentsRequest{
		UserID:     "provider-1",
		ProviderID: "provider-1",
		StartDate:  &start,
		EndDate:    &end,
		Status:     ptr.Ptr("confirmed"),
	})
	require.NoError(t, err)
	assert.NotNil(t, resp.Appointments)
	require.NotNil(t, e.repo.filter.Status)
	assert.Equal(t, domain.StatusConfirmed, *e.repo.filter.Status)

	_, err = e.service.GetProviderAppointments(context.Background(), &models.GetProviderAppointmentsRequest{
		UserID: "client-1", ProviderID: "provider-1",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = e.service.GetProviderAppointments(context.Background(), &models.GetProviderAppointmentsRequest{
		UserID: "provider-1", ProviderID: "provider-1", StartDate: &end, EndDate: &start,
	})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = e.service.GetProviderAppointments(context.Background(), &models.GetProviderAppointmentsRequest{
		UserID: "provider-1", ProviderID: "provider-1", Status: ptr.Ptr("cancelled_by_user"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancel(t *testing.T) {
	e := newEnv()

	resp, err := e.service.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{
		UserID:             "client-1",
		CancellationReason: ptr.Ptr("заболел"),
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.Equal(t, "заболел", *resp.CancellationReason)
	require.NotNil(t, resp.CancelledAt)
	assert.Equal(t, "2025-10-13T08:00:00Z", *resp.CancelledAt)

	assert.Equal(t, []int64{1}, e.repo.cancelled)
	assert.Equal(t, []string{"provider-1"}, e.cache.invalidated)
	assert.Len(t, e.publisher.published, 1)
	assert.Equal(t, []string{metrics.AppointmentCancelled}, e.metrics.events)
}

func TestCancel_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		id      int64
		userID  string
		wantErr error
	}{
		{"чужая запись", 1, "stranger", ErrAccessDenied},
		{"завершенная", 2, "client-1", ErrCannotCancel},
		{"не найдена", 99, "client-1", ErrAppointmentNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv()
			_, err := e.service.Cancel(context.Background(), tt.id, &models.CancelAppointmentRequest{UserID: tt.userID})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, e.repo.cancelled)
			assert.Empty(t, e.cache.invalidated)
			assert.Empty(t, e.metrics.events)
		})
	}
}

func TestCancel_RepositoryError(t *testing.T) {
	e := newEnv()
	e.repo.cancelErr = errors.New("connection reset")

	_, err := e.service.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{UserID: "provider-1"})
	assert.ErrorIs(t, err, ErrInternal)
}
