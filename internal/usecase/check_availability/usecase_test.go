package check_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/availability"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

type fakeAvailabilityRepo struct {
	pa  *domain.ProviderAvailability
	err error
}

func (f *fakeAvailabilityRepo) GetByProviderID(context.Context, string) (*domain.ProviderAvailability, error) {
	return f.pa, f.err
}

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	err          error
}

func (f *fakeAppointmentRepo) GetByProviderWithFilter(context.Context, domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	return f.appointments, f.err
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var monday = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

func newUseCase(now time.Time, avail *fakeAvailabilityRepo, appts *fakeAppointmentRepo) *UseCase {
	policy := domain.DefaultBookingPolicy()
	policy.MinNoticeMinutes = 30
	uc := NewUseCase(avail, appts, policy, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func TestExecute(t *testing.T) {
	notFound := &fakeAvailabilityRepo{err: availabilityRepo.ErrAvailabilityNotFound}
	appts := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		{BookingDate: monday, StartTime: "10:00", EndTime: "10:30", Status: domain.StatusConfirmed},
	}}
	now := time.Date(2025, 10, 13, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		date       time.Time
		start, end string
		want       availability.Reason
	}{
		{"свободно", monday, "09:00", "09:30", availability.ReasonAvailable},
		{"занято", monday, "10:15", "10:45", availability.ReasonAppointmentConflict},
		{"до начала работы", monday, "08:30", "09:00", availability.ReasonOutsideWorkingHours},
		{"слишком поздно", monday, "08:15", "08:45", ReasonTooLate},
		{"воскресенье", monday.AddDate(0, 0, 6), "10:00", "10:30", availability.ReasonDayDisabled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newUseCase(now, notFound, appts)
			resp, err := uc.Execute(context.Background(), &Request{
				ProviderID: "provider-1",
				Date:       tt.date,
				StartTime:  types.TimeString(tt.start),
				EndTime:    types.TimeString(tt.end),
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.Reason)
			assert.Equal(t, tt.want == availability.ReasonAvailable, resp.Available)
		})
	}
}

func TestExecute_Validation(t *testing.T) {
	uc := newUseCase(monday, &fakeAvailabilityRepo{}, &fakeAppointmentRepo{})

	for _, req := range []*Request{
		{Date: monday, StartTime: "09:00", EndTime: "09:30"},
		{ProviderID: "p", StartTime: "09:00", EndTime: "09:30"},
		{ProviderID: "p", Date: monday, StartTime: "9:00", EndTime: "09:30"},
		{ProviderID: "p", Date: monday, StartTime: "09:00", EndTime: "24:00"},
		{ProviderID: "p", Date: monday, StartTime: "10:00", EndTime: "09:30"},
	} {
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestExecute_RepositoryError(t *testing.T) {
	now := time.Date(2025, 10, 12, 8, 0, 0, 0, time.UTC)
	uc := newUseCase(now, &fakeAvailabilityRepo{err: errors.New("boom")}, &fakeAppointmentRepo{})

	_, err := uc.Execute(context.Background(), &Request{ProviderID: "p", Date: monday, StartTime: "09:00", EndTime: "09:30"})
	assert.ErrorIs(t, err, ErrInternal)
}
