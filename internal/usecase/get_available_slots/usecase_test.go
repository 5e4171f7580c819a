package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/cache/slots"
	availabilityRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/availability"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
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
	calls        int
	lastFilter   domain.AppointmentsFilter
	onLoad       func()
}

func (f *fakeAppointmentRepo) GetByProviderWithFilter(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	f.calls++
	f.lastFilter = filter
	if f.onLoad != nil {
		f.onLoad()
	}
	return f.appointments, f.err
}

type cacheEntry struct {
	version int64
	slots   []domain.AvailableTimeSlot
}

// fakeCache повторяет версионирование RedisCache
type fakeCache struct {
	data    map[slots.Key]cacheEntry
	version int64
	getErr  error
	sets    int
}

func (c *fakeCache) Get(_ context.Context, key slots.Key) (slots.Lookup, error) {
	if c.getErr != nil {
		return slots.Lookup{}, c.getErr
	}
	e, ok := c.data[key]
	if !ok || e.version != c.version {
		return slots.Lookup{Version: c.version}, nil
	}
	return slots.Lookup{Slots: e.slots, Found: true, Version: c.version}, nil
}

func (c *fakeCache) Set(_ context.Context, key slots.Key, version int64, value []domain.AvailableTimeSlot) error {
	c.sets++
	c.data[key] = cacheEntry{version: version, slots: value}
	return nil
}

type fakeMetrics struct {
	cache     []string
	available int
}

func (m *fakeMetrics) RecordSlotsGenerated(available, _ int) { m.available += available }
func (m *fakeMetrics) RecordSlotCache(result string)         { m.cache = append(m.cache, result) }

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	monday = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	// Воскресенье накануне, чтобы понедельник не упирался в minNotice
	sundayEvening = time.Date(2025, 10, 12, 20, 0, 0, 0, time.UTC)
)

type env struct {
	uc      *UseCase
	avail   *fakeAvailabilityRepo
	appts   *fakeAppointmentRepo
	cache   *fakeCache
	metrics *fakeMetrics
}

func newEnv(now time.Time, policy domain.BookingPolicy) *env {
	e := &env{
		avail:   &fakeAvailabilityRepo{err: availabilityRepo.ErrAvailabilityNotFound},
		appts:   &fakeAppointmentRepo{},
		cache:   &fakeCache{data: map[slots.Key]cacheEntry{}},
		metrics: &fakeMetrics{},
	}
	e.uc = NewUseCase(e.avail, e.appts, e.cache, e.metrics, policy, nopLogger{})
	e.uc.timeProvider = fixedTime{now: now}
	return e
}

func TestExecute_DefaultScheduleWithAppointment(t *testing.T) {
	e := newEnv(sundayEvening, domain.DefaultBookingPolicy())
	e.appts.appointments = []*domain.Appointment{{
		ProviderID:  "provider-1",
		BookingDate: monday,
		StartTime:   "10:00",
		EndTime:     "10:30",
		Status:      domain.StatusConfirmed,
	}}

	resp, err := e.uc.Execute(context.Background(), &Request{
		ProviderID:      "provider-1",
		StartDate:       monday,
		ServiceDuration: 30,
		SlotInterval:    30,
	})
	require.NoError(t, err)

	assert.True(t, resp.IsDefaultSchedule)
	require.Len(t, resp.Slots, 16)
	assert.False(t, resp.Slots[2].IsAvailable)
	assert.Equal(t, 15, resp.AvailableCount)
	assert.Equal(t, 1, resp.UnavailableCount)
	assert.Equal(t, monday, resp.EndDate)

	assert.Equal(t, monday, *e.appts.lastFilter.StartDate)
	assert.Equal(t, monday, *e.appts.lastFilter.EndDate)
	assert.False(t, e.appts.lastFilter.IncludeCancelled)
}

func TestExecute_Defaults(t *testing.T) {
	e := newEnv(sundayEvening, domain.DefaultBookingPolicy())

	resp, err := e.uc.Execute(context.Background(), &Request{ProviderID: "provider-1", StartDate: monday})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultServiceDurationMinutes, resp.ServiceDuration)
	assert.Equal(t, domain.DefaultSlotIntervalMinutes, resp.SlotInterval)
	// 09:00..16:30 с шагом 15
	assert.Len(t, resp.Slots, 31)
}

func TestExecute_CacheHitSkipsRepository(t *testing.T) {
	e := newEnv(sundayEvening, domain.DefaultBookingPolicy())
	req := func() *Request {
		return &Request{ProviderID: "provider-1", StartDate: monday, ServiceDuration: 60, SlotInterval: 60}
	}

	first, err := e.uc.Execute(context.Background(), req())
	require.NoError(t, err)
	second, err := e.uc.Execute(context.Background(), req())
	require.NoError(t, err)

	assert.Equal(t, first.Slots, second.Slots)
	assert.Equal(t, 1, e.appts.calls)
	assert.Equal(t, []string{metrics.CacheMiss, metrics.CacheHit}, e.metrics.cache)
}

func TestExecute_CacheErrorFallsBackToGeneration(t *testing.T) {
	e := newEnv(sundayEvening, domain.DefaultBookingPolicy())
	e.cache.getErr = errors.New("redis down")

	resp, err := e.uc.Execute(context.Background(), &Request{ProviderID: "provider-1", StartDate: monday})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Slots)
	assert.Equal(t, []string{metrics.CacheError}, e.metrics.cache)
	assert.Zero(t, e.cache.sets)
}

func TestExecute_InvalidationDuringGenerationIsNotServed(t *testing.T) {
	e := newEnv(sundayEvening, domain.DefaultBookingPolicy())
	req := func() *Request {
		return &Request{ProviderID: "provider-1", StartDate: monday, ServiceDuration: 30, SlotInterval: 30}
	}

	// Запись создаётся и кэш инвалидируется, пока читатель загружает записи
	booked := &domain.Appointment{
		ProviderID:  "provider-1",
		BookingDate: monday,
		StartTime:   "10:00",
		EndTime:     "10:30",
		Status:      domain.StatusConfirmed,
	}
	e.appts.onLoad = func() {
		e.cache.version++
		e.appts.onLoad = nil
	}

	first, err := e.uc.Execute(context.Background(), req())
	require.NoError(t, err)
	assert.True(t, first.Slots[2].IsAvailable)

	e.appts.appointments = []*domain.Appointment{booked}

	second, err := e.uc.Execute(context.Background(), req())
	require.NoError(t, err)
	assert.Equal(t, 2, e.appts.calls)
	assert.Equal(t, "10:00", string(second.Slots[2].StartTime))
	assert.False(t, second.Slots[2].IsAvailable)
}

func TestExecute_MinNotice(t *testing.T) {
	now := time.Date(2025, 10, 13, 11, 10, 0, 0, time.UTC)
	policy := domain.DefaultBookingPolicy()
	policy.MinNoticeMinutes = 60

	e := newEnv(now, policy)
	resp, err := e.uc.Execute(context.Background(), &Request{
		ProviderID: "provider-1", StartDate: monday, ServiceDuration: 30, SlotInterval: 30,
	})
	require.NoError(t, err)

	for _, s := range resp.Slots {
		start, _ := s.StartTime.Minutes()
		// cutoff 12:10: первый доступный слот 12:30
		assert.Equal(t, start >= 12*60+30, s.IsAvailable, s.StartTime)
	}

	// Кэш хранит слоты без учёта текущего времени
	for _, cached := range e.cache.data {
		for _, s := range cached.slots {
			assert.True(t, s.IsAvailable)
		}
	}
}

func TestExecute_OnlyAvailable(t *testing.T) {
	e := newEnv(sundayEvening, domain.DefaultBookingPolicy())
	e.avail.err = nil
	e.avail.pa = &domain.ProviderAvailability{
		ProviderID: "provider-1",
		WeeklySchedule: []domain.DayAvailability{
			{Day: domain.Monday, IsEnabled: true, Intervals: []domain.TimeInterval{{Start: "09:00", End: "11:00"}}},
		},
		Breaks: []domain.DayAvailability{
			{Day: domain.Monday, IsEnabled: true, Intervals: []domain.TimeInterval{{Start: "10:00", End: "11:00"}}},
		},
	}

	resp, err := e.uc.Execute(context.Background(), &Request{
		ProviderID: "provider-1", StartDate: monday, ServiceDuration: 30, SlotInterval: 30, OnlyAvailable: true,
	})
	require.NoError(t, err)
	assert.False(t, resp.IsDefaultSchedule)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, "09:30", resp.Slots[1].StartTime.String())
	assert.Zero(t, resp.UnavailableCount)
}

func TestExecute_Range(t *testing.T) {
	e := newEnv(sundayEvening, domain.DefaultBookingPolicy())

	resp, err := e.uc.Execute(context.Background(), &Request{
		ProviderID: "provider-1", StartDate: monday, EndDate: monday.AddDate(0, 0, 6), ServiceDuration: 60, SlotInterval: 60,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 5*8+6)
}

func TestExecute_Errors(t *testing.T) {
	policy := domain.DefaultBookingPolicy()
	policy.AdvanceBookingDays = 14

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{"без мастера", &Request{StartDate: monday}, ErrInvalidInput},
		{"без даты", &Request{ProviderID: "p"}, ErrInvalidInput},
		{"конец раньше начала", &Request{ProviderID: "p", StartDate: monday, EndDate: monday.AddDate(0, 0, -1)}, ErrInvalidInput},
		{"слишком длинный период", &Request{ProviderID: "p", StartDate: monday, EndDate: monday.AddDate(0, 0, 31)}, ErrRangeTooLong},
		{"слишком короткая услуга", &Request{ProviderID: "p", StartDate: monday, ServiceDuration: 1}, ErrInvalidInput},
		{"слишком длинная услуга", &Request{ProviderID: "p", StartDate: monday, ServiceDuration: 600}, ErrInvalidInput},
		{"отрицательный шаг", &Request{ProviderID: "p", StartDate: monday, SlotInterval: -15}, ErrInvalidInput},
		{"прошлое", &Request{ProviderID: "p", StartDate: monday.AddDate(0, 0, -2)}, ErrInvalidDate},
		{"слишком далеко", &Request{ProviderID: "p", StartDate: monday.AddDate(0, 0, 20)}, ErrDateTooFarInFuture},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(sundayEvening, policy)
			_, err := e.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_RepositoryErrors(t *testing.T) {
	t.Run("расписание", func(t *testing.T) {
		e := newEnv(sundayEvening, domain.DefaultBookingPolicy())
		e.avail.err = errors.New("connection refused")

		_, err := e.uc.Execute(context.Background(), &Request{ProviderID: "p", StartDate: monday})
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("записи", func(t *testing.T) {
		e := newEnv(sundayEvening, domain.DefaultBookingPolicy())
		e.appts.err = errors.New("connection refused")

		_, err := e.uc.Execute(context.Background(), &Request{ProviderID: "p", StartDate: monday})
		assert.ErrorIs(t, err, ErrInternal)
		assert.Empty(t, e.cache.data)
	})
}
