package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/cache/slots"
	availabilityRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/availability"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
)

// UseCase use case для получения слотов мастера на дату или период
type UseCase struct {
	availabilityRepo AvailabilityRepository
	appointmentRepo  AppointmentRepository
	cache            SlotCache
	metrics          Metrics
	policy           domain.BookingPolicy
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	appointmentRepo AppointmentRepository,
	cache SlotCache,
	metrics Metrics,
	policy domain.BookingPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		appointmentRepo:  appointmentRepo,
		cache:            cache,
		metrics:          metrics,
		policy:           policy,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: provider=%s, start=%s, end=%s, duration=%d, interval=%d",
		req.ProviderID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat),
		req.ServiceDuration, req.SlotInterval)

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.policy); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущее время и даты в часовом поясе расписаний
	loc := uc.policy.Loc()
	now := uc.timeProvider.Now().In(loc)
	req.StartDate = domain.DateIn(req.StartDate, loc)
	req.EndDate = domain.DateIn(req.EndDate, loc)

	if domain.IsDateInPast(req.StartDate, now) {
		uc.logger.Warn("GetAvailableSlots: start date %s is in the past", req.StartDate.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}
	if uc.policy.IsTooFarAhead(req.EndDate, now) {
		uc.logger.Warn("GetAvailableSlots: end date %s exceeds %d days", req.EndDate.Format(domain.DateFormat), uc.policy.AdvanceBookingDays)
		return nil, fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, uc.policy.AdvanceBookingDays)
	}

	// 3. Расписание мастера, если не сохранено - шаблон по умолчанию
	isDefault := false
	pa, err := uc.availabilityRepo.GetByProviderID(ctx, req.ProviderID)
	if err != nil {
		if !errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
			uc.logger.Error("GetAvailableSlots: failed to get availability for provider=%s: %v", req.ProviderID, err)
			return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
		}
		pa = availability.NewDefaultAvailability(req.ProviderID, now)
		isDefault = true
		uc.logger.Info("GetAvailableSlots: using default availability for provider=%s", req.ProviderID)
	}

	// 4. Слоты из кэша или генерация
	generated, err := uc.slots(ctx, req, pa)
	if err != nil {
		return nil, err
	}

	// 5. Слоты раньше now + minNotice недоступны
	result := uc.applyNotice(generated, now)
	if req.OnlyAvailable {
		result = domain.OnlyAvailable(result)
	}

	available, unavailable := domain.CountAvailability(result)
	uc.metrics.RecordSlotsGenerated(available, unavailable)

	uc.logger.Info("GetAvailableSlots: provider=%s, %d slots (%d available)", req.ProviderID, len(result), available)

	return &Response{
		ProviderID:        req.ProviderID,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		ServiceDuration:   req.ServiceDuration,
		SlotInterval:      req.SlotInterval,
		Slots:             result,
		AvailableCount:    available,
		UnavailableCount:  unavailable,
		IsDefaultSchedule: isDefault,
	}, nil
}

func (uc *UseCase) slots(ctx context.Context, req *Request, pa *domain.ProviderAvailability) ([]domain.AvailableTimeSlot, error) {
	key := slots.Key{
		ProviderID: req.ProviderID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Duration:   req.ServiceDuration,
		Interval:   req.SlotInterval,
	}

	// Версия читается до загрузки записей: если запись появится позже,
	// слоты лягут под устаревшую версию и не будут прочитаны
	lookup, err := uc.cache.Get(ctx, key)
	cacheOK := err == nil
	switch {
	case err != nil:
		uc.metrics.RecordSlotCache(metrics.CacheError)
		uc.logger.Warn("GetAvailableSlots: cache read failed for provider=%s: %v", req.ProviderID, err)
	case lookup.Found:
		uc.metrics.RecordSlotCache(metrics.CacheHit)
		return lookup.Slots, nil
	default:
		uc.metrics.RecordSlotCache(metrics.CacheMiss)
	}

	filter := domain.AppointmentsFilter{
		ProviderID: req.ProviderID,
		StartDate:  &req.StartDate,
		EndDate:    &req.EndDate,
	}

	appointments, err := uc.appointmentRepo.GetByProviderWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments for provider=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	generated := availability.GenerateSlotsForRange(req.StartDate, req.EndDate, pa, appointments, req.ServiceDuration, req.SlotInterval)

	if cacheOK {
		if err := uc.cache.Set(ctx, key, lookup.Version, generated); err != nil {
			uc.logger.Warn("GetAvailableSlots: cache write failed for provider=%s: %v", req.ProviderID, err)
		}
	}

	return generated, nil
}

// applyNotice помечает недоступными слоты, начинающиеся раньше now + minNotice.
// Возвращает копию, исходный срез не меняется.
func (uc *UseCase) applyNotice(in []domain.AvailableTimeSlot, now time.Time) []domain.AvailableTimeSlot {
	cutoff := uc.policy.NoticeCutoff(now)
	loc := uc.policy.Loc()

	out := make([]domain.AvailableTimeSlot, len(in))
	copy(out, in)

	for i := range out {
		if !out[i].IsAvailable {
			continue
		}
		date, err := time.ParseInLocation(domain.DateFormat, out[i].Date, loc)
		if err != nil {
			continue
		}
		start, err := domain.At(date, out[i].StartTime)
		if err != nil {
			continue
		}
		if start.Before(cutoff) {
			out[i].IsAvailable = false
		}
	}

	return out
}
