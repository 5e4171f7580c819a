package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/availability"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/txmanager"
)

// UseCase use case для создания записи к мастеру
type UseCase struct {
	appointmentRepo  AppointmentRepository
	availabilityRepo AvailabilityRepository
	cache            SlotCache
	publisher        EventPublisher
	metrics          Metrics
	txManager        TransactionManager
	policy           domain.BookingPolicy
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	availabilityRepo AvailabilityRepository,
	cache SlotCache,
	publisher EventPublisher,
	metrics Metrics,
	txManager TransactionManager,
	policy domain.BookingPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo:  appointmentRepo,
		availabilityRepo: availabilityRepo,
		cache:            cache,
		publisher:        publisher,
		metrics:          metrics,
		txManager:        txManager,
		policy:           policy,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case создания записи.
// Проверка и вставка идут в одной сериализуемой транзакции, записи дня блокируются FOR UPDATE.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: client=%s, provider=%s, date=%s, time=%s, duration=%d",
		req.ClientID, req.ProviderID, req.Date.Format(domain.DateFormat), req.StartTime, req.DurationMinutes)

	result, err := uc.execute(ctx, req)
	if err != nil {
		if !errors.Is(err, ErrInternal) {
			uc.metrics.RecordAppointment(metrics.AppointmentRejected)
		}
		return nil, err
	}

	uc.metrics.RecordAppointment(metrics.AppointmentCreated)
	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	// После коммита: сбои кэша и брокера не отменяют запись
	if err := uc.cache.InvalidateProvider(ctx, result.ProviderID); err != nil {
		uc.logger.Warn("CreateAppointment: failed to invalidate slots cache for provider=%s: %v", result.ProviderID, err)
	}
	if err := uc.publisher.PublishAppointmentCreated(ctx, result); err != nil {
		uc.logger.Warn("CreateAppointment: failed to publish event for appointment id=%d: %v", result.ID, err)
	}

	return toResponse(result), nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	end, err := endTime(req.StartTime, req.DurationMinutes)
	if err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата и время в таймзоне сервиса
	loc := uc.policy.Loc()
	now := uc.timeProvider.Now().In(loc)
	req.Date = domain.DateIn(req.Date, loc)

	if err := validateDate(req.Date, now, uc.policy); err != nil {
		uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
		return nil, err
	}

	if err := validateNotice(req.Date, req.StartTime, now, uc.policy); err != nil {
		uc.logger.Warn("CreateAppointment: booking time validation failed: %v", err)
		return nil, err
	}

	var result *domain.Appointment

	// 3. Проверка доступности и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		pa, err := uc.availabilityRepo.GetByProviderID(txCtx, req.ProviderID)
		if err != nil {
			if !errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
				uc.logger.Error("CreateAppointment: failed to get availability: %v", err)
				return fmt.Errorf("%w: failed to get availability: %w", ErrInternal, err)
			}
			uc.logger.Info("CreateAppointment: using default availability for provider=%s", req.ProviderID)
			pa = availability.NewDefaultAvailability(req.ProviderID, now)
		}

		// Записи дня с блокировкой (FOR UPDATE)
		appointments, err := uc.appointmentRepo.GetByProviderWithFilter(txCtx, domain.AppointmentsFilter{
			ProviderID: req.ProviderID,
			StartDate:  &req.Date,
			EndDate:    &req.Date,
		})
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
		}

		reason := availability.CheckAvailability(req.Date, req.StartTime, end, pa, appointments)
		if err := reasonToError(reason); err != nil {
			uc.logger.Warn("CreateAppointment: slot %s-%s not available: %s", req.StartTime, end, reason)
			return err
		}

		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			ProviderID:  req.ProviderID,
			ClientID:    req.ClientID,
			ServiceID:   req.ServiceID,
			BookingDate: req.Date,
			StartTime:   req.StartTime,
			EndTime:     end,
			Status:      domain.StatusConfirmed,
			Notes:       req.Notes,
		})
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		// Параллельная запись заняла тот же день и повторы не помогли
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CreateAppointment: concurrent booking for provider=%s, date=%s: %v",
				req.ProviderID, req.Date.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: concurrent booking", ErrSlotNotAvailable)
		}
		return nil, err
	}

	return result, nil
}

func toResponse(appt *domain.Appointment) *Response {
	return &Response{
		ID:              appt.ID,
		ProviderID:      appt.ProviderID,
		ClientID:        appt.ClientID,
		ServiceID:       appt.ServiceID,
		BookingDate:     appt.BookingDate,
		StartTime:       appt.StartTime,
		EndTime:         appt.EndTime,
		DurationMinutes: appt.DurationMinutes(),
		Status:          string(appt.Status),
		Notes:           appt.Notes,
		CreatedAt:       appt.CreatedAt,
		UpdatedAt:       appt.UpdatedAt,
	}
}
