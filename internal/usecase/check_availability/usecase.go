package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/availability"
)

// UseCase use case точечной проверки: можно ли записаться ровно на этот интервал
type UseCase struct {
	availabilityRepo AvailabilityRepository
	appointmentRepo  AppointmentRepository
	policy           domain.BookingPolicy
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	appointmentRepo AppointmentRepository,
	policy domain.BookingPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		appointmentRepo:  appointmentRepo,
		policy:           policy,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет проверку
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: provider=%s, date=%s, %s-%s",
		req.ProviderID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	loc := uc.policy.Loc()
	now := uc.timeProvider.Now().In(loc)
	req.Date = domain.DateIn(req.Date, loc)

	resp := &Response{
		ProviderID: req.ProviderID,
		Date:       req.Date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
	}

	start, err := domain.At(req.Date, req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if start.Before(uc.policy.NoticeCutoff(now)) {
		resp.Reason = ReasonTooLate
		return resp, nil
	}

	pa, err := uc.availabilityRepo.GetByProviderID(ctx, req.ProviderID)
	if err != nil {
		if !errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
			uc.logger.Error("CheckAvailability: failed to get availability for provider=%s: %v", req.ProviderID, err)
			return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
		}
		pa = availability.NewDefaultAvailability(req.ProviderID, now)
	}

	appointments, err := uc.appointmentRepo.GetByProviderWithFilter(ctx, domain.AppointmentsFilter{
		ProviderID: req.ProviderID,
		StartDate:  &req.Date,
		EndDate:    &req.Date,
	})
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get appointments for provider=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	resp.Reason = availability.CheckAvailability(req.Date, req.StartTime, req.EndTime, pa, appointments)
	resp.Available = resp.Reason == availability.ReasonAvailable

	uc.logger.Info("CheckAvailability: provider=%s, %s %s-%s: %s",
		req.ProviderID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, resp.Reason)

	return resp, nil
}
