package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
)

// Service сервис для работы с записями к мастеру
type Service struct {
	appointmentRepo AppointmentRepository
	cache           SlotCache
	publisher       EventPublisher
	metrics         Metrics
	txManager       TransactionManager
	logger          Logger
	now             func() time.Time
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	cache SlotCache,
	publisher EventPublisher,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		cache:           cache,
		publisher:       publisher,
		metrics:         metrics,
		txManager:       txManager,
		logger:          logger,
		now:             time.Now,
	}
}

// GetByID получает запись по ID
// Видеть запись могут только клиент и мастер
func (s *Service) GetByID(ctx context.Context, id int64, userID string) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%s", id, userID)

	appt, err := s.getAppointment(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !isParticipant(appt, userID) {
		s.logger.Warn("GetByID: access denied for user=%s to appointment id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(appt), nil
}

// GetProviderAppointments получает записи мастера за период
// Доступно только самому мастеру
func (s *Service) GetProviderAppointments(ctx context.Context, req *models.GetProviderAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetProviderAppointments: fetching appointments for provider=%s by user=%s", req.ProviderID, req.UserID)

	if req.ProviderID == "" {
		return nil, fmt.Errorf("%w: providerID is required", ErrInvalidInput)
	}

	if req.UserID != req.ProviderID {
		s.logger.Warn("GetProviderAppointments: user=%s is not provider=%s", req.UserID, req.ProviderID)
		return nil, ErrAccessDenied
	}

	if req.StartDate != nil && req.EndDate != nil && req.StartDate.After(*req.EndDate) {
		s.logger.Warn("GetProviderAppointments: startDate after endDate for provider=%s", req.ProviderID)
		return nil, ErrInvalidTimeRange
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetProviderAppointments: invalid filter for provider=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.GetByProviderWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetProviderAppointments: repository error for provider=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: GetProviderAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetProviderAppointments: successfully fetched %d appointments for provider=%s", len(appointments), req.ProviderID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel отменяет запись
// Отменить может клиент или мастер, только из статусов pending и confirmed
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelAppointmentRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%d by user=%s", id, req.UserID)

	if req.CancellationReason != nil && len([]rune(*req.CancellationReason)) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellationReason must be at most %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	var cancelled *domain.Appointment

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		appt, err := s.getAppointment(txCtx, "Cancel", id)
		if err != nil {
			return err
		}

		if !isParticipant(appt, req.UserID) {
			s.logger.Warn("Cancel: access denied for user=%s to appointment id=%d", req.UserID, id)
			return ErrAccessDenied
		}

		if !appt.CanBeCancelled() {
			s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", id, appt.Status)
			return ErrCannotCancel
		}

		if err := s.appointmentRepo.Cancel(txCtx, id, req.CancellationReason); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				s.logger.Warn("Cancel: appointment id=%d not found during cancellation", id)
				return ErrAppointmentNotFound
			}
			s.logger.Error("Cancel: repository error for appointment id=%d: %v", id, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		cancelledAt := s.now()
		appt.Status = domain.StatusCancelled
		appt.CancellationReason = req.CancellationReason
		appt.CancelledAt = &cancelledAt
		appt.UpdatedAt = cancelledAt
		cancelled = appt
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordAppointment(metrics.AppointmentCancelled)

	// Освободившийся интервал должен сразу появиться в слотах
	if err := s.cache.InvalidateProvider(ctx, cancelled.ProviderID); err != nil {
		s.logger.Warn("Cancel: failed to invalidate slots cache for provider=%s: %v", cancelled.ProviderID, err)
	}
	if err := s.publisher.PublishAppointmentCancelled(ctx, cancelled); err != nil {
		s.logger.Warn("Cancel: failed to publish event for appointment id=%d: %v", id, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", id)
	return models.FromDomainAppointment(cancelled), nil
}

func (s *Service) getAppointment(ctx context.Context, op string, id int64) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appt, nil
}

// isParticipant клиент или мастер записи
func isParticipant(appt *domain.Appointment, userID string) bool {
	return userID != "" && (appt.ClientID == userID || appt.ProviderID == userID)
}
