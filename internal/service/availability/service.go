package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	core "github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability/models"
)

// Service сервис для работы с расписаниями мастеров
type Service struct {
	availabilityRepo AvailabilityRepository
	cache            SlotCache
	publisher        EventPublisher
	logger           Logger
	now              func() time.Time
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	availabilityRepo AvailabilityRepository,
	cache SlotCache,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		cache:            cache,
		publisher:        publisher,
		logger:           logger,
		now:              time.Now,
	}
}

// Get возвращает расписание мастера
// Публичный метод. Если расписание не сохранено, отдается шаблон по умолчанию
func (s *Service) Get(ctx context.Context, providerID string) (*models.AvailabilityResponse, error) {
	s.logger.Info("Get: fetching availability for provider=%s", providerID)

	pa, isDefault, err := s.load(ctx, providerID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainAvailability(pa, isDefault), nil
}

// Load то же, что Get, но в domain-модели (для экспорта календаря)
func (s *Service) Load(ctx context.Context, providerID string) (*domain.ProviderAvailability, error) {
	pa, _, err := s.load(ctx, providerID)
	return pa, err
}

// Reset заменяет расписание шаблоном по умолчанию
// Доступно только самому мастеру
func (s *Service) Reset(ctx context.Context, providerID, userID string) (*models.AvailabilityResponse, error) {
	s.logger.Info("Reset: resetting availability for provider=%s by user=%s", providerID, userID)

	if err := checkOwner(providerID, userID); err != nil {
		s.logger.Warn("Reset: user=%s is not provider=%s", userID, providerID)
		return nil, err
	}

	saved, err := s.availabilityRepo.Upsert(ctx, core.NewDefaultAvailability(providerID, s.now()))
	if err != nil {
		s.logger.Error("Reset: repository error for provider=%s: %v", providerID, err)
		return nil, fmt.Errorf("%w: Reset - repository error: %v", ErrInternal, err)
	}

	s.afterChange(ctx, "Reset", saved)

	s.logger.Info("Reset: successfully reset availability for provider=%s", providerID)
	return models.FromDomainAvailability(saved, false), nil
}

// Delete удаляет сохраненное расписание, после чего мастер снова работает по шаблону
// Доступно только самому мастеру
func (s *Service) Delete(ctx context.Context, providerID, userID string) error {
	s.logger.Info("Delete: deleting availability for provider=%s by user=%s", providerID, userID)

	if err := checkOwner(providerID, userID); err != nil {
		s.logger.Warn("Delete: user=%s is not provider=%s", userID, providerID)
		return err
	}

	if err := s.availabilityRepo.Delete(ctx, providerID); err != nil {
		if errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
			s.logger.Warn("Delete: availability for provider=%s not found", providerID)
			return ErrAvailabilityNotFound
		}
		s.logger.Error("Delete: repository error for provider=%s: %v", providerID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.afterChange(ctx, "Delete", core.NewDefaultAvailability(providerID, s.now()))

	s.logger.Info("Delete: successfully deleted availability for provider=%s", providerID)
	return nil
}

// ValidateIntervals проверяет интервалы одного дня для формы редактирования
func (s *Service) ValidateIntervals(intervals []domain.TimeInterval) core.ValidationResult {
	return core.ValidateResult(core.ValidateDayIntervals(intervals))
}

func (s *Service) load(ctx context.Context, providerID string) (*domain.ProviderAvailability, bool, error) {
	if providerID == "" {
		return nil, false, fmt.Errorf("%w: providerID is required", ErrInvalidInput)
	}

	pa, err := s.availabilityRepo.GetByProviderID(ctx, providerID)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
			s.logger.Info("Get: no stored availability for provider=%s, using default", providerID)
			return core.NewDefaultAvailability(providerID, s.now()), true, nil
		}
		s.logger.Error("Get: repository error for provider=%s: %v", providerID, err)
		return nil, false, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return pa, false, nil
}

func (s *Service) afterChange(ctx context.Context, op string, pa *domain.ProviderAvailability) {
	if err := s.cache.InvalidateProvider(ctx, pa.ProviderID); err != nil {
		s.logger.Warn("%s: failed to invalidate slots cache for provider=%s: %v", op, pa.ProviderID, err)
	}
	if err := s.publisher.PublishAvailabilityUpdated(ctx, pa); err != nil {
		s.logger.Warn("%s: failed to publish event for provider=%s: %v", op, pa.ProviderID, err)
	}
}

func checkOwner(providerID, userID string) error {
	if providerID == "" {
		return fmt.Errorf("%w: providerID is required", ErrInvalidInput)
	}
	if providerID != userID {
		return ErrAccessDenied
	}
	return nil
}
