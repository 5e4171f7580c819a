package update_availability

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// UseCase use case замены недельного расписания мастера
type UseCase struct {
	availabilityRepo AvailabilityRepository
	cache            SlotCache
	publisher        EventPublisher
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	cache SlotCache,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		cache:            cache,
		publisher:        publisher,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute валидирует и сохраняет расписание целиком
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateAvailability: provider=%s by user=%s", req.ProviderID, req.UserID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateAvailability: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	breaks := req.Breaks
	if breaks == nil {
		breaks = []domain.DayAvailability{}
	}

	// ID нужен только для новой записи, при конфликте сохраняется прежний
	saved, err := uc.availabilityRepo.Upsert(ctx, &domain.ProviderAvailability{
		ID:             fmt.Sprintf("availability-%s-%d", req.ProviderID, now.UnixMilli()),
		ProviderID:     req.ProviderID,
		WeeklySchedule: req.WeeklySchedule,
		Breaks:         breaks,
	})
	if err != nil {
		uc.logger.Error("UpdateAvailability: failed to save availability for provider=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to save availability: %v", ErrInternal, err)
	}

	if err := uc.cache.InvalidateProvider(ctx, saved.ProviderID); err != nil {
		uc.logger.Warn("UpdateAvailability: failed to invalidate slots cache for provider=%s: %v", saved.ProviderID, err)
	}
	if err := uc.publisher.PublishAvailabilityUpdated(ctx, saved); err != nil {
		uc.logger.Warn("UpdateAvailability: failed to publish event for provider=%s: %v", saved.ProviderID, err)
	}

	uc.logger.Info("UpdateAvailability: saved availability id=%s", saved.ID)

	return &Response{
		ID:             saved.ID,
		ProviderID:     saved.ProviderID,
		WeeklySchedule: saved.WeeklySchedule,
		Breaks:         saved.Breaks,
		CreatedAt:      saved.CreatedAt,
		UpdatedAt:      saved.UpdatedAt,
	}, nil
}
