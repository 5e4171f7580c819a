package availability

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория расписаний
type AvailabilityRepository interface {
	GetByProviderID(ctx context.Context, providerID string) (*domain.ProviderAvailability, error)
	Upsert(ctx context.Context, pa *domain.ProviderAvailability) (*domain.ProviderAvailability, error)
	Delete(ctx context.Context, providerID string) error
}

// SlotCache интерфейс инвалидации кэша слотов
type SlotCache interface {
	InvalidateProvider(ctx context.Context, providerID string) error
}

// EventPublisher интерфейс публикации событий
type EventPublisher interface {
	PublishAvailabilityUpdated(ctx context.Context, pa *domain.ProviderAvailability) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
