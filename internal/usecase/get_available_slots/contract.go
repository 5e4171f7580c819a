package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/cache/slots"
)

// AvailabilityRepository интерфейс репозитория расписаний
type AvailabilityRepository interface {
	GetByProviderID(ctx context.Context, providerID string) (*domain.ProviderAvailability, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByProviderWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// SlotCache интерфейс кэша сгенерированных слотов
type SlotCache interface {
	Get(ctx context.Context, key slots.Key) (slots.Lookup, error)
	Set(ctx context.Context, key slots.Key, version int64, value []domain.AvailableTimeSlot) error
}

// Metrics интерфейс бизнес-метрик
type Metrics interface {
	RecordSlotsGenerated(available, unavailable int)
	RecordSlotCache(result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
