package appointments

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByProviderWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	Cancel(ctx context.Context, id int64, reason *string) error
}

// SlotCache интерфейс инвалидации кэша слотов
type SlotCache interface {
	InvalidateProvider(ctx context.Context, providerID string) error
}

// EventPublisher интерфейс публикации событий
type EventPublisher interface {
	PublishAppointmentCancelled(ctx context.Context, appt *domain.Appointment) error
}

// Metrics интерфейс бизнес-метрик
type Metrics interface {
	RecordAppointment(event string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
