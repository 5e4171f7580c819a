package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	ClientID        string           // ID клиента (из X-User-ID)
	ProviderID      string           // ID мастера
	ServiceID       *string          // ID услуги (опционально)
	Date            time.Time        // Дата записи (без времени)
	StartTime       types.TimeString // Время начала (например, "10:00")
	DurationMinutes int              // Длительность, 0 означает DefaultServiceDurationMinutes
	Notes           *string          // Заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64
	ProviderID      string
	ClientID        string
	ServiceID       *string
	BookingDate     time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Status          string
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
