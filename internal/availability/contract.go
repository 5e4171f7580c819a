package availability

import "github.com/m04kA/SMC-AvailabilityService/pkg/types"

// Booking минимальное представление занятого времени мастера.
// Генератору не нужна сущность записи целиком, только дата, время и признак отмены.
type Booking interface {
	// DateString дата записи в формате YYYY-MM-DD
	DateString() string
	// TimeRange время начала и конца записи
	TimeRange() (types.TimeString, types.TimeString)
	// IsCancelled отменённые записи не создают конфликтов
	IsCancelled() bool
}
