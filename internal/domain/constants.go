package domain

// Параметры генерации слотов по умолчанию
const (
	DefaultServiceDurationMinutes = 30
	DefaultSlotIntervalMinutes    = 15
	DefaultMinNoticeMinutes       = 0
	DefaultMaxRangeDays           = 31
)

// Ограничения бизнес-валидации
const (
	MinServiceDurationMinutes   = 5
	MaxServiceDurationMinutes   = 480 // 8 часов
	MinSlotIntervalMinutes      = 5
	MaxSlotIntervalMinutes      = 240
	MaxIntervalsPerDay          = 12
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Форматы времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
