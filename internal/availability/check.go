package availability

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Reason причина, по которой интервал нельзя (или можно) забронировать
type Reason string

const (
	ReasonAvailable           Reason = "available"
	ReasonInvalidTime         Reason = "invalid_time"
	ReasonDayDisabled         Reason = "day_disabled"
	ReasonOutsideWorkingHours Reason = "outside_working_hours"
	ReasonAppointmentConflict Reason = "appointment_conflict"
	ReasonBreakConflict       Reason = "break_conflict"
)

// CheckAvailability отвечает, можно ли забронировать ровно [startTime, endTime) на дату.
// Проверки по порядку: день включен, интервал целиком внутри рабочего окна,
// нет пересечения с записями, нет пересечения с перерывами.
func CheckAvailability[T Booking](
	date time.Time,
	startTime, endTime types.TimeString,
	pa *domain.ProviderAvailability,
	bookings []T,
) Reason {
	start, end, ok := rangeMinutes(startTime, endTime)
	if !ok || start >= end {
		return ReasonInvalidTime
	}

	if pa == nil {
		return ReasonDayDisabled
	}

	weekday := domain.DayOfWeekOf(date)
	day, ok := pa.Day(weekday)
	if !ok || !day.IsEnabled {
		return ReasonDayDisabled
	}

	// Вхождение, а не пересечение
	contained := false
	for _, interval := range day.Intervals {
		iStart, iEnd, ok := intervalMinutes(interval)
		if ok && start >= iStart && end <= iEnd {
			contained = true
			break
		}
	}
	if !contained {
		return ReasonOutsideWorkingHours
	}

	if hasAppointmentConflict(date.Format(domain.DateFormat), start, end, bookings) {
		return ReasonAppointmentConflict
	}

	if hasBreakConflict(pa, weekday, start, end) {
		return ReasonBreakConflict
	}

	return ReasonAvailable
}

// IsProviderAvailable true, если интервал можно забронировать
func IsProviderAvailable[T Booking](
	date time.Time,
	startTime, endTime types.TimeString,
	pa *domain.ProviderAvailability,
	bookings []T,
) bool {
	return CheckAvailability(date, startTime, endTime, pa, bookings) == ReasonAvailable
}
