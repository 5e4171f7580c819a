package availability

import (
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

func overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// intervalMinutes разбирает интервал в минуты; ok == false для неразбираемого времени
func intervalMinutes(interval domain.TimeInterval) (start, end int, ok bool) {
	return rangeMinutes(interval.Start, interval.End)
}

func rangeMinutes(from, to types.TimeString) (start, end int, ok bool) {
	start, err := from.Minutes()
	if err != nil {
		return 0, 0, false
	}
	end, err = to.Minutes()
	if err != nil {
		return 0, 0, false
	}
	return start, end, true
}

// hasAppointmentConflict проверяет пересечение с неотменёнными записями этой даты.
// Запись с неразбираемым временем ни с чем не пересекается.
func hasAppointmentConflict[T Booking](date string, start, end int, bookings []T) bool {
	for _, b := range bookings {
		if b.IsCancelled() || b.DateString() != date {
			continue
		}
		bStart, bEnd, ok := rangeMinutes(b.TimeRange())
		if !ok {
			continue
		}
		if overlaps(start, end, bStart, bEnd) {
			return true
		}
	}
	return false
}

// hasBreakConflict проверяет пересечение с повторяющимися перерывами дня недели
func hasBreakConflict(pa *domain.ProviderAvailability, day domain.DayOfWeek, start, end int) bool {
	for _, interval := range pa.BreaksFor(day) {
		bStart, bEnd, ok := intervalMinutes(interval)
		if !ok {
			continue
		}
		if overlaps(start, end, bStart, bEnd) {
			return true
		}
	}
	return false
}
