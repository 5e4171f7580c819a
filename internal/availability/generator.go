package availability

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// GenerateSlots строит слоты на одну дату.
//
// Каждый рабочий интервал дня обходится отдельно с шагом slotInterval от его начала,
// пока слот длительностью serviceDuration целиком помещается в интервал.
// Занятые слоты (пересечение с записью или перерывом) тоже возвращаются с IsAvailable == false.
// Выключенный или отсутствующий день даёт пустой список.
func GenerateSlots[T Booking](
	date time.Time,
	pa *domain.ProviderAvailability,
	bookings []T,
	serviceDuration int,
	slotInterval int,
) []domain.AvailableTimeSlot {
	slots := make([]domain.AvailableTimeSlot, 0)
	if pa == nil || serviceDuration <= 0 || slotInterval <= 0 {
		return slots
	}

	weekday := domain.DayOfWeekOf(date)
	day, ok := pa.Day(weekday)
	if !ok || !day.IsEnabled {
		return slots
	}

	dateStr := date.Format(domain.DateFormat)

	for _, interval := range day.Intervals {
		start, end, ok := intervalMinutes(interval)
		if !ok {
			continue
		}

		for cursor := start; cursor+serviceDuration <= end; cursor += slotInterval {
			slotEnd := cursor + serviceDuration
			conflict := hasAppointmentConflict(dateStr, cursor, slotEnd, bookings) ||
				hasBreakConflict(pa, weekday, cursor, slotEnd)

			slots = append(slots, domain.AvailableTimeSlot{
				Date:        dateStr,
				StartTime:   types.MinutesToTime(cursor),
				EndTime:     types.MinutesToTime(slotEnd),
				Duration:    serviceDuration,
				IsAvailable: !conflict,
				ProviderID:  pa.ProviderID,
			})
		}
	}

	return slots
}

// GenerateSlotsForRange вызывает GenerateSlots для каждого дня от start до end включительно.
// Записи фильтруются по дате внутри, можно передавать полный список.
func GenerateSlotsForRange[T Booking](
	start, end time.Time,
	pa *domain.ProviderAvailability,
	bookings []T,
	serviceDuration int,
	slotInterval int,
) []domain.AvailableTimeSlot {
	slots := make([]domain.AvailableTimeSlot, 0)

	// Последний день берётся из календарных полей end без перевода в таймзону start
	current := truncateToDay(start)
	ey, em, ed := end.Date()
	last := time.Date(ey, em, ed, 0, 0, 0, 0, start.Location())

	for !current.After(last) {
		slots = append(slots, GenerateSlots(current, pa, bookings, serviceDuration, slotInterval)...)
		current = current.AddDate(0, 0, 1)
	}

	return slots
}

// truncateToDay оставляет только календарную дату в исходной таймзоне
func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
