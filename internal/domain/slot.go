package domain

import "github.com/m04kA/SMC-AvailabilityService/pkg/types"

// AvailableTimeSlot вычисленный слот времени, не хранится
type AvailableTimeSlot struct {
	Date        string           `json:"date"`
	StartTime   types.TimeString `json:"startTime"`
	EndTime     types.TimeString `json:"endTime"`
	Duration    int              `json:"duration"`
	IsAvailable bool             `json:"isAvailable"`
	ProviderID  string           `json:"providerId"`
}

// CountAvailability возвращает количество свободных и занятых слотов
func CountAvailability(slots []AvailableTimeSlot) (available, unavailable int) {
	for _, s := range slots {
		if s.IsAvailable {
			available++
		} else {
			unavailable++
		}
	}
	return available, unavailable
}

// OnlyAvailable оставляет только свободные слоты
func OnlyAvailable(slots []AvailableTimeSlot) []AvailableTimeSlot {
	result := make([]AvailableTimeSlot, 0, len(slots))
	for _, s := range slots {
		if s.IsAvailable {
			result = append(result, s)
		}
	}
	return result
}
