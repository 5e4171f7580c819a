package availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// NewDefaultAvailability шаблон для нового мастера:
// пн-пт 09:00-17:00, сб 09:00-15:00, вс выходной, без перерывов
func NewDefaultAvailability(providerID string, now time.Time) *domain.ProviderAvailability {
	schedule := make([]domain.DayAvailability, 0, len(domain.WeekDays))
	for _, day := range domain.WeekDays {
		switch day {
		case domain.Saturday:
			schedule = append(schedule, domain.DayAvailability{Day: day, IsEnabled: true, Intervals: []domain.TimeInterval{{Start: "09:00", End: "15:00"}}})
		case domain.Sunday:
			schedule = append(schedule, domain.DayAvailability{Day: day, IsEnabled: false, Intervals: []domain.TimeInterval{}})
		default:
			schedule = append(schedule, domain.DayAvailability{Day: day, IsEnabled: true, Intervals: []domain.TimeInterval{{Start: "09:00", End: "17:00"}}})
		}
	}

	return &domain.ProviderAvailability{
		ID:             fmt.Sprintf("availability-%s-%d", providerID, now.UnixMilli()),
		ProviderID:     providerID,
		WeeklySchedule: schedule,
		Breaks:         []domain.DayAvailability{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
