package get_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// validateRequest валидирует входные данные и подставляет значения по умолчанию
func validateRequest(req *Request, policy domain.BookingPolicy) error {
	if req.ProviderID == "" {
		return fmt.Errorf("%w: providerID is required", ErrInvalidInput)
	}

	if req.StartDate.IsZero() {
		return fmt.Errorf("%w: startDate is required", ErrInvalidInput)
	}

	if req.EndDate.IsZero() {
		req.EndDate = req.StartDate
	}

	if domain.StartOfDay(req.EndDate).Before(domain.StartOfDay(req.StartDate)) {
		return fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}

	if policy.MaxRangeDays > 0 && domain.DaysBetween(req.StartDate, req.EndDate) >= policy.MaxRangeDays {
		return fmt.Errorf("%w: at most %d days per request", ErrRangeTooLong, policy.MaxRangeDays)
	}

	if req.ServiceDuration == 0 {
		req.ServiceDuration = domain.DefaultServiceDurationMinutes
	}
	if req.ServiceDuration < domain.MinServiceDurationMinutes || req.ServiceDuration > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}

	if req.SlotInterval == 0 {
		req.SlotInterval = domain.DefaultSlotIntervalMinutes
	}
	if req.SlotInterval < domain.MinSlotIntervalMinutes || req.SlotInterval > domain.MaxSlotIntervalMinutes {
		return fmt.Errorf("%w: interval must be between %d and %d minutes",
			ErrInvalidInput, domain.MinSlotIntervalMinutes, domain.MaxSlotIntervalMinutes)
	}

	return nil
}
