package update_availability

import (
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// validateRequest проверяет права и само расписание
func validateRequest(req *Request) error {
	if req.ProviderID == "" {
		return fmt.Errorf("%w: providerID is required", ErrInvalidInput)
	}

	if req.UserID != req.ProviderID {
		return ErrForbidden
	}

	if len(req.WeeklySchedule) == 0 {
		return fmt.Errorf("%w: weeklySchedule is required", ErrInvalidSchedule)
	}

	pa := &domain.ProviderAvailability{
		ProviderID:     req.ProviderID,
		WeeklySchedule: req.WeeklySchedule,
		Breaks:         req.Breaks,
	}
	if err := availability.ValidateAvailability(pa); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSchedule, err)
	}

	return nil
}
