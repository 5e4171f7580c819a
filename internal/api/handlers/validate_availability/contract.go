package validate_availability

import (
	core "github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

type AvailabilityService interface {
	ValidateIntervals(intervals []domain.TimeInterval) core.ValidationResult
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
