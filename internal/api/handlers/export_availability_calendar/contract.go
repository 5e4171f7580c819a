package export_availability_calendar

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

type AvailabilityService interface {
	Load(ctx context.Context, providerID string) (*domain.ProviderAvailability, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
