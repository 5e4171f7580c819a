package get_provider_appointments

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/appointments/models"
)

type AppointmentService interface {
	GetProviderAppointments(ctx context.Context, req *models.GetProviderAppointmentsRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
