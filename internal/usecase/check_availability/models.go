package check_availability

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// ReasonTooLate интервал начинается раньше, чем позволяет minNotice (или уже прошёл)
const ReasonTooLate availability.Reason = "too_late"

// Request модель запроса на проверку интервала
type Request struct {
	ProviderID string
	Date       time.Time
	StartTime  types.TimeString
	EndTime    types.TimeString
}

// Response модель ответа
type Response struct {
	ProviderID string
	Date       time.Time
	StartTime  types.TimeString
	EndTime    types.TimeString
	Available  bool
	Reason     availability.Reason
}
