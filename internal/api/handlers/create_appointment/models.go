package create_appointment

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	createAppointment "github.com/m04kA/SMC-AvailabilityService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid booking date")
	errInvalidTime = errors.New("invalid start time")
)

// CreateAppointmentRequest HTTP request model
// ID клиента берется из X-User-ID, а не из тела
type CreateAppointmentRequest struct {
	ProviderID      string  `json:"providerId" validate:"required"`
	ServiceID       *string `json:"serviceId,omitempty"`
	BookingDate     string  `json:"bookingDate" validate:"required"` // "2025-10-15"
	StartTime       string  `json:"startTime" validate:"required"`   // "10:00"
	DurationMinutes int     `json:"durationMinutes,omitempty" validate:"gte=0"`
	Notes           *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	ProviderID      string  `json:"providerId"`
	ClientID        string  `json:"clientId"`
	ServiceID       *string `json:"serviceId,omitempty"`
	BookingDate     string  `json:"bookingDate"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(clientID string) (*createAppointment.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, errInvalidDate
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, errInvalidTime
	}

	return &createAppointment.Request{
		ClientID:        clientID,
		ProviderID:      r.ProviderID,
		ServiceID:       r.ServiceID,
		Date:            bookingDate,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
		Notes:           r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		ProviderID:      resp.ProviderID,
		ClientID:        resp.ClientID,
		ServiceID:       resp.ServiceID,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
