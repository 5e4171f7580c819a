package update_availability

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	updateAvailability "github.com/m04kA/SMC-AvailabilityService/internal/usecase/update_availability"
)

// UpdateAvailabilityRequest HTTP request model
type UpdateAvailabilityRequest struct {
	WeeklySchedule []domain.DayAvailability `json:"weeklySchedule" validate:"required,min=1"`
	Breaks         []domain.DayAvailability `json:"breaks,omitempty"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	ID             string                   `json:"id"`
	ProviderID     string                   `json:"providerId"`
	WeeklySchedule []domain.DayAvailability `json:"weeklySchedule"`
	Breaks         []domain.DayAvailability `json:"breaks"`
	CreatedAt      string                   `json:"createdAt"`
	UpdatedAt      string                   `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateAvailabilityRequest) ToUseCaseRequest(providerID, userID string) *updateAvailability.Request {
	return &updateAvailability.Request{
		UserID:         userID,
		ProviderID:     providerID,
		WeeklySchedule: r.WeeklySchedule,
		Breaks:         r.Breaks,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		ID:             resp.ID,
		ProviderID:     resp.ProviderID,
		WeeklySchedule: resp.WeeklySchedule,
		Breaks:         resp.Breaks,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      resp.UpdatedAt.Format(time.RFC3339),
	}
}
