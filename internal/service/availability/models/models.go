package models

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// AvailabilityResponse ответ с расписанием мастера
type AvailabilityResponse struct {
	ID             string                   `json:"id"`
	ProviderID     string                   `json:"providerId"`
	WeeklySchedule []domain.DayAvailability `json:"weeklySchedule"`
	Breaks         []domain.DayAvailability `json:"breaks"`
	IsDefault      bool                     `json:"isDefault"` // Расписание не сохранено, отдан шаблон
	CreatedAt      time.Time                `json:"createdAt"`
	UpdatedAt      time.Time                `json:"updatedAt"`
}

// FromDomainAvailability конвертирует domain модель в DTO
func FromDomainAvailability(pa *domain.ProviderAvailability, isDefault bool) *AvailabilityResponse {
	if pa == nil {
		return nil
	}

	breaks := pa.Breaks
	if breaks == nil {
		breaks = []domain.DayAvailability{}
	}

	return &AvailabilityResponse{
		ID:             pa.ID,
		ProviderID:     pa.ProviderID,
		WeeklySchedule: pa.WeeklySchedule,
		Breaks:         breaks,
		IsDefault:      isDefault,
		CreatedAt:      pa.CreatedAt,
		UpdatedAt:      pa.UpdatedAt,
	}
}
