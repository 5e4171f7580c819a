package update_availability

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Request модель запроса на замену расписания
type Request struct {
	UserID         string // ID пользователя из X-User-ID
	ProviderID     string
	WeeklySchedule []domain.DayAvailability
	Breaks         []domain.DayAvailability
}

// Response сохраненное расписание
type Response struct {
	ID             string
	ProviderID     string
	WeeklySchedule []domain.DayAvailability
	Breaks         []domain.DayAvailability
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
