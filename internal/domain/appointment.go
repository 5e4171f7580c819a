package domain

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// AppointmentStatus статус записи к мастеру
type AppointmentStatus string

const (
	StatusPending    AppointmentStatus = "pending"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
	StatusNoShow     AppointmentStatus = "no_show"
)

// IsValid возвращает true для известного статуса
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Appointment запись клиента к мастеру
type Appointment struct {
	ID          int64
	ProviderID  string
	ClientID    string
	ServiceID   *string
	BookingDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	Status      AppointmentStatus
	Notes       *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DateString дата записи в формате YYYY-MM-DD
func (a *Appointment) DateString() string {
	return a.BookingDate.Format(DateFormat)
}

// TimeRange время начала и конца записи
func (a *Appointment) TimeRange() (types.TimeString, types.TimeString) {
	return a.StartTime, a.EndTime
}

// IsCancelled возвращает true для отменённой записи
// Только отменённые записи не занимают время мастера
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// CanBeCancelled возвращает true, если запись ещё можно отменить
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// DurationMinutes длительность записи в минутах
func (a *Appointment) DurationMinutes() int {
	start, errStart := a.StartTime.Minutes()
	end, errEnd := a.EndTime.Minutes()
	if errStart != nil || errEnd != nil {
		return 0
	}
	return end - start
}

// AppointmentsFilter фильтр для получения записей мастера
type AppointmentsFilter struct {
	ProviderID       string             // Обязательный параметр
	StartDate        *time.Time         // Начало периода (включительно), nil - без ограничения
	EndDate          *time.Time         // Конец периода (включительно), nil - без ограничения
	Status           *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool               // Включать ли отменённые записи
}
