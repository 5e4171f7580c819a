package create_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// validateRequest валидирует входные данные и проставляет длительность по умолчанию
func validateRequest(req *Request) error {
	if req.ClientID == "" {
		return fmt.Errorf("%w: clientID is required", ErrInvalidInput)
	}

	if req.ProviderID == "" {
		return fmt.Errorf("%w: providerID is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.DurationMinutes == 0 {
		req.DurationMinutes = domain.DefaultServiceDurationMinutes
	}
	if req.DurationMinutes < domain.MinServiceDurationMinutes || req.DurationMinutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}

	if req.Notes != nil && len([]rune(*req.Notes)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// endTime вычисляет конец записи, запись не может переходить через полночь
func endTime(start types.TimeString, duration int) (types.TimeString, error) {
	end, err := start.AddMinutes(duration)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := end.Validate(); err != nil {
		return "", fmt.Errorf("%w: appointment must end before midnight", ErrInvalidInput)
	}
	return end, nil
}

// validateDate проверяет, что дата не в прошлом и не слишком далеко
func validateDate(date, now time.Time, policy domain.BookingPolicy) error {
	if domain.IsDateInPast(date, now) {
		return ErrInvalidDate
	}

	if policy.IsTooFarAhead(date, now) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, policy.AdvanceBookingDays)
	}

	return nil
}

// validateNotice проверяет, что до начала записи осталось не меньше minNoticeMinutes
func validateNotice(date time.Time, start types.TimeString, now time.Time, policy domain.BookingPolicy) error {
	startAt, err := domain.At(date, start)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if startAt.Before(policy.NoticeCutoff(now)) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, policy.MinNoticeMinutes)
	}

	return nil
}

// reasonToError переводит причину отказа ядра в ошибку use case
func reasonToError(reason availability.Reason) error {
	switch reason {
	case availability.ReasonAvailable:
		return nil
	case availability.ReasonDayDisabled:
		return ErrProviderNotWorking
	case availability.ReasonOutsideWorkingHours:
		return ErrOutsideWorkingHours
	case availability.ReasonAppointmentConflict, availability.ReasonBreakConflict:
		return fmt.Errorf("%w: %s", ErrSlotNotAvailable, reason)
	default:
		return fmt.Errorf("%w: %s", ErrInvalidInput, reason)
	}
}
