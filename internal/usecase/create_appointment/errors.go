package create_appointment

import "errors"

var (
	// ErrInvalidDate возвращается при записи на прошедшую дату
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_appointment: date is too far in the future")

	// ErrTooLateToBook возвращается, когда запись нарушает minNoticeMinutes
	ErrTooLateToBook = errors.New("create_appointment: too late to book this slot")

	// ErrProviderNotWorking возвращается, когда у мастера выходной в этот день
	ErrProviderNotWorking = errors.New("create_appointment: provider is not working on this date")

	// ErrOutsideWorkingHours возвращается, когда интервал не помещается в рабочее окно
	ErrOutsideWorkingHours = errors.New("create_appointment: time is outside working hours")

	// ErrSlotNotAvailable возвращается, когда интервал пересекается с записью или перерывом
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
