package calendar

import "errors"

var (
	// ErrInvalidSlot возвращается, когда дату или время слота нельзя разобрать
	ErrInvalidSlot = errors.New("calendar: invalid slot")

	// ErrInvalidInterval возвращается, когда интервал расписания нельзя разобрать
	ErrInvalidInterval = errors.New("calendar: invalid interval")

	// ErrRecurrence возвращается, когда не удалось построить правило повторения
	ErrRecurrence = errors.New("calendar: failed to build recurrence rule")
)
