package availability

import "errors"

var (
	// ErrStartNotBeforeEnd возвращается, когда начало интервала не раньше конца
	ErrStartNotBeforeEnd = errors.New("Start time must be before end time")

	// ErrIntervalsOverlap возвращается, когда интервалы одного дня пересекаются
	ErrIntervalsOverlap = errors.New("Time intervals cannot overlap")

	// ErrInvalidTimeFormat возвращается, когда время интервала нельзя разобрать
	ErrInvalidTimeFormat = errors.New("Invalid time format")

	// ErrInvalidDay возвращается для неизвестного дня недели
	ErrInvalidDay = errors.New("Invalid day of week")

	// ErrDuplicateDay возвращается, когда один день описан дважды
	ErrDuplicateDay = errors.New("Day is listed more than once")

	// ErrTooManyIntervals возвращается, когда в одном дне слишком много интервалов
	ErrTooManyIntervals = errors.New("Too many intervals for one day")
)
