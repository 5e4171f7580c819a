package update_availability

import "errors"

var (
	// ErrForbidden возвращается, когда пользователь меняет чужое расписание
	ErrForbidden = errors.New("update_availability: only the provider can change the schedule")

	// ErrInvalidSchedule возвращается, когда расписание не прошло валидацию
	ErrInvalidSchedule = errors.New("update_availability: invalid schedule")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_availability: internal error")
)
