package availability

import "errors"

var (
	// ErrAvailabilityNotFound возвращается, когда у мастера нет сохраненного расписания
	ErrAvailabilityNotFound = errors.New("availability not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
