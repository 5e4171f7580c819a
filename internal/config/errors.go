package config

import "errors"

var (
	// ErrReadConfig возвращается, когда файл конфигурации не удалось прочитать или разобрать
	ErrReadConfig = errors.New("config: failed to read config file")

	// ErrInvalidConfig возвращается, когда значения конфигурации некорректны
	ErrInvalidConfig = errors.New("config: invalid configuration")
)
