package availability

import (
	"database/sql/driver"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// days JSONB представление расписания по дням
type days []domain.DayAvailability

// Value реализует driver.Valuer, nil сохраняется как пустой массив
func (d days) Value() (driver.Value, error) {
	if d == nil {
		return []byte("[]"), nil
	}
	b, err := json.Marshal([]domain.DayAvailability(d))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return b, nil
}

// Scan реализует sql.Scanner
func (d *days) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*d = days{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidJSON, src)
	}

	var parsed []domain.DayAvailability
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if parsed == nil {
		parsed = []domain.DayAvailability{}
	}
	*d = parsed
	return nil
}
