package availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// ValidationResult результат проверки расписания для формы редактирования
type ValidationResult struct {
	IsValid bool   `json:"isValid"`
	Error   string `json:"error,omitempty"`
}

// ValidateResult переводит ошибку валидации в ValidationResult
func ValidateResult(err error) ValidationResult {
	if err == nil {
		return ValidationResult{IsValid: true}
	}
	return ValidationResult{IsValid: false, Error: rootMessage(err)}
}

// IntervalsOverlap полуоткрытая проверка пересечения: a.start < b.end && b.start < a.end.
// Интервалы, касающиеся концами, не пересекаются.
func IntervalsOverlap(a, b domain.TimeInterval) bool {
	aStart, aEnd, ok := intervalMinutes(a)
	if !ok {
		return false
	}
	bStart, bEnd, ok := intervalMinutes(b)
	if !ok {
		return false
	}
	return overlaps(aStart, aEnd, bStart, bEnd)
}

// ValidateDayIntervals проверяет интервалы одного дня.
// Сначала каждый интервал по отдельности, затем все пары на пересечение.
func ValidateDayIntervals(intervals []domain.TimeInterval) error {
	for i, interval := range intervals {
		start, end, ok := intervalMinutes(interval)
		if !ok {
			return fmt.Errorf("%w: interval %d (%s-%s)", ErrInvalidTimeFormat, i, interval.Start, interval.End)
		}
		if start >= end {
			return fmt.Errorf("%w: interval %d (%s-%s)", ErrStartNotBeforeEnd, i, interval.Start, interval.End)
		}
	}

	for i := 0; i < len(intervals); i++ {
		for j := i + 1; j < len(intervals); j++ {
			if IntervalsOverlap(intervals[i], intervals[j]) {
				return fmt.Errorf("%w: intervals %d and %d", ErrIntervalsOverlap, i, j)
			}
		}
	}

	return nil
}

// ValidateAvailability проверяет недельный шаблон перед сохранением
func ValidateAvailability(pa *domain.ProviderAvailability) error {
	if err := validateDays(pa.WeeklySchedule, true); err != nil {
		return fmt.Errorf("weekly schedule: %w", err)
	}
	// Перерывы могут описывать один день несколькими записями
	if err := validateDays(pa.Breaks, false); err != nil {
		return fmt.Errorf("breaks: %w", err)
	}
	return nil
}

func validateDays(days []domain.DayAvailability, unique bool) error {
	seen := make(map[domain.DayOfWeek]struct{}, len(days))
	for _, day := range days {
		if !day.Day.IsValid() {
			return fmt.Errorf("%w: %q", ErrInvalidDay, day.Day)
		}
		if unique {
			if _, ok := seen[day.Day]; ok {
				return fmt.Errorf("%w: %s", ErrDuplicateDay, day.Day)
			}
			seen[day.Day] = struct{}{}
		}
		if len(day.Intervals) > domain.MaxIntervalsPerDay {
			return fmt.Errorf("%w: %s has %d", ErrTooManyIntervals, day.Day, len(day.Intervals))
		}
		// TimeString.Validate строже TimeToMinutes: на входе API ожидаем только 00:00-23:59
		for _, interval := range day.Intervals {
			if interval.Start.Validate() != nil || interval.End.Validate() != nil {
				return fmt.Errorf("%w: %s (%s-%s)", ErrInvalidTimeFormat, day.Day, interval.Start, interval.End)
			}
		}
		if err := ValidateDayIntervals(day.Intervals); err != nil {
			return fmt.Errorf("%s: %w", day.Day, err)
		}
	}
	return nil
}

// rootMessage возвращает текст sentinel-ошибки без деталей
func rootMessage(err error) string {
	for _, sentinel := range []error{
		ErrStartNotBeforeEnd,
		ErrIntervalsOverlap,
		ErrInvalidTimeFormat,
		ErrInvalidDay,
		ErrDuplicateDay,
		ErrTooManyIntervals,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}
