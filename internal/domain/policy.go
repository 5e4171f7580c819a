package domain

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// BookingPolicy ограничения бронирования, задаются конфигом сервиса
type BookingPolicy struct {
	MinNoticeMinutes   int            // Минимальное время до начала записи
	AdvanceBookingDays int            // На сколько дней вперёд можно записаться, 0 - без ограничений
	MaxRangeDays       int            // Максимальная длина запрашиваемого периода слотов
	Location           *time.Location // Часовой пояс расписаний
}

// DefaultBookingPolicy политика по умолчанию
func DefaultBookingPolicy() BookingPolicy {
	return BookingPolicy{
		MinNoticeMinutes: DefaultMinNoticeMinutes,
		MaxRangeDays:     DefaultMaxRangeDays,
		Location:         time.UTC,
	}
}

// Loc часовой пояс политики, UTC если не задан
func (p BookingPolicy) Loc() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

// IsTooFarAhead true, если дата дальше AdvanceBookingDays от сегодняшнего дня
func (p BookingPolicy) IsTooFarAhead(date, now time.Time) bool {
	if p.AdvanceBookingDays <= 0 {
		return false
	}
	maxDate := StartOfDay(now).AddDate(0, 0, p.AdvanceBookingDays)
	return StartOfDay(date).After(maxDate)
}

// NoticeCutoff самое раннее время начала, на которое ещё можно записаться
func (p BookingPolicy) NoticeCutoff(now time.Time) time.Time {
	return now.Add(time.Duration(p.MinNoticeMinutes) * time.Minute)
}

// StartOfDay полночь той же календарной даты в той же таймзоне
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DateIn та же календарная дата (без времени) в таймзоне loc
func DateIn(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// IsDateInPast проверяет, что дата раньше сегодняшнего дня
func IsDateInPast(date, now time.Time) bool {
	return StartOfDay(date).Before(StartOfDay(now))
}

// DaysBetween количество календарных дней от start до end
func DaysBetween(start, end time.Time) int {
	s := StartOfDay(start)
	e := StartOfDay(end)
	days := 0
	for s.Before(e) {
		s = s.AddDate(0, 0, 1)
		days++
	}
	return days
}

// At момент начала времени суток t в календарную дату date
func At(date time.Time, t types.TimeString) (time.Time, error) {
	minutes, err := t.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	return StartOfDay(date).Add(time.Duration(minutes) * time.Minute), nil
}
