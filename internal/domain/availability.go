package domain

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// DayOfWeek день недели в виде английского названия в нижнем регистре
type DayOfWeek string

const (
	Sunday    DayOfWeek = "sunday"
	Monday    DayOfWeek = "monday"
	Tuesday   DayOfWeek = "tuesday"
	Wednesday DayOfWeek = "wednesday"
	Thursday  DayOfWeek = "thursday"
	Friday    DayOfWeek = "friday"
	Saturday  DayOfWeek = "saturday"
)

// daysByWeekday индекс совпадает с time.Weekday (0 = воскресенье)
var daysByWeekday = [7]DayOfWeek{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// WeekDays дни недели в порядке, в котором строится расписание (с понедельника)
var WeekDays = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// DayOfWeekOf возвращает день недели календарной даты
func DayOfWeekOf(date time.Time) DayOfWeek {
	return daysByWeekday[date.Weekday()]
}

// IsValid возвращает true для одного из семи известных дней
func (d DayOfWeek) IsValid() bool {
	for _, day := range daysByWeekday {
		if d == day {
			return true
		}
	}
	return false
}

// Weekday обратное преобразование в time.Weekday
func (d DayOfWeek) Weekday() (time.Weekday, bool) {
	for i, day := range daysByWeekday {
		if d == day {
			return time.Weekday(i), true
		}
	}
	return time.Sunday, false
}

// TimeInterval промежуток времени внутри одного дня, start < end
type TimeInterval struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// DayAvailability интервалы одного дня недели
// Если IsEnabled == false, интервалы игнорируются
type DayAvailability struct {
	Day       DayOfWeek      `json:"day"`
	IsEnabled bool           `json:"isEnabled"`
	Intervals []TimeInterval `json:"intervals"`
}

// ProviderAvailability недельный шаблон доступности мастера
// Breaks - повторяющиеся перерывы (например, обед) поверх WeeklySchedule
type ProviderAvailability struct {
	ID             string
	ProviderID     string
	WeeklySchedule []DayAvailability
	Breaks         []DayAvailability
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Day возвращает расписание на день недели
// Отсутствующий день означает, что мастер в этот день не работает
func (p *ProviderAvailability) Day(day DayOfWeek) (DayAvailability, bool) {
	for _, d := range p.WeeklySchedule {
		if d.Day == day {
			return d, true
		}
	}
	return DayAvailability{}, false
}

// BreaksFor возвращает все интервалы перерывов, относящиеся к дню недели
func (p *ProviderAvailability) BreaksFor(day DayOfWeek) []TimeInterval {
	var result []TimeInterval
	for _, b := range p.Breaks {
		if b.Day == day {
			result = append(result, b.Intervals...)
		}
	}
	return result
}
