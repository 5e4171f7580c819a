package calendar

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

const (
	productID = "-//SMC//AvailabilityService//RU"
	uidDomain = "smc-availability"

	localLayout = "20060102T150405"
)

var rruleWeekdays = map[domain.DayOfWeek]rrule.Weekday{
	domain.Monday:    rrule.MO,
	domain.Tuesday:   rrule.TU,
	domain.Wednesday: rrule.WE,
	domain.Thursday:  rrule.TH,
	domain.Friday:    rrule.FR,
	domain.Saturday:  rrule.SA,
	domain.Sunday:    rrule.SU,
}

// SlotsCalendar iCalendar со свободными слотами: один VEVENT на слот
func SlotsCalendar(providerID string, slots []domain.AvailableTimeSlot, loc *time.Location, now time.Time) (string, error) {
	cal := newCalendar(fmt.Sprintf("Свободные слоты %s", providerID), loc)

	for _, slot := range slots {
		if !slot.IsAvailable {
			continue
		}

		date, err := time.ParseInLocation(domain.DateFormat, slot.Date, loc)
		if err != nil {
			return "", fmt.Errorf("%w: date %q: %v", ErrInvalidSlot, slot.Date, err)
		}
		start, err := at(date, slot.StartTime)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidSlot, err)
		}
		end, err := at(date, slot.EndTime)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidSlot, err)
		}

		ev := cal.AddEvent(fmt.Sprintf("slot-%s-%s-%s@%s", providerID, slot.Date, slot.StartTime, uidDomain))
		ev.SetDtStampTime(now)
		setTime(ev, ical.ComponentPropertyDtStart, start, loc)
		setTime(ev, ical.ComponentPropertyDtEnd, end, loc)
		ev.SetSummary(fmt.Sprintf("Свободно %s-%s", slot.StartTime, slot.EndTime))
	}

	return cal.Serialize(), nil
}

// AvailabilityCalendar недельный шаблон мастера как повторяющиеся события.
// Каждый рабочий интервал и каждый перерыв становится VEVENT с RRULE:FREQ=WEEKLY;BYDAY=XX,
// первое вхождение - ближайший такой день недели не раньше anchor.
func AvailabilityCalendar(pa *domain.ProviderAvailability, anchor time.Time, loc *time.Location, now time.Time) (string, error) {
	cal := newCalendar(fmt.Sprintf("Расписание %s", pa.ProviderID), loc)
	anchor = anchor.In(loc)

	for _, day := range pa.WeeklySchedule {
		if !day.IsEnabled {
			continue
		}
		for i, interval := range day.Intervals {
			uid := fmt.Sprintf("work-%s-%s-%d@%s", pa.ProviderID, day.Day, i, uidDomain)
			if err := addWeekly(cal, uid, "Рабочее время", day.Day, interval, anchor, loc, now); err != nil {
				return "", err
			}
		}
	}

	n := 0
	for _, day := range pa.Breaks {
		for _, interval := range day.Intervals {
			uid := fmt.Sprintf("break-%s-%s-%d@%s", pa.ProviderID, day.Day, n, uidDomain)
			if err := addWeekly(cal, uid, "Перерыв", day.Day, interval, anchor, loc, now); err != nil {
				return "", err
			}
			n++
		}
	}

	return cal.Serialize(), nil
}

func newCalendar(name string, loc *time.Location) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(name)
	cal.SetXWRTimezone(loc.String())
	return cal
}

func addWeekly(
	cal *ical.Calendar,
	uid, summary string,
	day domain.DayOfWeek,
	interval domain.TimeInterval,
	anchor time.Time,
	loc *time.Location,
	now time.Time,
) error {
	weekday, ok := rruleWeekdays[day]
	if !ok {
		return fmt.Errorf("%w: unknown day %q", ErrInvalidInterval, day)
	}

	startMinutes, err := interval.Start.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidInterval, day, err)
	}
	endMinutes, err := interval.End.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidInterval, day, err)
	}

	base := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, loc).
		Add(time.Duration(startMinutes) * time.Minute)

	option := rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: []rrule.Weekday{weekday},
		Dtstart:   base,
	}
	rule, err := rrule.NewRRule(option)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRecurrence, err)
	}

	first := rule.After(base, true)
	if first.IsZero() {
		return fmt.Errorf("%w: no occurrence after %s", ErrRecurrence, base)
	}
	end := first.Add(time.Duration(endMinutes-startMinutes) * time.Minute)

	recurrence := rrule.ROption{Freq: rrule.WEEKLY, Byweekday: []rrule.Weekday{weekday}}

	ev := cal.AddEvent(uid)
	ev.SetDtStampTime(now)
	setTime(ev, ical.ComponentPropertyDtStart, first, loc)
	setTime(ev, ical.ComponentPropertyDtEnd, end, loc)
	ev.SetSummary(summary)
	ev.SetProperty(ical.ComponentPropertyRrule, recurrence.RRuleString())

	return nil
}

// setTime пишет время в UTC для UTC календаря и локальное время с TZID для остальных,
// чтобы повторения не сдвигались при переходе на летнее время
func setTime(ev *ical.VEvent, prop ical.ComponentProperty, t time.Time, loc *time.Location) {
	if loc == time.UTC {
		switch prop {
		case ical.ComponentPropertyDtStart:
			ev.SetStartAt(t)
		default:
			ev.SetEndAt(t)
		}
		return
	}
	ev.SetProperty(prop, t.In(loc).Format(localLayout), &ical.KeyValues{
		Key:   string(ical.ParameterTzid),
		Value: []string{loc.String()},
	})
}

func at(date time.Time, t types.TimeString) (time.Time, error) {
	minutes, err := t.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	return date.Add(time.Duration(minutes) * time.Minute), nil
}
