// Package dateutil parses the dates and times users type on the command line
// and in the TUI prompt.
package dateutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/javiermolinar/taqvim/internal/jalali"
)

// Validation errors.
var (
	ErrInvalidDateFormat  = errors.New("date must be YYYY/MM/DD, today, tomorrow, yesterday or a weekday name")
	ErrInvalidTimeFormat  = errors.New("time must be in HH:MM format")
	ErrEndDateBeforeStart = errors.New("end date must be on or after start date")
)

// DateRange is an inclusive range of civil days.
type DateRange struct {
	Start jalali.Date
	End   jalali.Date
}

// NewDateRange parses both ends with ParseRelativeDate. An empty endDate
// means the same day as start.
func NewDateRange(clock jalali.Clock, startDate, endDate string, now time.Time) (*DateRange, error) {
	start, err := ParseRelativeDate(clock, startDate, now)
	if err != nil {
		return nil, err
	}

	end := start
	if endDate != "" {
		end, err = ParseRelativeDate(clock, endDate, now)
		if err != nil {
			return nil, err
		}
	}

	if end.Before(start) {
		return nil, ErrEndDateBeforeStart
	}
	return &DateRange{Start: start, End: end}, nil
}

// Span returns the half-open instant interval covering the range.
func (r *DateRange) Span(clock jalali.Clock) (start, end time.Time, err error) {
	start, err = clock.ToInstant(r.Start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	after, err := clock.AddDays(r.End, 1)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err = clock.ToInstant(after)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// MonthRange returns the range covering the month of d.
func MonthRange(clock jalali.Clock, d jalali.Date) *DateRange {
	return &DateRange{Start: clock.StartOfMonth(d), End: clock.EndOfMonth(d)}
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseRelativeDate parses a date relative to now. Accepted inputs:
//   - empty, "today" or "امروز"
//   - "tomorrow"/"فردا" and "yesterday"/"دیروز"
//   - a weekday name in English, transliteration or Persian (next occurrence)
//   - "next-<weekday>" and "next-week"
//   - an absolute date "1403/01/15" or "1403-01-15", Persian digits allowed
//
// Past dates are allowed; browsing history is normal for a calendar.
func ParseRelativeDate(clock jalali.Clock, s string, now time.Time) (jalali.Date, error) {
	today, err := clock.ToCivil(now)
	if err != nil {
		return jalali.Date{}, err
	}
	input := strings.ToLower(strings.TrimSpace(s))

	switch input {
	case "", "today", "امروز":
		return today, nil
	case "tomorrow", "فردا":
		return clock.AddDays(today, 1)
	case "yesterday", "دیروز":
		return clock.AddDays(today, -1)
	case "next-week":
		return clock.AddDays(today, 7)
	}

	if name, ok := strings.CutPrefix(input, "next-"); ok {
		w, err := jalali.ParseWeekday(name)
		if err != nil {
			return jalali.Date{}, ErrInvalidDateFormat
		}
		return nextWeekday(clock, today, w)
	}

	if w, err := jalali.ParseWeekday(input); err == nil {
		return nextWeekday(clock, today, w)
	}

	d, err := jalali.ParseDate(input)
	if err != nil {
		if errors.Is(err, jalali.ErrInvalidDateInput) {
			return jalali.Date{}, ErrInvalidDateFormat
		}
		return jalali.Date{}, err
	}
	return d, nil
}

// nextWeekday returns the next occurrence of target after today. If today is
// the target weekday, it returns one week from today.
func nextWeekday(clock jalali.Clock, today jalali.Date, target jalali.Weekday) (jalali.Date, error) {
	daysUntil := int(target) - int(clock.Weekday(today))
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return clock.AddDays(today, daysUntil)
}

// ParseClock parses "HH:MM" (Persian digits allowed) into hour and minute.
// "24:00" is accepted as the end of the day.
func ParseClock(s string) (hour, minute int, err error) {
	s = jalali.NormalizeDigits(strings.TrimSpace(s))
	h, m, ok := strings.Cut(s, ":")
	if !ok || len(m) != 2 || len(h) == 0 || len(h) > 2 {
		return 0, 0, ErrInvalidTimeFormat
	}
	hour, err = strconv.Atoi(h)
	if err != nil {
		return 0, 0, ErrInvalidTimeFormat
	}
	minute, err = strconv.Atoi(m)
	if err != nil {
		return 0, 0, ErrInvalidTimeFormat
	}
	if hour == 24 && minute == 0 {
		return hour, minute, nil
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	return hour, minute, nil
}

// Combine returns the instant at hh:mm on civil day d.
func Combine(clock jalali.Clock, d jalali.Date, clockTime string) (time.Time, error) {
	hour, minute, err := ParseClock(clockTime)
	if err != nil {
		return time.Time{}, err
	}
	midnight, err := clock.ToInstant(d)
	if err != nil {
		return time.Time{}, err
	}
	y, m, day := midnight.Date()
	return time.Date(y, m, day, hour, minute, 0, 0, midnight.Location()), nil
}
