// Package jalali implements the solar Hijri (Jalali) civil calendar and the
// calendar arithmetic the grid engine is built on.
package jalali

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Supported era. Every day of every year in [MinYear, MaxYear] converts to and
// from an absolute instant.
const (
	MinYear = -61
	MaxYear = 3176
)

// Calendar errors.
var (
	ErrOutOfRange       = errors.New("date outside the supported calendar era")
	ErrInvalidDate      = errors.New("invalid jalali date")
	ErrInvalidWeekday   = errors.New("invalid weekday")
	ErrInvalidDateInput = errors.New("date must be in YYYY/MM/DD format")
)

// Weekday is a day of the week with Saturday as ordinal zero.
type Weekday int

const (
	Saturday Weekday = iota
	Sunday
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
)

// Valid reports whether w is one of the seven weekday ordinals.
func (w Weekday) Valid() bool {
	return w >= Saturday && w <= Friday
}

// Prev returns the weekday before w.
func (w Weekday) Prev() Weekday {
	return Weekday((int(w) + 6) % 7)
}

// Add returns the weekday n days after w. Negative n moves backwards.
func (w Weekday) Add(n int) Weekday {
	return Weekday(((int(w)+n)%7 + 7) % 7)
}

// String returns the English name of the weekday.
func (w Weekday) String() string {
	if !w.Valid() {
		return "Weekday(" + strconv.Itoa(int(w)) + ")"
	}
	return weekdayNamesEnglish[w]
}

// Date is a day in the Jalali calendar.
type Date struct {
	Year  int
	Month int // 1-12
	Day   int // 1-31
}

// NewDate returns the date for the given fields, validated against the era
// and the month length.
func NewDate(year, month, day int) (Date, error) {
	d := Date{Year: year, Month: month, Day: day}
	if err := d.Validate(); err != nil {
		return Date{}, err
	}
	return d, nil
}

// Validate returns ErrOutOfRange for years outside the era and ErrInvalidDate
// for impossible month/day combinations.
func (d Date) Validate() error {
	if d.Year < MinYear || d.Year > MaxYear {
		return fmt.Errorf("%w: year %d", ErrOutOfRange, d.Year)
	}
	if d.Month < 1 || d.Month > 12 {
		return fmt.Errorf("%w: month %d", ErrInvalidDate, d.Month)
	}
	if d.Day < 1 || d.Day > DaysInMonth(d.Year, d.Month) {
		return fmt.Errorf("%w: day %d of %d/%02d", ErrInvalidDate, d.Day, d.Year, d.Month)
	}
	return nil
}

// Valid reports whether Validate returns nil.
func (d Date) Valid() bool {
	return d.Validate() == nil
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after other.
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return cmpInt(d.Year, other.Year)
	case d.Month != other.Month:
		return cmpInt(d.Month, other.Month)
	default:
		return cmpInt(d.Day, other.Day)
	}
}

// Before reports whether d is before other.
func (d Date) Before(other Date) bool {
	return d.Compare(other) < 0
}

// After reports whether d is after other.
func (d Date) After(other Date) bool {
	return d.Compare(other) > 0
}

// SameMonth reports whether d and other share year and month.
func (d Date) SameMonth(other Date) bool {
	return d.Year == other.Year && d.Month == other.Month
}

// String formats d as YYYY/MM/DD with ASCII digits.
func (d Date) String() string {
	return fmt.Sprintf("%04d/%02d/%02d", d.Year, d.Month, d.Day)
}

// ParseDate parses "YYYY/MM/DD" or "YYYY-MM-DD". Persian digits are accepted.
func ParseDate(s string) (Date, error) {
	s = NormalizeDigits(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "/")
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return Date{}, ErrInvalidDateInput
	}
	var fields [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || p == "" {
			return Date{}, ErrInvalidDateInput
		}
		fields[i] = n
	}
	return NewDate(fields[0], fields[1], fields[2])
}

// IsLeap reports whether year has 366 days. Years outside the era are never leap.
func IsLeap(year int) bool {
	info, ok := jalCal(year)
	return ok && info.leap == 0
}

// DaysInMonth returns the length of the month: 31 days for the first six
// months, 30 for the next five and 29 or 30 for Esfand.
func DaysInMonth(year, month int) int {
	switch {
	case month < 1 || month > 12:
		return 0
	case month <= 6:
		return 31
	case month <= 11:
		return 30
	case IsLeap(year):
		return 30
	default:
		return 29
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
