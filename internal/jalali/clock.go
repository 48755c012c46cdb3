package jalali

import (
	"fmt"
	"time"
)

// Clock converts between civil dates and absolute instants and performs
// calendar-relative arithmetic. Implementations hold no mutable state.
type Clock interface {
	// Location is the zone in which civil days start at midnight.
	Location() *time.Location

	ToCivil(t time.Time) (Date, error)
	ToInstant(d Date) (time.Time, error)

	StartOfMonth(d Date) Date
	EndOfMonth(d Date) Date
	AddMonths(d Date, n int) (Date, error)
	AddDays(d Date, n int) (Date, error)
	StartOfWeek(d Date, weekStart Weekday) (Date, error)
	EndOfWeek(d Date, weekStart Weekday) (Date, error)

	Weekday(d Date) Weekday
	DaysInMonth(year, month int) int
}

// JalaliClock is the Clock for the solar Hijri calendar.
type JalaliClock struct {
	loc *time.Location
}

var _ Clock = JalaliClock{}

// New returns a Jalali clock whose days start at midnight in loc.
// A nil loc means time.Local.
func New(loc *time.Location) JalaliClock {
	if loc == nil {
		loc = time.Local
	}
	return JalaliClock{loc: loc}
}

// Local returns a Jalali clock in the host's local time zone.
func Local() JalaliClock {
	return New(time.Local)
}

// Location returns the clock's time zone.
func (c JalaliClock) Location() *time.Location {
	if c.loc == nil {
		return time.Local
	}
	return c.loc
}

// ToCivil returns the Jalali date of t in the clock's zone.
func (c JalaliClock) ToCivil(t time.Time) (Date, error) {
	y, m, d := t.In(c.Location()).Date()
	date, ok := d2j(g2d(y, int(m), d))
	if !ok || date.Year < MinYear || date.Year > MaxYear {
		return Date{}, fmt.Errorf("%w: %s", ErrOutOfRange, t.Format("2006-01-02"))
	}
	return date, nil
}

// ToInstant returns local midnight of d.
func (c JalaliClock) ToInstant(d Date) (time.Time, error) {
	jdn, err := dayNumber(d)
	if err != nil {
		return time.Time{}, err
	}
	gy, gm, gd := d2g(jdn)
	return time.Date(gy, time.Month(gm), gd, 0, 0, 0, 0, c.Location()), nil
}

// StartOfMonth returns day 1 of d's month.
func (c JalaliClock) StartOfMonth(d Date) Date {
	return Date{Year: d.Year, Month: d.Month, Day: 1}
}

// EndOfMonth returns the last day of d's month.
func (c JalaliClock) EndOfMonth(d Date) Date {
	return Date{Year: d.Year, Month: d.Month, Day: DaysInMonth(d.Year, d.Month)}
}

// AddMonths moves d by n months. The day is clamped to the target month's
// length, so 1403/06/31 plus one month is 1403/07/30.
func (c JalaliClock) AddMonths(d Date, n int) (Date, error) {
	total := d.Year*12 + (d.Month - 1) + n
	year := floorDiv(total, 12)
	month := total - year*12 + 1
	if year < MinYear || year > MaxYear {
		return Date{}, fmt.Errorf("%w: year %d", ErrOutOfRange, year)
	}
	day := min(d.Day, DaysInMonth(year, month))
	return Date{Year: year, Month: month, Day: day}, nil
}

// AddDays moves d by n civil days.
func (c JalaliClock) AddDays(d Date, n int) (Date, error) {
	jdn, err := dayNumber(d)
	if err != nil {
		return Date{}, err
	}
	out, ok := d2j(jdn + n)
	if !ok || out.Year < MinYear || out.Year > MaxYear {
		return Date{}, fmt.Errorf("%w: %s%+d days", ErrOutOfRange, d, n)
	}
	return out, nil
}

// StartOfWeek walks back to the nearest weekStart, returning d itself when it
// already falls on weekStart.
func (c JalaliClock) StartOfWeek(d Date, weekStart Weekday) (Date, error) {
	if !weekStart.Valid() {
		return Date{}, fmt.Errorf("%w: %d", ErrInvalidWeekday, int(weekStart))
	}
	back := (int(c.Weekday(d)) - int(weekStart) + 7) % 7
	return c.AddDays(d, -back)
}

// EndOfWeek walks forward to the day before the next weekStart, returning d
// itself when it already is that day.
func (c JalaliClock) EndOfWeek(d Date, weekStart Weekday) (Date, error) {
	if !weekStart.Valid() {
		return Date{}, fmt.Errorf("%w: %d", ErrInvalidWeekday, int(weekStart))
	}
	forward := (int(weekStart.Prev()) - int(c.Weekday(d)) + 7) % 7
	return c.AddDays(d, forward)
}

// Weekday returns the day of the week of d. The result is meaningless for an
// invalid date.
func (c JalaliClock) Weekday(d Date) Weekday {
	jdn, ok := j2d(d.Year, d.Month, d.Day)
	if !ok {
		return Saturday
	}
	return weekdayOf(jdn)
}

// DaysInMonth returns the number of days in the given month.
func (c JalaliClock) DaysInMonth(year, month int) int {
	return DaysInMonth(year, month)
}

// DaysBetween returns the number of civil days from a to b.
func DaysBetween(a, b Date) (int, error) {
	ja, err := dayNumber(a)
	if err != nil {
		return 0, err
	}
	jb, err := dayNumber(b)
	if err != nil {
		return 0, err
	}
	return jb - ja, nil
}

func dayNumber(d Date) (int, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}
	jdn, ok := j2d(d.Year, d.Month, d.Day)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrOutOfRange, d)
	}
	return jdn, nil
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
