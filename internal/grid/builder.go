package grid

import (
	"fmt"
	"time"

	"github.com/javiermolinar/taqvim/internal/jalali"
)

// Builder produces grids and layouts using an injected calendar clock.
type Builder struct {
	clock jalali.Clock
}

// NewBuilder creates a Builder. A nil clock means the Jalali clock in the
// local time zone.
func NewBuilder(clock jalali.Clock) *Builder {
	if clock == nil {
		clock = jalali.Local()
	}
	return &Builder{clock: clock}
}

// Clock returns the clock the builder converts dates with.
func (b *Builder) Clock() jalali.Clock {
	return b.clock
}

// MonthGrid returns whole weeks covering ref's month. Days from the
// neighbouring months that pad the first and last week have InPeriod unset.
func (b *Builder) MonthGrid(ref jalali.Date, weekStart jalali.Weekday, now time.Time) (*Grid, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	first, err := b.clock.StartOfWeek(b.clock.StartOfMonth(ref), weekStart)
	if err != nil {
		return nil, fmt.Errorf("month grid %s: %w", ref, err)
	}
	last, err := b.clock.EndOfWeek(b.clock.EndOfMonth(ref), weekStart)
	if err != nil {
		return nil, fmt.Errorf("month grid %s: %w", ref, err)
	}

	g := &Grid{Mode: ModeMonth, Reference: ref, WeekStart: weekStart}
	if err := b.fill(g, first, last, now, ref.SameMonth); err != nil {
		return nil, fmt.Errorf("month grid %s: %w", ref, err)
	}
	return g, nil
}

// WeekGrid returns the seven days of the week containing ref.
func (b *Builder) WeekGrid(ref jalali.Date, weekStart jalali.Weekday, now time.Time) (*Grid, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	first, err := b.clock.StartOfWeek(ref, weekStart)
	if err != nil {
		return nil, fmt.Errorf("week grid %s: %w", ref, err)
	}
	last, err := b.clock.EndOfWeek(ref, weekStart)
	if err != nil {
		return nil, fmt.Errorf("week grid %s: %w", ref, err)
	}

	g := &Grid{Mode: ModeWeek, Reference: ref, WeekStart: weekStart}
	if err := b.fill(g, first, last, now, inPeriod); err != nil {
		return nil, fmt.Errorf("week grid %s: %w", ref, err)
	}
	return g, nil
}

// DayGrid returns a single-day grid for ref. The span ends at the next civil
// midnight, which is not always 24 hours later.
func (b *Builder) DayGrid(ref jalali.Date, now time.Time) (*Grid, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	g := &Grid{Mode: ModeDay, Reference: ref, WeekStart: b.clock.Weekday(ref)}
	if err := b.fill(g, ref, ref, now, inPeriod); err != nil {
		return nil, fmt.Errorf("day grid %s: %w", ref, err)
	}
	return g, nil
}

func inPeriod(jalali.Date) bool { return true }

// fill appends every civil day from first to last inclusive and sets the span.
func (b *Builder) fill(g *Grid, first, last jalali.Date, now time.Time, period func(jalali.Date) bool) error {
	n, err := jalali.DaysBetween(first, last)
	if err != nil {
		return err
	}
	// An instant outside the era simply matches no day.
	today, todayErr := b.clock.ToCivil(now)

	g.Days = make([]Day, 0, n+1)
	d := first
	for i := 0; i <= n; i++ {
		midnight, err := b.clock.ToInstant(d)
		if err != nil {
			return err
		}
		g.Days = append(g.Days, Day{
			Date:     d,
			Midnight: midnight,
			Weekday:  b.clock.Weekday(d),
			InPeriod: period(d),
			IsToday:  todayErr == nil && d == today,
		})
		if d, err = b.clock.AddDays(d, 1); err != nil {
			return err
		}
	}

	// d is now the day after last.
	end, err := b.clock.ToInstant(d)
	if err != nil {
		return err
	}
	g.Span = Span{Start: g.Days[0].Midnight, End: end}
	return nil
}
