// Package grid lays out Jalali month, week and day views and places calendar
// events into their cells.
//
// The package is pure: callers supply the reference date, the current
// instant and the events, and every build returns a fresh Layout.
package grid

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/taqvim/internal/jalali"
)

// Errors returned by the engine.
var (
	// ErrOutOfRange is returned when a grid would leave the supported era.
	ErrOutOfRange = jalali.ErrOutOfRange

	// ErrInvalidInterval marks an event whose end precedes its start.
	ErrInvalidInterval = errors.New("event ends before it starts")

	// ErrConfiguration is returned for an unusable week start, capacity or mode.
	ErrConfiguration = errors.New("invalid grid configuration")
)

// Mode selects the period a grid covers.
type Mode string

const (
	ModeMonth Mode = "month"
	ModeWeek  Mode = "week"
	ModeDay   Mode = "day"
)

// ParseMode parses a view name. An empty string yields ModeMonth.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "month":
		return ModeMonth, nil
	case "week":
		return ModeWeek, nil
	case "day":
		return ModeDay, nil
	default:
		return "", fmt.Errorf("%w: unknown view %q", ErrConfiguration, s)
	}
}

// Span is a half-open interval [Start, End) of instants.
type Span struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies in the span.
func (s Span) Contains(t time.Time) bool {
	return !t.Before(s.Start) && t.Before(s.End)
}

// Day describes one civil day of a grid.
type Day struct {
	Date     jalali.Date
	Midnight time.Time
	Weekday  jalali.Weekday
	InPeriod bool // false for leading and trailing days of a month view
	IsToday  bool
}

// Grid is the day skeleton of a view before events are placed.
type Grid struct {
	Mode      Mode
	Reference jalali.Date
	WeekStart jalali.Weekday
	Days      []Day
	Span      Span
}

// Weeks splits the days into rows of seven. A day grid yields a single row
// with one day.
func (g *Grid) Weeks() [][]Day {
	if g.Mode == ModeDay {
		return [][]Day{g.Days}
	}
	rows := make([][]Day, 0, len(g.Days)/7)
	for i := 0; i < len(g.Days); i += 7 {
		rows = append(rows, g.Days[i:min(i+7, len(g.Days))])
	}
	return rows
}

// IndexOf returns the position of d in the grid, or -1.
func (g *Grid) IndexOf(d jalali.Date) int {
	for i, day := range g.Days {
		if day.Date == d {
			return i
		}
	}
	return -1
}

// dayIndex returns the index of the day containing t, or -1 when t falls
// outside the span.
func (g *Grid) dayIndex(t time.Time) int {
	if !g.Span.Contains(t) {
		return -1
	}
	lo, hi := 0, len(g.Days)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if g.Days[mid].Midnight.After(t) {
			hi = mid - 1
		} else {
			lo = mid
		}
	}
	return lo
}
