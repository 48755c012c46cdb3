// Package summary loads layouts from an event repository and aggregates
// statistics over them.
package summary

import (
	"context"
	"fmt"
	"time"

	"github.com/javiermolinar/taqvim/internal/event"
	"github.com/javiermolinar/taqvim/internal/grid"
	"github.com/javiermolinar/taqvim/internal/jalali"
)

// DayStats holds the totals for one day of a layout.
type DayStats struct {
	Date    jalali.Date
	Events  int
	Minutes int
}

// Stats holds aggregated statistics for a layout.
type Stats struct {
	Mode  grid.Mode
	Start jalali.Date // first day of the focused period
	End   jalali.Date // last day of the focused period

	TotalEvents     int // events anchored anywhere in the grid
	VisibleEvents   int
	HiddenEvents    int
	InPeriodEvents  int
	SpilloverEvents int // anchored on leading or trailing days
	RejectedEvents  int

	TotalMinutes   int
	MinutesByColor map[event.Color]int

	BusiestDay    jalali.Date
	BusiestEvents int

	Days []DayStats
}

// HasBusiestDay reports whether any in-period day has events.
func (s *Stats) HasBusiestDay() bool {
	return s.BusiestEvents > 0
}

// ColorPercent returns the share of scheduled minutes spent on c.
func (s *Stats) ColorPercent(c event.Color) int {
	if s.TotalMinutes == 0 {
		return 0
	}
	return (s.MinutesByColor[c] * 100) / s.TotalMinutes
}

// Summarize aggregates a layout. Hidden events count towards every total
// except VisibleEvents. The busiest day is the earliest in-period day with
// the most anchored events.
func Summarize(l *grid.Layout) *Stats {
	s := &Stats{
		Mode:           l.Grid.Mode,
		MinutesByColor: make(map[event.Color]int),
		RejectedEvents: len(l.Rejected),
		Days:           make([]DayStats, 0, len(l.Cells)),
	}

	first := true
	for _, c := range l.Cells {
		if c.Day.InPeriod {
			if first {
				s.Start = c.Day.Date
				first = false
			}
			s.End = c.Day.Date
		}

		ds := DayStats{Date: c.Day.Date, Events: c.Total()}
		for _, e := range c.All() {
			minutes := int(e.Duration() / time.Minute)
			ds.Minutes += minutes
			s.MinutesByColor[e.Color] += minutes
		}
		s.Days = append(s.Days, ds)

		s.TotalEvents += c.Total()
		s.VisibleEvents += len(c.Events)
		s.HiddenEvents += c.HiddenCount
		s.TotalMinutes += ds.Minutes

		if !c.Day.InPeriod {
			s.SpilloverEvents += c.Total()
			continue
		}
		s.InPeriodEvents += c.Total()
		if c.Total() > s.BusiestEvents {
			s.BusiestEvents = c.Total()
			s.BusiestDay = c.Day.Date
		}
	}
	return s
}

// LoadOptions configures LoadLayout.
type LoadOptions struct {
	Reference jalali.Date
	Mode      grid.Mode
	Now       time.Time
	Grid      grid.Options
}

// LoadLayout fetches the events overlapping the grid for opts and builds the
// layout.
func LoadLayout(ctx context.Context, repo event.Repository, b *grid.Builder, opts LoadOptions) (*grid.Layout, error) {
	g, _, err := b.GridFor(opts.Reference, opts.Mode, opts.Now, opts.Grid)
	if err != nil {
		return nil, err
	}

	events, err := repo.ListEventsInRange(ctx, g.Span.Start, g.Span.End)
	if err != nil {
		return nil, fmt.Errorf("fetching events: %w", err)
	}

	return b.BuildDate(opts.Reference, opts.Mode, opts.Now, events, opts.Grid)
}

// Build loads the layout for opts and summarizes it.
func Build(ctx context.Context, repo event.Repository, b *grid.Builder, opts LoadOptions) (*grid.Layout, *Stats, error) {
	l, err := LoadLayout(ctx, repo, b, opts)
	if err != nil {
		return nil, nil, err
	}
	return l, Summarize(l), nil
}
