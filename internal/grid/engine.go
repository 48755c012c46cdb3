package grid

import (
	"fmt"
	"time"

	"github.com/javiermolinar/taqvim/internal/event"
	"github.com/javiermolinar/taqvim/internal/jalali"
)

// Request is the input of a single build.
type Request struct {
	Reference time.Time
	Mode      Mode
	Now       time.Time
	Events    []*event.Event
	Options   Options
}

// Layout is a grid with its events placed.
type Layout struct {
	Grid     *Grid
	Cells    []Cell
	Rejected []Rejection
	Options  Options
}

// Build converts the reference instant to a civil date and runs BuildDate.
func (b *Builder) Build(req Request) (*Layout, error) {
	ref, err := b.clock.ToCivil(req.Reference)
	if err != nil {
		return nil, err
	}
	return b.BuildDate(ref, req.Mode, req.Now, req.Events, req.Options)
}

// BuildDate builds the grid for ref, windows the events to its span and
// assigns them to cells. An out-of-range grid fails the whole build;
// malformed events are only listed in Layout.Rejected.
func (b *Builder) BuildDate(ref jalali.Date, mode Mode, now time.Time, events []*event.Event, opts Options) (*Layout, error) {
	g, opts, err := b.GridFor(ref, mode, now, opts)
	if err != nil {
		return nil, err
	}

	visible, rejected := Window(events, g.Span)
	return &Layout{
		Grid:     g,
		Cells:    Assign(g, visible, opts.Capacity),
		Rejected: rejected,
		Options:  opts,
	}, nil
}

// GridFor resolves opts and returns the empty grid for ref and mode along
// with the options in effect. Callers use its span to load events.
func (b *Builder) GridFor(ref jalali.Date, mode Mode, now time.Time, opts Options) (*Grid, Options, error) {
	opts, err := opts.Resolve()
	if err != nil {
		return nil, Options{}, err
	}

	var g *Grid
	switch mode {
	case ModeMonth, "":
		g, err = b.MonthGrid(ref, opts.WeekStart, now)
	case ModeWeek:
		g, err = b.WeekGrid(ref, opts.WeekStart, now)
	case ModeDay:
		g, err = b.DayGrid(ref, now)
	default:
		return nil, Options{}, fmt.Errorf("%w: unknown view %q", ErrConfiguration, mode)
	}
	if err != nil {
		return nil, Options{}, err
	}
	return g, opts, nil
}

// Cell returns the cell for d, or nil when d is not in the layout.
func (l *Layout) Cell(d jalali.Date) *Cell {
	if i := l.Grid.IndexOf(d); i >= 0 {
		return &l.Cells[i]
	}
	return nil
}

// Weeks splits the cells into rows matching Grid.Weeks.
func (l *Layout) Weeks() [][]Cell {
	if l.Grid.Mode == ModeDay {
		return [][]Cell{l.Cells}
	}
	rows := make([][]Cell, 0, len(l.Cells)/7)
	for i := 0; i < len(l.Cells); i += 7 {
		rows = append(rows, l.Cells[i:min(i+7, len(l.Cells))])
	}
	return rows
}

// Today returns the cell flagged as today, or nil.
func (l *Layout) Today() *Cell {
	for i := range l.Cells {
		if l.Cells[i].Day.IsToday {
			return &l.Cells[i]
		}
	}
	return nil
}

// Navigate returns the reference date delta periods away from ref. Months
// clamp the day to the target month's length, weeks move seven days and days
// move one.
func Navigate(clock jalali.Clock, ref jalali.Date, mode Mode, delta int) (jalali.Date, error) {
	switch mode {
	case ModeMonth, "":
		return clock.AddMonths(ref, delta)
	case ModeWeek:
		return clock.AddDays(ref, 7*delta)
	case ModeDay:
		return clock.AddDays(ref, delta)
	default:
		return jalali.Date{}, fmt.Errorf("%w: unknown view %q", ErrConfiguration, mode)
	}
}
