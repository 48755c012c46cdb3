// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/robfig/cron/v3"

	"github.com/javiermolinar/taqvim/internal/event"
	"github.com/javiermolinar/taqvim/internal/grid"
	"github.com/javiermolinar/taqvim/internal/jalali"
	"github.com/javiermolinar/taqvim/internal/summary"
)

// Request describes the period the TUI shows.
type Request struct {
	Reference jalali.Date
	Mode      grid.Mode
	Now       time.Time
	Options   grid.Options
}

func (r Request) load(ctx context.Context, repo event.Repository, b *grid.Builder, ref jalali.Date) (*grid.Layout, error) {
	return summary.LoadLayout(ctx, repo, b, summary.LoadOptions{
		Reference: ref,
		Mode:      r.Mode,
		Now:       r.Now,
		Grid:      r.Options,
	})
}

// InitialLoadMsg is sent when all 3 periods are loaded initially.
type InitialLoadMsg struct {
	Window *grid.PeriodWindow
}

// PeriodShiftedMsg is sent when a new edge period is loaded after navigation.
type PeriodShiftedMsg struct {
	Layout  *grid.Layout
	Forward bool // true if shifted forward, false if backward
}

// EventDeletedMsg is sent after an event is removed.
type EventDeletedMsg struct {
	Event *event.Event
}

// MidnightMsg is sent when the civil day changes.
type MidnightMsg struct {
	Now time.Time
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// LoadInitial loads 3 periods (prev, current, next) around req.Reference.
// Neighbours beyond the supported era are left nil.
func LoadInitial(repo event.Repository, b *grid.Builder, req Request) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		curr, err := req.load(ctx, repo, b, req.Reference)
		if err != nil {
			return ErrMsg{Err: err}
		}

		var neighbours [2]*grid.Layout
		for i, delta := range []int{-1, 1} {
			ref, err := grid.Navigate(b.Clock(), req.Reference, req.Mode, delta)
			if err != nil {
				continue
			}
			l, err := req.load(ctx, repo, b, ref)
			if err != nil {
				continue
			}
			neighbours[i] = l
		}

		return InitialLoadMsg{Window: grid.NewPeriodWindow(neighbours[0], curr, neighbours[1])}
	}
}

// LoadNext loads the period after the new current one. req.Reference is the
// reference date the view has just moved to.
func LoadNext(repo event.Repository, b *grid.Builder, req Request) tea.Cmd {
	return loadEdge(repo, b, req, true)
}

// LoadPrev loads the period before the new current one.
func LoadPrev(repo event.Repository, b *grid.Builder, req Request) tea.Cmd {
	return loadEdge(repo, b, req, false)
}

func loadEdge(repo event.Repository, b *grid.Builder, req Request, forward bool) tea.Cmd {
	return func() tea.Msg {
		delta := -1
		if forward {
			delta = 1
		}
		ref, err := grid.Navigate(b.Clock(), req.Reference, req.Mode, delta)
		if err != nil {
			// Edge of the era: shift in an empty slot.
			return PeriodShiftedMsg{Forward: forward}
		}
		l, err := req.load(context.Background(), repo, b, ref)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return PeriodShiftedMsg{Layout: l, Forward: forward}
	}
}

// DeleteEvent removes an event from the repository.
func DeleteEvent(repo event.Repository, e *event.Event) tea.Cmd {
	return func() tea.Msg {
		if err := repo.DeleteEvent(context.Background(), e.ID); err != nil {
			return ErrMsg{Err: fmt.Errorf("deleting event: %w", err)}
		}
		return EventDeletedMsg{Event: e}
	}
}

// ClearStatusAfter clears the status line after d.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// NextMidnight returns the first instant of the civil day after now in loc.
// On days where DST removes midnight that is the first instant that exists,
// such as 01:00.
func NextMidnight(now time.Time, loc *time.Location) time.Time {
	rollover := nextDayStart(now, loc)

	expr := "0 0 * * *"
	switch name := loc.String(); name {
	case "Local":
	case "":
		return rollover
	default:
		expr = "CRON_TZ=" + name + " " + expr
	}
	sched, err := cron.ParseStandard(expr)
	if err != nil {
		return rollover
	}
	// cron skips a midnight that does not exist and lands a day late.
	if next := sched.Next(now); !next.After(rollover) {
		return next
	}
	return rollover
}

// nextDayStart normalizes a missing midnight forward, so it also serves zones
// without a loadable name, such as fixed offsets.
func nextDayStart(now time.Time, loc *time.Location) time.Time {
	y, m, d := now.In(loc).Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, loc)
}

// WaitForMidnight sends a MidnightMsg when the day in loc rolls over.
func WaitForMidnight(now time.Time, loc *time.Location) tea.Cmd {
	return tea.Tick(NextMidnight(now, loc).Sub(now), func(t time.Time) tea.Msg {
		return MidnightMsg{Now: t}
	})
}
