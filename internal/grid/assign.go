package grid

import (
	"fmt"
	"slices"
	"time"

	"github.com/javiermolinar/taqvim/internal/event"
	"github.com/javiermolinar/taqvim/internal/jalali"
)

// HoursPerDay is the number of hour rows in a day view.
const HoursPerDay = 24

// Cell holds the events anchored on one day of a layout.
type Cell struct {
	Day Day
	// Events are the visible events ordered by start time then ID.
	Events []*event.Event
	// HiddenCount is the number of anchored events beyond capacity.
	HiddenCount int
	Truncated   bool
	// Hours groups events by the hour they start in. Only set in day view.
	Hours [][]*event.Event

	all []*event.Event
}

// All returns every event anchored on the day, hidden ones included.
func (c Cell) All() []*event.Event {
	out := make([]*event.Event, len(c.all))
	copy(out, c.all)
	return out
}

// Total returns the number of anchored events.
func (c Cell) Total() int {
	return len(c.all)
}

// MoreLabel renders the overflow indicator, such as "+۲ بیشتر". It returns
// an empty string when nothing is hidden.
func (c Cell) MoreLabel(n jalali.Numerals) string {
	if c.HiddenCount <= 0 {
		return ""
	}
	if n == jalali.LatinDigits {
		return fmt.Sprintf("+%d more", c.HiddenCount)
	}
	return jalali.FormatDigits(fmt.Sprintf("+%d", c.HiddenCount), n) + " بیشتر"
}

// Assign places each event on the day its start falls on, even when the event
// runs over several days. Events starting before the grid are not anchored
// anywhere. Month and week cells keep at most capacity events; day cells keep
// them all and also group them by starting hour.
func Assign(g *Grid, events []*event.Event, capacity int) []Cell {
	cells := make([]Cell, len(g.Days))
	for i, d := range g.Days {
		cells[i].Day = d
	}

	for _, e := range events {
		if e == nil {
			continue
		}
		if i := g.dayIndex(e.Start); i >= 0 {
			cells[i].all = append(cells[i].all, e)
		}
	}

	loc := g.Span.Start.Location()
	for i := range cells {
		c := &cells[i]
		slices.SortFunc(c.all, event.Compare)

		if g.Mode == ModeDay {
			c.Events = c.all
			c.Hours = make([][]*event.Event, HoursPerDay)
			for _, e := range c.all {
				h := e.Start.In(loc).Hour()
				c.Hours[h] = append(c.Hours[h], e)
			}
			continue
		}

		if len(c.all) > capacity {
			c.Events = c.all[:capacity:capacity]
			c.HiddenCount = len(c.all) - capacity
			c.Truncated = true
		} else {
			c.Events = c.all
		}
	}
	return cells
}

// RowSpan returns the first and last hour rows e covers on day, clipped to
// the day. ok is false when the event does not touch the day. A zero-length
// event occupies the row it starts in.
func RowSpan(e *event.Event, day Day) (first, last int, ok bool) {
	start := day.Midnight
	loc := start.Location()
	y, m, d := start.Date()
	end := time.Date(y, m, d+1, 0, 0, 0, 0, loc)

	if e == nil || !e.ValidInterval() || !e.Intersects(start, end) {
		return 0, 0, false
	}
	if e.Start.Before(start) && !e.End.After(start) {
		// ended exactly at midnight
		return 0, 0, false
	}

	from := e.Start
	if from.Before(start) {
		from = start
	}
	to := e.End
	if !to.Before(end) {
		to = end.Add(-time.Nanosecond)
	} else if to.After(from) {
		to = to.Add(-time.Nanosecond)
	} else {
		to = from
	}
	return from.In(loc).Hour(), to.In(loc).Hour(), true
}
