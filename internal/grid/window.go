package grid

import (
	"fmt"

	"github.com/javiermolinar/taqvim/internal/event"
)

// Rejection records an event left out of a layout and the reason.
type Rejection struct {
	Event *event.Event
	Err   error
}

// Window keeps the events that overlap span: an event is visible when it
// starts before the span ends and does not end before the span starts.
// Events whose end precedes their start are returned as rejections instead.
// The input slice is not modified and nil entries are skipped.
func Window(events []*event.Event, span Span) ([]*event.Event, []Rejection) {
	var visible []*event.Event
	var rejected []Rejection
	for _, e := range events {
		if e == nil {
			continue
		}
		if !e.ValidInterval() {
			rejected = append(rejected, Rejection{
				Event: e,
				Err:   fmt.Errorf("%w: %q (%s)", ErrInvalidInterval, e.Title, e.ID),
			})
			continue
		}
		if e.Intersects(span.Start, span.End) {
			visible = append(visible, e)
		}
	}
	return visible, rejected
}
