package summary

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/javiermolinar/taqvim/internal/event"
	"github.com/javiermolinar/taqvim/internal/grid"
	"github.com/javiermolinar/taqvim/internal/jalali"
)

func at(m time.Month, d, h int) time.Time {
	return time.Date(2024, m, d, h, 0, 0, 0, time.UTC)
}

func ev(id string, color event.Color, start time.Time, minutes int) *event.Event {
	return &event.Event{
		ID:          id,
		Title:       id,
		Description: "test",
		Start:       start,
		End:         start.Add(time.Duration(minutes) * time.Minute),
		Color:       color,
	}
}

// Farvardin 1403: leading days 1402/12/26..29 (2024-03-16..19), then
// 1403/01/01 (2024-03-20) through 1403/01/31 (2024-04-19).
func testEvents() []*event.Event {
	return []*event.Event{
		ev("lead", event.ColorRed, at(3, 17, 9), 60),
		ev("a", event.ColorBlue, at(3, 25, 9), 30),
		ev("b", event.ColorBlue, at(3, 25, 10), 30),
		ev("c", event.ColorAmber, at(3, 25, 11), 60),
		ev("d", event.ColorAmber, at(3, 25, 12), 60),
		ev("e", event.ColorBlue, at(4, 1, 9), 120),
		ev("bad", event.ColorBlue, at(4, 2, 9), -30),
	}
}

func TestSummarize(t *testing.T) {
	b := grid.NewBuilder(jalali.New(time.UTC))
	l, err := b.BuildDate(jalali.Date{Year: 1403, Month: 1, Day: 1}, grid.ModeMonth, time.Time{}, testEvents(), grid.DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := Summarize(l)

	if s.Start != (jalali.Date{Year: 1403, Month: 1, Day: 1}) || s.End != (jalali.Date{Year: 1403, Month: 1, Day: 31}) {
		t.Errorf("period = %s..%s", s.Start, s.End)
	}
	if s.TotalEvents != 6 {
		t.Errorf("total = %d, want 6", s.TotalEvents)
	}
	if s.VisibleEvents != 5 || s.HiddenEvents != 1 {
		t.Errorf("visible/hidden = %d/%d, want 5/1", s.VisibleEvents, s.HiddenEvents)
	}
	if s.InPeriodEvents != 5 || s.SpilloverEvents != 1 {
		t.Errorf("in period/spillover = %d/%d, want 5/1", s.InPeriodEvents, s.SpilloverEvents)
	}
	if s.RejectedEvents != 1 {
		t.Errorf("rejected = %d, want 1", s.RejectedEvents)
	}
	if !s.HasBusiestDay() || s.BusiestDay != (jalali.Date{Year: 1403, Month: 1, Day: 6}) || s.BusiestEvents != 4 {
		t.Errorf("busiest = %s (%d)", s.BusiestDay, s.BusiestEvents)
	}
	if s.TotalMinutes != 360 {
		t.Errorf("total minutes = %d, want 360", s.TotalMinutes)
	}
	if s.MinutesByColor[event.ColorBlue] != 180 || s.MinutesByColor[event.ColorAmber] != 120 || s.MinutesByColor[event.ColorRed] != 60 {
		t.Errorf("minutes by color = %v", s.MinutesByColor)
	}
	if got := s.ColorPercent(event.ColorBlue); got != 50 {
		t.Errorf("blue percent = %d, want 50", got)
	}
	if len(s.Days) != len(l.Cells) {
		t.Errorf("days = %d, want %d", len(s.Days), len(l.Cells))
	}
}

func TestSummarize_Empty(t *testing.T) {
	b := grid.NewBuilder(jalali.New(time.UTC))
	l, err := b.BuildDate(jalali.Date{Year: 1403, Month: 1, Day: 1}, grid.ModeWeek, time.Time{}, nil, grid.DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := Summarize(l)
	if s.TotalEvents != 0 || s.HasBusiestDay() || s.ColorPercent(event.ColorBlue) != 0 {
		t.Errorf("expected empty stats, got %+v", s)
	}
}

type fakeRepo struct {
	event.Repository
	events     []*event.Event
	start, end time.Time
	err        error
}

func (f *fakeRepo) ListEventsInRange(_ context.Context, start, end time.Time) ([]*event.Event, error) {
	f.start, f.end = start, end
	if f.err != nil {
		return nil, f.err
	}
	var out []*event.Event
	for _, e := range f.events {
		if e.Intersects(start, end) {
			out = append(out, e)
		}
	}
	return out, nil
}

func TestLoadLayout(t *testing.T) {
	repo := &fakeRepo{events: testEvents()[:6]}
	b := grid.NewBuilder(jalali.New(time.UTC))

	l, s, err := Build(context.Background(), repo, b, LoadOptions{
		Reference: jalali.Date{Year: 1403, Month: 1, Day: 6},
		Mode:      grid.ModeDay,
		Grid:      grid.DefaultOptions(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.start.Equal(at(3, 25, 0)) || !repo.end.Equal(at(3, 26, 0)) {
		t.Errorf("queried %v - %v", repo.start, repo.end)
	}
	if len(l.Cells) != 1 || len(l.Cells[0].Events) != 4 {
		t.Fatalf("expected 4 events in the day view")
	}
	if s.TotalEvents != 4 || s.HiddenEvents != 0 {
		t.Errorf("stats = %+v", s)
	}
}

func TestLoadLayout_Errors(t *testing.T) {
	b := grid.NewBuilder(jalali.New(time.UTC))
	ref := jalali.Date{Year: 1403, Month: 1, Day: 1}

	t.Run("repository error", func(t *testing.T) {
		want := errors.New("boom")
		_, err := LoadLayout(context.Background(), &fakeRepo{err: want}, b, LoadOptions{Reference: ref, Grid: grid.DefaultOptions()})
		if !errors.Is(err, want) {
			t.Errorf("got %v, want %v", err, want)
		}
	})

	t.Run("bad options", func(t *testing.T) {
		_, err := LoadLayout(context.Background(), &fakeRepo{}, b, LoadOptions{Reference: ref})
		if !errors.Is(err, grid.ErrConfiguration) {
			t.Errorf("got %v, want %v", err, grid.ErrConfiguration)
		}
	})
}
