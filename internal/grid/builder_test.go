package grid

import (
	"errors"
	"testing"
	"time"

	"github.com/javiermolinar/taqvim/internal/jalali"
)

func newTestBuilder() *Builder {
	return NewBuilder(jalali.New(time.UTC))
}

func date(y, m, d int) jalali.Date {
	return jalali.Date{Year: y, Month: m, Day: d}
}

func TestMonthGrid_Scenarios(t *testing.T) {
	b := newTestBuilder()

	tests := []struct {
		name      string
		ref       jalali.Date
		wantFirst jalali.Date
		wantLast  jalali.Date
		wantLen   int
		leading   int
		trailing  int
	}{
		{
			name:      "Farvardin 1403 starts on Wednesday",
			ref:       date(1403, 1, 15),
			wantFirst: date(1402, 12, 26),
			wantLast:  date(1403, 1, 31),
			wantLen:   35,
			leading:   4,
			trailing:  0,
		},
		{
			name:      "Esfand 1402 has 29 days",
			ref:       date(1402, 12, 1),
			wantFirst: date(1402, 11, 28),
			wantLast:  date(1403, 1, 3),
			wantLen:   35,
			leading:   3,
			trailing:  3,
		},
		{
			name:      "Farvardin 1404 starts on Friday",
			ref:       date(1404, 1, 1),
			wantFirst: date(1403, 12, 25),
			wantLast:  date(1404, 2, 5),
			wantLen:   42,
			leading:   6,
			trailing:  5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := b.MonthGrid(tt.ref, jalali.Saturday, time.Time{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(g.Days) != tt.wantLen {
				t.Fatalf("expected %d days, got %d", tt.wantLen, len(g.Days))
			}
			if g.Days[0].Date != tt.wantFirst {
				t.Errorf("first day = %s, want %s", g.Days[0].Date, tt.wantFirst)
			}
			if g.Days[len(g.Days)-1].Date != tt.wantLast {
				t.Errorf("last day = %s, want %s", g.Days[len(g.Days)-1].Date, tt.wantLast)
			}

			leading, trailing := 0, 0
			for i, d := range g.Days {
				if d.InPeriod {
					continue
				}
				if i < len(g.Days)/2 {
					leading++
				} else {
					trailing++
				}
			}
			if leading != tt.leading || trailing != tt.trailing {
				t.Errorf("leading/trailing = %d/%d, want %d/%d", leading, trailing, tt.leading, tt.trailing)
			}
			if len(g.Weeks()) != tt.wantLen/7 {
				t.Errorf("expected %d week rows, got %d", tt.wantLen/7, len(g.Weeks()))
			}
		})
	}
}

func TestMonthGrid_CompleteAndAligned(t *testing.T) {
	b := newTestBuilder()
	clock := b.Clock()

	for ws := jalali.Saturday; ws <= jalali.Friday; ws++ {
		for _, year := range []int{1399, 1402, 1403, 1404} {
			for month := 1; month <= 12; month++ {
				ref := date(year, month, 1)
				g, err := b.MonthGrid(ref, ws, time.Time{})
				if err != nil {
					t.Fatalf("%s ws=%v: %v", ref, ws, err)
				}

				if len(g.Days) == 0 || len(g.Days)%7 != 0 {
					t.Fatalf("%s ws=%v: length %d is not a positive multiple of 7", ref, ws, len(g.Days))
				}
				if got := g.Days[0].Weekday; got != ws {
					t.Errorf("%s ws=%v: first weekday %v", ref, ws, got)
				}
				if got := g.Days[len(g.Days)-1].Weekday; got != ws.Prev() {
					t.Errorf("%s ws=%v: last weekday %v", ref, ws, got)
				}

				inMonth := 0
				for i, d := range g.Days {
					if d.InPeriod {
						inMonth++
					}
					if i == 0 {
						continue
					}
					want, _ := clock.AddDays(g.Days[i-1].Date, 1)
					if d.Date != want {
						t.Fatalf("%s ws=%v: gap between %s and %s", ref, ws, g.Days[i-1].Date, d.Date)
					}
				}
				if inMonth != jalali.DaysInMonth(year, month) {
					t.Errorf("%s ws=%v: %d in-period days, want %d", ref, ws, inMonth, jalali.DaysInMonth(year, month))
				}

				if !g.Span.Start.Equal(g.Days[0].Midnight) {
					t.Errorf("%s: span start %v", ref, g.Span.Start)
				}
				wantEnd := g.Days[len(g.Days)-1].Midnight.AddDate(0, 0, 1)
				if !g.Span.End.Equal(wantEnd) {
					t.Errorf("%s: span end %v, want %v", ref, g.Span.End, wantEnd)
				}
			}
		}
	}
}

func TestMonthGrid_NoLeadingDaysWhenAligned(t *testing.T) {
	// 1403/01/01 is a Wednesday and 1403/01/31 a Friday.
	g, err := newTestBuilder().MonthGrid(date(1403, 1, 1), jalali.Wednesday, time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Days[0].Date != date(1403, 1, 1) {
		t.Errorf("expected no leading days, first is %s", g.Days[0].Date)
	}
	last := g.Days[len(g.Days)-1]
	if last.Date != date(1403, 2, 4) {
		t.Errorf("expected grid to end on Tuesday 1403/02/04, got %s", last.Date)
	}
}

func TestMonthGrid_Today(t *testing.T) {
	b := newTestBuilder()
	now := time.Date(2024, 4, 3, 15, 30, 0, 0, time.UTC) // 1403/01/15

	g, err := b.MonthGrid(date(1403, 1, 1), jalali.Saturday, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	count := 0
	for _, d := range g.Days {
		if d.IsToday {
			count++
			if d.Date != date(1403, 1, 15) {
				t.Errorf("today flagged on %s", d.Date)
			}
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one today, got %d", count)
	}

	other, _ := b.MonthGrid(date(1403, 3, 1), jalali.Saturday, now)
	for _, d := range other.Days {
		if d.IsToday {
			t.Errorf("unexpected today in another month: %s", d.Date)
		}
	}
}

func TestWeekGrid(t *testing.T) {
	b := newTestBuilder()

	g, err := b.WeekGrid(date(1403, 1, 1), jalali.Saturday, time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(g.Days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(g.Days))
	}
	if g.Days[0].Date != date(1402, 12, 26) || g.Days[6].Date != date(1403, 1, 3) {
		t.Errorf("unexpected week %s..%s", g.Days[0].Date, g.Days[6].Date)
	}
	for _, d := range g.Days {
		if !d.InPeriod {
			t.Errorf("%s should be in period", d.Date)
		}
	}
	if got := g.Span.End.Sub(g.Span.Start); got != 7*24*time.Hour {
		t.Errorf("expected a 7 day span in UTC, got %v", got)
	}
}

func TestDayGrid(t *testing.T) {
	b := newTestBuilder()

	g, err := b.DayGrid(date(1403, 1, 15), time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(g.Days) != 1 {
		t.Fatalf("expected 1 day, got %d", len(g.Days))
	}
	wantStart := time.Date(2024, 4, 3, 0, 0, 0, 0, time.UTC)
	if !g.Span.Start.Equal(wantStart) || !g.Span.End.Equal(wantStart.AddDate(0, 0, 1)) {
		t.Errorf("unexpected span %v - %v", g.Span.Start, g.Span.End)
	}
	if g.Days[0].Weekday != jalali.Wednesday {
		t.Errorf("expected Wednesday, got %v", g.Days[0].Weekday)
	}
}

func TestDayGrid_DaylightSavingDay(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("time zone data unavailable: %v", err)
	}
	b := NewBuilder(jalali.New(loc))

	// 2024-03-31, clocks go forward one hour.
	g, err := b.DayGrid(date(1403, 1, 12), time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := g.Span.End.Sub(g.Span.Start); got != 23*time.Hour {
		t.Errorf("expected a 23 hour day, got %v", got)
	}
}

func TestBuilder_Errors(t *testing.T) {
	b := newTestBuilder()

	t.Run("invalid date", func(t *testing.T) {
		_, err := b.MonthGrid(date(1403, 13, 1), jalali.Saturday, time.Time{})
		if !errors.Is(err, jalali.ErrInvalidDate) {
			t.Errorf("got %v, want %v", err, jalali.ErrInvalidDate)
		}
	})

	t.Run("year outside era", func(t *testing.T) {
		_, err := b.DayGrid(date(jalali.MaxYear+1, 1, 1), time.Time{})
		if !errors.Is(err, ErrOutOfRange) {
			t.Errorf("got %v, want %v", err, ErrOutOfRange)
		}
	})

	t.Run("grid would leave era", func(t *testing.T) {
		_, err := b.MonthGrid(date(jalali.MaxYear, 12, 1), jalali.Saturday, time.Time{})
		if err != nil && !errors.Is(err, ErrOutOfRange) {
			t.Errorf("got %v, want nil or %v", err, ErrOutOfRange)
		}
		_, err = b.MonthGrid(date(jalali.MinYear, 1, 1), jalali.Saturday, time.Time{})
		if err != nil && !errors.Is(err, ErrOutOfRange) {
			t.Errorf("got %v, want nil or %v", err, ErrOutOfRange)
		}
	})
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{in: "", want: ModeMonth},
		{in: "Month", want: ModeMonth},
		{in: "week", want: ModeWeek},
		{in: " day ", want: ModeDay},
		{in: "year", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrConfiguration) {
				t.Errorf("ParseMode(%q) error = %v, want %v", tt.in, err, ErrConfiguration)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseMode(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}
