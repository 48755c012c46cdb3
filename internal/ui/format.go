package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/taqvim/internal/event"
	"github.com/javiermolinar/taqvim/internal/grid"
	"github.com/javiermolinar/taqvim/internal/jalali"
	"github.com/javiermolinar/taqvim/internal/summary"
)

// RenderOpts configures text rendering of layouts.
type RenderOpts struct {
	Numerals jalali.Numerals
	Width    int // terminal width; 0 means detect
	Stats    bool
}

func (o RenderOpts) width() int {
	if o.Width > 0 {
		return o.Width
	}
	return termWidth()
}

// monthCellWidth splits the terminal width over seven columns and their
// eight borders.
func monthCellWidth(total int) int {
	return min(max((total-8)/7, 8), 24)
}

// RenderLayout writes a layout as text.
func RenderLayout(w io.Writer, l *grid.Layout, opts RenderOpts) {
	switch l.Grid.Mode {
	case grid.ModeWeek:
		renderWeek(w, l, opts)
	case grid.ModeDay:
		renderDay(w, l, opts)
	default:
		renderMonth(w, l, opts)
	}

	if len(l.Rejected) > 0 {
		fmt.Fprintln(w)
		for _, r := range l.Rejected {
			fmt.Fprintln(w, formatWarn(fmt.Sprintf("  ! skipped %s (%s): %v", r.Event.ID, r.Event.Title, r.Err)))
		}
	}

	if opts.Stats {
		fmt.Fprintln(w)
		PrintStats(w, summary.Summarize(l), opts.Numerals)
	}
}

func renderMonth(w io.Writer, l *grid.Layout, opts RenderOpts) {
	n := opts.Numerals
	cw := monthCellWidth(opts.width())
	border := strings.Repeat("─", 7*cw+8)

	fmt.Fprintf(w, "\n  %s\n", formatHeader(jalali.MonthTitle(l.Grid.Reference, n)))
	fmt.Fprintln(w, border)

	header := make([]string, 0, 7)
	for i := range 7 {
		header = append(header, pad(jalali.WeekdayName(l.Grid.WeekStart.Add(i), n), cw))
	}
	fmt.Fprintf(w, "│%s│\n", strings.Join(header, "│"))
	fmt.Fprintln(w, border)

	for _, week := range l.Weeks() {
		cols := make([]string, len(week))
		rows := 0
		hidden := false
		for i, c := range week {
			cols[i] = dayNumber(c.Day, n, cw)
			rows = max(rows, len(c.Events))
			hidden = hidden || c.HiddenCount > 0
		}
		fmt.Fprintf(w, "│%s│\n", strings.Join(cols, "│"))

		for r := range rows {
			for i, c := range week {
				cols[i] = strings.Repeat(" ", cw)
				if r < len(c.Events) {
					e := c.Events[r]
					label := jalali.FormatDigits(e.Start.Format("15:04"), n) + " " + e.Title
					cols[i] = formatEvent(e.Color, pad(label, cw))
				}
			}
			fmt.Fprintf(w, "│%s│\n", strings.Join(cols, "│"))
		}

		if hidden {
			for i, c := range week {
				cols[i] = formatMuted(pad(c.MoreLabel(n), cw))
			}
			fmt.Fprintf(w, "│%s│\n", strings.Join(cols, "│"))
		}
		fmt.Fprintln(w, border)
	}
}

func dayNumber(d grid.Day, n jalali.Numerals, cw int) string {
	label := pad(jalali.FormatDigits(fmt.Sprintf("%d", d.Date.Day), n), cw)
	switch {
	case d.IsToday:
		return formatToday(label)
	case !d.InPeriod:
		return formatMuted(label)
	default:
		return label
	}
}

func renderWeek(w io.Writer, l *grid.Layout, opts RenderOpts) {
	n := opts.Numerals
	first, last := l.Cells[0].Day.Date, l.Cells[len(l.Cells)-1].Day.Date
	fmt.Fprintf(w, "\n  %s\n", formatHeader(jalali.Format(first, n)+" - "+jalali.Format(last, n)))
	fmt.Fprintln(w, strings.Repeat("─", 60))

	for i, c := range l.Cells {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "  %s\n", dayTitle(c.Day, n))
		if c.Total() == 0 {
			fmt.Fprintf(w, "    %s\n", formatMuted(noEvents(n)))
			continue
		}
		for _, e := range c.Events {
			printEventLine(w, e, n)
		}
		if label := c.MoreLabel(n); label != "" {
			fmt.Fprintf(w, "    %s\n", formatMuted(label))
		}
	}
}

func renderDay(w io.Writer, l *grid.Layout, opts RenderOpts) {
	n := opts.Numerals
	c := l.Cells[0]
	fmt.Fprintf(w, "\n  %s\n", dayTitle(c.Day, n))
	fmt.Fprintln(w, strings.Repeat("─", 60))

	// Hours covered by an event after the one it starts in.
	ongoing := make([][]*event.Event, grid.HoursPerDay)
	for _, e := range c.All() {
		first, last, ok := grid.RowSpan(e, c.Day)
		if !ok {
			continue
		}
		for h := first + 1; h <= last; h++ {
			ongoing[h] = append(ongoing[h], e)
		}
	}

	for h := range grid.HoursPerDay {
		label := grid.FormatHourLabel(h, n)
		var entries []string
		for _, e := range c.Hours[h] {
			entries = append(entries, formatEvent(e.Color, timeRange(e, n)+"  "+e.Title))
		}
		for _, e := range ongoing[h] {
			entries = append(entries, formatMuted("┆ "+e.Title))
		}
		if len(entries) == 0 {
			fmt.Fprintf(w, "  %s │\n", formatMuted(label))
			continue
		}
		for i, entry := range entries {
			if i == 0 {
				fmt.Fprintf(w, "  %s │ %s\n", label, entry)
			} else {
				fmt.Fprintf(w, "  %s │ %s\n", strings.Repeat(" ", ansi.StringWidth(label)), entry)
			}
		}
	}
}

func dayTitle(d grid.Day, n jalali.Numerals) string {
	title := jalali.WeekdayName(d.Weekday, n) + " " + jalali.Format(d.Date, n)
	if d.IsToday {
		return formatToday(title)
	}
	return formatHeader(title)
}

func noEvents(n jalali.Numerals) string {
	if n == jalali.LatinDigits {
		return "No events"
	}
	return "بدون رویداد"
}

func printEventLine(w io.Writer, e *event.Event, n jalali.Numerals) {
	fmt.Fprintf(w, "    %s  %s\n", formatEvent(e.Color, "●"), timeRange(e, n)+"  "+e.Title)
}

// timeRange renders "HH:MM-HH:MM" in the event's own zone.
func timeRange(e *event.Event, n jalali.Numerals) string {
	return jalali.FormatDigits(e.Start.Format("15:04")+"-"+e.End.Format("15:04"), n)
}

// PrintEventRow prints one event with its full date for list output.
func PrintEventRow(w io.Writer, e *event.Event, clock jalali.Clock, n jalali.Numerals) {
	date := "?"
	if d, err := clock.ToCivil(e.Start); err == nil {
		date = jalali.Format(d, n)
	}
	fmt.Fprintf(w, "  %s %s  %s %s  %s  %s\n",
		formatEvent(e.Color, "●"),
		formatMuted(e.ID),
		date,
		timeRange(e, n),
		e.Title,
		formatMuted(FormatDuration(int(e.Duration().Minutes()))),
	)
}

// PrintStats prints the summary lines under a view.
func PrintStats(w io.Writer, s *summary.Stats, n jalali.Numerals) {
	digits := func(v int) string { return jalali.FormatDigits(fmt.Sprintf("%d", v), n) }

	fmt.Fprintf(w, "  Events: %s  |  Shown: %s  |  Hidden: %s  |  Time: %s\n",
		formatStats(digits(s.TotalEvents)),
		digits(s.VisibleEvents),
		digits(s.HiddenEvents),
		formatStats(FormatDuration(s.TotalMinutes)),
	)

	if s.HasBusiestDay() {
		fmt.Fprintf(w, "  Busiest day: %s (%s events)\n", jalali.Format(s.BusiestDay, n), digits(s.BusiestEvents))
	}

	if s.TotalMinutes > 0 {
		parts := make([]string, 0, len(s.MinutesByColor))
		for _, c := range event.Palette() {
			if s.MinutesByColor[c] == 0 {
				continue
			}
			parts = append(parts, formatEvent(c, fmt.Sprintf("%s %s%%", c, digits(s.ColorPercent(c)))))
		}
		fmt.Fprintf(w, "  Colors: %s\n", strings.Join(parts, "  "))
	}

	if s.SpilloverEvents > 0 || s.RejectedEvents > 0 {
		fmt.Fprintf(w, "  %s\n", formatMuted(fmt.Sprintf("Outside period: %d  |  Rejected: %d",
			s.SpilloverEvents, s.RejectedEvents)))
	}
}

// FormatDuration formats minutes as a human-readable duration.
func FormatDuration(minutes int) string {
	if minutes == 0 {
		return "0m"
	}
	hours := minutes / 60
	mins := minutes % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh%dm", hours, mins)
}

// pad truncates s to width cells and right-pads it with spaces.
func pad(s string, width int) string {
	s = ansi.Truncate(s, width, "…")
	if gap := width - ansi.StringWidth(s); gap > 0 {
		s += strings.Repeat(" ", gap)
	}
	return s
}
