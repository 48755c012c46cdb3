package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/taqvim/internal/event"
	"github.com/javiermolinar/taqvim/internal/grid"
	"github.com/javiermolinar/taqvim/internal/jalali"
	"github.com/javiermolinar/taqvim/internal/summary"
	"github.com/javiermolinar/taqvim/internal/tui/input"
)

// Layout constants.
const (
	defaultWidth  = 80
	defaultHeight = 24
	headerLines   = 2 // title row and a blank line
	footerLines   = 3 // stats or status, prompt and help
	minCellWidth  = 6
	hourLabelW    = 5
)

var viewLabels = map[grid.Mode][2]string{
	grid.ModeMonth: {"Month", "ماه"},
	grid.ModeWeek:  {"Week", "هفته"},
	grid.ModeDay:   {"Day", "روز"},
}

// View renders the model.
func (m Model) View() string {
	if m.mode == ModeModal {
		return m.renderModal()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch l := m.current(); {
	case l == nil && m.loading:
		b.WriteString(m.styles.Empty.Render("Loading..."))
	case l == nil:
		b.WriteString(m.styles.Empty.Render("Nothing to show. Press r to reload."))
	case l.Grid.Mode == grid.ModeDay:
		b.WriteString(m.renderDay(l))
	case l.Grid.Mode == grid.ModeWeek:
		b.WriteString(m.renderWeek(l))
	default:
		b.WriteString(m.renderMonth(l))
	}

	body := b.String()
	pad := m.viewHeight() - footerLines - lipgloss.Height(body)
	if pad > 0 {
		body += strings.Repeat("\n", pad)
	}
	return body + "\n" + m.renderFooter()
}

func (m Model) viewWidth() int {
	if m.width > 0 {
		return m.width
	}
	return defaultWidth
}

func (m Model) viewHeight() int {
	if m.height > 0 {
		return m.height
	}
	return defaultHeight
}

// hourRows is the number of hour rows the day view can show.
func (m Model) hourRows() int {
	if m.height <= 0 {
		return grid.HoursPerDay
	}
	return min(max(m.height-headerLines-footerLines-1, 1), grid.HoursPerDay)
}

func (m Model) renderHeader() string {
	title := m.periodTitle()
	if m.loading {
		title += "  …"
	}

	tabs := make([]string, 0, len(viewLabels))
	for _, mode := range []grid.Mode{grid.ModeMonth, grid.ModeWeek, grid.ModeDay} {
		label := m.viewLabel(mode)
		if mode == m.view {
			tabs = append(tabs, m.styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(label))
		}
	}

	left := m.styles.Title.Render(title)
	right := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	gap := max(m.viewWidth()-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) viewLabel(mode grid.Mode) string {
	labels := viewLabels[mode]
	if m.numerals == jalali.LatinDigits {
		return labels[0]
	}
	return labels[1]
}

// periodTitle names the period on screen, or the cursor month while loading.
func (m Model) periodTitle() string {
	l := m.current()
	if l == nil {
		return jalali.MonthTitle(m.cursor, m.numerals)
	}
	switch l.Grid.Mode {
	case grid.ModeDay:
		return m.dayTitle(l.Grid.Days[0])
	case grid.ModeWeek:
		first, last := l.Grid.Days[0].Date, l.Grid.Days[len(l.Grid.Days)-1].Date
		return jalali.Format(first, m.numerals) + " - " + jalali.Format(last, m.numerals)
	default:
		return jalali.MonthTitle(l.Grid.Reference, m.numerals)
	}
}

func (m Model) dayTitle(d grid.Day) string {
	return jalali.WeekdayName(d.Weekday, m.numerals) + " " + jalali.Format(d.Date, m.numerals)
}

// cellWidth splits the terminal width over seven columns with a one-space gap.
func (m Model) cellWidth() int {
	return max((m.viewWidth()-6)/7, minCellWidth)
}

func (m Model) renderMonth(l *grid.Layout) string {
	cw := m.cellWidth()
	rowH := l.Options.Capacity + 2 // day number, events and the "+N more" line

	rows := make([]string, 0, len(l.Grid.Days)/7+1)
	rows = append(rows, m.renderWeekdayHeader(l, cw))
	for _, week := range l.Weeks() {
		cells := make([]string, 0, len(week)*2)
		for i, c := range week {
			if i > 0 {
				cells = append(cells, " ")
			}
			lines := []string{m.dayNumber(c.Day)}
			for _, e := range c.Events {
				lines = append(lines, m.chip(e, c.Day.InPeriod, m.eventLabel(e), cw))
			}
			if more := c.MoreLabel(m.numerals); more != "" {
				lines = append(lines, m.styles.More.Render(more))
			}
			cells = append(cells, m.renderCell(c, lines, cw, rowH))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderWeek(l *grid.Layout) string {
	cw := m.cellWidth()
	rowH := max(m.viewHeight()-headerLines-footerLines-1, 2*l.Options.Capacity+2)

	cells := make([]string, 0, len(l.Cells)*2)
	for i, c := range l.Cells {
		if i > 0 {
			cells = append(cells, " ")
		}
		lines := []string{m.styles.WeekdayHeader.Render(jalali.WeekdayShortName(c.Day.Weekday, m.numerals)) + " " + m.dayNumber(c.Day)}
		for _, e := range c.Events {
			lines = append(lines,
				m.chip(e, true, m.timeRange(e), cw),
				m.chip(e, true, e.Title, cw),
			)
		}
		if more := c.MoreLabel(m.numerals); more != "" {
			lines = append(lines, m.styles.More.Render(more))
		}
		if len(c.Events) == 0 {
			lines = append(lines, m.styles.Empty.Render("·"))
		}
		cells = append(cells, m.renderCell(c, lines, cw, rowH))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m Model) renderWeekdayHeader(l *grid.Layout, cw int) string {
	names := make([]string, 0, 13)
	for i := range 7 {
		if i > 0 {
			names = append(names, " ")
		}
		wd := l.Grid.WeekStart.Add(i)
		names = append(names, m.styles.WeekdayHeader.Width(cw).Render(ansi.Truncate(jalali.WeekdayName(wd, m.numerals), cw, "")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, names...)
}

// renderCell draws one day box of a month or week grid.
func (m Model) renderCell(c grid.Cell, lines []string, width, height int) string {
	style := m.styles.Cell
	if c.Day.Date == m.cursor {
		style = m.styles.CellCursor
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return style.Width(width).Height(height).MaxHeight(height).Render(strings.Join(lines, "\n"))
}

func (m Model) dayNumber(d grid.Day) string {
	n := jalali.FormatDigits(strconv.Itoa(d.Date.Day), m.numerals)
	switch {
	case d.IsToday:
		return m.styles.DayNumberToday.Render(n)
	case !d.InPeriod:
		return m.styles.DayNumberMuted.Render(n)
	default:
		return m.styles.DayNumber.Render(n)
	}
}

// chip renders one event line padded to width.
func (m Model) chip(e *event.Event, inPeriod bool, text string, width int) string {
	text = ansi.Truncate(text, width, "…")
	return m.styles.Event(e.Color, inPeriod).Width(width).Render(text)
}

// eventLabel is the "HH:MM title" line used in month cells.
func (m Model) eventLabel(e *event.Event) string {
	start := e.Start.In(m.clock.Location()).Format("15:04")
	return jalali.FormatDigits(start, m.numerals) + " " + e.Title
}

func (m Model) timeRange(e *event.Event) string {
	loc := m.clock.Location()
	s := e.Start.In(loc).Format("15:04") + "-" + e.End.In(loc).Format("15:04")
	return jalali.FormatDigits(s, m.numerals)
}

func (m Model) renderDay(l *grid.Layout) string {
	c := l.Cells[0]
	all := c.All()
	selected := m.selectedEvent()

	// Hours after the starting one show a continuation marker.
	continued := make([][]*event.Event, grid.HoursPerDay)
	for _, e := range all {
		first, last, ok := grid.RowSpan(e, c.Day)
		if !ok {
			continue
		}
		for h := first + 1; h <= last; h++ {
			continued[h] = append(continued[h], e)
		}
	}

	nowHour := -1
	if c.Day.IsToday {
		nowHour = m.nowFunc().In(m.clock.Location()).Hour()
	}

	rows := make([]string, 0, m.hourRows())
	contentW := max(m.viewWidth()-hourLabelW-3, minCellWidth)
	for h := m.scrollOffset; h < min(m.scrollOffset+m.hourRows(), grid.HoursPerDay); h++ {
		label := m.styles.HourLabel.Render(grid.FormatHourLabel(h, m.numerals))
		if h == nowHour {
			label = m.styles.HourLabelNow.Render(grid.FormatHourLabel(h, m.numerals))
		}

		parts := make([]string, 0, len(c.Hours[h])+len(continued[h]))
		for _, e := range c.Hours[h] {
			text := " " + m.timeRange(e) + " " + e.Title + " "
			if e == selected {
				parts = append(parts, m.styles.EventSelected(e.Color).Render(text))
			} else {
				parts = append(parts, m.styles.Event(e.Color, true).Render(text))
			}
		}
		for _, e := range continued[h] {
			parts = append(parts, m.styles.Dot(e.Color)+m.styles.Continuation.Render(" ┆ "+e.Title))
		}

		line := ansi.Truncate(strings.Join(parts, " "), contentW, "…")
		rows = append(rows, label+m.styles.HourRule.Render(" │ ")+line)
	}

	if len(all) == 0 {
		rows = append(rows, m.styles.Empty.Render(m.noEventsLabel()))
	}
	return strings.Join(rows, "\n")
}

func (m Model) noEventsLabel() string {
	if m.numerals == jalali.LatinDigits {
		return "No events"
	}
	return "بدون رویداد"
}

func (m Model) renderFooter() string {
	var status string
	switch {
	case m.statusMsg != "":
		style := m.styles.Status
		if strings.HasPrefix(m.statusMsg, "Error") {
			style = m.styles.StatusError
		}
		status = style.Render(m.statusMsg)
	case m.current() != nil:
		status = m.styles.Stats.Render(m.statsLine(summary.Summarize(m.current())))
	}

	var prompt string
	if m.mode == ModePrompt {
		prompt = m.prompt.View()
		if matches := input.PromptMatchingCommands(m.prompt.Value(), promptCommands); len(matches) > 0 {
			hints := make([]string, 0, len(matches))
			for _, cmd := range matches {
				hints = append(hints, cmd.Usage())
			}
			prompt += "  " + m.styles.PromptHint.Render(strings.Join(hints, "  "))
		}
	}

	return strings.Join([]string{
		ansi.Truncate(status, m.viewWidth(), "…"),
		prompt,
		m.help.View(m.keys),
	}, "\n")
}

// statsLine summarizes the period on screen.
func (m Model) statsLine(s *summary.Stats) string {
	parts := []string{fmt.Sprintf("%d events", s.InPeriodEvents)}
	if s.HiddenEvents > 0 {
		parts = append(parts, fmt.Sprintf("%d hidden", s.HiddenEvents))
	}
	if s.TotalMinutes > 0 {
		parts = append(parts, fmt.Sprintf("%dh%02dm scheduled", s.TotalMinutes/60, s.TotalMinutes%60))
	}
	if s.Mode != grid.ModeDay && s.HasBusiestDay() {
		parts = append(parts, "busiest "+jalali.Format(s.BusiestDay, m.numerals))
	}
	if s.RejectedEvents > 0 {
		parts = append(parts, fmt.Sprintf("%d rejected", s.RejectedEvents))
	}
	return strings.Join(parts, " · ")
}
