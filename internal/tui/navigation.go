package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/taqvim/internal/grid"
	"github.com/javiermolinar/taqvim/internal/jalali"
	"github.com/javiermolinar/taqvim/internal/tui/commands"
)

// defaultDayHour is the first hour shown in a day without events.
const defaultDayHour = 8

// reload replaces the whole window with the periods around d.
func (m Model) reload(d jalali.Date) (tea.Model, tea.Cmd) {
	m.cursor = d
	m.loading = true
	return m, commands.LoadInitial(m.repo, m.builder, m.request(d))
}

// goToday moves the cursor to the current civil day.
func (m Model) goToday() (tea.Model, tea.Cmd) {
	today, err := m.clock.ToCivil(m.nowFunc())
	if err != nil {
		return m.setStatus("Today is outside the supported range")
	}
	return m.jumpTo(today)
}

// switchView changes between month, week and day, keeping the cursor day.
func (m Model) switchView(mode grid.Mode) (tea.Model, tea.Cmd) {
	if mode == m.view && m.window != nil {
		return m, nil
	}
	m.view = mode
	m.selected = 0
	m.scrollOffset = 0
	return m.reload(m.cursor)
}

// jumpTo moves the cursor to d, shifting the window when d is in a
// neighbouring period and reloading it otherwise.
func (m Model) jumpTo(d jalali.Date) (tea.Model, tea.Cmd) {
	if m.window == nil || m.loading {
		return m.reload(d)
	}
	m.selected = 0

	if inPeriod(m.window.Current(), d) {
		m.cursor = d
		m.resetScroll()
		return m, nil
	}

	if m.window.HasNext() && inPeriod(m.window.Next(), d) {
		m.cursor = d
		m.window.ShiftForward(nil)
		m.resetScroll()
		return m, commands.LoadNext(m.repo, m.builder, m.request(m.window.Current().Grid.Reference))
	}

	if m.window.HasPrevious() && inPeriod(m.window.Previous(), d) {
		m.cursor = d
		m.window.ShiftBackward(nil)
		m.resetScroll()
		return m, commands.LoadPrev(m.repo, m.builder, m.request(m.window.Current().Grid.Reference))
	}

	return m.reload(d)
}

// moveDays moves the cursor n days.
func (m Model) moveDays(n int) (tea.Model, tea.Cmd) {
	d, err := m.clock.AddDays(m.cursor, n)
	if err != nil {
		return m.rangeStatus(err)
	}
	return m.jumpTo(d)
}

// movePeriod moves the cursor to the same day n periods away.
func (m Model) movePeriod(n int) (tea.Model, tea.Cmd) {
	d, err := grid.Navigate(m.clock, m.cursor, m.view, n)
	if err != nil {
		return m.rangeStatus(err)
	}
	return m.jumpTo(d)
}

func (m Model) rangeStatus(err error) (tea.Model, tea.Cmd) {
	if errors.Is(err, jalali.ErrOutOfRange) {
		return m.setStatus("End of the supported calendar range")
	}
	return m.setStatus(err.Error())
}

// selectEvent highlights the i-th event of the cursor day, clamped.
func (m *Model) selectEvent(i int) {
	events := m.cursorEvents()
	if len(events) == 0 {
		m.selected = 0
		return
	}
	m.selected = min(max(i, 0), len(events)-1)
	if e := events[m.selected]; e != nil {
		m.ensureHourVisible(e.Start.In(m.clock.Location()).Hour())
	}
}

// resetScroll scrolls the day view to the first event, the current hour on
// today, or the morning.
func (m *Model) resetScroll() {
	if m.view != grid.ModeDay {
		return
	}
	m.scrollOffset = 0
	hour := defaultDayHour
	if events := m.cursorEvents(); len(events) > 0 {
		m.selected = min(m.selected, len(events)-1)
		hour = events[m.selected].Start.In(m.clock.Location()).Hour()
	} else if c := m.cursorCell(); c != nil && c.Day.IsToday {
		hour = m.nowFunc().In(m.clock.Location()).Hour()
	}
	m.ensureHourVisible(hour)
}

// ensureHourVisible adjusts the scroll offset so hour h is on screen.
func (m *Model) ensureHourVisible(h int) {
	rows := m.hourRows()
	switch {
	case h < m.scrollOffset:
		m.scrollOffset = h
	case h >= m.scrollOffset+rows:
		m.scrollOffset = h - rows + 1
	}
	m.scrollOffset = min(max(m.scrollOffset, 0), max(grid.HoursPerDay-rows, 0))
}

// inPeriod reports whether d is one of l's focused days.
func inPeriod(l *grid.Layout, d jalali.Date) bool {
	if l == nil {
		return false
	}
	c := l.Cell(d)
	return c != nil && c.Day.InPeriod
}
