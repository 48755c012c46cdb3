package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/taqvim/internal/debuglog"
	"github.com/javiermolinar/taqvim/internal/grid"
	"github.com/javiermolinar/taqvim/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.prompt.Width = max(msg.Width-4, 10)
		m.resetScroll()
		return m, nil

	case commands.InitialLoadMsg:
		curr := msg.Window.Current()
		if curr.Grid.Mode != m.view || curr.Cell(m.cursor) == nil {
			// A newer reload is on its way.
			return m, nil
		}
		m.window = msg.Window
		m.loading = false
		m.selectEvent(m.selected)
		m.resetScroll()
		debuglog.LogBuild("tui", curr)
		return m, nil

	case commands.PeriodShiftedMsg:
		if m.window == nil || !m.expectsEdge(msg) {
			return m, nil
		}
		if msg.Forward {
			m.window.SetNext(msg.Layout)
		} else {
			m.window.SetPrevious(msg.Layout)
		}
		debuglog.LogBuild("tui", msg.Layout)
		return m, nil

	case commands.EventDeletedMsg:
		m.selected = max(m.selected-1, 0)
		m.statusMsg = fmt.Sprintf("Deleted %q", msg.Event.Title)
		next, reload := m.reload(m.cursor)
		return next, tea.Batch(reload, commands.ClearStatusAfter(statusTimeout))

	case commands.MidnightMsg:
		// Follow today when the cursor was on it.
		if c := m.cursorCell(); c != nil && c.Day.IsToday {
			if today, err := m.clock.ToCivil(msg.Now); err == nil {
				m.cursor = today
			}
		}
		next, reload := m.reload(m.cursor)
		return next, tea.Batch(reload, commands.WaitForMidnight(msg.Now, m.clock.Location()))

	case commands.ClearStatusMsg:
		m.statusMsg = ""
		return m, nil

	case commands.ErrMsg:
		m.loading = false
		debuglog.LogError("tui", msg.Err)
		return m.setStatus(fmt.Sprintf("Error: %v", msg.Err))
	}

	if m.mode == ModePrompt {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

// expectsEdge reports whether msg carries the neighbour of the current
// period in its direction. Loads overtaken by later navigation are dropped.
func (m Model) expectsEdge(msg commands.PeriodShiftedMsg) bool {
	if msg.Layout == nil {
		return true
	}
	curr := m.window.Current()
	if curr == nil || msg.Layout.Grid.Mode != curr.Grid.Mode {
		return false
	}
	delta := -1
	if msg.Forward {
		delta = 1
	}
	want, err := grid.Navigate(m.clock, curr.Grid.Reference, m.view, delta)
	return err == nil && want == msg.Layout.Grid.Reference
}
