package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/taqvim/internal/dateutil"
	"github.com/javiermolinar/taqvim/internal/debuglog"
	"github.com/javiermolinar/taqvim/internal/event"
	"github.com/javiermolinar/taqvim/internal/grid"
	"github.com/javiermolinar/taqvim/internal/tui/commands"
	"github.com/javiermolinar/taqvim/internal/tui/input"
	"github.com/javiermolinar/taqvim/internal/tui/theme"
)

// keyMap holds the normal-mode bindings.
type keyMap struct {
	Left       key.Binding
	Right      key.Binding
	Up         key.Binding
	Down       key.Binding
	NextPeriod key.Binding
	PrevPeriod key.Binding
	Today      key.Binding
	Month      key.Binding
	Week       key.Binding
	Day        key.Binding
	Open       key.Binding
	Back       key.Binding
	Goto       key.Binding
	Copy       key.Binding
	Delete     key.Binding
	Reload     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left:       key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/l", "day")),
		Right:      key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l", "next day")),
		Up:         key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("j/k", "week")),
		Down:       key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "next week")),
		NextPeriod: key.NewBinding(key.WithKeys("n", "pgdown"), key.WithHelp("n/p", "period")),
		PrevPeriod: key.NewBinding(key.WithKeys("p", "pgup"), key.WithHelp("p", "previous period")),
		Today:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Month:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "month")),
		Week:       key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "week")),
		Day:        key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "day")),
		Open:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Goto:       key.NewBinding(key.WithKeys("g", "/"), key.WithHelp("g", "go to")),
		Copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy day")),
		Delete:     key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete")),
		Reload:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Up, k.NextPeriod, k.Today, k.Open, k.Goto, k.Copy, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.NextPeriod, k.PrevPeriod, k.Today, k.Goto},
		{k.Month, k.Week, k.Day, k.Open, k.Back},
		{k.Copy, k.Delete, k.Reload, k.Help, k.Quit},
	}
}

var promptCommands = []input.PromptCommand{
	{Name: "/goto", Args: "<date>", Description: "Jump to a date"},
	{Name: "/today", Description: "Jump to today"},
	{Name: "/month", Description: "Show the month"},
	{Name: "/week", Description: "Show the week"},
	{Name: "/day", Description: "Show the day"},
	{Name: "/theme", Args: "<name>", Description: "Switch theme"},
	{Name: "/help", Description: "Show key bindings"},
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	debuglog.LogKey(msg.String())

	switch m.mode {
	case ModePrompt:
		return m.handlePromptKey(msg)
	case ModeModal:
		return m.handleModalKey(msg)
	default:
		return m.handleNormalKey(msg)
	}
}

func (m Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.openModal(ModalHelp, nil)
		return m, nil
	case key.Matches(msg, m.keys.Goto):
		m.mode = ModePrompt
		m.prompt.SetValue("")
		return m, m.prompt.Focus()
	case key.Matches(msg, m.keys.Reload):
		return m.reload(m.cursor)
	case key.Matches(msg, m.keys.Today):
		return m.goToday()
	case key.Matches(msg, m.keys.Month):
		return m.switchView(grid.ModeMonth)
	case key.Matches(msg, m.keys.Week):
		return m.switchView(grid.ModeWeek)
	case key.Matches(msg, m.keys.Day):
		return m.switchView(grid.ModeDay)
	case key.Matches(msg, m.keys.Copy):
		return m.copyAgenda()
	}

	if m.window == nil {
		// Nothing to navigate until the first load arrives.
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Left):
		return m.moveDays(-1)
	case key.Matches(msg, m.keys.Right):
		return m.moveDays(1)
	case key.Matches(msg, m.keys.Up):
		if m.view == grid.ModeDay {
			m.selectEvent(m.selected - 1)
			return m, nil
		}
		return m.moveDays(-7)
	case key.Matches(msg, m.keys.Down):
		if m.view == grid.ModeDay {
			m.selectEvent(m.selected + 1)
			return m, nil
		}
		return m.moveDays(7)
	case key.Matches(msg, m.keys.NextPeriod):
		return m.movePeriod(1)
	case key.Matches(msg, m.keys.PrevPeriod):
		return m.movePeriod(-1)
	case key.Matches(msg, m.keys.Open):
		if m.view != grid.ModeDay {
			return m.switchView(grid.ModeDay)
		}
		if e := m.selectedEvent(); e != nil {
			m.openModal(ModalEventDetail, e)
		}
		return m, nil
	case key.Matches(msg, m.keys.Back):
		if m.view != grid.ModeMonth {
			return m.switchView(grid.ModeMonth)
		}
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		if m.view == grid.ModeDay {
			if e := m.selectedEvent(); e != nil {
				m.openModal(ModalConfirmDelete, e)
			}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.closePrompt()
		return m, nil
	case "tab":
		if value, ok := input.PromptAutocomplete(m.prompt.Value(), promptCommands); ok {
			m.prompt.SetValue(value)
			m.prompt.CursorEnd()
		}
		return m, nil
	case "enter":
		line := m.prompt.Value()
		m.closePrompt()
		return m.runPrompt(line)
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *Model) closePrompt() {
	m.mode = ModeNormal
	m.prompt.Blur()
	m.prompt.SetValue("")
}

// runPrompt executes a submitted prompt line. Bare input is read as a date.
func (m Model) runPrompt(line string) (tea.Model, tea.Cmd) {
	name, arg := input.Parse(line, "/goto")
	switch name {
	case "/goto":
		if arg == "" {
			return m, nil
		}
		d, err := dateutil.ParseRelativeDate(m.clock, arg, m.nowFunc())
		if err != nil {
			return m.setStatus(fmt.Sprintf("Invalid date: %v", err))
		}
		return m.jumpTo(d)
	case "/today":
		return m.goToday()
	case "/month":
		return m.switchView(grid.ModeMonth)
	case "/week":
		return m.switchView(grid.ModeWeek)
	case "/day":
		return m.switchView(grid.ModeDay)
	case "/theme":
		if !theme.IsAvailable(arg) {
			return m.setStatus(fmt.Sprintf("Unknown theme %q (available: %s)", arg, strings.Join(theme.Available(), ", ")))
		}
		return m.applyTheme(arg)
	case "/help":
		m.openModal(ModalHelp, nil)
		return m, nil
	default:
		return m.setStatus(fmt.Sprintf("Unknown command %s", name))
	}
}

func (m Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modalType {
	case ModalConfirmDelete:
		switch msg.String() {
		case "y", "enter":
			e := m.modalEvent
			m.closeModal()
			return m, commands.DeleteEvent(m.repo, e)
		case "n", "esc", "q":
			m.closeModal()
		}
		return m, nil

	case ModalEventDetail:
		switch msg.String() {
		case "x", "delete":
			m.modalType = ModalConfirmDelete
		case "esc", "enter", "q":
			m.closeModal()
		}
		return m, nil

	default:
		switch msg.String() {
		case "esc", "enter", "q", "?":
			m.closeModal()
		}
		return m, nil
	}
}

func (m *Model) openModal(t ModalType, e *event.Event) {
	m.mode = ModeModal
	m.modalType = t
	m.modalEvent = e
}

func (m *Model) closeModal() {
	m.mode = ModeNormal
	m.modalType = ModalNone
	m.modalEvent = nil
}

// copyAgenda puts the cursor day's events on the system clipboard.
func (m Model) copyAgenda() (tea.Model, tea.Cmd) {
	c := m.cursorCell()
	if c == nil || c.Total() == 0 {
		return m.setStatus("No events to copy")
	}
	if err := clipboard.WriteAll(agendaText(*c, m.clock, m.numerals)); err != nil {
		return m.setStatus(fmt.Sprintf("Copy failed: %v", err))
	}
	return m.setStatus(fmt.Sprintf("Copied %d events", c.Total()))
}

// setStatus shows msg in the footer until the status timeout.
func (m Model) setStatus(msg string) (tea.Model, tea.Cmd) {
	m.statusMsg = msg
	return m, commands.ClearStatusAfter(statusTimeout)
}

func (m Model) applyTheme(name string) (tea.Model, tea.Cmd) {
	t, err := theme.Load(name)
	if err != nil {
		return m.setStatus(fmt.Sprintf("Loading theme: %v", err))
	}
	m.theme = t
	m.styles = NewStyles(t)
	m.prompt.PromptStyle = m.styles.Prompt
	m.prompt.TextStyle = m.styles.PromptText
	m.help.Styles.ShortKey = m.styles.HelpKey
	m.help.Styles.ShortDesc = m.styles.Help
	m.help.Styles.FullKey = m.styles.HelpKey
	m.help.Styles.FullDesc = m.styles.Help
	return m.setStatus("Theme " + t.Name)
}
