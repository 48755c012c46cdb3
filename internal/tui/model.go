// Package tui provides the terminal user interface for taqvim.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/taqvim/internal/config"
	"github.com/javiermolinar/taqvim/internal/event"
	"github.com/javiermolinar/taqvim/internal/grid"
	"github.com/javiermolinar/taqvim/internal/jalali"
	"github.com/javiermolinar/taqvim/internal/tui/commands"
	"github.com/javiermolinar/taqvim/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModePrompt
	ModeModal
)

// ModalType identifies the type of modal.
type ModalType int

const (
	ModalNone        ModalType = iota
	ModalEventDetail           // View one event
	ModalConfirmDelete
	ModalHelp
)

// statusTimeout is how long a status message stays in the footer.
const statusTimeout = 3 * time.Second

// Model is the main TUI model.
type Model struct {
	// Dependencies
	repo    event.Repository
	config  *config.Config
	clock   jalali.Clock
	builder *grid.Builder

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Calendar settings
	gridOpts grid.Options
	numerals jalali.Numerals

	// State
	view     grid.Mode          // month, week or day
	window   *grid.PeriodWindow // previous, current and next period
	cursor   jalali.Date        // selected day
	selected int                // selected event of the cursor day
	mode     Mode
	loading  bool

	// Modal state
	modalType  ModalType
	modalEvent *event.Event

	// Components
	keys   keyMap
	help   help.Model
	prompt textinput.Model

	// Terminal dimensions
	width        int
	height       int
	scrollOffset int // first hour row shown in day view

	// Messages
	statusMsg string // Temporary status/error message

	nowFunc func() time.Time
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithNow overrides the wall clock. Used by tests.
func WithNow(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.nowFunc = now
	}
}

// WithView sets the initial view instead of the configured default.
func WithView(mode grid.Mode) ModelOption {
	return func(m *Model) {
		m.view = mode
	}
}

// New creates a new TUI model.
func New(repo event.Repository, cfg *config.Config, clock jalali.Clock, opts ...ModelOption) *Model {
	ti := textinput.New()
	ti.Placeholder = "1403/01/15, tomorrow or /help"
	ti.CharLimit = 64

	// Load theme from config
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		// Fallback to mocha on error
		t, _ = theme.Load("mocha")
	}
	styles := NewStyles(t)
	ti.PromptStyle = styles.Prompt
	ti.TextStyle = styles.PromptText

	m := &Model{
		repo:     repo,
		config:   cfg,
		clock:    clock,
		builder:  grid.NewBuilder(clock),
		theme:    t,
		styles:   styles,
		gridOpts: cfg.GridOptions(),
		numerals: cfg.Numerals(),
		view:     cfg.View(),
		mode:     ModeNormal,
		keys:     defaultKeyMap(),
		help:     help.New(),
		prompt:   ti,
		nowFunc:  time.Now,
	}
	m.help.Styles.ShortKey = styles.HelpKey
	m.help.Styles.ShortDesc = styles.Help
	m.help.Styles.FullKey = styles.HelpKey
	m.help.Styles.FullDesc = styles.Help

	for _, opt := range opts {
		opt(m)
	}

	if today, err := clock.ToCivil(m.nowFunc()); err == nil {
		m.cursor = today
	}
	m.loading = true
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		commands.LoadInitial(m.repo, m.builder, m.request(m.cursor)),
		commands.WaitForMidnight(m.nowFunc(), m.clock.Location()),
	)
}

// Run starts the TUI.
func Run(repo event.Repository, cfg *config.Config, clock jalali.Clock) error {
	model := New(repo, cfg, clock)
	p := tea.NewProgram(*model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// request describes the period around ref in the current view.
func (m Model) request(ref jalali.Date) commands.Request {
	return commands.Request{
		Reference: ref,
		Mode:      m.view,
		Now:       m.nowFunc(),
		Options:   m.gridOpts,
	}
}

// current returns the layout on screen, or nil before the first load.
func (m Model) current() *grid.Layout {
	if m.window == nil {
		return nil
	}
	return m.window.Current()
}

// cursorCell returns the cell under the cursor, or nil.
func (m Model) cursorCell() *grid.Cell {
	l := m.current()
	if l == nil {
		return nil
	}
	return l.Cell(m.cursor)
}

// cursorEvents returns every event anchored on the cursor day.
func (m Model) cursorEvents() []*event.Event {
	c := m.cursorCell()
	if c == nil {
		return nil
	}
	return c.All()
}

// selectedEvent returns the highlighted event of the cursor day, or nil.
func (m Model) selectedEvent() *event.Event {
	events := m.cursorEvents()
	if m.selected < 0 || m.selected >= len(events) {
		return nil
	}
	return events[m.selected]
}
