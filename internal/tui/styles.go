package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/taqvim/internal/event"
	"github.com/javiermolinar/taqvim/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	// Title and view tabs
	Title     lipgloss.Style
	Tab       lipgloss.Style
	TabActive lipgloss.Style

	// Grid
	WeekdayHeader  lipgloss.Style
	DayNumber      lipgloss.Style
	DayNumberMuted lipgloss.Style // days outside the period
	DayNumberToday lipgloss.Style
	Cell           lipgloss.Style
	CellCursor     lipgloss.Style
	More           lipgloss.Style
	Empty          lipgloss.Style

	// Day view
	HourLabel    lipgloss.Style
	HourLabelNow lipgloss.Style
	HourRule     lipgloss.Style
	Continuation lipgloss.Style

	// Footer
	Stats       lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
	Help        lipgloss.Style
	HelpKey     lipgloss.Style
	Prompt      lipgloss.Style
	PromptText  lipgloss.Style
	PromptHint  lipgloss.Style

	// Modal
	Modal      lipgloss.Style
	ModalTitle lipgloss.Style
	ModalLabel lipgloss.Style
	ModalText  lipgloss.Style
	ModalHint  lipgloss.Style
	ModalWarn  lipgloss.Style

	events      map[event.Color]lipgloss.Style
	eventsMuted map[event.Color]lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)
	s := &Styles{palette: p}

	s.Title = lipgloss.NewStyle().Bold(true).Foreground(p.Accent)
	s.Tab = lipgloss.NewStyle().Foreground(p.FgMuted).Padding(0, 1)
	s.TabActive = lipgloss.NewStyle().Bold(true).Foreground(p.TextOnAccent).Background(p.Accent).Padding(0, 1)

	s.WeekdayHeader = lipgloss.NewStyle().Bold(true).Foreground(p.Accent)
	s.DayNumber = lipgloss.NewStyle().Bold(true).Foreground(p.Fg)
	s.DayNumberMuted = lipgloss.NewStyle().Foreground(p.FgMuted)
	s.DayNumberToday = lipgloss.NewStyle().Bold(true).Foreground(p.TextOnToday).Background(p.Today)
	s.Cell = lipgloss.NewStyle().Background(p.BgHighlight)
	s.CellCursor = lipgloss.NewStyle().Background(p.BgSelection)
	s.More = lipgloss.NewStyle().Italic(true).Foreground(p.Warning)
	s.Empty = lipgloss.NewStyle().Foreground(p.FgMuted)

	s.HourLabel = lipgloss.NewStyle().Foreground(p.FgMuted)
	s.HourLabelNow = lipgloss.NewStyle().Bold(true).Foreground(p.Today)
	s.HourRule = lipgloss.NewStyle().Foreground(p.BgSelection)
	s.Continuation = lipgloss.NewStyle().Foreground(p.FgMuted)

	s.Stats = lipgloss.NewStyle().Foreground(p.FgMuted)
	s.Status = lipgloss.NewStyle().Foreground(p.Accent)
	s.StatusError = lipgloss.NewStyle().Bold(true).Foreground(p.Warning)
	s.Help = lipgloss.NewStyle().Foreground(p.FgMuted)
	s.HelpKey = lipgloss.NewStyle().Foreground(p.Fg)
	s.Prompt = lipgloss.NewStyle().Bold(true).Foreground(p.Accent)
	s.PromptText = lipgloss.NewStyle().Foreground(p.Fg)
	s.PromptHint = lipgloss.NewStyle().Foreground(p.FgMuted)

	s.Modal = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Modal.Border).
		Background(p.Modal.Bg).
		Foreground(p.Modal.Text).
		Padding(1, 2)
	s.ModalTitle = lipgloss.NewStyle().Bold(true).Foreground(p.Accent)
	s.ModalLabel = lipgloss.NewStyle().Foreground(p.Modal.Muted).Width(10)
	s.ModalText = lipgloss.NewStyle().Foreground(p.Modal.Text)
	s.ModalHint = lipgloss.NewStyle().Foreground(p.Modal.Muted)
	s.ModalWarn = lipgloss.NewStyle().Bold(true).Foreground(p.Warning)

	s.events = make(map[event.Color]lipgloss.Style, len(p.Events))
	s.eventsMuted = make(map[event.Color]lipgloss.Style, len(p.Events))
	for c, shades := range p.Events {
		s.events[c] = lipgloss.NewStyle().Foreground(shades.Text).Background(shades.Bg)
		s.eventsMuted[c] = lipgloss.NewStyle().Foreground(p.FgMuted).Background(shades.MutedBg)
	}

	return s
}

// Event returns the chip style for c. Days outside the period get the muted
// shade.
func (s *Styles) Event(c event.Color, inPeriod bool) lipgloss.Style {
	if !c.Valid() {
		c = event.DefaultColor
	}
	if inPeriod {
		return s.events[c]
	}
	return s.eventsMuted[c]
}

// EventSelected returns the chip style for the highlighted event.
func (s *Styles) EventSelected(c event.Color) lipgloss.Style {
	shades := s.palette.Event(c)
	return lipgloss.NewStyle().Bold(true).Foreground(shades.Bg).Background(shades.Fg)
}

// Dot returns a colored bullet for c.
func (s *Styles) Dot(c event.Color) string {
	return lipgloss.NewStyle().Foreground(s.palette.Event(c).Fg).Render("●")
}
