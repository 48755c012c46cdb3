// Package theme provides color themes for the TUI.
package theme

import (
	"embed"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/taqvim/internal/event"
)

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// Theme holds all colors for a TUI theme.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`           // Base background
	BgHighlight string `toml:"bg_highlight"` // Day cells, subtle highlight
	BgSelection string `toml:"bg_selection"` // Cursor, selection
	Fg          string `toml:"fg"`           // Primary foreground
	FgMuted     string `toml:"fg_muted"`     // Days outside the period, hints
	Accent      string `toml:"accent"`       // Title, primary accent, borders
	Today       string `toml:"today"`        // Today's day number
	Warning     string `toml:"warning"`      // Overflow labels, confirmations

	// Modal palette (can override base theme values)
	ModalBorder string `toml:"modal_border"`
	TextMuted   string `toml:"text_muted"`

	Events EventColors `toml:"events"`
}

// EventColors maps each palette tag to a hex color.
type EventColors struct {
	Blue    string `toml:"blue"`
	Indigo  string `toml:"indigo"`
	Pink    string `toml:"pink"`
	Red     string `toml:"red"`
	Orange  string `toml:"orange"`
	Amber   string `toml:"amber"`
	Emerald string `toml:"emerald"`
}

// Hex returns the color for c, falling back to the accent for unknown tags.
func (t *Theme) Hex(c event.Color) string {
	var hex string
	switch c {
	case event.ColorBlue:
		hex = t.Events.Blue
	case event.ColorIndigo:
		hex = t.Events.Indigo
	case event.ColorPink:
		hex = t.Events.Pink
	case event.ColorRed:
		hex = t.Events.Red
	case event.ColorOrange:
		hex = t.Events.Orange
	case event.ColorAmber:
		hex = t.Events.Amber
	case event.ColorEmerald:
		hex = t.Events.Emerald
	}
	return coalesce(hex, t.Accent)
}

// Color returns a lipgloss.Color for the given hex string.
func Color(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}

// Load loads a theme by name from embedded files.
// Falls back to mocha if the theme is not found.
func Load(name string) (*Theme, error) {
	if name == "" {
		name = "mocha"
	}
	name = strings.ToLower(name)

	path := "embedded/" + name + ".toml"
	data, err := embeddedThemes.ReadFile(path)
	if err != nil {
		// Fallback to mocha
		if name != "mocha" {
			return Load("mocha")
		}
		return nil, fmt.Errorf("loading theme %q: %w", name, err)
	}

	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	t.applyDefaults()

	return &t, nil
}

func (t *Theme) applyDefaults() {
	if t.ModalBorder == "" {
		t.ModalBorder = t.Accent
	}
	if t.TextMuted == "" {
		t.TextMuted = t.FgMuted
	}
	if t.Today == "" {
		t.Today = t.Accent
	}
	if t.Warning == "" {
		t.Warning = t.Accent
	}
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Available returns a list of available theme names.
func Available() []string {
	return []string{"mocha", "macchiato", "frappe", "latte", "light"}
}

// IsAvailable reports whether a theme name is available.
func IsAvailable(name string) bool {
	name = strings.ToLower(name)
	for _, themeName := range Available() {
		if themeName == name {
			return true
		}
	}
	return false
}
