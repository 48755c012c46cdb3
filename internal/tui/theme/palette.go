package theme

import (
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/taqvim/internal/event"
)

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Today       lipgloss.Color
	Warning     lipgloss.Color

	TextOnAccent lipgloss.Color
	TextOnToday  lipgloss.Color

	Events map[event.Color]EventShades

	Modal ModalColors
}

// EventShades are the colors one palette tag renders with.
type EventShades struct {
	Fg      lipgloss.Color // dot and border
	Bg      lipgloss.Color // chip background
	MutedBg lipgloss.Color // chip background on days outside the period
	Text    lipgloss.Color // text on Bg
}

// ModalColors holds modal-specific colors derived from a Theme.
type ModalColors struct {
	Bg     lipgloss.Color
	Border lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load("mocha")
	}

	isLight := isLightTheme(t.Bg)
	events := make(map[event.Color]EventShades, len(event.Palette()))
	for _, c := range event.Palette() {
		hex := t.Hex(c)
		bg := eventBg(hex, t.Bg, isLight)
		events[c] = EventShades{
			Fg:      lipgloss.Color(hex),
			Bg:      lipgloss.Color(bg),
			MutedBg: lipgloss.Color(eventMutedBg(hex, t.Bg, isLight)),
			Text:    lipgloss.Color(chooseTextColor(bg, t.Fg, t.Bg)),
		}
	}

	return &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(t.BgHighlight),
		BgSelection: lipgloss.Color(t.BgSelection),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Today:       lipgloss.Color(t.Today),
		Warning:     lipgloss.Color(t.Warning),

		TextOnAccent: lipgloss.Color(chooseTextColor(t.Accent, t.Bg, t.Fg)),
		TextOnToday:  lipgloss.Color(chooseTextColor(t.Today, t.Bg, t.Fg)),

		Events: events,

		Modal: ModalColors{
			Bg:     lipgloss.Color(coalesce(t.BgHighlight, t.Bg)),
			Border: lipgloss.Color(coalesce(t.ModalBorder, t.Accent)),
			Text:   lipgloss.Color(t.Fg),
			Muted:  lipgloss.Color(coalesce(t.TextMuted, t.FgMuted)),
		},
	}
}

// Event returns the shades for c, using the blue shades for unknown tags.
func (p *Palette) Event(c event.Color) EventShades {
	if s, ok := p.Events[c]; ok {
		return s
	}
	return p.Events[event.DefaultColor]
}

func isLightTheme(bg string) bool {
	return relativeLuminance(bg) > 0.55
}

func eventBg(accent, bg string, isLight bool) string {
	if isLight {
		return blendColors(accent, bg, 0.75)
	}
	return scaleColor(accent, 0.50, 40)
}

func eventMutedBg(accent, bg string, isLight bool) string {
	if isLight {
		return blendColors(accent, bg, 0.88)
	}
	return scaleColor(accent, 0.30, 30)
}

// scaleColor darkens a hex color by factor, keeping each channel at or
// above floor so chips stay visible on dark themes.
func scaleColor(hex string, factor float64, floor int) string {
	r, g, b, ok := parseRGB(hex)
	if !ok {
		return hex
	}
	scale := func(c int) int {
		return max(int(float64(c)*factor), floor)
	}
	return formatHexColor(scale(r), scale(g), scale(b))
}

// parseRGB splits a "#rrggbb" string into channels.
func parseRGB(hex string) (r, g, b int, ok bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}

// formatHexColor formats RGB values as a hex color string.
func formatHexColor(r, g, b int) string {
	const hex = "0123456789abcdef"
	return string([]byte{
		'#',
		hex[r>>4], hex[r&0xf],
		hex[g>>4], hex[g&0xf],
		hex[b>>4], hex[b&0xf],
	})
}

func chooseTextColor(bg, lightText, darkText string) string {
	if contrastRatio(bg, lightText) >= contrastRatio(bg, darkText) {
		return lightText
	}
	return darkText
}

func contrastRatio(a, b string) float64 {
	l1 := relativeLuminance(a)
	l2 := relativeLuminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

func relativeLuminance(hex string) float64 {
	r, g, b, ok := parseRGB(hex)
	if !ok {
		return 0
	}
	return 0.2126*srgbToLinear(r) + 0.7152*srgbToLinear(g) + 0.0722*srgbToLinear(b)
}

func srgbToLinear(c int) float64 {
	v := float64(c) / 255.0
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func blendColors(a, b string, ratio float64) string {
	ar, ag, ab, okA := parseRGB(a)
	br, bg, bb, okB := parseRGB(b)
	if !okA || !okB {
		return a
	}
	ratio = min(max(ratio, 0), 1)
	mix := func(x, y int) int {
		return int(float64(x)*(1-ratio) + float64(y)*ratio)
	}
	return formatHexColor(mix(ar, br), mix(ag, bg), mix(ab, bb))
}
