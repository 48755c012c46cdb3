package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/javiermolinar/taqvim/internal/event"
)

// Color definitions for consistent styling across the UI.
var (
	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Today's date: bold inverse so it stands out in the grid
	colorToday = color.New(color.Bold, color.ReverseVideo)

	// Stats: green for positive metrics
	colorStats = color.New(color.FgGreen)

	// Muted: leading/trailing days and secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)

	// Warnings: rejected events and skipped imports
	colorWarn = color.New(color.FgYellow)
)

// eventColors maps palette names onto the closest terminal colors.
var eventColors = map[event.Color]*color.Color{
	event.ColorBlue:    color.New(color.FgBlue),
	event.ColorIndigo:  color.New(color.FgHiBlue),
	event.ColorPink:    color.New(color.FgHiMagenta),
	event.ColorRed:     color.New(color.FgRed),
	event.ColorOrange:  color.New(color.FgHiRed),
	event.ColorAmber:   color.New(color.FgYellow),
	event.ColorEmerald: color.New(color.FgGreen),
}

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

func formatToday(s string) string {
	return colorToday.Sprint(s)
}

func formatStats(s string) string {
	return colorStats.Sprint(s)
}

func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}

func formatWarn(s string) string {
	return colorWarn.Sprint(s)
}

// formatEvent colors s with the event's palette color.
func formatEvent(c event.Color, s string) string {
	if fc, ok := eventColors[c]; ok {
		return fc.Sprint(s)
	}
	return s
}
