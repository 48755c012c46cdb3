// Package event defines the calendar event domain types for taqvim.
package event

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Validation errors.
var (
	ErrEmptyTitle       = errors.New("title cannot be empty")
	ErrEmptyDescription = errors.New("description cannot be empty")
	ErrEndBeforeStart   = errors.New("end must not be before start")
	ErrInvalidColor     = errors.New("unknown color")
)

// Domain errors.
var (
	ErrEventNotFound = errors.New("event not found")
	ErrDuplicateID   = errors.New("event id already exists")
)

// Color is a tag from the fixed event palette.
type Color string

const (
	ColorBlue    Color = "blue"
	ColorIndigo  Color = "indigo"
	ColorPink    Color = "pink"
	ColorRed     Color = "red"
	ColorOrange  Color = "orange"
	ColorAmber   Color = "amber"
	ColorEmerald Color = "emerald"
)

// DefaultColor is used when no color is chosen.
const DefaultColor = ColorBlue

var palette = []Color{
	ColorBlue, ColorIndigo, ColorPink, ColorRed, ColorOrange, ColorAmber, ColorEmerald,
}

// Palette returns every color tag in display order.
func Palette() []Color {
	out := make([]Color, len(palette))
	copy(out, palette)
	return out
}

// Valid returns true if the color belongs to the palette.
func (c Color) Valid() bool {
	for _, p := range palette {
		if c == p {
			return true
		}
	}
	return false
}

// ParseColor parses a palette name. An empty string yields DefaultColor.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultColor, nil
	}
	c := Color(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return c, nil
}

// Event is a user-scheduled item occupying [Start, End].
type Event struct {
	ID          string
	Title       string
	Description string
	Start       time.Time
	End         time.Time
	Color       Color
	CreatedAt   time.Time
}

// New creates an Event with validation and a fresh ID.
// title and description are required, end must not precede start and color
// must be a palette name (empty means DefaultColor).
func New(title, description string, start, end time.Time, color string) (*Event, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrEmptyDescription
	}
	if end.Before(start) {
		return nil, ErrEndBeforeStart
	}
	c, err := ParseColor(color)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Start:       start,
		End:         end,
		Color:       c,
		CreatedAt:   time.Now(),
	}, nil
}

// Validate checks the fields New would reject. It is used before updates.
func (e *Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(e.Description) == "" {
		return ErrEmptyDescription
	}
	if !e.ValidInterval() {
		return ErrEndBeforeStart
	}
	if !e.Color.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidColor, e.Color)
	}
	return nil
}

// ValidInterval returns true if End is not before Start.
func (e *Event) ValidInterval() bool {
	return !e.End.Before(e.Start)
}

// Duration returns the length of the event.
func (e *Event) Duration() time.Duration {
	if !e.ValidInterval() {
		return 0
	}
	return e.End.Sub(e.Start)
}

// Intersects reports whether the event overlaps the half-open span
// [start, end). An event that ends exactly at start still counts, so events
// touching the span boundary stay visible.
func (e *Event) Intersects(start, end time.Time) bool {
	return e.Start.Before(end) && !e.End.Before(start)
}

// Compare orders events by start time, then by ID.
func Compare(a, b *Event) int {
	if c := a.Start.Compare(b.Start); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}
