// Package ics converts iCalendar files into calendar events.
package ics

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/javiermolinar/taqvim/internal/debuglog"
	"github.com/javiermolinar/taqvim/internal/event"
)

// Import errors.
var (
	ErrEmptyCalendar = errors.New("calendar has no events")
	ErrMissingStart  = errors.New("missing DTSTART")
)

// UntitledTitle replaces an empty SUMMARY.
const UntitledTitle = "بدون عنوان"

const propertyColor = ical.ComponentProperty("COLOR")

// Skip records a VEVENT that could not be converted.
type Skip struct {
	UID string
	Err error
}

// Result holds the converted events and the entries that were skipped.
type Result struct {
	Events  []*event.Event
	Skipped []Skip
}

// Options configures Parse.
type Options struct {
	// Location is the zone all-day and floating times are read in.
	// Defaults to time.Local.
	Location *time.Location
	// Now stamps CreatedAt. Defaults to time.Now().
	Now time.Time
}

// Parse reads an iCalendar stream. Recurring entries contribute only their
// first occurrence. Entries that cannot be converted are skipped and
// reported in Result.Skipped; only an unreadable stream fails the call.
func Parse(r io.Reader, opts Options) (*Result, error) {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("parsing calendar: %w", err)
	}

	vevents := cal.Events()
	if len(vevents) == 0 {
		return nil, ErrEmptyCalendar
	}

	res := &Result{}
	for _, ve := range vevents {
		e, err := convert(ve, opts)
		if err != nil {
			uid := propValue(ve, ical.ComponentPropertyUniqueId)
			debuglog.LogImportSkip(uid, err)
			res.Skipped = append(res.Skipped, Skip{UID: uid, Err: err})
			continue
		}
		res.Events = append(res.Events, e)
	}
	return res, nil
}

func convert(ve *ical.VEvent, opts Options) (*event.Event, error) {
	start, end, err := times(ve, opts.Location)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, event.ErrEndBeforeStart
	}

	id := propValue(ve, ical.ComponentPropertyUniqueId)
	if id == "" {
		id = uuid.NewString()
	}
	title := propValue(ve, ical.ComponentPropertySummary)
	if title == "" {
		title = UntitledTitle
	}
	description := propValue(ve, ical.ComponentPropertyDescription)
	if description == "" {
		description = title
	}

	return &event.Event{
		ID:          id,
		Title:       title,
		Description: description,
		Start:       start,
		End:         end,
		Color:       mapColor(propValue(ve, propertyColor)),
		CreatedAt:   opts.Now,
	}, nil
}

// times returns the first occurrence. All-day entries run from local
// midnight of DTSTART to local midnight of DTEND, or one day when DTEND is
// absent. A timed entry without DTEND has zero length.
func times(ve *ical.VEvent, loc *time.Location) (time.Time, time.Time, error) {
	startProp := ve.GetProperty(ical.ComponentPropertyDtStart)
	if startProp == nil || strings.TrimSpace(startProp.Value) == "" {
		return time.Time{}, time.Time{}, ErrMissingStart
	}

	if isAllDay(startProp) {
		start, err := time.ParseInLocation("20060102", strings.TrimSpace(startProp.Value), loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parsing DTSTART: %w", err)
		}
		end := start.AddDate(0, 0, 1)
		if endProp := ve.GetProperty(ical.ComponentPropertyDtEnd); endProp != nil {
			end, err = time.ParseInLocation("20060102", strings.TrimSpace(endProp.Value), loc)
			if err != nil {
				return time.Time{}, time.Time{}, fmt.Errorf("parsing DTEND: %w", err)
			}
		}
		return start, end, nil
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing DTSTART: %w", err)
	}
	end := start
	if ve.GetProperty(ical.ComponentPropertyDtEnd) != nil {
		end, err = ve.GetEndAt()
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parsing DTEND: %w", err)
		}
	}
	return start.In(loc), end.In(loc), nil
}

// isAllDay reports whether DTSTART carries VALUE=DATE or a bare date.
func isAllDay(p *ical.IANAProperty) bool {
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

// mapColor maps an RFC 7986 color name onto the palette. Anything else,
// including hex values, becomes the default color.
func mapColor(s string) event.Color {
	c := event.Color(strings.ToLower(strings.TrimSpace(s)))
	if c.Valid() {
		return c
	}
	switch c {
	case "navy", "royalblue", "dodgerblue", "steelblue":
		return event.ColorBlue
	case "purple", "slateblue", "blueviolet":
		return event.ColorIndigo
	case "hotpink", "deeppink", "magenta", "fuchsia":
		return event.ColorPink
	case "crimson", "darkred", "firebrick":
		return event.ColorRed
	case "darkorange", "coral", "tomato":
		return event.ColorOrange
	case "gold", "yellow", "goldenrod":
		return event.ColorAmber
	case "green", "seagreen", "mediumseagreen", "teal":
		return event.ColorEmerald
	}
	return event.DefaultColor
}

func propValue(ve *ical.VEvent, p ical.ComponentProperty) string {
	if prop := ve.GetProperty(p); prop != nil {
		return strings.TrimSpace(prop.Value)
	}
	return ""
}
