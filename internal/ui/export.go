package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/javiermolinar/taqvim/internal/event"
	"github.com/javiermolinar/taqvim/internal/grid"
	"github.com/javiermolinar/taqvim/internal/summary"
)

// Output formats accepted by --format.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

type exportEvent struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Start       string `json:"start" yaml:"start"`
	End         string `json:"end" yaml:"end"`
	Color       string `json:"color" yaml:"color"`
}

type exportHour struct {
	Hour   int      `json:"hour" yaml:"hour"`
	Events []string `json:"events" yaml:"events"`
}

type exportDay struct {
	Date     string        `json:"date" yaml:"date"`
	Weekday  string        `json:"weekday" yaml:"weekday"`
	InPeriod bool          `json:"in_period" yaml:"in_period"`
	Today    bool          `json:"today,omitempty" yaml:"today,omitempty"`
	Events   []exportEvent `json:"events" yaml:"events"`
	Hidden   int           `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	Hours    []exportHour  `json:"hours,omitempty" yaml:"hours,omitempty"`
}

type exportRejection struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Error string `json:"error" yaml:"error"`
}

type exportStats struct {
	Total    int            `json:"total" yaml:"total"`
	Visible  int            `json:"visible" yaml:"visible"`
	Hidden   int            `json:"hidden" yaml:"hidden"`
	Minutes  int            `json:"minutes" yaml:"minutes"`
	ByColor  map[string]int `json:"minutes_by_color,omitempty" yaml:"minutes_by_color,omitempty"`
	Busiest  string         `json:"busiest_day,omitempty" yaml:"busiest_day,omitempty"`
	Rejected int            `json:"rejected" yaml:"rejected"`
}

type exportLayout struct {
	Mode      string            `json:"mode" yaml:"mode"`
	Reference string            `json:"reference" yaml:"reference"`
	WeekStart string            `json:"week_start" yaml:"week_start"`
	Capacity  int               `json:"capacity" yaml:"capacity"`
	SpanStart string            `json:"span_start" yaml:"span_start"`
	SpanEnd   string            `json:"span_end" yaml:"span_end"`
	Days      []exportDay       `json:"days" yaml:"days"`
	Rejected  []exportRejection `json:"rejected,omitempty" yaml:"rejected,omitempty"`
	Stats     exportStats       `json:"stats" yaml:"stats"`
}

func toExportEvent(e *event.Event) exportEvent {
	return exportEvent{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Start:       e.Start.Format(time.RFC3339),
		End:         e.End.Format(time.RFC3339),
		Color:       string(e.Color),
	}
}

func toExportLayout(l *grid.Layout) exportLayout {
	s := summary.Summarize(l)
	out := exportLayout{
		Mode:      string(l.Grid.Mode),
		Reference: l.Grid.Reference.String(),
		WeekStart: l.Grid.WeekStart.String(),
		Capacity:  l.Options.Capacity,
		SpanStart: l.Grid.Span.Start.Format(time.RFC3339),
		SpanEnd:   l.Grid.Span.End.Format(time.RFC3339),
		Days:      make([]exportDay, 0, len(l.Cells)),
		Stats: exportStats{
			Total:    s.TotalEvents,
			Visible:  s.VisibleEvents,
			Hidden:   s.HiddenEvents,
			Minutes:  s.TotalMinutes,
			Rejected: s.RejectedEvents,
		},
	}
	if s.HasBusiestDay() {
		out.Stats.Busiest = s.BusiestDay.String()
	}
	if len(s.MinutesByColor) > 0 {
		out.Stats.ByColor = make(map[string]int, len(s.MinutesByColor))
		for c, m := range s.MinutesByColor {
			out.Stats.ByColor[string(c)] = m
		}
	}

	for _, c := range l.Cells {
		d := exportDay{
			Date:     c.Day.Date.String(),
			Weekday:  c.Day.Weekday.String(),
			InPeriod: c.Day.InPeriod,
			Today:    c.Day.IsToday,
			Events:   make([]exportEvent, 0, len(c.Events)),
			Hidden:   c.HiddenCount,
		}
		for _, e := range c.Events {
			d.Events = append(d.Events, toExportEvent(e))
		}
		for h, events := range c.Hours {
			if len(events) == 0 {
				continue
			}
			hour := exportHour{Hour: h}
			for _, e := range events {
				hour.Events = append(hour.Events, e.ID)
			}
			d.Hours = append(d.Hours, hour)
		}
		out.Days = append(out.Days, d)
	}

	for _, r := range l.Rejected {
		out.Rejected = append(out.Rejected, exportRejection{
			ID:    r.Event.ID,
			Title: r.Event.Title,
			Error: r.Err.Error(),
		})
	}
	return out
}

// writeStructured encodes v as JSON or YAML.
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
	}
}

func validFormat(format string) error {
	switch format {
	case FormatText, FormatJSON, FormatYAML:
		return nil
	}
	return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
}
