package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/taqvim/internal/event"
	"github.com/javiermolinar/taqvim/internal/grid"
	"github.com/javiermolinar/taqvim/internal/jalali"
)

const modalMaxWidth = 56

// renderModal draws the open modal centered on an empty screen.
func (m Model) renderModal() string {
	var content string
	switch m.modalType {
	case ModalEventDetail:
		content = m.renderEventDetail(m.modalEvent)
	case ModalConfirmDelete:
		content = m.renderConfirmDelete(m.modalEvent)
	default:
		content = m.renderHelp()
	}

	width := min(m.viewWidth()-4, modalMaxWidth)
	box := m.styles.Modal.Width(width).Render(content)
	return lipgloss.Place(m.viewWidth(), m.viewHeight(), lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceBackground(m.styles.palette.Bg))
}

func (m Model) renderEventDetail(e *event.Event) string {
	if e == nil {
		return ""
	}
	rows := []string{
		m.styles.Dot(e.Color) + " " + m.styles.ModalTitle.Render(e.Title),
		"",
		m.detailRow("When", m.whenText(e)),
		m.detailRow("Duration", formatDuration(e.Duration())),
		m.detailRow("Color", string(e.Color)),
		m.detailRow("ID", e.ID),
	}
	if e.Description != "" && e.Description != e.Title {
		rows = append(rows, "", m.styles.ModalText.Render(e.Description))
	}
	rows = append(rows, "", m.styles.ModalHint.Render("x delete · esc close"))
	return strings.Join(rows, "\n")
}

func (m Model) renderConfirmDelete(e *event.Event) string {
	if e == nil {
		return ""
	}
	return strings.Join([]string{
		m.styles.ModalWarn.Render("Delete event?"),
		"",
		m.styles.ModalText.Render(e.Title),
		m.styles.ModalHint.Render(m.whenText(e)),
		"",
		m.styles.ModalHint.Render("y delete · n cancel"),
	}, "\n")
}

func (m Model) renderHelp() string {
	h := m.help
	h.ShowAll = true
	return m.styles.ModalTitle.Render("Keys") + "\n\n" + h.View(m.keys)
}

func (m Model) detailRow(label, value string) string {
	return m.styles.ModalLabel.Render(label) + m.styles.ModalText.Render(value)
}

// whenText formats the event's start and end as Jalali dates and times.
func (m Model) whenText(e *event.Event) string {
	loc := m.clock.Location()
	start, err := m.clock.ToCivil(e.Start)
	if err != nil {
		return e.Start.In(loc).Format("2006-01-02 15:04")
	}
	end, err := m.clock.ToCivil(e.End)
	if err != nil {
		end = start
	}

	s := jalali.Format(start, m.numerals) + " " + jalali.FormatDigits(e.Start.In(loc).Format("15:04"), m.numerals)
	if end != start {
		s += " - " + jalali.Format(end, m.numerals) + " "
	} else {
		s += "-"
	}
	return s + jalali.FormatDigits(e.End.In(loc).Format("15:04"), m.numerals)
}

// agendaText lists a day's events one per line for the clipboard.
func agendaText(c grid.Cell, clock jalali.Clock, n jalali.Numerals) string {
	loc := clock.Location()
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", jalali.WeekdayName(c.Day.Weekday, n), jalali.Format(c.Day.Date, n))
	for _, e := range c.All() {
		span := e.Start.In(loc).Format("15:04") + "-" + e.End.In(loc).Format("15:04")
		fmt.Fprintf(&b, "%s %s\n", jalali.FormatDigits(span, n), e.Title)
	}
	return b.String()
}

// formatDuration formats a duration as "1h30m", "45m" or "2h".
func formatDuration(d time.Duration) string {
	total := int(d.Minutes())
	h, mins := total/60, total%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", mins)
	case mins == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%02dm", h, mins)
	}
}
