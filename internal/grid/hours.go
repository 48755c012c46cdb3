package grid

import (
	"fmt"

	"github.com/javiermolinar/taqvim/internal/jalali"
)

// HourRow is one row of the day-view hour axis.
type HourRow struct {
	Hour  int
	Label string
}

// Hours returns 0 through 23. Each call returns a new slice.
func Hours() []int {
	out := make([]int, HoursPerDay)
	for i := range out {
		out[i] = i
	}
	return out
}

// FormatHourLabel formats h as "HH:00" in the requested numerals.
func FormatHourLabel(h int, n jalali.Numerals) string {
	return jalali.FormatDigits(fmt.Sprintf("%02d:00", h), n)
}

// Axis returns the 24 labelled hour rows. Row 0 has an empty label so the
// axis lines up under the header row.
func Axis(n jalali.Numerals) []HourRow {
	rows := make([]HourRow, HoursPerDay)
	for h := range rows {
		rows[h].Hour = h
		if h > 0 {
			rows[h].Label = FormatHourLabel(h, n)
		}
	}
	return rows
}
