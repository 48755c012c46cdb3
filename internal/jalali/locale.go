package jalali

import (
	"fmt"
	"strings"
)

// Numerals selects the digit set used when formatting.
type Numerals int

const (
	PersianDigits Numerals = iota
	LatinDigits
)

// ParseNumerals accepts "persian" or "latin".
func ParseNumerals(s string) (Numerals, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "persian", "fa":
		return PersianDigits, nil
	case "latin", "en":
		return LatinDigits, nil
	default:
		return PersianDigits, fmt.Errorf("numerals must be 'persian' or 'latin', got %q", s)
	}
}

// String returns the config name of the numeral set.
func (n Numerals) String() string {
	if n == LatinDigits {
		return "latin"
	}
	return "persian"
}

var persianDigits = [10]rune{'۰', '۱', '۲', '۳', '۴', '۵', '۶', '۷', '۸', '۹'}

var monthNames = [12]string{
	"فروردین", "اردیبهشت", "خرداد", "تیر", "مرداد", "شهریور",
	"مهر", "آبان", "آذر", "دی", "بهمن", "اسفند",
}

var monthNamesLatin = [12]string{
	"Farvardin", "Ordibehesht", "Khordad", "Tir", "Mordad", "Shahrivar",
	"Mehr", "Aban", "Azar", "Dey", "Bahman", "Esfand",
}

var weekdayNames = [7]string{
	"شنبه", "یک\u200cشنبه", "دوشنبه", "سه\u200cشنبه", "چهارشنبه", "پنج\u200cشنبه", "جمعه",
}

var weekdayNamesLatin = [7]string{
	"Shanbe", "Yekshanbe", "Doshanbe", "Seshanbe", "Chaharshanbe", "Panjshanbe", "Jome",
}

var weekdayNamesEnglish = [7]string{
	"Saturday", "Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday",
}

// FormatDigits replaces ASCII digits in s with the selected numeral set.
func FormatDigits(s string, n Numerals) string {
	if n == LatinDigits {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) * 2)
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(persianDigits[r-'0'])
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// NormalizeDigits replaces Persian and Arabic-Indic digits in s with ASCII digits.
func NormalizeDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= '۰' && r <= '۹':
			b.WriteRune('0' + (r - '۰'))
		case r >= '٠' && r <= '٩':
			b.WriteRune('0' + (r - '٠'))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Format renders d as YYYY/MM/DD in the given numerals.
func Format(d Date, n Numerals) string {
	return FormatDigits(d.String(), n)
}

// MonthName returns the month name, Persian script for PersianDigits and a
// transliteration otherwise.
func MonthName(month int, n Numerals) string {
	if month < 1 || month > 12 {
		return ""
	}
	if n == LatinDigits {
		return monthNamesLatin[month-1]
	}
	return monthNames[month-1]
}

// WeekdayName returns the weekday name for the locale.
func WeekdayName(w Weekday, n Numerals) string {
	if !w.Valid() {
		return ""
	}
	if n == LatinDigits {
		return weekdayNamesLatin[w]
	}
	return weekdayNames[w]
}

// WeekdayShortName returns a compact weekday label suitable for grid headers.
func WeekdayShortName(w Weekday, n Numerals) string {
	if !w.Valid() {
		return ""
	}
	if n == LatinDigits {
		return weekdayNamesLatin[w][:3]
	}
	// Persian headers conventionally use the first letter of the name.
	r := []rune(weekdayNames[w])
	return string(r[0])
}

// MonthTitle renders "فروردین ۱۴۰۳" or "Farvardin 1403".
func MonthTitle(d Date, n Numerals) string {
	return MonthName(d.Month, n) + " " + FormatDigits(fmt.Sprintf("%d", d.Year), n)
}

// ParseWeekday accepts English, transliterated and Persian weekday names.
func ParseWeekday(s string) (Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i := range weekdayNamesEnglish {
		if name == strings.ToLower(weekdayNamesEnglish[i]) ||
			name == strings.ToLower(weekdayNamesLatin[i]) ||
			name == weekdayNames[i] {
			return Weekday(i), nil
		}
	}
	// Tolerate the spaced and joined spellings of compound names.
	joined := strings.NewReplacer("\u200c", "", " ", "").Replace(name)
	for i, fa := range weekdayNames {
		if joined == strings.ReplaceAll(fa, "\u200c", "") {
			return Weekday(i), nil
		}
	}
	return Saturday, fmt.Errorf("%w: %q", ErrInvalidWeekday, s)
}
