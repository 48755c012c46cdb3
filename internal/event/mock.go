package event

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/javiermolinar/taqvim/internal/jalali"
)

var mockTitles = []string{
	"جلسه روزانه تیم",
	"بازبینی پروژه",
	"جلسه با مشتری",
	"کارگاه طراحی",
	"بازبینی کد",
	"برنامه‌ریزی اسپرینت",
	"نمایش محصول",
	"بحث معماری",
	"آزمون کاربری",
	"به‌روزرسانی ذی‌نفعان",
	"گفتگوی فنی",
	"برنامه‌ریزی استقرار",
	"مرتب‌سازی اشکالات",
	"برنامه‌ریزی ویژگی‌ها",
	"آموزش تیم",
}

const mockDescription = "توضیحات نمونه"

var mockDurations = []int{30, 60, 90, 120}

// MockOptions configures GenerateMock.
type MockOptions struct {
	Count int        // number of events, default 120
	Days  int        // spread window in days from the month start, default 90
	Rand  *rand.Rand // source of randomness, default seeded from the clock
}

// GenerateMock builds sample events spread over the days following the start
// of the Jalali month containing now. Events start between 08:00 and 21:45 on
// quarter hours and last 30, 60, 90 or 120 minutes. IDs are "event-1",
// "event-2", ... and the result is sorted by start time.
func GenerateMock(clock jalali.Clock, now time.Time, opts MockOptions) ([]*Event, error) {
	if opts.Count <= 0 {
		opts.Count = 120
	}
	if opts.Days <= 0 {
		opts.Days = 90
	}
	r := opts.Rand
	if r == nil {
		seed := uint64(now.UnixNano())
		r = rand.New(rand.NewPCG(seed, seed>>1))
	}

	today, err := clock.ToCivil(now)
	if err != nil {
		return nil, fmt.Errorf("resolving current month: %w", err)
	}
	monthStart, err := clock.ToInstant(clock.StartOfMonth(today))
	if err != nil {
		return nil, fmt.Errorf("resolving current month: %w", err)
	}

	events := make([]*Event, 0, opts.Count)
	for i := 0; i < opts.Count; i++ {
		day := monthStart.AddDate(0, 0, r.IntN(opts.Days))
		start := time.Date(day.Year(), day.Month(), day.Day(),
			r.IntN(14)+8, r.IntN(4)*15, 0, 0, clock.Location())
		minutes := mockDurations[r.IntN(len(mockDurations))]

		events = append(events, &Event{
			ID:          fmt.Sprintf("event-%d", i+1),
			Title:       mockTitles[r.IntN(len(mockTitles))],
			Description: mockDescription,
			Start:       start,
			End:         start.Add(time.Duration(minutes) * time.Minute),
			Color:       palette[r.IntN(len(palette))],
			CreatedAt:   now,
		})
	}

	slices.SortFunc(events, Compare)
	return events, nil
}
