package grid

import (
	"fmt"

	"github.com/javiermolinar/taqvim/internal/jalali"
)

// Default option values.
const (
	DefaultWeekStart = jalali.Saturday
	DefaultCapacity  = 3
)

// Options tunes grid construction.
type Options struct {
	WeekStart jalali.Weekday
	// Capacity is the number of events shown per month or week cell before
	// the rest are counted as hidden.
	Capacity int
	// UseDefaultsOnInvalid replaces bad values with their defaults instead
	// of failing.
	UseDefaultsOnInvalid bool
}

// DefaultOptions returns Saturday week start, capacity 3 and strict validation.
func DefaultOptions() Options {
	return Options{
		WeekStart: DefaultWeekStart,
		Capacity:  DefaultCapacity,
	}
}

// Resolve validates the options and returns the values a build will use.
func (o Options) Resolve() (Options, error) {
	if !o.WeekStart.Valid() {
		if !o.UseDefaultsOnInvalid {
			return Options{}, fmt.Errorf("%w: week start %d", ErrConfiguration, int(o.WeekStart))
		}
		o.WeekStart = DefaultWeekStart
	}
	if o.Capacity <= 0 {
		if !o.UseDefaultsOnInvalid {
			return Options{}, fmt.Errorf("%w: capacity %d", ErrConfiguration, o.Capacity)
		}
		o.Capacity = DefaultCapacity
	}
	return o, nil
}
