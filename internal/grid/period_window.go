package grid

// PeriodWindow keeps the layouts of three consecutive periods so a browser
// can step between them without rebuilding on every key press.
type PeriodWindow struct {
	layouts [3]*Layout // [0]=prev, [1]=current, [2]=next
}

// NewPeriodWindow creates a window from three consecutive layouts. prev and
// next may be nil until they are loaded.
func NewPeriodWindow(prev, current, next *Layout) *PeriodWindow {
	return &PeriodWindow{layouts: [3]*Layout{prev, current, next}}
}

// Current returns the focused layout.
func (w *PeriodWindow) Current() *Layout { return w.layouts[1] }

// Previous returns the layout before current.
func (w *PeriodWindow) Previous() *Layout { return w.layouts[0] }

// Next returns the layout after current.
func (w *PeriodWindow) Next() *Layout { return w.layouts[2] }

// ShiftForward makes next current and appends newNext.
func (w *PeriodWindow) ShiftForward(newNext *Layout) {
	w.layouts[0], w.layouts[1], w.layouts[2] = w.layouts[1], w.layouts[2], newNext
}

// ShiftBackward makes prev current and prepends newPrev.
func (w *PeriodWindow) ShiftBackward(newPrev *Layout) {
	w.layouts[0], w.layouts[1], w.layouts[2] = newPrev, w.layouts[0], w.layouts[1]
}

// SetCurrent replaces the current layout, e.g. after events change.
func (w *PeriodWindow) SetCurrent(l *Layout) { w.layouts[1] = l }

// SetNext replaces the next layout once it has been built.
func (w *PeriodWindow) SetNext(l *Layout) { w.layouts[2] = l }

// SetPrevious replaces the previous layout once it has been built.
func (w *PeriodWindow) SetPrevious(l *Layout) { w.layouts[0] = l }

// HasNext reports whether the next layout is loaded.
func (w *PeriodWindow) HasNext() bool { return w.layouts[2] != nil }

// HasPrevious reports whether the previous layout is loaded.
func (w *PeriodWindow) HasPrevious() bool { return w.layouts[0] != nil }
