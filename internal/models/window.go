package models

import "time"

// Window is the [Start, End] instant range a report is scoped to.
// A zero End means the window is open ended.
type Window struct {
	Start time.Time
	End   time.Time
	Label string
}

// Open reports whether the window has no upper bound.
func (w Window) Open() bool { return w.End.IsZero() }

// Contains reports whether t falls inside the window, boundaries included.
func (w Window) Contains(t time.Time) bool {
	if t.Before(w.Start) {
		return false
	}
	return w.Open() || !t.After(w.End)
}
