package domain

import "time"

// Two conflict policies coexist on purpose. Booking admission uses the exact
// half-open interval test; slot listing uses a coarser proximity test that
// hides any candidate starting within one slot duration of an accepted
// consultation's start. They produce different edges and must not be unified.

// WithinAvailability reports whether a minute-of-day falls inside at least one
// active window. Inactive windows never admit bookings.
func WithinAvailability(windows []*AvailabilityWindow, minute int) bool {
	for _, w := range windows {
		if w.IsActive && w.Contains(minute) {
			return true
		}
	}
	return false
}

// HasExactOverlap reports whether the half-open candidate interval
// [start, end) intersects any calendar-reserving consultation.
// Intervals that merely touch at a boundary do not conflict.
func HasExactOverlap(start, end time.Time, existing []*Consultation) bool {
	for _, c := range existing {
		if !c.ReservesCalendar() {
			continue
		}
		if start.Before(c.End()) && end.After(c.ScheduledAt) {
			return true
		}
	}
	return false
}

// NearStart reports whether candidate lies strictly within windowMinutes of
// any calendar-reserving consultation's start, in either direction.
func NearStart(candidate time.Time, windowMinutes int, existing []*Consultation) bool {
	window := time.Duration(windowMinutes) * time.Minute
	for _, c := range existing {
		if !c.ReservesCalendar() {
			continue
		}
		delta := candidate.Sub(c.ScheduledAt)
		if delta < 0 {
			delta = -delta
		}
		if delta < window {
			return true
		}
	}
	return false
}
