package domain

import "time"

// AvailabilityWindow is a recurring weekly interval during which a psychologist
// accepts bookings. Bounds are minutes since midnight in the scheduler's civil
// time, half-open [StartMinute, EndMinute).
type AvailabilityWindow struct {
	ID             string
	PsychologistID string
	DayOfWeek      time.Weekday
	StartMinute    int
	EndMinute      int
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Contains reports whether a minute-of-day falls inside the window. The end
// bound is exclusive: a booking starting exactly at EndMinute belongs to the
// next window, if any.
func (w *AvailabilityWindow) Contains(minute int) bool {
	return minute >= w.StartMinute && minute < w.EndMinute
}

// Overlaps reports whether the half-open interval [start, end) intersects the
// window.
func (w *AvailabilityWindow) Overlaps(start, end int) bool {
	return start < w.EndMinute && end > w.StartMinute
}
