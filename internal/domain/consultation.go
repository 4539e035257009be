package domain

import "time"

// ConsultationStatus represents the lifecycle state of a consultation.
type ConsultationStatus string

const (
	StatusPending   ConsultationStatus = "pending"
	StatusAccepted  ConsultationStatus = "accepted"
	StatusRejected  ConsultationStatus = "rejected"
	StatusCompleted ConsultationStatus = "completed"
	StatusCancelled ConsultationStatus = "cancelled"
)

// Consultation represents a scheduled session between a student and a psychologist.
// ScheduledAt is always stored in UTC; wall-clock interpretation happens against
// the configured scheduler offset.
type Consultation struct {
	ID              string
	StudentID       string
	PsychologistID  string
	ScheduledAt     time.Time
	DurationMinutes int
	Status          ConsultationStatus

	StudentNotes       *string
	PsychologistNotes  *string
	Recommendations    *string
	Feedback           *string
	Rating             *int
	MeetingURL         *string
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// End returns the exclusive end instant of the consultation interval.
func (c *Consultation) End() time.Time {
	return c.ScheduledAt.Add(time.Duration(c.DurationMinutes) * time.Minute)
}

// ReservesCalendar reports whether the consultation blocks other bookings.
// Only accepted consultations reserve the calendar; pending requests compete
// until the psychologist accepts one of them.
func (c *Consultation) ReservesCalendar() bool {
	return c.Status == StatusAccepted
}

// IsTerminal reports whether no further status transitions are possible
// through the transition table.
func (c *Consultation) IsTerminal() bool {
	return c.Status == StatusRejected || c.Status == StatusCompleted || c.Status == StatusCancelled
}

// CanBeCancelled reports whether the participant cancel path still applies.
func (c *Consultation) CanBeCancelled() bool {
	return c.Status != StatusCompleted
}

// ToConsultationStatus validates a raw status string.
func ToConsultationStatus(s string) (ConsultationStatus, bool) {
	switch ConsultationStatus(s) {
	case StatusPending, StatusAccepted, StatusRejected, StatusCompleted, StatusCancelled:
		return ConsultationStatus(s), true
	default:
		return "", false
	}
}
