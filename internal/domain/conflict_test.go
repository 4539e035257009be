package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func accepted(start time.Time, minutes int) *Consultation {
	return &Consultation{ScheduledAt: start, DurationMinutes: minutes, Status: StatusAccepted}
}

func TestWithinAvailability(t *testing.T) {
	windows := []*AvailabilityWindow{
		{StartMinute: 9 * 60, EndMinute: 12 * 60, IsActive: true},
		{StartMinute: 14 * 60, EndMinute: 16 * 60, IsActive: false},
	}

	assert.True(t, WithinAvailability(windows, 9*60))
	assert.True(t, WithinAvailability(windows, 11*60+59))
	// Полуинтервал: конец окна не входит
	assert.False(t, WithinAvailability(windows, 12*60))
	// Неактивное окно не допускает записи
	assert.False(t, WithinAvailability(windows, 14*60))
	assert.False(t, WithinAvailability(windows, 8*60))
}

func TestHasExactOverlap(t *testing.T) {
	base := time.Date(2026, 9, 7, 15, 0, 0, 0, time.UTC)
	existing := []*Consultation{accepted(base, 60)}

	// Пересекающийся интервал
	assert.True(t, HasExactOverlap(base.Add(30*time.Minute), base.Add(90*time.Minute), existing))
	// Полное совпадение
	assert.True(t, HasExactOverlap(base, base.Add(60*time.Minute), existing))
	// Касание границ не считается конфликтом
	assert.False(t, HasExactOverlap(base.Add(60*time.Minute), base.Add(120*time.Minute), existing))
	assert.False(t, HasExactOverlap(base.Add(-60*time.Minute), base, existing))

	// Только принятые консультации резервируют календарь
	pending := []*Consultation{{ScheduledAt: base, DurationMinutes: 60, Status: StatusPending}}
	assert.False(t, HasExactOverlap(base, base.Add(60*time.Minute), pending))
}

func TestNearStart(t *testing.T) {
	base := time.Date(2026, 9, 7, 15, 0, 0, 0, time.UTC)
	existing := []*Consultation{accepted(base, 60)}

	assert.True(t, NearStart(base, 60, existing))
	assert.True(t, NearStart(base.Add(59*time.Minute), 60, existing))
	assert.True(t, NearStart(base.Add(-59*time.Minute), 60, existing))
	// Ровно одна длительность слота - уже не рядом
	assert.False(t, NearStart(base.Add(60*time.Minute), 60, existing))
	assert.False(t, NearStart(base.Add(-60*time.Minute), 60, existing))

	cancelled := []*Consultation{{ScheduledAt: base, DurationMinutes: 60, Status: StatusCancelled}}
	assert.False(t, NearStart(base, 60, cancelled))
}
