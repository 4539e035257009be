package get_available_slots

import (
	"sort"
	"time"

	"github.com/orienta-vg/consultation-service/internal/domain"
	"github.com/orienta-vg/consultation-service/pkg/types"
)

// generateSlots walks every active window of the day with a fixed slot step
// and keeps the starts that lie strictly in the future and are not near an
// accepted consultation. Windows may overlap after edits, so the result is
// deduplicated and sorted.
func generateSlots(
	windows []*domain.AvailabilityWindow,
	accepted []*domain.Consultation,
	date time.Time,
	now time.Time,
	slotDuration int,
	utcOffsetMinutes int,
) []types.TimeString {
	seen := make(map[int]struct{})
	minutes := make([]int, 0)

	for _, w := range windows {
		if !w.IsActive {
			continue
		}

		for candidate := w.StartMinute; candidate+slotDuration <= w.EndMinute; candidate += slotDuration {
			if _, ok := seen[candidate]; ok {
				continue
			}

			instant := types.InstantAt(date, candidate, utcOffsetMinutes)
			if !instant.After(now) {
				continue
			}

			// Слот закрыт, если рядом начало принятой консультации
			if domain.NearStart(instant, slotDuration, accepted) {
				continue
			}

			seen[candidate] = struct{}{}
			minutes = append(minutes, candidate)
		}
	}

	sort.Ints(minutes)

	slots := make([]types.TimeString, 0, len(minutes))
	for _, m := range minutes {
		slot, err := types.FromMinutes(m)
		if err != nil {
			// Кандидат за пределами суток невозможен при валидных окнах
			continue
		}
		slots = append(slots, slot)
	}

	return slots
}
