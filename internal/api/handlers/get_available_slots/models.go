package get_available_slots

import (
	"github.com/orienta-vg/consultation-service/internal/domain"
	getAvailableSlots "github.com/orienta-vg/consultation-service/internal/usecase/get_available_slots"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	PsychologistID      string   `json:"psychologistId"`
	Date                string   `json:"date"`
	SlotDurationMinutes int      `json:"slotDurationMinutes"`
	Slots               []string `json:"slots"` // ["09:00", "10:00", ...]
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	slots := make([]string, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, s.String())
	}

	return &SlotsResponse{
		PsychologistID:      resp.PsychologistID,
		Date:                resp.Date.Format(domain.DateFormat),
		SlotDurationMinutes: resp.SlotDurationMinutes,
		Slots:               slots,
	}
}
