package update_consultation

import (
	"github.com/orienta-vg/consultation-service/internal/domain"
	"github.com/orienta-vg/consultation-service/internal/service/consultations/models"
)

// UpdateConsultationRequest HTTP request model; absent fields keep their value
type UpdateConsultationRequest struct {
	Status             *string `json:"status,omitempty"`
	StudentNotes       *string `json:"studentNotes,omitempty"`
	PsychologistNotes  *string `json:"psychologistNotes,omitempty"`
	Recommendations    *string `json:"recommendations,omitempty"`
	Rating             *int    `json:"rating,omitempty"`
	Feedback           *string `json:"feedback,omitempty"`
	MeetingURL         *string `json:"meetingUrl,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateConsultationRequest) ToServiceRequest(actorID string, actorRole domain.Role) *models.UpdateConsultationRequest {
	return &models.UpdateConsultationRequest{
		ActorID:            actorID,
		ActorRole:          actorRole,
		Status:             r.Status,
		StudentNotes:       r.StudentNotes,
		PsychologistNotes:  r.PsychologistNotes,
		Recommendations:    r.Recommendations,
		Rating:             r.Rating,
		Feedback:           r.Feedback,
		MeetingURL:         r.MeetingURL,
		CancellationReason: r.CancellationReason,
	}
}
