package models

import (
	"time"

	"github.com/orienta-vg/consultation-service/internal/domain"
)

// Request модели

// UpdateConsultationRequest запрос на изменение консультации.
// Каждая роль владеет своим набором полей; статус меняется по таблице переходов.
type UpdateConsultationRequest struct {
	ActorID            string
	ActorRole          domain.Role
	Status             *string
	StudentNotes       *string
	PsychologistNotes  *string
	Recommendations    *string
	Rating             *int
	Feedback           *string
	MeetingURL         *string
	CancellationReason *string
}

// CancelConsultationRequest запрос на отмену консультации
type CancelConsultationRequest struct {
	ActorID   string
	ActorRole domain.Role
	Reason    *string
}

// ListRequest запрос на выборку консультаций участника
type ListRequest struct {
	ActorID   string
	ActorRole domain.Role
	Status    *string
}

// Response модели

// ConsultationResponse ответ с данными консультации
type ConsultationResponse struct {
	ID                 string     `json:"id"`
	StudentID          string     `json:"studentId"`
	PsychologistID     string     `json:"psychologistId"`
	ScheduledAt        time.Time  `json:"scheduledAt"`
	DurationMinutes    int        `json:"durationMinutes"`
	Status             string     `json:"status"`
	StudentNotes       *string    `json:"studentNotes,omitempty"`
	PsychologistNotes  *string    `json:"psychologistNotes,omitempty"`
	Recommendations    *string    `json:"recommendations,omitempty"`
	Rating             *int       `json:"rating,omitempty"`
	Feedback           *string    `json:"feedback,omitempty"`
	MeetingURL         *string    `json:"meetingUrl,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// ConsultationListResponse ответ со списком консультаций
type ConsultationListResponse struct {
	Consultations []ConsultationResponse `json:"consultations"`
}

// StatisticsResponse агрегированная статистика консультаций
type StatisticsResponse struct {
	Total          int            `json:"total"`
	ByStatus       map[string]int `json:"byStatus"`
	RatedCount     int            `json:"ratedCount"`
	AverageRating  float64        `json:"averageRating"`
	CompletionRate float64        `json:"completionRate"`
}

// FromDomainConsultation конвертирует domain модель в DTO
func FromDomainConsultation(c *domain.Consultation) *ConsultationResponse {
	if c == nil {
		return nil
	}

	return &ConsultationResponse{
		ID:                 c.ID,
		StudentID:          c.StudentID,
		PsychologistID:     c.PsychologistID,
		ScheduledAt:        c.ScheduledAt,
		DurationMinutes:    c.DurationMinutes,
		Status:             string(c.Status),
		StudentNotes:       c.StudentNotes,
		PsychologistNotes:  c.PsychologistNotes,
		Recommendations:    c.Recommendations,
		Rating:             c.Rating,
		Feedback:           c.Feedback,
		MeetingURL:         c.MeetingURL,
		CancellationReason: c.CancellationReason,
		CancelledAt:        c.CancelledAt,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

// FromDomainConsultationList конвертирует список domain моделей в DTO
func FromDomainConsultationList(consultations []*domain.Consultation) *ConsultationListResponse {
	resp := &ConsultationListResponse{
		Consultations: make([]ConsultationResponse, 0, len(consultations)),
	}

	for _, c := range consultations {
		if cResp := FromDomainConsultation(c); cResp != nil {
			resp.Consultations = append(resp.Consultations, *cResp)
		}
	}

	return resp
}

// FromDomainStatistics конвертирует агрегаты статистики в DTO
func FromDomainStatistics(s *domain.ConsultationStatistics) *StatisticsResponse {
	if s == nil {
		return nil
	}

	byStatus := make(map[string]int, len(s.ByStatus))
	for status, count := range s.ByStatus {
		byStatus[string(status)] = count
	}

	return &StatisticsResponse{
		Total:          s.Total,
		ByStatus:       byStatus,
		RatedCount:     s.RatedCount,
		AverageRating:  s.AverageRating,
		CompletionRate: s.CompletionRate(),
	}
}
