package request_consultation

import (
	"time"

	"github.com/orienta-vg/consultation-service/internal/domain"
	requestConsultation "github.com/orienta-vg/consultation-service/internal/usecase/request_consultation"
	"github.com/orienta-vg/consultation-service/pkg/types"
)

// RequestConsultationRequest HTTP request model
type RequestConsultationRequest struct {
	PsychologistID  string  `json:"psychologistId"`
	Date            string  `json:"date"`      // "2026-09-07"
	StartTime       string  `json:"startTime"` // "10:00"
	DurationMinutes *int    `json:"durationMinutes,omitempty"`
	StudentNotes    *string `json:"studentNotes,omitempty"`
}

// ConsultationResponse HTTP response model
type ConsultationResponse struct {
	ID              string  `json:"id"`
	StudentID       string  `json:"studentId"`
	PsychologistID  string  `json:"psychologistId"`
	ScheduledAt     string  `json:"scheduledAt"` // RFC3339, UTC
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	StudentNotes    *string `json:"studentNotes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RequestConsultationRequest) ToUseCaseRequest(studentID string) (*requestConsultation.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &requestConsultation.Request{
		StudentID:       studentID,
		PsychologistID:  r.PsychologistID,
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
		StudentNotes:    r.StudentNotes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *requestConsultation.Response) *ConsultationResponse {
	return &ConsultationResponse{
		ID:              resp.ID,
		StudentID:       resp.StudentID,
		PsychologistID:  resp.PsychologistID,
		ScheduledAt:     resp.ScheduledAt.UTC().Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		StudentNotes:    resp.StudentNotes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
