package models

import (
	"time"

	"github.com/orienta-vg/consultation-service/internal/domain"
	"github.com/orienta-vg/consultation-service/pkg/types"
)

// Request модели

// CreateWindowRequest запрос на создание окна доступности
type CreateWindowRequest struct {
	PsychologistID string
	DayOfWeek      int
	StartTime      types.TimeString
	EndTime        types.TimeString
}

// UpdateWindowRequest запрос на изменение границ окна
type UpdateWindowRequest struct {
	PsychologistID string
	StartTime      *types.TimeString
	EndTime        *types.TimeString
}

// Response модели

// WindowResponse ответ с данными окна доступности
type WindowResponse struct {
	ID             string    `json:"id"`
	PsychologistID string    `json:"psychologistId"`
	DayOfWeek      int       `json:"dayOfWeek"`
	StartTime      string    `json:"startTime"` // "09:00"
	EndTime        string    `json:"endTime"`   // "13:00"
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// WindowListResponse ответ со списком окон доступности
type WindowListResponse struct {
	Windows []WindowResponse `json:"windows"`
}

// FromDomainWindow конвертирует domain модель в DTO
func FromDomainWindow(w *domain.AvailabilityWindow) *WindowResponse {
	if w == nil {
		return nil
	}

	start, _ := types.FromMinutes(w.StartMinute)
	end, _ := types.FromMinutes(w.EndMinute)

	return &WindowResponse{
		ID:             w.ID,
		PsychologistID: w.PsychologistID,
		DayOfWeek:      int(w.DayOfWeek),
		StartTime:      start.String(),
		EndTime:        end.String(),
		IsActive:       w.IsActive,
		CreatedAt:      w.CreatedAt,
		UpdatedAt:      w.UpdatedAt,
	}
}

// FromDomainWindowList конвертирует список domain моделей в DTO
func FromDomainWindowList(windows []*domain.AvailabilityWindow) *WindowListResponse {
	resp := &WindowListResponse{
		Windows: make([]WindowResponse, 0, len(windows)),
	}

	for _, w := range windows {
		if windowResp := FromDomainWindow(w); windowResp != nil {
			resp.Windows = append(resp.Windows, *windowResp)
		}
	}

	return resp
}
