package create_availability

import (
	"github.com/orienta-vg/consultation-service/internal/service/availability/models"
	"github.com/orienta-vg/consultation-service/pkg/types"
)

// CreateWindowRequest HTTP request model
type CreateWindowRequest struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0 = воскресенье ... 6 = суббота
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "13:00"
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateWindowRequest) ToServiceRequest(psychologistID string) (*models.CreateWindowRequest, error) {
	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	end, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &models.CreateWindowRequest{
		PsychologistID: psychologistID,
		DayOfWeek:      r.DayOfWeek,
		StartTime:      start,
		EndTime:        end,
	}, nil
}
