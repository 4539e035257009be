package update_availability

import (
	"github.com/orienta-vg/consultation-service/internal/service/availability/models"
	"github.com/orienta-vg/consultation-service/pkg/types"
)

// UpdateWindowRequest HTTP request model; absent fields keep their value
type UpdateWindowRequest struct {
	StartTime *string `json:"startTime,omitempty"` // "09:00"
	EndTime   *string `json:"endTime,omitempty"`   // "13:00"
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateWindowRequest) ToServiceRequest(psychologistID string) (*models.UpdateWindowRequest, error) {
	req := &models.UpdateWindowRequest{
		PsychologistID: psychologistID,
	}

	if r.StartTime != nil {
		start, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = &start
	}

	if r.EndTime != nil {
		end, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return nil, err
		}
		req.EndTime = &end
	}

	return req, nil
}
