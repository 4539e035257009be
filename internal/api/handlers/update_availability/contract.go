package update_availability

import (
	"context"

	"github.com/orienta-vg/consultation-service/internal/service/availability/models"
)

type AvailabilityService interface {
	Update(ctx context.Context, windowID string, req *models.UpdateWindowRequest) (*models.WindowResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
