package list_availability

import (
	"context"

	"github.com/orienta-vg/consultation-service/internal/service/availability/models"
)

type AvailabilityService interface {
	ListByPsychologist(ctx context.Context, psychologistID string) (*models.WindowListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
