package cancel_consultation

import (
	"context"

	"github.com/orienta-vg/consultation-service/internal/service/consultations/models"
)

type ConsultationService interface {
	Cancel(ctx context.Context, id string, req *models.CancelConsultationRequest) (*models.ConsultationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
