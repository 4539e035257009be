package get_consultation

import (
	"context"

	"github.com/orienta-vg/consultation-service/internal/domain"
	"github.com/orienta-vg/consultation-service/internal/service/consultations/models"
)

type ConsultationService interface {
	GetByID(ctx context.Context, id, actorID string, actorRole domain.Role) (*models.ConsultationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
