package get_statistics

import (
	"context"

	"github.com/orienta-vg/consultation-service/internal/domain"
	"github.com/orienta-vg/consultation-service/internal/service/consultations/models"
)

type ConsultationService interface {
	GetStatistics(ctx context.Context, psychologistID *string, actorID string, actorRole domain.Role) (*models.StatisticsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
