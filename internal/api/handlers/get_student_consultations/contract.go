package get_student_consultations

import (
	"context"

	"github.com/orienta-vg/consultation-service/internal/service/consultations/models"
)

type ConsultationService interface {
	GetByStudent(ctx context.Context, studentID string, req *models.ListRequest) (*models.ConsultationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
