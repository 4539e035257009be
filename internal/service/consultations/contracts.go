package consultations

import (
	"context"
	"time"

	"github.com/orienta-vg/consultation-service/internal/domain"
)

// ConsultationRepository интерфейс репозитория консультаций
type ConsultationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Consultation, error)
	GetByStudent(ctx context.Context, studentID string, status *domain.ConsultationStatus) ([]*domain.Consultation, error)
	GetByPsychologist(ctx context.Context, psychologistID string, status *domain.ConsultationStatus) ([]*domain.Consultation, error)
	Update(ctx context.Context, c *domain.Consultation) error
	Cancel(ctx context.Context, id string, reason *string) error
	GetStatistics(ctx context.Context, psychologistID *string) (*domain.ConsultationStatistics, error)
}

// SlotCache интерфейс сброса кэшированных списков слотов; nil, когда Redis выключен
type SlotCache interface {
	Invalidate(ctx context.Context, psychologistID string, date time.Time) error
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
