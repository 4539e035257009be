package request_consultation

import (
	"context"
	"time"

	"github.com/orienta-vg/consultation-service/internal/domain"
	"github.com/orienta-vg/consultation-service/internal/integrations/userdirectory"
)

// ConsultationRepository интерфейс репозитория консультаций
type ConsultationRepository interface {
	Create(ctx context.Context, c *domain.Consultation) (*domain.Consultation, error)
	GetAcceptedInRange(ctx context.Context, psychologistID string, from, to time.Time) ([]*domain.Consultation, error)
}

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	GetActiveByDay(ctx context.Context, psychologistID string, day time.Weekday) ([]*domain.AvailabilityWindow, error)
}

// UserDirectoryClient интерфейс клиента каталога пользователей
type UserDirectoryClient interface {
	GetUser(ctx context.Context, userID string) (*userdirectory.User, error)
}

// SlotCache интерфейс кэша списков слотов
type SlotCache interface {
	Invalidate(ctx context.Context, psychologistID string, date time.Time) error
}

// Metrics интерфейс бизнес-метрик
type Metrics interface {
	IncConsultationsCreated()
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
