package availability

import (
	"context"
	"time"

	"github.com/orienta-vg/consultation-service/internal/domain"
	"github.com/orienta-vg/consultation-service/internal/integrations/userdirectory"
)

// WindowRepository интерфейс репозитория окон доступности
type WindowRepository interface {
	Create(ctx context.Context, window *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error)
	GetActiveByDay(ctx context.Context, psychologistID string, day time.Weekday) ([]*domain.AvailabilityWindow, error)
	GetActiveByPsychologist(ctx context.Context, psychologistID string) ([]*domain.AvailabilityWindow, error)
	GetByIDAndOwner(ctx context.Context, id, psychologistID string) (*domain.AvailabilityWindow, error)
	UpdateBounds(ctx context.Context, id string, startMinute, endMinute int) error
	Deactivate(ctx context.Context, id, psychologistID string) error
}

// UserDirectoryClient интерфейс клиента справочника пользователей
type UserDirectoryClient interface {
	GetUser(ctx context.Context, userID string) (*userdirectory.User, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
