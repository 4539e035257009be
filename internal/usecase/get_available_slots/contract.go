package get_available_slots

import (
	"context"
	"time"

	"github.com/orienta-vg/consultation-service/internal/domain"
	"github.com/orienta-vg/consultation-service/pkg/types"
)

// ConsultationRepository интерфейс репозитория консультаций
type ConsultationRepository interface {
	GetAcceptedInRange(ctx context.Context, psychologistID string, from, to time.Time) ([]*domain.Consultation, error)
}

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	GetActiveByDay(ctx context.Context, psychologistID string, day time.Weekday) ([]*domain.AvailabilityWindow, error)
}

// SlotCache интерфейс кэша списков слотов
type SlotCache interface {
	Get(ctx context.Context, psychologistID string, date time.Time) ([]types.TimeString, bool, error)
	Set(ctx context.Context, psychologistID string, date time.Time, slots []types.TimeString) error
}

// Metrics интерфейс бизнес-метрик
type Metrics interface {
	IncSlotCacheHit()
	IncSlotCacheMiss()
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
