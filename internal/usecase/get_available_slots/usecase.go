package get_available_slots

import (
	"context"
	"fmt"

	"github.com/orienta-vg/consultation-service/internal/domain"
	"github.com/orienta-vg/consultation-service/pkg/types"
)

// UseCase use case для получения доступных слотов консультаций
type UseCase struct {
	consultationRepo ConsultationRepository
	availabilityRepo AvailabilityRepository
	slotCache        SlotCache
	metrics          Metrics
	timeProvider     TimeProvider
	logger           Logger

	slotDurationMinutes int
	utcOffsetMinutes    int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	consultationRepo ConsultationRepository,
	availabilityRepo AvailabilityRepository,
	slotCache SlotCache,
	metrics Metrics,
	logger Logger,
	slotDurationMinutes int,
	utcOffsetMinutes int,
) *UseCase {
	return &UseCase{
		consultationRepo:    consultationRepo,
		availabilityRepo:    availabilityRepo,
		slotCache:           slotCache,
		metrics:             metrics,
		timeProvider:        &RealTimeProvider{},
		logger:              logger,
		slotDurationMinutes: slotDurationMinutes,
		utcOffsetMinutes:    utcOffsetMinutes,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: psychologist=%s, date=%s",
		req.PsychologistID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Пробуем кэш; сбой Redis считается промахом
	if uc.slotCache != nil {
		cached, ok, err := uc.slotCache.Get(ctx, req.PsychologistID, req.Date)
		if err != nil {
			uc.logger.Warn("GetAvailableSlots: cache read failed: %v", err)
		}
		if ok {
			if uc.metrics != nil {
				uc.metrics.IncSlotCacheHit()
			}
			uc.logger.Info("GetAvailableSlots: cache hit for psychologist=%s, date=%s",
				req.PsychologistID, req.Date.Format(domain.DateFormat))
			return uc.response(req, cached), nil
		}
		if uc.metrics != nil {
			uc.metrics.IncSlotCacheMiss()
		}
	}

	now := uc.timeProvider.Now()

	// 3. Окна доступности на локальный день недели запрошенной даты
	weekday := req.Date.Weekday()

	windows, err := uc.availabilityRepo.GetActiveByDay(ctx, req.PsychologistID, weekday)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get windows: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability windows: %v", ErrInternal, err)
	}

	// Нет окон - пустой список, а не ошибка
	if len(windows) == 0 {
		uc.logger.Info("GetAvailableSlots: no active windows for psychologist=%s weekday=%d",
			req.PsychologistID, weekday)
		return uc.response(req, []types.TimeString{}), nil
	}

	// 4. Принятые консультации, пересекающие локальные сутки
	dayStart := types.InstantAt(req.Date, 0, uc.utcOffsetMinutes)
	dayEnd := types.InstantAt(req.Date, types.MinutesPerDay, uc.utcOffsetMinutes)

	accepted, err := uc.consultationRepo.GetAcceptedInRange(ctx, req.PsychologistID, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get consultations: %v", err)
		return nil, fmt.Errorf("%w: failed to get consultations: %v", ErrInternal, err)
	}

	// 5. Генерируем открытые слоты
	slots := generateSlots(windows, accepted, req.Date, now, uc.slotDurationMinutes, uc.utcOffsetMinutes)

	uc.logger.Info("GetAvailableSlots: generated %d slots for psychologist=%s, date=%s",
		len(slots), req.PsychologistID, req.Date.Format(domain.DateFormat))

	// 6. Кладем результат в кэш; ошибка кэша не ломает ответ
	if uc.slotCache != nil {
		if err := uc.slotCache.Set(ctx, req.PsychologistID, req.Date, slots); err != nil {
			uc.logger.Warn("GetAvailableSlots: cache write failed: %v", err)
		}
	}

	return uc.response(req, slots), nil
}

func (uc *UseCase) response(req *Request, slots []types.TimeString) *Response {
	return &Response{
		PsychologistID:      req.PsychologistID,
		Date:                req.Date,
		SlotDurationMinutes: uc.slotDurationMinutes,
		Slots:               slots,
	}
}
