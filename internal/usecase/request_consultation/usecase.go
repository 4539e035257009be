package request_consultation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/orienta-vg/consultation-service/internal/domain"
	userClient "github.com/orienta-vg/consultation-service/internal/integrations/userdirectory"
	"github.com/orienta-vg/consultation-service/pkg/types"
)

// UseCase use case для запроса консультации
type UseCase struct {
	consultationRepo ConsultationRepository
	availabilityRepo AvailabilityRepository
	userClient       UserDirectoryClient
	slotCache        SlotCache
	metrics          Metrics
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger

	utcOffsetMinutes int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	consultationRepo ConsultationRepository,
	availabilityRepo AvailabilityRepository,
	userClient UserDirectoryClient,
	slotCache SlotCache,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
	utcOffsetMinutes int,
) *UseCase {
	return &UseCase{
		consultationRepo: consultationRepo,
		availabilityRepo: availabilityRepo,
		userClient:       userClient,
		slotCache:        slotCache,
		metrics:          metrics,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
		utcOffsetMinutes: utcOffsetMinutes,
	}
}

// Execute выполняет use case запроса консультации.
// Проверка доступности и вставка выполняются в одной сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RequestConsultation: student=%s, psychologist=%s, date=%s, time=%s",
		req.StudentID, req.PsychologistID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RequestConsultation: validation failed: %v", err)
		return nil, err
	}

	duration, err := resolveDuration(req.DurationMinutes)
	if err != nil {
		uc.logger.Warn("RequestConsultation: duration validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем психолога через каталог пользователей
	if err := uc.checkPsychologist(ctx, req.PsychologistID); err != nil {
		return nil, err
	}

	// 3. Восстанавливаем абсолютный момент начала из локальной даты и времени
	startMinute, err := req.StartTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	scheduledAt := types.InstantAt(req.Date, startMinute, uc.utcOffsetMinutes)
	scheduledEnd := scheduledAt.Add(time.Duration(duration) * time.Minute)

	// 4. Запрошенный момент должен быть строго в будущем
	now := uc.timeProvider.Now()
	if !scheduledAt.After(now) {
		uc.logger.Warn("RequestConsultation: scheduled time %s is not in the future", scheduledAt)
		return nil, ErrPastDate
	}

	var result *domain.Consultation

	// 5. Проверка доступности и вставка под сериализуемой транзакцией
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Окна доступности на локальный день недели
		weekday, _ := types.Localize(scheduledAt, uc.utcOffsetMinutes)

		windows, err := uc.availabilityRepo.GetActiveByDay(txCtx, req.PsychologistID, weekday)
		if err != nil {
			uc.logger.Error("RequestConsultation: failed to get windows: %v", err)
			return fmt.Errorf("%w: failed to get availability windows: %v", ErrInternal, err)
		}

		// Доступность проверяется по минуте начала; окончание может выходить
		// за границу окна
		if !domain.WithinAvailability(windows, startMinute) {
			uc.logger.Warn("RequestConsultation: start minute %d outside availability for psychologist=%s weekday=%d",
				startMinute, req.PsychologistID, weekday)
			return ErrOutsideAvailability
		}

		// 5.2. Принятые консультации, пересекающие интервал, с блокировкой (FOR UPDATE)
		existing, err := uc.consultationRepo.GetAcceptedInRange(txCtx, req.PsychologistID, scheduledAt, scheduledEnd)
		if err != nil {
			uc.logger.Error("RequestConsultation: failed to get consultations: %v", err)
			return fmt.Errorf("%w: failed to get consultations: %v", ErrInternal, err)
		}

		if domain.HasExactOverlap(scheduledAt, scheduledEnd, existing) {
			uc.logger.Warn("RequestConsultation: slot %s taken for psychologist=%s", scheduledAt, req.PsychologistID)
			return ErrSlotTaken
		}

		// 5.3. Создаем консультацию в статусе pending
		created, err := uc.consultationRepo.Create(txCtx, &domain.Consultation{
			StudentID:       req.StudentID,
			PsychologistID:  req.PsychologistID,
			ScheduledAt:     scheduledAt,
			DurationMinutes: duration,
			Status:          domain.StatusPending,
			StudentNotes:    req.StudentNotes,
		})
		if err != nil {
			uc.logger.Error("RequestConsultation: failed to create consultation: %v", err)
			return fmt.Errorf("%w: failed to create consultation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 6. Сбрасываем кэш слотов на этот день; ошибка кэша не отменяет запись
	if uc.slotCache != nil {
		localDate := types.LocalDate(scheduledAt, uc.utcOffsetMinutes)
		if err := uc.slotCache.Invalidate(ctx, req.PsychologistID, localDate); err != nil {
			uc.logger.Warn("RequestConsultation: failed to invalidate slot cache: %v", err)
		}
	}

	if uc.metrics != nil {
		uc.metrics.IncConsultationsCreated()
	}

	uc.logger.Info("RequestConsultation: successfully created consultation id=%s", result.ID)

	return &Response{
		ID:              result.ID,
		StudentID:       result.StudentID,
		PsychologistID:  result.PsychologistID,
		ScheduledAt:     result.ScheduledAt,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		StudentNotes:    result.StudentNotes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// checkPsychologist проверяет, что пользователь существует, активен и является психологом
func (uc *UseCase) checkPsychologist(ctx context.Context, psychologistID string) error {
	user, err := uc.userClient.GetUser(ctx, psychologistID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			uc.logger.Warn("RequestConsultation: psychologist id=%s not found", psychologistID)
			return ErrPsychologistNotFound
		}
		uc.logger.Error("RequestConsultation: failed to get user id=%s: %v", psychologistID, err)
		return fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}

	if !user.IsActive || user.Role != string(domain.RolePsychologist) {
		uc.logger.Warn("RequestConsultation: user id=%s is not an active psychologist", psychologistID)
		return ErrPsychologistNotFound
	}

	return nil
}
