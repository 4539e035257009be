package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/orienta-vg/consultation-service/internal/domain"
	availabilityRepo "github.com/orienta-vg/consultation-service/internal/infra/storage/availability"
	userClient "github.com/orienta-vg/consultation-service/internal/integrations/userdirectory"
	"github.com/orienta-vg/consultation-service/internal/service/availability/models"
	"github.com/orienta-vg/consultation-service/pkg/types"
)

// Service сервис управления окнами доступности психологов
type Service struct {
	windowRepo WindowRepository
	userClient UserDirectoryClient
	txManager  TransactionManager
	logger     Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	windowRepo WindowRepository,
	userClient UserDirectoryClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		windowRepo: windowRepo,
		userClient: userClient,
		txManager:  txManager,
		logger:     logger,
	}
}

// Create adds a weekly availability window. The overlap invariant is enforced
// inside a serializable transaction: the day's windows are read with a lock,
// checked, and only then the insert happens.
func (s *Service) Create(ctx context.Context, req *models.CreateWindowRequest) (*models.WindowResponse, error) {
	s.logger.Info("Create: psychologist=%s, day=%d, window=%s-%s",
		req.PsychologistID, req.DayOfWeek, req.StartTime, req.EndTime)

	startMinute, endMinute, err := parseBounds(req.StartTime, req.EndTime)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	if req.DayOfWeek < 0 || req.DayOfWeek > 6 {
		s.logger.Warn("Create: invalid day of week %d", req.DayOfWeek)
		return nil, ErrInvalidDay
	}

	if err := s.checkPsychologist(ctx, req.PsychologistID); err != nil {
		return nil, err
	}

	var created *domain.AvailabilityWindow

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		existing, err := s.windowRepo.GetActiveByDay(txCtx, req.PsychologistID, time.Weekday(req.DayOfWeek))
		if err != nil {
			s.logger.Error("Create: failed to get windows: %v", err)
			return fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}

		if overlapsAny(existing, startMinute, endMinute, "") {
			s.logger.Warn("Create: window %d-%d overlaps existing window for psychologist=%s day=%d",
				startMinute, endMinute, req.PsychologistID, req.DayOfWeek)
			return ErrWindowOverlap
		}

		created, err = s.windowRepo.Create(txCtx, &domain.AvailabilityWindow{
			PsychologistID: req.PsychologistID,
			DayOfWeek:      time.Weekday(req.DayOfWeek),
			StartMinute:    startMinute,
			EndMinute:      endMinute,
			IsActive:       true,
		})
		if err != nil {
			s.logger.Error("Create: failed to create window: %v", err)
			return fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Create: successfully created window id=%s", created.ID)
	return models.FromDomainWindow(created), nil
}

// ListByPsychologist returns the active windows of a psychologist ordered by
// weekday then start time.
func (s *Service) ListByPsychologist(ctx context.Context, psychologistID string) (*models.WindowListResponse, error) {
	s.logger.Info("ListByPsychologist: psychologist=%s", psychologistID)

	windows, err := s.windowRepo.GetActiveByPsychologist(ctx, psychologistID)
	if err != nil {
		s.logger.Error("ListByPsychologist: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListByPsychologist - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainWindowList(windows), nil
}

// Update rewrites the bounds of a window owned by the requesting psychologist,
// re-validating the overlap invariant against the other windows of that day.
func (s *Service) Update(ctx context.Context, windowID string, req *models.UpdateWindowRequest) (*models.WindowResponse, error) {
	s.logger.Info("Update: window=%s, psychologist=%s", windowID, req.PsychologistID)

	var updated *domain.AvailabilityWindow

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		window, err := s.windowRepo.GetByIDAndOwner(txCtx, windowID, req.PsychologistID)
		if err != nil {
			if errors.Is(err, availabilityRepo.ErrWindowNotFound) {
				s.logger.Warn("Update: window id=%s not found for psychologist=%s", windowID, req.PsychologistID)
				return ErrWindowNotFound
			}
			s.logger.Error("Update: repository error: %v", err)
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		startMinute := window.StartMinute
		endMinute := window.EndMinute

		if req.StartTime != nil {
			if startMinute, err = req.StartTime.Minutes(); err != nil {
				return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
			}
		}
		if req.EndTime != nil {
			if endMinute, err = req.EndTime.Minutes(); err != nil {
				return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
			}
		}

		if startMinute >= endMinute {
			s.logger.Warn("Update: invalid range %d-%d for window id=%s", startMinute, endMinute, windowID)
			return ErrInvalidTimeRange
		}

		siblings, err := s.windowRepo.GetActiveByDay(txCtx, req.PsychologistID, window.DayOfWeek)
		if err != nil {
			s.logger.Error("Update: failed to get windows: %v", err)
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		if overlapsAny(siblings, startMinute, endMinute, window.ID) {
			s.logger.Warn("Update: new bounds %d-%d overlap a sibling window", startMinute, endMinute)
			return ErrWindowOverlap
		}

		if err := s.windowRepo.UpdateBounds(txCtx, window.ID, startMinute, endMinute); err != nil {
			s.logger.Error("Update: failed to update bounds: %v", err)
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		window.StartMinute = startMinute
		window.EndMinute = endMinute
		updated = window
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Update: successfully updated window id=%s", windowID)
	return models.FromDomainWindow(updated), nil
}

// Deactivate soft-deletes a window. Only the owning psychologist may do it;
// a foreign window id reports not-found.
func (s *Service) Deactivate(ctx context.Context, windowID, psychologistID string) error {
	s.logger.Info("Deactivate: window=%s, psychologist=%s", windowID, psychologistID)

	if err := s.windowRepo.Deactivate(ctx, windowID, psychologistID); err != nil {
		if errors.Is(err, availabilityRepo.ErrWindowNotFound) {
			s.logger.Warn("Deactivate: window id=%s not found for psychologist=%s", windowID, psychologistID)
			return ErrWindowNotFound
		}
		s.logger.Error("Deactivate: repository error: %v", err)
		return fmt.Errorf("%w: Deactivate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Deactivate: successfully deactivated window id=%s", windowID)
	return nil
}

// checkPsychologist verifies the target user exists, is active and has the
// psychologist role.
func (s *Service) checkPsychologist(ctx context.Context, psychologistID string) error {
	user, err := s.userClient.GetUser(ctx, psychologistID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			s.logger.Warn("checkPsychologist: user id=%s not found", psychologistID)
			return ErrPsychologistNotFound
		}
		s.logger.Error("checkPsychologist: failed to get user id=%s: %v", psychologistID, err)
		return fmt.Errorf("%w: checkPsychologist - failed to get user: %v", ErrInternal, err)
	}

	if !user.IsActive || user.Role != string(domain.RolePsychologist) {
		s.logger.Warn("checkPsychologist: user id=%s is not an active psychologist", psychologistID)
		return ErrPsychologistNotFound
	}

	return nil
}

func parseBounds(start, end types.TimeString) (int, int, error) {
	startMinute, err := start.Minutes()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	endMinute, err := end.Minutes()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}

	if startMinute >= endMinute {
		return 0, 0, ErrInvalidTimeRange
	}

	return startMinute, endMinute, nil
}

// overlapsAny applies the half-open overlap test against every window except
// the one being edited.
func overlapsAny(windows []*domain.AvailabilityWindow, start, end int, excludeID string) bool {
	for _, w := range windows {
		if w.ID == excludeID {
			continue
		}
		if w.Overlaps(start, end) {
			return true
		}
	}
	return false
}
