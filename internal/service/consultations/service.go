package consultations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/orienta-vg/consultation-service/internal/domain"
	consultationRepo "github.com/orienta-vg/consultation-service/internal/infra/storage/consultation"
	"github.com/orienta-vg/consultation-service/internal/service/consultations/models"
	"github.com/orienta-vg/consultation-service/pkg/types"
)

// Service сервис жизненного цикла консультаций
type Service struct {
	consultationRepo ConsultationRepository
	slotCache        SlotCache
	txManager        TransactionManager
	logger           Logger

	utcOffsetMinutes int
}

// NewService создает новый экземпляр сервиса консультаций
func NewService(
	consultationRepo ConsultationRepository,
	slotCache SlotCache,
	txManager TransactionManager,
	logger Logger,
	utcOffsetMinutes int,
) *Service {
	return &Service{
		consultationRepo: consultationRepo,
		slotCache:        slotCache,
		txManager:        txManager,
		logger:           logger,
		utcOffsetMinutes: utcOffsetMinutes,
	}
}

// GetByID returns a consultation visible to the actor: either participant side
// or an admin. Everyone else gets access denied even when the id exists.
func (s *Service) GetByID(ctx context.Context, id, actorID string, actorRole domain.Role) (*models.ConsultationResponse, error) {
	s.logger.Info("GetByID: consultation=%s, actor=%s", id, actorID)

	consultation, err := s.getOwned(ctx, id, actorID, actorRole)
	if err != nil {
		return nil, err
	}

	return models.FromDomainConsultation(consultation), nil
}

// GetByStudent returns the consultations of a student, newest first. Students
// may only read their own history.
func (s *Service) GetByStudent(ctx context.Context, studentID string, req *models.ListRequest) (*models.ConsultationListResponse, error) {
	s.logger.Info("GetByStudent: student=%s, actor=%s", studentID, req.ActorID)

	if req.ActorRole != domain.RoleAdmin && req.ActorID != studentID {
		s.logger.Warn("GetByStudent: actor=%s denied access to student=%s history", req.ActorID, studentID)
		return nil, ErrAccessDenied
	}

	status, err := parseStatusFilter(req.Status)
	if err != nil {
		return nil, err
	}

	consultations, err := s.consultationRepo.GetByStudent(ctx, studentID, status)
	if err != nil {
		s.logger.Error("GetByStudent: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetByStudent - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainConsultationList(consultations), nil
}

// GetByPsychologist returns the consultations of a psychologist, newest first.
func (s *Service) GetByPsychologist(ctx context.Context, psychologistID string, req *models.ListRequest) (*models.ConsultationListResponse, error) {
	s.logger.Info("GetByPsychologist: psychologist=%s, actor=%s", psychologistID, req.ActorID)

	if req.ActorRole != domain.RoleAdmin && req.ActorID != psychologistID {
		s.logger.Warn("GetByPsychologist: actor=%s denied access to psychologist=%s history", req.ActorID, psychologistID)
		return nil, ErrAccessDenied
	}

	status, err := parseStatusFilter(req.Status)
	if err != nil {
		return nil, err
	}

	consultations, err := s.consultationRepo.GetByPsychologist(ctx, psychologistID, status)
	if err != nil {
		s.logger.Error("GetByPsychologist: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetByPsychologist - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainConsultationList(consultations), nil
}

// Update applies role-owned field edits and an optional status transition in a
// single write. A completed consultation only accepts the student's rating and
// feedback; cancelled and rejected ones accept nothing.
func (s *Service) Update(ctx context.Context, id string, req *models.UpdateConsultationRequest) (*models.ConsultationResponse, error) {
	s.logger.Info("Update: consultation=%s, actor=%s, role=%s", id, req.ActorID, req.ActorRole)

	if err := validateUpdate(req); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	var (
		consultation    *domain.Consultation
		touchesCalendar bool
	)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		c, err := s.getOwned(txCtx, id, req.ActorID, req.ActorRole)
		if err != nil {
			return err
		}

		if err := applyFieldUpdates(c, req); err != nil {
			s.logger.Warn("Update: field updates rejected for consultation=%s: %v", id, err)
			return err
		}

		if req.Status != nil {
			next, ok := domain.ToConsultationStatus(*req.Status)
			if !ok {
				return fmt.Errorf("%w: %q", ErrInvalidStatus, *req.Status)
			}

			if err := domain.ValidateTransition(c.Status, next, req.ActorRole); err != nil {
				s.logger.Warn("Update: transition %s -> %s denied for role=%s: %v",
					c.Status, next, req.ActorRole, err)
				return mapTransitionError(err)
			}

			// Списки слотов меняются, только когда слот резервируется или
			// освобождается
			touchesCalendar = c.Status == domain.StatusAccepted || next == domain.StatusAccepted

			c.Status = next
			if next == domain.StatusCancelled {
				now := time.Now().UTC()
				c.CancelledAt = &now
				if req.CancellationReason != nil {
					c.CancellationReason = req.CancellationReason
				}
			}
		}

		if err := s.consultationRepo.Update(txCtx, c); err != nil {
			s.logger.Error("Update: repository error: %v", err)
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		consultation = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	if touchesCalendar {
		s.invalidateSlots(ctx, consultation)
	}

	s.logger.Info("Update: successfully updated consultation id=%s status=%s", id, consultation.Status)
	return models.FromDomainConsultation(consultation), nil
}

// Cancel is the participant cancel path: looser than the transition table, it
// only refuses completed consultations.
func (s *Service) Cancel(ctx context.Context, id string, req *models.CancelConsultationRequest) (*models.ConsultationResponse, error) {
	s.logger.Info("Cancel: consultation=%s, actor=%s", id, req.ActorID)

	if req.Reason != nil && len(*req.Reason) > domain.MaxCancellationReasonLen {
		return nil, fmt.Errorf("%w: cancellation reason too long", ErrInvalidInput)
	}

	var (
		consultation *domain.Consultation
		freedSlot    bool
	)

	// Чтение, проверка и запись идут одной транзакцией, чтобы отмена не
	// перезаписала конкурентный перевод в completed
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		c, err := s.getOwned(txCtx, id, req.ActorID, req.ActorRole)
		if err != nil {
			return err
		}

		if !c.CanBeCancelled() {
			s.logger.Warn("Cancel: consultation id=%s is completed and cannot be cancelled", id)
			return ErrCannotCancel
		}

		if c.Status == domain.StatusCancelled {
			// Repeated cancels are idempotent; the stored reason wins.
			consultation = c
			return nil
		}

		if err := s.consultationRepo.Cancel(txCtx, id, req.Reason); err != nil {
			if errors.Is(err, consultationRepo.ErrConsultationNotFound) {
				return ErrConsultationNotFound
			}
			s.logger.Error("Cancel: repository error: %v", err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		freedSlot = c.Status == domain.StatusAccepted

		now := time.Now().UTC()
		c.Status = domain.StatusCancelled
		c.CancelledAt = &now
		c.CancellationReason = req.Reason
		consultation = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	if freedSlot {
		s.invalidateSlots(ctx, consultation)
	}

	s.logger.Info("Cancel: successfully cancelled consultation id=%s", id)
	return models.FromDomainConsultation(consultation), nil
}

// invalidateSlots drops the cached slot listing for the consultation's local
// day. Cache errors are logged and swallowed; the TTL bounds the staleness.
func (s *Service) invalidateSlots(ctx context.Context, c *domain.Consultation) {
	if s.slotCache == nil {
		return
	}

	localDate := types.LocalDate(c.ScheduledAt, s.utcOffsetMinutes)
	if err := s.slotCache.Invalidate(ctx, c.PsychologistID, localDate); err != nil {
		s.logger.Warn("invalidateSlots: failed to invalidate slot cache for psychologist=%s: %v",
			c.PsychologistID, err)
	}
}

// GetStatistics aggregates counts, rating averages and the completion rate.
// Psychologists see their own numbers, admins may scope to any psychologist or
// the whole platform.
func (s *Service) GetStatistics(ctx context.Context, psychologistID *string, actorID string, actorRole domain.Role) (*models.StatisticsResponse, error) {
	s.logger.Info("GetStatistics: actor=%s, role=%s", actorID, actorRole)

	switch actorRole {
	case domain.RoleAdmin:
	case domain.RolePsychologist:
		psychologistID = &actorID
	default:
		s.logger.Warn("GetStatistics: actor=%s role=%s denied", actorID, actorRole)
		return nil, ErrAccessDenied
	}

	stats, err := s.consultationRepo.GetStatistics(ctx, psychologistID)
	if err != nil {
		s.logger.Error("GetStatistics: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetStatistics - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainStatistics(stats), nil
}

// getOwned loads a consultation and checks the actor may see it.
func (s *Service) getOwned(ctx context.Context, id, actorID string, actorRole domain.Role) (*domain.Consultation, error) {
	consultation, err := s.consultationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, consultationRepo.ErrConsultationNotFound) {
			s.logger.Warn("getOwned: consultation id=%s not found", id)
			return nil, ErrConsultationNotFound
		}
		s.logger.Error("getOwned: repository error: %v", err)
		return nil, fmt.Errorf("%w: getOwned - repository error: %v", ErrInternal, err)
	}

	if actorRole != domain.RoleAdmin &&
		actorID != consultation.StudentID &&
		actorID != consultation.PsychologistID {
		s.logger.Warn("getOwned: actor=%s is not a participant of consultation id=%s", actorID, id)
		return nil, ErrAccessDenied
	}

	return consultation, nil
}

// applyFieldUpdates writes the role-owned fields onto the consultation.
func applyFieldUpdates(c *domain.Consultation, req *models.UpdateConsultationRequest) error {
	if c.Status == domain.StatusCancelled || c.Status == domain.StatusRejected {
		if hasFieldUpdates(req) {
			return ErrImmutable
		}
		return nil
	}

	studentFields := req.ActorRole == domain.RoleStudent || req.ActorRole == domain.RoleAdmin
	psychFields := req.ActorRole == domain.RolePsychologist || req.ActorRole == domain.RoleAdmin

	if c.Status == domain.StatusCompleted {
		// Post-session the student may still leave a rating and feedback,
		// nothing else changes.
		if req.StudentNotes != nil || req.PsychologistNotes != nil ||
			req.Recommendations != nil || req.MeetingURL != nil {
			return ErrTerminalStatus
		}
		if (req.Rating != nil || req.Feedback != nil) && !studentFields {
			return ErrAccessDenied
		}
	} else {
		if (req.StudentNotes != nil || req.Rating != nil || req.Feedback != nil) && !studentFields {
			return ErrAccessDenied
		}
		if (req.PsychologistNotes != nil || req.Recommendations != nil || req.MeetingURL != nil) && !psychFields {
			return ErrAccessDenied
		}
	}

	if req.StudentNotes != nil {
		c.StudentNotes = req.StudentNotes
	}
	if req.Rating != nil {
		c.Rating = req.Rating
	}
	if req.Feedback != nil {
		c.Feedback = req.Feedback
	}
	if req.PsychologistNotes != nil {
		c.PsychologistNotes = req.PsychologistNotes
	}
	if req.Recommendations != nil {
		c.Recommendations = req.Recommendations
	}
	if req.MeetingURL != nil {
		c.MeetingURL = req.MeetingURL
	}

	return nil
}

func hasFieldUpdates(req *models.UpdateConsultationRequest) bool {
	return req.StudentNotes != nil || req.PsychologistNotes != nil ||
		req.Recommendations != nil || req.Rating != nil ||
		req.Feedback != nil || req.MeetingURL != nil
}

func validateUpdate(req *models.UpdateConsultationRequest) error {
	if req.Rating != nil && (*req.Rating < domain.MinRating || *req.Rating > domain.MaxRating) {
		return fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}
	if req.StudentNotes != nil && len(*req.StudentNotes) > domain.MaxStudentNotesLength {
		return fmt.Errorf("%w: studentNotes too long", ErrInvalidInput)
	}
	if req.PsychologistNotes != nil && len(*req.PsychologistNotes) > domain.MaxPsychologistNotesLength {
		return fmt.Errorf("%w: psychologistNotes too long", ErrInvalidInput)
	}
	if req.Recommendations != nil && len(*req.Recommendations) > domain.MaxRecommendationsLength {
		return fmt.Errorf("%w: recommendations too long", ErrInvalidInput)
	}
	if req.Feedback != nil && len(*req.Feedback) > domain.MaxFeedbackLength {
		return fmt.Errorf("%w: feedback too long", ErrInvalidInput)
	}
	if req.CancellationReason != nil && len(*req.CancellationReason) > domain.MaxCancellationReasonLen {
		return fmt.Errorf("%w: cancellation reason too long", ErrInvalidInput)
	}
	return nil
}

func parseStatusFilter(raw *string) (*domain.ConsultationStatus, error) {
	if raw == nil {
		return nil, nil
	}

	status, ok := domain.ToConsultationStatus(*raw)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *raw)
	}

	return &status, nil
}

func mapTransitionError(err error) error {
	switch {
	case errors.Is(err, domain.ErrTerminalStatus):
		return ErrTerminalStatus
	case errors.Is(err, domain.ErrIllegalTransition):
		return ErrIllegalTransition
	default:
		return err
	}
}
