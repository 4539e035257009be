package consultations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orienta-vg/consultation-service/internal/domain"
	consultationRepo "github.com/orienta-vg/consultation-service/internal/infra/storage/consultation"
	"github.com/orienta-vg/consultation-service/internal/service/consultations/models"
	"github.com/orienta-vg/consultation-service/pkg/ptr"
)

type stubRepo struct {
	consultation *domain.Consultation
	updated      *domain.Consultation
	cancelled    bool
	stats        *domain.ConsultationStatistics
	statsScope   *string
}

func (s *stubRepo) GetByID(_ context.Context, _ string) (*domain.Consultation, error) {
	if s.consultation == nil {
		return nil, consultationRepo.ErrConsultationNotFound
	}
	copied := *s.consultation
	return &copied, nil
}

func (s *stubRepo) GetByStudent(_ context.Context, _ string, _ *domain.ConsultationStatus) ([]*domain.Consultation, error) {
	if s.consultation == nil {
		return nil, nil
	}
	return []*domain.Consultation{s.consultation}, nil
}

func (s *stubRepo) GetByPsychologist(_ context.Context, _ string, _ *domain.ConsultationStatus) ([]*domain.Consultation, error) {
	if s.consultation == nil {
		return nil, nil
	}
	return []*domain.Consultation{s.consultation}, nil
}

func (s *stubRepo) Update(_ context.Context, c *domain.Consultation) error {
	s.updated = c
	return nil
}

func (s *stubRepo) Cancel(_ context.Context, _ string, _ *string) error {
	s.cancelled = true
	return nil
}

func (s *stubRepo) GetStatistics(_ context.Context, psychologistID *string) (*domain.ConsultationStatistics, error) {
	s.statsScope = psychologistID
	return s.stats, nil
}

type stubSlotCache struct {
	invalidated []string
}

func (s *stubSlotCache) Invalidate(_ context.Context, psychologistID string, date time.Time) error {
	s.invalidated = append(s.invalidated, psychologistID+":"+date.Format(domain.DateFormat))
	return nil
}

type stubTxManager struct{ calls int }

func (m *stubTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const testOffset = -300 // UTC-5

func newTestService(repo *stubRepo) *Service {
	svc, _, _ := newTestServiceFull(repo)
	return svc
}

func newTestServiceFull(repo *stubRepo) (*Service, *stubSlotCache, *stubTxManager) {
	cache := &stubSlotCache{}
	txMgr := &stubTxManager{}
	return NewService(repo, cache, txMgr, nopLogger{}, testOffset), cache, txMgr
}

func pendingConsultation() *domain.Consultation {
	return &domain.Consultation{
		ID:              "cons-1",
		StudentID:       "stu-1",
		PsychologistID:  "psy-1",
		ScheduledAt:     time.Date(2026, 9, 7, 14, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Status:          domain.StatusPending,
	}
}

func TestGetByID(t *testing.T) {
	repo := &stubRepo{consultation: pendingConsultation()}
	svc := newTestService(repo)

	t.Run("participant reads own consultation", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), "cons-1", "stu-1", domain.RoleStudent)
		require.NoError(t, err)
		assert.Equal(t, "cons-1", resp.ID)
	})

	t.Run("admin reads any consultation", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), "cons-1", "adm-1", domain.RoleAdmin)
		assert.NoError(t, err)
	})

	t.Run("stranger denied", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), "cons-1", "stu-2", domain.RoleStudent)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("missing consultation", func(t *testing.T) {
		empty := newTestService(&stubRepo{})
		_, err := empty.GetByID(context.Background(), "cons-9", "stu-1", domain.RoleStudent)
		assert.ErrorIs(t, err, ErrConsultationNotFound)
	})
}

func TestGetByStudent(t *testing.T) {
	repo := &stubRepo{consultation: pendingConsultation()}
	svc := newTestService(repo)

	t.Run("own history allowed", func(t *testing.T) {
		resp, err := svc.GetByStudent(context.Background(), "stu-1",
			&models.ListRequest{ActorID: "stu-1", ActorRole: domain.RoleStudent})
		require.NoError(t, err)
		assert.Len(t, resp.Consultations, 1)
	})

	t.Run("foreign history denied", func(t *testing.T) {
		_, err := svc.GetByStudent(context.Background(), "stu-1",
			&models.ListRequest{ActorID: "stu-2", ActorRole: domain.RoleStudent})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("invalid status filter", func(t *testing.T) {
		_, err := svc.GetByStudent(context.Background(), "stu-1",
			&models.ListRequest{ActorID: "stu-1", ActorRole: domain.RoleStudent, Status: ptr.Ptr("paused")})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestUpdateTransitions(t *testing.T) {
	t.Run("psychologist accepts pending", func(t *testing.T) {
		repo := &stubRepo{consultation: pendingConsultation()}
		svc := newTestService(repo)

		resp, err := svc.Update(context.Background(), "cons-1", &models.UpdateConsultationRequest{
			ActorID:   "psy-1",
			ActorRole: domain.RolePsychologist,
			Status:    ptr.Ptr("accepted"),
		})
		require.NoError(t, err)
		assert.Equal(t, "accepted", resp.Status)
		require.NotNil(t, repo.updated)
		assert.Equal(t, domain.StatusAccepted, repo.updated.Status)
	})

	t.Run("accepting drops the day's slot cache", func(t *testing.T) {
		repo := &stubRepo{consultation: pendingConsultation()}
		svc, cache, txMgr := newTestServiceFull(repo)

		_, err := svc.Update(context.Background(), "cons-1", &models.UpdateConsultationRequest{
			ActorID:   "psy-1",
			ActorRole: domain.RolePsychologist,
			Status:    ptr.Ptr("accepted"),
		})
		require.NoError(t, err)
		// 14:00 UTC при UTC-5 это локальный день 2026-09-07
		assert.Equal(t, []string{"psy-1:2026-09-07"}, cache.invalidated)
		assert.Equal(t, 1, txMgr.calls)
	})

	t.Run("rejecting keeps the slot cache", func(t *testing.T) {
		repo := &stubRepo{consultation: pendingConsultation()}
		svc, cache, _ := newTestServiceFull(repo)

		_, err := svc.Update(context.Background(), "cons-1", &models.UpdateConsultationRequest{
			ActorID:   "psy-1",
			ActorRole: domain.RolePsychologist,
			Status:    ptr.Ptr("rejected"),
		})
		require.NoError(t, err)
		assert.Empty(t, cache.invalidated)
	})

	t.Run("accepting works without a cache", func(t *testing.T) {
		repo := &stubRepo{consultation: pendingConsultation()}
		svc := NewService(repo, nil, &stubTxManager{}, nopLogger{}, testOffset)

		_, err := svc.Update(context.Background(), "cons-1", &models.UpdateConsultationRequest{
			ActorID:   "psy-1",
			ActorRole: domain.RolePsychologist,
			Status:    ptr.Ptr("accepted"),
		})
		assert.NoError(t, err)
	})

	t.Run("student cannot accept", func(t *testing.T) {
		repo := &stubRepo{consultation: pendingConsultation()}
		svc := newTestService(repo)

		_, err := svc.Update(context.Background(), "cons-1", &models.UpdateConsultationRequest{
			ActorID:   "stu-1",
			ActorRole: domain.RoleStudent,
			Status:    ptr.Ptr("accepted"),
		})
		assert.ErrorIs(t, err, ErrIllegalTransition)
	})

	t.Run("completed rejects transitions", func(t *testing.T) {
		c := pendingConsultation()
		c.Status = domain.StatusCompleted
		svc := newTestService(&stubRepo{consultation: c})

		_, err := svc.Update(context.Background(), "cons-1", &models.UpdateConsultationRequest{
			ActorID:   "psy-1",
			ActorRole: domain.RolePsychologist,
			Status:    ptr.Ptr("cancelled"),
		})
		assert.ErrorIs(t, err, ErrTerminalStatus)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		svc := newTestService(&stubRepo{consultation: pendingConsultation()})

		_, err := svc.Update(context.Background(), "cons-1", &models.UpdateConsultationRequest{
			ActorID:   "psy-1",
			ActorRole: domain.RolePsychologist,
			Status:    ptr.Ptr("paused"),
		})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("cancellation stamps reason and time", func(t *testing.T) {
		c := pendingConsultation()
		c.Status = domain.StatusAccepted
		repo := &stubRepo{consultation: c}
		svc := newTestService(repo)

		resp, err := svc.Update(context.Background(), "cons-1", &models.UpdateConsultationRequest{
			ActorID:            "psy-1",
			ActorRole:          domain.RolePsychologist,
			Status:             ptr.Ptr("cancelled"),
			CancellationReason: ptr.Ptr("enfermedad"),
		})
		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
		require.NotNil(t, resp.CancelledAt)
		require.NotNil(t, resp.CancellationReason)
		assert.Equal(t, "enfermedad", *resp.CancellationReason)
	})
}

func TestUpdateFieldOwnership(t *testing.T) {
	t.Run("student edits own fields", func(t *testing.T) {
		repo := &stubRepo{consultation: pendingConsultation()}
		svc := newTestService(repo)

		resp, err := svc.Update(context.Background(), "cons-1", &models.UpdateConsultationRequest{
			ActorID:      "stu-1",
			ActorRole:    domain.RoleStudent,
			StudentNotes: ptr.Ptr("necesito orientación vocacional"),
		})
		require.NoError(t, err)
		require.NotNil(t, resp.StudentNotes)
	})

	t.Run("student cannot edit psychologist fields", func(t *testing.T) {
		svc := newTestService(&stubRepo{consultation: pendingConsultation()})

		_, err := svc.Update(context.Background(), "cons-1", &models.UpdateConsultationRequest{
			ActorID:         "stu-1",
			ActorRole:       domain.RoleStudent,
			Recommendations: ptr.Ptr("no aplica"),
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("psychologist cannot edit student fields", func(t *testing.T) {
		svc := newTestService(&stubRepo{consultation: pendingConsultation()})

		_, err := svc.Update(context.Background(), "cons-1", &models.UpdateConsultationRequest{
			ActorID:   "psy-1",
			ActorRole: domain.RolePsychologist,
			Rating:    ptr.Ptr(5),
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("student rates completed consultation", func(t *testing.T) {
		c := pendingConsultation()
		c.Status = domain.StatusCompleted
		repo := &stubRepo{consultation: c}
		svc := newTestService(repo)

		resp, err := svc.Update(context.Background(), "cons-1", &models.UpdateConsultationRequest{
			ActorID:   "stu-1",
			ActorRole: domain.RoleStudent,
			Rating:    ptr.Ptr(5),
			Feedback:  ptr.Ptr("muy útil"),
		})
		require.NoError(t, err)
		require.NotNil(t, resp.Rating)
		assert.Equal(t, 5, *resp.Rating)
	})

	t.Run("completed rejects other field edits", func(t *testing.T) {
		c := pendingConsultation()
		c.Status = domain.StatusCompleted
		svc := newTestService(&stubRepo{consultation: c})

		_, err := svc.Update(context.Background(), "cons-1", &models.UpdateConsultationRequest{
			ActorID:           "psy-1",
			ActorRole:         domain.RolePsychologist,
			PsychologistNotes: ptr.Ptr("tarde"),
		})
		assert.ErrorIs(t, err, ErrTerminalStatus)
	})

	t.Run("cancelled rejects all edits", func(t *testing.T) {
		c := pendingConsultation()
		c.Status = domain.StatusCancelled
		svc := newTestService(&stubRepo{consultation: c})

		_, err := svc.Update(context.Background(), "cons-1", &models.UpdateConsultationRequest{
			ActorID:      "stu-1",
			ActorRole:    domain.RoleStudent,
			StudentNotes: ptr.Ptr("tarde"),
		})
		assert.ErrorIs(t, err, ErrImmutable)
	})

	t.Run("rating bounds validated", func(t *testing.T) {
		svc := newTestService(&stubRepo{consultation: pendingConsultation()})

		_, err := svc.Update(context.Background(), "cons-1", &models.UpdateConsultationRequest{
			ActorID:   "stu-1",
			ActorRole: domain.RoleStudent,
			Rating:    ptr.Ptr(6),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestCancel(t *testing.T) {
	t.Run("participant cancels accepted consultation", func(t *testing.T) {
		c := pendingConsultation()
		c.Status = domain.StatusAccepted
		repo := &stubRepo{consultation: c}
		svc, cache, txMgr := newTestServiceFull(repo)

		resp, err := svc.Cancel(context.Background(), "cons-1", &models.CancelConsultationRequest{
			ActorID:   "stu-1",
			ActorRole: domain.RoleStudent,
			Reason:    ptr.Ptr("cambio de horario"),
		})
		require.NoError(t, err)
		assert.True(t, repo.cancelled)
		assert.Equal(t, "cancelled", resp.Status)
		// Освободившийся слот снова должен попадать в выдачу
		assert.Equal(t, []string{"psy-1:2026-09-07"}, cache.invalidated)
		assert.Equal(t, 1, txMgr.calls)
	})

	t.Run("cancelling pending keeps the slot cache", func(t *testing.T) {
		repo := &stubRepo{consultation: pendingConsultation()}
		svc, cache, _ := newTestServiceFull(repo)

		_, err := svc.Cancel(context.Background(), "cons-1", &models.CancelConsultationRequest{
			ActorID:   "stu-1",
			ActorRole: domain.RoleStudent,
		})
		require.NoError(t, err)
		assert.True(t, repo.cancelled)
		assert.Empty(t, cache.invalidated)
	})

	t.Run("completed cannot be cancelled", func(t *testing.T) {
		c := pendingConsultation()
		c.Status = domain.StatusCompleted
		svc := newTestService(&stubRepo{consultation: c})

		_, err := svc.Cancel(context.Background(), "cons-1", &models.CancelConsultationRequest{
			ActorID:   "stu-1",
			ActorRole: domain.RoleStudent,
		})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("repeated cancel is idempotent", func(t *testing.T) {
		c := pendingConsultation()
		c.Status = domain.StatusCancelled
		repo := &stubRepo{consultation: c}
		svc := newTestService(repo)

		resp, err := svc.Cancel(context.Background(), "cons-1", &models.CancelConsultationRequest{
			ActorID:   "stu-1",
			ActorRole: domain.RoleStudent,
		})
		require.NoError(t, err)
		assert.False(t, repo.cancelled)
		assert.Equal(t, "cancelled", resp.Status)
	})

	t.Run("stranger denied", func(t *testing.T) {
		svc := newTestService(&stubRepo{consultation: pendingConsultation()})

		_, err := svc.Cancel(context.Background(), "cons-1", &models.CancelConsultationRequest{
			ActorID:   "stu-9",
			ActorRole: domain.RoleStudent,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestGetStatistics(t *testing.T) {
	stats := &domain.ConsultationStatistics{
		Total:         4,
		ByStatus:      map[domain.ConsultationStatus]int{domain.StatusCompleted: 2, domain.StatusCancelled: 2},
		RatedCount:    2,
		AverageRating: 4.5,
	}

	t.Run("psychologist scoped to self", func(t *testing.T) {
		repo := &stubRepo{stats: stats}
		svc := newTestService(repo)

		resp, err := svc.GetStatistics(context.Background(), nil, "psy-1", domain.RolePsychologist)
		require.NoError(t, err)
		require.NotNil(t, repo.statsScope)
		assert.Equal(t, "psy-1", *repo.statsScope)
		assert.Equal(t, 4, resp.Total)
		assert.InDelta(t, 50.0, resp.CompletionRate, 1e-9)
	})

	t.Run("admin may query whole platform", func(t *testing.T) {
		repo := &stubRepo{stats: stats}
		svc := newTestService(repo)

		_, err := svc.GetStatistics(context.Background(), nil, "adm-1", domain.RoleAdmin)
		require.NoError(t, err)
		assert.Nil(t, repo.statsScope)
	})

	t.Run("student denied", func(t *testing.T) {
		svc := newTestService(&stubRepo{stats: stats})

		_, err := svc.GetStatistics(context.Background(), nil, "stu-1", domain.RoleStudent)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}
