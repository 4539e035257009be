package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orienta-vg/consultation-service/internal/domain"
	availabilityRepo "github.com/orienta-vg/consultation-service/internal/infra/storage/availability"
	"github.com/orienta-vg/consultation-service/internal/integrations/userdirectory"
	"github.com/orienta-vg/consultation-service/internal/service/availability/models"
	"github.com/orienta-vg/consultation-service/pkg/types"
)

type stubWindowRepo struct {
	windows []*domain.AvailabilityWindow
	created *domain.AvailabilityWindow
	updated bool

	deactivateErr error
}

func (s *stubWindowRepo) Create(_ context.Context, w *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	created := *w
	created.ID = "win-1"
	s.created = &created
	return &created, nil
}

func (s *stubWindowRepo) GetActiveByDay(_ context.Context, _ string, day time.Weekday) ([]*domain.AvailabilityWindow, error) {
	out := make([]*domain.AvailabilityWindow, 0)
	for _, w := range s.windows {
		if w.DayOfWeek == day && w.IsActive {
			out = append(out, w)
		}
	}
	return out, nil
}

func (s *stubWindowRepo) GetActiveByPsychologist(_ context.Context, _ string) ([]*domain.AvailabilityWindow, error) {
	return s.windows, nil
}

func (s *stubWindowRepo) GetByIDAndOwner(_ context.Context, id, psychologistID string) (*domain.AvailabilityWindow, error) {
	for _, w := range s.windows {
		if w.ID == id && w.PsychologistID == psychologistID {
			copied := *w
			return &copied, nil
		}
	}
	return nil, availabilityRepo.ErrWindowNotFound
}

func (s *stubWindowRepo) UpdateBounds(_ context.Context, _ string, _, _ int) error {
	s.updated = true
	return nil
}

func (s *stubWindowRepo) Deactivate(_ context.Context, _, _ string) error {
	return s.deactivateErr
}

type stubUserClient struct {
	user *userdirectory.User
	err  error
}

func (s *stubUserClient) GetUser(_ context.Context, _ string) (*userdirectory.User, error) {
	return s.user, s.err
}

type stubTxManager struct{}

func (stubTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func activePsychologist() *userdirectory.User {
	return &userdirectory.User{ID: "psy-1", Role: "psychologist", IsActive: true}
}

func mondayWindow(id string, start, end int) *domain.AvailabilityWindow {
	return &domain.AvailabilityWindow{
		ID:             id,
		PsychologistID: "psy-1",
		DayOfWeek:      time.Monday,
		StartMinute:    start,
		EndMinute:      end,
		IsActive:       true,
	}
}

func newTestService(repo *stubWindowRepo, userClient *stubUserClient) *Service {
	return NewService(repo, userClient, stubTxManager{}, nopLogger{})
}

func createRequest(start, end types.TimeString) *models.CreateWindowRequest {
	return &models.CreateWindowRequest{
		PsychologistID: "psy-1",
		DayOfWeek:      int(time.Monday),
		StartTime:      start,
		EndTime:        end,
	}
}

func TestCreate(t *testing.T) {
	t.Run("creates window", func(t *testing.T) {
		repo := &stubWindowRepo{}
		svc := newTestService(repo, &stubUserClient{user: activePsychologist()})

		resp, err := svc.Create(context.Background(), createRequest("09:00", "13:00"))
		require.NoError(t, err)
		assert.Equal(t, "win-1", resp.ID)
		assert.Equal(t, "09:00", resp.StartTime)
		assert.Equal(t, "13:00", resp.EndTime)
		assert.True(t, resp.IsActive)
		require.NotNil(t, repo.created)
		assert.Equal(t, 9*60, repo.created.StartMinute)
		assert.Equal(t, 13*60, repo.created.EndMinute)
	})

	t.Run("inverted range rejected", func(t *testing.T) {
		svc := newTestService(&stubWindowRepo{}, &stubUserClient{user: activePsychologist()})

		_, err := svc.Create(context.Background(), createRequest("13:00", "09:00"))
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("empty range rejected", func(t *testing.T) {
		svc := newTestService(&stubWindowRepo{}, &stubUserClient{user: activePsychologist()})

		_, err := svc.Create(context.Background(), createRequest("09:00", "09:00"))
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("invalid day rejected", func(t *testing.T) {
		svc := newTestService(&stubWindowRepo{}, &stubUserClient{user: activePsychologist()})

		req := createRequest("09:00", "13:00")
		req.DayOfWeek = 7

		_, err := svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidDay)
	})

	t.Run("overlap with existing window rejected", func(t *testing.T) {
		repo := &stubWindowRepo{windows: []*domain.AvailabilityWindow{mondayWindow("win-1", 9*60, 12*60)}}
		svc := newTestService(repo, &stubUserClient{user: activePsychologist()})

		_, err := svc.Create(context.Background(), createRequest("11:00", "14:00"))
		assert.ErrorIs(t, err, ErrWindowOverlap)
	})

	t.Run("touching windows allowed", func(t *testing.T) {
		repo := &stubWindowRepo{windows: []*domain.AvailabilityWindow{mondayWindow("win-1", 9*60, 12*60)}}
		svc := newTestService(repo, &stubUserClient{user: activePsychologist()})

		_, err := svc.Create(context.Background(), createRequest("12:00", "14:00"))
		assert.NoError(t, err)
	})

	t.Run("unknown psychologist rejected", func(t *testing.T) {
		svc := newTestService(&stubWindowRepo{}, &stubUserClient{err: userdirectory.ErrUserNotFound})

		_, err := svc.Create(context.Background(), createRequest("09:00", "13:00"))
		assert.ErrorIs(t, err, ErrPsychologistNotFound)
	})
}

func TestUpdate(t *testing.T) {
	t.Run("updates bounds", func(t *testing.T) {
		repo := &stubWindowRepo{windows: []*domain.AvailabilityWindow{mondayWindow("win-1", 9*60, 12*60)}}
		svc := newTestService(repo, &stubUserClient{user: activePsychologist()})

		start := types.TimeString("10:00")
		resp, err := svc.Update(context.Background(), "win-1", &models.UpdateWindowRequest{
			PsychologistID: "psy-1",
			StartTime:      &start,
		})
		require.NoError(t, err)
		assert.True(t, repo.updated)
		assert.Equal(t, "10:00", resp.StartTime)
		assert.Equal(t, "12:00", resp.EndTime)
	})

	t.Run("foreign window reports not found", func(t *testing.T) {
		repo := &stubWindowRepo{windows: []*domain.AvailabilityWindow{mondayWindow("win-1", 9*60, 12*60)}}
		svc := newTestService(repo, &stubUserClient{user: activePsychologist()})

		start := types.TimeString("10:00")
		_, err := svc.Update(context.Background(), "win-1", &models.UpdateWindowRequest{
			PsychologistID: "psy-2",
			StartTime:      &start,
		})
		assert.ErrorIs(t, err, ErrWindowNotFound)
	})

	t.Run("new bounds may not overlap siblings", func(t *testing.T) {
		repo := &stubWindowRepo{windows: []*domain.AvailabilityWindow{
			mondayWindow("win-1", 9*60, 11*60),
			mondayWindow("win-2", 12*60, 14*60),
		}}
		svc := newTestService(repo, &stubUserClient{user: activePsychologist()})

		end := types.TimeString("13:00")
		_, err := svc.Update(context.Background(), "win-1", &models.UpdateWindowRequest{
			PsychologistID: "psy-1",
			EndTime:        &end,
		})
		assert.ErrorIs(t, err, ErrWindowOverlap)
	})

	t.Run("inverted result rejected", func(t *testing.T) {
		repo := &stubWindowRepo{windows: []*domain.AvailabilityWindow{mondayWindow("win-1", 9*60, 12*60)}}
		svc := newTestService(repo, &stubUserClient{user: activePsychologist()})

		start := types.TimeString("13:00")
		_, err := svc.Update(context.Background(), "win-1", &models.UpdateWindowRequest{
			PsychologistID: "psy-1",
			StartTime:      &start,
		})
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})
}

func TestDeactivate(t *testing.T) {
	t.Run("deactivates window", func(t *testing.T) {
		svc := newTestService(&stubWindowRepo{}, &stubUserClient{user: activePsychologist()})
		assert.NoError(t, svc.Deactivate(context.Background(), "win-1", "psy-1"))
	})

	t.Run("missing window reported", func(t *testing.T) {
		repo := &stubWindowRepo{deactivateErr: availabilityRepo.ErrWindowNotFound}
		svc := newTestService(repo, &stubUserClient{user: activePsychologist()})

		err := svc.Deactivate(context.Background(), "win-9", "psy-1")
		assert.ErrorIs(t, err, ErrWindowNotFound)
	})
}

func TestListByPsychologist(t *testing.T) {
	repo := &stubWindowRepo{windows: []*domain.AvailabilityWindow{
		mondayWindow("win-1", 9*60, 12*60),
		mondayWindow("win-2", 14*60, 16*60),
	}}
	svc := newTestService(repo, &stubUserClient{user: activePsychologist()})

	resp, err := svc.ListByPsychologist(context.Background(), "psy-1")
	require.NoError(t, err)
	require.Len(t, resp.Windows, 2)
	assert.Equal(t, "09:00", resp.Windows[0].StartTime)
	assert.Equal(t, "14:00", resp.Windows[1].StartTime)
}
