package request_consultation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orienta-vg/consultation-service/internal/domain"
	"github.com/orienta-vg/consultation-service/internal/integrations/userdirectory"
	"github.com/orienta-vg/consultation-service/pkg/ptr"
	"github.com/orienta-vg/consultation-service/pkg/types"
)

const testOffset = -300 // UTC-5

var monday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

type stubConsultationRepo struct {
	accepted []*domain.Consultation
	created  *domain.Consultation
}

func (s *stubConsultationRepo) Create(_ context.Context, c *domain.Consultation) (*domain.Consultation, error) {
	created := *c
	created.ID = "cons-1"
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	s.created = &created
	return &created, nil
}

func (s *stubConsultationRepo) GetAcceptedInRange(_ context.Context, _ string, _, _ time.Time) ([]*domain.Consultation, error) {
	return s.accepted, nil
}

type stubAvailabilityRepo struct {
	windows []*domain.AvailabilityWindow
}

func (s *stubAvailabilityRepo) GetActiveByDay(_ context.Context, _ string, _ time.Weekday) ([]*domain.AvailabilityWindow, error) {
	return s.windows, nil
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

type stubInvalidator struct {
	invalidated []string
}

func (s *stubInvalidator) Invalidate(_ context.Context, psychologistID string, date time.Time) error {
	s.invalidated = append(s.invalidated, psychologistID+":"+date.Format(domain.DateFormat))
	return nil
}

type stubMetrics struct{ created int }

func (s *stubMetrics) IncConsultationsCreated() { s.created++ }

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func activePsychologist() *userdirectory.User {
	return &userdirectory.User{ID: "psy-1", Role: "psychologist", IsActive: true}
}

func mondayMorning() []*domain.AvailabilityWindow {
	return []*domain.AvailabilityWindow{{
		PsychologistID: "psy-1",
		DayOfWeek:      time.Monday,
		StartMinute:    9 * 60,
		EndMinute:      12 * 60,
		IsActive:       true,
	}}
}

func newTestUseCase(
	consultationRepo *stubConsultationRepo,
	availabilityRepo *stubAvailabilityRepo,
	userClient *stubUserClient,
	cache *stubInvalidator,
	m *stubMetrics,
	now time.Time,
) *UseCase {
	var cacheIface SlotCache
	if cache != nil {
		cacheIface = cache
	}
	var metricsIface Metrics
	if m != nil {
		metricsIface = m
	}

	uc := NewUseCase(consultationRepo, availabilityRepo, userClient, cacheIface, metricsIface, stubTxManager{}, nopLogger{}, testOffset)
	uc.timeProvider = &fixedClock{now: now}
	return uc
}

func validRequest() *Request {
	return &Request{
		StudentID:      "stu-1",
		PsychologistID: "psy-1",
		Date:           monday,
		StartTime:      "09:00",
	}
}

func TestExecute(t *testing.T) {
	beforeMonday := monday.Add(-24 * time.Hour)

	t.Run("creates pending consultation", func(t *testing.T) {
		repo := &stubConsultationRepo{}
		cache := &stubInvalidator{}
		m := &stubMetrics{}
		uc := newTestUseCase(repo, &stubAvailabilityRepo{windows: mondayMorning()},
			&stubUserClient{user: activePsychologist()}, cache, m, beforeMonday)

		resp, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)

		assert.Equal(t, "cons-1", resp.ID)
		assert.Equal(t, string(domain.StatusPending), resp.Status)
		assert.Equal(t, domain.DefaultDurationMinutes, resp.DurationMinutes)
		// 09:00 местного времени UTC-5 это 14:00 UTC
		assert.Equal(t, monday.Add(14*time.Hour), resp.ScheduledAt)
		assert.Equal(t, []string{"psy-1:2026-09-07"}, cache.invalidated)
		assert.Equal(t, 1, m.created)
	})

	t.Run("past time rejected", func(t *testing.T) {
		uc := newTestUseCase(&stubConsultationRepo{}, &stubAvailabilityRepo{windows: mondayMorning()},
			&stubUserClient{user: activePsychologist()}, nil, nil, monday.Add(15*time.Hour))

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrPastDate)
	})

	t.Run("outside availability rejected", func(t *testing.T) {
		uc := newTestUseCase(&stubConsultationRepo{}, &stubAvailabilityRepo{windows: mondayMorning()},
			&stubUserClient{user: activePsychologist()}, nil, nil, beforeMonday)

		req := validRequest()
		req.StartTime = "13:00"

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrOutsideAvailability)
	})

	t.Run("start inside window admitted even when session runs past close", func(t *testing.T) {
		repo := &stubConsultationRepo{}
		uc := newTestUseCase(repo, &stubAvailabilityRepo{windows: mondayMorning()},
			&stubUserClient{user: activePsychologist()}, nil, nil, beforeMonday)

		// Окно закрывается в 12:00, но решает только минута начала
		req := validRequest()
		req.StartTime = "11:30"
		req.DurationMinutes = ptr.Ptr(60)

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, types.InstantAt(monday, 11*60+30, testOffset), resp.ScheduledAt)
		require.NotNil(t, repo.created)
	})

	t.Run("overlap with accepted consultation rejected", func(t *testing.T) {
		taken := &domain.Consultation{
			ScheduledAt:     types.InstantAt(monday, 9*60, testOffset),
			DurationMinutes: 60,
			Status:          domain.StatusAccepted,
		}
		uc := newTestUseCase(&stubConsultationRepo{accepted: []*domain.Consultation{taken}},
			&stubAvailabilityRepo{windows: mondayMorning()},
			&stubUserClient{user: activePsychologist()}, nil, nil, beforeMonday)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrSlotTaken)
	})

	t.Run("boundary touching accepted consultation admitted", func(t *testing.T) {
		taken := &domain.Consultation{
			ScheduledAt:     types.InstantAt(monday, 9*60, testOffset),
			DurationMinutes: 60,
			Status:          domain.StatusAccepted,
		}
		uc := newTestUseCase(&stubConsultationRepo{accepted: []*domain.Consultation{taken}},
			&stubAvailabilityRepo{windows: mondayMorning()},
			&stubUserClient{user: activePsychologist()}, nil, nil, beforeMonday)

		req := validRequest()
		req.StartTime = "10:00"

		_, err := uc.Execute(context.Background(), req)
		assert.NoError(t, err)
	})

	t.Run("unknown psychologist rejected", func(t *testing.T) {
		uc := newTestUseCase(&stubConsultationRepo{}, &stubAvailabilityRepo{},
			&stubUserClient{err: userdirectory.ErrUserNotFound}, nil, nil, beforeMonday)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrPsychologistNotFound)
	})

	t.Run("inactive psychologist rejected", func(t *testing.T) {
		user := activePsychologist()
		user.IsActive = false
		uc := newTestUseCase(&stubConsultationRepo{}, &stubAvailabilityRepo{},
			&stubUserClient{user: user}, nil, nil, beforeMonday)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrPsychologistNotFound)
	})

	t.Run("duration bounds enforced", func(t *testing.T) {
		uc := newTestUseCase(&stubConsultationRepo{}, &stubAvailabilityRepo{windows: mondayMorning()},
			&stubUserClient{user: activePsychologist()}, nil, nil, beforeMonday)

		req := validRequest()
		req.DurationMinutes = ptr.Ptr(15)

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidDuration)
	})

	t.Run("self booking rejected", func(t *testing.T) {
		uc := newTestUseCase(&stubConsultationRepo{}, &stubAvailabilityRepo{},
			&stubUserClient{user: activePsychologist()}, nil, nil, beforeMonday)

		req := validRequest()
		req.StudentID = req.PsychologistID

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
