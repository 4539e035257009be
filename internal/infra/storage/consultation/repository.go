package consultation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/orienta-vg/consultation-service/internal/domain"
	"github.com/orienta-vg/consultation-service/pkg/psqlbuilder"
	"github.com/orienta-vg/consultation-service/pkg/txmanager"
)

const table = "consultations"

var columns = []string{
	"id",
	"student_id",
	"psychologist_id",
	"scheduled_at",
	"duration_minutes",
	"status",
	"student_notes",
	"psychologist_notes",
	"recommendations",
	"feedback",
	"rating",
	"meeting_url",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий консультаций
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория консультаций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new consultation in PENDING state.
func (r *Repository) Create(ctx context.Context, c *domain.Consultation) (*domain.Consultation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	c.ID = uuid.NewString()

	query, args, err := psqlbuilder.Insert(table).
		Columns("id", "student_id", "psychologist_id", "scheduled_at", "duration_minutes", "status", "student_notes").
		Values(c.ID, c.StudentID, c.PsychologistID, c.ScheduledAt, c.DurationMinutes, c.Status, c.StudentNotes).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return c, nil
}

// GetByID loads a consultation by id. Inside a transaction the row is locked
// (FOR UPDATE) so a read-check-write over it serializes with other writers.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Consultation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)

	c, err := scanConsultation(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrConsultationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan consultation: %v", ErrScanRow, err)
	}

	return c, nil
}

// GetAcceptedInRange returns a psychologist's accepted consultations whose
// interval intersects [from, to), ordered by start. Inside a transaction the
// rows are locked (FOR UPDATE) so a concurrent admission for the same
// psychologist serializes behind this read.
func (r *Repository) GetAcceptedInRange(ctx context.Context, psychologistID string, from, to time.Time) ([]*domain.Consultation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{
			"psychologist_id": psychologistID,
			"status":          domain.StatusAccepted,
		}).
		Where(squirrel.Lt{"scheduled_at": to}).
		Where(squirrel.Expr("scheduled_at + duration_minutes * INTERVAL '1 minute' > ?", from)).
		OrderBy("scheduled_at ASC")

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAcceptedInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAcceptedInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanConsultations(rows)
}

// GetByStudent returns a student's consultations, newest first.
func (r *Repository) GetByStudent(ctx context.Context, studentID string, status *domain.ConsultationStatus) ([]*domain.Consultation, error) {
	return r.getByParticipant(ctx, "student_id", studentID, status, "GetByStudent")
}

// GetByPsychologist returns a psychologist's consultations, newest first.
func (r *Repository) GetByPsychologist(ctx context.Context, psychologistID string, status *domain.ConsultationStatus) ([]*domain.Consultation, error) {
	return r.getByParticipant(ctx, "psychologist_id", psychologistID, status, "GetByPsychologist")
}

func (r *Repository) getByParticipant(ctx context.Context, column, id string, status *domain.ConsultationStatus, method string) ([]*domain.Consultation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{column: id}).
		OrderBy("scheduled_at DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, method, err)
	}
	defer rows.Close()

	return r.scanConsultations(rows)
}

// Update persists the mutable fields of a consultation (status, notes,
// rating, feedback, meeting URL) in one atomic write.
func (r *Repository) Update(ctx context.Context, c *domain.Consultation) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", c.Status).
		Set("student_notes", c.StudentNotes).
		Set("psychologist_notes", c.PsychologistNotes).
		Set("recommendations", c.Recommendations).
		Set("feedback", c.Feedback).
		Set("rating", c.Rating).
		Set("meeting_url", c.MeetingURL).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": c.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Update")
}

// Cancel marks a consultation cancelled with an optional reason.
func (r *Repository) Cancel(ctx context.Context, id string, reason *string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Cancel")
}

// GetStatistics aggregates status counts and ratings, optionally scoped to a
// single psychologist.
func (r *Repository) GetStatistics(ctx context.Context, psychologistID *string) (*domain.ConsultationStatistics, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	countsBuilder := psqlbuilder.Select("status", "COUNT(*)").
		From(table).
		GroupBy("status")
	if psychologistID != nil {
		countsBuilder = countsBuilder.Where(squirrel.Eq{"psychologist_id": *psychologistID})
	}

	query, args, err := countsBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetStatistics - build counts query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetStatistics - execute counts query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	stats := &domain.ConsultationStatistics{
		ByStatus: map[domain.ConsultationStatus]int{
			domain.StatusPending:   0,
			domain.StatusAccepted:  0,
			domain.StatusRejected:  0,
			domain.StatusCompleted: 0,
			domain.StatusCancelled: 0,
		},
	}

	for rows.Next() {
		var (
			status domain.ConsultationStatus
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("%w: GetStatistics - scan count: %v", ErrScanRow, err)
		}
		stats.ByStatus[status] = count
		stats.Total += count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetStatistics - counts rows error: %v", ErrScanRow, err)
	}

	ratingBuilder := psqlbuilder.Select("COUNT(rating)", "COALESCE(AVG(rating), 0)").
		From(table).
		Where("rating IS NOT NULL")
	if psychologistID != nil {
		ratingBuilder = ratingBuilder.Where(squirrel.Eq{"psychologist_id": *psychologistID})
	}

	query, args, err = ratingBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetStatistics - build rating query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&stats.RatedCount, &stats.AverageRating); err != nil {
		return nil, fmt.Errorf("%w: GetStatistics - scan rating: %v", ErrScanRow, err)
	}

	return stats, nil
}

func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, method string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}
	if rowsAffected == 0 {
		return ErrConsultationNotFound
	}

	return nil
}

func (r *Repository) scanConsultations(rows *sql.Rows) ([]*domain.Consultation, error) {
	consultations := make([]*domain.Consultation, 0)

	for rows.Next() {
		c, err := scanConsultation(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: scanConsultations - scan row: %v", ErrScanRow, err)
		}
		consultations = append(consultations, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanConsultations - rows error: %v", ErrScanRow, err)
	}

	return consultations, nil
}

func scanConsultation(scan func(dest ...interface{}) error) (*domain.Consultation, error) {
	var (
		c         domain.Consultation
		rating    sql.NullInt64
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)

	err := scan(
		&c.ID,
		&c.StudentID,
		&c.PsychologistID,
		&c.ScheduledAt,
		&c.DurationMinutes,
		&c.Status,
		&c.StudentNotes,
		&c.PsychologistNotes,
		&c.Recommendations,
		&c.Feedback,
		&rating,
		&c.MeetingURL,
		&c.CancellationReason,
		&c.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if rating.Valid {
		v := int(rating.Int64)
		c.Rating = &v
	}
	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return &c, nil
}
