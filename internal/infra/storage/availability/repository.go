package availability

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

const table = "availability_windows"

var columns = []string{
	"id",
	"psychologist_id",
	"day_of_week",
	"start_minute",
	"end_minute",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий окон доступности психологов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория окон доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new window. The id is generated here so callers never hand
// out identifiers.
func (r *Repository) Create(ctx context.Context, window *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	window.ID = uuid.NewString()

	query, args, err := psqlbuilder.Insert(table).
		Columns("id", "psychologist_id", "day_of_week", "start_minute", "end_minute", "is_active").
		Values(window.ID, window.PsychologistID, int(window.DayOfWeek), window.StartMinute, window.EndMinute, window.IsActive).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	window.CreatedAt = createdAt.Time
	window.UpdatedAt = updatedAt.Time

	return window, nil
}

// GetActiveByDay returns the active windows of a psychologist on one weekday,
// ordered by start minute. Inside a transaction the rows are locked so the
// overlap check in window creation cannot race a concurrent insert.
func (r *Repository) GetActiveByDay(ctx context.Context, psychologistID string, day time.Weekday) ([]*domain.AvailabilityWindow, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{
			"psychologist_id": psychologistID,
			"day_of_week":     int(day),
			"is_active":       true,
		}).
		OrderBy("start_minute ASC")

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByDay - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanWindows(rows)
}

// GetActiveByPsychologist returns every active window of a psychologist,
// ordered by weekday then start minute.
func (r *Repository) GetActiveByPsychologist(ctx context.Context, psychologistID string) ([]*domain.AvailabilityWindow, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"psychologist_id": psychologistID, "is_active": true}).
		OrderBy("day_of_week ASC", "start_minute ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByPsychologist - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByPsychologist - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanWindows(rows)
}

// GetByIDAndOwner loads a window only when it belongs to the given
// psychologist. A foreign id reports not-found, never forbidden.
func (r *Repository) GetByIDAndOwner(ctx context.Context, id, psychologistID string) (*domain.AvailabilityWindow, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id, "psychologist_id": psychologistID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDAndOwner - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)

	window, err := scanWindow(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrWindowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDAndOwner - scan window: %v", ErrScanRow, err)
	}

	return window, nil
}

// UpdateBounds rewrites the time bounds of a window.
func (r *Repository) UpdateBounds(ctx context.Context, id string, startMinute, endMinute int) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("start_minute", startMinute).
		Set("end_minute", endMinute).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateBounds - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateBounds")
}

// Deactivate soft-deletes a window owned by the given psychologist.
func (r *Repository) Deactivate(ctx context.Context, id, psychologistID string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "psychologist_id": psychologistID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Deactivate")
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
		return ErrWindowNotFound
	}

	return nil
}

func (r *Repository) scanWindows(rows *sql.Rows) ([]*domain.AvailabilityWindow, error) {
	windows := make([]*domain.AvailabilityWindow, 0)

	for rows.Next() {
		window, err := scanWindow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: scanWindows - scan row: %v", ErrScanRow, err)
		}
		windows = append(windows, window)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanWindows - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}

func scanWindow(scan func(dest ...interface{}) error) (*domain.AvailabilityWindow, error) {
	var (
		window    domain.AvailabilityWindow
		dayOfWeek int
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)

	err := scan(
		&window.ID,
		&window.PsychologistID,
		&dayOfWeek,
		&window.StartMinute,
		&window.EndMinute,
		&window.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	window.DayOfWeek = time.Weekday(dayOfWeek)
	window.CreatedAt = createdAt.Time
	window.UpdatedAt = updatedAt.Time

	return &window, nil
}
