package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

const table = "provider_availability"

// Repository репозиторий недельных расписаний мастеров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByProviderID получает расписание мастера
// Возвращает ErrAvailabilityNotFound, если расписание ещё не сохранялось
func (r *Repository) GetByProviderID(ctx context.Context, providerID string) (*domain.ProviderAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"provider_id",
		"weekly_schedule",
		"breaks",
		"created_at",
		"updated_at",
	).
		From(table).
		Where(squirrel.Eq{"provider_id": providerID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderID - build select query: %v", ErrBuildQuery, err)
	}

	var pa domain.ProviderAvailability
	var schedule, breaks days
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&pa.ID,
		&pa.ProviderID,
		&schedule,
		&breaks,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAvailabilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderID - scan availability: %v", ErrScanRow, err)
	}

	pa.WeeklySchedule = schedule
	pa.Breaks = breaks
	pa.CreatedAt = createdAt.Time
	pa.UpdatedAt = updatedAt.Time

	return &pa, nil
}

// Upsert сохраняет расписание мастера, заменяя существующее.
// ID и created_at существующей записи сохраняются.
func (r *Repository) Upsert(ctx context.Context, pa *domain.ProviderAvailability) (*domain.ProviderAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"provider_id",
			"weekly_schedule",
			"breaks",
		).
		Values(
			pa.ID,
			pa.ProviderID,
			days(pa.WeeklySchedule),
			days(pa.Breaks),
		).
		Suffix("ON CONFLICT (provider_id) DO UPDATE SET " +
			"weekly_schedule = EXCLUDED.weekly_schedule, " +
			"breaks = EXCLUDED.breaks, " +
			"updated_at = NOW() " +
			"RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&pa.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	pa.CreatedAt = createdAt.Time
	pa.UpdatedAt = updatedAt.Time

	return pa, nil
}

// Delete удаляет расписание мастера
func (r *Repository) Delete(ctx context.Context, providerID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"provider_id": providerID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAvailabilityNotFound
	}

	return nil
}
