package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/domain"
	"github.com/jzhekatroy/cursor-harmony-hub-sub001/pkg/dbmetrics"
	"github.com/jzhekatroy/cursor-harmony-hub-sub001/pkg/psqlbuilder"
)

// Repository репозиторий для работы с недельными расписаниями мастеров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByMasterAndWeekday получает расписание мастера на конкретный день недели.
// Возвращает ErrScheduleNotFound, если мастер в этот день не работает.
func (r *Repository) GetByMasterAndWeekday(ctx context.Context, masterID int64, weekday int) (*domain.WorkSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"master_id",
		"weekday",
		"start_time",
		"end_time",
		"break_start",
		"break_end",
		"created_at",
		"updated_at",
	).
		From("work_schedules").
		Where(squirrel.Eq{"master_id": masterID, "weekday": weekday}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByMasterAndWeekday - build select query: %v", ErrBuildQuery, err)
	}

	var schedule domain.WorkSchedule
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&schedule.ID,
		&schedule.MasterID,
		&schedule.Weekday,
		&schedule.StartTime,
		&schedule.EndTime,
		&schedule.BreakStart,
		&schedule.BreakEnd,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMasterAndWeekday - scan schedule: %v", ErrScanRow, err)
	}

	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	return &schedule, nil
}

// ListByMaster получает все расписания мастера, отсортированные по дню недели
func (r *Repository) ListByMaster(ctx context.Context, masterID int64) ([]*domain.WorkSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"master_id",
		"weekday",
		"start_time",
		"end_time",
		"break_start",
		"break_end",
		"created_at",
		"updated_at",
	).
		From("work_schedules").
		Where(squirrel.Eq{"master_id": masterID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByMaster - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByMaster - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	schedules := make([]*domain.WorkSchedule, 0)
	for rows.Next() {
		var schedule domain.WorkSchedule
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&schedule.ID,
			&schedule.MasterID,
			&schedule.Weekday,
			&schedule.StartTime,
			&schedule.EndTime,
			&schedule.BreakStart,
			&schedule.BreakEnd,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByMaster - scan row: %v", ErrScanRow, err)
		}

		schedule.CreatedAt = createdAt.Time
		schedule.UpdatedAt = updatedAt.Time

		schedules = append(schedules, &schedule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByMaster - rows error: %v", ErrScanRow, err)
	}

	return schedules, nil
}

// Upsert создает или обновляет расписание мастера на день недели.
// Уникальность пары (master_id, weekday) обеспечивается ограничением в БД.
func (r *Repository) Upsert(ctx context.Context, schedule *domain.WorkSchedule) (*domain.WorkSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("work_schedules").
		Columns(
			"master_id",
			"weekday",
			"start_time",
			"end_time",
			"break_start",
			"break_end",
		).
		Values(
			schedule.MasterID,
			schedule.Weekday,
			schedule.StartTime,
			schedule.EndTime,
			schedule.BreakStart,
			schedule.BreakEnd,
		).
		Suffix(`ON CONFLICT (master_id, weekday) DO UPDATE SET
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			break_start = EXCLUDED.break_start,
			break_end = EXCLUDED.break_end,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&schedule.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	return schedule, nil
}

// DeleteByMasterAndWeekday удаляет расписание мастера на день недели
func (r *Repository) DeleteByMasterAndWeekday(ctx context.Context, masterID int64, weekday int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("work_schedules").
		Where(squirrel.Eq{"master_id": masterID, "weekday": weekday}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteByMasterAndWeekday - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteByMasterAndWeekday - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteByMasterAndWeekday - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrScheduleNotFound
	}

	return nil
}
