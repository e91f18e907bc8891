package absence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/domain"
	"github.com/jzhekatroy/cursor-harmony-hub-sub001/pkg/dbmetrics"
	"github.com/jzhekatroy/cursor-harmony-hub-sub001/pkg/psqlbuilder"
)

// Repository репозиторий для работы с отсутствиями мастеров (отпуска, больничные)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отсутствий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает отсутствие мастера
func (r *Repository) Create(ctx context.Context, absence *domain.Absence) (*domain.Absence, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("absences").
		Columns(
			"master_id",
			"start_date",
			"end_date",
			"reason",
		).
		Values(
			absence.MasterID,
			absence.StartDate,
			absence.EndDate,
			absence.Reason,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&absence.ID,
		&createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	absence.CreatedAt = createdAt.Time

	return absence, nil
}

// ListCovering получает отсутствия мастера, покрывающие конкретную дату
func (r *Repository) ListCovering(ctx context.Context, masterID int64, date time.Time) ([]*domain.Absence, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"master_id",
		"start_date",
		"end_date",
		"reason",
		"created_at",
	).
		From("absences").
		Where(squirrel.Eq{"master_id": masterID}).
		Where(squirrel.LtOrEq{"start_date": date}).
		Where(squirrel.GtOrEq{"end_date": date}).
		OrderBy("start_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListCovering - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCovering - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAbsences(rows)
}

// ListByMaster получает все отсутствия мастера
func (r *Repository) ListByMaster(ctx context.Context, masterID int64) ([]*domain.Absence, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"master_id",
		"start_date",
		"end_date",
		"reason",
		"created_at",
	).
		From("absences").
		Where(squirrel.Eq{"master_id": masterID}).
		OrderBy("start_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByMaster - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByMaster - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAbsences(rows)
}

// Delete удаляет отсутствие мастера
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("absences").
		Where(squirrel.Eq{"id": id}).
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
		return ErrAbsenceNotFound
	}

	return nil
}

// scanAbsences сканирует результаты запроса в слайс отсутствий
func (r *Repository) scanAbsences(rows *sql.Rows) ([]*domain.Absence, error) {
	absences := make([]*domain.Absence, 0)

	for rows.Next() {
		var absence domain.Absence
		var createdAt sql.NullTime

		err := rows.Scan(
			&absence.ID,
			&absence.MasterID,
			&absence.StartDate,
			&absence.EndDate,
			&absence.Reason,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAbsences - scan row: %v", ErrScanRow, err)
		}

		absence.CreatedAt = createdAt.Time

		absences = append(absences, &absence)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAbsences - rows error: %v", ErrScanRow, err)
	}

	return absences, nil
}
