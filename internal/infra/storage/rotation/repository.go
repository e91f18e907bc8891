package rotation

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

// Repository репозиторий для работы со счетчиками ротации мастеров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория ротации
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetStates получает состояния ротации для набора мастеров команды.
// Мастера без записи в таблице отсутствуют в результате — вызывающая
// сторона трактует их как show_count = 0.
func (r *Repository) GetStates(ctx context.Context, teamID int64, masterIDs []int64) ([]*domain.RotationState, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if len(masterIDs) == 0 {
		return []*domain.RotationState{}, nil
	}

	query, args, err := psqlbuilder.Select(
		"team_id",
		"master_id",
		"position",
		"show_count",
		"last_shown_at",
		"updated_at",
	).
		From("rotation_state").
		Where(squirrel.Eq{"team_id": teamID, "master_id": masterIDs}).
		OrderBy("master_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetStates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetStates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	states := make([]*domain.RotationState, 0, len(masterIDs))
	for rows.Next() {
		var state domain.RotationState
		var lastShownAt, updatedAt sql.NullTime

		err := rows.Scan(
			&state.TeamID,
			&state.MasterID,
			&state.Position,
			&state.ShowCount,
			&lastShownAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetStates - scan row: %v", ErrScanRow, err)
		}

		state.LastShownAt = lastShownAt.Time
		state.UpdatedAt = updatedAt.Time

		states = append(states, &state)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetStates - rows error: %v", ErrScanRow, err)
	}

	return states, nil
}

// UpsertShown фиксирует показ мастера в выдаче: инкрементирует show_count
// и обновляет позицию. Инкремент выполняется на стороне БД, поэтому
// конкурентные показы не теряют счетчик.
func (r *Repository) UpsertShown(ctx context.Context, teamID, masterID int64, position int, shownAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("rotation_state").
		Columns(
			"team_id",
			"master_id",
			"position",
			"show_count",
			"last_shown_at",
		).
		Values(
			teamID,
			masterID,
			position,
			1,
			shownAt,
		).
		Suffix(`ON CONFLICT (team_id, master_id) DO UPDATE SET
			position = EXCLUDED.position,
			show_count = rotation_state.show_count + 1,
			last_shown_at = EXCLUDED.last_shown_at,
			updated_at = NOW()`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpsertShown - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertShown - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
