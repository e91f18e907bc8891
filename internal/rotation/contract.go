package rotation

import (
	"context"
	"time"

	"github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/domain"
)

// RotationRepository интерфейс хранилища состояния ротации
type RotationRepository interface {
	// GetStates возвращает состояния ротации для мастеров команды.
	// Отсутствующие строки просто не включаются в результат.
	GetStates(ctx context.Context, teamID int64, masterIDs []int64) ([]*domain.RotationState, error)

	// UpsertShown фиксирует показ мастера: создает строку при отсутствии,
	// иначе обновляет позицию и отметку показа с атомарным инкрементом
	// счетчика на стороне хранилища
	UpsertShown(ctx context.Context, teamID, masterID int64, position int, shownAt time.Time) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
