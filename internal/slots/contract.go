package slots

import (
	"context"
	"time"

	"github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/domain"
)

// ScheduleRepository интерфейс хранилища еженедельных расписаний
type ScheduleRepository interface {
	// GetByMasterAndWeekday возвращает строку расписания мастера на день недели.
	// Отсутствие строки — schedule.ErrScheduleNotFound.
	GetByMasterAndWeekday(ctx context.Context, masterID int64, weekday int) (*domain.WorkSchedule, error)
}

// AbsenceRepository интерфейс хранилища отсутствий
type AbsenceRepository interface {
	// ListCovering возвращает отсутствия мастера, покрывающие дату
	ListCovering(ctx context.Context, masterID int64, date time.Time) ([]*domain.Absence, error)
}

// BookingRepository интерфейс хранилища бронирований
type BookingRepository interface {
	// ListOccupying возвращает бронирования мастера со статусами,
	// удерживающими время, пересекающие UTC-диапазон [fromUTC, toUTC)
	ListOccupying(ctx context.Context, masterID int64, fromUTC, toUTC time.Time) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
