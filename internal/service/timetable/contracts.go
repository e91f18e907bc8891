package timetable

import (
	"context"
	"time"

	"github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/domain"
)

// ScheduleRepository интерфейс репозитория недельных расписаний
type ScheduleRepository interface {
	GetByMasterAndWeekday(ctx context.Context, masterID int64, weekday int) (*domain.WorkSchedule, error)
	ListByMaster(ctx context.Context, masterID int64) ([]*domain.WorkSchedule, error)
	Upsert(ctx context.Context, schedule *domain.WorkSchedule) (*domain.WorkSchedule, error)
	DeleteByMasterAndWeekday(ctx context.Context, masterID int64, weekday int) error
}

// AbsenceRepository интерфейс репозитория отсутствий
type AbsenceRepository interface {
	Create(ctx context.Context, absence *domain.Absence) (*domain.Absence, error)
	ListByMaster(ctx context.Context, masterID int64) ([]*domain.Absence, error)
	ListCovering(ctx context.Context, masterID int64, date time.Time) ([]*domain.Absence, error)
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
