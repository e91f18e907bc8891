package update_schedule

import (
	"context"

	"github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/service/timetable/models"
)

type TimetableService interface {
	UpsertSchedule(ctx context.Context, req *models.UpsertScheduleRequest) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
