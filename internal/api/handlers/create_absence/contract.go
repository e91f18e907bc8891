package create_absence

import (
	"context"

	"github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/service/timetable/models"
)

type TimetableService interface {
	CreateAbsence(ctx context.Context, req *models.CreateAbsenceRequest) (*models.AbsenceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
