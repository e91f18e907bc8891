package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	scheduleRepo "github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/infra/storage/schedule"
	"github.com/jzhekatroy/cursor-harmony-hub-sub001/pkg/timegrid"
)

// WorkWindowResolver вычисляет эффективное рабочее окно мастера на дату
// из еженедельного расписания и периодов отсутствия
type WorkWindowResolver struct {
	scheduleRepo ScheduleRepository
	absenceRepo  AbsenceRepository
	logger       Logger
}

// NewWorkWindowResolver создает новый резолвер рабочих окон
func NewWorkWindowResolver(
	scheduleRepo ScheduleRepository,
	absenceRepo AbsenceRepository,
	logger Logger,
) *WorkWindowResolver {
	return &WorkWindowResolver{
		scheduleRepo: scheduleRepo,
		absenceRepo:  absenceRepo,
		logger:       logger,
	}
}

// Resolve возвращает рабочее окно мастера на дату либо причину,
// по которой мастер не работает.
// Отсутствие побеждает всегда: даже при существующей строке расписания
// дата, покрытая отсутствием, дает NotWorking(absence).
func (r *WorkWindowResolver) Resolve(ctx context.Context, masterID int64, date time.Time) (WindowResolution, error) {
	weekday := int(date.Weekday()) // 0=воскресенье .. 6=суббота

	sched, err := r.scheduleRepo.GetByMasterAndWeekday(ctx, masterID, weekday)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			return WindowResolution{Working: false, Reason: ReasonNoSchedule}, nil
		}
		return WindowResolution{}, fmt.Errorf("%w: Resolve - get schedule: %v", ErrInternal, err)
	}

	absences, err := r.absenceRepo.ListCovering(ctx, masterID, date)
	if err != nil {
		return WindowResolution{}, fmt.Errorf("%w: Resolve - list absences: %v", ErrInternal, err)
	}
	if len(absences) > 0 {
		return WindowResolution{Working: false, Reason: ReasonAbsence}, nil
	}

	window, err := parseWindow(sched.StartTime, sched.EndTime, sched.BreakStart, sched.BreakEnd)
	if err != nil {
		r.logger.Error("WorkWindowResolver: corrupt schedule for master=%d weekday=%d: %v",
			masterID, weekday, err)
		return WindowResolution{}, err
	}

	return WindowResolution{Working: true, Window: window}, nil
}

// parseWindow разбирает строки "HH:MM" хранимого расписания в минутное окно
func parseWindow(startTime, endTime string, breakStart, breakEnd *string) (WorkWindow, error) {
	start, err := timegrid.Parse(startTime)
	if err != nil {
		return WorkWindow{}, fmt.Errorf("%w: startTime: %v", ErrCorruptSchedule, err)
	}

	end, err := timegrid.Parse(endTime)
	if err != nil {
		return WorkWindow{}, fmt.Errorf("%w: endTime: %v", ErrCorruptSchedule, err)
	}

	window := WorkWindow{Start: start, End: end}

	if breakStart != nil && breakEnd != nil {
		bs, err := timegrid.Parse(*breakStart)
		if err != nil {
			return WorkWindow{}, fmt.Errorf("%w: breakStart: %v", ErrCorruptSchedule, err)
		}

		be, err := timegrid.Parse(*breakEnd)
		if err != nil {
			return WorkWindow{}, fmt.Errorf("%w: breakEnd: %v", ErrCorruptSchedule, err)
		}

		window.BreakStart = &bs
		window.BreakEnd = &be
	}

	return window, nil
}
