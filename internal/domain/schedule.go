package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/jzhekatroy/cursor-harmony-hub-sub001/pkg/timegrid"
)

// ErrInvalidSchedule возвращается при нарушении инвариантов расписания
var ErrInvalidSchedule = errors.New("domain: invalid work schedule")

// WorkSchedule строка еженедельного расписания мастера.
// На пару (мастер, день недели) существует не более одной строки.
type WorkSchedule struct {
	ID       int64
	MasterID int64
	Weekday  int // 0=воскресенье .. 6=суббота

	StartTime  string // "HH:MM" локального времени команды
	EndTime    string
	BreakStart *string // оба поля перерыва либо заданы, либо пусты
	BreakEnd   *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasBreak возвращает true, если в расписании задан перерыв
func (s *WorkSchedule) HasBreak() bool {
	return s.BreakStart != nil && s.BreakEnd != nil
}

// Validate проверяет инварианты строки расписания:
// начало строго раньше конца; перерыв задан целиком или никак;
// перерыв строго внутри рабочего окна.
func (s *WorkSchedule) Validate() error {
	if s.Weekday < MinWeekday || s.Weekday > MaxWeekday {
		return fmt.Errorf("%w: weekday %d out of range", ErrInvalidSchedule, s.Weekday)
	}

	start, err := timegrid.Parse(s.StartTime)
	if err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidSchedule, err)
	}

	end, err := timegrid.Parse(s.EndTime)
	if err != nil {
		return fmt.Errorf("%w: endTime: %v", ErrInvalidSchedule, err)
	}

	if start >= end {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidSchedule)
	}

	if (s.BreakStart == nil) != (s.BreakEnd == nil) {
		return fmt.Errorf("%w: break requires both breakStart and breakEnd", ErrInvalidSchedule)
	}

	if !s.HasBreak() {
		return nil
	}

	breakStart, err := timegrid.Parse(*s.BreakStart)
	if err != nil {
		return fmt.Errorf("%w: breakStart: %v", ErrInvalidSchedule, err)
	}

	breakEnd, err := timegrid.Parse(*s.BreakEnd)
	if err != nil {
		return fmt.Errorf("%w: breakEnd: %v", ErrInvalidSchedule, err)
	}

	if breakStart >= breakEnd {
		return fmt.Errorf("%w: breakStart must be before breakEnd", ErrInvalidSchedule)
	}

	if breakStart < start || breakEnd > end {
		return fmt.Errorf("%w: break must be inside working window", ErrInvalidSchedule)
	}

	return nil
}
