package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidAbsence возвращается при нарушении инвариантов отсутствия
var ErrInvalidAbsence = errors.New("domain: invalid absence")

// Absence период отсутствия мастера (отпуск, больничный).
// Даты календарные, обе границы включительно.
type Absence struct {
	ID       int64
	MasterID int64

	StartDate time.Time // только дата, время игнорируется
	EndDate   time.Time
	Reason    *string

	CreatedAt time.Time
}

// Validate проверяет инвариант startDate <= endDate
func (a *Absence) Validate() error {
	if a.StartDate.IsZero() || a.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidAbsence)
	}
	if dateOnly(a.EndDate).Before(dateOnly(a.StartDate)) {
		return fmt.Errorf("%w: startDate must not be after endDate", ErrInvalidAbsence)
	}
	return nil
}

// Covers возвращает true, если отсутствие покрывает указанную дату
func (a *Absence) Covers(date time.Time) bool {
	d := dateOnly(date)
	return !d.Before(dateOnly(a.StartDate)) && !d.After(dateOnly(a.EndDate))
}

// Overlaps проверяет пересечение двух периодов отсутствия тройным тестом:
// начало нового внутри существующего, конец нового внутри существующего,
// либо новый целиком содержит существующий.
func (a *Absence) Overlaps(other *Absence) bool {
	aStart, aEnd := dateOnly(a.StartDate), dateOnly(a.EndDate)
	bStart, bEnd := dateOnly(other.StartDate), dateOnly(other.EndDate)

	startInside := !aStart.Before(bStart) && !aStart.After(bEnd)
	endInside := !aEnd.Before(bStart) && !aEnd.After(bEnd)
	contains := aStart.Before(bStart) && aEnd.After(bEnd)

	return startInside || endInside || contains
}

// dateOnly обнуляет время, оставляя только календарную дату
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
