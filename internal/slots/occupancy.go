package slots

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/domain"
	"github.com/jzhekatroy/cursor-harmony-hub-sub001/pkg/timegrid"
)

// OccupancyIndex выборка занятых интервалов мастера на локальные сутки команды.
// Хранилище оперирует абсолютными моментами; границы запрашиваемого дня
// переводятся в UTC через TeamClock, а не через локальный пояс сервера.
type OccupancyIndex struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewOccupancyIndex создает новый индекс занятости
func NewOccupancyIndex(bookingRepo BookingRepository, logger Logger) *OccupancyIndex {
	return &OccupancyIndex{bookingRepo: bookingRepo, logger: logger}
}

// IntervalsOn возвращает упорядоченные занятые интервалы мастера на дату
// в минутах от начала локальных суток команды.
// Интервалы, выходящие за границы суток, обрезаются до [0, 1440).
func (o *OccupancyIndex) IntervalsOn(ctx context.Context, masterID int64, date time.Time, clock domain.TeamClock) ([]timegrid.Interval, error) {
	fromUTC, toUTC := clock.DayRangeUTC(date)

	bookings, err := o.bookingRepo.ListOccupying(ctx, masterID, fromUTC, toUTC)
	if err != nil {
		return nil, fmt.Errorf("%w: IntervalsOn - list bookings: %v", ErrInternal, err)
	}

	dayStart := clock.DayStart(date)
	dayEnd := dayStart.AddDate(0, 0, 1)

	intervals := make([]timegrid.Interval, 0, len(bookings))
	for _, b := range bookings {
		// Статусы фильтрует хранилище, но повторная проверка дешева
		// и защищает от чужих реализаций репозитория
		if !b.OccupiesTime() {
			continue
		}

		iv := timegrid.Interval{
			Start: minutesIntoDay(b.StartAt, dayStart, dayEnd, clock),
			End:   minutesIntoDay(b.EndAt, dayStart, dayEnd, clock),
		}
		if iv.IsEmpty() {
			continue
		}

		intervals = append(intervals, iv)
	}

	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].Start < intervals[j].Start
	})

	return intervals, nil
}

// minutesIntoDay переводит абсолютный момент в минуты от начала локальных
// суток, обрезая моменты за границами суток
func minutesIntoDay(t time.Time, dayStart, dayEnd time.Time, clock domain.TeamClock) int {
	if !t.After(dayStart) {
		return 0
	}
	if !t.Before(dayEnd) {
		return timegrid.MinutesPerDay
	}

	local := t.In(clock.Location())
	return local.Hour()*60 + local.Minute()
}
