package domain

import (
	"fmt"
	"time"
)

// TeamClock явная привязка всех вычислений границ времени к часовому поясу
// команды. Локальное время хоста нигде не используется: "сегодня", границы
// суток и текущая минута считаются только через TeamClock.
type TeamClock struct {
	loc *time.Location
	now func() time.Time
}

// NewTeamClock создает часы команды для IANA часового пояса.
// nowFn подменяется в тестах; nil означает time.Now.
func NewTeamClock(timezone string, nowFn func() time.Time) (TeamClock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return TeamClock{}, fmt.Errorf("%w: unknown timezone %q", ErrInvalidTeamPolicy, timezone)
	}

	if nowFn == nil {
		nowFn = time.Now
	}

	return TeamClock{loc: loc, now: nowFn}, nil
}

// Location возвращает часовой пояс команды
func (c TeamClock) Location() *time.Location {
	return c.loc
}

// Now возвращает текущий момент в часовом поясе команды
func (c TeamClock) Now() time.Time {
	return c.now().In(c.loc)
}

// NowMinutes возвращает текущее локальное время команды в минутах от начала суток
func (c TeamClock) NowMinutes() int {
	now := c.Now()
	return now.Hour()*60 + now.Minute()
}

// IsToday возвращает true, если календарная дата совпадает с сегодняшним
// днем в часовом поясе команды
func (c TeamClock) IsToday(date time.Time) bool {
	y1, m1, d1 := date.Date()
	y2, m2, d2 := c.Now().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DayRangeUTC возвращает UTC-границы локальных суток команды для даты:
// [локальная полночь, следующая локальная полночь). AddDate корректно
// обрабатывает дни перевода часов длиной 23 и 25 часов.
func (c TeamClock) DayRangeUTC(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, c.loc)
	end := start.AddDate(0, 0, 1)
	return start.UTC(), end.UTC()
}

// DayStart возвращает локальную полночь команды для даты
func (c TeamClock) DayStart(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, c.loc)
}

// MinutesToTime превращает минуты от начала локальных суток в абсолютный
// момент времени внутри даты
func (c TeamClock) MinutesToTime(date time.Time, minutes int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), minutes/60, minutes%60, 0, 0, c.loc)
}
