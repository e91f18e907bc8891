package timegrid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay количество минут в сутках, верхняя граница минутной сетки
const MinutesPerDay = 24 * 60

// ErrInvalidTime возвращается при некорректной строке времени
var ErrInvalidTime = errors.New("timegrid: invalid time string")

// Interval полуоткрытый интервал [Start, End) в минутах от начала суток
type Interval struct {
	Start int
	End   int
}

// IsEmpty возвращает true, если интервал пуст
func (i Interval) IsEmpty() bool {
	return i.End <= i.Start
}

// Parse разбирает строку "HH:MM" в количество минут от начала суток.
// Формат строгий: ровно два поля, часы 0-23, минуты 0-59.
func Parse(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q: bad hours", ErrInvalidTime, s)
	}

	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q: bad minutes", ErrInvalidTime, s)
	}

	if hours < 0 || hours > 23 {
		return 0, fmt.Errorf("%w: %q: hours out of range", ErrInvalidTime, s)
	}
	if minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q: minutes out of range", ErrInvalidTime, s)
	}

	return hours*60 + minutes, nil
}

// Format форматирует минуты от начала суток обратно в строку "HH:MM"
func Format(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Overlaps проверяет пересечение двух полуоткрытых интервалов [start, end).
// Интервалы пересекаются, только если aStart < bEnd && bStart < aEnd:
// слот, заканчивающийся ровно там, где начинается другой, НЕ конфликтует.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// OverlapsAny проверяет пересечение интервала [start, end) хотя бы с одним из списка
func OverlapsAny(start, end int, intervals []Interval) bool {
	for _, iv := range intervals {
		if Overlaps(start, end, iv.Start, iv.End) {
			return true
		}
	}
	return false
}
