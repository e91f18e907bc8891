package create_booking

import (
	"fmt"
	"time"

	"github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/domain"
	"github.com/jzhekatroy/cursor-harmony-hub-sub001/pkg/timegrid"
)

// validateRequest валидирует входные данные запроса.
// Возвращает время начала в минутах от начала локальных суток.
func validateRequest(req *Request) (int, error) {
	if req.TeamID <= 0 {
		return 0, fmt.Errorf("%w: teamID must be positive", ErrInvalidInput)
	}

	if req.MasterID <= 0 {
		return 0, fmt.Errorf("%w: masterID must be positive", ErrInvalidInput)
	}

	if req.ClientID <= 0 {
		return 0, fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return 0, fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return 0, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.DurationMinutes < domain.MinServiceDurationMinutes || req.DurationMinutes > domain.MaxServiceDurationMinutes {
		return 0, fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}

	startMinutes, err := timegrid.Parse(req.StartTime)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return startMinutes, nil
}

// validateDate проверяет, что дата не в прошлом относительно календаря команды
func validateDate(date time.Time, clock domain.TeamClock) error {
	now := clock.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, clock.Location())
	dateStart := clock.DayStart(date)

	if dateStart.Before(todayStart) {
		return ErrInvalidDate
	}

	return nil
}
