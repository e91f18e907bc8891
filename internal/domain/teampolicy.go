package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTeamPolicy возвращается, когда политика команды не позволяет
// безопасно считать слоты. Политика без валидного часового пояса или шага
// сетки — громкая ошибка, а не повод подставить серверные значения.
var ErrInvalidTeamPolicy = errors.New("domain: invalid team policy")

// TeamPolicy настройки бронирования команды, приходят из CRM.
// Движок доступности их потребляет, но не владеет ими.
type TeamPolicy struct {
	TeamID             int64
	BookingStepMinutes int    // шаг сетки слотов: 15, 30 или 60
	Timezone           string // имя IANA, например "Europe/Moscow"
	FairMasterRotation bool
}

// Validate проверяет, что политика пригодна для расчета доступности
func (p *TeamPolicy) Validate() error {
	if !IsValidBookingStep(p.BookingStepMinutes) {
		return fmt.Errorf("%w: bookingStep %d is not one of %v",
			ErrInvalidTeamPolicy, p.BookingStepMinutes, ValidBookingSteps)
	}

	if p.Timezone == "" {
		return fmt.Errorf("%w: timezone is required", ErrInvalidTeamPolicy)
	}

	if _, err := time.LoadLocation(p.Timezone); err != nil {
		return fmt.Errorf("%w: unknown timezone %q", ErrInvalidTeamPolicy, p.Timezone)
	}

	return nil
}
