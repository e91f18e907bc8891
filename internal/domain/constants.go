package domain

// Форматы времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Границы дней недели (0=воскресенье .. 6=суббота, как в time.Weekday)
const (
	MinWeekday = 0
	MaxWeekday = 6
)

// Ограничения длительности услуги
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 часов
)

// OccupyingStatuses статусы, удерживающие время в календаре.
// Используется репозиторием бронирований при выборке занятости.
var OccupyingStatuses = []BookingStatus{
	StatusNew,
	StatusConfirmed,
	StatusCompleted,
}

// ValidBookingSteps допустимые значения шага сетки слотов (минуты)
var ValidBookingSteps = []int{15, 30, 60}

// IsValidBookingStep проверяет, что шаг сетки входит в список допустимых
func IsValidBookingStep(step int) bool {
	for _, s := range ValidBookingSteps {
		if s == step {
			return true
		}
	}
	return false
}
