package domain

import "time"

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusNew               BookingStatus = "new"
	StatusConfirmed         BookingStatus = "confirmed"
	StatusCompleted         BookingStatus = "completed"
	StatusNoShow            BookingStatus = "no_show"
	StatusCancelledByClient BookingStatus = "cancelled_by_client"
	StatusCancelledBySalon  BookingStatus = "cancelled_by_salon"
)

// Booking запись клиента к мастеру на конкретный интервал времени.
// StartAt/EndAt — абсолютные моменты времени; календарный день бронирования
// определяется только в часовом поясе команды (TeamClock), не сервера.
type Booking struct {
	ID        int64
	TeamID    int64
	MasterID  int64
	ClientID  int64
	ServiceID int64
	StartAt   time.Time
	EndAt     time.Time
	Status    BookingStatus

	Notes              *string
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OccupiesTime возвращает true, если бронирование удерживает время в календаре.
// Время держат только new, confirmed и completed; отмененные и no-show
// освобождают слот.
func (b *Booking) OccupiesTime() bool {
	return b.Status == StatusNew ||
		b.Status == StatusConfirmed ||
		b.Status == StatusCompleted
}

// CanBeConfirmed возвращает true, если бронирование можно подтвердить
func (b *Booking) CanBeConfirmed() bool {
	return b.Status == StatusNew
}

// CanBeCancelled возвращает true, если бронирование можно отменить
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusNew || b.Status == StatusConfirmed
}

// CanBeMarkedNoShow возвращает true, если можно отметить неявку клиента
func (b *Booking) CanBeMarkedNoShow() bool {
	return b.Status == StatusConfirmed
}

// IsCancelled возвращает true, если бронирование отменено
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByClient || b.Status == StatusCancelledBySalon
}

// IsValidStatus проверяет, что строка является допустимым статусом
func IsValidStatus(s BookingStatus) bool {
	switch s {
	case StatusNew, StatusConfirmed, StatusCompleted,
		StatusNoShow, StatusCancelledByClient, StatusCancelledBySalon:
		return true
	}
	return false
}
