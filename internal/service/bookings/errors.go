package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrCannotCancel возвращается, когда бронирование не может быть отменено
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrCannotConfirm возвращается, когда бронирование не может быть подтверждено
	ErrCannotConfirm = errors.New("booking cannot be confirmed")

	// ErrCannotMarkNoShow возвращается, когда нельзя отметить неявку клиента
	ErrCannotMarkNoShow = errors.New("booking cannot be marked as no-show")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
