package slots

import "errors"

var (
	// ErrInvalidDuration возвращается при неположительной длительности услуги
	ErrInvalidDuration = errors.New("slots: duration must be a positive number of minutes")

	// ErrInvalidStep возвращается при недопустимом шаге сетки
	ErrInvalidStep = errors.New("slots: invalid booking step")

	// ErrCorruptSchedule возвращается, когда строка расписания в хранилище
	// содержит неразбираемые времена
	ErrCorruptSchedule = errors.New("slots: corrupt schedule data")

	// ErrInternal возвращается при внутренних ошибках компонентов
	ErrInternal = errors.New("slots: internal error")
)
