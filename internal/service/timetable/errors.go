package timetable

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда расписание не найдено
	ErrScheduleNotFound = errors.New("schedule not found")

	// ErrAbsenceNotFound возвращается, когда отсутствие не найдено
	ErrAbsenceNotFound = errors.New("absence not found")

	// ErrAbsenceOverlap возвращается, когда новое отсутствие пересекается с существующим
	ErrAbsenceOverlap = errors.New("absence overlaps with existing absence")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
