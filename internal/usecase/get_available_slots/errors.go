package get_available_slots

import "errors"

var (
	// ErrTeamNotFound возвращается, когда команда не найдена
	ErrTeamNotFound = errors.New("get_available_slots: team not found")

	// ErrBadTeamPolicy возвращается, когда настройки команды некорректны
	// (неизвестный часовой пояс, недопустимый шаг сетки)
	ErrBadTeamPolicy = errors.New("get_available_slots: bad team policy")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
