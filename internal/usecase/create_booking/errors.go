package create_booking

import "errors"

var (
	// ErrTeamNotFound возвращается, когда команда не найдена
	ErrTeamNotFound = errors.New("create_booking: team not found")

	// ErrBadTeamPolicy возвращается, когда настройки команды некорректны
	ErrBadTeamPolicy = errors.New("create_booking: bad team policy")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrInvalidTimeSlot возвращается, когда запрошенное время не лежит
	// на сетке слотов или выходит за рабочее окно мастера
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrSlotOccupied возвращается, когда слот уже занят другим бронированием
	ErrSlotOccupied = errors.New("create_booking: slot is occupied")

	// ErrTooLateToBook возвращается, когда слот уже начался или начинается слишком скоро
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrMasterNotWorking возвращается, когда мастер не работает в указанную дату
	ErrMasterNotWorking = errors.New("create_booking: master is not working on this date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
