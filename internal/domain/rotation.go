package domain

import "time"

// RotationState состояние честной ротации мастера внутри команды.
// Одна строка на пару (команда, мастер); создается лениво при первом
// попадании мастера в ротируемую выдачу.
type RotationState struct {
	TeamID   int64
	MasterID int64

	Position    int       // текущая позиция в порядке показа
	ShowCount   int64     // монотонный счетчик показов
	LastShownAt time.Time // момент последнего показа

	UpdatedAt time.Time
}
