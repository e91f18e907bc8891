package get_available_slots

import "time"

// Request модель запроса на получение слотов
type Request struct {
	TeamID          int64     // ID команды (салона)
	MasterID        int64     // ID мастера
	Date            time.Time // Дата в календаре команды (время игнорируется)
	DurationMinutes int       // Длительность услуги в минутах
	IncludeBlocked  bool      // Вернуть и заблокированные слоты с причинами (диагностика)
}

// SlotResponse один слот в ответе
type SlotResponse struct {
	StartTime string `json:"startTime"` // "HH:MM" локального времени команды
	EndTime   string `json:"endTime"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"` // причина блокировки, только при includeBlocked
}

// Response модель ответа со слотами на день
type Response struct {
	Date  string         `json:"date"` // "YYYY-MM-DD"
	Slots []SlotResponse `json:"slots"`
}
