package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	TeamID          int64     // ID команды (салона)
	MasterID        int64     // ID мастера
	ClientID        int64     // ID клиента
	ServiceID       int64     // ID услуги
	Date            time.Time // Дата в календаре команды (время игнорируется)
	StartTime       string    // Время начала слота "HH:MM" локального времени команды
	DurationMinutes int       // Длительность услуги в минутах
	Notes           *string   // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        int64     // ID созданного бронирования
	TeamID    int64     // ID команды
	MasterID  int64     // ID мастера
	ClientID  int64     // ID клиента
	ServiceID int64     // ID услуги
	StartAt   time.Time // Абсолютное время начала
	EndAt     time.Time // Абсолютное время окончания
	Status    string    // Статус бронирования
	Notes     *string   // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
