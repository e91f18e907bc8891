package list_masters

// Request модель запроса на получение списка мастеров
type Request struct {
	TeamID int64 // ID команды (салона)
}

// MasterResponse один мастер в ответе
type MasterResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Response модель ответа со списком мастеров в порядке показа
type Response struct {
	Masters []MasterResponse `json:"masters"`
}
