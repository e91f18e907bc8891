package teamservice

// Team настройки команды (салона) из TeamService
type Team struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	BookingStepMinutes int    `json:"booking_step_minutes"` // 15, 30 или 60
	Timezone           string `json:"timezone"`             // IANA, например "Europe/Moscow"
	FairMasterRotation bool   `json:"fair_master_rotation"`
}

// Master мастер команды из TeamService
type Master struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// ErrorResponse модель ошибки от TeamService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
