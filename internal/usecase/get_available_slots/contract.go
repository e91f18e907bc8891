package get_available_slots

import (
	"context"
	"time"

	"github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/integrations/teamservice"
	"github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/slots"
)

// TeamServiceClient интерфейс клиента для TeamService
type TeamServiceClient interface {
	GetTeam(ctx context.Context, teamID int64) (*teamservice.Team, error)
}

// SlotGenerator интерфейс генератора слотов
type SlotGenerator interface {
	Generate(ctx context.Context, req slots.GenerateRequest) ([]slots.Slot, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
