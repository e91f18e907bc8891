package list_masters

import (
	"context"

	"github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/integrations/teamservice"
)

// TeamServiceClient интерфейс клиента для TeamService
type TeamServiceClient interface {
	GetTeam(ctx context.Context, teamID int64) (*teamservice.Team, error)
	ListMasters(ctx context.Context, teamID int64) ([]*teamservice.Master, error)
}

// RotationAllocator интерфейс аллокатора справедливой ротации
type RotationAllocator interface {
	Rotate(ctx context.Context, teamID int64, masterIDs []int64) ([]int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
