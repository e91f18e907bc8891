package list_masters

import (
	"context"

	listMasters "github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/usecase/list_masters"
)

type ListMastersUseCase interface {
	Execute(ctx context.Context, req *listMasters.Request) (*listMasters.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
