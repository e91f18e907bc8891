package list_masters

import (
	"context"
	"errors"
	"fmt"

	teamClient "github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/integrations/teamservice"
)

// UseCase use case для получения списка мастеров команды в порядке показа
type UseCase struct {
	teamClient TeamServiceClient
	allocator  RotationAllocator
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	teamClient TeamServiceClient,
	allocator RotationAllocator,
	logger Logger,
) *UseCase {
	return &UseCase{
		teamClient: teamClient,
		allocator:  allocator,
		logger:     logger,
	}
}

// Execute выполняет use case получения списка мастеров.
// При включенной справедливой ротации порядок определяет аллокатор,
// иначе мастера возвращаются в порядке, заданном командой.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ListMasters: team=%d", req.TeamID)

	// 1. Валидация входных данных
	if req.TeamID <= 0 {
		return nil, fmt.Errorf("%w: teamID must be positive", ErrInvalidInput)
	}

	// 2. Получаем настройки команды
	team, err := uc.teamClient.GetTeam(ctx, req.TeamID)
	if err != nil {
		if errors.Is(err, teamClient.ErrTeamNotFound) {
			uc.logger.Warn("ListMasters: team id=%d not found", req.TeamID)
			return nil, ErrTeamNotFound
		}
		uc.logger.Error("ListMasters: failed to get team id=%d: %v", req.TeamID, err)
		return nil, fmt.Errorf("%w: failed to get team: %v", ErrInternal, err)
	}

	// 3. Получаем активных мастеров команды
	allMasters, err := uc.teamClient.ListMasters(ctx, req.TeamID)
	if err != nil {
		uc.logger.Error("ListMasters: failed to list masters for team id=%d: %v", req.TeamID, err)
		return nil, fmt.Errorf("%w: failed to list masters: %v", ErrInternal, err)
	}

	active := make([]*teamClient.Master, 0, len(allMasters))
	for _, m := range allMasters {
		if m.IsActive {
			active = append(active, m)
		}
	}

	// 4. Без ротации возвращаем порядок команды как есть
	if !team.FairMasterRotation {
		return buildResponse(active, nil), nil
	}

	// 5. Определяем порядок показа через аллокатор
	masterIDs := make([]int64, len(active))
	for i, m := range active {
		masterIDs[i] = m.ID
	}

	ordered, err := uc.allocator.Rotate(ctx, req.TeamID, masterIDs)
	if err != nil {
		uc.logger.Error("ListMasters: rotation failed for team id=%d: %v", req.TeamID, err)
		return nil, fmt.Errorf("%w: rotation failed: %v", ErrInternal, err)
	}

	uc.logger.Info("ListMasters: returning %d masters for team=%d (rotation on)", len(ordered), req.TeamID)
	return buildResponse(active, ordered), nil
}

// buildResponse собирает ответ. Если order задан, мастера идут в этом
// порядке, иначе в исходном.
func buildResponse(masters []*teamClient.Master, order []int64) *Response {
	resp := &Response{
		Masters: make([]MasterResponse, 0, len(masters)),
	}

	if order == nil {
		for _, m := range masters {
			resp.Masters = append(resp.Masters, MasterResponse{ID: m.ID, Name: m.Name})
		}
		return resp
	}

	byID := make(map[int64]*teamClient.Master, len(masters))
	for _, m := range masters {
		byID[m.ID] = m
	}
	for _, id := range order {
		if m, ok := byID[id]; ok {
			resp.Masters = append(resp.Masters, MasterResponse{ID: m.ID, Name: m.Name})
		}
	}

	return resp
}
