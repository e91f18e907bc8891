package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/domain"
	teamClient "github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/integrations/teamservice"
	"github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/slots"
	"github.com/jzhekatroy/cursor-harmony-hub-sub001/pkg/timegrid"
)

// UseCase use case для получения слотов мастера на день
type UseCase struct {
	teamClient   TeamServiceClient
	generator    SlotGenerator
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	teamClient TeamServiceClient,
	generator SlotGenerator,
	logger Logger,
) *UseCase {
	return &UseCase{
		teamClient:   teamClient,
		generator:    generator,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестирования)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения слотов.
// Настройки команды обязательны: без валидного часового пояса и шага сетки
// расчет слотов невозможен, ошибка настроек не маскируется пустым ответом.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: team=%d, master=%d, date=%s, duration=%d",
		req.TeamID, req.MasterID, req.Date.Format(domain.DateFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем настройки команды
	team, err := uc.teamClient.GetTeam(ctx, req.TeamID)
	if err != nil {
		if errors.Is(err, teamClient.ErrTeamNotFound) {
			uc.logger.Warn("GetAvailableSlots: team id=%d not found", req.TeamID)
			return nil, ErrTeamNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get team id=%d: %v", req.TeamID, err)
		return nil, fmt.Errorf("%w: failed to get team: %v", ErrInternal, err)
	}

	// 3. Проверяем настройки команды
	policy := &domain.TeamPolicy{
		TeamID:             team.ID,
		BookingStepMinutes: team.BookingStepMinutes,
		Timezone:           team.Timezone,
		FairMasterRotation: team.FairMasterRotation,
	}
	if err := policy.Validate(); err != nil {
		uc.logger.Error("GetAvailableSlots: bad policy for team id=%d: %v", req.TeamID, err)
		return nil, fmt.Errorf("%w: %v", ErrBadTeamPolicy, err)
	}

	// 4. Строим часы команды
	clock, err := domain.NewTeamClock(team.Timezone, uc.timeProvider.Now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: bad timezone %q for team id=%d: %v", team.Timezone, req.TeamID, err)
		return nil, fmt.Errorf("%w: %v", ErrBadTeamPolicy, err)
	}

	// 5. Генерируем слоты
	allSlots, err := uc.generator.Generate(ctx, slots.GenerateRequest{
		MasterID:        req.MasterID,
		Date:            req.Date,
		DurationMinutes: req.DurationMinutes,
		StepMinutes:     team.BookingStepMinutes,
		Clock:           clock,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: generation failed for master=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: slot generation failed: %v", ErrInternal, err)
	}

	// 6. Фильтруем и конвертируем в response
	result := allSlots
	if !req.IncludeBlocked {
		result = slots.FilterAvailable(allSlots)
	}

	resp := &Response{
		Date:  req.Date.Format(domain.DateFormat),
		Slots: make([]SlotResponse, 0, len(result)),
	}
	for _, slot := range result {
		slotResp := SlotResponse{
			StartTime: timegrid.Format(slot.Start),
			EndTime:   timegrid.Format(slot.End),
			Available: slot.IsAvailable(),
		}
		if req.IncludeBlocked && !slot.IsAvailable() {
			slotResp.Reason = string(slot.Reason)
		}
		resp.Slots = append(resp.Slots, slotResp)
	}

	uc.logger.Info("GetAvailableSlots: returning %d slots for master=%d on %s",
		len(resp.Slots), req.MasterID, resp.Date)
	return resp, nil
}
