package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/domain"
	teamClient "github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/integrations/teamservice"
	"github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/slots"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	teamClient   TeamServiceClient
	generator    SlotGenerator
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	teamClient TeamServiceClient,
	generator SlotGenerator,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		teamClient:   teamClient,
		generator:    generator,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестирования)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования.
// Доступность слота перепроверяется внутри сериализуемой транзакции:
// выборка занятости под FOR UPDATE исключает гонку двух одновременных
// записей на один слот.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: team=%d, master=%d, client=%d, service=%d, date=%s, time=%s",
		req.TeamID, req.MasterID, req.ClientID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	startMinutes, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем настройки команды
	team, err := uc.teamClient.GetTeam(ctx, req.TeamID)
	if err != nil {
		if errors.Is(err, teamClient.ErrTeamNotFound) {
			uc.logger.Warn("CreateBooking: team id=%d not found", req.TeamID)
			return nil, ErrTeamNotFound
		}
		uc.logger.Error("CreateBooking: failed to get team id=%d: %v", req.TeamID, err)
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
		uc.logger.Error("CreateBooking: bad policy for team id=%d: %v", req.TeamID, err)
		return nil, fmt.Errorf("%w: %v", ErrBadTeamPolicy, err)
	}

	// 4. Строим часы команды
	clock, err := domain.NewTeamClock(team.Timezone, uc.timeProvider.Now)
	if err != nil {
		uc.logger.Error("CreateBooking: bad timezone %q for team id=%d: %v", team.Timezone, req.TeamID, err)
		return nil, fmt.Errorf("%w: %v", ErrBadTeamPolicy, err)
	}

	// 5. Проверяем дату относительно календаря команды
	if err := validateDate(req.Date, clock); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 6. Проверяем, что запрошенное время лежит на сетке команды
	if startMinutes%team.BookingStepMinutes != 0 {
		uc.logger.Warn("CreateBooking: startTime=%s is not aligned to step=%d", req.StartTime, team.BookingStepMinutes)
		return nil, fmt.Errorf("%w: startTime must be aligned to %d-minute grid", ErrInvalidTimeSlot, team.BookingStepMinutes)
	}

	var result *domain.Booking

	// 7. Перепроверяем доступность и создаем бронирование в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Генерируем слоты внутри транзакции: выборка занятости
		// выполняется под FOR UPDATE
		allSlots, err := uc.generator.Generate(txCtx, slots.GenerateRequest{
			MasterID:        req.MasterID,
			Date:            req.Date,
			DurationMinutes: req.DurationMinutes,
			StepMinutes:     team.BookingStepMinutes,
			Clock:           clock,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: slot generation failed for master=%d: %v", req.MasterID, err)
			return fmt.Errorf("%w: slot generation failed: %v", ErrInternal, err)
		}

		// Пустая сетка — мастер в эту дату не работает
		if len(allSlots) == 0 {
			uc.logger.Warn("CreateBooking: master=%d not working on %s", req.MasterID, req.Date.Format(domain.DateFormat))
			return ErrMasterNotWorking
		}

		// 7.2. Ищем запрошенный слот в сетке
		var candidate *slots.Slot
		for i := range allSlots {
			if allSlots[i].Start == startMinutes {
				candidate = &allSlots[i]
				break
			}
		}
		if candidate == nil {
			uc.logger.Warn("CreateBooking: startTime=%s is outside working window for master=%d", req.StartTime, req.MasterID)
			return ErrInvalidTimeSlot
		}

		// 7.3. Проверяем статус слота
		if !candidate.IsAvailable() {
			switch candidate.Reason {
			case slots.BlockOccupied:
				uc.logger.Warn("CreateBooking: slot %s is occupied for master=%d", req.StartTime, req.MasterID)
				return ErrSlotOccupied
			case slots.BlockTooSoon:
				uc.logger.Warn("CreateBooking: slot %s is too soon for master=%d", req.StartTime, req.MasterID)
				return ErrTooLateToBook
			default:
				uc.logger.Warn("CreateBooking: slot %s is blocked (%s) for master=%d", req.StartTime, candidate.Reason, req.MasterID)
				return ErrInvalidTimeSlot
			}
		}

		// 7.4. Создаем бронирование
		booking := &domain.Booking{
			TeamID:    req.TeamID,
			MasterID:  req.MasterID,
			ClientID:  req.ClientID,
			ServiceID: req.ServiceID,
			StartAt:   clock.MinutesToTime(req.Date, candidate.Start),
			EndAt:     clock.MinutesToTime(req.Date, candidate.End),
			Status:    domain.StatusNew,
			Notes:     req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return &Response{
		ID:        result.ID,
		TeamID:    result.TeamID,
		MasterID:  result.MasterID,
		ClientID:  result.ClientID,
		ServiceID: result.ServiceID,
		StartAt:   result.StartAt,
		EndAt:     result.EndAt,
		Status:    string(result.Status),
		Notes:     result.Notes,
		CreatedAt: result.CreatedAt,
		UpdatedAt: result.UpdatedAt,
	}, nil
}
