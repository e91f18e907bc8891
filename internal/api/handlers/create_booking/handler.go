package create_booking

import (
	"errors"
	"net/http"

	"github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/api/handlers"
	"github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/api/middleware"
	createBooking "github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgTeamNotFound       = "команда не найдена"
	msgBadTeamPolicy      = "некорректные настройки команды"
	msgSlotOccupied       = "выбранный временной слот уже занят"
	msgInvalidTimeSlot    = "некорректный временной слот"
	msgTooLateToBook      = "слишком поздно для бронирования этого слота"
	msgMasterNotWorking   = "мастер не работает в выбранную дату"
	msgInvalidBookingDate = "некорректная дата бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
// Клиент определяется заголовком X-User-ID (middleware.Auth)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.UserID(r.Context())

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(clientID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotOccupied):
			h.logger.Warn("POST /bookings - Slot occupied: client_id=%d, master_id=%d, time=%s",
				clientID, req.MasterID, req.StartTime)
			handlers.RespondConflict(w, msgSlotOccupied)

		case errors.Is(err, createBooking.ErrTeamNotFound):
			h.logger.Warn("POST /bookings - Team not found: team_id=%d", req.TeamID)
			handlers.RespondNotFound(w, msgTeamNotFound)

		case errors.Is(err, createBooking.ErrMasterNotWorking):
			h.logger.Warn("POST /bookings - Master not working: master_id=%d, date=%s", req.MasterID, req.Date)
			handlers.RespondConflict(w, msgMasterNotWorking)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: client_id=%d, time=%s", clientID, req.StartTime)
			handlers.RespondConflict(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: client_id=%d, date=%s", clientID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings - Invalid time slot: client_id=%d, time=%s", clientID, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, createBooking.ErrBadTeamPolicy):
			h.logger.Error("POST /bookings - Bad team policy: team_id=%d, error=%v", req.TeamID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgBadTeamPolicy)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: client_id=%d, team_id=%d, error=%v",
				clientID, req.TeamID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, client_id=%d, master_id=%d",
		result.ID, clientID, req.MasterID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
