package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/api/handlers"
	"github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/domain"
	getAvailableSlots "github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/usecase/get_available_slots"
)

const (
	msgInvalidTeamID   = "некорректный ID команды"
	msgInvalidMasterID = "некорректный ID мастера"
	msgMissingDate     = "дата обязательна"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingDuration = "длительность услуги обязательна"
	msgInvalidDuration = "некорректная длительность услуги"
	msgTeamNotFound    = "команда не найдена"
	msgBadTeamPolicy   = "некорректные настройки команды"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/teams/{teamId}/masters/{masterId}/available-slots
// Query params: date (required, YYYY-MM-DD), durationMinutes (required),
// includeBlocked=1 (optional, диагностический режим)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	teamID, err := strconv.ParseInt(vars["teamId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /teams/{id}/masters/{id}/available-slots - Invalid team ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTeamID)
		return
	}

	masterID, err := strconv.ParseInt(vars["masterId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /teams/{id}/masters/{id}/available-slots - Invalid master ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMasterID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /teams/{id}/masters/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /teams/{id}/masters/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	durationStr := r.URL.Query().Get("durationMinutes")
	if durationStr == "" {
		h.logger.Warn("GET /teams/{id}/masters/{id}/available-slots - Missing duration")
		handlers.RespondBadRequest(w, msgMissingDuration)
		return
	}
	duration, err := strconv.Atoi(durationStr)
	if err != nil {
		h.logger.Warn("GET /teams/{id}/masters/{id}/available-slots - Invalid duration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	includeBlocked := r.URL.Query().Get("includeBlocked") == "1"

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		TeamID:          teamID,
		MasterID:        masterID,
		Date:            date,
		DurationMinutes: duration,
		IncludeBlocked:  includeBlocked,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrTeamNotFound):
			h.logger.Warn("GET /teams/{id}/masters/{id}/available-slots - Team not found: team_id=%d", teamID)
			handlers.RespondNotFound(w, msgTeamNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /teams/{id}/masters/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, getAvailableSlots.ErrBadTeamPolicy):
			h.logger.Error("GET /teams/{id}/masters/{id}/available-slots - Bad team policy: team_id=%d, error=%v", teamID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgBadTeamPolicy)

		default:
			h.logger.Error("GET /teams/{id}/masters/{id}/available-slots - Failed: team_id=%d, master_id=%d, error=%v",
				teamID, masterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /teams/{id}/masters/{id}/available-slots - Returned %d slots: team_id=%d, master_id=%d, date=%s",
		len(result.Slots), teamID, masterID, dateStr)
	handlers.RespondJSON(w, http.StatusOK, result)
}
