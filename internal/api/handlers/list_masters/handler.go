package list_masters

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/api/handlers"
	listMasters "github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/usecase/list_masters"
)

const (
	msgInvalidTeamID = "некорректный ID команды"
	msgTeamNotFound  = "команда не найдена"
)

type Handler struct {
	useCase ListMastersUseCase
	logger  Logger
}

func NewHandler(useCase ListMastersUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/teams/{teamId}/masters
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	teamID, err := strconv.ParseInt(vars["teamId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /teams/{id}/masters - Invalid team ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTeamID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &listMasters.Request{TeamID: teamID})
	if err != nil {
		switch {
		case errors.Is(err, listMasters.ErrTeamNotFound):
			h.logger.Warn("GET /teams/{id}/masters - Team not found: team_id=%d", teamID)
			handlers.RespondNotFound(w, msgTeamNotFound)

		case errors.Is(err, listMasters.ErrInvalidInput):
			h.logger.Warn("GET /teams/{id}/masters - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTeamID)

		default:
			h.logger.Error("GET /teams/{id}/masters - Failed: team_id=%d, error=%v", teamID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /teams/{id}/masters - Returned %d masters: team_id=%d", len(result.Masters), teamID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
