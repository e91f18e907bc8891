package create_absence

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/api/handlers"
	"github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/service/timetable"
	"github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/service/timetable/models"
)

const (
	msgInvalidMasterID    = "некорректный ID мастера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidAbsence     = "некорректный период отсутствия"
	msgAbsenceOverlap     = "период пересекается с существующим отсутствием"
)

type Handler struct {
	service TimetableService
	logger  Logger
}

func NewHandler(service TimetableService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// CreateAbsenceRequest HTTP request model
type CreateAbsenceRequest struct {
	StartDate string  `json:"startDate"` // "YYYY-MM-DD"
	EndDate   string  `json:"endDate"`
	Reason    *string `json:"reason,omitempty"`
}

// Handle POST /api/v1/teams/{teamId}/masters/{masterId}/absences
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	masterID, err := strconv.ParseInt(vars["masterId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /absences - Invalid master ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMasterID)
		return
	}

	var req CreateAbsenceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /absences - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateAbsence(r.Context(), &models.CreateAbsenceRequest{
		MasterID:  masterID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Reason:    req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, timetable.ErrAbsenceOverlap):
			h.logger.Warn("POST /absences - Overlap: master_id=%d, period=%s..%s", masterID, req.StartDate, req.EndDate)
			handlers.RespondConflict(w, msgAbsenceOverlap)

		case errors.Is(err, timetable.ErrInvalidInput):
			h.logger.Warn("POST /absences - Invalid absence: master_id=%d, error=%v", masterID, err)
			handlers.RespondBadRequest(w, msgInvalidAbsence)

		default:
			h.logger.Error("POST /absences - Failed to create absence: master_id=%d, error=%v", masterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /absences - Absence created: absence_id=%d, master_id=%d", result.ID, masterID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
