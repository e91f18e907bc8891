package update_schedule

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
	msgInvalidWeekday     = "некорректный день недели, ожидается 0-6"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSchedule    = "некорректное расписание"
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

// UpdateScheduleRequest HTTP request model
type UpdateScheduleRequest struct {
	StartTime  string  `json:"startTime"` // "HH:MM"
	EndTime    string  `json:"endTime"`
	BreakStart *string `json:"breakStart,omitempty"`
	BreakEnd   *string `json:"breakEnd,omitempty"`
}

// Handle PUT /api/v1/teams/{teamId}/masters/{masterId}/schedule/{weekday}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	masterID, err := strconv.ParseInt(vars["masterId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /schedule - Invalid master ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMasterID)
		return
	}

	weekday, err := strconv.Atoi(vars["weekday"])
	if err != nil {
		h.logger.Warn("PUT /schedule - Invalid weekday: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWeekday)
		return
	}

	var req UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpsertSchedule(r.Context(), &models.UpsertScheduleRequest{
		MasterID:   masterID,
		Weekday:    weekday,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		BreakStart: req.BreakStart,
		BreakEnd:   req.BreakEnd,
	})
	if err != nil {
		switch {
		case errors.Is(err, timetable.ErrInvalidInput):
			h.logger.Warn("PUT /schedule - Invalid schedule: master_id=%d, error=%v", masterID, err)
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		default:
			h.logger.Error("PUT /schedule - Failed to upsert schedule: master_id=%d, error=%v", masterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /schedule - Schedule saved: master_id=%d, weekday=%d", masterID, weekday)
	handlers.RespondJSON(w, http.StatusOK, result)
}
