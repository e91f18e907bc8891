package create_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/api/middleware"
	createBooking "github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/usecase/create_booking"
)

type fakeUseCase struct {
	resp    *createBooking.Response
	err     error
	lastReq *createBooking.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const validBody = `{
	"teamId": 1,
	"masterId": 7,
	"serviceId": 3,
	"date": "2026-09-15",
	"startTime": "10:00",
	"durationMinutes": 60
}`

func serveRequest(uc *fakeUseCase, body string, userID string) *httptest.ResponseRecorder {
	handler := NewHandler(uc, nopLogger{})

	router := mux.NewRouter()
	protected := router.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)
	protected.HandleFunc("/api/v1/bookings", handler.Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func successResponse() *createBooking.Response {
	start := time.Date(2026, 9, 15, 7, 0, 0, 0, time.UTC)
	return &createBooking.Response{
		ID:        100,
		TeamID:    1,
		MasterID:  7,
		ClientID:  55,
		ServiceID: 3,
		StartAt:   start,
		EndAt:     start.Add(time.Hour),
		Status:    "new",
		CreatedAt: start,
		UpdatedAt: start,
	}
}

func TestHandle_Success(t *testing.T) {
	uc := &fakeUseCase{resp: successResponse()}

	rec := serveRequest(uc, validBody, "55")

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(100), resp.ID)
	assert.Equal(t, "new", resp.Status)
	assert.Equal(t, "2026-09-15T07:00:00Z", resp.StartAt)

	// Клиент берется из заголовка, не из тела
	require.NotNil(t, uc.lastReq)
	assert.Equal(t, int64(55), uc.lastReq.ClientID)
	assert.Equal(t, "10:00", uc.lastReq.StartTime)
}

func TestHandle_MissingUserID(t *testing.T) {
	uc := &fakeUseCase{resp: successResponse()}

	rec := serveRequest(uc, validBody, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, uc.lastReq, "use case не должен вызываться без аутентификации")
}

func TestHandle_BadBody(t *testing.T) {
	rec := serveRequest(&fakeUseCase{}, "{не json", "55")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_BadDate(t *testing.T) {
	body := strings.Replace(validBody, "2026-09-15", "15.09.2026", 1)
	rec := serveRequest(&fakeUseCase{}, body, "55")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"slotOccupied", createBooking.ErrSlotOccupied, http.StatusConflict},
		{"teamNotFound", createBooking.ErrTeamNotFound, http.StatusNotFound},
		{"masterNotWorking", createBooking.ErrMasterNotWorking, http.StatusConflict},
		{"tooLateToBook", createBooking.ErrTooLateToBook, http.StatusConflict},
		{"invalidDate", createBooking.ErrInvalidDate, http.StatusBadRequest},
		{"invalidTimeSlot", createBooking.ErrInvalidTimeSlot, http.StatusBadRequest},
		{"invalidInput", createBooking.ErrInvalidInput, http.StatusBadRequest},
		{"badTeamPolicy", createBooking.ErrBadTeamPolicy, http.StatusUnprocessableEntity},
		{"internal", errors.New("db is down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serveRequest(&fakeUseCase{err: tt.err}, validBody, "55")
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
