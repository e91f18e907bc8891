package create_booking

import (
	"time"

	"github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/domain"
	createBooking "github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	TeamID          int64   `json:"teamId"`
	MasterID        int64   `json:"masterId"`
	ServiceID       int64   `json:"serviceId"`
	Date            string  `json:"date"`      // "2026-09-15"
	StartTime       string  `json:"startTime"` // "10:00"
	DurationMinutes int     `json:"durationMinutes"`
	Notes           *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID        int64   `json:"id"`
	TeamID    int64   `json:"teamId"`
	MasterID  int64   `json:"masterId"`
	ClientID  int64   `json:"clientId"`
	ServiceID int64   `json:"serviceId"`
	StartAt   string  `json:"startAt"` // ISO 8601
	EndAt     string  `json:"endAt"`
	Status    string  `json:"status"`
	Notes     *string `json:"notes,omitempty"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(clientID int64) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		TeamID:          r.TeamID,
		MasterID:        r.MasterID,
		ClientID:        clientID,
		ServiceID:       r.ServiceID,
		Date:            date,
		StartTime:       r.StartTime,
		DurationMinutes: r.DurationMinutes,
		Notes:           r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:        resp.ID,
		TeamID:    resp.TeamID,
		MasterID:  resp.MasterID,
		ClientID:  resp.ClientID,
		ServiceID: resp.ServiceID,
		StartAt:   resp.StartAt.Format(time.RFC3339),
		EndAt:     resp.EndAt.Format(time.RFC3339),
		Status:    resp.Status,
		Notes:     resp.Notes,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt: resp.UpdatedAt.Format(time.RFC3339),
	}
}
