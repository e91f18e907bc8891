package cancel_booking

import (
	"github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	CancelledBy        string `json:"cancelledBy"` // "client" или "salon"
	CancellationReason string `json:"cancellationReason"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest() *models.CancelBookingRequest {
	return &models.CancelBookingRequest{
		CancelledBy:        r.CancelledBy,
		CancellationReason: r.CancellationReason,
	}
}
