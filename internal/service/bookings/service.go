package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/domain"
	bookingRepo "github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/infra/storage/booking"
	"github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/service/bookings/models"
)

// Service сервис жизненного цикла бронирований
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetClientBookings получает историю бронирований клиента
// Опционально фильтрует по статусу
func (s *Service) GetClientBookings(ctx context.Context, clientID int64, status *string) (*models.BookingListResponse, error) {
	s.logger.Info("GetClientBookings: fetching bookings for client=%d, status=%v", clientID, status)

	var domainStatus *domain.BookingStatus
	if status != nil {
		st := domain.BookingStatus(*status)
		if !domain.IsValidStatus(st) {
			s.logger.Warn("GetClientBookings: invalid status=%s for client=%d", *status, clientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &st
	}

	bookings, err := s.bookingRepo.ListByClient(ctx, clientID, domainStatus)
	if err != nil {
		s.logger.Error("GetClientBookings: repository error for client=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: GetClientBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientBookings: successfully fetched %d bookings for client=%d", len(bookings), clientID)
	return models.FromDomainBookingList(bookings), nil
}

// Confirm подтверждает бронирование. Допустим только переход new -> confirmed.
func (s *Service) Confirm(ctx context.Context, bookingID int64) error {
	s.logger.Info("Confirm: confirming booking id=%d", bookingID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Confirm: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Confirm: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}

	if !booking.CanBeConfirmed() {
		s.logger.Warn("Confirm: booking id=%d cannot be confirmed, status=%s", bookingID, booking.Status)
		return ErrCannotConfirm
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.StatusConfirmed); err != nil {
		s.logger.Error("Confirm: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Confirm: successfully confirmed booking id=%d", bookingID)
	return nil
}

// Cancel отменяет бронирование.
// Клиент отменяет свое бронирование (cancelled_by_client),
// администратор салона — любое бронирование команды (cancelled_by_salon).
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by=%s", bookingID, req.CancelledBy)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	var cancelStatus domain.BookingStatus
	switch req.CancelledBy {
	case models.CancelledByClient:
		cancelStatus = domain.StatusCancelledByClient
	case models.CancelledBySalon:
		cancelStatus = domain.StatusCancelledBySalon
	default:
		s.logger.Warn("Cancel: invalid cancelledBy=%s for booking id=%d", req.CancelledBy, bookingID)
		return fmt.Errorf("%w: invalid cancelledBy", ErrInvalidInput)
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, cancelStatus, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d with status=%s", bookingID, cancelStatus)
	return nil
}

// MarkNoShow отмечает неявку клиента. Допустим только переход confirmed -> no_show.
func (s *Service) MarkNoShow(ctx context.Context, bookingID int64) error {
	s.logger.Info("MarkNoShow: marking booking id=%d as no-show", bookingID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("MarkNoShow: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("MarkNoShow: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: MarkNoShow - repository error: %v", ErrInternal, err)
	}

	if !booking.CanBeMarkedNoShow() {
		s.logger.Warn("MarkNoShow: booking id=%d cannot be marked, status=%s", bookingID, booking.Status)
		return ErrCannotMarkNoShow
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.StatusNoShow); err != nil {
		s.logger.Error("MarkNoShow: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: MarkNoShow - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("MarkNoShow: successfully marked booking id=%d as no-show", bookingID)
	return nil
}

// CompleteExpired переводит подтвержденные бронирования с истекшим временем
// окончания в completed. Запускается периодически из фонового воркера.
func (s *Service) CompleteExpired(ctx context.Context, now time.Time) (int64, error) {
	completed, err := s.bookingRepo.CompleteExpired(ctx, now)
	if err != nil {
		s.logger.Error("CompleteExpired: repository error: %v", err)
		return 0, fmt.Errorf("%w: CompleteExpired - repository error: %v", ErrInternal, err)
	}

	if completed > 0 {
		s.logger.Info("CompleteExpired: completed %d expired bookings", completed)
	}

	return completed, nil
}
