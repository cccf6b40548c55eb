package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m1zuki/RSV-AvailabilityService/internal/domain"
	"github.com/m1zuki/RSV-AvailabilityService/internal/infra/storage/calendar"
	"github.com/m1zuki/RSV-AvailabilityService/internal/infra/storage/reservation"
)

// Service read-запросы к броням
type Service struct {
	reservationRepo ReservationRepository
	calendarRepo    CalendarRepository
	logger          Logger
}

// New создает новый сервис чтения броней
func New(reservationRepo ReservationRepository, calendarRepo CalendarRepository, logger Logger) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		calendarRepo:    calendarRepo,
		logger:          logger,
	}
}

// GetByID получает бронь по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: reservation_id must be positive, got %d", ErrInvalidInput, id)
	}

	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservation.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetReservation: failed to get reservation_id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: get reservation: %v", ErrInternal, err)
	}

	return res, nil
}

// GetCalendarReservations получает брони календаря с фильтрацией
// Существование календаря проверяется явно: пустой список означает
// "броней нет", а не "календаря нет"
func (s *Service) GetCalendarReservations(ctx context.Context, filter domain.CalendarReservationsFilter) ([]*domain.Reservation, error) {
	if filter.CalendarID <= 0 {
		return nil, fmt.Errorf("%w: calendar_id must be positive, got %d", ErrInvalidInput, filter.CalendarID)
	}
	if filter.StartAt != nil && filter.EndAt != nil && !filter.StartAt.Before(*filter.EndAt) {
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}
	if filter.Status != nil && !isValidStatus(*filter.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *filter.Status)
	}

	if _, err := s.calendarRepo.GetByID(ctx, filter.CalendarID); err != nil {
		if errors.Is(err, calendar.ErrCalendarNotFound) {
			return nil, ErrCalendarNotFound
		}
		s.logger.Error("GetCalendarReservations: failed to get calendar_id=%d: %v", filter.CalendarID, err)
		return nil, fmt.Errorf("%w: get calendar: %v", ErrInternal, err)
	}

	list, err := s.reservationRepo.GetByCalendarWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetCalendarReservations: query failed for calendar_id=%d: %v", filter.CalendarID, err)
		return nil, fmt.Errorf("%w: get reservations: %v", ErrInternal, err)
	}

	return list, nil
}

// isValidStatus проверяет, что статус известен статусной машине
func isValidStatus(status domain.ReservationStatus) bool {
	for _, s := range domain.ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}
