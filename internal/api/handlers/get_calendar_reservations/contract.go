package get_calendar_reservations

import (
	"context"

	"github.com/m1zuki/RSV-AvailabilityService/internal/domain"
)

type ReservationService interface {
	GetCalendarReservations(ctx context.Context, filter domain.CalendarReservationsFilter) ([]*domain.Reservation, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
