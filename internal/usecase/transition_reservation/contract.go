package transition_reservation

import (
	"context"

	"github.com/m1zuki/RSV-AvailabilityService/internal/domain"
)

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	// UpdateStatusFrom меняет статус через compare-and-set от статуса from
	UpdateStatusFrom(ctx context.Context, id int64, from, to domain.ReservationStatus) error
	// CancelFrom отменяет бронь с причиной через compare-and-set от статуса from
	CancelFrom(ctx context.Context, id int64, from domain.ReservationStatus, reason string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
