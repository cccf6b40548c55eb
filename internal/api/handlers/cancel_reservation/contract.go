package cancel_reservation

import (
	"context"

	transitionReservation "github.com/m1zuki/RSV-AvailabilityService/internal/usecase/transition_reservation"
)

type CancelReservationUseCase interface {
	Cancel(ctx context.Context, req *transitionReservation.CancelRequest) (*transitionReservation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
