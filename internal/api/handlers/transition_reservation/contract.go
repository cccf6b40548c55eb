package transition_reservation

import (
	"context"

	transitionReservation "github.com/m1zuki/RSV-AvailabilityService/internal/usecase/transition_reservation"
)

type TransitionReservationUseCase interface {
	Transition(ctx context.Context, req *transitionReservation.TransitionRequest) (*transitionReservation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
