package cancel_reservation

import (
	transitionReservation "github.com/m1zuki/RSV-AvailabilityService/internal/usecase/transition_reservation"
)

// CancelReservationRequest HTTP request model
type CancelReservationRequest struct {
	Reason string `json:"reason"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CancelReservationRequest) ToUseCaseRequest(reservationID int64) *transitionReservation.CancelRequest {
	return &transitionReservation.CancelRequest{
		ReservationID: reservationID,
		Reason:        r.Reason,
	}
}
