package transition_reservation

import (
	"github.com/m1zuki/RSV-AvailabilityService/internal/domain"
	transitionReservation "github.com/m1zuki/RSV-AvailabilityService/internal/usecase/transition_reservation"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"` // "confirmed" или "completed"
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateStatusRequest) ToUseCaseRequest(reservationID int64) *transitionReservation.TransitionRequest {
	return &transitionReservation.TransitionRequest{
		ReservationID: reservationID,
		TargetStatus:  domain.ReservationStatus(r.Status),
	}
}
