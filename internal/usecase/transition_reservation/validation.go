package transition_reservation

import (
	"fmt"
	"strings"

	"github.com/m1zuki/RSV-AvailabilityService/internal/domain"
)

// validateTransitionRequest валидирует запрос на переход статуса
// Отмена идет отдельной операцией с причиной, поэтому cancelled здесь запрещен
func validateTransitionRequest(req *TransitionRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservation_id must be positive, got %d", ErrInvalidInput, req.ReservationID)
	}

	switch req.TargetStatus {
	case domain.StatusConfirmed, domain.StatusCompleted:
		return nil
	case domain.StatusCancelled:
		return fmt.Errorf("%w: use the cancel operation to cancel a reservation", ErrInvalidInput)
	default:
		return fmt.Errorf("%w: unknown target status %q", ErrInvalidInput, req.TargetStatus)
	}
}

// validateCancelRequest валидирует запрос на отмену
func validateCancelRequest(req *CancelRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservation_id must be positive, got %d", ErrInvalidInput, req.ReservationID)
	}

	if strings.TrimSpace(req.Reason) == "" {
		return ErrReasonRequired
	}
	if len(req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	return nil
}
