package commit_reservation

import (
	"fmt"
	"strings"

	"github.com/m1zuki/RSV-AvailabilityService/internal/domain"
)

// validateRequest валидирует запрос на создание брони
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	if req.CalendarID <= 0 {
		return fmt.Errorf("%w: calendar_id must be positive, got %d", ErrInvalidInput, req.CalendarID)
	}

	if req.StartAt.IsZero() {
		return fmt.Errorf("%w: start_at is required", ErrInvalidInput)
	}

	if req.RequestedStaffID != nil && *req.RequestedStaffID <= 0 {
		return fmt.Errorf("%w: staff_id must be positive, got %d", ErrInvalidInput, *req.RequestedStaffID)
	}

	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customer name exceeds %d characters", ErrInvalidInput, domain.MaxCustomerNameLength)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
