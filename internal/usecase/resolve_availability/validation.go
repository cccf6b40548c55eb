package resolve_availability

import (
	"fmt"

	"github.com/m1zuki/RSV-AvailabilityService/internal/domain"
)

// validateRequest валидирует запрос на вычисление доступности
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	if req.CalendarID <= 0 {
		return fmt.Errorf("%w: calendar_id must be positive, got %d", ErrInvalidInput, req.CalendarID)
	}

	if req.FromDate.IsZero() || req.ToDate.IsZero() {
		return fmt.Errorf("%w: from and to dates are required", ErrInvalidInput)
	}

	if req.ToDate.Before(req.FromDate) {
		return fmt.Errorf("%w: to date %s is before from date %s",
			ErrInvalidInput, req.ToDate.Format(domain.DateFormat), req.FromDate.Format(domain.DateFormat))
	}

	rangeDays := int(req.ToDate.Sub(req.FromDate).Hours()/24) + 1
	if rangeDays > domain.MaxAvailabilityRangeDays {
		return fmt.Errorf("%w: date range covers %d days, maximum is %d",
			ErrInvalidInput, rangeDays, domain.MaxAvailabilityRangeDays)
	}

	return nil
}
