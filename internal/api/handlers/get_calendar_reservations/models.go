package get_calendar_reservations

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m1zuki/RSV-AvailabilityService/internal/api/handlers"
	"github.com/m1zuki/RSV-AvailabilityService/internal/domain"
)

// CalendarReservationsResponse HTTP response model
type CalendarReservationsResponse struct {
	CalendarID   int64                       `json:"calendarId"`
	Reservations []*handlers.ReservationView `json:"reservations"`
}

// ParseFilter собирает фильтр броней календаря из query параметров
// Поддерживаются from/to (RFC3339), status, staffId и includeCancelled
func ParseFilter(calendarID int64, query url.Values) (domain.CalendarReservationsFilter, error) {
	filter := domain.CalendarReservationsFilter{CalendarID: calendarID}

	if raw := query.Get("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, fmt.Errorf("parse from: %w", err)
		}
		filter.StartAt = &from
	}

	if raw := query.Get("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, fmt.Errorf("parse to: %w", err)
		}
		filter.EndAt = &to
	}

	if raw := query.Get("status"); raw != "" {
		status := domain.ReservationStatus(raw)
		filter.Status = &status
	}

	if raw := query.Get("staffId"); raw != "" {
		staffID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, fmt.Errorf("parse staffId: %w", err)
		}
		filter.StaffID = &staffID
	}

	if query.Get("includeCancelled") == "true" {
		filter.IncludeInactive = true
	}

	return filter, nil
}

// FromReservations конвертирует брони в HTTP response
func FromReservations(calendarID int64, list []*domain.Reservation) *CalendarReservationsResponse {
	views := make([]*handlers.ReservationView, 0, len(list))
	for _, res := range list {
		views = append(views, handlers.NewReservationView(res))
	}

	return &CalendarReservationsResponse{
		CalendarID:   calendarID,
		Reservations: views,
	}
}
