package handlers

import (
	"time"

	"github.com/m1zuki/RSV-AvailabilityService/internal/domain"
)

// ReservationView HTTP представление брони, общее для всех handlers
type ReservationView struct {
	ID                 int64   `json:"id"`
	CalendarID         int64   `json:"calendarId"`
	StaffID            int64   `json:"staffId"`
	StartAt            string  `json:"startAt"`
	EndAt              string  `json:"endAt"`
	DurationMinutes    int     `json:"durationMinutes"`
	Status             string  `json:"status"`
	CustomerName       string  `json:"customerName"`
	CustomerLineID     *string `json:"customerLineId,omitempty"`
	CustomerPhone      *string `json:"customerPhone,omitempty"`
	Notes              *string `json:"notes,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`
	CreatedAt          string  `json:"createdAt"`
	UpdatedAt          string  `json:"updatedAt"`
}

// NewReservationView конвертирует доменную бронь в HTTP представление
func NewReservationView(res *domain.Reservation) *ReservationView {
	view := &ReservationView{
		ID:                 res.ID,
		CalendarID:         res.CalendarID,
		StaffID:            res.StaffID,
		StartAt:            res.StartAt.Format(time.RFC3339),
		EndAt:              res.EndAt().Format(time.RFC3339),
		DurationMinutes:    res.DurationMinutes,
		Status:             string(res.Status),
		CustomerName:       res.CustomerName,
		CustomerLineID:     res.CustomerLineID,
		CustomerPhone:      res.CustomerPhone,
		Notes:              res.Notes,
		CancellationReason: res.CancellationReason,
		CreatedAt:          res.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          res.UpdatedAt.Format(time.RFC3339),
	}

	if res.CancelledAt != nil {
		cancelledAt := res.CancelledAt.Format(time.RFC3339)
		view.CancelledAt = &cancelledAt
	}

	return view
}
