package commit_reservation

import (
	"fmt"
	"time"

	commitReservation "github.com/m1zuki/RSV-AvailabilityService/internal/usecase/commit_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	CalendarID     int64   `json:"calendarId"`
	StartAt        string  `json:"startAt"` // RFC3339
	StaffID        *int64  `json:"staffId,omitempty"`
	CustomerName   string  `json:"customerName"`
	CustomerLineID *string `json:"customerLineId,omitempty"`
	CustomerPhone  *string `json:"customerPhone,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(createdByAdmin bool) (*commitReservation.Request, error) {
	startAt, err := time.Parse(time.RFC3339, r.StartAt)
	if err != nil {
		return nil, fmt.Errorf("parse start time: %w", err)
	}

	// Сетка календаря каноническая в UTC, клиентское смещение из RFC3339
	// не должно влиять на валидацию и хранение момента начала
	return &commitReservation.Request{
		CalendarID:       r.CalendarID,
		StartAt:          startAt.UTC(),
		RequestedStaffID: r.StaffID,
		CustomerName:     r.CustomerName,
		CustomerLineID:   r.CustomerLineID,
		CustomerPhone:    r.CustomerPhone,
		Notes:            r.Notes,
		CreatedByAdmin:   createdByAdmin,
	}, nil
}
