package domain

import "time"

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
)

// IsTerminal returns true if no further transitions are allowed from the status
func (s ReservationStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Reservation represents a committed booking for one slot of one staff member
type Reservation struct {
	ID              int64
	CalendarID      int64
	StaffID         int64
	StartAt         time.Time
	DurationMinutes int
	Status          ReservationStatus

	// Customer identity as supplied by the booking front end
	CustomerName   string
	CustomerLineID *string
	CustomerPhone  *string
	Notes          *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndAt returns the exclusive end instant of the reservation
func (r *Reservation) EndAt() time.Time {
	return r.StartAt.Add(time.Duration(r.DurationMinutes) * time.Minute)
}

// IsActive returns true if the reservation blocks its time range
// Cancelled reservations release the slot; completed ones keep it occupied
func (r *Reservation) IsActive() bool {
	return r.Status != StatusCancelled
}

// CanBeCancelled returns true if the reservation can still be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// CanTransitionTo reports whether the status transition is allowed by the
// reservation state machine:
//
//	pending   -> confirmed | completed | cancelled
//	confirmed -> completed | cancelled
//	completed, cancelled: terminal
func (r *Reservation) CanTransitionTo(target ReservationStatus) bool {
	if r.Status.IsTerminal() {
		return false
	}

	switch target {
	case StatusConfirmed:
		return r.Status == StatusPending
	case StatusCompleted, StatusCancelled:
		return r.Status == StatusPending || r.Status == StatusConfirmed
	default:
		return false
	}
}

// CalendarReservationsFilter filters reservations of a calendar
type CalendarReservationsFilter struct {
	CalendarID      int64      // required
	StaffID         *int64     // optional staff filter
	StartAt         *time.Time // optional range start (inclusive)
	EndAt           *time.Time // optional range end (exclusive)
	Status          *ReservationStatus
	IncludeInactive bool // include cancelled reservations
}
