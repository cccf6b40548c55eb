package domain

import "time"

// Default configuration values
const (
	DefaultSlotIntervalMinutes  = 30
	DefaultEventDurationMinutes = 60
	DefaultDaysInAdvance        = 30
	DefaultMinHoursBefore       = 1

	// DefaultStaffFetchTimeout bounds each per-staff busy-data fetch
	DefaultStaffFetchTimeout = 3 * time.Second
)

// Business validation constants
const (
	MinSlotIntervalMinutes      = 5
	MaxSlotIntervalMinutes      = 480 // 8 hours
	MinEventDurationMinutes     = 5
	MaxEventDurationMinutes     = 480
	MaxDaysInAdvance            = 365 // 1 year
	MaxAvailabilityRangeDays    = 62  // widest date range a single availability query may cover
	MaxMinHoursBeforeBooking    = 168 // 1 week
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxCustomerNameLength       = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses are statuses that occupy the staff member's time range
// Used by overlap checks and when collecting existing-reservation busy intervals
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}

// ValidStatuses are all statuses a reservation can carry
var ValidStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
}
