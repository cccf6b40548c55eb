package notifier

import "time"

// ReservationCreatedEvent событие о созданной брони для роутера уведомлений
// (Slack и LINE отправители живут на стороне роутера)
type ReservationCreatedEvent struct {
	ReservationID   int64     `json:"reservationId"`
	CalendarID      int64     `json:"calendarId"`
	StaffID         int64     `json:"staffId"`
	StartAt         time.Time `json:"startAt"`
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`
	CustomerName    string    `json:"customerName"`
	CustomerLineID  *string   `json:"customerLineId,omitempty"`
}
