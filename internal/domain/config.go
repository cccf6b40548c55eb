package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m1zuki/RSV-AvailabilityService/pkg/types"
)

// AggregationPolicy defines how availability of linked staff is combined
type AggregationPolicy string

const (
	// PolicyAny makes a slot bookable when at least one linked staff member is free
	PolicyAny AggregationPolicy = "any"
	// PolicyAll makes a slot bookable only when every linked staff member is free
	PolicyAll AggregationPolicy = "all"
)

// AcceptDay is a day-of-week entry of a calendar's accept_days set
// In addition to the seven weekdays, "holiday" marks public holidays as accepted
type AcceptDay string

const (
	DayMonday    AcceptDay = "monday"
	DayTuesday   AcceptDay = "tuesday"
	DayWednesday AcceptDay = "wednesday"
	DayThursday  AcceptDay = "thursday"
	DayFriday    AcceptDay = "friday"
	DaySaturday  AcceptDay = "saturday"
	DaySunday    AcceptDay = "sunday"
	DayHoliday   AcceptDay = "holiday"
)

// acceptDayByWeekday maps time.Weekday to the corresponding AcceptDay entry
var acceptDayByWeekday = map[time.Weekday]AcceptDay{
	time.Monday:    DayMonday,
	time.Tuesday:   DayTuesday,
	time.Wednesday: DayWednesday,
	time.Thursday:  DayThursday,
	time.Friday:    DayFriday,
	time.Saturday:  DaySaturday,
	time.Sunday:    DaySunday,
}

// AcceptDays is the set of days a calendar accepts bookings on
type AcceptDays []AcceptDay

// ContainsWeekday returns true if the set accepts the given weekday
func (d AcceptDays) ContainsWeekday(wd time.Weekday) bool {
	want := acceptDayByWeekday[wd]
	for _, day := range d {
		if day == want {
			return true
		}
	}
	return false
}

// ContainsHoliday returns true if the set accepts public holidays
func (d AcceptDays) ContainsHoliday() bool {
	for _, day := range d {
		if day == DayHoliday {
			return true
		}
	}
	return false
}

// StaffLink links a staff member to a calendar with a priority
// Higher priority wins when the Any policy must choose among free staff
type StaffLink struct {
	CalendarID int64
	StaffID    int64
	Priority   int
}

// CalendarConfig is the booking configuration of a single calendar
type CalendarConfig struct {
	ID                    int64
	TenantID              int64
	Name                  string
	Policy                AggregationPolicy
	AcceptDays            AcceptDays
	DayStart              types.TimeString // daily booking window start, "HH:MM"
	DayEnd                types.TimeString // daily booking window end, "HH:MM"
	SlotIntervalMinutes   int
	EventDurationMinutes  int
	DaysInAdvance         int // booking horizon in days
	MinHoursBeforeBooking int // minimum lead time in hours
	StaffLinks            []StaffLink
	IsActive              bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Validate checks the calendar configuration invariants
// An invalid configuration is rejected before any slot computation
func (c *CalendarConfig) Validate() error {
	if c.SlotIntervalMinutes <= 0 {
		return errors.New("slot interval must be positive")
	}
	if c.EventDurationMinutes <= 0 {
		return errors.New("event duration must be positive")
	}
	if c.DaysInAdvance < 0 {
		return errors.New("days in advance must not be negative")
	}
	if c.MinHoursBeforeBooking < 0 {
		return errors.New("min hours before booking must not be negative")
	}
	if c.Policy != PolicyAny && c.Policy != PolicyAll {
		return fmt.Errorf("unknown aggregation policy %q", c.Policy)
	}
	if len(c.AcceptDays) == 0 {
		return errors.New("accept days must not be empty")
	}
	if len(c.StaffLinks) == 0 {
		return errors.New("calendar has no linked staff")
	}

	if err := c.DayStart.Validate(); err != nil {
		return fmt.Errorf("day start: %v", err)
	}
	if err := c.DayEnd.Validate(); err != nil {
		return fmt.Errorf("day end: %v", err)
	}
	if !c.DayStart.IsBefore(c.DayEnd) {
		return errors.New("day start must be before day end")
	}

	// The daily window must fit at least one event
	startMin, _ := c.DayStart.Minutes()
	endMin, _ := c.DayEnd.Minutes()
	if endMin-startMin < c.EventDurationMinutes {
		return errors.New("daily window is shorter than event duration")
	}

	seen := make(map[int64]struct{}, len(c.StaffLinks))
	for _, link := range c.StaffLinks {
		if _, ok := seen[link.StaffID]; ok {
			return fmt.Errorf("duplicate staff link for staff id=%d", link.StaffID)
		}
		seen[link.StaffID] = struct{}{}
	}

	return nil
}

// StaffIDs returns the linked staff ids in link order
func (c *CalendarConfig) StaffIDs() []int64 {
	ids := make([]int64, len(c.StaffLinks))
	for i, link := range c.StaffLinks {
		ids[i] = link.StaffID
	}
	return ids
}

// PriorityOf returns the priority of the given staff id (0 when not linked)
func (c *CalendarConfig) PriorityOf(staffID int64) int {
	for _, link := range c.StaffLinks {
		if link.StaffID == staffID {
			return link.Priority
		}
	}
	return 0
}

// HasStaff returns true if the staff member is linked to the calendar
func (c *CalendarConfig) HasStaff(staffID int64) bool {
	for _, link := range c.StaffLinks {
		if link.StaffID == staffID {
			return true
		}
	}
	return false
}
