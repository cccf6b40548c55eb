package domain

import "time"

// CandidateSlot is a bookable start time produced by an availability query
// FreeStaffIDs is ordered by descending priority, ties broken by ascending
// staff id. Slots are never cached across requests: external busy data moves.
type CandidateSlot struct {
	CalendarID      int64
	StartAt         time.Time
	DurationMinutes int
	FreeStaffIDs    []int64
	AssignedStaffID *int64 // set at commit time only
}

// EndAt returns the exclusive end instant of the slot
func (s *CandidateSlot) EndAt() time.Time {
	return s.StartAt.Add(time.Duration(s.DurationMinutes) * time.Minute)
}

// HasFreeStaff returns true if at least one staff member is free for the slot
func (s *CandidateSlot) HasFreeStaff() bool {
	return len(s.FreeStaffIDs) > 0
}

// ContainsStaff returns true if the staff member is free for the slot
func (s *CandidateSlot) ContainsStaff(staffID int64) bool {
	for _, id := range s.FreeStaffIDs {
		if id == staffID {
			return true
		}
	}
	return false
}
