package domain

import (
	"sort"
	"time"
)

// BusySource tags where a busy interval came from
type BusySource string

const (
	SourceExternalCalendar    BusySource = "external-calendar"
	SourceManualOverride      BusySource = "manual-override"
	SourceExistingReservation BusySource = "existing-reservation"
)

// BusyInterval is a half-open time range [Start, End) during which
// a staff member cannot take reservations
type BusyInterval struct {
	StaffID int64
	Start   time.Time
	End     time.Time
	Source  BusySource
}

// IsValid returns true if the interval is non-empty (Start < End)
func (b BusyInterval) IsValid() bool {
	return b.Start.Before(b.End)
}

// Overlaps returns true if the interval overlaps the half-open range [start, end)
// Touching boundaries do not count as overlap
func (b BusyInterval) Overlaps(start, end time.Time) bool {
	return b.Start.Before(end) && b.End.After(start)
}

// MergeBusyIntervals merges overlapping and adjacent intervals into a sorted,
// non-overlapping list. Invalid (empty) intervals are dropped. The operation is
// idempotent: merging already-merged output is a no-op.
//
// When intervals from different sources collapse into one, the merged interval
// keeps the source of the earliest contributing interval.
func MergeBusyIntervals(intervals []BusyInterval) []BusyInterval {
	valid := make([]BusyInterval, 0, len(intervals))
	for _, iv := range intervals {
		if iv.IsValid() {
			valid = append(valid, iv)
		}
	}

	if len(valid) == 0 {
		return []BusyInterval{}
	}

	sort.Slice(valid, func(i, j int) bool {
		if !valid[i].Start.Equal(valid[j].Start) {
			return valid[i].Start.Before(valid[j].Start)
		}
		return valid[i].End.Before(valid[j].End)
	})

	merged := make([]BusyInterval, 0, len(valid))
	current := valid[0]

	for _, iv := range valid[1:] {
		// Adjacent intervals ([a,b) + [b,c)) merge as well
		if !iv.Start.After(current.End) {
			if iv.End.After(current.End) {
				current.End = iv.End
			}
			continue
		}
		merged = append(merged, current)
		current = iv
	}

	return append(merged, current)
}

// AnyOverlaps returns true if any interval in the list overlaps [start, end)
func AnyOverlaps(intervals []BusyInterval, start, end time.Time) bool {
	for _, iv := range intervals {
		if iv.Overlaps(start, end) {
			return true
		}
	}
	return false
}
