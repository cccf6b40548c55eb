package domain

import (
	"time"

	"github.com/m1zuki/RSV-AvailabilityService/pkg/types"
)

// OverrideType is the kind of a manual availability override
type OverrideType string

const (
	// OverrideHoliday blocks the whole day for the staff member
	OverrideHoliday OverrideType = "holiday"
	// OverrideBusy blocks the [StartTime, EndTime) interval of the day
	OverrideBusy OverrideType = "busy"
	// OverrideAvailable frees the [StartTime, EndTime) interval on a day
	// blocked by a holiday override; on a normal day it is a no-op, since
	// the default assumption is "free unless marked busy"
	OverrideAvailable OverrideType = "available"
)

// AvailabilityOverride is a manual per-day adjustment of a staff member's
// availability, entered by the tenant admin
type AvailabilityOverride struct {
	ID        int64
	StaffID   int64
	Date      time.Time // date only, time part is ignored
	Type      OverrideType
	StartTime *types.TimeString // nil for whole-day overrides
	EndTime   *types.TimeString
}
