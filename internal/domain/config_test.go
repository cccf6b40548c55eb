package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m1zuki/RSV-AvailabilityService/pkg/types"
)

func validConfig(t *testing.T) *CalendarConfig {
	t.Helper()

	dayStart, err := types.NewTimeStringFromString("10:00")
	require.NoError(t, err)
	dayEnd, err := types.NewTimeStringFromString("18:00")
	require.NoError(t, err)

	return &CalendarConfig{
		ID:                    1,
		TenantID:              1,
		Name:                  "Консультации",
		Policy:                PolicyAny,
		AcceptDays:            AcceptDays{DayMonday, DayTuesday, DayWednesday},
		DayStart:              dayStart,
		DayEnd:                dayEnd,
		SlotIntervalMinutes:   30,
		EventDurationMinutes:  60,
		DaysInAdvance:         30,
		MinHoursBeforeBooking: 1,
		StaffLinks: []StaffLink{
			{CalendarID: 1, StaffID: 10, Priority: 2},
			{CalendarID: 1, StaffID: 20, Priority: 1},
		},
		IsActive: true,
	}
}

func TestCalendarConfig_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, validConfig(t).Validate())
	})

	t.Run("zero slot interval", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.SlotIntervalMinutes = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown policy", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.Policy = "majority"
		assert.Error(t, cfg.Validate())
	})

	t.Run("empty accept days", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.AcceptDays = nil
		assert.Error(t, cfg.Validate())
	})

	t.Run("no staff links", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.StaffLinks = nil
		assert.Error(t, cfg.Validate())
	})

	t.Run("day start after day end", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.DayStart, cfg.DayEnd = cfg.DayEnd, cfg.DayStart
		assert.Error(t, cfg.Validate())
	})

	t.Run("window shorter than event", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.EventDurationMinutes = 600
		assert.Error(t, cfg.Validate())
	})

	t.Run("duplicate staff link", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.StaffLinks = append(cfg.StaffLinks, StaffLink{CalendarID: 1, StaffID: 10})
		assert.Error(t, cfg.Validate())
	})
}

func TestAcceptDays(t *testing.T) {
	days := AcceptDays{DayMonday, DayFriday, DayHoliday}

	assert.True(t, days.ContainsWeekday(time.Monday))
	assert.True(t, days.ContainsWeekday(time.Friday))
	assert.False(t, days.ContainsWeekday(time.Sunday))
	assert.True(t, days.ContainsHoliday())
	assert.False(t, AcceptDays{DayMonday}.ContainsHoliday())
}

func TestCalendarConfig_StaffHelpers(t *testing.T) {
	cfg := validConfig(t)

	assert.Equal(t, []int64{10, 20}, cfg.StaffIDs())
	assert.Equal(t, 2, cfg.PriorityOf(10))
	assert.Equal(t, 0, cfg.PriorityOf(99))
	assert.True(t, cfg.HasStaff(20))
	assert.False(t, cfg.HasStaff(99))
}
