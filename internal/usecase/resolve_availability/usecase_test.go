package resolve_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m1zuki/RSV-AvailabilityService/internal/domain"
	"github.com/m1zuki/RSV-AvailabilityService/internal/infra/storage/calendar"
	"github.com/m1zuki/RSV-AvailabilityService/internal/integrations/gcalsync"
)

// --- Тестовые фейки ---

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeTime struct{ now time.Time }

func (f fakeTime) Now() time.Time { return f.now }

type fakeCalendarRepo struct {
	cfg *domain.CalendarConfig
	err error
}

func (f *fakeCalendarRepo) GetByID(_ context.Context, _ int64) (*domain.CalendarConfig, error) {
	return f.cfg, f.err
}

type fakeReservationRepo struct {
	byStaff map[int64][]*domain.Reservation
	err     error
}

func (f *fakeReservationRepo) GetActiveByStaffInRange(_ context.Context, staffIDs []int64, _, _ time.Time) ([]*domain.Reservation, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.Reservation, 0)
	for _, id := range staffIDs {
		out = append(out, f.byStaff[id]...)
	}
	return out, nil
}

type fakeOverrideRepo struct {
	byStaff map[int64][]*domain.AvailabilityOverride
	err     error
}

func (f *fakeOverrideRepo) GetByStaffInRange(_ context.Context, staffID int64, _, _ time.Time) ([]*domain.AvailabilityOverride, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byStaff[staffID], nil
}

type fakeExternalClient struct {
	byStaff map[int64][]gcalsync.BusyPeriod
	errFor  map[int64]error
}

func (f *fakeExternalClient) FetchBusyPeriods(_ context.Context, staffID int64, _, _ time.Time) ([]gcalsync.BusyPeriod, error) {
	if err := f.errFor[staffID]; err != nil {
		return nil, err
	}
	return f.byStaff[staffID], nil
}

func newTestUseCase(t *testing.T, cfg *domain.CalendarConfig, resRepo *fakeReservationRepo, ovRepo *fakeOverrideRepo, ext *fakeExternalClient, now time.Time) *UseCase {
	t.Helper()
	return New(
		&fakeCalendarRepo{cfg: cfg},
		resRepo,
		ovRepo,
		ext,
		&NoHolidaysProvider{},
		fakeTime{now: now},
		time.Second,
		nopLogger{},
	)
}

func emptyFakes() (*fakeReservationRepo, *fakeOverrideRepo, *fakeExternalClient) {
	return &fakeReservationRepo{byStaff: map[int64][]*domain.Reservation{}},
		&fakeOverrideRepo{byStaff: map[int64][]*domain.AvailabilityOverride{}},
		&fakeExternalClient{byStaff: map[int64][]gcalsync.BusyPeriod{}, errFor: map[int64]error{}}
}

// --- Тесты ---

func TestUseCase_Execute(t *testing.T) {
	monday := time.Date(2026, time.September, 14, 0, 0, 0, 0, time.UTC)
	now := monday.AddDate(0, 0, -1)

	baseRequest := &Request{CalendarID: 1, FromDate: monday, ToDate: monday}

	t.Run("happy path returns free slots", func(t *testing.T) {
		cfg := twoStaffConfig(t, domain.PolicyAny)
		resRepo, ovRepo, ext := emptyFakes()

		// Сотрудник 10 занят внешним событием 10:00-11:00
		ext.byStaff[10] = []gcalsync.BusyPeriod{
			{Start: monday.Add(10 * time.Hour), End: monday.Add(11 * time.Hour)},
		}

		uc := newTestUseCase(t, cfg, resRepo, ovRepo, ext, now)
		resp, err := uc.Execute(context.Background(), baseRequest)
		require.NoError(t, err)

		require.Len(t, resp.Slots, 3)
		assert.Equal(t, []int64{20}, resp.Slots[0].FreeStaffIDs)
		assert.Equal(t, []int64{10, 20}, resp.Slots[2].FreeStaffIDs)
	})

	t.Run("existing reservation blocks slot", func(t *testing.T) {
		cfg := testConfig(t) // один сотрудник 10
		resRepo, ovRepo, ext := emptyFakes()

		resRepo.byStaff = map[int64][]*domain.Reservation{
			10: {{
				StaffID:         10,
				StartAt:         monday.Add(10 * time.Hour),
				DurationMinutes: 60,
				Status:          domain.StatusConfirmed,
			}},
		}

		uc := newTestUseCase(t, cfg, resRepo, ovRepo, ext, now)
		resp, err := uc.Execute(context.Background(), baseRequest)
		require.NoError(t, err)

		// Из {10:00, 10:30, 11:00} остается только 11:00
		require.Len(t, resp.Slots, 1)
		assert.Equal(t, monday.Add(11*time.Hour), resp.Slots[0].StartAt)
	})

	t.Run("inactive calendar returns empty list", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.IsActive = false
		resRepo, ovRepo, ext := emptyFakes()

		uc := newTestUseCase(t, cfg, resRepo, ovRepo, ext, now)
		resp, err := uc.Execute(context.Background(), baseRequest)

		require.NoError(t, err)
		assert.Empty(t, resp.Slots)
	})

	t.Run("calendar not found", func(t *testing.T) {
		resRepo, ovRepo, ext := emptyFakes()
		uc := New(&fakeCalendarRepo{err: calendar.ErrCalendarNotFound}, resRepo, ovRepo, ext,
			nil, fakeTime{now: now}, time.Second, nopLogger{})

		_, err := uc.Execute(context.Background(), baseRequest)
		assert.ErrorIs(t, err, ErrCalendarNotFound)
	})

	t.Run("invalid configuration rejected", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.SlotIntervalMinutes = 0
		resRepo, ovRepo, ext := emptyFakes()

		uc := newTestUseCase(t, cfg, resRepo, ovRepo, ext, now)
		_, err := uc.Execute(context.Background(), baseRequest)
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	})

	t.Run("failed staff degrades to fully busy", func(t *testing.T) {
		cfg := twoStaffConfig(t, domain.PolicyAny)
		resRepo, ovRepo, ext := emptyFakes()
		ext.errFor[10] = gcalsync.ErrExternalCalendarUnavailable

		uc := newTestUseCase(t, cfg, resRepo, ovRepo, ext, now)
		resp, err := uc.Execute(context.Background(), baseRequest)
		require.NoError(t, err)

		// Слоты остаются только за счет сотрудника 20
		require.Len(t, resp.Slots, 3)
		for _, slot := range resp.Slots {
			assert.Equal(t, []int64{20}, slot.FreeStaffIDs)
		}
	})

	t.Run("staff without connected calendar is not degraded", func(t *testing.T) {
		cfg := twoStaffConfig(t, domain.PolicyAny)
		resRepo, ovRepo, ext := emptyFakes()
		ext.errFor[10] = gcalsync.ErrStaffNotConnected

		uc := newTestUseCase(t, cfg, resRepo, ovRepo, ext, now)
		resp, err := uc.Execute(context.Background(), baseRequest)
		require.NoError(t, err)

		// Сотрудник 10 остается свободным: внешней занятости у него просто нет
		require.Len(t, resp.Slots, 3)
		assert.Equal(t, []int64{10, 20}, resp.Slots[0].FreeStaffIDs)
	})

	t.Run("all staff degraded is unresolvable", func(t *testing.T) {
		cfg := twoStaffConfig(t, domain.PolicyAny)
		resRepo, ovRepo, ext := emptyFakes()
		ext.errFor[10] = gcalsync.ErrExternalCalendarUnavailable
		ext.errFor[20] = errors.New("timeout")

		uc := newTestUseCase(t, cfg, resRepo, ovRepo, ext, now)
		_, err := uc.Execute(context.Background(), baseRequest)
		assert.ErrorIs(t, err, ErrAvailabilityUnresolvable)
	})

	t.Run("invalid input", func(t *testing.T) {
		cfg := testConfig(t)
		resRepo, ovRepo, ext := emptyFakes()
		uc := newTestUseCase(t, cfg, resRepo, ovRepo, ext, now)

		_, err := uc.Execute(context.Background(), &Request{CalendarID: 0, FromDate: monday, ToDate: monday})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = uc.Execute(context.Background(), &Request{CalendarID: 1, FromDate: monday, ToDate: monday.AddDate(0, 0, -1)})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestUseCase_ResolveSlot(t *testing.T) {
	monday := time.Date(2026, time.September, 14, 0, 0, 0, 0, time.UTC)
	now := monday.AddDate(0, 0, -1)
	slotStart := monday.Add(10 * time.Hour)

	t.Run("valid slot with free staff", func(t *testing.T) {
		cfg := twoStaffConfig(t, domain.PolicyAny)
		resRepo, ovRepo, ext := emptyFakes()
		uc := newTestUseCase(t, cfg, resRepo, ovRepo, ext, now)

		slot, err := uc.ResolveSlot(context.Background(), cfg, slotStart, now)
		require.NoError(t, err)
		assert.Equal(t, []int64{10, 20}, slot.FreeStaffIDs)
	})

	t.Run("off-grid time rejected", func(t *testing.T) {
		cfg := testConfig(t)
		resRepo, ovRepo, ext := emptyFakes()
		uc := newTestUseCase(t, cfg, resRepo, ovRepo, ext, now)

		_, err := uc.ResolveSlot(context.Background(), cfg, monday.Add(10*time.Hour+15*time.Minute), now)
		assert.ErrorIs(t, err, ErrSlotNotInGrid)
	})

	t.Run("client offset does not shift the grid", func(t *testing.T) {
		cfg := testConfig(t)
		resRepo, ovRepo, ext := emptyFakes()
		uc := newTestUseCase(t, cfg, resRepo, ovRepo, ext, now)

		jst := time.FixedZone("JST", 9*60*60)

		// 10:30+09:00 = 01:30 UTC, вне канонической сетки {10:00, 10:30, 11:00} UTC
		_, err := uc.ResolveSlot(context.Background(), cfg, time.Date(2026, time.September, 14, 10, 30, 0, 0, jst), now)
		assert.ErrorIs(t, err, ErrSlotNotInGrid)

		// Тот же момент, что 10:30 UTC, в другом представлении принимается
		slot, err := uc.ResolveSlot(context.Background(), cfg, time.Date(2026, time.September, 14, 19, 30, 0, 0, jst), now)
		require.NoError(t, err)
		assert.True(t, slot.StartAt.Equal(monday.Add(10*time.Hour+30*time.Minute)))
	})

	t.Run("taken slot returns empty free set", func(t *testing.T) {
		cfg := testConfig(t)
		resRepo, ovRepo, ext := emptyFakes()
		resRepo.byStaff = map[int64][]*domain.Reservation{
			10: {{
				StaffID:         10,
				StartAt:         slotStart,
				DurationMinutes: 60,
				Status:          domain.StatusPending,
			}},
		}

		uc := newTestUseCase(t, cfg, resRepo, ovRepo, ext, now)
		slot, err := uc.ResolveSlot(context.Background(), cfg, slotStart, now)
		require.NoError(t, err)
		assert.False(t, slot.HasFreeStaff())
	})
}
