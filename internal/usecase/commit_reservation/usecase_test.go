package commit_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m1zuki/RSV-AvailabilityService/internal/domain"
	"github.com/m1zuki/RSV-AvailabilityService/internal/infra/storage/reservation"
	"github.com/m1zuki/RSV-AvailabilityService/internal/integrations/notifier"
	resolve "github.com/m1zuki/RSV-AvailabilityService/internal/usecase/resolve_availability"
	"github.com/m1zuki/RSV-AvailabilityService/pkg/ptr"
	"github.com/m1zuki/RSV-AvailabilityService/pkg/types"
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
	locked    []*domain.Reservation
	createErr error
	created   *domain.Reservation
}

func (f *fakeReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	res.ID = 100
	res.CreatedAt = time.Now()
	res.UpdatedAt = res.CreatedAt
	f.created = res
	return res, nil
}

func (f *fakeReservationRepo) GetActiveByStaffInRange(_ context.Context, staffIDs []int64, from, to time.Time) ([]*domain.Reservation, error) {
	out := make([]*domain.Reservation, 0)
	for _, res := range f.locked {
		for _, id := range staffIDs {
			if res.StaffID == id && res.StartAt.Before(to) && res.EndAt().After(from) {
				out = append(out, res)
			}
		}
	}
	return out, nil
}

type fakeSlotResolver struct {
	slot *domain.CandidateSlot
	err  error
}

func (f *fakeSlotResolver) ResolveSlot(_ context.Context, _ *domain.CalendarConfig, _ time.Time, _ time.Time) (*domain.CandidateSlot, error) {
	return f.slot, f.err
}

// fakeTxManager выполняет fn напрямую, без настоящей транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeNotifier struct {
	events chan *notifier.ReservationCreatedEvent
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{events: make(chan *notifier.ReservationCreatedEvent, 1)}
}

func (f *fakeNotifier) SendReservationCreated(_ context.Context, event *notifier.ReservationCreatedEvent) error {
	f.events <- event
	return nil
}

// --- Хелперы ---

func testConfig(t *testing.T, policy domain.AggregationPolicy) *domain.CalendarConfig {
	t.Helper()
	return &domain.CalendarConfig{
		ID:                    1,
		TenantID:              1,
		Policy:                policy,
		AcceptDays:            domain.AcceptDays{domain.DayMonday},
		DayStart:              types.TimeString("10:00"),
		DayEnd:                types.TimeString("12:00"),
		SlotIntervalMinutes:   30,
		EventDurationMinutes:  60,
		DaysInAdvance:         30,
		MinHoursBeforeBooking: 1,
		StaffLinks: []domain.StaffLink{
			{CalendarID: 1, StaffID: 10, Priority: 2},
			{CalendarID: 1, StaffID: 20, Priority: 1},
		},
		IsActive: true,
	}
}

func testRequest(startAt time.Time) *Request {
	return &Request{
		CalendarID:   1,
		StartAt:      startAt,
		CustomerName: "Иванов Иван",
	}
}

func newTestUseCase(cfg *domain.CalendarConfig, repo *fakeReservationRepo, resolver *fakeSlotResolver, notify *fakeNotifier, now time.Time) *UseCase {
	return New(
		&fakeCalendarRepo{cfg: cfg},
		repo,
		resolver,
		fakeTxManager{},
		notify,
		fakeTime{now: now},
		nopLogger{},
	)
}

func freeSlot(cfg *domain.CalendarConfig, startAt time.Time, staffIDs ...int64) *domain.CandidateSlot {
	return &domain.CandidateSlot{
		CalendarID:      cfg.ID,
		StartAt:         startAt,
		DurationMinutes: cfg.EventDurationMinutes,
		FreeStaffIDs:    staffIDs,
	}
}

// --- Тесты ---

func TestUseCase_Execute(t *testing.T) {
	monday := time.Date(2026, time.September, 14, 0, 0, 0, 0, time.UTC)
	slotStart := monday.Add(10 * time.Hour)
	now := monday.Add(8 * time.Hour)

	t.Run("assigns highest priority free staff", func(t *testing.T) {
		cfg := testConfig(t, domain.PolicyAny)
		repo := &fakeReservationRepo{}
		resolver := &fakeSlotResolver{slot: freeSlot(cfg, slotStart, 10, 20)}
		notify := newFakeNotifier()

		uc := newTestUseCase(cfg, repo, resolver, notify, now)
		resp, err := uc.Execute(context.Background(), testRequest(slotStart))
		require.NoError(t, err)

		assert.Equal(t, int64(10), resp.Reservation.StaffID)
		assert.Equal(t, domain.StatusPending, resp.Reservation.Status)
		assert.Equal(t, cfg.EventDurationMinutes, resp.Reservation.DurationMinutes)

		select {
		case event := <-notify.events:
			assert.Equal(t, resp.Reservation.ID, event.ReservationID)
		case <-time.After(time.Second):
			t.Fatal("notification was not sent")
		}
	})

	t.Run("admin reservation is confirmed immediately", func(t *testing.T) {
		cfg := testConfig(t, domain.PolicyAny)
		repo := &fakeReservationRepo{}
		resolver := &fakeSlotResolver{slot: freeSlot(cfg, slotStart, 10, 20)}

		uc := newTestUseCase(cfg, repo, resolver, newFakeNotifier(), now)
		req := testRequest(slotStart)
		req.CreatedByAdmin = true

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusConfirmed, resp.Reservation.Status)
	})

	t.Run("requested staff is honored", func(t *testing.T) {
		cfg := testConfig(t, domain.PolicyAny)
		repo := &fakeReservationRepo{}
		resolver := &fakeSlotResolver{slot: freeSlot(cfg, slotStart, 10, 20)}

		uc := newTestUseCase(cfg, repo, resolver, newFakeNotifier(), now)
		req := testRequest(slotStart)
		req.RequestedStaffID = ptr.Ptr(int64(20))

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, int64(20), resp.Reservation.StaffID)
	})

	t.Run("requested staff busy at phase one", func(t *testing.T) {
		cfg := testConfig(t, domain.PolicyAny)
		resolver := &fakeSlotResolver{slot: freeSlot(cfg, slotStart, 10)} // 20 занят

		uc := newTestUseCase(cfg, &fakeReservationRepo{}, resolver, newFakeNotifier(), now)
		req := testRequest(slotStart)
		req.RequestedStaffID = ptr.Ptr(int64(20))

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrSlotNoLongerAvailable)
	})

	t.Run("staff not linked", func(t *testing.T) {
		cfg := testConfig(t, domain.PolicyAny)
		resolver := &fakeSlotResolver{slot: freeSlot(cfg, slotStart, 10, 20)}

		uc := newTestUseCase(cfg, &fakeReservationRepo{}, resolver, newFakeNotifier(), now)
		req := testRequest(slotStart)
		req.RequestedStaffID = ptr.Ptr(int64(99))

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrStaffNotLinked)
	})

	t.Run("race lost inside transaction", func(t *testing.T) {
		cfg := testConfig(t, domain.PolicyAny)
		// Первая фаза видит обоих свободными, но в транзакции оба уже заняты
		resolver := &fakeSlotResolver{slot: freeSlot(cfg, slotStart, 10, 20)}
		repo := &fakeReservationRepo{locked: []*domain.Reservation{
			{StaffID: 10, StartAt: slotStart, DurationMinutes: 60, Status: domain.StatusPending},
			{StaffID: 20, StartAt: slotStart, DurationMinutes: 60, Status: domain.StatusPending},
		}}

		uc := newTestUseCase(cfg, repo, resolver, newFakeNotifier(), now)
		_, err := uc.Execute(context.Background(), testRequest(slotStart))
		assert.ErrorIs(t, err, ErrSlotNoLongerAvailable)
	})

	t.Run("falls back to next free staff inside transaction", func(t *testing.T) {
		cfg := testConfig(t, domain.PolicyAny)
		resolver := &fakeSlotResolver{slot: freeSlot(cfg, slotStart, 10, 20)}
		repo := &fakeReservationRepo{locked: []*domain.Reservation{
			{StaffID: 10, StartAt: slotStart, DurationMinutes: 60, Status: domain.StatusConfirmed},
		}}

		uc := newTestUseCase(cfg, repo, resolver, newFakeNotifier(), now)
		resp, err := uc.Execute(context.Background(), testRequest(slotStart))
		require.NoError(t, err)
		assert.Equal(t, int64(20), resp.Reservation.StaffID)
	})

	t.Run("exclusion constraint maps to slot no longer available", func(t *testing.T) {
		cfg := testConfig(t, domain.PolicyAny)
		resolver := &fakeSlotResolver{slot: freeSlot(cfg, slotStart, 10, 20)}
		repo := &fakeReservationRepo{createErr: reservation.ErrOverlapConstraint}

		uc := newTestUseCase(cfg, repo, resolver, newFakeNotifier(), now)
		_, err := uc.Execute(context.Background(), testRequest(slotStart))
		assert.ErrorIs(t, err, ErrSlotNoLongerAvailable)
	})

	t.Run("all policy requires every staff free", func(t *testing.T) {
		cfg := testConfig(t, domain.PolicyAll)
		resolver := &fakeSlotResolver{slot: freeSlot(cfg, slotStart, 10)} // 20 занят

		uc := newTestUseCase(cfg, &fakeReservationRepo{}, resolver, newFakeNotifier(), now)
		_, err := uc.Execute(context.Background(), testRequest(slotStart))
		assert.ErrorIs(t, err, ErrSlotNoLongerAvailable)
	})

	t.Run("all policy assigns highest priority staff", func(t *testing.T) {
		cfg := testConfig(t, domain.PolicyAll)
		resolver := &fakeSlotResolver{slot: freeSlot(cfg, slotStart, 10, 20)}

		uc := newTestUseCase(cfg, &fakeReservationRepo{}, resolver, newFakeNotifier(), now)
		resp, err := uc.Execute(context.Background(), testRequest(slotStart))
		require.NoError(t, err)
		assert.Equal(t, int64(10), resp.Reservation.StaffID)
	})

	t.Run("off-grid time rejected", func(t *testing.T) {
		cfg := testConfig(t, domain.PolicyAny)
		resolver := &fakeSlotResolver{err: resolve.ErrSlotNotInGrid}

		uc := newTestUseCase(cfg, &fakeReservationRepo{}, resolver, newFakeNotifier(), now)
		_, err := uc.Execute(context.Background(), testRequest(slotStart))
		assert.ErrorIs(t, err, ErrInvalidTimeSlot)
	})

	t.Run("inactive calendar", func(t *testing.T) {
		cfg := testConfig(t, domain.PolicyAny)
		cfg.IsActive = false
		resolver := &fakeSlotResolver{slot: freeSlot(cfg, slotStart, 10, 20)}

		uc := newTestUseCase(cfg, &fakeReservationRepo{}, resolver, newFakeNotifier(), now)
		_, err := uc.Execute(context.Background(), testRequest(slotStart))
		assert.ErrorIs(t, err, ErrCalendarInactive)
	})

	t.Run("invalid input", func(t *testing.T) {
		cfg := testConfig(t, domain.PolicyAny)
		resolver := &fakeSlotResolver{slot: freeSlot(cfg, slotStart, 10, 20)}
		uc := newTestUseCase(cfg, &fakeReservationRepo{}, resolver, newFakeNotifier(), now)

		req := testRequest(slotStart)
		req.CustomerName = "   "
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
