package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m1zuki/RSV-AvailabilityService/internal/domain"
	"github.com/m1zuki/RSV-AvailabilityService/internal/infra/storage/calendar"
	"github.com/m1zuki/RSV-AvailabilityService/internal/infra/storage/reservation"
	"github.com/m1zuki/RSV-AvailabilityService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeReservationRepo struct {
	res    *domain.Reservation
	list   []*domain.Reservation
	getErr error
}

func (f *fakeReservationRepo) GetByID(_ context.Context, _ int64) (*domain.Reservation, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.res, nil
}

func (f *fakeReservationRepo) GetByCalendarWithFilter(_ context.Context, _ domain.CalendarReservationsFilter) ([]*domain.Reservation, error) {
	return f.list, nil
}

type fakeCalendarRepo struct{ err error }

func (f *fakeCalendarRepo) GetByID(_ context.Context, _ int64) (*domain.CalendarConfig, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.CalendarConfig{ID: 1}, nil
}

func TestService_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		want := &domain.Reservation{ID: 1, Status: domain.StatusPending}
		svc := New(&fakeReservationRepo{res: want}, &fakeCalendarRepo{}, nopLogger{})

		got, err := svc.GetByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("not found", func(t *testing.T) {
		svc := New(&fakeReservationRepo{getErr: reservation.ErrReservationNotFound}, &fakeCalendarRepo{}, nopLogger{})

		_, err := svc.GetByID(context.Background(), 1)
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		svc := New(&fakeReservationRepo{}, &fakeCalendarRepo{}, nopLogger{})

		_, err := svc.GetByID(context.Background(), 0)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_GetCalendarReservations(t *testing.T) {
	t.Run("returns list", func(t *testing.T) {
		list := []*domain.Reservation{{ID: 1}, {ID: 2}}
		svc := New(&fakeReservationRepo{list: list}, &fakeCalendarRepo{}, nopLogger{})

		got, err := svc.GetCalendarReservations(context.Background(), domain.CalendarReservationsFilter{CalendarID: 1})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("calendar not found", func(t *testing.T) {
		svc := New(&fakeReservationRepo{}, &fakeCalendarRepo{err: calendar.ErrCalendarNotFound}, nopLogger{})

		_, err := svc.GetCalendarReservations(context.Background(), domain.CalendarReservationsFilter{CalendarID: 1})
		assert.ErrorIs(t, err, ErrCalendarNotFound)
	})

	t.Run("rejects inverted range", func(t *testing.T) {
		svc := New(&fakeReservationRepo{}, &fakeCalendarRepo{}, nopLogger{})

		from := time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 0, -1)
		_, err := svc.GetCalendarReservations(context.Background(), domain.CalendarReservationsFilter{
			CalendarID: 1,
			StartAt:    &from,
			EndAt:      &to,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		svc := New(&fakeReservationRepo{}, &fakeCalendarRepo{}, nopLogger{})

		_, err := svc.GetCalendarReservations(context.Background(), domain.CalendarReservationsFilter{
			CalendarID: 1,
			Status:     ptr.Ptr(domain.ReservationStatus("unknown")),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
