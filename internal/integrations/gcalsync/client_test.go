package gcalsync

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeMetrics struct {
	total  int
	failed int
}

func (f *fakeMetrics) ObserveExternalRequest(_ string, failed bool) {
	f.total++
	if failed {
		f.failed++
	}
}

func newTestClient(t *testing.T, status int, body string) (*Client, *fakeMetrics) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	m := &fakeMetrics{}
	return NewClient(srv.URL, time.Second, m, nopLogger{}), m
}

func TestClient_FetchBusyPeriods(t *testing.T) {
	from := time.Date(2026, time.September, 14, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	t.Run("returns periods and records success", func(t *testing.T) {
		body := `{"staffId":10,"periods":[{"start":"2026-09-14T10:00:00Z","end":"2026-09-14T11:00:00Z"}]}`
		client, m := newTestClient(t, http.StatusOK, body)

		periods, err := client.FetchBusyPeriods(context.Background(), 10, from, to)
		require.NoError(t, err)
		require.Len(t, periods, 1)
		assert.Equal(t, from.Add(10*time.Hour), periods[0].Start)

		assert.Equal(t, 1, m.total)
		assert.Equal(t, 0, m.failed)
	})

	t.Run("not found means staff has no connected calendar", func(t *testing.T) {
		client, m := newTestClient(t, http.StatusNotFound, `{"code":404,"message":"not connected"}`)

		_, err := client.FetchBusyPeriods(context.Background(), 10, from, to)
		assert.ErrorIs(t, err, ErrStaffNotConnected)

		// Штатный исход, не сбой интеграции
		assert.Equal(t, 1, m.total)
		assert.Equal(t, 0, m.failed)
	})

	t.Run("malformed body is an invalid response", func(t *testing.T) {
		client, m := newTestClient(t, http.StatusOK, `{"periods":`)

		_, err := client.FetchBusyPeriods(context.Background(), 10, from, to)
		assert.ErrorIs(t, err, ErrInvalidResponse)
		assert.Equal(t, 1, m.failed)
	})

	t.Run("server error means calendar unavailable", func(t *testing.T) {
		client, m := newTestClient(t, http.StatusInternalServerError, `{"code":500,"message":"boom"}`)

		_, err := client.FetchBusyPeriods(context.Background(), 10, from, to)
		assert.ErrorIs(t, err, ErrExternalCalendarUnavailable)
		assert.Equal(t, 1, m.failed)
	})
}
