package commit_reservation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	commitReservation "github.com/m1zuki/RSV-AvailabilityService/internal/usecase/commit_reservation"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	resp *commitReservation.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, _ *commitReservation.Request) (*commitReservation.Response, error) {
	return f.resp, f.err
}

func doRequest(t *testing.T, uc CommitReservationUseCase) *httptest.ResponseRecorder {
	t.Helper()

	body := `{"calendarId":1,"startAt":"2026-09-14T10:00:00Z","customerName":"Иванов Иван"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
	rec := httptest.NewRecorder()

	NewHandler(uc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandler_Handle(t *testing.T) {
	t.Run("inactive calendar responds not found", func(t *testing.T) {
		rec := doRequest(t, &fakeUseCase{err: commitReservation.ErrCalendarInactive})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing calendar responds not found", func(t *testing.T) {
		rec := doRequest(t, &fakeUseCase{err: commitReservation.ErrCalendarNotFound})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("taken slot responds conflict", func(t *testing.T) {
		rec := doRequest(t, &fakeUseCase{err: commitReservation.ErrSlotNoLongerAvailable})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}
