package commit_reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReservationRequest_ToUseCaseRequest(t *testing.T) {
	t.Run("normalizes start time to UTC", func(t *testing.T) {
		req := &CreateReservationRequest{
			CalendarID:   1,
			StartAt:      "2026-09-14T10:30:00+09:00",
			CustomerName: "Иванов Иван",
		}

		ucReq, err := req.ToUseCaseRequest(false)
		require.NoError(t, err)

		want := time.Date(2026, time.September, 14, 1, 30, 0, 0, time.UTC)
		assert.Equal(t, want, ucReq.StartAt)
		assert.Equal(t, time.UTC, ucReq.StartAt.Location())
	})

	t.Run("rejects non-RFC3339 start time", func(t *testing.T) {
		req := &CreateReservationRequest{
			CalendarID:   1,
			StartAt:      "2026-09-14 10:30",
			CustomerName: "Иванов Иван",
		}

		_, err := req.ToUseCaseRequest(false)
		assert.Error(t, err)
	})

	t.Run("propagates admin flag", func(t *testing.T) {
		req := &CreateReservationRequest{
			CalendarID:   1,
			StartAt:      "2026-09-14T10:30:00Z",
			CustomerName: "Иванов Иван",
		}

		ucReq, err := req.ToUseCaseRequest(true)
		require.NoError(t, err)
		assert.True(t, ucReq.CreatedByAdmin)
	})
}
