package resolve_availability

import (
	"fmt"
	"time"

	"github.com/m1zuki/RSV-AvailabilityService/internal/domain"
	resolveAvailability "github.com/m1zuki/RSV-AvailabilityService/internal/usecase/resolve_availability"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	CalendarID int64          `json:"calendarId"`
	From       string         `json:"from"`
	To         string         `json:"to"`
	Slots      []SlotResponse `json:"slots"`
}

// SlotResponse доступный слот в HTTP ответе
type SlotResponse struct {
	StartAt         string  `json:"startAt"`
	DurationMinutes int     `json:"durationMinutes"`
	FreeStaffIDs    []int64 `json:"freeStaffIds"`
}

// ToUseCaseRequest конвертирует параметры запроса в модель use case
func ToUseCaseRequest(calendarID int64, fromStr, toStr string) (*resolveAvailability.Request, error) {
	from, err := time.Parse(domain.DateFormat, fromStr)
	if err != nil {
		return nil, fmt.Errorf("parse from date: %w", err)
	}

	to, err := time.Parse(domain.DateFormat, toStr)
	if err != nil {
		return nil, fmt.Errorf("parse to date: %w", err)
	}

	return &resolveAvailability.Request{
		CalendarID: calendarID,
		FromDate:   from,
		ToDate:     to,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *resolveAvailability.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartAt:         s.StartAt.Format(time.RFC3339),
			DurationMinutes: s.DurationMinutes,
			FreeStaffIDs:    s.FreeStaffIDs,
		})
	}

	return &AvailableSlotsResponse{
		CalendarID: resp.CalendarID,
		From:       resp.FromDate.Format(domain.DateFormat),
		To:         resp.ToDate.Format(domain.DateFormat),
		Slots:      slots,
	}
}
