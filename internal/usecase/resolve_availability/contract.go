package resolve_availability

import (
	"context"
	"time"

	"github.com/m1zuki/RSV-AvailabilityService/internal/domain"
	"github.com/m1zuki/RSV-AvailabilityService/internal/integrations/gcalsync"
)

// CalendarRepository интерфейс репозитория календарей
type CalendarRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.CalendarConfig, error)
}

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	// GetActiveByStaffInRange получает активные брони сотрудников,
	// пересекающие диапазон [from, to)
	GetActiveByStaffInRange(ctx context.Context, staffIDs []int64, from, to time.Time) ([]*domain.Reservation, error)
}

// OverrideRepository интерфейс репозитория ручных оверрайдов доступности
type OverrideRepository interface {
	GetByStaffInRange(ctx context.Context, staffID int64, fromDate, toDate time.Time) ([]*domain.AvailabilityOverride, error)
}

// ExternalCalendarClient интерфейс клиента сервиса синхронизации внешних календарей
type ExternalCalendarClient interface {
	FetchBusyPeriods(ctx context.Context, staffID int64, from, to time.Time) ([]gcalsync.BusyPeriod, error)
}

// HolidayProvider интерфейс определения государственных праздников
// Используется, когда accept_days календаря содержит "holiday"
type HolidayProvider interface {
	IsHoliday(date time.Time) bool
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// NoHolidaysProvider провайдер праздников по умолчанию: праздников не знает,
// поведение вырождается в чистую проверку дней недели
type NoHolidaysProvider struct{}

// IsHoliday всегда возвращает false
func (p *NoHolidaysProvider) IsHoliday(_ time.Time) bool {
	return false
}
