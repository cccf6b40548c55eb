package commit_reservation

import (
	"context"
	"time"

	"github.com/m1zuki/RSV-AvailabilityService/internal/domain"
	"github.com/m1zuki/RSV-AvailabilityService/internal/integrations/notifier"
)

// CalendarRepository интерфейс репозитория календарей
type CalendarRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.CalendarConfig, error)
}

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	// GetActiveByStaffInRange внутри транзакции блокирует строки FOR UPDATE
	GetActiveByStaffInRange(ctx context.Context, staffIDs []int64, from, to time.Time) ([]*domain.Reservation, error)
}

// SlotResolver интерфейс повторного вычисления доступности одного слота
// Реализуется usecase-ом вычисления доступности
type SlotResolver interface {
	ResolveSlot(ctx context.Context, cfg *domain.CalendarConfig, startAt time.Time, now time.Time) (*domain.CandidateSlot, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// NotifierClient интерфейс клиента роутера уведомлений
type NotifierClient interface {
	SendReservationCreated(ctx context.Context, event *notifier.ReservationCreatedEvent) error
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
