package transition_reservation

import "github.com/m1zuki/RSV-AvailabilityService/internal/domain"

// TransitionRequest модель запроса на перевод брони в новый статус
type TransitionRequest struct {
	ReservationID int64                    // ID брони
	TargetStatus  domain.ReservationStatus // Целевой статус (confirmed или completed)
}

// CancelRequest модель запроса на отмену брони
type CancelRequest struct {
	ReservationID int64  // ID брони
	Reason        string // Причина отмены (обязательна)
}

// Response модель ответа с бронью после перехода
type Response struct {
	Reservation *domain.Reservation
}
