package transition_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронь не найдена
	ErrReservationNotFound = errors.New("transition_reservation: reservation not found")

	// ErrInvalidStatusTransition возвращается при недопустимом переходе статуса
	// (в том числе из терминальных completed/cancelled)
	ErrInvalidStatusTransition = errors.New("transition_reservation: invalid status transition")

	// ErrStatusConflict возвращается, когда статус брони изменен конкурентно
	// между чтением и обновлением
	ErrStatusConflict = errors.New("transition_reservation: status changed concurrently")

	// ErrReasonRequired возвращается при отмене без указания причины
	ErrReasonRequired = errors.New("transition_reservation: cancellation reason is required")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("transition_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("transition_reservation: internal error")
)
