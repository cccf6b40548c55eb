package transition_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m1zuki/RSV-AvailabilityService/internal/domain"
	"github.com/m1zuki/RSV-AvailabilityService/internal/infra/storage/reservation"
)

// UseCase переводы брони по статусной машине
type UseCase struct {
	reservationRepo ReservationRepository
	logger          Logger
}

// New создает новый UseCase переходов статуса брони
func New(reservationRepo ReservationRepository, logger Logger) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

// Transition переводит бронь в целевой статус (confirmed или completed)
//
// Переход выполняется через compare-and-set от прочитанного статуса:
// конкурентное изменение между чтением и обновлением дает ErrStatusConflict,
// а не молчаливую перезапись
func (uc *UseCase) Transition(ctx context.Context, req *TransitionRequest) (*Response, error) {
	uc.logger.Info("TransitionReservation: reservation_id=%d -> %s", req.ReservationID, req.TargetStatus)

	// 1. Валидация входных данных
	if err := validateTransitionRequest(req); err != nil {
		uc.logger.Warn("TransitionReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Читаем бронь и проверяем допустимость перехода
	res, err := uc.getReservation(ctx, req.ReservationID)
	if err != nil {
		return nil, err
	}

	if !res.CanTransitionTo(req.TargetStatus) {
		uc.logger.Warn("TransitionReservation: transition %s -> %s is not allowed for reservation_id=%d",
			res.Status, req.TargetStatus, req.ReservationID)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, res.Status, req.TargetStatus)
	}

	// 3. Compare-and-set обновление статуса
	if err := uc.reservationRepo.UpdateStatusFrom(ctx, req.ReservationID, res.Status, req.TargetStatus); err != nil {
		return nil, uc.mapUpdateError(err, req.ReservationID)
	}

	// 4. Перечитываем бронь для ответа
	updated, err := uc.getReservation(ctx, req.ReservationID)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("TransitionReservation: reservation_id=%d is now %s", updated.ID, updated.Status)

	return &Response{Reservation: updated}, nil
}

// Cancel отменяет бронь с обязательной причиной
// Отмена освобождает слот: дальнейшие вычисления доступности эту бронь
// не учитывают
func (uc *UseCase) Cancel(ctx context.Context, req *CancelRequest) (*Response, error) {
	uc.logger.Info("CancelReservation: reservation_id=%d", req.ReservationID)

	// 1. Валидация входных данных
	if err := validateCancelRequest(req); err != nil {
		uc.logger.Warn("CancelReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Читаем бронь и проверяем, что отмена еще возможна
	res, err := uc.getReservation(ctx, req.ReservationID)
	if err != nil {
		return nil, err
	}

	if !res.CanBeCancelled() {
		uc.logger.Warn("CancelReservation: reservation_id=%d in status %s cannot be cancelled",
			req.ReservationID, res.Status)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, res.Status, domain.StatusCancelled)
	}

	// 3. Compare-and-set отмена с причиной
	if err := uc.reservationRepo.CancelFrom(ctx, req.ReservationID, res.Status, req.Reason); err != nil {
		return nil, uc.mapUpdateError(err, req.ReservationID)
	}

	// 4. Перечитываем бронь для ответа
	updated, err := uc.getReservation(ctx, req.ReservationID)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelReservation: reservation_id=%d cancelled", updated.ID)

	return &Response{Reservation: updated}, nil
}

// getReservation получает бронь с трансляцией ошибок хранилища
func (uc *UseCase) getReservation(ctx context.Context, id int64) (*domain.Reservation, error) {
	res, err := uc.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservation.ErrReservationNotFound) {
			uc.logger.Warn("TransitionReservation: reservation_id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("TransitionReservation: failed to get reservation_id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: get reservation: %v", ErrInternal, err)
	}
	return res, nil
}

// mapUpdateError транслирует ошибки compare-and-set обновления
func (uc *UseCase) mapUpdateError(err error, id int64) error {
	switch {
	case errors.Is(err, reservation.ErrReservationNotFound):
		return ErrReservationNotFound
	case errors.Is(err, reservation.ErrStatusConflict):
		uc.logger.Warn("TransitionReservation: reservation_id=%d status changed concurrently", id)
		return ErrStatusConflict
	default:
		uc.logger.Error("TransitionReservation: failed to update reservation_id=%d: %v", id, err)
		return fmt.Errorf("%w: update status: %v", ErrInternal, err)
	}
}
