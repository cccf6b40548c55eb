package cancel_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m1zuki/RSV-AvailabilityService/internal/api/handlers"
	transitionReservation "github.com/m1zuki/RSV-AvailabilityService/internal/usecase/transition_reservation"
)

const (
	msgInvalidReservationID = "некорректный ID брони"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgNotFound             = "бронь не найдена"
	msgReasonRequired       = "причина отмены обязательна"
	msgCannotCancel         = "бронь в текущем статусе нельзя отменить"
	msgStatusConflict       = "статус брони изменен конкурентно, повторите запрос"
	msgInvalidInput         = "некорректные данные запроса"
)

type Handler struct {
	useCase CancelReservationUseCase
	logger  Logger
}

func NewHandler(useCase CancelReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/cancel - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req CancelReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Cancel(r.Context(), req.ToUseCaseRequest(reservationID))
	if err != nil {
		switch {
		case errors.Is(err, transitionReservation.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, transitionReservation.ErrReasonRequired):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Reason required: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgReasonRequired)

		case errors.Is(err, transitionReservation.ErrInvalidStatusTransition):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Cannot cancel: reservation_id=%d", reservationID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgCannotCancel)

		case errors.Is(err, transitionReservation.ErrStatusConflict):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Status conflict: reservation_id=%d", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgStatusConflict)

		case errors.Is(err, transitionReservation.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Invalid input: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /reservations/{id}/cancel - Failed: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/cancel - Cancelled: reservation_id=%d", reservationID)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewReservationView(result.Reservation))
}
