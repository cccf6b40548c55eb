package transition_reservation

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
	msgInvalidTransition    = "переход в указанный статус невозможен"
	msgStatusConflict       = "статус брони изменен конкурентно, повторите запрос"
	msgInvalidInput         = "некорректные данные запроса"
)

type Handler struct {
	useCase TransitionReservationUseCase
	logger  Logger
}

func NewHandler(useCase TransitionReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/status - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Transition(r.Context(), req.ToUseCaseRequest(reservationID))
	if err != nil {
		switch {
		case errors.Is(err, transitionReservation.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/status - Not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, transitionReservation.ErrInvalidStatusTransition):
			h.logger.Warn("PATCH /reservations/{id}/status - Invalid transition: reservation_id=%d, target=%s",
				reservationID, req.Status)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidTransition)

		case errors.Is(err, transitionReservation.ErrStatusConflict):
			h.logger.Warn("PATCH /reservations/{id}/status - Status conflict: reservation_id=%d", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgStatusConflict)

		case errors.Is(err, transitionReservation.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id}/status - Invalid input: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /reservations/{id}/status - Failed: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/status - Updated: reservation_id=%d, status=%s",
		reservationID, result.Reservation.Status)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewReservationView(result.Reservation))
}
