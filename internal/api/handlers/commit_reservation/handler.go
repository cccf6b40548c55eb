package commit_reservation

import (
	"errors"
	"net/http"

	"github.com/m1zuki/RSV-AvailabilityService/internal/api/handlers"
	"github.com/m1zuki/RSV-AvailabilityService/internal/api/middleware"
	commitReservation "github.com/m1zuki/RSV-AvailabilityService/internal/usecase/commit_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStartTime   = "некорректный формат времени начала, ожидается RFC3339"
	msgCalendarNotFound   = "календарь не найден"
	msgCalendarInactive   = "календарь не принимает брони"
	msgStaffNotLinked     = "сотрудник не привязан к календарю"
	msgInvalidTimeSlot    = "запрошенное время не является доступным слотом"
	msgSlotTaken          = "слот уже занят, выберите другое время"
	msgUnresolvable       = "доступность временно не может быть подтверждена, повторите запрос позже"
	msgInvalidInput       = "некорректные данные брони"
)

type Handler struct {
	useCase CommitReservationUseCase
	logger  Logger
}

func NewHandler(useCase CommitReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Админская бронь сразу confirmed, клиентская проходит через pending
	useCaseReq, err := req.ToUseCaseRequest(middleware.IsAdmin(r.Context()))
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, commitReservation.ErrSlotNoLongerAvailable):
			h.logger.Warn("POST /reservations - Slot no longer available: calendar_id=%d, start_at=%s",
				req.CalendarID, req.StartAt)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, commitReservation.ErrCalendarNotFound):
			h.logger.Warn("POST /reservations - Calendar not found: calendar_id=%d", req.CalendarID)
			handlers.RespondNotFound(w, msgCalendarNotFound)

		case errors.Is(err, commitReservation.ErrCalendarInactive):
			// Неактивный календарь на коммите неотличим от отсутствующего
			h.logger.Warn("POST /reservations - Calendar inactive: calendar_id=%d", req.CalendarID)
			handlers.RespondNotFound(w, msgCalendarInactive)

		case errors.Is(err, commitReservation.ErrStaffNotLinked):
			h.logger.Warn("POST /reservations - Staff not linked: calendar_id=%d", req.CalendarID)
			handlers.RespondBadRequest(w, msgStaffNotLinked)

		case errors.Is(err, commitReservation.ErrInvalidTimeSlot):
			h.logger.Warn("POST /reservations - Invalid time slot: calendar_id=%d, start_at=%s",
				req.CalendarID, req.StartAt)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, commitReservation.ErrAvailabilityUnresolvable):
			h.logger.Warn("POST /reservations - Availability unresolvable: calendar_id=%d", req.CalendarID)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgUnresolvable)

		case errors.Is(err, commitReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: calendar_id=%d, error=%v", req.CalendarID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: calendar_id=%d, error=%v",
				req.CalendarID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%d, calendar_id=%d, staff_id=%d",
		result.Reservation.ID, result.Reservation.CalendarID, result.Reservation.StaffID)
	handlers.RespondJSON(w, http.StatusCreated, handlers.NewReservationView(result.Reservation))
}
