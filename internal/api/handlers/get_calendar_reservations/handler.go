package get_calendar_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m1zuki/RSV-AvailabilityService/internal/api/handlers"
	"github.com/m1zuki/RSV-AvailabilityService/internal/service/reservations"
)

const (
	msgInvalidCalendarID = "некорректный ID календаря"
	msgInvalidFilter     = "некорректные параметры фильтрации"
	msgCalendarNotFound  = "календарь не найден"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/calendars/{calendarId}/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	calendarID, err := strconv.ParseInt(vars["calendarId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /calendars/{id}/reservations - Invalid calendar ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCalendarID)
		return
	}

	filter, err := ParseFilter(calendarID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /calendars/{id}/reservations - Invalid filter: calendar_id=%d, error=%v", calendarID, err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	list, err := h.service.GetCalendarReservations(r.Context(), filter)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrCalendarNotFound):
			h.logger.Warn("GET /calendars/{id}/reservations - Calendar not found: calendar_id=%d", calendarID)
			handlers.RespondNotFound(w, msgCalendarNotFound)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /calendars/{id}/reservations - Invalid input: calendar_id=%d, error=%v", calendarID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /calendars/{id}/reservations - Failed: calendar_id=%d, error=%v", calendarID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /calendars/{id}/reservations - Retrieved %d reservations: calendar_id=%d",
		len(list), calendarID)
	handlers.RespondJSON(w, http.StatusOK, FromReservations(calendarID, list))
}
