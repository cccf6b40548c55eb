package resolve_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m1zuki/RSV-AvailabilityService/internal/api/handlers"
	resolveAvailability "github.com/m1zuki/RSV-AvailabilityService/internal/usecase/resolve_availability"
)

const (
	msgInvalidCalendarID = "некорректный ID календаря"
	msgInvalidDateRange  = "некорректный диапазон дат, ожидается from и to в формате YYYY-MM-DD"
	msgCalendarNotFound  = "календарь не найден"
	msgInvalidConfig     = "конфигурация календаря некорректна"
	msgUnresolvable      = "доступность временно не может быть вычислена, повторите запрос позже"
	msgInvalidInput      = "некорректные параметры запроса"
)

type Handler struct {
	useCase ResolveAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase ResolveAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/calendars/{calendarId}/available-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	calendarID, err := strconv.ParseInt(vars["calendarId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /calendars/{id}/available-slots - Invalid calendar ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCalendarID)
		return
	}

	query := r.URL.Query()
	useCaseReq, err := ToUseCaseRequest(calendarID, query.Get("from"), query.Get("to"))
	if err != nil {
		h.logger.Warn("GET /calendars/{id}/available-slots - Invalid date range: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateRange)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, resolveAvailability.ErrCalendarNotFound):
			h.logger.Warn("GET /calendars/{id}/available-slots - Calendar not found: calendar_id=%d", calendarID)
			handlers.RespondNotFound(w, msgCalendarNotFound)

		case errors.Is(err, resolveAvailability.ErrInvalidConfiguration):
			h.logger.Warn("GET /calendars/{id}/available-slots - Invalid configuration: calendar_id=%d", calendarID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidConfig)

		case errors.Is(err, resolveAvailability.ErrAvailabilityUnresolvable):
			h.logger.Warn("GET /calendars/{id}/available-slots - Availability unresolvable: calendar_id=%d", calendarID)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgUnresolvable)

		case errors.Is(err, resolveAvailability.ErrInvalidInput):
			h.logger.Warn("GET /calendars/{id}/available-slots - Invalid input: calendar_id=%d, error=%v", calendarID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /calendars/{id}/available-slots - Failed: calendar_id=%d, error=%v", calendarID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /calendars/{id}/available-slots - Resolved %d slots: calendar_id=%d",
		len(result.Slots), calendarID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
