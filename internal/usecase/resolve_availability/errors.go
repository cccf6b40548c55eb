package resolve_availability

import "errors"

var (
	// ErrCalendarNotFound возвращается, когда календарь не найден
	ErrCalendarNotFound = errors.New("resolve_availability: calendar not found")

	// ErrInvalidConfiguration возвращается, когда конфигурация календаря
	// нарушает инварианты (отсекается до любых вычислений)
	ErrInvalidConfiguration = errors.New("resolve_availability: invalid calendar configuration")

	// ErrAvailabilityUnresolvable возвращается, когда занятость ни одного
	// сотрудника не удалось определить; клиенту следует повторить с backoff
	ErrAvailabilityUnresolvable = errors.New("resolve_availability: availability unresolvable for all staff")

	// ErrSlotNotInGrid возвращается, когда запрошенное время не является
	// валидным началом слота календаря
	ErrSlotNotInGrid = errors.New("resolve_availability: requested time is not a valid slot start")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("resolve_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("resolve_availability: internal error")
)
