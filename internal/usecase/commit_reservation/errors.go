package commit_reservation

import "errors"

var (
	// ErrCalendarNotFound возвращается, когда календарь не найден
	ErrCalendarNotFound = errors.New("commit_reservation: calendar not found")

	// ErrCalendarInactive возвращается при попытке брони в неактивный календарь
	ErrCalendarInactive = errors.New("commit_reservation: calendar is inactive")

	// ErrInvalidConfiguration возвращается, когда конфигурация календаря
	// нарушает инварианты
	ErrInvalidConfiguration = errors.New("commit_reservation: invalid calendar configuration")

	// ErrStaffNotLinked возвращается, когда запрошенный сотрудник не привязан
	// к календарю
	ErrStaffNotLinked = errors.New("commit_reservation: staff is not linked to calendar")

	// ErrInvalidTimeSlot возвращается, когда запрошенное время не является
	// валидным началом слота (не на сетке, вне окна или горизонта)
	ErrInvalidTimeSlot = errors.New("commit_reservation: requested time is not a valid slot")

	// ErrSlotNoLongerAvailable возвращается, когда слот занят между показом
	// клиенту и коммитом. Штатный исход гонки, а не сбой
	ErrSlotNoLongerAvailable = errors.New("commit_reservation: slot is no longer available")

	// ErrAvailabilityUnresolvable возвращается, когда занятость сотрудников
	// не удалось определить и коммит небезопасен
	ErrAvailabilityUnresolvable = errors.New("commit_reservation: availability unresolvable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("commit_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("commit_reservation: internal error")
)
