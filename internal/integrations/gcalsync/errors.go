package gcalsync

import "errors"

var (
	// ErrExternalCalendarUnavailable возвращается, когда busy-периоды сотрудника
	// не удалось получить (сервис синхронизации недоступен или вернул ошибку)
	// Вызывающая сторона должна считать доступность этого сотрудника неизвестной
	ErrExternalCalendarUnavailable = errors.New("gcalsync client: external calendar unavailable")

	// ErrStaffNotConnected возвращается, когда у сотрудника нет привязанного
	// внешнего календаря
	ErrStaffNotConnected = errors.New("gcalsync client: staff has no connected calendar")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("gcalsync client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("gcalsync client: invalid response")
)
