package notifier

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifier client: internal error")

	// ErrDeliveryFailed возвращается, когда событие не удалось доставить
	// Ошибка только логируется: уведомления никогда не откатывают коммит брони
	ErrDeliveryFailed = errors.New("notifier client: event delivery failed")
)
