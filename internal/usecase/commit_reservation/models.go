package commit_reservation

import (
	"time"

	"github.com/m1zuki/RSV-AvailabilityService/internal/domain"
)

// Request модель запроса на создание брони
type Request struct {
	CalendarID       int64     // ID календаря
	StartAt          time.Time // Запрошенное начало слота
	RequestedStaffID *int64    // Явно выбранный сотрудник (опционально, только для политики any)
	CustomerName     string    // Имя клиента
	CustomerLineID   *string   // LINE ID клиента (опционально)
	CustomerPhone    *string   // Телефон клиента (опционально)
	Notes            *string   // Заметки к брони (опционально)
	CreatedByAdmin   bool      // Бронь создана администратором (сразу confirmed)
}

// Response модель ответа с созданной бронью
type Response struct {
	Reservation *domain.Reservation
}
