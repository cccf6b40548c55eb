package resolve_availability

import "time"

// Request модель запроса на вычисление доступных слотов
type Request struct {
	CalendarID int64     // ID календаря
	FromDate   time.Time // Начало диапазона дат (только дата, без времени)
	ToDate     time.Time // Конец диапазона дат включительно
}

// Response модель ответа со списком доступных слотов
type Response struct {
	CalendarID int64     // ID календаря
	FromDate   time.Time // Запрошенное начало диапазона
	ToDate     time.Time // Запрошенный конец диапазона
	Slots      []Slot    // Доступные слоты по возрастанию времени начала
}

// Slot модель доступного слота
type Slot struct {
	StartAt         time.Time // Момент начала слота
	DurationMinutes int       // Длительность события в минутах
	FreeStaffIDs    []int64   // Свободные сотрудники по убыванию приоритета
}
