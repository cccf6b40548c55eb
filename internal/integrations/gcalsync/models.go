package gcalsync

import "time"

// BusyPeriod busy-период из внешнего календаря сотрудника
// Полуоткрытый интервал [Start, End)
type BusyPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// BusyPeriodsResponse ответ сервиса синхронизации календарей
type BusyPeriodsResponse struct {
	StaffID int64        `json:"staffId"`
	Periods []BusyPeriod `json:"periods"`
}

// ErrorResponse модель ошибки от сервиса синхронизации
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
