package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронь не найдена
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrOverlapConstraint возвращается, когда exclusion constraint БД отклонил
	// вставку пересекающейся брони (последний рубеж защиты от двойного бронирования)
	ErrOverlapConstraint = errors.New("reservation.repository: overlapping reservation exists")

	// ErrStatusConflict возвращается, когда compare-and-set обновление статуса
	// не прошло: статус в БД уже не тот, от которого шел переход
	ErrStatusConflict = errors.New("reservation.repository: status changed concurrently")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
