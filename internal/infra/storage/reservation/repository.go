package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m1zuki/RSV-AvailabilityService/internal/domain"
	"github.com/m1zuki/RSV-AvailabilityService/pkg/dbmetrics"
	"github.com/m1zuki/RSV-AvailabilityService/pkg/psqlbuilder"
)

// Коды SQLSTATE, которые репозиторий транслирует в доменные ошибки
const (
	exclusionViolationCode = "23P01" // exclusion_violation (btree_gist constraint)
	uniqueViolationCode    = "23505"
)

var reservationColumns = []string{
	"id",
	"calendar_id",
	"staff_id",
	"start_at",
	"end_at",
	"duration_minutes",
	"status",
	"customer_name",
	"customer_line_id",
	"customer_phone",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория броней
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую бронь
// Должен вызываться внутри сериализуемой транзакции коммита: проверка
// пересечений на уровне приложения уже сделана, а exclusion constraint
// (staff_id, tstzrange) страхует от гонки, которую транзакции не поймали.
// Нарушение constraint транслируется в ErrOverlapConstraint
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	endAt := res.StartAt.Add(time.Duration(res.DurationMinutes) * time.Minute)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"calendar_id",
			"staff_id",
			"start_at",
			"end_at",
			"duration_minutes",
			"status",
			"customer_name",
			"customer_line_id",
			"customer_phone",
			"notes",
		).
		Values(
			res.CalendarID,
			res.StaffID,
			res.StartAt,
			endAt,
			res.DurationMinutes,
			res.Status,
			res.CustomerName,
			res.CustomerLineID,
			res.CustomerPhone,
			res.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			code := string(pqErr.Code)
			if code == exclusionViolationCode || code == uniqueViolationCode {
				return nil, fmt.Errorf("%w: staff_id=%d, start_at=%s: %v",
					ErrOverlapConstraint, res.StaffID, res.StartAt.Format(time.RFC3339), err)
			}
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает бронь по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := r.scanOne(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// GetActiveByStaffInRange получает активные брони (pending/confirmed/completed)
// указанных сотрудников, пересекающие полуоткрытый диапазон [from, to)
// Внутри транзакции добавляет FOR UPDATE - это точка сериализации
// конкурентных коммитов одного и того же слота
func (r *Repository) GetActiveByStaffInRange(ctx context.Context, staffIDs []int64, from, to time.Time) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"staff_id": staffIDs}).
		Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)}).
		Where(squirrel.Lt{"start_at": to}).
		Where(squirrel.Gt{"end_at": from}).
		OrderBy("start_at ASC, staff_id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByStaffInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByStaffInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// GetByCalendarWithFilter получает брони календаря с гибкой фильтрацией
func (r *Repository) GetByCalendarWithFilter(ctx context.Context, filter domain.CalendarReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"calendar_id": filter.CalendarID})

	if filter.StaffID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"staff_id": *filter.StaffID})
	}
	if filter.StartAt != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_at": *filter.StartAt})
	}
	if filter.EndAt != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_at": *filter.EndAt})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": string(domain.StatusCancelled)})
	}

	selectBuilder = selectBuilder.OrderBy("start_at ASC, staff_id ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCalendarWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCalendarWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// UpdateStatusFrom обновляет статус брони через compare-and-set:
// строка меняется только если текущий статус равен from
// Возвращает ErrStatusConflict, если статус уже изменен конкурентно,
// и ErrReservationNotFound, если брони нет
func (r *Repository) UpdateStatusFrom(ctx context.Context, id int64, from, to domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatusFrom - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusFrom - execute update: %v", ErrExecQuery, err)
	}

	return r.checkAffected(ctx, result, id, "UpdateStatusFrom")
}

// CancelFrom отменяет бронь с сохранением причины и времени отмены
// Тот же compare-and-set, что и UpdateStatusFrom
func (r *Repository) CancelFrom(ctx context.Context, id int64, from domain.ReservationStatus, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CancelFrom - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: CancelFrom - execute update: %v", ErrExecQuery, err)
	}

	return r.checkAffected(ctx, result, id, "CancelFrom")
}

// checkAffected различает "бронь не найдена" и "статус изменен конкурентно"
// после неуспешного compare-and-set обновления
func (r *Repository) checkAffected(ctx context.Context, result sql.Result, id int64, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected > 0 {
		return nil
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		if errors.Is(err, ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		return err
	}

	return ErrStatusConflict
}

// scanOne сканирует одну бронь из *sql.Row
func (r *Repository) scanOne(row *sql.Row) (*domain.Reservation, error) {
	var res domain.Reservation
	var endAt time.Time
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.CalendarID,
		&res.StaffID,
		&res.StartAt,
		&endAt,
		&res.DurationMinutes,
		&res.Status,
		&res.CustomerName,
		&res.CustomerLineID,
		&res.CustomerPhone,
		&res.Notes,
		&res.CancellationReason,
		&res.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

// scanReservations сканирует результаты запроса в слайс броней
func (r *Repository) scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		var res domain.Reservation
		var endAt time.Time
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&res.ID,
			&res.CalendarID,
			&res.StaffID,
			&res.StartAt,
			&endAt,
			&res.DurationMinutes,
			&res.Status,
			&res.CustomerName,
			&res.CustomerLineID,
			&res.CustomerPhone,
			&res.Notes,
			&res.CancellationReason,
			&res.CancelledAt,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}

		res.CreatedAt = createdAt.Time
		res.UpdatedAt = updatedAt.Time

		reservations = append(reservations, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

// statusStrings конвертирует статусы в строки для IN условия
func statusStrings(statuses []domain.ReservationStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
