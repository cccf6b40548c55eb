package calendar

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m1zuki/RSV-AvailabilityService/internal/domain"
	"github.com/m1zuki/RSV-AvailabilityService/pkg/dbmetrics"
	"github.com/m1zuki/RSV-AvailabilityService/pkg/psqlbuilder"
)

// Repository репозиторий для чтения конфигурации календарей
// Запись (CRUD календарей) живет в админском сервисе; движку доступности
// нужен только read path
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория календарей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает конфигурацию календаря вместе со связанными сотрудниками
// accept_days хранится как JSON массив строк и парсится здесь, на границе
// хранилища - дальше по коду ходят только типизированные значения
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.CalendarConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"tenant_id",
		"name",
		"policy",
		"accept_days",
		"day_start",
		"day_end",
		"slot_interval_minutes",
		"event_duration_minutes",
		"days_in_advance",
		"min_hours_before_booking",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("calendars").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var cfg domain.CalendarConfig
	var acceptDaysRaw []byte
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&cfg.TenantID,
		&cfg.Name,
		&cfg.Policy,
		&acceptDaysRaw,
		&cfg.DayStart,
		&cfg.DayEnd,
		&cfg.SlotIntervalMinutes,
		&cfg.EventDurationMinutes,
		&cfg.DaysInAdvance,
		&cfg.MinHoursBeforeBooking,
		&cfg.IsActive,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCalendarNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan calendar: %v", ErrScanRow, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	if err := json.Unmarshal(acceptDaysRaw, &cfg.AcceptDays); err != nil {
		return nil, fmt.Errorf("%w: GetByID - calendar id=%d: %v", ErrInvalidAcceptDays, id, err)
	}

	links, err := r.getStaffLinks(ctx, executor, id)
	if err != nil {
		return nil, err
	}
	cfg.StaffLinks = links

	return &cfg, nil
}

// getStaffLinks получает связи календарь-сотрудник, упорядоченные по убыванию
// приоритета (при равенстве - по возрастанию staff_id, для детерминизма)
func (r *Repository) getStaffLinks(ctx context.Context, executor DBExecutor, calendarID int64) ([]domain.StaffLink, error) {
	query, args, err := psqlbuilder.Select(
		"calendar_id",
		"staff_id",
		"priority",
	).
		From("calendar_staff").
		Where(squirrel.Eq{"calendar_id": calendarID}).
		OrderBy("priority DESC, staff_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getStaffLinks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getStaffLinks - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	links := make([]domain.StaffLink, 0)
	for rows.Next() {
		var link domain.StaffLink
		if err := rows.Scan(&link.CalendarID, &link.StaffID, &link.Priority); err != nil {
			return nil, fmt.Errorf("%w: getStaffLinks - scan row: %v", ErrScanRow, err)
		}
		links = append(links, link)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getStaffLinks - rows error: %v", ErrScanRow, err)
	}

	return links, nil
}
