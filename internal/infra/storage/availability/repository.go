package availability

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m1zuki/RSV-AvailabilityService/internal/domain"
	"github.com/m1zuki/RSV-AvailabilityService/pkg/dbmetrics"
	"github.com/m1zuki/RSV-AvailabilityService/pkg/psqlbuilder"
	"github.com/m1zuki/RSV-AvailabilityService/pkg/types"
)

// Repository репозиторий ручных оверрайдов доступности сотрудников
// Оверрайды заводит админ тенанта: целодневный holiday, интервальный busy
// и интервальный available (последний имеет смысл только поверх holiday)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория оверрайдов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByStaffInRange получает оверрайды сотрудника за диапазон дат
// [fromDate, toDate] включительно, упорядоченные по дате
func (r *Repository) GetByStaffInRange(ctx context.Context, staffID int64, fromDate, toDate time.Time) ([]*domain.AvailabilityOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"staff_id",
		"date",
		"override_type",
		"start_time",
		"end_time",
	).
		From("staff_availability_overrides").
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.GtOrEq{"date": fromDate}).
		Where(squirrel.LtOrEq{"date": toDate}).
		OrderBy("date ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make([]*domain.AvailabilityOverride, 0)
	for rows.Next() {
		var ov domain.AvailabilityOverride
		var startTime, endTime sql.NullString

		if err := rows.Scan(&ov.ID, &ov.StaffID, &ov.Date, &ov.Type, &startTime, &endTime); err != nil {
			return nil, fmt.Errorf("%w: GetByStaffInRange - scan row: %v", ErrScanRow, err)
		}

		if startTime.Valid {
			ts, err := types.NewTimeStringFromString(trimSeconds(startTime.String))
			if err != nil {
				return nil, fmt.Errorf("%w: GetByStaffInRange - start_time: %v", ErrScanRow, err)
			}
			ov.StartTime = &ts
		}
		if endTime.Valid {
			ts, err := types.NewTimeStringFromString(trimSeconds(endTime.String))
			if err != nil {
				return nil, fmt.Errorf("%w: GetByStaffInRange - end_time: %v", ErrScanRow, err)
			}
			ov.EndTime = &ts
		}

		overrides = append(overrides, &ov)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByStaffInRange - rows error: %v", ErrScanRow, err)
	}

	return overrides, nil
}

// trimSeconds обрезает секунды у значения колонки TIME ("10:00:00" -> "10:00")
func trimSeconds(s string) string {
	if len(s) > 5 {
		return s[:5]
	}
	return s
}
