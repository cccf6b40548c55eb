package resolve_availability

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/m1zuki/RSV-AvailabilityService/internal/domain"
	"github.com/m1zuki/RSV-AvailabilityService/internal/integrations/gcalsync"
)

// staffBusyResult результат сбора занятости одного сотрудника
type staffBusyResult struct {
	staffID   int64
	intervals []domain.BusyInterval
	degraded  bool // занятость неизвестна, сотрудник помечен полностью занятым
}

// collectBusyIntervals собирает объединенную занятость каждого сотрудника
// за диапазон [from, to) из трех источников: внешний календарь, ручные
// оверрайды и существующие активные брони
//
// Запросы по сотрудникам выполняются параллельно с таймаутом на каждый,
// чтобы суммарная задержка была близка к самому медленному запросу, а не
// к их сумме. Ошибка по одному сотруднику не отменяет остальных.
//
// Деградация: если занятость сотрудника получить не удалось, его истинная
// доступность неизвестна - сотрудник помечается полностью занятым на весь
// диапазон (сужаем корректность, а не угадываем). Если так деградировали
// все сотрудники, возвращается ErrAvailabilityUnresolvable
func (uc *UseCase) collectBusyIntervals(
	ctx context.Context,
	cfg *domain.CalendarConfig,
	from time.Time,
	to time.Time,
) (map[int64][]domain.BusyInterval, error) {
	staffIDs := cfg.StaffIDs()

	results := make([]staffBusyResult, len(staffIDs))
	var wg sync.WaitGroup

	for i, staffID := range staffIDs {
		wg.Add(1)
		go func(idx int, staffID int64) {
			defer wg.Done()
			results[idx] = uc.collectStaffBusy(ctx, staffID, from, to)
		}(i, staffID)
	}

	wg.Wait()

	busyByStaff := make(map[int64][]domain.BusyInterval, len(staffIDs))
	degradedCount := 0

	for _, res := range results {
		if res.degraded {
			degradedCount++
			uc.logger.Warn("collectBusyIntervals: staff_id=%d degraded to fully busy for [%s, %s)",
				res.staffID, from.Format(time.RFC3339), to.Format(time.RFC3339))
		}
		busyByStaff[res.staffID] = res.intervals
	}

	if degradedCount == len(staffIDs) {
		return nil, ErrAvailabilityUnresolvable
	}

	return busyByStaff, nil
}

// collectStaffBusy собирает занятость одного сотрудника из всех источников
func (uc *UseCase) collectStaffBusy(ctx context.Context, staffID int64, from, to time.Time) staffBusyResult {
	fetchCtx, cancel := context.WithTimeout(ctx, uc.staffFetchTimeout)
	defer cancel()

	intervals := make([]domain.BusyInterval, 0)

	// 1. Внешний календарь (живой запрос к сервису синхронизации)
	// Неподключенный календарь - не сбой: внешних busy-периодов просто нет
	periods, err := uc.externalClient.FetchBusyPeriods(fetchCtx, staffID, from, to)
	switch {
	case errors.Is(err, gcalsync.ErrStaffNotConnected):
		uc.logger.Info("collectStaffBusy: staff_id=%d has no connected calendar", staffID)
		periods = nil
	case err != nil:
		uc.logger.Error("collectStaffBusy: external fetch failed for staff_id=%d: %v", staffID, err)
		return uc.degradedResult(staffID, from, to)
	}
	for _, p := range periods {
		intervals = append(intervals, domain.BusyInterval{
			StaffID: staffID,
			Start:   p.Start,
			End:     p.End,
			Source:  domain.SourceExternalCalendar,
		})
	}

	// 2. Ручные оверрайды доступности
	overrides, err := uc.overrideRepo.GetByStaffInRange(fetchCtx, staffID, dateOnly(from), dateOnly(to))
	if err != nil {
		uc.logger.Error("collectStaffBusy: override fetch failed for staff_id=%d: %v", staffID, err)
		return uc.degradedResult(staffID, from, to)
	}
	ovIntervals, err := overridesToBusyIntervals(staffID, overrides)
	if err != nil {
		uc.logger.Error("collectStaffBusy: invalid override for staff_id=%d: %v", staffID, err)
		return uc.degradedResult(staffID, from, to)
	}
	intervals = append(intervals, ovIntervals...)

	// 3. Существующие активные брони
	reservations, err := uc.reservationRepo.GetActiveByStaffInRange(fetchCtx, []int64{staffID}, from, to)
	if err != nil {
		uc.logger.Error("collectStaffBusy: reservation fetch failed for staff_id=%d: %v", staffID, err)
		return uc.degradedResult(staffID, from, to)
	}
	for _, res := range reservations {
		intervals = append(intervals, domain.BusyInterval{
			StaffID: staffID,
			Start:   res.StartAt,
			End:     res.EndAt(),
			Source:  domain.SourceExistingReservation,
		})
	}

	return staffBusyResult{
		staffID:   staffID,
		intervals: domain.MergeBusyIntervals(intervals),
	}
}

// degradedResult помечает сотрудника полностью занятым на весь диапазон
func (uc *UseCase) degradedResult(staffID int64, from, to time.Time) staffBusyResult {
	return staffBusyResult{
		staffID: staffID,
		intervals: []domain.BusyInterval{{
			StaffID: staffID,
			Start:   from,
			End:     to,
			Source:  domain.SourceExternalCalendar,
		}},
		degraded: true,
	}
}

// overridesToBusyIntervals конвертирует ручные оверрайды в busy-интервалы
//
// Семантика по типам:
//   - busy: интервал [start_time, end_time) дня занят
//   - holiday: занят весь день, за вычетом available-интервалов этой же даты
//   - available: вне дня с holiday - no-op (по умолчанию и так свободно)
func overridesToBusyIntervals(staffID int64, overrides []*domain.AvailabilityOverride) ([]domain.BusyInterval, error) {
	type dayOverrides struct {
		holiday   bool
		busy      []timeRange
		available []timeRange
	}

	byDate := make(map[time.Time]*dayOverrides)
	order := make([]time.Time, 0)

	for _, ov := range overrides {
		date := dateOnly(ov.Date)
		day, ok := byDate[date]
		if !ok {
			day = &dayOverrides{}
			byDate[date] = day
			order = append(order, date)
		}

		switch ov.Type {
		case domain.OverrideHoliday:
			day.holiday = true
		case domain.OverrideBusy:
			r, err := overrideRange(date, ov)
			if err != nil {
				return nil, err
			}
			day.busy = append(day.busy, r)
		case domain.OverrideAvailable:
			r, err := overrideRange(date, ov)
			if err != nil {
				return nil, err
			}
			day.available = append(day.available, r)
		}
	}

	intervals := make([]domain.BusyInterval, 0)

	for _, date := range order {
		day := byDate[date]

		for _, r := range day.busy {
			intervals = append(intervals, domain.BusyInterval{
				StaffID: staffID,
				Start:   r.start,
				End:     r.end,
				Source:  domain.SourceManualOverride,
			})
		}

		if day.holiday {
			// Весь день занят, available-интервалы пробивают в нем окна
			wholeDay := timeRange{start: date, end: date.AddDate(0, 0, 1)}
			for _, r := range subtractRanges(wholeDay, day.available) {
				intervals = append(intervals, domain.BusyInterval{
					StaffID: staffID,
					Start:   r.start,
					End:     r.end,
					Source:  domain.SourceManualOverride,
				})
			}
		}
	}

	return intervals, nil
}

// timeRange вспомогательный полуоткрытый диапазон [start, end)
type timeRange struct {
	start time.Time
	end   time.Time
}

// overrideRange строит диапазон оверрайда на его дату
// Отсутствующие границы означают весь день
func overrideRange(date time.Time, ov *domain.AvailabilityOverride) (timeRange, error) {
	r := timeRange{start: date, end: date.AddDate(0, 0, 1)}

	if ov.StartTime != nil {
		start, err := ov.StartTime.At(date)
		if err != nil {
			return timeRange{}, err
		}
		r.start = start
	}
	if ov.EndTime != nil {
		end, err := ov.EndTime.At(date)
		if err != nil {
			return timeRange{}, err
		}
		r.end = end
	}

	return r, nil
}

// subtractRanges вычитает из base все диапазоны frees, возвращая оставшиеся
// занятые куски в порядке возрастания
func subtractRanges(base timeRange, frees []timeRange) []timeRange {
	remaining := []timeRange{base}

	for _, free := range frees {
		next := make([]timeRange, 0, len(remaining)+1)
		for _, r := range remaining {
			// Нет пересечения - кусок остается как есть
			if !free.start.Before(r.end) || !free.end.After(r.start) {
				next = append(next, r)
				continue
			}
			if free.start.After(r.start) {
				next = append(next, timeRange{start: r.start, end: free.start})
			}
			if free.end.Before(r.end) {
				next = append(next, timeRange{start: free.end, end: r.end})
			}
		}
		remaining = next
	}

	return remaining
}
