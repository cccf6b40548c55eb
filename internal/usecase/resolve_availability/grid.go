package resolve_availability

import (
	"fmt"
	"time"

	"github.com/m1zuki/RSV-AvailabilityService/internal/domain"
)

// generateSlotGrid генерирует упорядоченную по возрастанию последовательность
// моментов начала слотов за диапазон дат [fromDate, toDate]
//
// Для каждой принимаемой даты шагаем от начала дневного окна с шагом
// slot_interval, пока слот целиком (start + event_duration) помещается в окно.
// Затем отфильтровываем:
//   - слоты раньше now + min_hours_before_booking (минимальный lead time)
//   - даты дальше горизонта now + days_in_advance; если горизонт попадает
//     в середину дня, слоты этой даты включаются до конца окна
//
// Функция чистая: now передается параметром, побочных эффектов нет
func generateSlotGrid(
	cfg *domain.CalendarConfig,
	fromDate time.Time,
	toDate time.Time,
	now time.Time,
	holidays HolidayProvider,
) ([]time.Time, error) {
	// Минимально допустимый момент начала слота
	minStart := now.Add(time.Duration(cfg.MinHoursBeforeBooking) * time.Hour)

	// Горизонт бронирования: последняя принимаемая дата
	// Слоты этой даты включаются целиком, даже если now + days_in_advance
	// указывает на середину дня
	maxDate := dateOnly(now).AddDate(0, 0, cfg.DaysInAdvance)

	grid := make([]time.Time, 0)

	for date := dateOnly(fromDate); !date.After(dateOnly(toDate)); date = date.AddDate(0, 0, 1) {
		if date.After(maxDate) {
			break
		}
		if !isAcceptedDay(cfg.AcceptDays, date, holidays) {
			continue
		}

		dayStart, err := cfg.DayStart.At(date)
		if err != nil {
			return nil, fmt.Errorf("day start on %s: %v", date.Format(domain.DateFormat), err)
		}
		dayEnd, err := cfg.DayEnd.At(date)
		if err != nil {
			return nil, fmt.Errorf("day end on %s: %v", date.Format(domain.DateFormat), err)
		}

		duration := time.Duration(cfg.EventDurationMinutes) * time.Minute
		step := time.Duration(cfg.SlotIntervalMinutes) * time.Minute

		// Слот входит в сетку, пока событие помещается до конца окна
		for start := dayStart; !start.Add(duration).After(dayEnd); start = start.Add(step) {
			if start.Before(minStart) {
				continue
			}
			grid = append(grid, start)
		}
	}

	return grid, nil
}

// isAcceptedDay проверяет, принимает ли календарь брони на указанную дату
// Праздничный день - отдельный тип дня: для него решает наличие "holiday"
// в accept_days, запись дня недели игнорируется
func isAcceptedDay(days domain.AcceptDays, date time.Time, holidays HolidayProvider) bool {
	if holidays.IsHoliday(date) {
		return days.ContainsHoliday()
	}
	return days.ContainsWeekday(date.Weekday())
}

// dateOnly обнуляет время, оставляя только дату (в локации исходного значения)
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
