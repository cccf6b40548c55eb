package resolve_availability

import (
	"time"

	"github.com/m1zuki/RSV-AvailabilityService/internal/domain"
)

// resolveSlots применяет политику агрегации к сетке слотов и занятости
// сотрудников, возвращая только доступные слоты
//
// Для каждого слота вычисляется множество свободных сотрудников (ни один
// busy-интервал сотрудника не пересекает [start, start+duration)).
// Политики:
//   - any: слот доступен, если свободен хотя бы один сотрудник
//   - all: слот доступен, только если свободны все привязанные сотрудники
//
// Свободные сотрудники перечисляются по убыванию priority, при равенстве -
// по возрастанию staff_id (порядок уже задан конфигурацией календаря)
func resolveSlots(
	cfg *domain.CalendarConfig,
	grid []time.Time,
	busyByStaff map[int64][]domain.BusyInterval,
) []domain.CandidateSlot {
	duration := time.Duration(cfg.EventDurationMinutes) * time.Minute
	slots := make([]domain.CandidateSlot, 0, len(grid))

	for _, start := range grid {
		end := start.Add(duration)

		// StaffLinks отсортированы по убыванию приоритета, порядок сохраняем
		free := make([]int64, 0, len(cfg.StaffLinks))
		for _, link := range cfg.StaffLinks {
			if !domain.AnyOverlaps(busyByStaff[link.StaffID], start, end) {
				free = append(free, link.StaffID)
			}
		}

		switch cfg.Policy {
		case domain.PolicyAll:
			if len(free) != len(cfg.StaffLinks) {
				continue
			}
		default: // PolicyAny
			if len(free) == 0 {
				continue
			}
		}

		slots = append(slots, domain.CandidateSlot{
			CalendarID:      cfg.ID,
			StartAt:         start,
			DurationMinutes: cfg.EventDurationMinutes,
			FreeStaffIDs:    free,
		})
	}

	return slots
}
