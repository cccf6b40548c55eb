package resolve_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m1zuki/RSV-AvailabilityService/internal/domain"
	"github.com/m1zuki/RSV-AvailabilityService/internal/infra/storage/calendar"
)

// UseCase вычисление доступных слотов календаря
type UseCase struct {
	calendarRepo      CalendarRepository
	reservationRepo   ReservationRepository
	overrideRepo      OverrideRepository
	externalClient    ExternalCalendarClient
	holidays          HolidayProvider
	timeProvider      TimeProvider
	staffFetchTimeout time.Duration
	logger            Logger
}

// New создает новый UseCase вычисления доступности
func New(
	calendarRepo CalendarRepository,
	reservationRepo ReservationRepository,
	overrideRepo OverrideRepository,
	externalClient ExternalCalendarClient,
	holidays HolidayProvider,
	timeProvider TimeProvider,
	staffFetchTimeout time.Duration,
	logger Logger,
) *UseCase {
	if holidays == nil {
		holidays = &NoHolidaysProvider{}
	}
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	if staffFetchTimeout <= 0 {
		staffFetchTimeout = domain.DefaultStaffFetchTimeout
	}
	return &UseCase{
		calendarRepo:      calendarRepo,
		reservationRepo:   reservationRepo,
		overrideRepo:      overrideRepo,
		externalClient:    externalClient,
		holidays:          holidays,
		timeProvider:      timeProvider,
		staffFetchTimeout: staffFetchTimeout,
		logger:            logger,
	}
}

// Execute вычисляет доступные слоты календаря за диапазон дат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ResolveAvailability: starting for calendar_id=%d, from=%s, to=%s",
		req.CalendarID, req.FromDate.Format(domain.DateFormat), req.ToDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ResolveAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем конфигурацию календаря
	cfg, err := uc.loadCalendar(ctx, req.CalendarID)
	if err != nil {
		return nil, err
	}

	// 3. Неактивный календарь отдает пустой список, это не ошибка
	if !cfg.IsActive {
		uc.logger.Info("ResolveAvailability: calendar_id=%d is inactive", req.CalendarID)
		return &Response{
			CalendarID: req.CalendarID,
			FromDate:   req.FromDate,
			ToDate:     req.ToDate,
			Slots:      []Slot{},
		}, nil
	}

	now := uc.timeProvider.Now()

	// 4. Генерируем сетку слотов
	grid, err := generateSlotGrid(cfg, req.FromDate, req.ToDate, now, uc.holidays)
	if err != nil {
		uc.logger.Error("ResolveAvailability: grid generation failed: %v", err)
		return nil, fmt.Errorf("%w: generate grid: %v", ErrInternal, err)
	}
	if len(grid) == 0 {
		return &Response{
			CalendarID: req.CalendarID,
			FromDate:   req.FromDate,
			ToDate:     req.ToDate,
			Slots:      []Slot{},
		}, nil
	}

	// 5. Собираем занятость сотрудников за покрываемый сеткой диапазон
	duration := time.Duration(cfg.EventDurationMinutes) * time.Minute
	busyFrom := grid[0]
	busyTo := grid[len(grid)-1].Add(duration)

	busyByStaff, err := uc.collectBusyIntervals(ctx, cfg, busyFrom, busyTo)
	if err != nil {
		return nil, err
	}

	// 6. Применяем политику агрегации
	candidates := resolveSlots(cfg, grid, busyByStaff)

	slots := make([]Slot, 0, len(candidates))
	for _, c := range candidates {
		slots = append(slots, Slot{
			StartAt:         c.StartAt,
			DurationMinutes: c.DurationMinutes,
			FreeStaffIDs:    c.FreeStaffIDs,
		})
	}

	uc.logger.Info("ResolveAvailability: calendar_id=%d resolved %d slots out of %d grid positions",
		req.CalendarID, len(slots), len(grid))

	return &Response{
		CalendarID: req.CalendarID,
		FromDate:   req.FromDate,
		ToDate:     req.ToDate,
		Slots:      slots,
	}, nil
}

// ResolveSlot перевычисляет доступность одного слота на момент now
//
// Используется на фазе коммита брони для повторной проверки слота уже
// внутри транзакции. Возвращает слот с актуальным множеством свободных
// сотрудников либо ErrSlotNotInGrid, если startAt не является валидным
// началом слота календаря
func (uc *UseCase) ResolveSlot(ctx context.Context, cfg *domain.CalendarConfig, startAt time.Time, now time.Time) (*domain.CandidateSlot, error) {
	// Каноническая сетка календаря считается в UTC. Клиентское смещение
	// из RFC3339 не должно сдвигать дату и дневное окно
	startAt = startAt.UTC()
	date := dateOnly(startAt)

	grid, err := generateSlotGrid(cfg, date, date, now, uc.holidays)
	if err != nil {
		return nil, fmt.Errorf("%w: generate grid: %v", ErrInternal, err)
	}

	inGrid := false
	for _, start := range grid {
		if start.Equal(startAt) {
			inGrid = true
			break
		}
	}
	if !inGrid {
		return nil, ErrSlotNotInGrid
	}

	duration := time.Duration(cfg.EventDurationMinutes) * time.Minute
	busyByStaff, err := uc.collectBusyIntervals(ctx, cfg, startAt, startAt.Add(duration))
	if err != nil {
		return nil, err
	}

	candidates := resolveSlots(cfg, []time.Time{startAt}, busyByStaff)
	if len(candidates) == 0 {
		// Слот в сетке есть, но свободных сотрудников под политику нет
		return &domain.CandidateSlot{
			CalendarID:      cfg.ID,
			StartAt:         startAt,
			DurationMinutes: cfg.EventDurationMinutes,
			FreeStaffIDs:    []int64{},
		}, nil
	}

	return &candidates[0], nil
}

// loadCalendar получает и валидирует конфигурацию календаря
func (uc *UseCase) loadCalendar(ctx context.Context, calendarID int64) (*domain.CalendarConfig, error) {
	cfg, err := uc.calendarRepo.GetByID(ctx, calendarID)
	if err != nil {
		if errors.Is(err, calendar.ErrCalendarNotFound) {
			uc.logger.Warn("ResolveAvailability: calendar_id=%d not found", calendarID)
			return nil, ErrCalendarNotFound
		}
		uc.logger.Error("ResolveAvailability: failed to get calendar_id=%d: %v", calendarID, err)
		return nil, fmt.Errorf("%w: get calendar: %v", ErrInternal, err)
	}

	if err := cfg.Validate(); err != nil {
		uc.logger.Error("ResolveAvailability: calendar_id=%d has invalid configuration: %v", calendarID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	return cfg, nil
}
