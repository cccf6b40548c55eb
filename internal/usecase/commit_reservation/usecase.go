package commit_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/m1zuki/RSV-AvailabilityService/internal/domain"
	"github.com/m1zuki/RSV-AvailabilityService/internal/infra/storage/calendar"
	"github.com/m1zuki/RSV-AvailabilityService/internal/infra/storage/reservation"
	"github.com/m1zuki/RSV-AvailabilityService/internal/integrations/notifier"
	resolve "github.com/m1zuki/RSV-AvailabilityService/internal/usecase/resolve_availability"
)

// Таймаут отправки уведомления после коммита брони
const notifyTimeout = 5 * time.Second

// Код SQLSTATE ошибки сериализации (could not serialize access)
const serializationFailureCode = "40001"

// UseCase атомарный коммит брони слота
type UseCase struct {
	calendarRepo    CalendarRepository
	reservationRepo ReservationRepository
	slotResolver    SlotResolver
	txManager       TransactionManager
	notifierClient  NotifierClient
	timeProvider    TimeProvider
	logger          Logger
}

// New создает новый UseCase коммита брони
func New(
	calendarRepo CalendarRepository,
	reservationRepo ReservationRepository,
	slotResolver SlotResolver,
	txManager TransactionManager,
	notifierClient NotifierClient,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		calendarRepo:    calendarRepo,
		reservationRepo: reservationRepo,
		slotResolver:    slotResolver,
		txManager:       txManager,
		notifierClient:  notifierClient,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Execute создает бронь на запрошенный слот
//
// Коммит двухфазный. Первая фаза вне транзакции повторяет полное вычисление
// доступности слота (внешний календарь, оверрайды, брони) и дешево отсекает
// уже занятые слоты. Вторая фаза в SERIALIZABLE транзакции блокирует FOR UPDATE
// брони сотрудников-кандидатов, перепроверяет пересечения по свежим данным и
// вставляет бронь. Exclusion constraint в БД остается последним рубежом
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CommitReservation: starting for calendar_id=%d, start_at=%s",
		req.CalendarID, req.StartAt.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CommitReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем и проверяем календарь
	cfg, err := uc.loadCalendar(ctx, req.CalendarID)
	if err != nil {
		return nil, err
	}

	if !cfg.IsActive {
		uc.logger.Warn("CommitReservation: calendar_id=%d is inactive", req.CalendarID)
		return nil, ErrCalendarInactive
	}

	if req.RequestedStaffID != nil && !cfg.HasStaff(*req.RequestedStaffID) {
		uc.logger.Warn("CommitReservation: staff_id=%d is not linked to calendar_id=%d",
			*req.RequestedStaffID, req.CalendarID)
		return nil, ErrStaffNotLinked
	}

	now := uc.timeProvider.Now()

	// 3. Первая фаза: полное вычисление доступности слота вне транзакции
	slot, err := uc.slotResolver.ResolveSlot(ctx, cfg, req.StartAt, now)
	if err != nil {
		return nil, uc.mapResolveError(err)
	}

	candidates, err := uc.candidateStaff(cfg, slot, req.RequestedStaffID)
	if err != nil {
		return nil, err
	}

	// 4. Вторая фаза: сериализуемая транзакция с перепроверкой и вставкой
	// Транзакция отвязана от отмены запроса: прерванный на середине коммит
	// оставил бы клиента без ответа о судьбе его брони
	var created *domain.Reservation
	txCtx := context.WithoutCancel(ctx)

	txErr := uc.txManager.DoSerializable(txCtx, func(ctx context.Context) error {
		assignee, err := uc.pickAssignee(ctx, cfg, req, candidates)
		if err != nil {
			return err
		}

		status := domain.StatusPending
		if req.CreatedByAdmin {
			status = domain.StatusConfirmed
		}

		res := &domain.Reservation{
			CalendarID:      req.CalendarID,
			StaffID:         assignee,
			StartAt:         req.StartAt,
			DurationMinutes: cfg.EventDurationMinutes,
			Status:          status,
			CustomerName:    req.CustomerName,
			CustomerLineID:  req.CustomerLineID,
			CustomerPhone:   req.CustomerPhone,
			Notes:           req.Notes,
		}

		created, err = uc.reservationRepo.Create(ctx, res)
		return err
	})

	if txErr != nil {
		return nil, uc.mapCommitError(txErr)
	}

	uc.logger.Info("CommitReservation: created reservation_id=%d, calendar_id=%d, staff_id=%d, status=%s",
		created.ID, created.CalendarID, created.StaffID, created.Status)

	// 5. Уведомление после коммита: асинхронно, сбой не откатывает бронь
	go uc.notifyCreated(created)

	return &Response{Reservation: created}, nil
}

// candidateStaff проверяет доступность слота по политике календаря и
// возвращает сотрудников-кандидатов первой фазы
func (uc *UseCase) candidateStaff(cfg *domain.CalendarConfig, slot *domain.CandidateSlot, requestedStaffID *int64) ([]int64, error) {
	switch cfg.Policy {
	case domain.PolicyAll:
		// Для политики all должны быть свободны все привязанные сотрудники,
		// и блокировать на второй фазе надо всех
		if len(slot.FreeStaffIDs) != len(cfg.StaffLinks) {
			return nil, ErrSlotNoLongerAvailable
		}
		return cfg.StaffIDs(), nil

	default: // PolicyAny
		if requestedStaffID != nil {
			if !slot.ContainsStaff(*requestedStaffID) {
				return nil, ErrSlotNoLongerAvailable
			}
			return []int64{*requestedStaffID}, nil
		}
		if !slot.HasFreeStaff() {
			return nil, ErrSlotNoLongerAvailable
		}
		return slot.FreeStaffIDs, nil
	}
}

// pickAssignee внутри транзакции блокирует брони кандидатов FOR UPDATE,
// пересчитывает свободных по свежим данным и выбирает исполнителя
//
// Для политики any исполнитель - свободный кандидат с наивысшим приоритетом
// (кандидаты уже упорядочены). Для политики all все привязанные сотрудники
// обязаны быть свободны, номинальным исполнителем назначается запрошенный
// либо самый приоритетный
func (uc *UseCase) pickAssignee(ctx context.Context, cfg *domain.CalendarConfig, req *Request, candidates []int64) (int64, error) {
	slotStart := req.StartAt
	slotEnd := slotStart.Add(time.Duration(cfg.EventDurationMinutes) * time.Minute)

	locked, err := uc.reservationRepo.GetActiveByStaffInRange(ctx, candidates, slotStart, slotEnd)
	if err != nil {
		return 0, fmt.Errorf("%w: lock reservations: %v", ErrInternal, err)
	}

	busy := make(map[int64]bool, len(locked))
	for _, res := range locked {
		busy[res.StaffID] = true
	}

	free := make([]int64, 0, len(candidates))
	for _, staffID := range candidates {
		if !busy[staffID] {
			free = append(free, staffID)
		}
	}

	if cfg.Policy == domain.PolicyAll {
		if len(free) != len(candidates) {
			return 0, ErrSlotNoLongerAvailable
		}
		if req.RequestedStaffID != nil {
			return *req.RequestedStaffID, nil
		}
		return free[0], nil
	}

	if len(free) == 0 {
		return 0, ErrSlotNoLongerAvailable
	}
	return free[0], nil
}

// notifyCreated отправляет событие о созданной брони в роутер уведомлений
// Вызывается в отдельной горутине после коммита; ошибка только логируется
func (uc *UseCase) notifyCreated(res *domain.Reservation) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	event := &notifier.ReservationCreatedEvent{
		ReservationID:   res.ID,
		CalendarID:      res.CalendarID,
		StaffID:         res.StaffID,
		StartAt:         res.StartAt,
		DurationMinutes: res.DurationMinutes,
		Status:          string(res.Status),
		CustomerName:    res.CustomerName,
		CustomerLineID:  res.CustomerLineID,
	}

	if err := uc.notifierClient.SendReservationCreated(ctx, event); err != nil {
		uc.logger.Error("CommitReservation: failed to notify about reservation_id=%d: %v", res.ID, err)
	}
}

// loadCalendar получает и валидирует конфигурацию календаря
func (uc *UseCase) loadCalendar(ctx context.Context, calendarID int64) (*domain.CalendarConfig, error) {
	cfg, err := uc.calendarRepo.GetByID(ctx, calendarID)
	if err != nil {
		if errors.Is(err, calendar.ErrCalendarNotFound) {
			uc.logger.Warn("CommitReservation: calendar_id=%d not found", calendarID)
			return nil, ErrCalendarNotFound
		}
		uc.logger.Error("CommitReservation: failed to get calendar_id=%d: %v", calendarID, err)
		return nil, fmt.Errorf("%w: get calendar: %v", ErrInternal, err)
	}

	if err := cfg.Validate(); err != nil {
		uc.logger.Error("CommitReservation: calendar_id=%d has invalid configuration: %v", calendarID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	return cfg, nil
}

// mapResolveError транслирует ошибки вычисления доступности в ошибки коммита
func (uc *UseCase) mapResolveError(err error) error {
	switch {
	case errors.Is(err, resolve.ErrSlotNotInGrid):
		return ErrInvalidTimeSlot
	case errors.Is(err, resolve.ErrAvailabilityUnresolvable):
		return ErrAvailabilityUnresolvable
	default:
		uc.logger.Error("CommitReservation: slot resolution failed: %v", err)
		return fmt.Errorf("%w: resolve slot: %v", ErrInternal, err)
	}
}

// mapCommitError транслирует ошибки транзакционной фазы
// Нарушение exclusion constraint и исчерпание повторов сериализации означают
// одно и то же для клиента: слот перехвачен конкурентом
func (uc *UseCase) mapCommitError(err error) error {
	if errors.Is(err, ErrSlotNoLongerAvailable) {
		return ErrSlotNoLongerAvailable
	}
	if errors.Is(err, reservation.ErrOverlapConstraint) {
		uc.logger.Warn("CommitReservation: exclusion constraint rejected insert: %v", err)
		return ErrSlotNoLongerAvailable
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == serializationFailureCode {
		uc.logger.Warn("CommitReservation: serialization retries exhausted: %v", err)
		return ErrSlotNoLongerAvailable
	}

	uc.logger.Error("CommitReservation: transaction failed: %v", err)
	return fmt.Errorf("%w: commit transaction: %v", ErrInternal, err)
}
