package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelReservationHandler "github.com/m1zuki/RSV-AvailabilityService/internal/api/handlers/cancel_reservation"
	commitReservationHandler "github.com/m1zuki/RSV-AvailabilityService/internal/api/handlers/commit_reservation"
	getCalendarReservationsHandler "github.com/m1zuki/RSV-AvailabilityService/internal/api/handlers/get_calendar_reservations"
	getReservationHandler "github.com/m1zuki/RSV-AvailabilityService/internal/api/handlers/get_reservation"
	resolveAvailabilityHandler "github.com/m1zuki/RSV-AvailabilityService/internal/api/handlers/resolve_availability"
	transitionReservationHandler "github.com/m1zuki/RSV-AvailabilityService/internal/api/handlers/transition_reservation"
	"github.com/m1zuki/RSV-AvailabilityService/internal/api/middleware"
	"github.com/m1zuki/RSV-AvailabilityService/internal/config"
	availabilityRepo "github.com/m1zuki/RSV-AvailabilityService/internal/infra/storage/availability"
	calendarRepo "github.com/m1zuki/RSV-AvailabilityService/internal/infra/storage/calendar"
	reservationRepo "github.com/m1zuki/RSV-AvailabilityService/internal/infra/storage/reservation"
	gcalsyncClient "github.com/m1zuki/RSV-AvailabilityService/internal/integrations/gcalsync"
	notifierClient "github.com/m1zuki/RSV-AvailabilityService/internal/integrations/notifier"
	reservationsService "github.com/m1zuki/RSV-AvailabilityService/internal/service/reservations"
	commitReservationUC "github.com/m1zuki/RSV-AvailabilityService/internal/usecase/commit_reservation"
	resolveAvailabilityUC "github.com/m1zuki/RSV-AvailabilityService/internal/usecase/resolve_availability"
	transitionReservationUC "github.com/m1zuki/RSV-AvailabilityService/internal/usecase/transition_reservation"
	"github.com/m1zuki/RSV-AvailabilityService/pkg/dbmetrics"
	"github.com/m1zuki/RSV-AvailabilityService/pkg/logger"
	"github.com/m1zuki/RSV-AvailabilityService/pkg/metrics"
	"github.com/m1zuki/RSV-AvailabilityService/pkg/simpletxmanager"
	"github.com/m1zuki/RSV-AvailabilityService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting RSV-AvailabilityService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционных клиентов
	// metricsCollector безопасно передавать и выключенным (nil)
	gcalClient := gcalsyncClient.NewClient(
		cfg.GCalSync.URL,
		time.Duration(cfg.GCalSync.Timeout)*time.Second,
		metricsCollector,
		log,
	)
	notifyClient := notifierClient.NewClient(
		cfg.Notifier.URL,
		time.Duration(cfg.Notifier.Timeout)*time.Second,
		metricsCollector,
		log,
	)
	log.Info("Integration clients initialized (GCalSync=%s timeout=%ds, Notifier=%s timeout=%ds)",
		cfg.GCalSync.URL, cfg.GCalSync.Timeout, cfg.Notifier.URL, cfg.Notifier.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		calendarRepository    *calendarRepo.Repository
		reservationRepository *reservationRepo.Repository
		overrideRepository    *availabilityRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		calendarRepository = calendarRepo.NewRepository(wrappedDB)
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		overrideRepository = availabilityRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		calendarRepository = calendarRepo.NewRepository(db)
		reservationRepository = reservationRepo.NewRepository(db)
		overrideRepository = availabilityRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	reservationsSvc := reservationsService.New(reservationRepository, calendarRepository, log)

	// Инициализируем use cases
	resolveAvailabilityUseCase := resolveAvailabilityUC.New(
		calendarRepository,
		reservationRepository,
		overrideRepository,
		gcalClient,
		&resolveAvailabilityUC.NoHolidaysProvider{},
		&resolveAvailabilityUC.RealTimeProvider{},
		time.Duration(cfg.Availability.StaffFetchTimeout)*time.Second,
		log,
	)

	commitReservationUseCase := commitReservationUC.New(
		calendarRepository,
		reservationRepository,
		resolveAvailabilityUseCase,
		txMgr,
		notifyClient,
		&resolveAvailabilityUC.RealTimeProvider{},
		log,
	)

	transitionReservationUseCase := transitionReservationUC.New(reservationRepository, log)

	// Инициализируем handlers
	resolveAvailability := resolveAvailabilityHandler.NewHandler(resolveAvailabilityUseCase, log)
	commitReservation := commitReservationHandler.NewHandler(commitReservationUseCase, log)
	transitionReservation := transitionReservationHandler.NewHandler(transitionReservationUseCase, log)
	cancelReservation := cancelReservationHandler.NewHandler(transitionReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	getCalendarReservations := getCalendarReservationsHandler.NewHandler(reservationsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты календаря
	api.HandleFunc("/calendars/{calendarId}/available-slots",
		resolveAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Брони ---
	// Создание брони
	protected.HandleFunc("/reservations", commitReservation.Handle).Methods(http.MethodPost)

	// Получение брони по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Перевод брони в новый статус (confirmed/completed)
	protected.HandleFunc("/reservations/{reservationId}/status", transitionReservation.Handle).Methods(http.MethodPatch)

	// Отмена брони
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// --- Управление календарем (для администраторов) ---
	// Список броней календаря
	protected.HandleFunc("/calendars/{calendarId}/reservations", getCalendarReservations.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
