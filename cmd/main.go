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
	"github.com/spf13/pflag"

	assignTagHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/assign_tag"
	assignUserHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/assign_user"
	checkReserveNowHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/check_reserve_now"
	closeSessionHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/close_session"
	getSessionHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_session"
	listReservationsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/list_reservations"
	openSessionHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/open_session"
	reservationActionHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/reservation_action"
	setScheduleHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/set_schedule"
	submitSessionHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/submit_session"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/config"
	"github.com/m04kA/SMC-ReservationService/internal/infra/events"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	centralServerClient "github.com/m04kA/SMC-ReservationService/internal/integrations/centralserver"
	"github.com/m04kA/SMC-ReservationService/internal/service/permissions"
	reservationsService "github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/reservation_session"
	resolveEligibilityUC "github.com/m04kA/SMC-ReservationService/internal/usecase/resolve_eligibility"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

func main() {
	configPath := pflag.StringP("config", "c", "config.toml", "path to config file")
	pflag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
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

	log.Info("Starting SMC-ReservationService...")
	log.Info("Configuration loaded from %s", *configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Репозиторий и transaction manager (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		txMgr                 *txmanager.TransactionManager
	)
	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		txMgr = txmanager.NewTransactionManager(txmanager.SQLDB{DB: db})
	}

	// Клиент центрального сервера
	centralClient := centralServerClient.NewClient(
		cfg.CentralServer.URL,
		cfg.CentralServer.Token,
		time.Duration(cfg.CentralServer.Timeout)*time.Second,
		log,
	)
	log.Info("Central server client initialized (url=%s, timeout=%ds)",
		cfg.CentralServer.URL, cfg.CentralServer.Timeout)

	// Публикация событий (Kafka или no-op)
	var publisher reservationsService.EventPublisher = events.NopPublisher{}
	if cfg.Kafka.Enabled {
		var eventMetrics events.MetricsRecorder
		if cfg.Metrics.Enabled {
			eventMetrics = metricsCollector
		}
		producer, err := events.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, eventMetrics, log.WithField("component", "reservation-events"))
		if err != nil {
			log.Fatal("Failed to create kafka producer: %v", err)
		}
		defer func() {
			if err := producer.Close(); err != nil {
				log.Error("Failed to close kafka producer: %v", err)
			}
		}()
		publisher = producer
		log.Info("Kafka producer initialized (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}

	// Инициализируем сервисы
	gate := permissions.NewGate(log)
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		centralClient,
		gate,
		publisher,
		txMgr,
		log,
	)

	// Инициализируем use cases
	resolveEligibilityUseCase := resolveEligibilityUC.NewUseCase(reservationSvc, log)

	var (
		sessionMetrics reservation_session.MetricsRecorder
		timeProvider   = &reservation_session.RealTimeProvider{}
	)
	sessionRegistry := reservation_session.NewRegistry(cfg.Reservations.SessionTTL.Duration, timeProvider, log)
	if cfg.Metrics.Enabled {
		sessionMetrics = metricsCollector
		sessionRegistry.SetGauge(metricsCollector)
	}
	sessionManager := reservation_session.NewManager(
		sessionRegistry,
		resolveEligibilityUseCase,
		reservationSvc,
		reservationSvc,
		gate,
		reservation_session.UUIDGenerator{},
		timeProvider,
		sessionMetrics,
		log,
		cfg.Reservations.ExpiryDelay.Duration,
	)

	registryCtx, stopRegistry := context.WithCancel(context.Background())
	registryDone := make(chan struct{})
	go func() {
		defer close(registryDone)
		sessionRegistry.Run(registryCtx, cfg.Reservations.EvictionInterval.Duration)
	}()
	log.Info("Session registry started (ttl=%s, eviction_interval=%s)",
		cfg.Reservations.SessionTTL.Duration, cfg.Reservations.EvictionInterval.Duration)

	// Инициализируем handlers
	openSession := openSessionHandler.NewHandler(sessionManager, log)
	getSession := getSessionHandler.NewHandler(sessionManager, log)
	assignUser := assignUserHandler.NewHandler(sessionManager, log)
	assignTag := assignTagHandler.NewHandler(sessionManager, log)
	setSchedule := setScheduleHandler.NewHandler(sessionManager, log)
	submitSession := submitSessionHandler.NewHandler(sessionManager, log)
	closeSession := closeSessionHandler.NewHandler(sessionManager, log)
	listReservations := listReservationsHandler.NewHandler(reservationSvc, log)
	reservationAction := reservationActionHandler.NewHandler(reservationSvc, gate, sessionManager, log)
	checkReserveNow := checkReserveNowHandler.NewHandler(reservationSvc, gate, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Проверка возможности reserve-now на коннекторе
	api.HandleFunc("/charging-stations/{stationId}/connectors/{connectorId}/reserve-now",
		checkReserveNow.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Сессии формы резервирования ---
	protected.HandleFunc("/reservation-sessions", openSession.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservation-sessions/{sessionId}", getSession.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservation-sessions/{sessionId}/user", assignUser.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/reservation-sessions/{sessionId}/tag", assignTag.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/reservation-sessions/{sessionId}/schedule", setSchedule.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/reservation-sessions/{sessionId}/submit", submitSession.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservation-sessions/{sessionId}", closeSession.Handle).Methods(http.MethodDelete)

	// --- Резервирования ---
	protected.HandleFunc("/reservations", listReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/actions/{action}",
		reservationAction.Handle).Methods(http.MethodPost)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Закрываем открытые сессии: незавершённые запросы к backend'у отменяются
	stopRegistry()
	<-registryDone
	log.Info("Session registry stopped")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	log.Info("Server stopped gracefully")
}
