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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/m04kA/SMC-DockBookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-DockBookingService/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/SMC-DockBookingService/internal/api/handlers/delete_booking"
	deleteSlotHandler "github.com/m04kA/SMC-DockBookingService/internal/api/handlers/delete_slot"
	getAvailableSlotsHandler "github.com/m04kA/SMC-DockBookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-DockBookingService/internal/api/handlers/get_booking"
	getQuotaAvailabilityHandler "github.com/m04kA/SMC-DockBookingService/internal/api/handlers/get_quota_availability"
	getUserBookingsHandler "github.com/m04kA/SMC-DockBookingService/internal/api/handlers/get_user_bookings"
	importBookingsHandler "github.com/m04kA/SMC-DockBookingService/internal/api/handlers/import_bookings"
	setSlotAvailabilityHandler "github.com/m04kA/SMC-DockBookingService/internal/api/handlers/set_slot_availability"
	updateBookingHandler "github.com/m04kA/SMC-DockBookingService/internal/api/handlers/update_booking"
	"github.com/m04kA/SMC-DockBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-DockBookingService/internal/config"
	"github.com/m04kA/SMC-DockBookingService/internal/infra/cache"
	"github.com/m04kA/SMC-DockBookingService/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-DockBookingService/internal/infra/storage/booking"
	durationRuleRepo "github.com/m04kA/SMC-DockBookingService/internal/infra/storage/durationrule"
	quotaRepo "github.com/m04kA/SMC-DockBookingService/internal/infra/storage/quota"
	referenceRepo "github.com/m04kA/SMC-DockBookingService/internal/infra/storage/reference"
	slotRepo "github.com/m04kA/SMC-DockBookingService/internal/infra/storage/slot"
	bookingsService "github.com/m04kA/SMC-DockBookingService/internal/service/bookings"
	docksService "github.com/m04kA/SMC-DockBookingService/internal/service/docks"
	durationService "github.com/m04kA/SMC-DockBookingService/internal/service/duration"
	quotaService "github.com/m04kA/SMC-DockBookingService/internal/service/quota"
	slotChainService "github.com/m04kA/SMC-DockBookingService/internal/service/slotchain"
	slotsService "github.com/m04kA/SMC-DockBookingService/internal/service/slots"
	createBookingUC "github.com/m04kA/SMC-DockBookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-DockBookingService/internal/usecase/get_available_slots"
	getQuotaAvailabilityUC "github.com/m04kA/SMC-DockBookingService/internal/usecase/get_quota_availability"
	importBookingsUC "github.com/m04kA/SMC-DockBookingService/internal/usecase/import_bookings"
	"github.com/m04kA/SMC-DockBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DockBookingService/pkg/logger"
	"github.com/m04kA/SMC-DockBookingService/pkg/metrics"
	"github.com/m04kA/SMC-DockBookingService/pkg/txmanager"
)

// eventPublisher издатель событий бронирований (rabbitmq или noop)
type eventPublisher interface {
	createBookingUC.EventPublisher
	bookingsService.EventPublisher
	Close() error
}

func main() {
	configPath := "config.toml"
	if p := os.Getenv("DOCKS_CONFIG"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-DockBookingService...")
	log.Info("Configuration loaded from %s", configPath)

	// Метрики собираются всегда, наружу отдаются только если включены
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	} else {
		metricsCollector = metrics.NewWithRegistry(cfg.Metrics.ServiceName, prometheus.NewRegistry())
	}
	stopMetricsCh := make(chan struct{})

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

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	slotRepository := slotRepo.NewRepository(wrappedDB)
	ruleRepository := durationRuleRepo.NewRepository(wrappedDB)
	quotaRepository := quotaRepo.NewRepository(wrappedDB)

	var references cache.ReferenceSource = referenceRepo.NewRepository(wrappedDB)
	if cfg.Redis.Enabled {
		rdb, err := cache.NewClient(context.Background(), cache.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			// Без кэша сервис работает напрямую с PostgreSQL
			log.Warn("Redis unavailable, reference cache disabled: %v", err)
		} else {
			defer rdb.Close()
			references = cache.NewReferenceCache(references, rdb, time.Duration(cfg.Redis.TTL)*time.Second, log)
			log.Info("Reference cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTL)
		}
	}

	// Публикация событий
	var publisher eventPublisher = events.Noop{}
	if cfg.RabbitMQ.Enabled {
		p, err := events.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, time.Duration(cfg.RabbitMQ.Timeout)*time.Second)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		publisher = p
		log.Info("Booking events are published to exchange %s", cfg.RabbitMQ.Exchange)
	}
	defer publisher.Close()

	continuity := slotChainService.GapTolerant
	if cfg.Allocation.StrictContinuity() {
		continuity = slotChainService.Strict
	}

	// Инициализируем сервисы
	durationSvc := durationService.NewService(ruleRepository, references, log)
	docksSvc := docksService.NewService(references, log)
	slotChainSvc := slotChainService.NewService(slotRepository, continuity, log)
	quotaSvc := quotaService.NewService(quotaRepository, log)
	bookingSvc := bookingsService.NewService(bookingRepository, quotaSvc, publisher, txMgr, log)
	slotsSvc := slotsService.NewService(slotRepository, txMgr, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		references,
		slotRepository,
		durationSvc,
		docksSvc,
		slotChainSvc,
		quotaSvc,
		publisher,
		metricsCollector,
		txMgr,
		log,
	)
	importBookingsUseCase := importBookingsUC.NewUseCase(createBookingUseCase, quotaSvc, cfg.Allocation.ImportMaxRows, log)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(references, slotRepository, log)
	getQuotaAvailabilityUseCase := getQuotaAvailabilityUC.NewUseCase(references, quotaSvc, cfg.Allocation.QuotaReportMaxDays, log)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	importBookings := importBookingsHandler.NewHandler(importBookingsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getQuotaAvailability := getQuotaAvailabilityHandler.NewHandler(getQuotaAvailabilityUseCase, log)
	setSlotAvailability := setSlotAvailabilityHandler.NewHandler(slotsSvc, log)
	deleteSlot := deleteSlotHandler.NewHandler(slotsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты объекта на дату
	api.HandleFunc("/facilities/{facilityId}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Остатки квот объекта по датам
	api.HandleFunc("/facilities/{facilityId}/quota-availability", getQuotaAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/import", importBookings.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}", updateBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}", deleteBooking.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/me/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Слоты ---
	protected.HandleFunc("/slots/{slotId:[0-9]+}/availability", setSlotAvailability.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/slots/{slotId:[0-9]+}", deleteSlot.Handle).Methods(http.MethodDelete)

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
	close(stopMetricsCh)

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
