package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	createBookingHandler "github.com/coastalgloss/BookingService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/coastalgloss/BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/coastalgloss/BookingService/internal/api/handlers/get_booking"
	healthHandler "github.com/coastalgloss/BookingService/internal/api/handlers/health"
	listBookingsHandler "github.com/coastalgloss/BookingService/internal/api/handlers/list_bookings"
	updateBookingStatusHandler "github.com/coastalgloss/BookingService/internal/api/handlers/update_booking_status"
	"github.com/coastalgloss/BookingService/internal/api/middleware"
	"github.com/coastalgloss/BookingService/internal/api/web"
	"github.com/coastalgloss/BookingService/internal/config"
	bookingRepo "github.com/coastalgloss/BookingService/internal/infra/storage/booking"
	"github.com/coastalgloss/BookingService/internal/infra/storage/schema"
	"github.com/coastalgloss/BookingService/internal/integrations/sms"
	bookingsService "github.com/coastalgloss/BookingService/internal/service/bookings"
	createBookingUC "github.com/coastalgloss/BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/coastalgloss/BookingService/internal/usecase/get_available_slots"
	updateStatusUC "github.com/coastalgloss/BookingService/internal/usecase/update_status"
	"github.com/coastalgloss/BookingService/pkg/dbmetrics"
	"github.com/coastalgloss/BookingService/pkg/logger"
	"github.com/coastalgloss/BookingService/pkg/metrics"
	"github.com/coastalgloss/BookingService/pkg/psqlbuilder"
	"github.com/coastalgloss/BookingService/pkg/txmanager"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to the TOML config file")
	flag.Parse()

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

	log.Info("Starting %s booking service...", cfg.Business.Title)
	log.Info("Configuration loaded from %s", *configPath)

	// Метрики собираются всегда, наружу отдаются только если включены
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)
	stopMetricsCh := make(chan struct{})

	// Подключаемся к базе данных
	db, err := sql.Open(cfg.Database.SQLDriverName(), cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	dialect := psqlbuilder.Dialect(cfg.Database.Driver)
	if dialect == psqlbuilder.DialectSQLite {
		// Один писатель: SQLite сериализует запись на уровне файла
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	}
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	if dialect == psqlbuilder.DialectSQLite {
		log.Info("Successfully opened sqlite database (path=%s)", cfg.Database.Path)
	} else {
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	}

	// Создаем таблицу и индексы
	if err := schema.Apply(context.Background(), db, dialect); err != nil {
		log.Fatal("Failed to apply schema: %v", err)
	}
	log.Info("Database schema is up to date (dialect=%s)", dialect)

	// Оборачиваем БД для замера запросов
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil, cfg.Metrics.ServiceName)
	}

	// Репозиторий и менеджер транзакций
	bookingRepository := bookingRepo.NewRepository(wrappedDB, psqlbuilder.MustNew(dialect))

	var txOpts []txmanager.Option
	if dialect == psqlbuilder.DialectSQLite {
		txOpts = append(txOpts, txmanager.WithSerializableLevel(sql.LevelDefault))
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB, txOpts...)

	// SMS клиент
	smsSender := sms.NewSender(cfg.SMS, log)
	if cfg.SMS.IsConfigured() {
		log.Info("Twilio SMS sender configured (from=%s, timeout=%ds)", cfg.SMS.FromNumber, cfg.SMS.Timeout)
	} else {
		log.Warn("Twilio credentials are not set: confirmation texts will be reported as not configured")
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		txMgr,
		metricsCollector,
		log,
	)

	updateStatusUseCase := updateStatusUC.NewUseCase(
		bookingRepository,
		smsSender,
		txMgr,
		metricsCollector,
		cfg.Business.Title,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(updateStatusUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	health := healthHandler.NewHandler(db, log)
	pages := web.NewHandler(createBookingUseCase, updateStatusUseCase, bookingSvc, cfg.Business.Title, log)

	// Ограничение частоты публичных POST запросов
	limit := func(h http.HandlerFunc) http.Handler { return h }
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewIPRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
		defer limiter.Stop()

		rateLimit := middleware.RateLimit(limiter, log)
		limit = func(h http.HandlerFunc) http.Handler { return rateLimit(h) }
		log.Info("Rate limit enabled: %.0f requests/min per client, burst=%d",
			cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	}

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.Recovery(log), middleware.Logging(log))

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Публичные маршруты ---
	// Создание бронирования
	api.Handle("/bookings", limit(createBooking.Handle)).Methods(http.MethodPost)

	// Доступность слотов на дату
	api.HandleFunc("/availability", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Маршруты оператора ---
	// Список бронирований
	api.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)

	// Получение бронирования по ID
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Смена статуса (с SMS при подтверждении)
	api.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// --- HTML страницы ---
	r.HandleFunc("/", pages.Form).Methods(http.MethodGet)
	r.Handle("/", limit(pages.Submit)).Methods(http.MethodPost)
	r.HandleFunc("/admin", pages.Admin).Methods(http.MethodGet)
	r.HandleFunc("/admin/bookings/{bookingId}/status", pages.UpdateStatus).Methods(http.MethodPost)

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
