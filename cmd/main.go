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
	"github.com/redis/go-redis/v9"

	cancelAppointmentHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/cancel_appointment"
	checkAvailabilityHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/check_availability"
	createAppointmentHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/create_appointment"
	deleteAvailabilityHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/delete_availability"
	exportAvailabilityCalendarHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/export_availability_calendar"
	exportSlotsCalendarHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/export_slots_calendar"
	getAppointmentHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_appointment"
	getAvailabilityHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_availability"
	getAvailableSlotsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_available_slots"
	getProviderAppointmentsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_provider_appointments"
	resetAvailabilityHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/reset_availability"
	updateAvailabilityHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/update_availability"
	validateAvailabilityHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/validate_availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/config"
	slotsCache "github.com/m04kA/SMC-AvailabilityService/internal/infra/cache/slots"
	appointmentRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/appointment"
	availabilityRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/integrations/events"
	appointmentsService "github.com/m04kA/SMC-AvailabilityService/internal/service/appointments"
	availabilityService "github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
	checkAvailabilityUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/check_availability"
	createAppointmentUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_slots"
	updateAvailabilityUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/update_availability"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/tracing"
	"github.com/m04kA/SMC-AvailabilityService/pkg/txmanager"
)

// Кэш слотов и публикатор событий, которые можно отключить конфигом
type slotCache interface {
	getAvailableSlotsUC.SlotCache
	InvalidateProvider(ctx context.Context, providerID string) error
}

type eventPublisher interface {
	availabilityService.EventPublisher
	appointmentsService.EventPublisher
	createAppointmentUC.EventPublisher
	Close() error
}

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
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

	log.Info("Starting SMC-AvailabilityService...")
	log.Info("Configuration loaded from %s", configPath)

	policy, err := cfg.Booking.Policy()
	if err != nil {
		log.Fatal("Invalid booking policy: %v", err)
	}
	log.Info("Booking policy: timezone=%s, min_notice=%dm, advance=%dd, max_range=%dd",
		policy.Loc(), policy.MinNoticeMinutes, policy.AdvanceBookingDays, policy.MaxRangeDays)

	// Трассировка
	shutdownTracing, err := tracing.Setup(context.Background(), tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		ServiceName:  cfg.Metrics.ServiceName,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRatio:  cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Fatal("Failed to setup tracing: %v", err)
	}
	if cfg.Tracing.Enabled {
		log.Info("Tracing enabled, exporting to %s", cfg.Tracing.OTLPEndpoint)
	}

	// Метрики (если включены). Все обёртки работают и с nil коллектором
	var metricsCollector *metrics.Metrics
	stopCh := make(chan struct{})

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

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Кэш слотов
	var cache slotCache = slotsCache.Noop{}
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Warn("Redis unavailable at %s, slots cache disabled: %v", cfg.Redis.Addr, err)
		} else {
			cache = slotsCache.NewRedisCache(redisClient, time.Duration(cfg.Redis.TTLSeconds)*time.Second)
			log.Info("Slots cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTLSeconds)
		}
	}

	// Публикация событий
	var publisher eventPublisher = events.NoopPublisher{}
	if cfg.Kafka.Enabled {
		publisher = events.NewKafkaPublisher(
			cfg.Kafka.Brokers,
			cfg.Kafka.Topic,
			time.Duration(cfg.Kafka.WriteTimeout)*time.Second,
		)
		log.Info("Event publishing enabled (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}
	defer publisher.Close()

	// Репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	availabilityRepository := availabilityRepo.NewRepository(wrappedDB)

	// Сервисы
	availabilitySvc := availabilityService.NewService(availabilityRepository, cache, publisher, log)
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		cache,
		publisher,
		metricsCollector,
		txMgr,
		log,
	)

	// Use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		availabilityRepository,
		appointmentRepository,
		cache,
		metricsCollector,
		policy,
		log,
	)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		availabilityRepository,
		appointmentRepository,
		policy,
		log,
	)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		availabilityRepository,
		cache,
		publisher,
		metricsCollector,
		txMgr,
		policy,
		log,
	)
	updateAvailabilityUseCase := updateAvailabilityUC.NewUseCase(
		availabilityRepository,
		cache,
		publisher,
		log,
	)

	// Handlers
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	validateAvailability := validateAvailabilityHandler.NewHandler(availabilitySvc, log)
	updateAvailability := updateAvailabilityHandler.NewHandler(updateAvailabilityUseCase, log)
	resetAvailability := resetAvailabilityHandler.NewHandler(availabilitySvc, log)
	deleteAvailability := deleteAvailabilityHandler.NewHandler(availabilitySvc, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	exportSlotsCalendar := exportSlotsCalendarHandler.NewHandler(getAvailableSlotsUseCase, policy.Loc(), log)
	exportAvailabilityCalendar := exportAvailabilityCalendarHandler.NewHandler(availabilitySvc, policy.Loc(), log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	getProviderAppointments := getProviderAppointmentsHandler.NewHandler(appointmentsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}
	if cfg.Tracing.Enabled {
		r.Use(middleware.Tracing(cfg.Metrics.ServiceName))
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := wrappedDB.PingContext(ctx); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(
			cfg.RateLimit.RPS,
			cfg.RateLimit.Burst,
			time.Duration(cfg.RateLimit.TTLSeconds)*time.Second,
		)
		go limiter.Run(stopCh)
		api.Use(limiter.Limit)
		log.Info("Rate limiting enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Расписание мастера (или шаблон по умолчанию)
	api.HandleFunc("/providers/{providerId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Проверка интервалов одного дня для формы редактирования
	api.HandleFunc("/availability/validate", validateAvailability.Handle).Methods(http.MethodPost)

	// Можно ли записаться на конкретный интервал
	api.HandleFunc("/providers/{providerId}/availability/check", checkAvailability.Handle).Methods(http.MethodGet)

	// Расписание в iCalendar
	api.HandleFunc("/providers/{providerId}/availability.ics", exportAvailabilityCalendar.Handle).Methods(http.MethodGet)

	// Слоты на дату или период
	api.HandleFunc("/providers/{providerId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/providers/{providerId}/available-slots.ics", exportSlotsCalendar.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Расписание (только сам мастер) ---
	protected.HandleFunc("/providers/{providerId}/availability", updateAvailability.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/providers/{providerId}/availability", deleteAvailability.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/providers/{providerId}/availability/reset", resetAvailability.Handle).Methods(http.MethodPost)

	// --- Записи ---
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/providers/{providerId}/appointments", getProviderAppointments.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер, CORS снаружи роутера, чтобы отвечать на preflight
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr: addr,
		Handler: middleware.CORS(middleware.CORSConfig{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			MaxAge:         cfg.CORS.MaxAge,
		})(r),
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

	// Останавливаем фоновые задачи: метрики пула, очистку лимитера
	close(stopCh)

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Failed to flush traces: %v", err)
	}

	log.Info("Server stopped gracefully")
}
