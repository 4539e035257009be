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
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelConsultationHandler "github.com/orienta-vg/consultation-service/internal/api/handlers/cancel_consultation"
	createAvailabilityHandler "github.com/orienta-vg/consultation-service/internal/api/handlers/create_availability"
	deactivateAvailabilityHandler "github.com/orienta-vg/consultation-service/internal/api/handlers/deactivate_availability"
	getAvailableSlotsHandler "github.com/orienta-vg/consultation-service/internal/api/handlers/get_available_slots"
	getConsultationHandler "github.com/orienta-vg/consultation-service/internal/api/handlers/get_consultation"
	getPsychologistConsultationsHandler "github.com/orienta-vg/consultation-service/internal/api/handlers/get_psychologist_consultations"
	getStatisticsHandler "github.com/orienta-vg/consultation-service/internal/api/handlers/get_statistics"
	getStudentConsultationsHandler "github.com/orienta-vg/consultation-service/internal/api/handlers/get_student_consultations"
	listAvailabilityHandler "github.com/orienta-vg/consultation-service/internal/api/handlers/list_availability"
	requestConsultationHandler "github.com/orienta-vg/consultation-service/internal/api/handlers/request_consultation"
	updateAvailabilityHandler "github.com/orienta-vg/consultation-service/internal/api/handlers/update_availability"
	updateConsultationHandler "github.com/orienta-vg/consultation-service/internal/api/handlers/update_consultation"
	"github.com/orienta-vg/consultation-service/internal/api/middleware"
	"github.com/orienta-vg/consultation-service/internal/config"
	"github.com/orienta-vg/consultation-service/internal/infra/cache/slotscache"
	availabilityRepo "github.com/orienta-vg/consultation-service/internal/infra/storage/availability"
	consultationRepo "github.com/orienta-vg/consultation-service/internal/infra/storage/consultation"
	userDirectoryClient "github.com/orienta-vg/consultation-service/internal/integrations/userdirectory"
	availabilityService "github.com/orienta-vg/consultation-service/internal/service/availability"
	consultationsService "github.com/orienta-vg/consultation-service/internal/service/consultations"
	getAvailableSlotsUC "github.com/orienta-vg/consultation-service/internal/usecase/get_available_slots"
	requestConsultationUC "github.com/orienta-vg/consultation-service/internal/usecase/request_consultation"
	"github.com/orienta-vg/consultation-service/pkg/logger"
	"github.com/orienta-vg/consultation-service/pkg/metrics"
	"github.com/orienta-vg/consultation-service/pkg/txmanager"
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

	log.Info("Starting consultation-service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Применяем миграции (если включено)
	if cfg.Database.Migrate {
		if err := goose.SetDialect("postgres"); err != nil {
			log.Fatal("Failed to set goose dialect: %v", err)
		}
		if err := goose.Up(db, "migrations"); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database migrations applied")
	}

	// Инициализируем Redis кэш слотов (если включен)
	var slotCache *slotscache.Cache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		defer redisClient.Close()

		slotCache = slotscache.New(redisClient, time.Duration(cfg.Redis.TTLSeconds)*time.Second)
		log.Info("Slot cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTLSeconds)
	}

	// Инициализируем клиента каталога пользователей
	userClient := userDirectoryClient.NewClient(
		cfg.UserDirectory.URL,
		time.Duration(cfg.UserDirectory.Timeout)*time.Second,
		log,
	)
	log.Info("User directory client initialized (url=%s, timeout=%ds)",
		cfg.UserDirectory.URL, cfg.UserDirectory.Timeout)

	// Инициализируем репозитории и transaction manager
	availabilityRepository := availabilityRepo.NewRepository(db)
	consultationRepository := consultationRepo.NewRepository(db)
	txMgr := txmanager.NewTransactionManager(db)

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(
		availabilityRepository,
		userClient,
		txMgr,
		log,
	)
	// Кэш и метрики передаются как нетипизированный nil, когда выключены
	var (
		rcSlotCache requestConsultationUC.SlotCache
		rcMetrics   requestConsultationUC.Metrics
		gsSlotCache getAvailableSlotsUC.SlotCache
		gsMetrics   getAvailableSlotsUC.Metrics
		csSlotCache consultationsService.SlotCache
	)
	if slotCache != nil {
		rcSlotCache = slotCache
		gsSlotCache = slotCache
		csSlotCache = slotCache
	}
	if metricsCollector != nil {
		rcMetrics = metricsCollector
		gsMetrics = metricsCollector
	}

	consultationsSvc := consultationsService.NewService(
		consultationRepository,
		csSlotCache,
		txMgr,
		log,
		cfg.Scheduler.UTCOffsetMinutes,
	)

	// Инициализируем use cases
	requestConsultationUseCase := requestConsultationUC.NewUseCase(
		consultationRepository,
		availabilityRepository,
		userClient,
		rcSlotCache,
		rcMetrics,
		txMgr,
		log,
		cfg.Scheduler.UTCOffsetMinutes,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		consultationRepository,
		availabilityRepository,
		gsSlotCache,
		gsMetrics,
		log,
		cfg.Scheduler.SlotDurationMinutes,
		cfg.Scheduler.UTCOffsetMinutes,
	)

	// Инициализируем handlers
	createAvailability := createAvailabilityHandler.NewHandler(availabilitySvc, log)
	listAvailability := listAvailabilityHandler.NewHandler(availabilitySvc, log)
	updateAvailability := updateAvailabilityHandler.NewHandler(availabilitySvc, log)
	deactivateAvailability := deactivateAvailabilityHandler.NewHandler(availabilitySvc, log)
	requestConsultation := requestConsultationHandler.NewHandler(requestConsultationUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getConsultation := getConsultationHandler.NewHandler(consultationsSvc, log)
	updateConsultation := updateConsultationHandler.NewHandler(consultationsSvc, log)
	cancelConsultation := cancelConsultationHandler.NewHandler(consultationsSvc, log)
	getStudentConsultations := getStudentConsultationsHandler.NewHandler(consultationsSvc, log)
	getPsychologistConsultations := getPsychologistConsultationsHandler.NewHandler(consultationsSvc, log)
	getStatistics := getStatisticsHandler.NewHandler(consultationsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Открытые слоты психолога на дату
	api.HandleFunc("/psychologists/{psychologistId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Недельное расписание доступности психолога
	api.HandleFunc("/psychologists/{psychologistId}/availability",
		listAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID / X-User-Role headers)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(log))

	// --- Доступность ---
	protected.HandleFunc("/availability", createAvailability.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/availability/{windowId}", updateAvailability.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/availability/{windowId}", deactivateAvailability.Handle).Methods(http.MethodDelete)

	// --- Консультации ---
	protected.HandleFunc("/consultations", requestConsultation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/consultations/{consultationId}", getConsultation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/consultations/{consultationId}", updateConsultation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/consultations/{consultationId}/cancel", cancelConsultation.Handle).Methods(http.MethodPatch)

	// --- Истории и статистика ---
	protected.HandleFunc("/students/{studentId}/consultations", getStudentConsultations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/psychologists/{psychologistId}/consultations", getPsychologistConsultations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/statistics", getStatistics.Handle).Methods(http.MethodGet)

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

	log.Info("Server stopped gracefully")
}
