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

	changeAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/change_appointment"
	changeStatusHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/change_status"
	checkAvailabilityHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/check_availability"
	createAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_appointment"
	finalizeMissedHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/finalize_missed"
	findBestSlotHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/find_best_slot"
	nextAvailableTimesHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/next_available_times"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/cache"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	businessHourRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/businesshour"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	clientRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/client"
	closureRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/closure"
	companyRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/company"
	providerRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/provider"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/calendar"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
	"github.com/m04kA/SMC-AppointmentService/internal/service/businesshours"
	"github.com/m04kA/SMC-AppointmentService/internal/service/closures"
	"github.com/m04kA/SMC-AppointmentService/internal/service/conflicts"
	"github.com/m04kA/SMC-AppointmentService/internal/service/slots"
	"github.com/m04kA/SMC-AppointmentService/internal/service/specialties"
	changeAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/change_appointment"
	changeStatusUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/change_status"
	checkAvailabilityUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/check_availability"
	createAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
	finalizeMissedUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/finalize_missed"
	findBestSlotUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/find_best_slot"
	nextAvailableTimesUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/next_available_times"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/tenant"
	"github.com/m04kA/SMC-AppointmentService/internal/worker/sweeper"
	"github.com/m04kA/SMC-AppointmentService/pkg/clock"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
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

	log.Info("Starting SMC-AppointmentService...")

	defaultLoc, err := cfg.Scheduling.Location()
	if err != nil {
		log.Fatal("Failed to load default timezone %q: %v", cfg.Scheduling.DefaultTimezone, err)
	}

	// Метрики (если включены). nil-коллектор ничего не пишет.
	var metricsCollector *metrics.Metrics
	var dbRecorder dbmetrics.Recorder
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		dbRecorder = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Обертка считает запросы только при заданном recorder, транзакции через context работают всегда
	wrappedDB := dbmetrics.WrapWithDefault(db, dbRecorder, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB, txmanager.WithMaxRetries(cfg.Scheduling.SerializationRetries))

	// Репозитории
	companies := companyRepo.NewRepository(wrappedDB)
	hoursRepository := businessHourRepo.NewRepository(wrappedDB)
	closureRepository := closureRepo.NewRepository(wrappedDB)
	providers := providerRepo.NewRepository(wrappedDB)
	catalog := catalogRepo.NewRepository(wrappedDB)
	clients := clientRepo.NewRepository(wrappedDB)
	appointments := appointmentRepo.NewRepository(wrappedDB, defaultLoc)

	// Сервисы планировщика
	timeProvider := &clock.RealTimeProvider{}
	hoursCache := cache.New[businesshours.Key, []domain.BusinessHour](
		cfg.Cache.BusinessHoursSize,
		time.Duration(cfg.Cache.BusinessHoursTTL)*time.Second,
	)
	hoursSvc := businesshours.NewService(hoursRepository, hoursCache, log)
	closuresSvc := closures.NewService(closureRepository, log)
	conflictsSvc := conflicts.NewService(appointments, log)
	specialtiesSvc := specialties.NewService(catalog, providers, appointments, log)
	validator := availability.NewValidator(hoursSvc, closuresSvc, conflictsSvc, timeProvider)
	engine := slots.NewEngine(validator, hoursSvc, specialtiesSvc, timeProvider, metricsCollector, log, slots.Options{
		SlotInterval:       time.Duration(cfg.Scheduling.SlotIntervalMinutes) * time.Minute,
		HorizonDays:        cfg.Scheduling.SearchHorizonWeeks * 7,
		NextTimesDaysAhead: cfg.Scheduling.NextTimesDaysAhead,
	})
	tenants := tenant.NewResolver(companies, catalog, clients, defaultLoc, log)

	// Внешний календарь
	calendarClient := calendar.NewClient(
		cfg.Calendar.WebhookURL,
		cfg.Calendar.Enabled,
		time.Duration(cfg.Calendar.Timeout)*time.Second,
		metricsCollector,
		log,
	)
	log.Info("Calendar notifier initialized (enabled=%t, timeout=%ds)", cfg.Calendar.Enabled, cfg.Calendar.Timeout)

	// Use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		tenants,
		specialtiesSvc,
		validator,
		appointments,
		calendarClient,
		txMgr,
		metricsCollector,
		log,
	)
	changeAppointmentUseCase := changeAppointmentUC.NewUseCase(
		tenants,
		validator,
		appointments,
		providers,
		calendarClient,
		txMgr,
		metricsCollector,
		log,
	)
	changeStatusUseCase := changeStatusUC.NewUseCase(
		tenants,
		appointments,
		providers,
		calendarClient,
		txMgr,
		metricsCollector,
		log,
	)
	finalizeMissedUseCase := finalizeMissedUC.NewUseCase(appointments, txMgr, timeProvider, metricsCollector, log)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(tenants, specialtiesSvc, validator, log)
	findBestSlotUseCase := findBestSlotUC.NewUseCase(tenants, specialtiesSvc, engine, providers, log)
	nextAvailableTimesUseCase := nextAvailableTimesUC.NewUseCase(tenants, engine, log)

	// Handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	changeAppointment := changeAppointmentHandler.NewHandler(changeAppointmentUseCase, log)
	changeStatus := changeStatusHandler.NewHandler(changeStatusUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	findBestSlot := findBestSlotHandler.NewHandler(findBestSlotUseCase, log)
	nextAvailableTimes := nextAvailableTimesHandler.NewHandler(nextAvailableTimesUseCase, log)
	finalizeMissed := finalizeMissedHandler.NewHandler(finalizeMissedUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Записи ---
	// Статические пути регистрируются раньше /appointments/{appointmentId}
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/availability", checkAvailability.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/best-slot", findBestSlot.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/finalize-missed", finalizeMissed.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{appointmentId}", changeAppointment.Handle).Methods(http.MethodPut)
	api.HandleFunc("/appointments/{appointmentId}/status", changeStatus.Handle).Methods(http.MethodPatch)

	// --- Компания ---
	api.HandleFunc("/companies/{companyId}/next-available-times", nextAvailableTimes.Handle).Methods(http.MethodPost)

	// Ежедневная отмена пропущенных записей
	var sweep *sweeper.Sweeper
	if cfg.Sweep.Enabled {
		sweep = sweeper.New(
			finalizeMissedUseCase,
			cfg.Sweep.Spec,
			defaultLoc,
			time.Duration(cfg.Sweep.Timeout)*time.Second,
			log,
		)
		if err := sweep.Start(); err != nil {
			log.Fatal("Failed to start sweeper: %v", err)
		}
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

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

	if sweep != nil {
		sweep.Stop(shutdownCtx)
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
