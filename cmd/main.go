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

	cancelBookingHandler "github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/api/handlers/cancel_booking"
	createAbsenceHandler "github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/api/handlers/create_absence"
	createBookingHandler "github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/api/handlers/get_available_slots"
	listMastersHandler "github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/api/handlers/list_masters"
	updateScheduleHandler "github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/api/handlers/update_schedule"
	"github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/api/middleware"
	"github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/config"
	absenceRepo "github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/infra/storage/absence"
	bookingRepo "github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/infra/storage/booking"
	rotationRepo "github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/infra/storage/rotation"
	scheduleRepo "github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/infra/storage/schedule"
	teamServiceClient "github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/integrations/teamservice"
	"github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/rotation"
	bookingsService "github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/service/bookings"
	timetableService "github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/service/timetable"
	"github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/slots"
	createBookingUC "github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/usecase/get_available_slots"
	listMastersUC "github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/usecase/list_masters"
	"github.com/jzhekatroy/cursor-harmony-hub-sub001/pkg/dbmetrics"
	"github.com/jzhekatroy/cursor-harmony-hub-sub001/pkg/logger"
	"github.com/jzhekatroy/cursor-harmony-hub-sub001/pkg/metrics"
	"github.com/jzhekatroy/cursor-harmony-hub-sub001/pkg/simpletxmanager"
	"github.com/jzhekatroy/cursor-harmony-hub-sub001/pkg/txmanager"
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

	log.Info("Starting scheduling service...")
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

	// Инициализируем клиент TeamService
	teamClient := teamServiceClient.NewClient(
		cfg.TeamService.URL,
		time.Duration(cfg.TeamService.Timeout)*time.Second,
		log,
	)
	log.Info("TeamService client initialized (url=%s, timeout=%ds)",
		cfg.TeamService.URL, cfg.TeamService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		scheduleRepository *scheduleRepo.Repository
		absenceRepository  *absenceRepo.Repository
		bookingRepository  *bookingRepo.Repository
		rotationRepository *rotationRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		absenceRepository = absenceRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		rotationRepository = rotationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		scheduleRepository = scheduleRepo.NewRepository(db)
		absenceRepository = absenceRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		rotationRepository = rotationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Собираем расчет слотов
	resolver := slots.NewWorkWindowResolver(scheduleRepository, absenceRepository, log)
	occupancy := slots.NewOccupancyIndex(bookingRepository, log)
	generator := slots.NewSlotGenerator(resolver, occupancy, log)

	// Аллокатор честной ротации
	allocator := rotation.NewAllocator(rotationRepository, log)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	timetableSvc := timetableService.NewService(scheduleRepository, absenceRepository, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(teamClient, generator, log)
	createBookingUseCase := createBookingUC.NewUseCase(bookingRepository, teamClient, generator, txMgr, log)
	listMastersUseCase := listMastersUC.NewUseCase(teamClient, allocator, log)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	listMasters := listMastersHandler.NewHandler(listMastersUseCase, log)
	updateSchedule := updateScheduleHandler.NewHandler(timetableSvc, log)
	createAbsence := createAbsenceHandler.NewHandler(timetableSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Слоты мастера на день
	api.HandleFunc("/teams/{teamId}/masters/{masterId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Список мастеров команды в порядке показа
	api.HandleFunc("/teams/{teamId}/masters", listMasters.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Управление расписаниями (администраторы салона)
	protected.HandleFunc("/teams/{teamId}/masters/{masterId}/schedule/{weekday}",
		updateSchedule.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/teams/{teamId}/masters/{masterId}/absences",
		createAbsence.Handle).Methods(http.MethodPost)

	// Фоновый воркер автозавершения бронирований
	stopWorkerCh := make(chan struct{})
	if cfg.Bookings.AutoCompleteInterval > 0 {
		interval := time.Duration(cfg.Bookings.AutoCompleteInterval) * time.Second
		go func() {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					if _, err := bookingSvc.CompleteExpired(context.Background(), time.Now()); err != nil {
						log.Error("Auto-complete worker failed: %v", err)
					}
				case <-stopWorkerCh:
					return
				}
			}
		}()
		log.Info("Auto-complete worker started (interval=%s)", interval)
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

	close(stopWorkerCh)
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
