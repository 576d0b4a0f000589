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
	"github.com/spf13/cobra"

	bookTimeSlotHandler "github.com/m04kA/DrivingSchool-BookingService/internal/api/handlers/book_timeslot"
	cancelAppointmentHandler "github.com/m04kA/DrivingSchool-BookingService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/m04kA/DrivingSchool-BookingService/internal/api/handlers/create_appointment"
	createTimeSlotHandler "github.com/m04kA/DrivingSchool-BookingService/internal/api/handlers/create_timeslot"
	deleteTimeSlotHandler "github.com/m04kA/DrivingSchool-BookingService/internal/api/handlers/delete_timeslot"
	getAppointmentHandler "github.com/m04kA/DrivingSchool-BookingService/internal/api/handlers/get_appointment"
	getLocationsHandler "github.com/m04kA/DrivingSchool-BookingService/internal/api/handlers/get_locations"
	getTimeSlotHandler "github.com/m04kA/DrivingSchool-BookingService/internal/api/handlers/get_timeslot"
	getTimeSlotByStartHandler "github.com/m04kA/DrivingSchool-BookingService/internal/api/handlers/get_timeslot_by_start"
	getUserAppointmentsHandler "github.com/m04kA/DrivingSchool-BookingService/internal/api/handlers/get_user_appointments"
	listAppointmentsHandler "github.com/m04kA/DrivingSchool-BookingService/internal/api/handlers/list_appointments"
	listAvailableTimeSlotsHandler "github.com/m04kA/DrivingSchool-BookingService/internal/api/handlers/list_available_timeslots"
	listTimeSlotsHandler "github.com/m04kA/DrivingSchool-BookingService/internal/api/handlers/list_timeslots"
	updateAppointmentHandler "github.com/m04kA/DrivingSchool-BookingService/internal/api/handlers/update_appointment"
	"github.com/m04kA/DrivingSchool-BookingService/internal/api/middleware"
	"github.com/m04kA/DrivingSchool-BookingService/internal/config"
	"github.com/m04kA/DrivingSchool-BookingService/internal/domain"
	appointmentRepo "github.com/m04kA/DrivingSchool-BookingService/internal/infra/storage/appointment"
	locationRepo "github.com/m04kA/DrivingSchool-BookingService/internal/infra/storage/location"
	timeslotRepo "github.com/m04kA/DrivingSchool-BookingService/internal/infra/storage/timeslot"
	userRepo "github.com/m04kA/DrivingSchool-BookingService/internal/infra/storage/user"
	"github.com/m04kA/DrivingSchool-BookingService/internal/integrations/googlecalendar"
	"github.com/m04kA/DrivingSchool-BookingService/internal/integrations/mailer"
	appointmentsService "github.com/m04kA/DrivingSchool-BookingService/internal/service/appointments"
	"github.com/m04kA/DrivingSchool-BookingService/internal/service/calendarsync"
	locationsService "github.com/m04kA/DrivingSchool-BookingService/internal/service/locations"
	"github.com/m04kA/DrivingSchool-BookingService/internal/service/notifications"
	timeslotsService "github.com/m04kA/DrivingSchool-BookingService/internal/service/timeslots"
	bookTimeSlotUC "github.com/m04kA/DrivingSchool-BookingService/internal/usecase/book_timeslot"
	cancelAppointmentUC "github.com/m04kA/DrivingSchool-BookingService/internal/usecase/cancel_appointment"
	createAppointmentUC "github.com/m04kA/DrivingSchool-BookingService/internal/usecase/create_appointment"
	createTimeSlotUC "github.com/m04kA/DrivingSchool-BookingService/internal/usecase/create_timeslot"
	"github.com/m04kA/DrivingSchool-BookingService/pkg/dbmetrics"
	"github.com/m04kA/DrivingSchool-BookingService/pkg/logger"
	"github.com/m04kA/DrivingSchool-BookingService/pkg/metrics"
	"github.com/m04kA/DrivingSchool-BookingService/pkg/migrator"
	"github.com/m04kA/DrivingSchool-BookingService/pkg/txmanager"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "booking-service",
		Short: "Driving school booking service",
		// без подкоманды запускаем сервер
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.toml", "path to config.toml")

	rootCmd.AddCommand(serveCmd(&configPath))
	rootCmd.AddCommand(migrateCmd(&configPath))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(*configPath)
		},
	}
}

func migrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending SQL migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer log.Close()

			db, err := openDB(cmd.Context(), cfg)
			if err != nil {
				log.Error("Failed to connect to database: %v", err)
				return err
			}
			defer db.Close()

			applied, err := migrator.New(db, cfg.Migrations.Dir, log).Up(cmd.Context())
			if err != nil {
				log.Error("Migrations failed: %v", err)
				return err
			}

			log.Info("Migrations applied: %d", applied)
			return nil
		},
	}
}

// bootstrap загружает конфигурацию и создает логгер
func bootstrap(configPath string) (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		return nil, nil, err
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		return nil, nil, err
	}

	log.Info("Configuration loaded from %s", configPath)
	return cfg, log, nil
}

func openDB(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func runServe(configPath string) error {
	cfg, log, err := bootstrap(configPath)
	if err != nil {
		return err
	}
	defer log.Close()

	log.Info("Starting DrivingSchool-BookingService...")

	// Метрики (если включены); при выключенных метриках collector == nil
	var metricsCollector *metrics.Metrics
	stopCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// База данных
	db, err := openDB(context.Background(), cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return err
	}
	defer db.Close()
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopCh)

	txMgr := txmanager.NewTransactionManager(wrappedDB,
		txmanager.WithMaxAttempts(cfg.Booking.TxMaxRetries),
		txmanager.WithMetrics(metricsCollector),
	)

	// Репозитории
	slotRepository := timeslotRepo.NewRepository(wrappedDB)
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	userRepository := userRepo.NewRepository(wrappedDB)
	locationRepository := locationRepo.NewRepository(wrappedDB)

	displayTZ := cfg.DisplayLocation()
	sideEffectTimeout := time.Duration(cfg.Booking.SideEffectTimeout) * time.Second

	// Внешний календарь
	var calendarClient calendarsync.CalendarClient = googlecalendar.Disabled{}
	if cfg.Calendar.Enabled {
		client, err := googlecalendar.NewClient(context.Background(), googlecalendar.Config{
			CalendarID:  cfg.Calendar.CalendarID,
			ClientEmail: cfg.Calendar.ClientEmail,
			PrivateKey:  cfg.Calendar.PrivateKey,
			TimeZone:    cfg.Calendar.TimeZone,
			SchoolName:  cfg.Calendar.SchoolName,
			Timeout:     time.Duration(cfg.Calendar.Timeout) * time.Second,
		}, log)
		if err != nil {
			log.Error("Failed to initialize Google Calendar client: %v", err)
			return err
		}
		calendarClient = client
		log.Info("Google Calendar sync enabled (calendar=%s, tz=%s)", cfg.Calendar.CalendarID, cfg.Calendar.TimeZone)
	} else {
		log.Warn("Google Calendar sync disabled, bookings will report calendarSync=skipped")
	}

	// Почта
	var mailSender notifications.Mailer = mailer.Disabled{}
	if cfg.Mail.Enabled {
		mailSender = mailer.New(mailer.Config{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
			From:     cfg.Mail.From,
		})
		log.Info("Mail notifications enabled (smtp=%s:%d)", cfg.Mail.Host, cfg.Mail.Port)
	}

	// Сервисы
	calendarSync := calendarsync.NewService(
		calendarClient,
		appointmentRepository,
		userRepository,
		locationRepository,
		metricsCollector,
		sideEffectTimeout,
		log,
	)
	notifier := notifications.NewService(
		mailSender,
		userRepository,
		locationRepository,
		metricsCollector,
		displayTZ,
		cfg.Calendar.SchoolName,
		sideEffectTimeout,
		log,
	)
	timeslotSvc := timeslotsService.NewService(slotRepository, txMgr, log)
	appointmentSvc := appointmentsService.NewService(appointmentRepository, locationRepository, log)
	locationSvc := locationsService.NewService(locationRepository, log)

	// Use cases
	createTimeSlotUseCase := createTimeSlotUC.NewUseCase(slotRepository, txMgr, metricsCollector, log)
	bookTimeSlotUseCase := bookTimeSlotUC.NewUseCase(
		slotRepository,
		appointmentRepository,
		locationRepository,
		calendarSync,
		notifier,
		txMgr,
		metricsCollector,
		log,
	)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		slotRepository,
		appointmentRepository,
		userRepository,
		locationRepository,
		calendarSync,
		notifier,
		txMgr,
		metricsCollector,
		log,
	)
	cancelAppointmentUseCase := cancelAppointmentUC.NewUseCase(
		appointmentRepository,
		slotRepository,
		calendarSync,
		notifier,
		txMgr,
		metricsCollector,
		log,
	)

	// Handlers
	listAvailableTimeSlots := listAvailableTimeSlotsHandler.NewHandler(timeslotSvc, log)
	listTimeSlots := listTimeSlotsHandler.NewHandler(timeslotSvc, log)
	getTimeSlot := getTimeSlotHandler.NewHandler(timeslotSvc, log)
	getTimeSlotByStart := getTimeSlotByStartHandler.NewHandler(timeslotSvc, log)
	deleteTimeSlot := deleteTimeSlotHandler.NewHandler(timeslotSvc, log)
	createTimeSlot := createTimeSlotHandler.NewHandler(createTimeSlotUseCase, displayTZ, log)
	bookTimeSlot := bookTimeSlotHandler.NewHandler(bookTimeSlotUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, displayTZ, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(cancelAppointmentUseCase, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	updateAppointment := updateAppointmentHandler.NewHandler(appointmentSvc, log)
	getUserAppointments := getUserAppointmentsHandler.NewHandler(appointmentSvc, log)
	getLocations := getLocationsHandler.NewHandler(locationSvc, log)

	// Роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, stopCh)
		r.Use(middleware.RateLimit(limiter, log))
		log.Info("Rate limit enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/timeslots/available", listAvailableTimeSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/locations", getLocations.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (Bearer JWT с ролью ADMIN)
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.Auth(cfg.Auth.JWTSecret, log))
	admin.Use(middleware.RequireRole(domain.RoleAdmin))

	admin.HandleFunc("/timeslots", listTimeSlots.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/timeslots", createTimeSlot.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/timeslots/by-start", getTimeSlotByStart.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/timeslots/{timeSlotId:[0-9]+}", deleteTimeSlot.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/appointments/{appointmentId:[0-9]+}", updateAppointment.Handle).Methods(http.MethodPatch)

	// ============================================================
	// PROTECTED ROUTES (Bearer JWT, любая роль)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.Auth.JWTSecret, log))

	protected.HandleFunc("/timeslots/{timeSlotId:[0-9]+}", getTimeSlot.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/timeslots/{timeSlotId:[0-9]+}/book", bookTimeSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId:[0-9]+}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId:[0-9]+}", cancelAppointment.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/users/{userId:[0-9]+}/appointments", getUserAppointments.Handle).Methods(http.MethodGet)

	// HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serverErr:
		log.Error("Server failed to start: %v", err)
		close(stopCh)
		return err
	}

	log.Info("Shutting down server...")

	// Останавливаем сбор статистики pool и очистку лимитера
	close(stopCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Дожидаемся писем, отправляемых в фоне
	notifier.Wait()

	log.Info("Server stopped gracefully")
	return nil
}
