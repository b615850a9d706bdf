package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/carebridge/hms/internal/config"
	v1 "github.com/carebridge/hms/internal/handler/v1"
	"github.com/carebridge/hms/internal/repository"
	"github.com/carebridge/hms/internal/service"
	"github.com/carebridge/hms/pkg/auth"
	"github.com/carebridge/hms/pkg/cache"
	"github.com/carebridge/hms/pkg/database"
	"github.com/carebridge/hms/pkg/logger"
	"github.com/carebridge/hms/pkg/metrics"
	"github.com/carebridge/hms/pkg/tracer"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	tp, err := tracer.Init(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracer: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}

	if err := database.Migrate(db, log); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	rdb, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	statsCache := cache.NewStore(rdb, cfg.Redis.DashboardTTL)

	jwtManager := auth.NewJWTManager(cfg.JWT)
	collector := metrics.NewCollector("hms")

	userRepo := repository.NewUserRepo(db)
	doctorRepo := repository.NewDoctorRepo(db)
	patientRepo := repository.NewPatientRepo(db)
	appointmentRepo := repository.NewAppointmentRepo(db)
	invoiceRepo := repository.NewInvoiceRepo(db)
	prescriptionRepo := repository.NewPrescriptionRepo(db)
	contactRepo := repository.NewContactRepo(db)

	authService := service.NewAuthService(userRepo, jwtManager, log)
	registrationService := service.NewRegistrationService(userRepo, doctorRepo, log)
	directoryService := service.NewDirectoryService(userRepo, doctorRepo, patientRepo, log)
	appointmentService := service.NewAppointmentService(appointmentRepo, doctorRepo, log)
	billingService := service.NewBillingService(invoiceRepo, appointmentRepo, log)
	prescriptionService := service.NewPrescriptionService(prescriptionRepo, appointmentRepo, log)
	contactService := service.NewContactService(contactRepo, log)
	dashboardService := service.NewDashboardService(doctorRepo, patientRepo, appointmentRepo, invoiceRepo, statsCache, log)

	router := v1.NewRouter(v1.RouterDeps{
		Auth:        v1.NewAuthHandler(authService, registrationService, collector),
		Admin:       v1.NewAdminHandler(directoryService),
		Directory:   v1.NewDirectoryHandler(directoryService),
		Appointment: v1.NewAppointmentHandler(appointmentService, billingService, prescriptionService, collector),
		Billing:     v1.NewBillingHandler(billingService, prescriptionService),
		Contact:     v1.NewContactHandler(contactService, collector),
		Dashboard:   v1.NewDashboardHandler(dashboardService, collector),
		JWTManager:  jwtManager,
		Collector:   collector,
		DB:          db,
		Log:         log,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}

	if err := tp.Shutdown(shutdownCtx); err != nil {
		log.Warn("tracer shutdown failed", zap.Error(err))
	}

	if err := rdb.Close(); err != nil {
		log.Warn("redis close failed", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Warn("database close failed", zap.Error(err))
		}
	}

	log.Info("shutdown complete")
	return nil
}
