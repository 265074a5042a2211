package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/medikita/gps-attendance/internal/application/service"
	"github.com/medikita/gps-attendance/internal/config"
	"github.com/medikita/gps-attendance/internal/domain/geofence"
	gpssignal "github.com/medikita/gps-attendance/internal/domain/signal"
	"github.com/medikita/gps-attendance/internal/infrastructure/persistence/repository"
	httpserver "github.com/medikita/gps-attendance/internal/interfaces/http"
	"github.com/medikita/gps-attendance/internal/metrics"
	"github.com/medikita/gps-attendance/pkg/database"
	"github.com/medikita/gps-attendance/pkg/utils"
)

func main() {
	_ = gotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting GPS attendance validation service",
		zap.Int("port", cfg.Server.Port),
		zap.Float64("accuracy_tolerance_cap", cfg.Geofence.AccuracyToleranceCap))

	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	workLocationRepo := repository.NewWorkLocationRepository(db.DB, logger)
	overrideRepo := repository.NewOverrideRepository(db.DB, logger)

	serviceLogger := utils.NewSugarAdapter(logger)
	overrideService := service.NewOverrideService(overrideRepo, serviceLogger)
	validationService := service.NewValidationService(
		workLocationRepo,
		overrideService,
		geofence.NewEvaluator(cfg.Geofence.AccuracyToleranceCap),
		gpssignal.NewAnalyzer(),
		serviceLogger,
	)

	collector, err := metrics.NewCollector()
	if err != nil {
		logger.Fatal("Failed to initialize metrics", zap.Error(err))
	}

	server := httpserver.NewServer(
		httpserver.ServerConfig{
			Host:         cfg.Server.Host,
			Port:         cfg.Server.Port,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
		validationService,
		overrideService,
		collector,
		serviceLogger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("Shutdown signal received")
		cancel()
	}()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("HTTP server error", zap.Error(err))
	}

	logger.Info("Server exited")
}
