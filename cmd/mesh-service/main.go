package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/dnpham/sketch2mesh-be/internal/api/handler"
	"github.com/dnpham/sketch2mesh-be/internal/api/router"
	"github.com/dnpham/sketch2mesh-be/internal/config"
	"github.com/dnpham/sketch2mesh-be/internal/converter"
	"github.com/dnpham/sketch2mesh-be/internal/filestore"
	"github.com/dnpham/sketch2mesh-be/internal/registry"
	"github.com/dnpham/sketch2mesh-be/internal/synth"
	"github.com/dnpham/sketch2mesh-be/shared/logger"
	"github.com/dnpham/sketch2mesh-be/shared/postgresql"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or flags")
	}

	// Parse command-line flags
	defaultConfigPath := os.Getenv("MESH_SERVICE_CONFIG_PATH")
	if defaultConfigPath == "" {
		defaultConfigPath = "configs/config.yaml"
	}
	configPath := flag.String("config", defaultConfigPath, "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Initialize logger
	appLogger, err := initLogger(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger.Info("Starting mesh service",
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.String("environment", cfg.App.Environment),
	)

	// Initialize file store and directories
	store := filestore.New(&filestore.Config{
		Logger:          appLogger.Logger,
		UploadsDir:      cfg.Storage.UploadsDir,
		OutputsDir:      cfg.Storage.OutputsDir,
		MaxUploadSizeMB: cfg.Storage.MaxUploadSizeMB,
		RetentionPeriod: cfg.Storage.RetentionPeriod,
	})

	ready := &atomic.Bool{}
	if err := store.Setup(); err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	ready.Store(true)

	appLogger.Info("Storage directories initialized",
		slog.String("uploads_dir", cfg.Storage.UploadsDir),
		slog.String("outputs_dir", cfg.Storage.OutputsDir),
	)

	// Initialize conversion registry
	reg, dbClient, err := initRegistry(cfg, appLogger.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize registry: %w", err)
	}

	appLogger.Info("Conversion registry initialized",
		slog.String("backend", cfg.Registry.Backend),
	)

	// Initialize synthesizer and orchestrator
	synthesizer := initSynthesizer(&cfg.Synthesis, appLogger.Logger)
	orchestrator := converter.New(appLogger.Logger, reg, synthesizer)

	// Start the file retention sweep
	cleanupCtx, cancelCleanup := context.WithCancel(context.Background())
	go store.CleanupLoop(cleanupCtx, cfg.Storage.CleanupInterval)

	// Initialize router
	r := initRouter(cfg, appLogger.Logger, reg, orchestrator, store, ready)

	// Create HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed to start",
				slog.Any("error", err),
			)
			os.Exit(1)
		}
	}()

	appLogger.Info("Mesh service is running",
		slog.String("address", addr),
	)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown",
			slog.Any("error", err),
		)
	}

	// Stop the retention sweep and join in-flight conversions
	cancelCleanup()

	if err := orchestrator.Shutdown(ctx); err != nil {
		appLogger.Warn("In-flight conversions did not finish before shutdown",
			slog.Any("error", err),
		)
	}

	if dbClient != nil {
		dbClient.Close()
	}

	appLogger.Info("Server shutdown complete")
	return nil
}

// initLogger initializes and configures the application logger
func initLogger(cfg *config.LoggingConfig) (*logger.Logger, error) {
	loggerCfg := &logger.Config{
		Level:        cfg.Level,
		Format:       cfg.Format,
		Output:       cfg.Output,
		EnableSource: cfg.EnableCaller,
		TimeFormat:   time.RFC3339,
	}

	return logger.New(loggerCfg)
}

// initRegistry selects the configured registry backend, returning the
// PostgreSQL client when one was opened so the caller can close it.
func initRegistry(cfg *config.Config, logger *slog.Logger) (registry.Registry, *postgresql.Client, error) {
	switch cfg.Registry.Backend {
	case config.RegistryBackendPostgres:
		dbClient, err := postgresql.NewClient(&postgresql.Config{
			Host:            cfg.Database.Host,
			Port:            cfg.Database.Port,
			User:            cfg.Database.User,
			Password:        cfg.Database.Password,
			Database:        cfg.Database.Database,
			SSLMode:         cfg.Database.SSLMode,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		return registry.NewPostgres(dbClient.GetDB()), dbClient, nil
	default:
		return registry.NewMemory(), nil, nil
	}
}

// initSynthesizer selects the configured synthesis strategy
func initSynthesizer(cfg *config.SynthesisConfig, logger *slog.Logger) synth.Synthesizer {
	if cfg.Mode == config.SynthesisModeNeural {
		return synth.NewNeural(logger, cfg.ScriptDir, cfg.Timeout)
	}
	return synth.NewDemo(logger)
}

// initRouter initializes the Gin router with all routes and middleware
func initRouter(
	cfg *config.Config,
	logger *slog.Logger,
	reg registry.Registry,
	orchestrator *converter.Orchestrator,
	store *filestore.Store,
	ready *atomic.Bool,
) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	handlerDeps := &handler.Dependencies{
		Logger:       logger,
		Registry:     reg,
		Orchestrator: orchestrator,
		Store:        store,
		Ready:        ready,
		SynthMode:    cfg.Synthesis.Mode,
		AppName:      cfg.App.Name,
		AppVersion:   cfg.App.Version,
	}

	return router.SetupRouter(handlerDeps)
}
