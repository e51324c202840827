package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/utdisa/isa-portal/config"
	"github.com/utdisa/isa-portal/db"
	"github.com/utdisa/isa-portal/handlers"
	"github.com/utdisa/isa-portal/middleware"
	"github.com/utdisa/isa-portal/realtime"
	"github.com/utdisa/isa-portal/repositories"
	api "github.com/utdisa/isa-portal/routes"
	"github.com/utdisa/isa-portal/services"
	"github.com/utdisa/isa-portal/storage"
	"github.com/utdisa/isa-portal/telemetry"
)

const (
	serviceName          = "isa-portal"
	sessionPurgeInterval = 15 * time.Minute
)

// @title           ISA Portal API
// @version         1.0
// @description     Backend for the Indian Students Association app.
// @BasePath        /

// @securityDefinitions.apikey  BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("application exited with error", slog.Any("error", err))
		os.Exit(1)
	}
	slog.Info("application exited")
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort), slog.String("public_url", cfg.PublicURL))

	shutdownTracing, err := telemetry.Init(ctx, serviceName, cfg.OTLPEndpoint)
	if err != nil {
		return fmt.Errorf("failed to initialise tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Error("failed to flush traces", slog.Any("error", err))
		}
	}()

	dbConn, err := db.Open(ctx, cfg.DatabaseURL, db.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		ConnectTimeout:  cfg.DBConnectTimeout,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	if err := db.Migrate(ctx, dbConn, logger); err != nil {
		return err
	}

	var uploader storage.FileUploader
	if cfg.StorageEnabled() {
		uploader, err = storage.NewObjectStoreUploader(ctx, storage.ObjectStoreConfig{
			AccountID:       cfg.R2AccountID,
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialise object storage: %w", err)
		}
		logger.Info("object storage initialised", slog.String("bucket", cfg.R2BucketName))
	} else {
		logger.Warn("object storage is not configured, uploads will be rejected")
	}

	hub := realtime.NewHub(logger)
	go hub.Run(ctx)

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	sessionRepo := repositories.NewPostgresSessionRepository(dbConn)
	profileRepo := repositories.NewPostgresProfileRepository(dbConn)
	formRepo := repositories.NewPostgresFormRepository(dbConn)
	housingRepo := repositories.NewPostgresHousingRepository(dbConn)
	directoryRepo := repositories.NewPostgresDirectoryRepository(dbConn)

	tokens := services.NewTokenManager(cfg.JWTSecretKey, cfg.AccessTokenTTL)
	authService := services.NewAuthService(
		userRepo,
		sessionRepo,
		tokens,
		services.NewMailer(cfg, logger),
		services.AuthSettings{AllowedEmailDomain: cfg.AllowedEmailDomain, AdminEmails: cfg.AdminEmails},
		logger,
	)
	storageService := services.NewStorageService(uploader, cfg.PublicURL, logger)
	housingService := services.NewHousingService(housingRepo, storageService, hub, logger)
	formService := services.NewFormService(formRepo, logger)
	profileService := services.NewProfileService(profileRepo)
	directoryService := services.NewDirectoryService(directoryRepo)

	go purgeSessions(ctx, authService, logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	router := chi.NewRouter()
	api.SetupRoutes(router, api.Handlers{
		Auth:      handlers.NewAuthHandler(authService),
		Forms:     handlers.NewFormHandler(formService),
		Housing:   handlers.NewHousingHandler(housingService),
		Profiles:  handlers.NewProfileHandler(profileService),
		Directory: handlers.NewDirectoryHandler(directoryService),
		Storage:   handlers.NewStorageHandler(storageService),
		Realtime:  handlers.NewRealtimeHandler(hub, cfg.CORSAllowedOrigins, logger),
		Health:    handlers.NewHealthHandler(dbConn),
	}, api.Options{
		ServiceName:        serviceName,
		Authenticator:      authService,
		Metrics:            middleware.NewMetrics(reg),
		Gatherer:           reg,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		Logger:             logger,
	})
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		logger.Info("server stopped gracefully")
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		logger.Info("server shutdown complete")
	}
	return nil
}

// purgeSessions drops expired auth sessions at startup and then on every tick.
func purgeSessions(ctx context.Context, auth services.AuthService, logger *slog.Logger) {
	ticker := time.NewTicker(sessionPurgeInterval)
	defer ticker.Stop()
	logger.Info("session purge scheduler started", slog.Duration("interval", sessionPurgeInterval))

	for {
		purged, err := auth.PurgeExpiredSessions(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("session purge failed", slog.Any("error", err))
		} else if purged > 0 {
			logger.Info("expired sessions purged", slog.Int64("count", purged))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
