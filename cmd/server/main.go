// @title           Photo Template Backend API
// @version         1.0.0
// @description     Backend API for photo template orders. Customers submit a photo with their details and a chosen template; the photo is composited centered onto the template.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:5000
// @BasePath  /api

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"photo-template-backend/docs"
	"photo-template-backend/internal/compositor"
	"photo-template-backend/internal/config"
	"photo-template-backend/internal/database"
	"photo-template-backend/internal/metrics"
	"photo-template-backend/internal/server"
	"photo-template-backend/internal/services"
	"photo-template-backend/internal/supabase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Update Swagger docs with dynamic base URL
	if cfg.BaseURL != "" {
		if baseURL, err := url.Parse(cfg.BaseURL); err == nil && baseURL.Host != "" {
			docs.SwaggerInfo.Host = baseURL.Host
			if baseURL.Scheme == "https" {
				docs.SwaggerInfo.Schemes = []string{"https", "http"}
			} else {
				docs.SwaggerInfo.Schemes = []string{"http", "https"}
			}
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close order store", zap.Error(err))
		}
	}()

	// The mirror stays a nil interface unless a bucket is configured.
	var mirror services.Mirror
	if cfg.MirrorEnabled() {
		mirror = supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, cfg.SupabaseStorageBucket)
		logger.Info("mirroring processed images", zap.String("bucket", cfg.SupabaseStorageBucket))
	}

	m := metrics.New()

	storageService, err := services.NewStorageService(cfg.UploadsDir, cfg.ProcessedDir, cfg.MaxUploadBytes, mirror, logger)
	if err != nil {
		return err
	}

	templates := compositor.NewTemplateLibrary(cfg.TemplatesDir)
	if names, err := templates.List(); err != nil {
		logger.Warn("failed to list templates", zap.String("dir", cfg.TemplatesDir), zap.Error(err))
	} else {
		logger.Info("templates available", zap.String("dir", cfg.TemplatesDir), zap.Int("count", len(names)))
	}

	router := server.NewRouter(server.Dependencies{
		Config:     cfg,
		Orders:     services.NewOrderService(store, storageService, m, logger),
		Composites: services.NewCompositeService(store, storageService, templates, compositor.New(cfg.ProcessTimeout, 0), m, logger),
		Metrics:    m,
		Logger:     logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr), zap.String("store", cfg.OrderStore))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (services.OrderStore, error) {
	switch cfg.OrderStore {
	case config.StorePostgres:
		store, err := database.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := database.NewMigrator(store.DB(), logger).Run(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
		logger.Info("using postgres order store")
		return store, nil

	case config.StoreSupabase:
		client, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabasePublishableKey)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Supabase client: %w", err)
		}
		logger.Info("using supabase order store", zap.String("table", cfg.SupabaseOrdersTable))
		return supabase.NewOrderStore(client, cfg.SupabaseOrdersTable), nil

	default:
		store, err := database.NewFileStore(cfg.OrdersDBPath, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("using file order store", zap.String("path", cfg.OrdersDBPath))
		return store, nil
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}

	zcfg := zap.NewDevelopmentConfig()
	if cfg.Environment == "production" {
		zcfg = zap.NewProductionConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}
