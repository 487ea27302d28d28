package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/aliasghar-tech/LoToo-Store/internal/catalog"
	"github.com/aliasghar-tech/LoToo-Store/internal/notify"
	"github.com/aliasghar-tech/LoToo-Store/internal/repository"
	"github.com/aliasghar-tech/LoToo-Store/internal/service"
	"github.com/aliasghar-tech/LoToo-Store/internal/web"
	"github.com/aliasghar-tech/LoToo-Store/pkg/logger"
)

type Config struct {
	HTTPPort        string
	CatalogURL      string
	CatalogTimeout  time.Duration
	DBPath          string
	MigrationsPath  string
	LogLevel        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		CatalogURL:      getEnv("CATALOG_URL", catalog.DefaultEndpoint),
		CatalogTimeout:  10 * time.Second,
		DBPath:          getEnv("DB_PATH", "./internal/repository/store.db"),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./internal/repository/migrations"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync() //nolint:errcheck

	repo, err := repository.NewSQLiteRepository(cfg.DBPath)
	if err != nil {
		log.Fatal("failed to open cart store", zap.Error(err))
	}
	defer repo.Close()

	if err := repo.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	notifier := notify.NewNotifier()
	defer notifier.Close()

	client := catalog.NewClient(cfg.CatalogURL, cfg.CatalogTimeout, log)
	cache := catalog.NewCache(client, log)

	cartSvc := service.NewCartService(repo, cache, notifier, log)
	cartSvc.Restore(context.Background())

	handler, err := web.NewHandler(cache, cartSvc, notifier, log)
	if err != nil {
		log.Fatal("failed to build handlers", zap.Error(err))
	}

	router := web.NewRouter(handler, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("storefront starting", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}
