package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Skotchmaster/factory_registry/pkg/config"
	pkgdb "github.com/Skotchmaster/factory_registry/pkg/db"
	"github.com/Skotchmaster/factory_registry/pkg/events"
	"github.com/Skotchmaster/factory_registry/pkg/logging"
	middleware "github.com/Skotchmaster/factory_registry/pkg/middleware/auth"

	"github.com/Skotchmaster/factory_registry/internal/httpserver"
	"github.com/Skotchmaster/factory_registry/internal/repo"
	"github.com/Skotchmaster/factory_registry/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	if err := config.OneOf(cfg.DBDriver, "DB_DRIVER", pkgdb.DriverPgx, pkgdb.DriverPQ, pkgdb.DriverSQLite); err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, pkgdb.Options{Driver: cfg.DBDriver, DSN: cfg.DatabaseURL, Debug: cfg.DBDebug})
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	if cfg.AutoMigrate {
		if err := repo.Migrate(db); err != nil {
			log.Fatalf("db migrate: %v", err)
		}
	}

	pub := events.New(cfg.KafkaBrokers)
	if len(cfg.KafkaBrokers) == 0 {
		logger.Warn("kafka_disabled", "reason", "KAFKA_BROKERS is empty")
	}

	auth := middleware.NewBearerMiddleware(cfg.JWTSecret)
	if !auth.Enabled() {
		logger.Warn("auth_disabled", "reason", "JWT_SECRET is empty")
	}

	e := httpserver.New(&httpserver.Deps{
		Services:     service.NewServices(db, pub),
		DB:           db,
		Auth:         auth,
		Logger:       logger,
		RateLimitRPS: cfg.RateLimitRPS,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_failed", "error", err)
	}
	if err := pub.Close(); err != nil {
		logger.Error("kafka_close_failed", "error", err)
	}
	if err := pkgdb.Close(db); err != nil {
		logger.Error("db_close_failed", "error", err)
	}

	logger.Info("stopped")
}
