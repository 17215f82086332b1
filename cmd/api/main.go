// Package main is the entry point for the travel planner API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/pkordes/travel-planner/internal/config"
	"github.com/pkordes/travel-planner/internal/handler"
	"github.com/pkordes/travel-planner/internal/identity"
	"github.com/pkordes/travel-planner/internal/repo"
	"github.com/pkordes/travel-planner/internal/service"
	"github.com/pkordes/travel-planner/internal/storage"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Default text logger; the JSON one needs the level from cfg.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	// --- Database ---------------------------------------------------------
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	// --- Sessions ---------------------------------------------------------
	rdb, err := identity.Connect(ctx, cfg.RedisURL)
	if err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer rdb.Close()
	slog.Info("redis connection established")

	// --- Object store -----------------------------------------------------
	files, err := storage.Open(storage.Options{
		Driver:         cfg.Storage.Driver,
		Bucket:         cfg.Storage.Bucket,
		LocalDir:       cfg.Storage.LocalDir,
		Region:         cfg.Storage.Region,
		Endpoint:       cfg.Storage.Endpoint,
		AccessKey:      cfg.Storage.AccessKey,
		SecretKey:      cfg.Storage.SecretKey,
		ForcePathStyle: cfg.Storage.ForcePathStyle,
	})
	if err != nil {
		slog.Error("failed to open object store", "error", err)
		os.Exit(1)
	}
	defer files.Close()
	slog.Info("object store ready", "driver", cfg.Storage.Driver, "bucket", cfg.Storage.Bucket)

	// --- Services ---------------------------------------------------------
	sessions := identity.NewSessionStore(rdb, cfg.SessionTTL)
	provider := identity.NewProvider(repo.NewAccountRepo(pool), sessions, bcrypt.DefaultCost)

	destinationSvc := service.NewDestinationService(repo.NewDestinationRepo(pool), logger)
	reservationSvc := service.NewReservationService(repo.NewReservationRepo(pool), logger)

	srv := handler.NewServer(handler.Deps{
		Destinations: destinationSvc,
		Reservations: reservationSvc,
		Sessions:     service.NewSessionService(provider, repo.NewProfileRepo(pool), logger),
		Overview:     service.NewOverviewService(destinationSvc, reservationSvc),
		Uploads:      storage.NewUploader(files, cfg.Storage.PublicURL),
		Files:        files,
		Checks: map[string]handler.Pinger{
			"database": handler.PingFunc(pool.Ping),
			"redis": handler.PingFunc(func(ctx context.Context) error {
				return rdb.Ping(ctx).Err()
			}),
		},
		Log: logger,
	})

	// --- HTTP Server ------------------------------------------------------
	// Timeouts leave room for multipart uploads relayed to S3.
	httpSrv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: srv.Routes(handler.RouterOptions{
			CORSOrigins:   cfg.CORSOrigins,
			MaxBodyBytes:  cfg.MaxBodyBytes,
			AuthRateLimit: cfg.AuthRateLimit,
		}),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
