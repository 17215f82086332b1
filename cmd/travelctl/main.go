// Command travelctl is the operator CLI for the travel planner: it applies
// database migrations and inspects or seeds the destination catalogue without
// going through the HTTP API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pkordes/travel-planner/internal/config"
	"github.com/pkordes/travel-planner/internal/repo"
	"github.com/pkordes/travel-planner/internal/service"
	"github.com/pkordes/travel-planner/migrations"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	root := newRootCmd(backends{
		migrator:     openMigrator,
		destinations: openDestinations(logger),
	})
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openMigrator connects with database/sql, which goose requires.
func openMigrator(ctx context.Context) (migrator, func(), error) {
	dsn, err := config.LoadDatabaseURL()
	if err != nil {
		return nil, nil, err
	}
	db, err := migrations.Open(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}
	p, err := migrations.NewProvider(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return p, func() { _ = db.Close() }, nil
}

func openDestinations(log *slog.Logger) func(context.Context) (destinationStore, func(), error) {
	return func(ctx context.Context) (destinationStore, func(), error) {
		dsn, err := config.LoadDatabaseURL()
		if err != nil {
			return nil, nil, err
		}
		pool, err := pgxpool.New(ctx, dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("open database pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		return service.NewDestinationService(repo.NewDestinationRepo(pool), log), pool.Close, nil
	}
}
