package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"bookcatalog/internal/config"
	"bookcatalog/internal/platform/logging"
	"bookcatalog/internal/platform/postgres"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, create")
		name    = flag.String("name", "", "Name for 'create' command")
	)
	flag.Parse()

	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Log.Level, "console", os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}

	dir := migrationsDir()

	if *command == "create" {
		if *name == "" {
			logger.Fatal().Msg("name is required for 'create' command")
		}
		if err := goose.Create(nil, dir, *name, "sql"); err != nil {
			logger.Fatal().Err(err).Msg("create migration")
		}
		logger.Info().Str("name", *name).Msg("migration created")
		return
	}

	ctx := context.Background()
	pool, err := postgres.Open(ctx, cfg.Store.PostgresDSN, cfg.Store.Timeout)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		logger.Fatal().Err(err).Msg("set dialect")
	}

	switch *command {
	case "up":
		if err := goose.UpContext(ctx, db, dir); err != nil {
			logger.Fatal().Err(err).Msg("apply migrations")
		}
		logger.Info().Msg("migrations applied successfully")
	case "down":
		if err := goose.DownContext(ctx, db, dir); err != nil {
			logger.Fatal().Err(err).Msg("roll back migration")
		}
		logger.Info().Msg("migration rolled back successfully")
	case "status":
		if err := goose.StatusContext(ctx, db, dir); err != nil {
			logger.Fatal().Err(err).Msg("check migration status")
		}
	default:
		logger.Fatal().Str("command", *command).Msg("unknown command; use up, down, status or create")
	}
}
