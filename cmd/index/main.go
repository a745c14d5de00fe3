package main

import (
	"context"
	"fmt"
	"os"

	"bookcatalog/internal/book"
	"bookcatalog/internal/config"
	"bookcatalog/internal/platform/logging"
	"bookcatalog/internal/platform/mongodb"
)

// index creates the search indexes in the Mongo books collection. The
// Postgres backend gets its indexes from cmd/migrate.
func main() {
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

	ctx := context.Background()
	client, err := mongodb.Connect(ctx, cfg.Store.MongoURI, cfg.Store.Timeout)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect to mongodb")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	repo := book.NewMongoRepo(client.Database(cfg.Store.MongoDatabase).Collection(book.CollectionName), cfg.Store.Timeout)
	names, err := repo.EnsureIndexes(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("create indexes")
	}
	for _, n := range names {
		logger.Info().Str("index", n).Msg("index ready")
	}
	logger.Info().Msg("all indexes created successfully")
}
