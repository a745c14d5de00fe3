package store

import (
	"context"
	"fmt"
	"time"

	"bookcatalog/internal/book"
	"bookcatalog/internal/config"
	"bookcatalog/internal/platform/mongodb"
	"bookcatalog/internal/platform/postgres"

	"github.com/rs/zerolog"
)

// Store is an opened document-store backend.
type Store struct {
	Books   book.Repository
	Backend config.Backend

	ping  func(context.Context) error
	close func(context.Context) error
}

// Open connects to the backend selected in cfg.
func Open(ctx context.Context, cfg config.StoreConfig, logger zerolog.Logger) (*Store, error) {
	switch cfg.Backend {
	case config.BackendMongo:
		client, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		coll := client.Database(cfg.MongoDatabase).Collection(book.CollectionName)
		logger.Info().Str("database", cfg.MongoDatabase).Msg("mongodb connection OK")
		return &Store{
			Books:   book.NewMongoRepo(coll, cfg.Timeout),
			Backend: cfg.Backend,
			ping: func(ctx context.Context) error {
				return mongodb.Ping(ctx, client, cfg.Timeout)
			},
			close: client.Disconnect,
		}, nil

	case config.BackendPostgres:
		pool, err := postgres.Open(ctx, cfg.PostgresDSN, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("dsn", postgres.RedactDSN(cfg.PostgresDSN)).Msg("database connection OK")
		return &Store{
			Books:   book.NewPostgresRepo(pool, cfg.Timeout),
			Backend: cfg.Backend,
			ping:    pool.Ping,
			close: func(context.Context) error {
				pool.Close()
				return nil
			},
		}, nil

	case config.BackendMemory:
		logger.Warn().Msg("using in-memory store; data is lost on restart")
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
}

// NewMemory returns a store backed by process memory.
func NewMemory() *Store {
	return &Store{
		Books:   book.NewMemoryRepo(),
		Backend: config.BackendMemory,
		ping:    func(context.Context) error { return nil },
		close:   func(context.Context) error { return nil },
	}
}

// Ping reports whether the backend is reachable within timeout.
func (s *Store) Ping(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return s.ping(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	return s.close(ctx)
}
