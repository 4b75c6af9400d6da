package postgres

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/jmachaddo/egg-back-home-wms/internal/adapters/driven/storage/postgres/migrations"
	"github.com/jmachaddo/egg-back-home-wms/internal/core/ports/driven"
	"github.com/jmachaddo/egg-back-home-wms/internal/logger"
)

// Pool defaults.
const (
	DefaultMaxConns        = 10
	DefaultMinConns        = 2
	DefaultMaxConnIdleTime = 30 * time.Minute
	DefaultMaxConnLifetime = time.Hour
)

// gooseMu serialises goose's package-level configuration.
var gooseMu sync.Mutex

// Store is a PostgreSQL-backed storage that provides access to
// all store interfaces through wrapper types.
type Store struct {
	pool *pgxpool.Pool
}

// NewPool creates a PostgreSQL connection pool and checks it with a ping.
func NewPool(ctx context.Context, connString string, maxConns int, maxIdle, maxLife time.Duration) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	if maxConns > math.MaxInt32 {
		maxConns = math.MaxInt32
	}
	config.MaxConns = int32(maxConns) //nolint:gosec // bounded above
	config.MinConns = DefaultMinConns
	config.MaxConnLifetime = maxLife
	config.MaxConnIdleTime = maxIdle

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	logger.Info("postgres: connected")
	return pool, nil
}

// NewStore connects to connString and applies pending migrations.
func NewStore(ctx context.Context, connString string) (*Store, error) {
	pool, err := NewPool(ctx, connString, DefaultMaxConns, DefaultMaxConnIdleTime, DefaultMaxConnLifetime)
	if err != nil {
		return nil, err
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// NewStoreFromPool wraps an existing pool without running migrations.
func NewStoreFromPool(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Close closes the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// CustomerStore returns a CustomerStore interface backed by this store.
func (s *Store) CustomerStore() driven.CustomerStore {
	return &customerStore{pool: s.pool}
}

// WatermarkStore returns a WatermarkStore interface backed by this store.
func (s *Store) WatermarkStore() driven.WatermarkStore {
	return &watermarkStore{pool: s.pool}
}

// SourceConfigStore returns a SourceConfigStore interface backed by this store.
func (s *Store) SourceConfigStore() driven.SourceConfigStore {
	return &sourceConfigStore{pool: s.pool}
}

// ActivityLog returns an ActivityLog interface backed by this store.
func (s *Store) ActivityLog() driven.ActivityLog {
	return &activityLog{pool: s.pool}
}

// SchedulerStore returns a SchedulerStore interface backed by this store.
func (s *Store) SchedulerStore() driven.SchedulerStore {
	return &schedulerStore{pool: s.pool}
}

// migrate applies the embedded goose migrations.
func (s *Store) migrate(ctx context.Context) error {
	db := stdlib.OpenDBFromPool(s.pool)
	defer db.Close()

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.FS)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}
