// Package postgres содержит общий код подключения к Postgres и применения миграций.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"newsletter/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogConnecting        = "creating Postgres connection pool"
	LogPoolCreated       = "Postgres connection pool created"
	LogClosing           = "closing Postgres connection pool"
	LogMigrationsApplied = "database migrations successfully applied"
	LogMigrationsRolled  = "database migrations successfully rolled back"
	LogDatabaseCreated   = "database created"
	LogDatabaseExists    = "database already exists"
)

// Константы для сообщений об ошибках.
const (
	ErrParseConfig  = "failed to parse connection config"
	ErrCreatePool   = "failed to create connection pool"
	ErrPingDatabase = "failed to ping database"
)

// Database представляет пул соединений с Postgres.
type Database struct {
	pool *pgxpool.Pool
}

// New создает пул соединений. Соединения открываются лениво при первом запросе,
// поэтому недоступность базы не мешает запуску процесса.
func New(ctx context.Context, dsn string, minConn, maxConn int) (*Database, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogConnecting, zap.Int("min_conn", minConn), zap.Int("max_conn", maxConn))

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		// Текст ошибки разбора может содержать DSN вместе с паролем.
		log.Error(ctx, ErrParseConfig)
		return nil, fmt.Errorf("%s", ErrParseConfig)
	}

	poolCfg.MinConns = int32(minConn) //nolint:gosec
	poolCfg.MaxConns = int32(maxConn) //nolint:gosec

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		log.Error(ctx, ErrCreatePool, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrCreatePool, err)
	}

	log.Info(ctx, LogPoolCreated,
		zap.String("host", poolCfg.ConnConfig.Host),
		zap.Uint16("port", poolCfg.ConnConfig.Port),
		zap.String("database", poolCfg.ConnConfig.Database))
	return &Database{pool: pool}, nil
}

// Pool возвращает пул соединений.
func (db *Database) Pool() *pgxpool.Pool {
	return db.pool
}

// Close закрывает пул соединений.
func (db *Database) Close(ctx context.Context) {
	logger.Log(ctx).Info(ctx, LogClosing)
	db.pool.Close()
}

// Ping проверяет доступность базы данных.
func (db *Database) Ping(ctx context.Context) error {
	if err := db.pool.Ping(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrPingDatabase, err)
	}
	return nil
}
