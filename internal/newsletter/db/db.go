// Package db предоставляет функционал для работы с базой данных сервиса подписок.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"newsletter/internal/newsletter/config"
	"newsletter/pkg/db/postgres"
	"newsletter/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogDBInitializing    = "initializing newsletter database"
	LogDBInitialized     = "newsletter database initialized"
	LogMigrationStarting = "starting database migrations for newsletter service"
)

// Константы для сообщений об ошибках.
const (
	ErrDBMigrations      = "failed to apply newsletter database migrations"
	ErrDBConnection      = "failed to create newsletter database pool"
	ErrDBCreate          = "failed to create newsletter database"
	ErrDBCheckConnection = "error checking the database connection"
)

// DB представляет соединение с базой данных подписок.
type DB struct {
	database *postgres.Database
}

// New создает пул соединений. Если в настройках включен migrate_on_start,
// сначала создает базу при необходимости и применяет миграции.
func New(ctx context.Context, cfg *config.DatabaseSettings) (*DB, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogDBInitializing,
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.DatabaseName),
		zap.Int("min_conn", cfg.MinConns),
		zap.Int("max_conn", cfg.MaxConns),
		zap.Bool("migrate_on_start", cfg.MigrateOnStart))

	if cfg.MigrateOnStart {
		if err := Migrate(ctx, cfg, true); err != nil {
			return nil, err
		}
	}

	database, err := postgres.New(ctx, cfg.DSN(), cfg.MinConns, cfg.MaxConns)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	log.Info(ctx, LogDBInitialized)

	return &DB{database: database}, nil
}

// Migrate применяет миграции из cfg.MigrationsDir. При createDatabase база
// создается через серверную строку подключения, если ее еще нет.
func Migrate(ctx context.Context, cfg *config.DatabaseSettings, createDatabase bool) error {
	log := logger.Log(ctx)

	if createDatabase {
		if _, err := postgres.CreateDatabase(ctx, cfg.ServerDSN(), cfg.DatabaseName); err != nil {
			return fmt.Errorf("%s: %w", ErrDBCreate, err)
		}
	}

	sourceURL, err := postgres.MigrationsSourceURL(cfg.MigrationsDir)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	log.Info(ctx, LogMigrationStarting, zap.String("migrations_path", sourceURL))
	if err := postgres.MigrateDSN(ctx, cfg.ConnectionURL(), sourceURL); err != nil {
		return fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}
	return nil
}

// Rollback откатывает все миграции из cfg.MigrationsDir.
func Rollback(ctx context.Context, cfg *config.DatabaseSettings) error {
	sourceURL, err := postgres.MigrationsSourceURL(cfg.MigrationsDir)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}
	return postgres.RollbackDSN(ctx, cfg.ConnectionURL(), sourceURL)
}

// Close закрывает соединение с базой данных.
func (db *DB) Close(ctx context.Context) {
	db.database.Close(ctx)
}

// Pool возвращает пул соединений с базой данных.
func (db *DB) Pool() *pgxpool.Pool {
	return db.database.Pool()
}

// Ping проверяет соединение с базой данных.
func (db *DB) Ping(ctx context.Context) error {
	if err := db.database.Ping(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrDBCheckConnection, err)
	}
	return nil
}
