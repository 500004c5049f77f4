package postgres

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"newsletter/pkg/logger"
)

// Константы для сообщений об ошибках миграций.
const (
	ErrCreateMigrationInstance = "failed to create migration instance"
	ErrApplyMigrations         = "failed to apply migrations"
	ErrRollbackMigrations      = "failed to roll back migrations"
	ErrMigrationsPath          = "failed to resolve migrations path"
)

const filePrefix = "file://"

// Миграции выполняются через драйвер pgx, как и пул приложения:
// lib/pq не поддерживает sslmode=prefer.
const (
	postgresScheme = "postgres://"
	pgxScheme      = "pgx5://"
)

// MigrationDSN переводит postgres:// URL в схему драйвера миграций pgx5://.
func MigrationDSN(dsn string) string {
	if rest, ok := strings.CutPrefix(dsn, postgresScheme); ok {
		return pgxScheme + rest
	}
	return dsn
}

// MigrationsSourceURL переводит каталог миграций в URL источника file://.
// Относительный путь отсчитывается от рабочего каталога процесса.
func MigrationsSourceURL(dir string) (string, error) {
	if strings.HasPrefix(dir, filePrefix) {
		return dir, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrMigrationsPath, err)
	}
	return filePrefix + filepath.ToSlash(abs), nil
}

// MigrateDSN применяет все новые миграции из sourceURL к базе по адресу dsn.
func MigrateDSN(ctx context.Context, dsn string, sourceURL string) error {
	log := logger.Log(ctx)

	m, err := newMigrate(ctx, dsn, sourceURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Error(ctx, ErrApplyMigrations, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrApplyMigrations, err)
	}

	log.Info(ctx, LogMigrationsApplied, zap.String("path", sourceURL))
	return nil
}

// RollbackDSN откатывает все примененные миграции.
func RollbackDSN(ctx context.Context, dsn string, sourceURL string) error {
	log := logger.Log(ctx)

	m, err := newMigrate(ctx, dsn, sourceURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Error(ctx, ErrRollbackMigrations, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrRollbackMigrations, err)
	}

	log.Info(ctx, LogMigrationsRolled, zap.String("path", sourceURL))
	return nil
}

func newMigrate(ctx context.Context, dsn, sourceURL string) (*migrate.Migrate, error) {
	m, err := migrate.New(sourceURL, MigrationDSN(dsn))
	if err != nil {
		logger.Log(ctx).Error(ctx, ErrCreateMigrationInstance, zap.Error(err), zap.String("path", sourceURL))
		return nil, fmt.Errorf("%s: %w", ErrCreateMigrationInstance, err)
	}
	return m, nil
}
