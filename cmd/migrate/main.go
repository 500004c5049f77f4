// Package main применяет или откатывает миграции базы данных подписок.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"newsletter/internal/newsletter/config"
	"newsletter/internal/newsletter/db"
	"newsletter/pkg/logger"
)

// Направления миграции.
const (
	DirectionUp   = "up"
	DirectionDown = "down"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger       = "failed to initialize logger"
	ErrLoadConfig       = "failed to load configuration"
	ErrUnknownDirection = "unknown migration direction"
	ErrMigrate          = "migration failed"
	ErrSyncStderr       = "sync /dev/stderr: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogMigrationsApplied    = "migrations applied"
	LogMigrationsRolledBack = "migrations rolled back"
)

func main() {
	direction := flag.String("direction", DirectionUp, "migration direction: up or down")
	createDatabase := flag.Bool("create-database", false, "create the database before applying migrations")
	flag.Parse()

	env, err := config.EnvironmentFromEnv()
	if err != nil {
		env = config.Local
	}

	log, err := logger.NewLogger(env.LoggerEnvironment(), "info")
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}
	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	code := run(ctx, log, *direction, *createDatabase)

	if err := log.Sync(); err != nil && !strings.Contains(err.Error(), ErrSyncStderr) {
		_, _ = fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(code)
}

func run(ctx context.Context, log *logger.Logger, direction string, createDatabase bool) int {
	cfg, err := config.Load(ctx)
	if err != nil {
		log.Error(ctx, ErrLoadConfig, zap.Error(err))
		return 1
	}

	switch direction {
	case DirectionUp:
		if err := db.Migrate(ctx, &cfg.Database, createDatabase); err != nil {
			log.Error(ctx, ErrMigrate, zap.Error(err))
			return 1
		}
		log.Info(ctx, LogMigrationsApplied, zap.String("database", cfg.Database.DatabaseName))
	case DirectionDown:
		if err := db.Rollback(ctx, &cfg.Database); err != nil {
			log.Error(ctx, ErrMigrate, zap.Error(err))
			return 1
		}
		log.Info(ctx, LogMigrationsRolledBack, zap.String("database", cfg.Database.DatabaseName))
	default:
		log.Error(ctx, ErrUnknownDirection, zap.String("direction", direction))
		return 2
	}
	return 0
}
