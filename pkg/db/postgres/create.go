package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"newsletter/pkg/logger"
)

// Константы для сообщений об ошибках создания базы.
const (
	ErrConnectServer  = "failed to connect to Postgres server"
	ErrCheckDatabase  = "failed to check database existence"
	ErrCreateDatabase = "failed to create database"
)

// ErrEmptyDatabaseName возвращается при пустом имени базы данных.
var ErrEmptyDatabaseName = errors.New("database name is empty")

const (
	databaseExistsQuery = `SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)`
	duplicateDatabase   = "42P04"
)

// ServerExecutor - соединение уровня сервера, которого достаточно для создания базы.
type ServerExecutor interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// CreateDatabase подключается к серверу по serverDSN и создает базу name, если ее нет.
// Возвращает true, если база была создана.
func CreateDatabase(ctx context.Context, serverDSN, name string) (bool, error) {
	conn, err := pgx.Connect(ctx, serverDSN)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrConnectServer, err)
	}
	defer func() {
		_ = conn.Close(ctx)
	}()

	return EnsureDatabase(ctx, conn, name)
}

// EnsureDatabase создает базу name через exec, если она еще не существует.
func EnsureDatabase(ctx context.Context, exec ServerExecutor, name string) (bool, error) {
	log := logger.Log(ctx).With(zap.String("database", name))

	if name == "" {
		return false, ErrEmptyDatabaseName
	}

	var exists bool
	if err := exec.QueryRow(ctx, databaseExistsQuery, name).Scan(&exists); err != nil {
		log.Error(ctx, ErrCheckDatabase, zap.Error(err))
		return false, fmt.Errorf("%s: %w", ErrCheckDatabase, err)
	}
	if exists {
		log.Info(ctx, LogDatabaseExists)
		return false, nil
	}

	if _, err := exec.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{name}.Sanitize()); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == duplicateDatabase {
			log.Info(ctx, LogDatabaseExists)
			return false, nil
		}
		log.Error(ctx, ErrCreateDatabase, zap.Error(err))
		return false, fmt.Errorf("%s: %w", ErrCreateDatabase, err)
	}

	log.Info(ctx, LogDatabaseCreated)
	return true, nil
}
