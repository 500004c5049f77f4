package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"newsletter/pkg/secret"
)

const (
	sslModeRequire = "require"
	sslModePrefer  = "prefer"
)

// DatabaseSettings содержит настройки подключения к Postgres.
type DatabaseSettings struct {
	Host           string        `yaml:"host" env:"APP_DATABASE_HOST" env-required:"true"`
	Port           int           `yaml:"port" env:"APP_DATABASE_PORT" env-default:"5432"`
	Username       string        `yaml:"username" env:"APP_DATABASE_USERNAME" env-required:"true"`
	Password       secret.Secret `yaml:"password"`
	DatabaseName   string        `yaml:"database_name" env:"APP_DATABASE_NAME" env-required:"true"`
	RequireSSL     bool          `yaml:"require_ssl" env:"APP_DATABASE_REQUIRE_SSL"`
	MinConns       int           `yaml:"min_conns" env:"APP_DATABASE_MIN_CONNS" env-default:"0"`
	MaxConns       int           `yaml:"max_conns" env:"APP_DATABASE_MAX_CONNS" env-default:"10"`
	AcquireTimeout time.Duration `yaml:"acquire_timeout" env:"APP_DATABASE_ACQUIRE_TIMEOUT" env-default:"2s"`
	MigrateOnStart bool          `yaml:"migrate_on_start" env:"APP_DATABASE_MIGRATE_ON_START"`
	MigrationsDir  string        `yaml:"migrations_dir" env:"APP_DATABASE_MIGRATIONS_DIR" env-default:"migrations/subscriptions"`
}

// Validate проверяет согласованность настроек пула и наличие пароля.
func (p *DatabaseSettings) Validate() error {
	var errs []error
	if p.Port <= 0 || p.Port > 65535 {
		errs = append(errs, fmt.Errorf("database port %d is out of range", p.Port))
	}
	if p.Password.IsZero() {
		errs = append(errs, errors.New("database password is not set"))
	}
	if p.MaxConns <= 0 {
		errs = append(errs, fmt.Errorf("database max_conns must be positive, got %d", p.MaxConns))
	}
	if p.MinConns < 0 || p.MinConns > p.MaxConns {
		errs = append(errs, fmt.Errorf("database min_conns %d must be within [0, %d]", p.MinConns, p.MaxConns))
	}
	if p.AcquireTimeout <= 0 {
		errs = append(errs, errors.New("database acquire_timeout must be positive"))
	}
	return errors.Join(errs...)
}

// SSLMode возвращает значение sslmode для строки подключения.
func (p *DatabaseSettings) SSLMode() string {
	if p.RequireSSL {
		return sslModeRequire
	}
	return sslModePrefer
}

// ServerDSN возвращает строку подключения к серверу без имени базы данных.
// Используется для операций уровня сервера, например CREATE DATABASE.
func (p *DatabaseSettings) ServerDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s sslmode=%s",
		quoteDSNValue(p.Host), p.Port, quoteDSNValue(p.Username),
		quoteDSNValue(p.Password.Expose()), p.SSLMode())
}

// DSN возвращает строку подключения к базе данных подписок.
func (p *DatabaseSettings) DSN() string {
	return p.ServerDSN() + " dbname=" + quoteDSNValue(p.DatabaseName)
}

// ConnectionURL возвращает URL-строку подключения для миграций.
func (p *DatabaseSettings) ConnectionURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.Username, p.Password.Expose()),
		Host:     net.JoinHostPort(p.Host, strconv.Itoa(p.Port)),
		Path:     "/" + p.DatabaseName,
		RawQuery: "sslmode=" + p.SSLMode(),
	}
	return u.String()
}

// WithDatabaseName возвращает копию настроек с другой базой данных.
func (p DatabaseSettings) WithDatabaseName(name string) DatabaseSettings {
	p.DatabaseName = name
	return p
}

// quoteDSNValue экранирует значение для формата key=value libpq.
func quoteDSNValue(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(v) + "'"
}
