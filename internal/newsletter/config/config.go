// Package config содержит конфигурацию сервиса подписок.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	pkgconfig "newsletter/pkg/config"
	"newsletter/pkg/logger"
	"newsletter/pkg/secret"
)

// Константы ошибок и сообщений для конфигурации.
const (
	LogLoadingConfig    = "Loading newsletter service configuration"
	LogConfigLoaded     = "Configuration loaded successfully"
	ErrFailedLoadConfig = "Failed to load configuration"
)

// Переменные окружения, которые не описываются тегами cleanenv.
const (
	EnvConfigDir        = "APP_CONFIG_DIR"
	EnvDatabasePassword = "APP_DATABASE_PASSWORD" //nolint:gosec
)

// DefaultConfigDir - каталог конфигурации относительно рабочего каталога процесса.
const DefaultConfigDir = "configuration"

// ErrConfigResolution - любая ошибка построения Settings. Процесс не должен стартовать.
var ErrConfigResolution = errors.New("configuration resolution failure")

// Settings представляет полную конфигурацию сервиса.
type Settings struct {
	Application ApplicationSettings `yaml:"application"`
	Database    DatabaseSettings    `yaml:"database"`
	Logging     LoggingSettings     `yaml:"logging"`
	Shutdown    ShutdownSettings    `yaml:"shutdown"`
	Tracing     TracingSettings     `yaml:"tracing"`

	Environment Environment `yaml:"-"`
}

// Load определяет окружение, читает base.yaml и файл окружения поверх него,
// применяет переменные окружения и проверяет результат.
func Load(ctx context.Context) (*Settings, error) {
	log := logger.Log(ctx)

	env, err := EnvironmentFromEnv()
	if err != nil {
		log.Error(ctx, ErrFailedLoadConfig, zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrConfigResolution, err)
	}

	return LoadFrom(ctx, configDir(), env)
}

// LoadFrom загружает конфигурацию указанного окружения из каталога dir.
func LoadFrom(ctx context.Context, dir string, env Environment) (*Settings, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogLoadingConfig,
		zap.String("environment", env.String()),
		zap.String("directory", dir))

	cfg, err := pkgconfig.LoadLayered[Settings](ctx, dir, env.ConfigFile())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigResolution, err)
	}
	cfg.Environment = env

	if err := cfg.Validate(); err != nil {
		log.Error(ctx, ErrFailedLoadConfig, zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrConfigResolution, err)
	}

	log.Info(ctx, LogConfigLoaded,
		zap.String("environment", env.String()),
		zap.String("http_address", cfg.Application.GetAddress()),
		zap.String("postgres_host", cfg.Database.Host),
		zap.Int("postgres_port", cfg.Database.Port),
		zap.String("postgres_database", cfg.Database.DatabaseName),
		zap.String("postgres_user", cfg.Database.Username),
		zap.Int("postgres_max_conn", cfg.Database.MaxConns),
		zap.String("log_level", cfg.Logging.Level),
		zap.Duration("shutdown_timeout", cfg.Shutdown.Timeout))

	return cfg, nil
}

// Update вызывается cleanenv после разбора файлов. Пароль хранится в secret.Secret,
// поэтому его переопределение из окружения выполняется здесь, а не через теги.
func (s *Settings) Update() error {
	if raw, ok := os.LookupEnv(EnvDatabasePassword); ok {
		s.Database.Password = secret.New(raw)
	}
	return nil
}

// Validate проверяет значения, которые не выражаются тегами cleanenv.
func (s *Settings) Validate() error {
	if err := s.Application.Validate(); err != nil {
		return err
	}
	return s.Database.Validate()
}

func configDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	return DefaultConfigDir
}
