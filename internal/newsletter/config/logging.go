package config

// LoggingSettings содержит настройки логирования.
// Режим логгера определяется окружением, а не отдельным ключом.
type LoggingSettings struct {
	Level string `yaml:"level" env:"APP_LOG_LEVEL" env-default:"info"`
}
