package config

import "time"

// ShutdownSettings представляет конфигурацию для корректного завершения работы.
type ShutdownSettings struct {
	Timeout time.Duration `yaml:"timeout" env:"APP_SHUTDOWN_TIMEOUT" env-default:"10s"`
}
