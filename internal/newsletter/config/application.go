package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// ApplicationSettings представляет конфигурацию HTTP сервера.
type ApplicationSettings struct {
	Host         string        `yaml:"host" env:"APP_APPLICATION_HOST" env-required:"true"`
	Port         int           `yaml:"port" env:"APP_APPLICATION_PORT" env-default:"8000"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"APP_APPLICATION_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"APP_APPLICATION_WRITE_TIMEOUT" env-default:"10s"`
}

// GetAddress возвращает адрес HTTP сервера в формате host:port.
func (c *ApplicationSettings) GetAddress() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Validate проверяет диапазон порта. Порт 0 означает выбор свободного порта ОС.
func (c *ApplicationSettings) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("application port %d is out of range", c.Port)
	}
	return nil
}
