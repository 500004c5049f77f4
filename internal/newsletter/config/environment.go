package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"newsletter/pkg/logger"
)

// EnvAppEnvironment - переменная окружения, выбирающая файл окружения.
const EnvAppEnvironment = "APP_ENVIRONMENT"

// Environment - закрытое множество окружений развертывания.
type Environment string

// Поддерживаемые окружения.
const (
	Local      Environment = "local"
	Production Environment = "production"
)

// ErrUnknownEnvironment возвращается для любого значения кроме local и production.
var ErrUnknownEnvironment = errors.New("unknown environment")

// ParseEnvironment сопоставляет строку с окружением без учета регистра.
func ParseEnvironment(raw string) (Environment, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(Local):
		return Local, nil
	case string(Production):
		return Production, nil
	default:
		return "", fmt.Errorf("%w: %q, use either %q or %q", ErrUnknownEnvironment, raw, Local, Production)
	}
}

// EnvironmentFromEnv читает APP_ENVIRONMENT; пустое или отсутствующее значение означает local.
func EnvironmentFromEnv() (Environment, error) {
	raw, ok := os.LookupEnv(EnvAppEnvironment)
	if !ok || strings.TrimSpace(raw) == "" {
		return Local, nil
	}
	return ParseEnvironment(raw)
}

// ConfigFile возвращает имя файла окружения.
func (e Environment) ConfigFile() string {
	switch e {
	case Production:
		return "production.yaml"
	default:
		return "local.yaml"
	}
}

// LoggerEnvironment переводит окружение в режим логгера.
func (e Environment) LoggerEnvironment() logger.Environment {
	if e == Production {
		return logger.Production
	}
	return logger.Development
}

func (e Environment) String() string {
	return string(e)
}
