package config

// TracingSettings содержит настройки трассировки запросов.
type TracingSettings struct {
	ServiceName string `yaml:"service_name" env:"APP_TRACING_SERVICE_NAME" env-default:"newsletter"`
}
