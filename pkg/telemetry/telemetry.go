// Package telemetry настраивает трассировку OpenTelemetry, которая пишет
// завершенные спаны в журнал zap вместо внешнего коллектора.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/trace"

	"newsletter/pkg/logger"
)

// TracerName - имя инструментирования, под которым сервис создает спаны.
const TracerName = "newsletter"

const serviceNameKey = attribute.Key("service.name")

// NewTracerProvider создает провайдер, все спаны которого журналируются через log.
// Дополнительные процессоры, например tracetest.SpanRecorder, подключаются через extra.
func NewTracerProvider(serviceName string, log *logger.Logger, extra ...sdktrace.SpanProcessor) *sdktrace.TracerProvider {
	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(resource.NewSchemaless(serviceNameKey.String(serviceName))),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithSpanProcessor(NewLogProcessor(log)),
	}
	for _, p := range extra {
		opts = append(opts, sdktrace.WithSpanProcessor(p))
	}
	return sdktrace.NewTracerProvider(opts...)
}

// Tracer возвращает трассировщик сервиса. Для nil провайдера возвращается no-op.
func Tracer(tp trace.TracerProvider) trace.Tracer {
	if tp == nil {
		return noopTracer()
	}
	return tp.Tracer(TracerName)
}

// Shutdown завершает работу провайдера, если он поддерживает остановку.
func Shutdown(ctx context.Context, tp trace.TracerProvider) error {
	if p, ok := tp.(interface{ Shutdown(context.Context) error }); ok {
		return p.Shutdown(ctx)
	}
	return nil
}
