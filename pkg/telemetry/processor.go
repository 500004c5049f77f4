package telemetry

import (
	"context"
	"sync/atomic"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"

	"newsletter/pkg/logger"
)

// Сообщения журнала для событий спанов.
const (
	LogSpanStarted = "span started"
	LogSpanEnded   = "span ended"
)

// LogProcessor - sdktrace.SpanProcessor, записывающий начало и конец спана в журнал.
type LogProcessor struct {
	log     *logger.Logger
	stopped atomic.Bool
}

var _ sdktrace.SpanProcessor = (*LogProcessor)(nil)

// NewLogProcessor создает процессор поверх логгера. nil логгер заменяется no-op.
func NewLogProcessor(log *logger.Logger) *LogProcessor {
	if log == nil {
		log = logger.Nop()
	}
	return &LogProcessor{log: log}
}

func (p *LogProcessor) OnStart(_ context.Context, s sdktrace.ReadWriteSpan) {
	if p.stopped.Load() {
		return
	}
	p.log.Zap().Debug(LogSpanStarted, spanFields(s)...)
}

func (p *LogProcessor) OnEnd(s sdktrace.ReadOnlySpan) {
	if p.stopped.Load() {
		return
	}
	fields := append(spanFields(s), zap.Duration("elapsed", s.EndTime().Sub(s.StartTime())))
	if st := s.Status(); st.Description != "" {
		fields = append(fields, zap.String("status", st.Code.String()), zap.String("status_description", st.Description))
	}
	p.log.Zap().Info(LogSpanEnded, fields...)
}

func (p *LogProcessor) Shutdown(context.Context) error {
	p.stopped.Store(true)
	return nil
}

func (p *LogProcessor) ForceFlush(context.Context) error {
	return nil
}

func spanFields(s sdktrace.ReadOnlySpan) []zap.Field {
	sc := s.SpanContext()
	attrs := s.Attributes()

	fields := make([]zap.Field, 0, len(attrs)+4)
	fields = append(fields,
		zap.String("span", s.Name()),
		zap.String("trace_id", sc.TraceID().String()),
		zap.String("span_id", sc.SpanID().String()))
	if parent := s.Parent(); parent.IsValid() {
		fields = append(fields, zap.String("parent_span_id", parent.SpanID().String()))
	}
	for _, kv := range attrs {
		fields = append(fields, zap.String(string(kv.Key), kv.Value.Emit()))
	}
	return fields
}
