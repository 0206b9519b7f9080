package tracing

import (
	"context"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/Kargones/profillog/internal/constants"
	"github.com/Kargones/profillog/internal/pkg/logging"
)

// ServiceName — service.name и instrumentation scope по умолчанию.
const ServiceName = constants.AppName

// ShutdownFunc сбрасывает накопленные span-ы и останавливает экспорт.
type ShutdownFunc func(context.Context) error

func nopShutdown(context.Context) error { return nil }

// NewTracerProvider регистрирует глобальный TracerProvider с OTLP/HTTP экспортом.
// Выключенный трейсинг оставляет глобальный no-op провайдер: Tracer() работает,
// span-ы никуда не уходят.
func NewTracerProvider(cfg Config, logger logging.Logger) (ShutdownFunc, error) {
	if !cfg.Enabled {
		logger.Debug("трейсинг выключен")
		return nopShutdown, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	res, err := newResource(cfg)
	if err != nil {
		return nil, err
	}
	exporter, err := newExporter(cfg)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(newSampler(cfg.SamplingRate)),
	)
	otel.SetTracerProvider(tp)

	logger.Info("экспорт трейсов включён",
		"endpoint", cfg.Endpoint,
		"service", cfg.ServiceName,
		"sampling_rate", cfg.SamplingRate,
	)
	return tp.Shutdown, nil
}

// newResource дополняет resource.Default() атрибутами сервиса.
// Атрибуты без schema URL, иначе Merge отвергает разные версии semconv.
func newResource(cfg Config) (*resource.Resource, error) {
	return resource.Merge(resource.Default(), resource.NewSchemaless(
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.Version),
		semconv.DeploymentEnvironment(cfg.Environment),
	))
}

// tracesPath — путь OTLP/HTTP по умолчанию.
const tracesPath = "/v1/traces"

// exporterURL дописывает tracesPath к endpoint без пути.
func exporterURL(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil {
		return endpoint
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = tracesPath
	}
	return u.String()
}

// newExporter: схема и host берутся из cfg.Endpoint.
func newExporter(cfg Config) (*otlptrace.Exporter, error) {
	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpointURL(exporterURL(cfg.Endpoint)),
		otlptracehttp.WithTimeout(cfg.Timeout),
	}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	return otlptracehttp.New(context.Background(), opts...)
}

// Tracer возвращает tracer profillog из глобального провайдера.
func Tracer() trace.Tracer {
	return otel.Tracer(ServiceName, trace.WithInstrumentationVersion(constants.Version))
}

// ContextWithOTelTraceID делает traceIDHex родительским trace ID для span-ов ctx,
// чтобы span-ы и записи диагностического лога совпадали по trace_id.
// Строка, не являющаяся 32-символьным hex, игнорируется.
func ContextWithOTelTraceID(ctx context.Context, traceIDHex string) context.Context {
	id, err := trace.TraceIDFromHex(traceIDHex)
	if err != nil {
		return ctx
	}
	return trace.ContextWithRemoteSpanContext(ctx, trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    id,
		TraceFlags: trace.FlagsSampled,
		Remote:     true,
	}))
}

// newSampler применяет rate и при remote-родителе: ContextWithOTelTraceID
// всегда помечает родителя sampled.
func newSampler(rate float64) sdktrace.Sampler {
	ratio := sdktrace.TraceIDRatioBased(rate)
	return sdktrace.ParentBased(ratio, sdktrace.WithRemoteParentSampled(ratio))
}
