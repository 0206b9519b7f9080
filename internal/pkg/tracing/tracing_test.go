package tracing

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/Kargones/profillog/internal/pkg/logging"
)

var hex32 = regexp.MustCompile(`^[0-9a-f]{32}$`)

func TestGenerateTraceID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateTraceID()
		assert.Regexp(t, hex32, id)
		assert.False(t, seen[id], "trace ID должен быть уникальным")
		seen[id] = true
	}
}

func TestFallbackTraceID(t *testing.T) {
	a, b := fallbackTraceID(), fallbackTraceID()
	assert.Regexp(t, hex32, a)
	assert.NotEqual(t, a, b)
}

func TestTraceIDContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, TraceIDFromContext(ctx))
	//nolint:staticcheck // проверяем обработку nil context
	assert.Empty(t, TraceIDFromContext(nil))

	ctx = WithTraceID(ctx, "first")
	ctx = WithTraceID(ctx, "second")
	assert.Equal(t, "second", TraceIDFromContext(ctx))
}

func TestEnsureTraceID(t *testing.T) {
	ctx, id := EnsureTraceID(context.Background())
	assert.Regexp(t, hex32, id)
	assert.Equal(t, id, TraceIDFromContext(ctx))

	ctx2, id2 := EnsureTraceID(ctx)
	assert.Equal(t, id, id2)
	assert.Equal(t, ctx, ctx2)
}

func TestContextWithOTelTraceID(t *testing.T) {
	id := GenerateTraceID()
	ctx := ContextWithOTelTraceID(context.Background(), id)
	sc := trace.SpanContextFromContext(ctx)
	assert.True(t, sc.IsRemote())
	assert.Equal(t, id, sc.TraceID().String())

	plain := context.Background()
	assert.Equal(t, plain, ContextWithOTelTraceID(plain, "not-hex"))
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{Enabled: true, Endpoint: "http://jaeger:4318", ServiceName: "profillog", Timeout: time.Second, SamplingRate: 0.5}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{"валидно", func(*Config) {}, nil},
		{"выключено", func(c *Config) { *c = Config{} }, nil},
		{"без endpoint", func(c *Config) { c.Endpoint = "" }, ErrTracingEndpointRequired},
		{"endpoint без host", func(c *Config) { c.Endpoint = "jaeger" }, ErrTracingEndpointInvalidFormat},
		{"без service name", func(c *Config) { c.ServiceName = "" }, ErrTracingServiceNameRequired},
		{"нулевой timeout", func(c *Config) { c.Timeout = 0 }, ErrTracingTimeoutInvalid},
		{"rate больше 1", func(c *Config) { c.SamplingRate = 1.5 }, ErrTracingSamplingRateInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate_ReportsAllProblems(t *testing.T) {
	cfg := Config{Enabled: true, SamplingRate: -1}
	err := cfg.Validate()
	assert.ErrorIs(t, err, ErrTracingEndpointRequired)
	assert.ErrorIs(t, err, ErrTracingServiceNameRequired)
	assert.ErrorIs(t, err, ErrTracingTimeoutInvalid)
	assert.ErrorIs(t, err, ErrTracingSamplingRateInvalid)
}

func TestExporterURL(t *testing.T) {
	assert.Equal(t, "http://jaeger:4318/v1/traces", exporterURL("http://jaeger:4318"))
	assert.Equal(t, "http://jaeger:4318/v1/traces", exporterURL("http://jaeger:4318/"))
	assert.Equal(t, "https://otel.example.com/custom", exporterURL("https://otel.example.com/custom"))
}

func TestNewTracerProvider_Disabled(t *testing.T) {
	shutdown, err := NewTracerProvider(DefaultConfig(), logging.NewNopLogger())
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
	assert.NotNil(t, Tracer())
}

func TestNewTracerProvider_InvalidConfig(t *testing.T) {
	_, err := NewTracerProvider(Config{Enabled: true}, logging.NewNopLogger())
	assert.ErrorIs(t, err, ErrTracingEndpointRequired)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, ServiceName, cfg.ServiceName)
	assert.NoError(t, cfg.Validate())
}
