package profillog

import (
	"io"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/Kargones/profillog/internal/entity/logentry"
	"github.com/Kargones/profillog/internal/pkg/alerting"
	"github.com/Kargones/profillog/internal/pkg/logging"
	"github.com/Kargones/profillog/internal/pkg/metrics"
	"github.com/Kargones/profillog/internal/pkg/output"
	"github.com/Kargones/profillog/internal/pkg/tracing"
)

// options — общие настройки Logger и Reader.
// Опции, не относящиеся к получателю, игнорируются.
type options struct {
	clock     func() time.Time
	threshold logentry.Severity
	logger    logging.Logger
	metrics   metrics.Collector
	tracer    trace.Tracer
	alerter   alerting.Alerter

	writer  output.Writer
	sink    io.Writer
	summary bool
}

// Option настраивает Logger или Reader.
type Option func(*options)

func defaultOptions() options {
	return options{
		clock:     time.Now,
		threshold: logentry.Debug,
		logger:    logging.NewNopLogger(),
		metrics:   metrics.NewNopCollector(),
		tracer:    tracing.Tracer(),
		alerter:   alerting.NewNopAlerter(),
		writer:    output.NewTextWriter(),
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithClock задаёт источник времени записей (Logger).
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithThreshold задаёт начальный порог (Logger). Недопустимое значение игнорируется.
func WithThreshold(level logentry.Severity) Option {
	return func(o *options) {
		if level.Valid() {
			o.threshold = level
		}
	}
}

// WithLogger задаёт диагностический логгер.
func WithLogger(l logging.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics задаёт коллектор метрик.
func WithMetrics(c metrics.Collector) Option {
	return func(o *options) {
		if c != nil {
			o.metrics = c
		}
	}
}

// WithTracer задаёт tracer для span-ов операций.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) {
		if t != nil {
			o.tracer = t
		}
	}
}

// WithOutput задаёт формат вывода результатов (Reader).
func WithOutput(w output.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.writer = w
		}
	}
}

// WithSink задаёт приёмник вывода (Reader). По умолчанию os.Stdout;
// io.Discard отключает вывод.
func WithSink(w io.Writer) Option {
	return func(o *options) { o.sink = w }
}

// WithSummary добавляет к выводу Reader сводку: сколько записей просмотрено и найдено.
func WithSummary(enabled bool) Option {
	return func(o *options) { o.summary = enabled }
}

// WithAlerter задаёт получателя алертов о записях и отказах хранилищ (Logger).
// Уровень, с которого отправляются алерты, определяет сам Alerter.
func WithAlerter(a alerting.Alerter) Option {
	return func(o *options) {
		if a != nil {
			o.alerter = a
		}
	}
}
