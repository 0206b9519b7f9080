package metrics

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/Kargones/profillog/internal/pkg/logging"
	"github.com/Kargones/profillog/internal/pkg/urlutil"
)

const namespace = "profillog"

// PrometheusCollector реализует Collector на собственном prometheus.Registry.
// Метрики отправляются в Pushgateway методом Push.
type PrometheusCollector struct {
	config   Config
	logger   logging.Logger
	registry *prometheus.Registry
	instance string

	appended      *prometheus.CounterVec
	appendErrors  *prometheus.CounterVec
	filtered      *prometheus.CounterVec
	queryDuration *prometheus.HistogramVec
	queryMatched  *prometheus.HistogramVec
}

// NewPrometheusCollector регистрирует метрики:
//   - profillog_entries_appended_total{adapter,level}
//   - profillog_append_errors_total{adapter}
//   - profillog_entries_filtered_total{level}
//   - profillog_query_duration_seconds{query,status}
//   - profillog_query_matched_entries{query}
func NewPrometheusCollector(config Config, logger logging.Logger) (*PrometheusCollector, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	instance := config.InstanceLabel
	if instance == "" {
		hostname, err := os.Hostname()
		if err != nil {
			logger.Warn("не удалось получить hostname для label instance", "error", err.Error())
			hostname = "unknown"
		}
		instance = hostname
	}

	c := &PrometheusCollector{
		config:   config,
		logger:   logger,
		registry: prometheus.NewRegistry(),
		instance: instance,
		appended: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_appended_total",
			Help:      "Entries successfully written to a storage adapter",
		}, []string{"adapter", "level"}),
		appendErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "append_errors_total",
			Help:      "Failed writes to a storage adapter",
		}, []string{"adapter"}),
		filtered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_filtered_total",
			Help:      "Entries dropped because their level is below the threshold",
		}, []string{"level"}),
		queryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "Duration of reader queries in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"query", "status"}),
		queryMatched: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_matched_entries",
			Help:      "Number of entries returned by reader queries",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}, []string{"query"}),
	}

	for _, m := range []prometheus.Collector{c.appended, c.appendErrors, c.filtered, c.queryDuration, c.queryMatched} {
		if err := c.registry.Register(m); err != nil {
			return nil, fmt.Errorf("ошибка регистрации метрики: %w", err)
		}
	}
	return c, nil
}

// maxLabelLength ограничивает длину значения label.
const maxLabelLength = 64

// sanitizeLabel заменяет контрольные символы и обрезает значение по рунам.
func sanitizeLabel(value string) string {
	clean := strings.Map(func(r rune) rune {
		if r < 0x20 {
			return '_'
		}
		return r
	}, value)
	if runes := []rune(clean); len(runes) > maxLabelLength {
		return string(runes[:maxLabelLength])
	}
	return clean
}

// RecordAppend увеличивает счётчик записей или ошибок backend-а.
func (c *PrometheusCollector) RecordAppend(adapter, level string, success bool) {
	adapter = sanitizeLabel(adapter)
	if success {
		c.appended.WithLabelValues(adapter, sanitizeLabel(level)).Inc()
		return
	}
	c.appendErrors.WithLabelValues(adapter).Inc()
}

// RecordFiltered увеличивает счётчик отсечённых порогом записей.
func (c *PrometheusCollector) RecordFiltered(level string) {
	c.filtered.WithLabelValues(sanitizeLabel(level)).Inc()
}

// RecordQuery записывает длительность запроса и размер результата.
// Размер учитывается только для успешных запросов.
func (c *PrometheusCollector) RecordQuery(query string, duration time.Duration, matched int, success bool) {
	query = sanitizeLabel(query)
	status := "success"
	if !success {
		status = "error"
	}
	c.queryDuration.WithLabelValues(query, status).Observe(duration.Seconds())
	if success {
		c.queryMatched.WithLabelValues(query).Observe(float64(matched))
	}
}

// Push отправляет метрики в Pushgateway с таймаутом из Config.
// Ошибка отправки логируется и не возвращается.
func (c *PrometheusCollector) Push(ctx context.Context) error {
	if ctx.Err() != nil {
		c.logger.Debug("metrics push отменён")
		return nil
	}

	pushCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	pusher := push.New(c.config.PushgatewayURL, c.config.JobName).
		Gatherer(c.registry).
		Grouping("instance", c.instance)
	if err := pusher.PushContext(pushCtx); err != nil {
		c.logger.Error("ошибка отправки метрик в Pushgateway",
			"error", err.Error(),
			"url", urlutil.MaskURL(c.config.PushgatewayURL),
			"job", c.config.JobName,
		)
		return nil
	}

	c.logger.Info("метрики отправлены в Pushgateway",
		"url", urlutil.MaskURL(c.config.PushgatewayURL),
		"job", c.config.JobName,
		"instance", c.instance,
	)
	return nil
}

// Registry возвращает registry коллектора. Используется в тестах.
func (c *PrometheusCollector) Registry() *prometheus.Registry {
	return c.registry
}
