package config

import (
	"fmt"
	"time"

	"github.com/Kargones/profillog/internal/pkg/alerting"
	"github.com/Kargones/profillog/internal/pkg/logging"
	"github.com/Kargones/profillog/internal/pkg/metrics"
	"github.com/Kargones/profillog/internal/pkg/tracing"
)

// LoggingConfig — настройки диагностического логгера (stderr или файл с ротацией).
type LoggingConfig struct {
	Level      string `yaml:"level" env:"PL_LOG_LEVEL"`
	Format     string `yaml:"format" env:"PL_LOG_FORMAT"`
	Output     string `yaml:"output" env:"PL_LOG_OUTPUT"`
	FilePath   string `yaml:"filePath" env:"PL_LOG_FILE_PATH"`
	MaxSize    int    `yaml:"maxSize" env:"PL_LOG_MAX_SIZE"`
	MaxBackups int    `yaml:"maxBackups" env:"PL_LOG_MAX_BACKUPS"`
	MaxAge     int    `yaml:"maxAge" env:"PL_LOG_MAX_AGE"`
	Compress   bool   `yaml:"compress" env:"PL_LOG_COMPRESS"`
}

func defaultLoggingConfig() LoggingConfig {
	d := logging.DefaultConfig()
	return LoggingConfig{
		Level:      d.Level,
		Format:     d.Format,
		Output:     d.Output,
		FilePath:   d.FilePath,
		MaxSize:    d.MaxSize,
		MaxBackups: d.MaxBackups,
		MaxAge:     d.MaxAge,
		Compress:   d.Compress,
	}
}

// ToLoggingConfig переводит секцию в logging.Config.
func (c LoggingConfig) ToLoggingConfig() logging.Config {
	return logging.Config{
		Level:      c.Level,
		Format:     c.Format,
		Output:     c.Output,
		FilePath:   c.FilePath,
		MaxSize:    c.MaxSize,
		MaxBackups: c.MaxBackups,
		MaxAge:     c.MaxAge,
		Compress:   c.Compress,
	}
}

func (c LoggingConfig) validate() []error {
	var errs []error
	if !logging.ValidLevel(c.Level) {
		errs = append(errs, fmt.Errorf("logging.level: неизвестный уровень %q", c.Level))
	}
	switch c.Format {
	case logging.FormatJSON, logging.FormatText:
	default:
		errs = append(errs, fmt.Errorf("logging.format: неизвестный формат %q", c.Format))
	}
	return errs
}

// MetricsConfig — отправка метрик в Prometheus Pushgateway.
type MetricsConfig struct {
	Enabled        bool          `yaml:"enabled" env:"PL_METRICS_ENABLED"`
	PushgatewayURL string        `yaml:"pushgatewayUrl" env:"PL_METRICS_PUSHGATEWAY_URL"`
	JobName        string        `yaml:"jobName" env:"PL_METRICS_JOB_NAME"`
	Timeout        time.Duration `yaml:"timeout" env:"PL_METRICS_TIMEOUT"`
	InstanceLabel  string        `yaml:"instanceLabel" env:"PL_METRICS_INSTANCE_LABEL"`
}

func defaultMetricsConfig() MetricsConfig {
	d := metrics.DefaultConfig()
	return MetricsConfig{JobName: d.JobName, Timeout: d.Timeout}
}

// ToMetricsConfig переводит секцию в metrics.Config.
func (c MetricsConfig) ToMetricsConfig() metrics.Config {
	return metrics.Config{
		Enabled:        c.Enabled,
		PushgatewayURL: c.PushgatewayURL,
		JobName:        c.JobName,
		Timeout:        c.Timeout,
		InstanceLabel:  c.InstanceLabel,
	}
}

// TracingConfig — экспорт span-ов по OTLP HTTP.
type TracingConfig struct {
	Enabled      bool          `yaml:"enabled" env:"PL_TRACING_ENABLED"`
	Endpoint     string        `yaml:"endpoint" env:"PL_TRACING_ENDPOINT"`
	ServiceName  string        `yaml:"serviceName" env:"PL_TRACING_SERVICE_NAME"`
	Environment  string        `yaml:"environment" env:"PL_TRACING_ENVIRONMENT"`
	Insecure     bool          `yaml:"insecure" env:"PL_TRACING_INSECURE"`
	Timeout      time.Duration `yaml:"timeout" env:"PL_TRACING_TIMEOUT"`
	SamplingRate float64       `yaml:"samplingRate" env:"PL_TRACING_SAMPLING_RATE"`
}

func defaultTracingConfig() TracingConfig {
	d := tracing.DefaultConfig()
	return TracingConfig{
		ServiceName:  d.ServiceName,
		Environment:  d.Environment,
		Timeout:      d.Timeout,
		SamplingRate: d.SamplingRate,
	}
}

// ToTracingConfig переводит секцию в tracing.Config.
func (c TracingConfig) ToTracingConfig() tracing.Config {
	return tracing.Config{
		Enabled:      c.Enabled,
		Endpoint:     c.Endpoint,
		ServiceName:  c.ServiceName,
		Environment:  c.Environment,
		Insecure:     c.Insecure,
		Timeout:      c.Timeout,
		SamplingRate: c.SamplingRate,
	}
}

// AlertingConfig — уведомления о важных записях и отказах хранилищ через shoutrrr.
type AlertingConfig struct {
	Enabled bool `yaml:"enabled" env:"PL_ALERT_ENABLED"`
	// URLs — адреса сервисов shoutrrr; в переменной окружения через запятую.
	URLs            []string      `yaml:"urls" env:"PL_ALERT_URLS" env-separator:","`
	MinLevel        string        `yaml:"minLevel" env:"PL_ALERT_MIN_LEVEL"`
	RateLimitWindow time.Duration `yaml:"rateLimitWindow" env:"PL_ALERT_RATE_LIMIT_WINDOW"`
	Timeout         time.Duration `yaml:"timeout" env:"PL_ALERT_TIMEOUT"`
}

func defaultAlertingConfig() AlertingConfig {
	d := alerting.DefaultConfig()
	return AlertingConfig{
		MinLevel:        d.MinLevel,
		RateLimitWindow: d.RateLimitWindow,
		Timeout:         d.Timeout,
	}
}

// ToAlertingConfig переводит секцию в alerting.Config.
func (c AlertingConfig) ToAlertingConfig() alerting.Config {
	return alerting.Config{
		Enabled:         c.Enabled,
		URLs:            append([]string(nil), c.URLs...),
		MinLevel:        c.MinLevel,
		RateLimitWindow: c.RateLimitWindow,
		Timeout:         c.Timeout,
	}
}
