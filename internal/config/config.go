// Package config загружает настройки profillog из YAML файла и переменных окружения.
//
// Порядок применения: значения по умолчанию → YAML файл (если указан) → переменные PL_*.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"

	"github.com/Kargones/profillog/internal/entity/logentry"
	"github.com/Kargones/profillog/internal/pkg/apperrors"
	"github.com/Kargones/profillog/internal/pkg/output"
)

// EnvConfigPath — переменная окружения с путём к YAML файлу.
const EnvConfigPath = "PL_CONFIG"

// Config — корневая конфигурация.
type Config struct {
	// Threshold — начальный порог Logger: DEBUG, INFO, WARNING, ERROR, CRITICAL.
	Threshold string `yaml:"threshold" env:"PL_THRESHOLD"`

	// ReaderSource — имя хранилища, из которого читает Reader: csv, json, sql, text.
	ReaderSource string `yaml:"readerSource" env:"PL_READER_SOURCE"`

	Output   OutputConfig   `yaml:"output"`
	Storage  StorageConfig  `yaml:"storage"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Tracing  TracingConfig  `yaml:"tracing"`
	Alerting AlertingConfig `yaml:"alerting"`
}

// OutputConfig задаёт формат вывода результатов Reader.
type OutputConfig struct {
	// Format — "text" или "json".
	Format string `yaml:"format" env:"PL_OUTPUT_FORMAT"`
	// Summary добавляет к результату сводку: просмотрено и найдено записей.
	Summary bool `yaml:"summary" env:"PL_OUTPUT_SUMMARY"`
}

// Default возвращает конфигурацию по умолчанию: все четыре хранилища в ./data,
// порог DEBUG, Reader читает CSV.
func Default() *Config {
	return &Config{
		Threshold:    logentry.Debug.String(),
		ReaderSource: SourceCSV,
		Output:       OutputConfig{Format: output.FormatText},
		Storage:      defaultStorageConfig(),
		Logging:      defaultLoggingConfig(),
		Metrics:      defaultMetricsConfig(),
		Tracing:      defaultTracingConfig(),
		Alerting:     defaultAlertingConfig(),
	}
}

// Load читает конфигурацию. Пустой path означает только значения по умолчанию
// и переменные окружения. Возвращённый Config уже прошёл Validate.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // путь задаёт оператор
		if err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrConfigLoad,
				fmt.Sprintf("не удалось прочитать %s", path), err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrConfigParse,
				fmt.Sprintf("не удалось разобрать %s", path), err)
		}
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigParse,
			"не удалось прочитать переменные окружения", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromEnv вызывает Load с путём из PL_CONFIG.
func LoadFromEnv() (*Config, error) {
	return Load(os.Getenv(EnvConfigPath))
}

// Validate проверяет согласованность настроек.
// Все найденные нарушения собираются в одну ошибку CONFIG.VALIDATION_FAILED.
func (c *Config) Validate() error {
	var errs []error

	if _, err := logentry.ParseSeverity(c.Threshold); err != nil {
		errs = append(errs, fmt.Errorf("threshold: %w", err))
	}
	if !output.ValidFormat(c.Output.Format) {
		errs = append(errs, fmt.Errorf("output.format: неизвестный формат %q, ожидается один из %v", c.Output.Format, output.Formats()))
	}
	errs = append(errs, c.Storage.validate(c.ReaderSource)...)
	errs = append(errs, c.Logging.validate()...)
	metricsCfg := c.Metrics.ToMetricsConfig()
	if err := metricsCfg.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("metrics: %w", err))
	}
	tracingCfg := c.Tracing.ToTracingConfig()
	if err := tracingCfg.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("tracing: %w", err))
	}
	alertCfg := c.Alerting.ToAlertingConfig()
	if err := alertCfg.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("alerting: %w", err))
	}

	if len(errs) == 0 {
		return nil
	}
	return apperrors.NewAppError(apperrors.ErrConfigValidate,
		"некорректная конфигурация", errors.Join(errs...))
}
