package di

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Kargones/profillog/internal/adapter/csvstore"
	"github.com/Kargones/profillog/internal/adapter/jsonstore"
	"github.com/Kargones/profillog/internal/adapter/sqlstore"
	"github.com/Kargones/profillog/internal/adapter/storage"
	"github.com/Kargones/profillog/internal/adapter/textstore"
	"github.com/Kargones/profillog/internal/config"
	"github.com/Kargones/profillog/internal/constants"
	"github.com/Kargones/profillog/internal/entity/logentry"
	"github.com/Kargones/profillog/internal/pkg/alerting"
	"github.com/Kargones/profillog/internal/pkg/apperrors"
	"github.com/Kargones/profillog/internal/pkg/logging"
	"github.com/Kargones/profillog/internal/pkg/metrics"
	"github.com/Kargones/profillog/internal/pkg/output"
	"github.com/Kargones/profillog/internal/pkg/tracing"
	"github.com/Kargones/profillog/internal/pkg/urlutil"
	"github.com/Kargones/profillog/internal/service/profillog"
)

// ProvideLogger создаёт диагностический логгер из секции logging.
// При nil Config используются значения logging.DefaultConfig().
func ProvideLogger(cfg *config.Config) logging.Logger {
	if cfg == nil {
		return logging.NewLogger(logging.DefaultConfig())
	}
	return logging.NewLogger(cfg.Logging.ToLoggingConfig())
}

// ProvideOutputWriter выбирает формат вывода Reader: "json" или "text".
func ProvideOutputWriter(cfg *config.Config) output.Writer {
	if cfg == nil {
		return output.NewTextWriter()
	}
	return output.NewWriter(cfg.Output.Format)
}

// ProvideTraceID генерирует trace ID запуска.
func ProvideTraceID() string {
	return tracing.GenerateTraceID()
}

// ProvideMetricsCollector создаёт Collector. При ошибке конфигурации
// логирует её и возвращает NopCollector: метрики не должны мешать журналу.
func ProvideMetricsCollector(cfg *config.Config, logger logging.Logger) metrics.Collector {
	if cfg == nil {
		return metrics.NewNopCollector()
	}
	collector, err := metrics.NewCollector(cfg.Metrics.ToMetricsConfig(), logger)
	if err != nil {
		logger.Error("ошибка создания MetricsCollector, используется NopCollector", "error", err.Error())
		return metrics.NewNopCollector()
	}
	return collector
}

// ProvideTracerProvider инициализирует OTel. При ошибке возвращает no-op shutdown.
func ProvideTracerProvider(cfg *config.Config, logger logging.Logger) tracing.ShutdownFunc {
	nop := func(context.Context) error { return nil }
	if cfg == nil {
		return nop
	}
	tracingCfg := cfg.Tracing.ToTracingConfig()
	tracingCfg.Version = constants.Version

	shutdown, err := tracing.NewTracerProvider(tracingCfg, logger)
	if err != nil {
		logger.Error("ошибка инициализации tracing, используется nop provider", "error", err.Error())
		return nop
	}
	return shutdown
}

// ProvideAlerter создаёт Alerter. При ошибке конфигурации логирует её
// и возвращает NopAlerter.
func ProvideAlerter(cfg *config.Config, logger logging.Logger) alerting.Alerter {
	if cfg == nil {
		return alerting.NewNopAlerter()
	}
	alerter, err := alerting.NewAlerter(cfg.Alerting.ToAlertingConfig(), logger)
	if err != nil {
		logger.Error("ошибка создания Alerter, используется NopAlerter", "error", err.Error())
		return alerting.NewNopAlerter()
	}
	return alerter
}

// Stores — открытые хранилища в порядке csv, json, sql, text.
type Stores struct {
	names    []string
	adapters []storage.Adapter
}

// Adapters возвращает хранилища в порядке рассылки.
func (s *Stores) Adapters() []storage.Adapter {
	return append([]storage.Adapter(nil), s.adapters...)
}

// Names возвращает имена хранилищ в том же порядке.
func (s *Stores) Names() []string {
	return append([]string(nil), s.names...)
}

// Get возвращает хранилище по имени из конфигурации.
func (s *Stores) Get(name string) (storage.Adapter, bool) {
	for i, n := range s.names {
		if n == name {
			return s.adapters[i], true
		}
	}
	return nil, false
}

// Close закрывает хранилища, владеющие ресурсами (io.Closer).
func (s *Stores) Close() error {
	var errs []error
	for i, a := range s.adapters {
		if c, ok := a.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", s.names[i], err))
			}
		}
	}
	return errors.Join(errs...)
}

func (s *Stores) add(name string, a storage.Adapter) {
	s.names = append(s.names, name)
	s.adapters = append(s.adapters, a)
}

// ProvideStores открывает включённые хранилища; отсутствующие файлы и таблицы создаются.
// При ошибке уже открытые хранилища закрываются.
func ProvideStores(ctx context.Context, cfg *config.Config, logger logging.Logger) (*Stores, func(), error) {
	if cfg == nil {
		return nil, nil, apperrors.NewAppError(apperrors.ErrConfigValidate, "конфигурация не задана", nil)
	}
	st := cfg.Storage
	stores := &Stores{}
	fail := func(err error) (*Stores, func(), error) {
		if closeErr := stores.Close(); closeErr != nil {
			logger.Warn("ошибка закрытия хранилищ", "error", closeErr.Error())
		}
		return nil, nil, err
	}

	if st.CSV.Enabled {
		s, err := csvstore.New(st.CSV.Path)
		if err != nil {
			return fail(err)
		}
		stores.add(config.SourceCSV, s)
		logger.Debug("хранилище открыто", "adapter", config.SourceCSV, "path", st.CSV.Path)
	}
	if st.JSON.Enabled {
		s, err := jsonstore.New(st.JSON.Path)
		if err != nil {
			return fail(err)
		}
		stores.add(config.SourceJSON, s)
		logger.Debug("хранилище открыто", "adapter", config.SourceJSON, "path", st.JSON.Path)
	}
	if st.SQL.Enabled {
		s, err := sqlstore.New(ctx, st.SQL.ToOptions())
		if err != nil {
			return fail(err)
		}
		stores.add(config.SourceSQL, s)
		logger.Debug("хранилище открыто",
			"adapter", config.SourceSQL,
			"driver", s.Driver(),
			"dsn", urlutil.MaskDSN(st.SQL.DSN),
		)
	}
	if st.Text.Enabled {
		s, err := textstore.New(st.Text.Path)
		if err != nil {
			return fail(err)
		}
		stores.add(config.SourceText, s)
		logger.Debug("хранилище открыто", "adapter", config.SourceText, "path", st.Text.Path)
	}

	cleanup := func() {
		if err := stores.Close(); err != nil {
			logger.Warn("ошибка закрытия хранилищ", "error", err.Error())
		}
	}
	return stores, cleanup, nil
}

// ProvideJournal создаёт Logger над всеми открытыми хранилищами
// с порогом из конфигурации.
func ProvideJournal(cfg *config.Config, stores *Stores, logger logging.Logger, collector metrics.Collector, alerter alerting.Alerter) (*profillog.Logger, error) {
	threshold, err := logentry.ParseSeverity(cfg.Threshold)
	if err != nil {
		return nil, err
	}
	return profillog.New(stores.Adapters(),
		profillog.WithThreshold(threshold),
		profillog.WithLogger(logger),
		profillog.WithMetrics(collector),
		profillog.WithAlerter(alerter),
	), nil
}

// ProvideReader создаёт Reader над хранилищем readerSource.
func ProvideReader(cfg *config.Config, stores *Stores, writer output.Writer, logger logging.Logger, collector metrics.Collector) (*profillog.Reader, error) {
	adapter, ok := stores.Get(cfg.ReaderSource)
	if !ok {
		return nil, apperrors.NewAppError(apperrors.ErrConfigValidate,
			fmt.Sprintf("readerSource %q не открыт, доступны %v", cfg.ReaderSource, stores.Names()), nil)
	}
	return profillog.NewReader(adapter,
		profillog.WithOutput(writer),
		profillog.WithSummary(cfg.Output.Summary),
		profillog.WithLogger(logger),
		profillog.WithMetrics(collector),
	), nil
}
