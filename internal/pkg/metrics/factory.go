package metrics

import "github.com/Kargones/profillog/internal/pkg/logging"

// NewCollector возвращает NopCollector при выключенных метриках
// и PrometheusCollector при включённых.
func NewCollector(config Config, logger logging.Logger) (Collector, error) {
	if !config.Enabled {
		return NewNopCollector(), nil
	}
	return NewPrometheusCollector(config, logger)
}
