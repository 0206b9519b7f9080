package alerting

import "github.com/Kargones/profillog/internal/pkg/logging"

// NewAlerter возвращает NopAlerter при выключенном алертинге
// и ShoutrrrAlerter при включённом.
func NewAlerter(cfg Config, logger logging.Logger) (Alerter, error) {
	if !cfg.Enabled {
		return NewNopAlerter(), nil
	}
	return NewShoutrrrAlerter(cfg, logger)
}
