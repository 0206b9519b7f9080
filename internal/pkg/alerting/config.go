package alerting

import (
	"errors"
	"time"

	"github.com/Kargones/profillog/internal/entity/logentry"
)

// Значения по умолчанию.
const (
	DefaultMinLevel        = "CRITICAL"
	DefaultRateLimitWindow = 5 * time.Minute
	DefaultTimeout         = 10 * time.Second
)

// Ошибки валидации конфигурации.
var (
	ErrAlertingURLsRequired = errors.New("alerting: требуется хотя бы один URL сервиса")
	ErrAlertingMinLevel     = errors.New("alerting: недопустимый minLevel")
	ErrAlertingTimeout      = errors.New("alerting: timeout должен быть положительным")
)

// Config — настройки отправки алертов.
type Config struct {
	Enabled bool

	// URLs — адреса сервисов shoutrrr, например
	// "telegram://token@telegram?chats=@channel" или "generic://host/hook".
	URLs []string

	// MinLevel — минимальный уровень записи, о которой отправляется алерт.
	MinLevel string

	// RateLimitWindow — минимальный интервал между алертами с одинаковым Key.
	RateLimitWindow time.Duration

	Timeout time.Duration
}

// DefaultConfig возвращает выключенный алертинг с порогом CRITICAL.
func DefaultConfig() Config {
	return Config{
		MinLevel:        DefaultMinLevel,
		RateLimitWindow: DefaultRateLimitWindow,
		Timeout:         DefaultTimeout,
	}
}

// Validate проверяет конфигурацию. Выключенный алертинг валиден всегда.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if len(c.URLs) == 0 {
		return ErrAlertingURLsRequired
	}
	if _, err := logentry.ParseSeverity(c.MinLevel); err != nil {
		return errors.Join(ErrAlertingMinLevel, err)
	}
	if c.Timeout <= 0 {
		return ErrAlertingTimeout
	}
	return nil
}
