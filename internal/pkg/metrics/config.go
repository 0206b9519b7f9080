package metrics

import (
	"errors"
	"net/url"
	"time"
)

// Значения по умолчанию для Pushgateway.
const (
	DefaultJobName = "profillog"
	DefaultTimeout = 10 * time.Second
)

// Config описывает отправку метрик журнала в Pushgateway.
type Config struct {
	Enabled        bool
	PushgatewayURL string // "http://pushgateway:9091"
	JobName        string
	Timeout        time.Duration
	// InstanceLabel по умолчанию равен hostname.
	InstanceLabel string
}

// Validate возвращает все найденные ошибки сразу, объединённые errors.Join.
// Для выключенных метрик проверок нет.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	var errs []error
	switch u, err := url.Parse(c.PushgatewayURL); {
	case c.PushgatewayURL == "":
		errs = append(errs, ErrPushgatewayURLRequired)
	case err != nil, u.Scheme == "", u.Host == "":
		errs = append(errs, ErrPushgatewayURLInvalid)
	}
	if c.JobName == "" {
		errs = append(errs, ErrJobNameRequired)
	}
	if c.Timeout <= 0 {
		errs = append(errs, ErrInvalidTimeout)
	}
	return errors.Join(errs...)
}

// DefaultConfig: метрики выключены.
func DefaultConfig() Config {
	return Config{JobName: DefaultJobName, Timeout: DefaultTimeout}
}
