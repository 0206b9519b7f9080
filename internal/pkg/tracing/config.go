package tracing

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Ошибки Config.Validate.
var (
	ErrTracingEndpointRequired      = errors.New("tracing: при включённом трейсинге нужен endpoint")
	ErrTracingEndpointInvalidFormat = errors.New("tracing: endpoint должен быть URL с host, например http://jaeger:4318")
	ErrTracingServiceNameRequired   = errors.New("tracing: не задано имя сервиса")
	ErrTracingTimeoutInvalid        = errors.New("tracing: timeout должен быть больше нуля")
	ErrTracingSamplingRateInvalid   = errors.New("tracing: доля сэмплирования вне [0, 1]")
)

// Config описывает экспорт спанов журнала по OTLP/HTTP.
type Config struct {
	Enabled     bool
	Endpoint    string // "http://jaeger:4318"
	ServiceName string
	Version     string
	Environment string
	// Insecure отключает TLS у экспортёра.
	Insecure     bool
	Timeout      time.Duration
	SamplingRate float64
}

// Validate собирает все ошибки конфигурации через errors.Join.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	var errs []error
	if c.Endpoint == "" {
		errs = append(errs, ErrTracingEndpointRequired)
	} else if u, err := url.Parse(c.Endpoint); err != nil || u.Host == "" {
		errs = append(errs, ErrTracingEndpointInvalidFormat)
	}
	if c.ServiceName == "" {
		errs = append(errs, ErrTracingServiceNameRequired)
	}
	if c.Timeout <= 0 {
		errs = append(errs, ErrTracingTimeoutInvalid)
	}
	if c.SamplingRate < 0 || c.SamplingRate > 1 {
		errs = append(errs, fmt.Errorf("%w: %g", ErrTracingSamplingRateInvalid, c.SamplingRate))
	}
	return errors.Join(errs...)
}

// DefaultConfig: трейсинг выключен, сэмплируется всё.
func DefaultConfig() Config {
	return Config{
		ServiceName:  ServiceName,
		Environment:  "development",
		Timeout:      5 * time.Second,
		SamplingRate: 1,
	}
}
