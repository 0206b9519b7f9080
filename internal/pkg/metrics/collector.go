// Package metrics собирает счётчики работы журнала и отправляет их
// в Prometheus Pushgateway.
//
// При отключённых метриках используется NopCollector.
package metrics

import (
	"context"
	"errors"
	"time"
)

// Collector определяет интерфейс сбора метрик журнала.
type Collector interface {
	// RecordAppend учитывает одну попытку записи в backend.
	RecordAppend(adapter, level string, success bool)

	// RecordFiltered учитывает запись, отсечённую порогом.
	RecordFiltered(level string)

	// RecordQuery учитывает выполнение запроса Reader.
	// matched — число записей в результате.
	RecordQuery(query string, duration time.Duration, matched int, success bool)

	// Push отправляет метрики в Pushgateway.
	// Ошибки отправки только логируются, метод всегда возвращает nil.
	Push(ctx context.Context) error
}

var (
	// ErrPushgatewayURLRequired — метрики включены, но URL не задан.
	ErrPushgatewayURLRequired = errors.New("pushgateway URL is required when metrics enabled")
	// ErrPushgatewayURLInvalid — URL Pushgateway не разбирается.
	ErrPushgatewayURLInvalid = errors.New("pushgateway URL has invalid format")
	// ErrJobNameRequired — не задано имя job.
	ErrJobNameRequired = errors.New("job name is required")
	// ErrInvalidTimeout — таймаут не положителен.
	ErrInvalidTimeout = errors.New("timeout must be positive")
)
