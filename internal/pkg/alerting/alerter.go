// Package alerting отправляет уведомления о важных записях журнала и
// об отказах хранилищ через shoutrrr (telegram, smtp, slack, generic webhook
// и другие сервисы, задаваемые URL).
package alerting

import (
	"context"
	"time"

	"github.com/Kargones/profillog/internal/entity/logentry"
)

// Alert — данные одного уведомления.
type Alert struct {
	// Key идентифицирует повторяющиеся алерты для rate limiting,
	// например "entry.CRITICAL" или "ADAPTER.APPEND_FAILED:sql".
	Key string

	// Level — уровень важности; алерты ниже Config.MinLevel не отправляются.
	Level logentry.Severity

	Title   string
	Message string

	// TraceID — идентификатор трассировки для корреляции с логами.
	TraceID string

	Timestamp time.Time
}

// Alerter отправляет алерты.
//
// Send всегда возвращает nil: ошибки доставки логируются, но не должны
// прерывать запись в журнал.
type Alerter interface {
	Send(ctx context.Context, alert Alert) error
}

// NopAlerter игнорирует все алерты. Используется при alerting.enabled=false.
type NopAlerter struct{}

// NewNopAlerter создаёт NopAlerter.
func NewNopAlerter() Alerter { return NopAlerter{} }

// Send ничего не делает.
func (NopAlerter) Send(context.Context, Alert) error { return nil }
