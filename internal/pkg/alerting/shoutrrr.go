package alerting

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/nicholas-fedor/shoutrrr"
	"github.com/nicholas-fedor/shoutrrr/pkg/types"

	"github.com/Kargones/profillog/internal/entity/logentry"
	"github.com/Kargones/profillog/internal/pkg/dateutil"
	"github.com/Kargones/profillog/internal/pkg/logging"
	"github.com/Kargones/profillog/internal/pkg/urlutil"
)

// sender — часть router.ServiceRouter, нужная для отправки.
type sender interface {
	Send(message string, params *types.Params) []error
}

// ShoutrrrAlerter рассылает алерты во все сервисы из Config.URLs.
type ShoutrrrAlerter struct {
	sender   sender
	hosts    []string
	minLevel logentry.Severity
	limiter  *RateLimiter
	logger   logging.Logger
}

// NewShoutrrrAlerter разбирает URL сервисов. Ошибка разбора не содержит
// токенов из URL.
func NewShoutrrrAlerter(cfg Config, logger logging.Logger) (*ShoutrrrAlerter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	router, err := shoutrrr.CreateSender(cfg.URLs...)
	if err != nil {
		return nil, fmt.Errorf("alerting: некорректный URL сервиса: %s", maskedError(err, cfg.URLs))
	}
	router.Timeout = cfg.Timeout
	router.SetLogger(log.New(io.Discard, "", 0))
	return newShoutrrrAlerter(router, cfg, logger), nil
}

func newShoutrrrAlerter(s sender, cfg Config, logger logging.Logger) *ShoutrrrAlerter {
	minLevel, err := logentry.ParseSeverity(cfg.MinLevel)
	if err != nil {
		minLevel = logentry.Critical
	}
	window := cfg.RateLimitWindow
	if window <= 0 {
		window = DefaultRateLimitWindow
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	hosts := make([]string, len(cfg.URLs))
	for i, u := range cfg.URLs {
		hosts[i] = urlutil.MaskURL(u)
	}
	return &ShoutrrrAlerter{
		sender:   s,
		hosts:    hosts,
		minLevel: minLevel,
		limiter:  NewRateLimiter(window, nil),
		logger:   logger,
	}
}

// Send отправляет алерт, если его уровень не ниже minLevel и Key не
// отправлялся в пределах RateLimitWindow.
func (a *ShoutrrrAlerter) Send(_ context.Context, alert Alert) error {
	if !a.minLevel.Admits(alert.Level) {
		return nil
	}
	if !a.limiter.Allow(alert.Key) {
		a.logger.Debug("алерт подавлен rate limiter", "key", alert.Key)
		return nil
	}

	params := types.Params{}
	params.SetTitle(title(alert))

	var failed []string
	for i, err := range a.sender.Send(body(alert), &params) {
		if err == nil {
			continue
		}
		service := fmt.Sprintf("#%d", i)
		if i < len(a.hosts) {
			service = a.hosts[i]
		}
		failed = append(failed, service)
		a.logger.Warn("не удалось отправить алерт",
			"key", alert.Key,
			"service", service,
			"error", maskedError(err, nil),
		)
	}
	if len(failed) == 0 {
		a.logger.Debug("алерт отправлен", "key", alert.Key, "services", len(a.hosts))
	}
	return nil
}

func title(alert Alert) string {
	if alert.Title != "" {
		return alert.Title
	}
	return "profillog: " + alert.Level.String()
}

func body(alert Alert) string {
	var b strings.Builder
	b.WriteString(alert.Message)
	if !alert.Timestamp.IsZero() {
		b.WriteString("\nВремя: ")
		b.WriteString(dateutil.Format(alert.Timestamp))
	}
	if alert.TraceID != "" {
		b.WriteString("\nTrace ID: ")
		b.WriteString(alert.TraceID)
	}
	return b.String()
}

// maskedError убирает из текста ошибки исходные URL сервисов.
func maskedError(err error, urls []string) string {
	msg := err.Error()
	for _, u := range urls {
		if u != "" {
			msg = strings.ReplaceAll(msg, u, urlutil.MaskURL(u))
		}
	}
	return msg
}
