package di

import (
	"github.com/Kargones/profillog/internal/config"
	"github.com/Kargones/profillog/internal/pkg/alerting"
	"github.com/Kargones/profillog/internal/pkg/logging"
	"github.com/Kargones/profillog/internal/pkg/metrics"
	"github.com/Kargones/profillog/internal/pkg/output"
	"github.com/Kargones/profillog/internal/pkg/tracing"
	"github.com/Kargones/profillog/internal/service/profillog"
)

// App содержит собранные зависимости приложения.
// Создаётся через InitializeApp; cleanup, возвращённый вместе с App,
// закрывает хранилища.
type App struct {
	Config *config.Config

	// Logger — диагностический логгер (stderr или файл).
	Logger logging.Logger

	// OutputWriter форматирует результаты Reader.
	OutputWriter output.Writer

	// TraceID коррелирует логи одного запуска.
	TraceID string

	MetricsCollector metrics.Collector

	// Alerter уведомляет о важных записях и отказах хранилищ.
	Alerter alerting.Alerter

	// TracerShutdown отправляет буферизированные span-ы.
	TracerShutdown tracing.ShutdownFunc

	// Stores — открытые хранилища из конфигурации.
	Stores *Stores

	// Journal пишет записи во все включённые хранилища.
	Journal *profillog.Logger

	// Reader читает хранилище, заданное в readerSource.
	Reader *profillog.Reader
}
