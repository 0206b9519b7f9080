// Package profillog реализует журнал с порогом важности и несколькими хранилищами.
//
// Logger принимает записи, отсекает всё ниже текущего порога и дописывает
// остальные во все хранилища по очереди. Reader читает одно хранилище и
// выполняет запросы: поиск по подстроке, по регулярному выражению,
// группировка по уровню и по месяцу.
package profillog

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Kargones/profillog/internal/adapter/storage"
	"github.com/Kargones/profillog/internal/entity/logentry"
	"github.com/Kargones/profillog/internal/pkg/alerting"
	"github.com/Kargones/profillog/internal/pkg/apperrors"
	"github.com/Kargones/profillog/internal/pkg/tracing"
)

// Logger — журнал с порогом важности.
// Набор хранилищ фиксируется при создании; порог можно менять.
type Logger struct {
	adapters []storage.Adapter
	opts     options

	mu        sync.RWMutex
	threshold logentry.Severity
}

// New создаёт Logger, пишущий во все adapters в заданном порядке.
// Порог по умолчанию DEBUG.
func New(adapters []storage.Adapter, opts ...Option) *Logger {
	o := applyOptions(opts)
	return &Logger{
		adapters:  append([]storage.Adapter(nil), adapters...),
		opts:      o,
		threshold: o.threshold,
	}
}

// Threshold возвращает текущий порог.
func (l *Logger) Threshold() logentry.Severity {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.threshold
}

// SetThreshold устанавливает порог по имени уровня ("WARNING").
// Неизвестное имя оставляет порог прежним: возвращается LEVEL.INVALID_SEVERITY
// и пишется предупреждение, работа журнала продолжается.
func (l *Logger) SetThreshold(name string) error {
	level, err := logentry.ParseSeverity(name)
	if err != nil {
		l.opts.logger.Warn("недопустимый уровень журнала, порог не изменён",
			"level", name,
			"threshold", l.Threshold().String(),
		)
		return err
	}

	l.mu.Lock()
	l.threshold = level
	l.mu.Unlock()

	l.opts.logger.Debug("порог журнала изменён", "threshold", level.String())
	return nil
}

// Adapters возвращает копию списка хранилищ.
func (l *Logger) Adapters() []storage.Adapter {
	return append([]storage.Adapter(nil), l.adapters...)
}

// Log записывает message с уровнем level.
//
// Запись ниже порога молча отбрасывается. Иначе message проверяется
// (только string, иначе LOG.INVALID_MESSAGE_TYPE), получает текущее время
// и дописывается в каждое хранилище. Первая ошибка хранилища прерывает
// рассылку с кодом ADAPTER.APPEND_FAILED; уже сделанные записи не откатываются.
func (l *Logger) Log(ctx context.Context, level logentry.Severity, message any) error {
	if !level.Valid() {
		return apperrors.NewAppError(apperrors.ErrInvalidSeverity,
			fmt.Sprintf("недопустимый уровень %d", int(level)), nil)
	}
	if !l.Threshold().Admits(level) {
		l.opts.metrics.RecordFiltered(level.String())
		return nil
	}

	ctx, span := l.opts.tracer.Start(ctx, "profillog.Log",
		trace.WithAttributes(
			attribute.String("profillog.level", level.String()),
			attribute.Int("profillog.adapters", len(l.adapters)),
		))
	defer span.End()

	log := l.opts.logger
	if traceID := tracing.TraceIDFromContext(ctx); traceID != "" {
		log = log.With("trace_id", traceID)
	}

	entry, err := logentry.New(l.opts.clock(), level, message)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, apperrors.CodeOf(err))
		return err
	}

	rec := storage.NewRecord(entry)
	for i, adapter := range l.adapters {
		name := storage.NameOf(adapter)
		if err := adapter.Append(ctx, rec); err != nil {
			l.opts.metrics.RecordAppend(name, rec.Level, false)
			log.Error("не удалось записать в хранилище",
				"adapter", name,
				"written", i,
				"error", err.Error(),
			)
			appErr := apperrors.NewAppError(apperrors.ErrAdapterAppend,
				fmt.Sprintf("запись прервана на хранилище %s (%d из %d)", name, i+1, len(l.adapters)), err)
			span.RecordError(appErr)
			span.SetStatus(codes.Error, appErr.Code)
			_ = l.opts.alerter.Send(ctx, alerting.Alert{
				Key:       appErr.Code + ":" + name,
				Level:     logentry.Critical,
				Title:     "profillog: отказ хранилища " + name,
				Message:   appErr.Error(),
				TraceID:   tracing.TraceIDFromContext(ctx),
				Timestamp: entry.Timestamp(),
			})
			return appErr
		}
		l.opts.metrics.RecordAppend(name, rec.Level, true)
	}

	log.Debug("запись добавлена", "level", rec.Level, "date", rec.Date)
	_ = l.opts.alerter.Send(ctx, alerting.Alert{
		Key:       "entry." + rec.Level,
		Level:     level,
		Message:   entry.String(),
		TraceID:   tracing.TraceIDFromContext(ctx),
		Timestamp: entry.Timestamp(),
	})
	return nil
}

// Debug записывает сообщение уровня DEBUG.
func (l *Logger) Debug(ctx context.Context, message any) error {
	return l.Log(ctx, logentry.Debug, message)
}

// Info записывает сообщение уровня INFO.
func (l *Logger) Info(ctx context.Context, message any) error {
	return l.Log(ctx, logentry.Info, message)
}

// Warning записывает сообщение уровня WARNING.
func (l *Logger) Warning(ctx context.Context, message any) error {
	return l.Log(ctx, logentry.Warning, message)
}

// Error записывает сообщение уровня ERROR.
func (l *Logger) Error(ctx context.Context, message any) error {
	return l.Log(ctx, logentry.Error, message)
}

// Critical записывает сообщение уровня CRITICAL. Порог его не отсекает.
func (l *Logger) Critical(ctx context.Context, message any) error {
	return l.Log(ctx, logentry.Critical, message)
}
