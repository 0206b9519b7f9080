// Package tracing связывает операции журнала общим trace ID
// и экспортирует span-ы через OpenTelemetry.
//
// Trace ID — 32 hex символа (16 байт), совместимо с W3C Trace Context:
//
//	ctx = tracing.WithTraceID(ctx, tracing.GenerateTraceID())
//	logger.With("trace_id", tracing.TraceIDFromContext(ctx)).Info("запрос выполнен")
package tracing

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync/atomic"
	"time"
)

var fallbackCounter atomic.Uint64

// GenerateTraceID возвращает случайный trace ID из crypto/rand.
// Если crypto/rand недоступен, ID собирается из времени и счётчика.
func GenerateTraceID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return fallbackTraceID()
	}
	return hex.EncodeToString(b)
}

// fallbackTraceID: %016x от uint64 всегда даёт 16 символов, итого 32.
func fallbackTraceID() string {
	return fmt.Sprintf("%016x%016x", uint64(time.Now().UnixNano()), fallbackCounter.Add(1))
}

type traceIDKey struct{}

// WithTraceID возвращает ctx с trace ID; прежнее значение перезаписывается.
func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, id)
}

// TraceIDFromContext возвращает trace ID из ctx или пустую строку.
func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(traceIDKey{}).(string)
	return id
}

// EnsureTraceID возвращает ctx, в котором гарантированно есть trace ID.
func EnsureTraceID(ctx context.Context) (context.Context, string) {
	if id := TraceIDFromContext(ctx); id != "" {
		return ctx, id
	}
	id := GenerateTraceID()
	return WithTraceID(ctx, id), id
}
