// Package logging — диагностический логгер самой библиотеки.
//
// Не путать с журналом profillog: сюда пишутся события работы
// (добавлена запись, backend вернул ошибку, выполнен запрос), всегда в stderr
// или в файл с ротацией, но никогда в stdout, куда Reader выводит результаты.
package logging

import "log/slog"

// Logger определяет интерфейс структурированного логирования.
//
//	logger.Info("запись добавлена", "adapter", "csv", "level", "ERROR")
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	// With возвращает Logger с атрибутами, добавляемыми ко всем записям.
	With(args ...any) Logger
}

// SlogAdapter реализует Logger поверх *slog.Logger.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter оборачивает logger. При nil используется slog.Default().
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger}
}

func (s *SlogAdapter) Debug(msg string, args ...any) { s.logger.Debug(msg, args...) }
func (s *SlogAdapter) Info(msg string, args ...any)  { s.logger.Info(msg, args...) }
func (s *SlogAdapter) Warn(msg string, args ...any)  { s.logger.Warn(msg, args...) }
func (s *SlogAdapter) Error(msg string, args ...any) { s.logger.Error(msg, args...) }

// With возвращает новый SlogAdapter; исходный не меняется.
func (s *SlogAdapter) With(args ...any) Logger {
	return &SlogAdapter{logger: s.logger.With(args...)}
}

// NopLogger отбрасывает все сообщения. Значение по умолчанию для Logger и Reader.
type NopLogger struct{}

// NewNopLogger создаёт Logger, который ничего не пишет.
func NewNopLogger() Logger { return NopLogger{} }

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}

// With возвращает тот же NopLogger.
func (n NopLogger) With(...any) Logger { return n }
