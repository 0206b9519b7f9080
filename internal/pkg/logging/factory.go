package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Kargones/profillog/internal/constants"
)

var levels = map[string]slog.Level{
	LevelDebug: slog.LevelDebug,
	LevelInfo:  slog.LevelInfo,
	LevelWarn:  slog.LevelWarn,
	LevelError: slog.LevelError,
}

// ValidLevel сообщает, известен ли уровень level.
func ValidLevel(level string) bool {
	_, ok := levels[level]
	return ok
}

// parseLevel: неизвестный или пустой уровень понимается как warn.
func parseLevel(level string) slog.Level {
	if l, ok := levels[level]; ok {
		return l
	}
	return slog.LevelWarn
}

// NewLogger создаёт Logger по config.
// Если файл лога подготовить не удалось, вывод идёт в stderr.
func NewLogger(config Config) Logger {
	return NewLoggerWithWriter(config, openWriter(config))
}

// NewLoggerWithWriter создаёт Logger, пишущий в w.
func NewLoggerWithWriter(config Config, w io.Writer) Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(config.Level)}
	if config.Format == FormatJSON {
		return NewSlogAdapter(slog.New(slog.NewJSONHandler(w, opts)))
	}
	return NewSlogAdapter(slog.New(slog.NewTextHandler(w, opts)))
}

func openWriter(config Config) io.Writer {
	bootstrap := slog.New(slog.NewTextHandler(os.Stderr, nil))

	switch config.Output {
	case "", OutputStderr:
		return os.Stderr
	case OutputFile:
	default:
		bootstrap.Warn("неизвестный logging.output, используется stderr", "output", config.Output)
		return os.Stderr
	}

	if config.FilePath == "" {
		bootstrap.Warn("logging.output=file без logging.filePath, используется stderr")
		return os.Stderr
	}
	if err := os.MkdirAll(filepath.Dir(config.FilePath), constants.DirPermStandard); err != nil {
		bootstrap.Warn("не удалось создать каталог лога, используется stderr",
			"path", config.FilePath, "error", err.Error())
		return os.Stderr
	}
	return &lumberjack.Logger{
		Filename:   config.FilePath,
		MaxSize:    config.MaxSize,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge,
		Compress:   config.Compress,
	}
}
