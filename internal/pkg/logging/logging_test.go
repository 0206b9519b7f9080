package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerWithWriter_LevelFiltering(t *testing.T) {
	tests := []struct {
		level    string
		wantSeen []string
	}{
		{LevelDebug, []string{"d", "i", "w", "e"}},
		{LevelInfo, []string{"i", "w", "e"}},
		{LevelWarn, []string{"w", "e"}},
		{LevelError, []string{"e"}},
		{"", []string{"w", "e"}},
		{"verbose", []string{"w", "e"}},
	}

	for _, tt := range tests {
		t.Run("level="+tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLoggerWithWriter(Config{Level: tt.level, Format: FormatJSON}, &buf)
			logger.Debug("d")
			logger.Info("i")
			logger.Warn("w")
			logger.Error("e")

			var seen []string
			for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
				if line == "" {
					continue
				}
				var rec map[string]any
				require.NoError(t, json.Unmarshal([]byte(line), &rec))
				seen = append(seen, rec["msg"].(string))
			}
			assert.Equal(t, tt.wantSeen, seen)
		})
	}
}

func TestNewLoggerWithWriter_TextFormatAndWith(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(Config{Level: LevelInfo, Format: FormatText}, &buf)

	child := logger.With("adapter", "csv")
	child.Info("запись добавлена", "level", "ERROR")
	logger.Info("без атрибутов")

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "adapter=csv")
	assert.Contains(t, out, "level=ERROR")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.NotContains(t, lines[1], "adapter=csv", "With не меняет исходный логгер")
}

func TestNewSlogAdapter_Nil(t *testing.T) {
	assert.NotNil(t, NewSlogAdapter(nil))
	var _ Logger = NewSlogAdapter(slog.Default())
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	logger.Debug("x", "k", 1)
	logger.Info("x")
	logger.Warn("x")
	logger.Error("x")
	assert.Equal(t, logger, logger.With("k", "v"))
}

func TestNewLogger_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "profillog.log")
	cfg := DefaultConfig()
	cfg.Output = OutputFile
	cfg.FilePath = path
	cfg.Format = FormatJSON
	cfg.Compress = false

	logger := NewLogger(cfg)
	logger.Warn("в файл", "n", 1)
	logger.Info("отфильтровано")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"в файл"`)
	assert.NotContains(t, string(data), "отфильтровано")
}

func TestOpenWriter_Fallbacks(t *testing.T) {
	assert.Equal(t, os.Stderr, openWriter(Config{}))
	assert.Equal(t, os.Stderr, openWriter(Config{Output: OutputStderr}))
	assert.Equal(t, os.Stderr, openWriter(Config{Output: OutputFile}))
	assert.Equal(t, os.Stderr, openWriter(Config{Output: "syslog"}))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, LevelWarn, cfg.Level)
	assert.Equal(t, OutputStderr, cfg.Output)
	assert.Equal(t, DefaultFilePath, cfg.FilePath)
	assert.True(t, ValidLevel(cfg.Level))
	assert.False(t, ValidLevel("trace"))
}
