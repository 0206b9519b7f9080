package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/profillog/internal/pkg/logging"
)

func testConfig(url string) Config {
	return Config{
		Enabled:        true,
		PushgatewayURL: url,
		JobName:        "profillog",
		Timeout:        5 * time.Second,
		InstanceLabel:  "test-host",
	}
}

func TestPrometheusCollector_RecordAppend(t *testing.T) {
	c, err := NewPrometheusCollector(testConfig("http://localhost:9091"), logging.NewNopLogger())
	require.NoError(t, err)

	c.RecordAppend("csv", "ERROR", true)
	c.RecordAppend("csv", "ERROR", true)
	c.RecordAppend("json", "WARNING", true)
	c.RecordAppend("sql", "ERROR", false)
	c.RecordFiltered("DEBUG")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.appended.WithLabelValues("csv", "ERROR")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.appended.WithLabelValues("json", "WARNING")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.appendErrors.WithLabelValues("sql")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.filtered.WithLabelValues("DEBUG")))
}

func TestPrometheusCollector_RecordQuery(t *testing.T) {
	c, err := NewPrometheusCollector(testConfig("http://localhost:9091"), logging.NewNopLogger())
	require.NoError(t, err)

	c.RecordQuery("find_by_text", 3*time.Millisecond, 2, true)
	c.RecordQuery("find_by_pattern", time.Millisecond, 0, false)

	families, err := c.Registry().Gather()
	require.NoError(t, err)
	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["profillog_query_duration_seconds"])
	assert.True(t, names["profillog_query_matched_entries"])

	count, err := testutil.GatherAndCount(c.Registry(), "profillog_query_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "отдельные серии для success и error")
}

func TestPrometheusCollector_Push(t *testing.T) {
	var method, path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c, err := NewPrometheusCollector(testConfig(server.URL), logging.NewNopLogger())
	require.NoError(t, err)
	c.RecordAppend("text", "INFO", true)

	require.NoError(t, c.Push(context.Background()))
	assert.Equal(t, http.MethodPut, method)
	assert.True(t, strings.HasPrefix(path, "/metrics/job/profillog"), path)
	assert.Contains(t, path, "instance/test-host")
}

func TestPrometheusCollector_PushErrorIsSwallowed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c, err := NewPrometheusCollector(testConfig(server.URL), logging.NewNopLogger())
	require.NoError(t, err)
	assert.NoError(t, c.Push(context.Background()))
}

func TestPrometheusCollector_PushCancelled(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	c, err := NewPrometheusCollector(testConfig(server.URL), logging.NewNopLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, c.Push(ctx))
	assert.Zero(t, calls.Load())
}

func TestNewCollector(t *testing.T) {
	c, err := NewCollector(Config{}, logging.NewNopLogger())
	require.NoError(t, err)
	_, isNop := c.(*NopCollector)
	assert.True(t, isNop)
	c.RecordAppend("csv", "INFO", true)
	c.RecordFiltered("DEBUG")
	c.RecordQuery("q", time.Second, 1, true)
	assert.NoError(t, c.Push(context.Background()))

	c, err = NewCollector(testConfig("http://localhost:9091"), nil)
	require.NoError(t, err)
	_, isProm := c.(*PrometheusCollector)
	assert.True(t, isProm)

	_, err = NewCollector(Config{Enabled: true}, logging.NewNopLogger())
	assert.ErrorIs(t, err, ErrPushgatewayURLRequired)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{"выключено", Config{}, nil},
		{"валидно", testConfig("http://pg:9091"), nil},
		{"без URL", Config{Enabled: true, JobName: "j", Timeout: time.Second}, ErrPushgatewayURLRequired},
		{"кривой URL", Config{Enabled: true, PushgatewayURL: "pg:9091", JobName: "j", Timeout: time.Second}, ErrPushgatewayURLInvalid},
		{"без job", Config{Enabled: true, PushgatewayURL: "http://pg:9091", Timeout: time.Second}, ErrJobNameRequired},
		{"нулевой таймаут", Config{Enabled: true, PushgatewayURL: "http://pg:9091", JobName: "j"}, ErrInvalidTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate_ReportsAllProblems(t *testing.T) {
	cfg := Config{Enabled: true, PushgatewayURL: "pg:9091"}
	err := cfg.Validate()
	assert.ErrorIs(t, err, ErrPushgatewayURLInvalid)
	assert.ErrorIs(t, err, ErrJobNameRequired)
	assert.ErrorIs(t, err, ErrInvalidTimeout)
}

func TestSanitizeLabel(t *testing.T) {
	assert.Equal(t, "a_b", sanitizeLabel("a\nb"))
	assert.Len(t, []rune(sanitizeLabel(strings.Repeat("я", 100))), maxLabelLength)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, "profillog", cfg.JobName)
	assert.NoError(t, cfg.Validate())
}
