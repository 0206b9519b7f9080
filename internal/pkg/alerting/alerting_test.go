package alerting

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nicholas-fedor/shoutrrr/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/profillog/internal/entity/logentry"
	"github.com/Kargones/profillog/internal/pkg/logging"
)

type fakeSender struct {
	mu     sync.Mutex
	bodies []string
	titles []string
	errs   []error
}

func (f *fakeSender) Send(message string, params *types.Params) []error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bodies = append(f.bodies, message)
	title, _ := params.Title()
	f.titles = append(f.titles, title)
	return f.errs
}

func enabledConfig() Config {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.URLs = []string{"generic://alerts.example.com/hook"}
	return cfg
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"disabled is always valid", func(c *Config) { c.Enabled = false; c.URLs = nil }, nil},
		{"valid", func(*Config) {}, nil},
		{"no urls", func(c *Config) { c.URLs = nil }, ErrAlertingURLsRequired},
		{"bad level", func(c *Config) { c.MinLevel = "critical" }, ErrAlertingMinLevel},
		{"bad timeout", func(c *Config) { c.Timeout = 0 }, ErrAlertingTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := enabledConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewAlerter(t *testing.T) {
	a, err := NewAlerter(DefaultConfig(), nil)
	require.NoError(t, err)
	assert.IsType(t, NopAlerter{}, a)
	assert.NoError(t, a.Send(context.Background(), Alert{}))

	cfg := enabledConfig()
	cfg.URLs = nil
	_, err = NewAlerter(cfg, nil)
	assert.ErrorIs(t, err, ErrAlertingURLsRequired)

	cfg = enabledConfig()
	cfg.URLs = []string{"unknownservice://secret-token@host"}
	_, err = NewAlerter(cfg, nil)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "secret-token")
}

func TestShoutrrrAlerter_FiltersByMinLevel(t *testing.T) {
	fake := &fakeSender{}
	cfg := enabledConfig()
	cfg.MinLevel = "ERROR"
	a := newShoutrrrAlerter(fake, cfg, logging.NewNopLogger())
	ctx := context.Background()

	require.NoError(t, a.Send(ctx, Alert{Key: "w", Level: logentry.Warning, Message: "skip"}))
	require.NoError(t, a.Send(ctx, Alert{Key: "e", Level: logentry.Error, Message: "disk full"}))
	require.NoError(t, a.Send(ctx, Alert{Key: "c", Level: logentry.Critical, Message: "down", Title: "custom"}))

	assert.Equal(t, []string{"disk full", "down"}, fake.bodies)
	assert.Equal(t, []string{"profillog: ERROR", "custom"}, fake.titles)
}

func TestShoutrrrAlerter_RateLimitsByKey(t *testing.T) {
	fake := &fakeSender{}
	a := newShoutrrrAlerter(fake, enabledConfig(), logging.NewNopLogger())
	ctx := context.Background()

	for range 3 {
		require.NoError(t, a.Send(ctx, Alert{Key: "entry.CRITICAL", Level: logentry.Critical, Message: "down"}))
	}
	require.NoError(t, a.Send(ctx, Alert{Key: "ADAPTER.APPEND_FAILED:sql", Level: logentry.Critical, Message: "locked"}))

	assert.Equal(t, []string{"down", "locked"}, fake.bodies)
}

func TestShoutrrrAlerter_SendErrorsAreSwallowed(t *testing.T) {
	fake := &fakeSender{errs: []error{errors.New("timed out")}}
	a := newShoutrrrAlerter(fake, enabledConfig(), logging.NewNopLogger())

	err := a.Send(context.Background(), Alert{Key: "k", Level: logentry.Critical, Message: "down"})
	assert.NoError(t, err)
	assert.Len(t, fake.bodies, 1)
}

func TestBody(t *testing.T) {
	ts := time.Date(2021, 3, 1, 10, 0, 0, 0, time.UTC)
	got := body(Alert{Message: "down", Timestamp: ts, TraceID: "abc"})
	assert.Equal(t, "down\nВремя: 2021/03/01 10:00:00\nTrace ID: abc", got)
	assert.Equal(t, "down", body(Alert{Message: "down"}))
}

func TestRateLimiter(t *testing.T) {
	now := time.Date(2021, 3, 1, 10, 0, 0, 0, time.UTC)
	r := NewRateLimiter(time.Minute, func() time.Time { return now })

	assert.True(t, r.Allow("a"))
	assert.False(t, r.Allow("a"))
	assert.True(t, r.Allow("b"))

	now = now.Add(time.Minute)
	assert.True(t, r.Allow("a"), "окно истекло")
}
