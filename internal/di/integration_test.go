package di

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/profillog/internal/adapter/storage"
	"github.com/Kargones/profillog/internal/config"
	"github.com/Kargones/profillog/internal/entity/logentry"
	"github.com/Kargones/profillog/internal/pkg/dateutil"
	"github.com/Kargones/profillog/internal/service/profillog"
)

func TestInitializeApp_AllFieldsNonNil(t *testing.T) {
	cfg := testConfig(t)
	app, cleanup, err := InitializeApp(context.Background(), cfg)
	require.NoError(t, err)
	defer cleanup()

	assert.Same(t, cfg, app.Config)
	assert.NotNil(t, app.Logger)
	assert.NotNil(t, app.OutputWriter)
	assert.Len(t, app.TraceID, 32)
	assert.NotNil(t, app.MetricsCollector)
	assert.NotNil(t, app.Alerter)
	assert.NotNil(t, app.TracerShutdown)
	assert.NotNil(t, app.Stores)
	assert.NotNil(t, app.Journal)
	assert.NotNil(t, app.Reader)
	assert.Len(t, app.Journal.Adapters(), 4)
}

// Запись через Journal видна Reader-у каждого из четырёх хранилищ.
func TestInitializeApp_FullPipeline(t *testing.T) {
	for _, source := range []string{config.SourceCSV, config.SourceJSON, config.SourceSQL, config.SourceText} {
		t.Run(source, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.ReaderSource = source
			cfg.Threshold = "WARNING"

			app, cleanup, err := InitializeApp(context.Background(), cfg)
			require.NoError(t, err)
			defer cleanup()

			ctx := context.Background()
			require.NoError(t, app.Journal.Info(ctx, "skipped"))
			require.NoError(t, app.Journal.Error(ctx, "There is definitely something wrong"))

			var buf bytes.Buffer
			reader := profillog.NewReader(mustGet(t, app.Stores, source), profillog.WithSink(&buf))

			now := time.Now()
			window := dateutil.Window{
				Start: dateutil.Format(now.Add(-time.Hour)),
				End:   dateutil.Format(now.Add(time.Hour)),
			}
			groups, err := reader.GroupByLevel(ctx, window)
			require.NoError(t, err)

			assert.Equal(t, 1, groups.Len(), "INFO ниже порога не записан")
			errs, ok := groups.Get(logentry.Error.String())
			require.True(t, ok)
			require.Len(t, errs, 1)
			assert.Equal(t, "There is definitely something wrong", errs[0].Message())
			assert.Contains(t, buf.String(), "Log entries grouped by level")
		})
	}
}

func TestInitializeApp_InvalidReaderSource(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storage.CSV.Enabled = false

	_, cleanup, err := InitializeApp(context.Background(), cfg)
	require.Error(t, err)
	assert.Nil(t, cleanup)
}

func mustGet(t *testing.T, stores *Stores, name string) storage.Adapter {
	t.Helper()
	a, ok := stores.Get(name)
	require.True(t, ok)
	return a
}
