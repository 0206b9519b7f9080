package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Kargones/profillog/internal/config"
	"github.com/Kargones/profillog/internal/constants"
	"github.com/Kargones/profillog/internal/di"
	"github.com/Kargones/profillog/internal/pkg/apperrors"
	"github.com/Kargones/profillog/internal/pkg/dateutil"
	"github.com/Kargones/profillog/internal/pkg/output"
	"github.com/Kargones/profillog/internal/pkg/tracing"
)

// shutdownTimeout ограничивает отправку span-ов при завершении.
const shutdownTimeout = 5 * time.Second

// globalFlags — флаги, общие для всех подкоманд. Непустые значения
// перекрывают файл конфигурации и переменные окружения.
type globalFlags struct {
	configPath string
	format     string
	threshold  string
	source     string

	// failure — ошибка команды в виде Result. Заполняется только для
	// формата json после успешной сборки приложения.
	failure *output.Result
}

func buildRootCommand(flags *globalFlags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           constants.AppName,
		Short:         "Журнал с порогом важности и четырьмя хранилищами: CSV, JSON, SQL, текст",
		Version:       fmt.Sprintf("%s (%s)", constants.Version, constants.Commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "путь к YAML-конфигурации (по умолчанию $"+config.EnvConfigPath+")")
	pf.StringVarP(&flags.format, "format", "f", "", "формат вывода запросов: text или json")
	pf.StringVar(&flags.threshold, "threshold", "", "порог важности: DEBUG, INFO, WARNING, ERROR, CRITICAL")
	pf.StringVar(&flags.source, "source", "", "хранилище для запросов: csv, json, sql, text")

	rootCmd.AddCommand(
		logCommand(flags),
		findTextCommand(flags),
		findPatternCommand(flags),
		groupLevelCommand(flags),
		groupMonthCommand(flags),
		demoCommand(flags),
	)
	return rootCmd
}

// loadConfig читает конфигурацию и применяет флаги.
func (f *globalFlags) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if f.configPath != "" {
		cfg, err = config.Load(f.configPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return nil, err
	}
	if f.format == "" && f.threshold == "" && f.source == "" {
		return cfg, nil
	}
	if f.format != "" {
		cfg.Output.Format = f.format
	}
	if f.threshold != "" {
		cfg.Threshold = f.threshold
	}
	if f.source != "" {
		cfg.ReaderSource = f.source
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// withApp собирает приложение, открывает корневой span команды и
// гарантирует cleanup хранилищ, отправку метрик и shutdown трейсинга.
func (f *globalFlags) withApp(cmd *cobra.Command, fn func(ctx context.Context, app *di.App) error) error {
	cfg, err := f.loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	app, cleanup, err := di.InitializeApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.TracerShutdown(shutdownCtx); err != nil {
			app.Logger.Error("ошибка завершения tracing", "error", err.Error(), "trace_id", app.TraceID)
		}
	}()

	ctx = tracing.WithTraceID(ctx, app.TraceID)
	ctx = tracing.ContextWithOTelTraceID(ctx, app.TraceID)
	ctx, span := tracing.Tracer().Start(ctx, cmd.Name(),
		trace.WithAttributes(
			attribute.String("command", cmd.Name()),
			attribute.String("trace_id", app.TraceID),
			attribute.String("reader_source", cfg.ReaderSource),
		),
	)
	defer span.End()

	log := app.Logger.With("trace_id", app.TraceID, "command", cmd.Name())
	log.Debug("запуск команды", "version", constants.Version, "stores", app.Stores.Names())

	err = fn(ctx, app)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, apperrors.CodeOf(err))
		log.Error("ошибка выполнения команды", "error", err.Error())
		if strings.EqualFold(cfg.Output.Format, output.FormatJSON) {
			f.failure = &output.Result{
				Status: output.StatusError,
				Query:  cmd.Name(),
				Error:  &output.ErrorInfo{Code: apperrors.CodeOf(err), Message: err.Error()},
				Metadata: &output.Metadata{
					TraceID:    app.TraceID,
					APIVersion: output.APIVersion,
				},
			}
		}
	}

	// Ошибки push логируются внутри коллектора.
	_ = app.MetricsCollector.Push(ctx)
	return err
}

// addWindowFlags регистрирует --start и --end.
func addWindowFlags(cmd *cobra.Command, window *dateutil.Window) {
	cmd.Flags().StringVar(&window.Start, "start", "", "начало окна, YYYY/MM/DD HH:MM:SS (граница не входит)")
	cmd.Flags().StringVar(&window.End, "end", "", "конец окна, YYYY/MM/DD HH:MM:SS (граница не входит)")
}
