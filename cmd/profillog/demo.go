package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Kargones/profillog/internal/di"
	"github.com/Kargones/profillog/internal/entity/logentry"
	"github.com/Kargones/profillog/internal/pkg/dateutil"
)

// demoMessages — по одному сообщению на каждый уровень.
var demoMessages = []struct {
	level   logentry.Severity
	message string
}{
	{logentry.Debug, "You reach this debug line of code"},
	{logentry.Info, "FYI, this an info message"},
	{logentry.Warning, "Attention, something doesn't look good"},
	{logentry.Error, "There is definitely something wrong"},
	{logentry.Critical, "Nothing can be done, the application is down"},
}

func demoCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Записать пять демонстрационных сообщений с порогом WARNING и выполнить все запросы",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return flags.withApp(cmd, runDemo)
		},
	}
}

func runDemo(ctx context.Context, app *di.App) error {
	if err := app.Journal.SetThreshold(logentry.Warning.String()); err != nil {
		return err
	}
	for _, m := range demoMessages {
		if err := app.Journal.Log(ctx, m.level, m.message); err != nil {
			return err
		}
	}

	if _, err := app.Reader.FindByText(ctx, "something", dateutil.Window{}); err != nil {
		return err
	}
	if _, err := app.Reader.FindByPattern(ctx, `[p]{2,}`, dateutil.Window{}); err != nil {
		return err
	}
	if _, err := app.Reader.GroupByLevel(ctx, dateutil.Window{
		Start: "2015/01/01 01:01:01",
		End:   "2021/01/01 01:01:01",
	}); err != nil {
		return err
	}
	_, err := app.Reader.GroupByMonth(ctx, dateutil.Window{Start: "2015/01/01 01:01:01"})
	return err
}
