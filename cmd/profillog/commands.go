package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Kargones/profillog/internal/di"
	"github.com/Kargones/profillog/internal/entity/logentry"
	"github.com/Kargones/profillog/internal/pkg/dateutil"
)

func logCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "log LEVEL MESSAGE...",
		Short: "Записать сообщение во все включённые хранилища",
		Long: "Записывает сообщение с текущим временем во все включённые хранилища.\n" +
			"Сообщение ниже порога (--threshold или threshold в конфигурации) отбрасывается.",
		Example: `  profillog log WARNING "Attention, something doesn't look good"`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := logentry.ParseSeverity(strings.ToUpper(args[0]))
			if err != nil {
				return err
			}
			message := strings.Join(args[1:], " ")
			return flags.withApp(cmd, func(ctx context.Context, app *di.App) error {
				return app.Journal.Log(ctx, level, message)
			})
		},
	}
}

func findTextCommand(flags *globalFlags) *cobra.Command {
	var window dateutil.Window
	cmd := &cobra.Command{
		Use:   "find-text TEXT",
		Short: "Найти записи, сообщение которых содержит TEXT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return flags.withApp(cmd, func(ctx context.Context, app *di.App) error {
				_, err := app.Reader.FindByText(ctx, args[0], window)
				return err
			})
		},
	}
	addWindowFlags(cmd, &window)
	return cmd
}

func findPatternCommand(flags *globalFlags) *cobra.Command {
	var window dateutil.Window
	cmd := &cobra.Command{
		Use:     "find-pattern REGEXP",
		Short:   "Найти записи, в сообщении которых есть совпадение с REGEXP",
		Example: `  profillog find-pattern '[p]{2,}'`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return flags.withApp(cmd, func(ctx context.Context, app *di.App) error {
				_, err := app.Reader.FindByPattern(ctx, args[0], window)
				return err
			})
		},
	}
	addWindowFlags(cmd, &window)
	return cmd
}

func groupLevelCommand(flags *globalFlags) *cobra.Command {
	var window dateutil.Window
	cmd := &cobra.Command{
		Use:   "group-level",
		Short: "Сгруппировать записи по уровню важности",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return flags.withApp(cmd, func(ctx context.Context, app *di.App) error {
				_, err := app.Reader.GroupByLevel(ctx, window)
				return err
			})
		},
	}
	addWindowFlags(cmd, &window)
	return cmd
}

func groupMonthCommand(flags *globalFlags) *cobra.Command {
	var window dateutil.Window
	cmd := &cobra.Command{
		Use:   "group-month",
		Short: "Сгруппировать записи по календарному месяцу",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return flags.withApp(cmd, func(ctx context.Context, app *di.App) error {
				_, err := app.Reader.GroupByMonth(ctx, window)
				return err
			})
		},
	}
	addWindowFlags(cmd, &window)
	return cmd
}
