// Package main содержит точку входа CLI profillog: запись в журнал
// и запросы к хранилищам.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Kargones/profillog/internal/pkg/apperrors"
	"github.com/Kargones/profillog/internal/pkg/output"
)

// Коды завершения.
const (
	exitOK      = 0
	exitUsage   = 2
	exitConfig  = 5
	exitCommand = 8
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr))
}

// run выполняет команду и возвращает exit code.
// Вынесена из main, чтобы defer-ы (cleanup хранилищ, shutdown трейсинга)
// отрабатывали до os.Exit.
// При --format json ошибка команды печатается в stderr JSON-документом Result.
func run(ctx context.Context, args []string, stderr io.Writer) int {
	flags := &globalFlags{}
	root := buildRootCommand(flags)
	root.SetArgs(args)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}
	if flags.failure == nil || output.NewJSONWriter().Write(stderr, flags.failure) != nil {
		_, _ = fmt.Fprintf(stderr, "profillog: %v\n", err)
	}
	return exitCode(err)
}

func exitCode(err error) int {
	code := apperrors.CodeOf(err)
	switch {
	case code == "":
		return exitUsage
	case strings.HasPrefix(code, "CONFIG."):
		return exitConfig
	default:
		return exitCommand
	}
}
