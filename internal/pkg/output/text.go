package output

import (
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// summaryDivider — разделитель summary блока в текстовом выводе.
const summaryDivider = "══════════════════════════════════════════════════════"

// TextWriter форматирует Result в человекочитаемый текст.
type TextWriter struct{}

// NewTextWriter создаёт новый TextWriter.
func NewTextWriter() *TextWriter {
	return &TextWriter{}
}

// Write форматирует result в текст и записывает в w.
// Если Data реализует TextRenderer, данные выводятся им самим,
// иначе печатается заголовок "query: status" и Data в виде JSON.
func (t *TextWriter) Write(w io.Writer, result *Result) error {
	if result == nil {
		return nil
	}

	if result.Error != nil {
		if _, err := fmt.Fprintf(w, "%s: %s\n", result.Query, result.Status); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "Error [%s]: %s\n", result.Error.Code, result.Error.Message)
		return err
	}

	if r, ok := result.Data.(TextRenderer); ok {
		if err := r.RenderText(w); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintf(w, "%s: %s\n", result.Query, result.Status); err != nil {
			return err
		}
		if result.Data != nil {
			dataJSON, err := json.MarshalIndent(result.Data, "", "  ")
			if err != nil {
				return fmt.Errorf("не удалось сериализовать Data: %w", err)
			}
			if _, err := fmt.Fprintf(w, "Data: %s\n", dataJSON); err != nil {
				return err
			}
		}
	}

	if result.Summary != nil && result.Status != StatusError {
		return t.writeSummary(w, result)
	}
	return nil
}

// writeSummary выводит summary блок, отделённый двойной линией.
func (t *TextWriter) writeSummary(w io.Writer, result *Result) error {
	if _, err := fmt.Fprintf(w, "\n%s\nСводка\n%s\n", summaryDivider, summaryDivider); err != nil {
		return err
	}

	if result.Metadata != nil && result.Metadata.DurationMs > 0 {
		if _, err := fmt.Fprintf(w, "Время выполнения: %s\n", formatDuration(result.Metadata.DurationMs)); err != nil {
			return err
		}
	}

	// Разряды чисел разделяются по русской локали: "1 500".
	p := message.NewPrinter(language.Russian)
	if _, err := p.Fprintf(w, "Просмотрено записей: %d\nНайдено: %d\n",
		result.Summary.Scanned, result.Summary.Matched); err != nil {
		return err
	}

	if n := len(result.Summary.Warnings); n > 0 {
		if _, err := fmt.Fprintf(w, "\nПредупреждений: %d\n", n); err != nil {
			return err
		}
		for _, warn := range result.Summary.Warnings {
			if _, err := fmt.Fprintf(w, "   • %s\n", warn); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintf(w, "%s\n", summaryDivider)
	return err
}

// formatDuration форматирует длительность: миллисекунды, секунды или минуты.
func formatDuration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dмс", ms)
	}
	sec := ms / 1000
	if sec < 60 {
		return fmt.Sprintf("%.1fс", float64(ms)/1000)
	}
	return fmt.Sprintf("%dм %dс", sec/60, sec%60)
}
