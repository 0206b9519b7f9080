package profillog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Kargones/profillog/internal/adapter/storage"
	"github.com/Kargones/profillog/internal/entity/logentry"
	"github.com/Kargones/profillog/internal/pkg/output"
	"github.com/Kargones/profillog/internal/pkg/tracing"
)

// render выводит успешный результат запроса. Ошибка вывода только логируется.
func (r *Reader) render(q *query, data any, matched int, elapsed time.Duration) {
	sink := r.opts.sink
	if sink == nil {
		sink = os.Stdout
	}

	result := &output.Result{
		Status: output.StatusSuccess,
		Query:  q.name,
		Params: q.params,
		Data:   data,
		Metadata: &output.Metadata{
			DurationMs: elapsed.Milliseconds(),
			TraceID:    tracing.TraceIDFromContext(q.ctx),
			APIVersion: output.APIVersion,
		},
	}
	if r.opts.summary {
		summary := output.NewSummary(q.scanned, matched)
		if q.scanned == 0 {
			summary.Warn("хранилище %s пусто", storage.NameOf(r.adapter))
		}
		result.Summary = summary
	}

	if err := r.opts.writer.Write(sink, result); err != nil {
		q.log.Warn("не удалось вывести результат запроса", "error", err.Error())
	}
}

// entriesView — результат поиска: заголовок и записи по одной в строке.
type entriesView struct {
	header  string
	entries []logentry.Entry
}

func (v entriesView) RenderText(w io.Writer) error {
	if _, err := fmt.Fprintln(w, v.header); err != nil {
		return err
	}
	for _, e := range v.entries {
		if _, err := fmt.Fprintln(w, e); err != nil {
			return err
		}
	}
	return nil
}

func (v entriesView) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.entries)
}

// groupsView — результат группировки: заголовок, затем "<метка>:" и записи группы.
type groupsView struct {
	header string
	groups Groups
	label  func(Group) string
}

func (v groupsView) RenderText(w io.Writer) error {
	if _, err := fmt.Fprintln(w, v.header); err != nil {
		return err
	}
	for _, g := range v.groups {
		if _, err := fmt.Fprintf(w, "%s:\n", v.label(g)); err != nil {
			return err
		}
		for _, e := range g.Entries {
			if _, err := fmt.Fprintf(w, "  %s\n", e); err != nil {
				return err
			}
		}
	}
	return nil
}

func (v groupsView) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.groups)
}
