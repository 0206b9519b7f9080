package profillog

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Kargones/profillog/internal/adapter/storage"
	"github.com/Kargones/profillog/internal/entity/logentry"
	"github.com/Kargones/profillog/internal/pkg/apperrors"
	"github.com/Kargones/profillog/internal/pkg/dateutil"
	"github.com/Kargones/profillog/internal/pkg/logging"
	"github.com/Kargones/profillog/internal/pkg/tracing"
)

// Имена запросов Reader в выводе, логах и метриках.
const (
	QueryFindByText    = "find_by_text"
	QueryFindByPattern = "find_by_pattern"
	QueryGroupByLevel  = "group_by_level"
	QueryGroupByMonth  = "group_by_month"
)

// Reader выполняет запросы к одному хранилищу.
// Результаты не кэшируются: каждый запрос заново читает хранилище.
type Reader struct {
	adapter storage.Adapter
	opts    options
}

// NewReader создаёт Reader поверх adapter.
// Результат каждого запроса выводится в sink (по умолчанию os.Stdout).
func NewReader(adapter storage.Adapter, opts ...Option) *Reader {
	return &Reader{adapter: adapter, opts: applyOptions(opts)}
}

// FindByText возвращает записи окна, сообщение которых содержит needle
// (с учётом регистра).
func (r *Reader) FindByText(ctx context.Context, needle string, window dateutil.Window) ([]logentry.Entry, error) {
	q := r.begin(ctx, QueryFindByText, window, "needle", needle)

	entries, err := r.load(q, window)
	if err != nil {
		return nil, q.fail(err)
	}
	found := filter(entries, func(e logentry.Entry) bool {
		return strings.Contains(e.Message(), needle)
	})
	q.done(entriesView{header: "Log entries containing " + needle, entries: found}, len(found))
	return found, nil
}

// FindByPattern возвращает записи окна, в сообщении которых найдено
// совпадение с pattern (RE2, без привязки к началу строки).
// Некомпилируемый pattern даёт QUERY.INVALID_PATTERN до чтения хранилища.
func (r *Reader) FindByPattern(ctx context.Context, pattern string, window dateutil.Window) ([]logentry.Entry, error) {
	q := r.begin(ctx, QueryFindByPattern, window, "pattern", pattern)

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, q.fail(apperrors.NewAppError(apperrors.ErrInvalidPattern,
			fmt.Sprintf("некорректное регулярное выражение %q", pattern), err))
	}
	entries, err := r.load(q, window)
	if err != nil {
		return nil, q.fail(err)
	}
	found := filter(entries, func(e logentry.Entry) bool {
		return re.MatchString(e.Message())
	})
	q.done(entriesView{header: "Log entries matching " + pattern + ":", entries: found}, len(found))
	return found, nil
}

// GroupByLevel раскладывает записи окна по уровням.
// Всегда возвращает пять групп DEBUG, INFO, WARNING, ERROR, CRITICAL;
// группа без записей пуста.
func (r *Reader) GroupByLevel(ctx context.Context, window dateutil.Window) (Groups, error) {
	q := r.begin(ctx, QueryGroupByLevel, window)

	entries, err := r.load(q, window)
	if err != nil {
		return nil, q.fail(err)
	}
	groups := groupByLevel(entries)
	q.done(groupsView{
		header: "Log entries grouped by level",
		groups: groups,
		label:  func(g Group) string { return g.Key },
	}, groups.Len())
	return groups, nil
}

// GroupByMonth раскладывает записи окна по месяцам.
// Ключ "<год>-<месяц>" без ведущего нуля ("2021-3"); группы идут в порядке
// первого появления месяца.
func (r *Reader) GroupByMonth(ctx context.Context, window dateutil.Window) (Groups, error) {
	q := r.begin(ctx, QueryGroupByMonth, window)

	entries, err := r.load(q, window)
	if err != nil {
		return nil, q.fail(err)
	}
	groups := groupByMonth(entries, func(e logentry.Entry) string {
		return dateutil.MonthKey(e.Timestamp())
	})
	q.done(groupsView{
		header: "Log entries grouped by month",
		groups: groups,
		label:  func(g Group) string { return dateutil.MonthLabel(g.Entries[0].Timestamp()) },
	}, groups.Len())
	return groups, nil
}

// load разбирает окно, читает хранилище и оставляет записи строго внутри окна.
func (r *Reader) load(q *query, window dateutil.Window) ([]logentry.Entry, error) {
	bounds, err := dateutil.ParseWindow(window)
	if err != nil {
		return nil, err
	}

	name := storage.NameOf(r.adapter)
	records, err := r.adapter.List(q.ctx)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrAdapterList,
			fmt.Sprintf("не удалось прочитать хранилище %s", name), err)
	}
	q.scanned = len(records)

	entries := make([]logentry.Entry, 0, len(records))
	for i, rec := range records {
		e, err := rec.Decode()
		if err != nil {
			return nil, apperrors.NewAppError(apperrors.CodeOf(err),
				fmt.Sprintf("запись %d хранилища %s повреждена", i+1, name), err)
		}
		if bounds.Contains(e.Timestamp()) {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func filter(entries []logentry.Entry, keep func(logentry.Entry) bool) []logentry.Entry {
	found := make([]logentry.Entry, 0)
	for _, e := range entries {
		if keep(e) {
			found = append(found, e)
		}
	}
	return found
}

// query — контекст выполнения одного запроса: span, время, параметры.
type query struct {
	r       *Reader
	ctx     context.Context
	span    trace.Span
	name    string
	params  map[string]string
	started time.Time
	scanned int
	log     logging.Logger
}

func (r *Reader) begin(ctx context.Context, name string, window dateutil.Window, kv ...string) *query {
	params := make(map[string]string)
	for i := 0; i+1 < len(kv); i += 2 {
		params[kv[i]] = kv[i+1]
	}
	if window.Start != "" {
		params["start_date"] = window.Start
	}
	if window.End != "" {
		params["end_date"] = window.End
	}

	attrs := []attribute.KeyValue{attribute.String("profillog.adapter", storage.NameOf(r.adapter))}
	for k, v := range params {
		attrs = append(attrs, attribute.String("profillog."+k, v))
	}
	ctx, span := r.opts.tracer.Start(ctx, "profillog."+name, trace.WithAttributes(attrs...))

	log := r.opts.logger.With("query", name)
	if traceID := tracing.TraceIDFromContext(ctx); traceID != "" {
		log = log.With("trace_id", traceID)
	}
	return &query{
		r:       r,
		ctx:     ctx,
		span:    span,
		name:    name,
		params:  params,
		started: time.Now(),
		log:     log,
	}
}

func (q *query) fail(err error) error {
	defer q.span.End()
	code := apperrors.CodeOf(err)
	q.span.RecordError(err)
	q.span.SetStatus(codes.Error, code)
	q.r.opts.metrics.RecordQuery(q.name, time.Since(q.started), 0, false)
	q.log.Warn("запрос не выполнен", "code", code, "error", err.Error())
	return err
}

func (q *query) done(data any, matched int) {
	defer q.span.End()
	elapsed := time.Since(q.started)
	q.span.SetAttributes(
		attribute.Int("profillog.scanned", q.scanned),
		attribute.Int("profillog.matched", matched),
	)
	q.r.opts.metrics.RecordQuery(q.name, elapsed, matched, true)
	q.log.Debug("запрос выполнен",
		"scanned", q.scanned,
		"matched", matched,
		"duration_ms", elapsed.Milliseconds(),
	)
	q.r.render(q, data, matched, elapsed)
}
