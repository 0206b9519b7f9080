package output

import (
	"encoding/json"
	"io"
)

// JSONWriter печатает Result одним JSON-документом с отступом в два пробела.
// Сводка попадает в metadata.summary.
type JSONWriter struct{}

func NewJSONWriter() *JSONWriter { return &JSONWriter{} }

func (j *JSONWriter) Write(w io.Writer, result *Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	// Сообщения журнала часто содержат <, > и &.
	enc.SetEscapeHTML(false)
	return enc.Encode(withSummary(result))
}

// withSummary возвращает копию result, у которой сводка перенесена в Metadata.
// Исходные result и Metadata не изменяются.
func withSummary(result *Result) *Result {
	if result == nil || result.Summary == nil || result.Metadata == nil {
		return result
	}
	meta := *result.Metadata
	meta.Summary = result.Summary
	out := *result
	out.Metadata = &meta
	return &out
}
