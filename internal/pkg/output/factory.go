package output

import (
	"slices"
	"strings"
)

// Форматы вывода результатов запросов.
const (
	FormatJSON = "json"
	FormatText = "text"
)

var writers = map[string]func() Writer{
	FormatJSON: func() Writer { return NewJSONWriter() },
	FormatText: func() Writer { return NewTextWriter() },
}

// NewWriter возвращает Writer для format без учёта регистра.
// Для неизвестного формата используется текстовый вывод.
func NewWriter(format string) Writer {
	if mk, ok := writers[strings.ToLower(format)]; ok {
		return mk()
	}
	return NewTextWriter()
}

// ValidFormat сообщает, знает ли NewWriter формат format.
func ValidFormat(format string) bool {
	_, ok := writers[strings.ToLower(format)]
	return ok
}

// Formats возвращает известные форматы в алфавитном порядке.
func Formats() []string {
	names := make([]string, 0, len(writers))
	for name := range writers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
