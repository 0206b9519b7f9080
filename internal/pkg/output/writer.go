package output

import "io"

// Writer выводит результат запроса в w.
type Writer interface {
	Write(w io.Writer, result *Result) error
}

// TextRenderer реализуют данные, которые печатают себя сами.
// TextWriter предпочитает его JSON-представлению Data.
type TextRenderer interface {
	RenderText(w io.Writer) error
}
