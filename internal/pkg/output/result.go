// Package output предоставляет структуры и интерфейсы для форматирования
// результатов запросов Reader в JSON и текстовом формате.
package output

// Значения Result.Status.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIVersion меняется при несовместимых изменениях формата Result.
const APIVersion = "v1"

// Result — конверт ответа на запрос к журналу.
// При ошибке заполнено Error, а Data пусто.
type Result struct {
	Status string            `json:"status"`
	Query  string            `json:"query"`            // find_by_text, group_by_month, ...
	Params map[string]string `json:"params,omitempty"` // needle, pattern, start_date, end_date
	Data   any               `json:"data,omitempty"`
	Error  *ErrorInfo        `json:"error,omitempty"`

	Metadata *Metadata `json:"metadata,omitempty"`

	// Summary печатается TextWriter отдельным блоком, а JSONWriter
	// переносит его в metadata.summary.
	Summary *Summary `json:"-"`
}

// ErrorInfo — код apperrors и текст ошибки.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Metadata — сведения о выполнении запроса.
type Metadata struct {
	DurationMs int64    `json:"duration_ms"`
	TraceID    string   `json:"trace_id,omitempty"`
	APIVersion string   `json:"api_version"`
	Summary    *Summary `json:"summary,omitempty"`
}
