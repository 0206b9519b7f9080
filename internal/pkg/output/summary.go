package output

import "fmt"

// Summary — сводка запроса к хранилищу.
type Summary struct {
	// Scanned — сколько записей прочитано из хранилища.
	Scanned int `json:"scanned"`
	// Matched — сколько записей вошло в результат.
	Matched  int      `json:"matched"`
	Warnings []string `json:"warnings,omitempty"`
}

// NewSummary создаёт сводку с заданными счётчиками.
func NewSummary(scanned, matched int) *Summary {
	return &Summary{Scanned: scanned, Matched: matched}
}

// Warn добавляет предупреждение.
func (s *Summary) Warn(format string, args ...any) {
	s.Warnings = append(s.Warnings, fmt.Sprintf(format, args...))
}
