// Package logentry определяет общую модель записи журнала:
// упорядоченную шкалу важности Severity и неизменяемое значение Entry.
package logentry

import (
	"fmt"

	"github.com/Kargones/profillog/internal/pkg/apperrors"
)

// Severity — уровень важности записи. Значения упорядочены по возрастанию
// важности и сравниваются напрямую: Debug < Info < Warning < Error < Critical.
type Severity int

// Поддерживаемые уровни важности.
const (
	Debug Severity = iota
	Info
	Warning
	Error
	Critical
)

var severityNames = [...]string{
	Debug:    "DEBUG",
	Info:     "INFO",
	Warning:  "WARNING",
	Error:    "ERROR",
	Critical: "CRITICAL",
}

// Severities возвращает все уровни в порядке возрастания важности.
func Severities() []Severity {
	return []Severity{Debug, Info, Warning, Error, Critical}
}

// String возвращает каноническое имя уровня ("WARNING").
func (s Severity) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Severity(%d)", int(s))
	}
	return severityNames[s]
}

// Valid сообщает, является ли s одним из пяти известных уровней.
func (s Severity) Valid() bool {
	return s >= Debug && s <= Critical
}

// Admits сообщает, пропускает ли порог s событие уровня level.
func (s Severity) Admits(level Severity) bool {
	return level >= s
}

// ParseSeverity разбирает каноническое имя уровня. Регистр учитывается:
// "warning" не является допустимым значением.
func ParseSeverity(name string) (Severity, error) {
	for i, n := range severityNames {
		if n == name {
			return Severity(i), nil
		}
	}
	return Debug, apperrors.NewAppError(apperrors.ErrInvalidSeverity,
		fmt.Sprintf("%q не является допустимым уровнем журнала", name), nil)
}

// MarshalText реализует encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, apperrors.NewAppError(apperrors.ErrInvalidSeverity,
			fmt.Sprintf("недопустимый уровень %d", int(s)), nil)
	}
	return []byte(s.String()), nil
}

// UnmarshalText реализует encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	v, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
