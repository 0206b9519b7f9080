package dateutil

import (
	"time"

	"github.com/Kargones/profillog/internal/pkg/apperrors"
)

// Window — необязательные границы запроса в текстовом виде.
// Пустая строка означает отсутствие границы. Нулевое значение не ограничивает запрос.
type Window struct {
	Start string `json:"start_date,omitempty"`
	End   string `json:"end_date,omitempty"`
}

// IsZero сообщает, что окно не задаёт ни одной границы.
func (w Window) IsZero() bool {
	return w.Start == "" && w.End == ""
}

// Bounds — разобранное окно. Нулевой указатель означает отсутствие границы.
type Bounds struct {
	Start *time.Time
	End   *time.Time
}

// ParseWindow разбирает обе границы окна и проверяет их порядок.
// Ошибки: DATE.INVALID_FORMAT для неразборчивой границы,
// DATE.INVALID_RANGE если End раньше Start.
func ParseWindow(w Window) (Bounds, error) {
	var b Bounds
	if w.Start != "" {
		start, err := Parse(w.Start)
		if err != nil {
			return Bounds{}, err
		}
		b.Start = &start
	}
	if w.End != "" {
		end, err := Parse(w.End)
		if err != nil {
			return Bounds{}, err
		}
		b.End = &end
	}
	if b.Start != nil && b.End != nil && b.End.Before(*b.Start) {
		return Bounds{}, apperrors.NewAppError(apperrors.ErrInvalidDateRange,
			"дата окончания не может быть раньше даты начала", nil)
	}
	return b, nil
}

// Contains сообщает, попадает ли t в окно.
// Обе границы строго исключающие: t == Start и t == End не попадают.
func (b Bounds) Contains(t time.Time) bool {
	if b.Start != nil && !t.After(*b.Start) {
		return false
	}
	if b.End != nil && !t.Before(*b.End) {
		return false
	}
	return true
}
