// Package storage определяет контракт хранилища записей журнала.
//
// Каждый backend (CSV, JSON, SQL-таблица, текстовый файл) реализует Adapter:
// дописывает запись в конец и возвращает все записи в порядке добавления.
// Хранилище не обеспечивает уникальность, сортировку и удаление.
package storage

import (
	"context"
	"fmt"

	"github.com/Kargones/profillog/internal/entity/logentry"
	"github.com/Kargones/profillog/internal/pkg/apperrors"
	"github.com/Kargones/profillog/internal/pkg/dateutil"
)

// Record — запись в том виде, в каком её хранит backend.
// Date всегда в формате dateutil.Layout, Level — каноническое имя уровня.
type Record struct {
	Date    string `json:"date"`
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Adapter — хранилище записей.
//
// Append дописывает rec в конец хранилища.
// List возвращает все ранее добавленные записи в порядке добавления.
type Adapter interface {
	Append(ctx context.Context, rec Record) error
	List(ctx context.Context) ([]Record, error)
}

// Named реализуют адаптеры, которые умеют назвать себя для логов и метрик.
type Named interface {
	Name() string
}

// NameOf возвращает имя адаптера или его Go-тип, если Named не реализован.
func NameOf(a Adapter) string {
	if n, ok := a.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", a)
}

// NewRecord переводит запись в хранимое текстовое представление.
func NewRecord(e logentry.Entry) Record {
	return Record{
		Date:    e.Date(),
		Level:   e.Level().String(),
		Message: e.Message(),
	}
}

// Decode восстанавливает Entry из хранимой записи.
// Ошибки: DATE.INVALID_FORMAT для испорченной даты,
// LEVEL.INVALID_SEVERITY для неизвестного уровня.
func (r Record) Decode() (logentry.Entry, error) {
	ts, err := dateutil.Parse(r.Date)
	if err != nil {
		return logentry.Entry{}, err
	}
	level, err := logentry.ParseSeverity(r.Level)
	if err != nil {
		return logentry.Entry{}, err
	}
	return logentry.New(ts, level, r.Message)
}

// AppendError оборачивает ошибку записи конкретного backend-а.
func AppendError(backend string, cause error) error {
	return apperrors.NewAppError(apperrors.ErrAdapterAppend,
		fmt.Sprintf("%s: не удалось добавить запись", backend), cause)
}

// ListError оборачивает ошибку чтения конкретного backend-а.
func ListError(backend string, cause error) error {
	return apperrors.NewAppError(apperrors.ErrAdapterList,
		fmt.Sprintf("%s: не удалось прочитать записи", backend), cause)
}

// OpenError оборачивает ошибку создания или открытия хранилища.
func OpenError(backend string, cause error) error {
	return apperrors.NewAppError(apperrors.ErrAdapterOpen,
		fmt.Sprintf("%s: не удалось открыть хранилище", backend), cause)
}
