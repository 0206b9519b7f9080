package logentry

import (
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/Kargones/profillog/internal/pkg/apperrors"
	"github.com/Kargones/profillog/internal/pkg/dateutil"
)

// Entry — неизменяемая запись журнала. Поля доступны только через методы;
// создаётся через New, который проверяет сообщение.
type Entry struct {
	timestamp time.Time
	level     Severity
	message   string
}

// New создаёт Entry. message должен быть строкой в корректной UTF-8,
// иначе возвращается AppError с кодом LOG.INVALID_MESSAGE_TYPE.
// Временная метка усекается до секунды.
func New(ts time.Time, level Severity, message any) (Entry, error) {
	text, ok := message.(string)
	if !ok {
		return Entry{}, apperrors.NewAppError(apperrors.ErrInvalidMessageType,
			fmt.Sprintf("сообщение журнала должно быть строкой, получено %T", message), nil)
	}
	if !utf8.ValidString(text) {
		return Entry{}, apperrors.NewAppError(apperrors.ErrInvalidMessageType,
			"сообщение журнала должно быть корректной строкой UTF-8", nil)
	}
	if !level.Valid() {
		return Entry{}, apperrors.NewAppError(apperrors.ErrInvalidSeverity,
			fmt.Sprintf("недопустимый уровень %d", int(level)), nil)
	}
	return Entry{
		timestamp: ts.Truncate(time.Second),
		level:     level,
		message:   text,
	}, nil
}

// Timestamp возвращает время записи.
func (e Entry) Timestamp() time.Time { return e.timestamp }

// Level возвращает уровень важности.
func (e Entry) Level() Severity { return e.level }

// Message возвращает текст сообщения.
func (e Entry) Message() string { return e.message }

// Date возвращает временную метку в формате dateutil.Layout.
func (e Entry) Date() string { return dateutil.Format(e.timestamp) }

// String возвращает однострочное представление "date level message".
func (e Entry) String() string {
	return fmt.Sprintf("%s %s %s", e.Date(), e.level, e.message)
}

type entryJSON struct {
	Date    string   `json:"date"`
	Level   Severity `json:"level"`
	Message string   `json:"message"`
}

// MarshalJSON сериализует запись в форме {"date","level","message"}.
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(entryJSON{Date: e.Date(), Level: e.level, Message: e.message})
}
