// Package apperrors предоставляет структурированные ошибки profillog.
// Назван apperrors, чтобы не конфликтовать со стандартным пакетом errors.
package apperrors

import (
	"errors"
	"fmt"
)

// Коды ошибок в формате CATEGORY.SPECIFIC_ERROR.
// Позволяет grep по категориям: `grep "DATE\."` для всех ошибок дат.
const (
	// Category: LOG — ошибки записи через Logger.
	ErrInvalidMessageType = "LOG.INVALID_MESSAGE_TYPE"

	// Category: LEVEL — ошибки уровня важности.
	ErrInvalidSeverity = "LEVEL.INVALID_SEVERITY"

	// Category: DATE — ошибки разбора и проверки временного окна.
	ErrInvalidDateFormat = "DATE.INVALID_FORMAT"
	ErrInvalidDateRange  = "DATE.INVALID_RANGE"

	// Category: QUERY — ошибки параметров запросов Reader.
	ErrInvalidPattern = "QUERY.INVALID_PATTERN"

	// Category: ADAPTER — ошибки хранилищ.
	ErrAdapterAppend = "ADAPTER.APPEND_FAILED"
	ErrAdapterList   = "ADAPTER.LIST_FAILED"
	ErrAdapterOpen   = "ADAPTER.OPEN_FAILED"

	// Category: CONFIG — ошибки загрузки и парсинга конфигурации.
	ErrConfigLoad     = "CONFIG.LOAD_FAILED"
	ErrConfigParse    = "CONFIG.PARSE_FAILED"
	ErrConfigValidate = "CONFIG.VALIDATION_FAILED"

	// Category: OUTPUT — ошибки форматирования вывода.
	ErrOutputFormat = "OUTPUT.FORMAT_FAILED"
)

// AppError представляет структурированную ошибку.
// Реализует error interface и поддерживает wrapping через Unwrap().
//
// ВАЖНО: Message НЕ ДОЛЖЕН содержать секреты (пароли из DSN и т.п.).
//
// Пример использования:
//
//	return apperrors.NewAppError(apperrors.ErrInvalidDateFormat,
//	    "дата начала окна должна иметь формат YYYY/MM/DD HH:MM:SS",
//	    err)
type AppError struct {
	// Code — машиночитаемый код ошибки в формате CATEGORY.SPECIFIC.
	Code string `json:"code"`

	// Message — человекочитаемое описание ошибки.
	Message string `json:"message"`

	// Cause — wrapped оригинальная ошибка.
	// Не сериализуется в JSON.
	Cause error `json:"-"`
}

// Error реализует интерфейс error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap возвращает wrapped ошибку для errors.Is/As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError создаёт новый AppError с заданным кодом, сообщением и причиной.
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// HasCode сообщает, содержит ли цепочка err хотя бы один AppError с кодом code.
// Проходит всю цепочку: AppError адаптера может быть обёрнут AppError сервиса.
func HasCode(err error, code string) bool {
	for err != nil {
		var appErr *AppError
		if !errors.As(err, &appErr) {
			return false
		}
		if appErr.Code == code {
			return true
		}
		err = appErr.Cause
	}
	return false
}

// CodeOf возвращает код первого AppError в цепочке или пустую строку.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
