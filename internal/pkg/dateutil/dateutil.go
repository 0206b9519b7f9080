// Package dateutil разбирает и проверяет временные метки записей журнала.
//
// В системе существует ровно один текстовый формат даты: YYYY/MM/DD HH:MM:SS.
// Он используется и для хранимых записей, и для границ окна запросов Reader.
package dateutil

import (
	"fmt"
	"time"

	"github.com/Kargones/profillog/internal/pkg/apperrors"
)

// Layout — единственный допустимый формат временной метки.
const Layout = "2006/01/02 15:04:05"

// Parse разбирает text строго по Layout.
// Возвращает AppError с кодом DATE.INVALID_FORMAT при любом несоответствии,
// включая несуществующие календарные даты (2021/02/30).
func Parse(text string) (time.Time, error) {
	t, err := time.Parse(Layout, text)
	if err != nil {
		return time.Time{}, apperrors.NewAppError(apperrors.ErrInvalidDateFormat,
			fmt.Sprintf("дата %q должна иметь формат YYYY/MM/DD HH:MM:SS", text), err)
	}
	return t, nil
}

// Format сериализует t в Layout с точностью до секунды.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// MonthKey возвращает ключ группировки "<год>-<месяц>" без ведущего нуля: "2021-3".
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%d-%d", t.Year(), int(t.Month()))
}

// MonthLabel возвращает человекочитаемое имя месяца: "2021-March".
func MonthLabel(t time.Time) string {
	return fmt.Sprintf("%d-%s", t.Year(), t.Month())
}
