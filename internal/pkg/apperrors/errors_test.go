package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodeConstants(t *testing.T) {
	tests := []struct {
		name     string
		constant string
		expected string
	}{
		{"ErrInvalidMessageType", ErrInvalidMessageType, "LOG.INVALID_MESSAGE_TYPE"},
		{"ErrInvalidSeverity", ErrInvalidSeverity, "LEVEL.INVALID_SEVERITY"},
		{"ErrInvalidDateFormat", ErrInvalidDateFormat, "DATE.INVALID_FORMAT"},
		{"ErrInvalidDateRange", ErrInvalidDateRange, "DATE.INVALID_RANGE"},
		{"ErrInvalidPattern", ErrInvalidPattern, "QUERY.INVALID_PATTERN"},
		{"ErrAdapterAppend", ErrAdapterAppend, "ADAPTER.APPEND_FAILED"},
		{"ErrAdapterList", ErrAdapterList, "ADAPTER.LIST_FAILED"},
		{"ErrAdapterOpen", ErrAdapterOpen, "ADAPTER.OPEN_FAILED"},
		{"ErrConfigLoad", ErrConfigLoad, "CONFIG.LOAD_FAILED"},
		{"ErrConfigParse", ErrConfigParse, "CONFIG.PARSE_FAILED"},
		{"ErrConfigValidate", ErrConfigValidate, "CONFIG.VALIDATION_FAILED"},
		{"ErrOutputFormat", ErrOutputFormat, "OUTPUT.FORMAT_FAILED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.constant)
		})
	}
}

func TestAppError_Error_WithCause(t *testing.T) {
	cause := errors.New("parsing time")
	appErr := &AppError{
		Code:    ErrInvalidDateFormat,
		Message: "неверный формат даты",
		Cause:   cause,
	}

	expected := "DATE.INVALID_FORMAT: неверный формат даты (parsing time)"
	assert.Equal(t, expected, appErr.Error())
}

func TestAppError_Error_WithoutCause(t *testing.T) {
	appErr := &AppError{
		Code:    ErrInvalidDateRange,
		Message: "конец окна раньше начала",
	}

	assert.Equal(t, "DATE.INVALID_RANGE: конец окна раньше начала", appErr.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	appErr := NewAppError(ErrAdapterAppend, "запись не удалась", cause)

	assert.Equal(t, cause, appErr.Unwrap())
	assert.True(t, errors.Is(appErr, cause))
}

func TestAppError_Unwrap_NilCause(t *testing.T) {
	appErr := NewAppError(ErrAdapterAppend, "запись не удалась", nil)
	assert.Nil(t, appErr.Unwrap())
}

func TestAppError_ImplementsError(_ *testing.T) {
	var _ error = (*AppError)(nil)
}

func TestHasCode(t *testing.T) {
	inner := NewAppError(ErrInvalidDateFormat, "bad stored date", errors.New("parse"))
	outer := NewAppError(ErrAdapterList, "list failed", inner)
	wrapped := fmt.Errorf("query: %w", outer)

	tests := []struct {
		name string
		err  error
		code string
		want bool
	}{
		{"nil error", nil, ErrAdapterList, false},
		{"plain error", errors.New("x"), ErrAdapterList, false},
		{"direct match", outer, ErrAdapterList, true},
		{"nested match", outer, ErrInvalidDateFormat, true},
		{"through fmt wrap", wrapped, ErrInvalidDateFormat, true},
		{"absent code", wrapped, ErrInvalidPattern, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasCode(tt.err, tt.code))
		})
	}
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, "", CodeOf(nil))
	assert.Equal(t, "", CodeOf(errors.New("plain")))
	assert.Equal(t, ErrInvalidPattern, CodeOf(fmt.Errorf("wrap: %w", NewAppError(ErrInvalidPattern, "bad", nil))))
}

func TestAppError_JSON_Serialization(t *testing.T) {
	appErr := NewAppError(ErrConfigLoad, "не удалось загрузить конфигурацию", errors.New("secret dsn"))

	data, err := json.Marshal(appErr)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))

	assert.Equal(t, ErrConfigLoad, parsed["code"])
	assert.Equal(t, "не удалось загрузить конфигурацию", parsed["message"])
	_, hasCause := parsed["cause"]
	assert.False(t, hasCause, "Cause не должен сериализоваться в JSON")
}
