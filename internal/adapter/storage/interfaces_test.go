package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/profillog/internal/entity/logentry"
	"github.com/Kargones/profillog/internal/pkg/apperrors"
)

type namedStub struct{}

func (namedStub) Name() string                           { return "stub" }
func (namedStub) Append(context.Context, Record) error   { return nil }
func (namedStub) List(context.Context) ([]Record, error) { return nil, nil }

type anonymousStub struct{}

func (anonymousStub) Append(context.Context, Record) error   { return nil }
func (anonymousStub) List(context.Context) ([]Record, error) { return nil, nil }

func TestNameOf(t *testing.T) {
	assert.Equal(t, "stub", NameOf(namedStub{}))
	assert.Equal(t, "storage.anonymousStub", NameOf(anonymousStub{}))
}

func TestRecord_RoundTrip(t *testing.T) {
	e, err := logentry.New(time.Date(2021, 3, 4, 5, 6, 7, 0, time.UTC), logentry.Error, "There is definitely something wrong")
	require.NoError(t, err)

	rec := NewRecord(e)
	assert.Equal(t, Record{Date: "2021/03/04 05:06:07", Level: "ERROR", Message: "There is definitely something wrong"}, rec)

	decoded, err := rec.Decode()
	require.NoError(t, err)
	assert.Equal(t, e, decoded)
}

func TestRecord_Decode_Errors(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		code string
	}{
		{"bad date", Record{Date: "2021-03-04 05:06:07", Level: "INFO", Message: "m"}, apperrors.ErrInvalidDateFormat},
		{"bad level", Record{Date: "2021/03/04 05:06:07", Level: "NOTICE", Message: "m"}, apperrors.ErrInvalidSeverity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.rec.Decode()
			require.Error(t, err)
			assert.Equal(t, tt.code, apperrors.CodeOf(err))
		})
	}
}

func TestErrorHelpers(t *testing.T) {
	cause := errors.New("io")

	appendErr := AppendError("csv", cause)
	assert.True(t, apperrors.HasCode(appendErr, apperrors.ErrAdapterAppend))
	assert.ErrorIs(t, appendErr, cause)
	assert.Contains(t, appendErr.Error(), "csv")

	listErr := ListError("json", cause)
	assert.True(t, apperrors.HasCode(listErr, apperrors.ErrAdapterList))

	openErr := OpenError("sql", cause)
	assert.True(t, apperrors.HasCode(openErr, apperrors.ErrAdapterOpen))
}
