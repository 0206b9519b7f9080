package output

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusConstants(t *testing.T) {
	assert.Equal(t, "success", StatusSuccess)
	assert.Equal(t, "error", StatusError)
	assert.Equal(t, "v1", APIVersion)
}

func TestResult_JSON_Serialization(t *testing.T) {
	tests := []struct {
		name   string
		result *Result
		want   map[string]any
	}{
		{
			name: "успешный результат с параметрами",
			result: &Result{
				Status: StatusSuccess,
				Query:  "find_by_text",
				Params: map[string]string{"needle": "something"},
				Data:   []string{"a"},
				Metadata: &Metadata{
					DurationMs: 3,
					APIVersion: APIVersion,
				},
			},
			want: map[string]any{
				"status": "success",
				"query":  "find_by_text",
				"params": map[string]any{"needle": "something"},
				"data":   []any{"a"},
				"metadata": map[string]any{
					"duration_ms": float64(3),
					"api_version": "v1",
				},
			},
		},
		{
			name: "ошибка без данных",
			result: &Result{
				Status: StatusError,
				Query:  "group_by_month",
				Error:  &ErrorInfo{Code: "DATE.INVALID_FORMAT", Message: "bad date"},
			},
			want: map[string]any{
				"status": "error",
				"query":  "group_by_month",
				"error":  map[string]any{"code": "DATE.INVALID_FORMAT", "message": "bad date"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.result)
			require.NoError(t, err)

			var got map[string]any
			require.NoError(t, json.Unmarshal(data, &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResult_SummaryNotSerializedDirectly(t *testing.T) {
	r := &Result{Status: StatusSuccess, Query: "q", Summary: NewSummary(0, 0)}
	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "summary")
}
