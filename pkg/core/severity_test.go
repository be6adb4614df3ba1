package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in     string
		want   Severity
		wantOK bool
	}{
		{"error", SeverityError, true},
		{"WARNING", SeverityWarning, true},
		{" info ", SeverityInfo, true},
		{"hint", SeverityHint, true},
		{"fatal", SeverityWarning, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseSeverity(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestSeverityJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		S Severity `json:"s"`
	}{SeverityInfo})
	require.NoError(t, err)
	assert.JSONEq(t, `{"s":"info"}`, string(b))

	var out struct {
		S Severity `json:"s"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"s":"error"}`), &out))
	assert.Equal(t, SeverityError, out.S)

	assert.Error(t, json.Unmarshal([]byte(`{"s":"loud"}`), &out))
}

func TestSeverityOrdering(t *testing.T) {
	assert.Equal(t, []Severity{SeverityError, SeverityWarning, SeverityInfo, SeverityHint}, Severities())
	assert.True(t, SeverityError.AtLeast(SeverityWarning))
	assert.True(t, SeverityWarning.AtLeast(SeverityWarning))
	assert.False(t, SeverityHint.AtLeast(SeverityInfo))
	assert.Equal(t, "unknown", Severity(9).String())
	assert.Equal(t, "unknown", Severity(-1).String())
}
