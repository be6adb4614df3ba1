package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/lualint/pkg/token"
)

func TestFile_Lines(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{name: "empty", src: "", want: []string{""}},
		{name: "no final newline", src: "a\nb", want: []string{"a", "b"}},
		{name: "final newline", src: "a\nb\n", want: []string{"a", "b"}},
		{name: "crlf", src: "a\r\nb\r\n", want: []string{"a", "b"}},
		{name: "blank lines", src: "a\n\n\nb\n", want: []string{"a", "", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFile("t.lua", tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Lines())
		})
	}
}

func TestFile_PosAt(t *testing.T) {
	f, err := NewFile("t.lua", "ab\ncd\n")
	require.NoError(t, err)

	assert.Equal(t, token.Position{Offset: 0, Line: 1, Column: 1}, f.PosAt(0))
	assert.Equal(t, token.Position{Offset: 2, Line: 1, Column: 3}, f.PosAt(2))
	assert.Equal(t, token.Position{Offset: 3, Line: 2, Column: 1}, f.PosAt(3))
	assert.Equal(t, token.Position{Offset: 6, Line: 3, Column: 1}, f.PosAt(6))
	assert.False(t, f.PosAt(7).IsValid())

	assert.Equal(t, token.Position{Offset: 3, Line: 2, Column: 1}, f.LineStart(2))
	assert.False(t, f.LineStart(9).IsValid())
}

func TestFile_Significant(t *testing.T) {
	f, err := NewFile("t.lua", "local x -- c\n= 1")
	require.NoError(t, err)

	var texts []string
	for _, tok := range f.Significant() {
		texts = append(texts, tok.Text)
	}
	assert.Equal(t, []string{"local", "x", "=", "1"}, texts)
}

func TestParseSuppressions(t *testing.T) {
	f, err := NewFile("t.lua", "a -- lualint: ignore quoting, naming\n-- lualint: ignore-next-line\nb\n--lualint:bogus\n")
	require.NoError(t, err)

	assert.True(t, f.Suppressed(Diagnostic{RuleID: "quoting", Pos: token.Position{Line: 1}}))
	assert.True(t, f.Suppressed(Diagnostic{RuleID: "naming", Pos: token.Position{Line: 1}}))
	assert.False(t, f.Suppressed(Diagnostic{RuleID: "spacing", Pos: token.Position{Line: 1}}))
	assert.True(t, f.Suppressed(Diagnostic{RuleID: "anything", Pos: token.Position{Line: 3}}))
	assert.False(t, f.Suppressed(Diagnostic{RuleID: "anything", Pos: token.Position{Line: 5}}))
}

func TestBuildDocURL(t *testing.T) {
	assert.Equal(t, DefaultDocsBaseURL+"/quoting", BuildDocURL("Quoting"))

	SetDocsBaseURL("http://localhost:8080/rules/")
	t.Cleanup(ResetDocsBaseURL)
	assert.Equal(t, "http://localhost:8080/rules/eof-newline", BuildDocURL("eof-newline"))

	ResetDocsBaseURL()
	assert.Equal(t, DefaultDocsBaseURL, DocsBaseURL)
}
