package report_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/lualint/pkg/core"
	"github.com/leapstack-labs/lualint/pkg/lint"
	"github.com/leapstack-labs/lualint/pkg/report"
	"github.com/leapstack-labs/lualint/pkg/token"
)

func diag(rule string, line, col int, sev core.Severity, msg string) lint.Diagnostic {
	return lint.Diagnostic{
		RuleID:   rule,
		Severity: sev,
		Message:  msg,
		Pos:      token.Position{Line: line, Column: col},
	}
}

func sampleResults() []lint.FileResult {
	return []lint.FileResult{
		{
			Path: "b.lua",
			Diagnostics: []lint.Diagnostic{
				diag("spacing", 2, 1, core.SeverityWarning, "missing space after 'if'"),
				diag("naming", 1, 7, core.SeverityWarning, "local 'my_value' should be lowerCamelCase or UPPER_SNAKE_CASE"),
			},
		},
		{
			Path: "a.lua",
			Diagnostics: []lint.Diagnostic{
				diag("semicolon", 1, 5, core.SeverityWarning, "missing ';' at end of statement"),
				diag("eof-newline", 1, 5, core.SeverityInfo, "file does not end with a newline"),
			},
		},
		{
			Path: "bad.lua",
			Faults: []*lint.Fault{{
				Component: lint.FaultTokenizer,
				Path:      "bad.lua",
				Pos:       token.Position{Offset: 10, Line: 1, Column: 11},
				Message:   "MalformedLiteral: unterminated string literal",
			}},
		},
	}
}

func TestNew_Orders(t *testing.T) {
	results := sampleResults()
	r := report.New(results)

	var got []string
	for _, e := range r.Entries() {
		got = append(got, e.Path+":"+e.Rule)
	}
	assert.Equal(t, []string{
		"a.lua:eof-newline",
		"a.lua:semicolon",
		"b.lua:naming",
		"b.lua:spacing",
	}, got)

	// inputs untouched
	assert.Equal(t, "spacing", results[0].Diagnostics[0].RuleID)
}

func TestNew_Summary(t *testing.T) {
	r := report.New(sampleResults())
	s := r.Summary()

	assert.Equal(t, 3, s.Files)
	assert.Equal(t, 2, s.FilesWithIssues)
	assert.Equal(t, 4, s.Violations)
	assert.Equal(t, 3, s.Warnings)
	assert.Equal(t, 1, s.Info)
	assert.Equal(t, 1, s.Faults)
	assert.Equal(t, "4 issues, 3 warnings, 1 info in 3 files (1 fault)", s.String())
}

func TestNew_MinSeverity(t *testing.T) {
	r := report.New(sampleResults(), report.MinSeverity(core.SeverityWarning))
	assert.Len(t, r.Entries(), 3)
	assert.Len(t, r.Faults(), 1)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, report.ExitClean, report.New(nil).ExitCode())

	withViolations := sampleResults()[:2]
	assert.Equal(t, report.ExitViolations, report.New(withViolations).ExitCode())

	assert.Equal(t, report.ExitFault, report.New(sampleResults()).ExitCode())
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.New(sampleResults()).WriteText(&buf))

	want := "a.lua:1:5: [eof-newline] file does not end with a newline\n" +
		"a.lua:1:5: [semicolon] missing ';' at end of statement\n" +
		"b.lua:1:7: [naming] local 'my_value' should be lowerCamelCase or UPPER_SNAKE_CASE\n" +
		"b.lua:2:1: [spacing] missing space after 'if'\n" +
		"bad.lua:1:11: fault [tokenizer] MalformedLiteral: unterminated string literal\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.New(sampleResults()).WriteJSON(&buf))

	var decoded struct {
		Diagnostics []map[string]any `json:"diagnostics"`
		Faults      []map[string]any `json:"faults"`
		Summary     map[string]any   `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	require.Len(t, decoded.Diagnostics, 4)
	first := decoded.Diagnostics[0]
	assert.Equal(t, "a.lua", first["path"])
	assert.Equal(t, float64(1), first["line"])
	assert.Equal(t, float64(5), first["column"])
	assert.Equal(t, "eof-newline", first["rule"])
	assert.Equal(t, "info", first["severity"])

	require.Len(t, decoded.Faults, 1)
	assert.Equal(t, "tokenizer", decoded.Faults[0]["component"])
	assert.Equal(t, float64(4), decoded.Summary["violations"])
}

func TestWriteJSON_EmptyListsNotNull(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.New(nil).WriteJSON(&buf))
	assert.Contains(t, buf.String(), `"diagnostics": []`)
	assert.Contains(t, buf.String(), `"faults": []`)
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.New(sampleResults()).WriteMarkdown(&buf))
	out := buf.String()

	assert.Contains(t, out, "## a.lua\n")
	assert.Contains(t, out, "## b.lua\n")
	assert.Contains(t, out, "| 2 | 1 | `spacing` | warning | missing space after 'if' |")
	assert.Contains(t, out, "## Faults\n\n- `tokenizer` bad.lua:1:11: MalformedLiteral")
	assert.Contains(t, out, "**Summary:** 4 issues")

	buf.Reset()
	require.NoError(t, report.New(nil).WriteMarkdown(&buf))
	assert.Equal(t, "No lint issues found.\n", buf.String())
}
