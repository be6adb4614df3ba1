package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/lualint/internal/testutil"
	"github.com/leapstack-labs/lualint/pkg/lint"
	"github.com/leapstack-labs/lualint/pkg/report"
)

func execute(t *testing.T, dir string, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	t.Chdir(dir)

	root := NewRootCmd()
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(errOut)

	code = run(context.Background(), root, args, errOut)
	return out.String(), errOut.String(), code
}

const onlyEOF = `lint:
  disabled: [blank-line-after-block, comment-style, declaration-style, indentation,
    line-length, naming, quoting, semicolon, spacing, trailing-comma, trailing-whitespace]
`

func TestExecute_Lint(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  int
	}{
		{
			name:  "clean",
			files: map[string]string{"lualint.yaml": onlyEOF, "a.lua": "local x = 1\n"},
			want:  report.ExitClean,
		},
		{
			name:  "violation",
			files: map[string]string{"lualint.yaml": onlyEOF, "a.lua": "local x = 1"},
			want:  report.ExitViolations,
		},
		{
			name:  "unterminated block comment is a fault",
			files: map[string]string{"lualint.yaml": onlyEOF, "a.lua": "--[[ open"},
			want:  report.ExitFault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := testutil.SetupProject(t, tt.files)
			_, _, code := execute(t, dir, "lint")
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestExecute_UnknownRuleInConfig(t *testing.T) {
	dir := testutil.SetupProject(t, map[string]string{
		"lualint.yaml": "lint:\n  disabled: [no-such-rule]\n",
		"a.lua":        "local x = 1\n",
	})

	stdout, stderr, code := execute(t, dir, "lint")
	assert.Equal(t, report.ExitFault, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "no-such-rule")
}

func TestExecute_RuleFlagOverridesDisabled(t *testing.T) {
	dir := testutil.SetupProject(t, map[string]string{
		"lualint.yaml": "lint:\n  disabled: [eof-newline]\n",
		"a.lua":        "local x = 1",
	})

	stdout, _, code := execute(t, dir, "lint", "--rule", "eof-newline")
	assert.Equal(t, report.ExitViolations, code)
	assert.Contains(t, stdout, "eof-newline")
}

func TestExecute_EnvSelectsOutput(t *testing.T) {
	dir := testutil.SetupProject(t, map[string]string{"lualint.yaml": onlyEOF, "a.lua": "local x = 1"})
	t.Setenv("LUALINT_OUTPUT", "json")

	stdout, _, code := execute(t, dir, "lint")
	assert.Equal(t, report.ExitViolations, code)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Contains(t, got, "diagnostics")
	assert.Contains(t, got, "summary")
}

func TestExecute_CacheEnabledInConfig(t *testing.T) {
	dir := testutil.SetupProject(t, map[string]string{
		"lualint.yaml": onlyEOF + "cache:\n  enabled: true\n",
		"a.lua":        "local x = 1",
	})

	_, _, code := execute(t, dir, "lint")
	assert.Equal(t, report.ExitViolations, code)
	assert.FileExists(t, filepath.Join(dir, ".lualint", "cache.db"))

	// --no-cache is honored over the file
	other := testutil.SetupProject(t, map[string]string{
		"lualint.yaml": onlyEOF + "cache:\n  enabled: true\n",
		"a.lua":        "local x = 1",
	})
	_, _, code = execute(t, other, "lint", "--no-cache")
	assert.Equal(t, report.ExitViolations, code)
	assert.NoFileExists(t, filepath.Join(other, ".lualint", "cache.db"))
}

func TestExecute_UnknownFlag(t *testing.T) {
	_, stderr, code := execute(t, t.TempDir(), "lint", "--bogus")
	assert.Equal(t, report.ExitFault, code)
	assert.Contains(t, stderr, "Error:")
}

func TestExecute_Version(t *testing.T) {
	stdout, _, code := execute(t, t.TempDir(), "version")
	assert.Equal(t, report.ExitClean, code)
	assert.Contains(t, stdout, "lualint v"+Version)
}

func TestExecute_Completion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			stdout, _, code := execute(t, t.TempDir(), "completion", shell)
			assert.Equal(t, report.ExitClean, code)
			assert.Contains(t, stdout, "lualint")
		})
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	root := NewRootCmd()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"lint", "rules", "init", "version", "completion"} {
		assert.Contains(t, names, want)
	}
}

func TestExecute_DocsURLFromConfig(t *testing.T) {
	dir := testutil.SetupProject(t, map[string]string{
		"lualint.yaml": "docs_url: https://docs.example.com/lualint\n",
	})
	t.Cleanup(lint.ResetDocsBaseURL)

	stdout, _, code := execute(t, dir, "rules", "quoting")
	assert.Equal(t, report.ExitClean, code)
	assert.Contains(t, stdout, "https://docs.example.com/lualint/quoting")
}
