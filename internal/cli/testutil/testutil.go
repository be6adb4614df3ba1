// Package testutil captures command output for CLI tests.
package testutil

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leapstack-labs/lualint/internal/cli/output"
)

// TestRenderer is a Renderer whose output lands in buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer returns a captured renderer. isTTY simulates a terminal so
// styled text output can be exercised without one.
func NewTestRenderer(mode output.Mode, isTTY bool) *TestRenderer {
	var out, errOut bytes.Buffer
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(&out, &errOut, isTTY, mode),
		Out:      &out,
		ErrOut:   &errOut,
	}
}

// NewTestRendererText renders styled text as on a terminal.
func NewTestRendererText() *TestRenderer { return NewTestRenderer(output.ModeText, true) }

// NewTestRendererMarkdown renders markdown as when piped.
func NewTestRendererMarkdown() *TestRenderer { return NewTestRenderer(output.ModeMarkdown, false) }

// NewTestRendererJSON renders JSON.
func NewTestRendererJSON() *TestRenderer { return NewTestRenderer(output.ModeJSON, false) }

// Output returns what was written to stdout.
func (tr *TestRenderer) Output() string { return tr.Out.String() }

// ErrorOutput returns what was written to stderr.
func (tr *TestRenderer) ErrorOutput() string { return tr.ErrOut.String() }

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripANSI removes terminal escape sequences.
func StripANSI(s string) string {
	return ansiEscape.ReplaceAllString(s, "")
}

// AssertNoANSI fails when s carries terminal escape sequences.
func AssertNoANSI(t testing.TB, s string) {
	t.Helper()
	assert.False(t, ansiEscape.MatchString(s), "unexpected ANSI escape codes in %q", s)
}

// AssertValidMarkdown checks that code fences are balanced and that no
// header is empty.
func AssertValidMarkdown(t testing.TB, md string) {
	t.Helper()
	assert.Zero(t, strings.Count(md, "```")%2, "unbalanced code fences")

	for i, line := range strings.Split(md, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			assert.NotEmpty(t, strings.TrimLeft(trimmed, "# "), "empty header at line %d", i+1)
		}
	}
}
