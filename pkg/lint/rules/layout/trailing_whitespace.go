package layout

import (
	"strings"

	"github.com/leapstack-labs/lualint/pkg/core"
	"github.com/leapstack-labs/lualint/pkg/lint"
	"github.com/leapstack-labs/lualint/pkg/token"
)

func init() {
	lint.Register(TrailingWhitespace)
}

const trailingWhitespaceID = "trailing-whitespace"

// TrailingWhitespace flags spaces and tabs before a line break.
var TrailingWhitespace = lint.RuleDef{
	ID:          trailingWhitespaceID,
	Name:        "layout.trailing_whitespace",
	Group:       "layout",
	Description: "Lines should not end with whitespace.",
	Severity:    core.SeverityInfo,
	Check:       checkTrailingWhitespace,
	Rationale:   "Invisible trailing whitespace produces noisy diffs.",
}

func checkTrailingWhitespace(f *lint.File, _ map[string]any) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic
	for i, tok := range f.Tokens {
		atLineEnd := i+1 == len(f.Tokens) || f.Tokens[i+1].Kind == token.Newline
		if !atLineEnd {
			continue
		}
		switch {
		case tok.Kind == token.Whitespace:
			diagnostics = append(diagnostics, lint.Diag(trailingWhitespaceID, tok.Pos, "trailing whitespace"))
		case tok.IsLineComment():
			trimmed := strings.TrimRight(tok.Text, " \t")
			if len(trimmed) < len(tok.Text) {
				pos := tok.Pos.Advance(trimmed)
				diagnostics = append(diagnostics, lint.Diag(trailingWhitespaceID, pos, "trailing whitespace in comment"))
			}
		}
	}
	return diagnostics
}
