package style

import (
	"github.com/leapstack-labs/lualint/pkg/core"
	"github.com/leapstack-labs/lualint/pkg/lint"
	"github.com/leapstack-labs/lualint/pkg/lint/internal/scan"
	"github.com/leapstack-labs/lualint/pkg/token"
)

func init() {
	lint.Register(Semicolon)
}

const semicolonID = "semicolon"

// Semicolon enforces (or forbids) ';' after simple statements.
var Semicolon = lint.RuleDef{
	ID:          semicolonID,
	Name:        "style.semicolon",
	Group:       "style",
	Description: "Simple statements should be terminated with ';'.",
	Severity:    core.SeverityWarning,
	ConfigKeys:  []string{"require_semicolons"},
	Check:       checkSemicolon,
	Validate:    validateSemicolon,
	Rationale:   "An explicit terminator removes the call-versus-new-statement ambiguity of a line that starts with '('.",
	BadExample:  "local x = 1\nprint(x)",
	GoodExample: "local x = 1;\nprint(x);",
	Fix:         "Set require_semicolons to false to flag terminators instead.",
}

type semicolonOptions struct {
	RequireSemicolons *bool `mapstructure:"require_semicolons"`
}

func validateSemicolon(opts map[string]any) error {
	var o semicolonOptions
	return lint.DecodeOptions(opts, &o)
}

func checkSemicolon(f *lint.File, opts map[string]any) []lint.Diagnostic {
	s := scan.Build(f.Significant())
	if !lint.GetBoolOption(opts, "require_semicolons", true) {
		return forbidSemicolons(s)
	}

	var diagnostics []lint.Diagnostic
	for i, tok := range s.Tokens {
		if !s.LastOnLine(i) || !s.InStatementContext(i) || tok.IsPunct(";") {
			continue
		}
		if !endsSimpleStatement(s, i) {
			continue
		}
		if next, ok := s.Next(i); ok && continuesExpression(next) {
			continue
		}
		if lineStart(s, i).IsKeyword("until") {
			continue
		}
		diagnostics = append(diagnostics, lint.Diag(semicolonID, tok.End(),
			"missing ';' at end of statement"))
	}
	return diagnostics
}

func forbidSemicolons(s *scan.Structure) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic
	for i, tok := range s.Tokens {
		if tok.IsPunct(";") && s.InStatementContext(i) {
			diagnostics = append(diagnostics, lint.Diag(semicolonID, tok.Pos, "unnecessary ';'"))
		}
	}
	return diagnostics
}

// endsSimpleStatement reports whether token i can be the final token of a
// simple statement. Block keywords, operators, separators and function
// headers cannot.
func endsSimpleStatement(s *scan.Structure, i int) bool {
	tok := s.Tokens[i]
	switch tok.Kind {
	case token.Operator:
		return false
	case token.Keyword:
		return tok.IsKeyword("break") || tok.IsKeyword("true") || tok.IsKeyword("false") || tok.IsKeyword("nil")
	case token.Punctuation:
		switch tok.Text {
		case ")":
			return !s.ClosesFunctionHeader(i)
		case "}", "]", "...":
			return true
		}
		return false
	}
	return true
}

// continuesExpression reports whether a line starting with tok continues the
// previous line rather than starting a new statement.
func continuesExpression(tok token.Token) bool {
	switch tok.Kind {
	case token.Operator, token.String:
		return true
	case token.Keyword:
		return tok.IsKeyword("and") || tok.IsKeyword("or") || tok.IsKeyword("then") || tok.IsKeyword("do")
	case token.Punctuation:
		switch tok.Text {
		case ".", ":", ",", "(", "{", "[":
			return true
		}
	}
	return false
}

// lineStart returns the first significant token on the line of token i.
func lineStart(s *scan.Structure, i int) token.Token {
	for i > 0 && !s.FirstOnLine(i) {
		i--
	}
	return s.Tokens[i]
}
