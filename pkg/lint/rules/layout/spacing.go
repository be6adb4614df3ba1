package layout

import (
	"fmt"

	"github.com/leapstack-labs/lualint/pkg/core"
	"github.com/leapstack-labs/lualint/pkg/lint"
	"github.com/leapstack-labs/lualint/pkg/token"
)

func init() {
	lint.Register(Spacing)
}

const spacingID = "spacing"

// Spacing checks the single space around control keywords and table braces.
var Spacing = lint.RuleDef{
	ID:          spacingID,
	Name:        "layout.spacing",
	Group:       "layout",
	Description: "Control keywords are followed by one space; 'then', 'do' and an assigned '{' are preceded by one.",
	Severity:    core.SeverityWarning,
	Check:       checkSpacing,
	Rationale:   "Keywords glued to parentheses read like function calls.",
	BadExample:  "if(x)then\n  local t={}\nend",
	GoodExample: "if x then\n  local t = {}\nend",
}

// spacedKeywords must be followed by exactly one space.
var spacedKeywords = map[string]bool{
	"if":     true,
	"elseif": true,
	"while":  true,
	"until":  true,
	"for":    true,
	"return": true,
	"local":  true,
}

func checkSpacing(f *lint.File, _ map[string]any) []lint.Diagnostic {
	toks := f.Tokens

	var diagnostics []lint.Diagnostic
	for i, tok := range toks {
		switch {
		case tok.Kind == token.Keyword && spacedKeywords[tok.Text]:
			if d, ok := checkSpaceAfter(toks, i); ok {
				diagnostics = append(diagnostics, d)
			}
		case tok.IsKeyword("then"), tok.IsKeyword("do"):
			if d, ok := checkSpaceBefore(toks, i); ok {
				diagnostics = append(diagnostics, d)
			}
		case tok.IsPunct("{"):
			// after 'return' the keyword check already covers the gap
			prev := prevSignificant(toks, i)
			if prev >= 0 && toks[prev].Is(token.Operator, "=") {
				if d, ok := checkSpaceBefore(toks, i); ok {
					diagnostics = append(diagnostics, d)
				}
			}
		}
	}
	return diagnostics
}

func checkSpaceAfter(toks []token.Token, i int) (lint.Diagnostic, bool) {
	kw := toks[i]
	if i+1 == len(toks) {
		return lint.Diagnostic{}, false
	}
	next := toks[i+1]
	switch next.Kind {
	case token.Newline, token.Comment:
		return lint.Diagnostic{}, false
	case token.Whitespace:
		if endsLine(toks, i+2) || next.Text == " " {
			return lint.Diagnostic{}, false
		}
		return lint.Diag(spacingID, next.Pos,
			fmt.Sprintf("expected exactly one space after '%s'", kw.Text)), true
	}
	if kw.IsKeyword("return") && (next.IsPunct(";") || next.IsPunct(")")) {
		return lint.Diagnostic{}, false
	}
	return lint.Diag(spacingID, kw.End(),
		fmt.Sprintf("missing space after '%s'", kw.Text)), true
}

func checkSpaceBefore(toks []token.Token, i int) (lint.Diagnostic, bool) {
	tok := toks[i]
	if i == 0 {
		return lint.Diagnostic{}, false
	}
	prev := toks[i-1]
	switch prev.Kind {
	case token.Newline, token.Comment:
		return lint.Diagnostic{}, false
	case token.Whitespace:
		if i-2 < 0 || toks[i-2].Kind == token.Newline || prev.Text == " " {
			return lint.Diagnostic{}, false // indentation or correct
		}
		return lint.Diag(spacingID, prev.Pos,
			fmt.Sprintf("expected exactly one space before '%s'", tok.Text)), true
	}
	return lint.Diag(spacingID, tok.Pos,
		fmt.Sprintf("missing space before '%s'", tok.Text)), true
}

// endsLine reports whether toks[i] is a line break, a comment or past the end.
func endsLine(toks []token.Token, i int) bool {
	return i >= len(toks) || toks[i].Kind == token.Newline || toks[i].Kind == token.Comment
}

func prevSignificant(toks []token.Token, i int) int {
	for j := i - 1; j >= 0; j-- {
		if !toks[j].Kind.IsTrivia() {
			return j
		}
	}
	return -1
}
