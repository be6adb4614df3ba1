package style

import (
	"github.com/leapstack-labs/lualint/pkg/core"
	"github.com/leapstack-labs/lualint/pkg/lint"
	"github.com/leapstack-labs/lualint/pkg/lint/internal/scan"
	"github.com/leapstack-labs/lualint/pkg/token"
)

func init() {
	lint.Register(DeclarationStyle)
}

const declarationStyleID = "declaration-style"

// DeclarationStyle flags comma-chained local declarations.
var DeclarationStyle = lint.RuleDef{
	ID:          declarationStyleID,
	Name:        "style.declaration",
	Group:       "style",
	Description: "Each local variable should be declared in its own statement.",
	Severity:    core.SeverityWarning,
	Check:       checkDeclarationStyle,
	Rationale:   "One declaration per statement is easier to read, reorder and delete.",
	BadExample:  `local a, b = 1, true`,
	GoodExample: "local a = 1\nlocal b = true",
	Fix:         "Split the declaration. Multiple results of a single call, such as `local ok, err = pcall(f)`, are not flagged.",
}

func checkDeclarationStyle(f *lint.File, _ map[string]any) []lint.Diagnostic {
	s := scan.Build(f.Significant())

	var diagnostics []lint.Diagnostic
	for i, tok := range s.Tokens {
		if !tok.IsKeyword("local") {
			continue
		}
		names, j := localNames(s.Tokens, i+1)
		if names < 2 {
			continue
		}
		if j < len(s.Tokens) && s.Tokens[j].Is(token.Operator, "=") && singleMultiValue(s, j+1) {
			continue
		}
		diagnostics = append(diagnostics, lint.Diag(declarationStyleID, tok.Pos,
			"comma-chained local declaration; declare each variable in its own statement"))
	}
	return diagnostics
}

// localNames counts the names of a local declaration starting at i, including
// Lua 5.4 attributes such as <const>, and returns the index after the list.
func localNames(toks []token.Token, i int) (int, int) {
	count := 0
	for i < len(toks) && toks[i].Kind == token.Identifier {
		count++
		i++
		if i+2 < len(toks) && toks[i].Is(token.Operator, "<") &&
			toks[i+1].Kind == token.Identifier && toks[i+2].Is(token.Operator, ">") {
			i += 3
		}
		if i < len(toks) && toks[i].IsPunct(",") {
			i++
			continue
		}
		break
	}
	return count, i
}

// singleMultiValue reports whether the expression list starting at i is one
// call or vararg, which may legitimately fill several names.
func singleMultiValue(s *scan.Structure, i int) bool {
	if i >= len(s.Tokens) {
		return false
	}
	last := -1
	for j := i; j < len(s.Tokens); j++ {
		tok := s.Tokens[j]
		if s.Enclosing[j] != s.Enclosing[i] {
			break // left the enclosing scope
		}
		if tok.IsPunct(",") {
			return false
		}
		if tok.IsPunct(";") || startsStatement(tok) || closesBlock(tok) {
			break
		}
		last = j
		if m := s.Match[j]; m > j {
			last = m
			j = m
			if s.LastOnLine(m) {
				break
			}
			continue
		}
		if s.LastOnLine(j) {
			break
		}
	}
	if last < 0 {
		return false
	}
	end := s.Tokens[last]
	if end.IsPunct("...") {
		return true
	}
	// (f()) truncates to one value
	parenthesized := s.Tokens[i].IsPunct("(") && s.Match[i] == last
	return end.IsPunct(")") && !parenthesized
}

// startsStatement reports keywords that can only begin a new statement.
func startsStatement(tok token.Token) bool {
	switch {
	case tok.IsKeyword("local"), tok.IsKeyword("return"), tok.IsKeyword("if"),
		tok.IsKeyword("for"), tok.IsKeyword("while"), tok.IsKeyword("repeat"),
		tok.IsKeyword("break"), tok.IsKeyword("goto"):
		return true
	}
	return false
}

func closesBlock(tok token.Token) bool {
	return tok.IsKeyword("end") || tok.IsKeyword("else") || tok.IsKeyword("elseif") || tok.IsKeyword("until")
}
