package layout

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/lualint/pkg/core"
	"github.com/leapstack-labs/lualint/pkg/lint"
	"github.com/leapstack-labs/lualint/pkg/lint/internal/scan"
	"github.com/leapstack-labs/lualint/pkg/token"
)

func init() {
	lint.Register(BlankLineAfterBlock)
}

const blankLineAfterBlockID = "blank-line-after-block"

// BlankLineAfterBlock requires a blank line between a block's 'end' and the
// next statement.
var BlankLineAfterBlock = lint.RuleDef{
	ID:          blankLineAfterBlockID,
	Name:        "layout.blank_line_after_block",
	Group:       "layout",
	Description: "A statement following a block 'end' should be separated by a blank line.",
	Severity:    core.SeverityInfo,
	Check:       checkBlankLineAfterBlock,
	Rationale:   "The blank line marks where the block's scope ends.",
	BadExample:  "if x then\n  y()\nend\nz()",
	GoodExample: "if x then\n  y()\nend\n\nz()",
}

// closesEnclosing reports tokens that end the surrounding construct, after
// which no separating blank line is expected.
func closesEnclosing(tok token.Token) bool {
	switch {
	case tok.IsKeyword("end"), tok.IsKeyword("else"), tok.IsKeyword("elseif"), tok.IsKeyword("until"):
		return true
	case tok.IsPunct(")"), tok.IsPunct("}"), tok.IsPunct("]"), tok.IsPunct(","), tok.IsPunct(";"):
		return true
	}
	return false
}

func checkBlankLineAfterBlock(f *lint.File, _ map[string]any) []lint.Diagnostic {
	s := scan.Build(f.Significant())
	lines := f.Lines()

	var diagnostics []lint.Diagnostic
	for i, tok := range s.Tokens {
		if !tok.IsKeyword("end") || !s.LastOnLine(i) {
			continue
		}
		next, ok := s.Next(i)
		if !ok || closesEnclosing(next) {
			continue
		}
		if hasBlankLine(lines, tok.Pos.Line+1, next.Pos.Line-1) {
			continue
		}
		diagnostics = append(diagnostics, lint.Diag(blankLineAfterBlockID, next.Pos,
			fmt.Sprintf("expected a blank line after the block ending on line %d", tok.Pos.Line)))
	}
	return diagnostics
}

// hasBlankLine reports whether any line in [from, to] is empty or whitespace.
func hasBlankLine(lines []string, from, to int) bool {
	for n := from; n <= to && n <= len(lines); n++ {
		if strings.TrimSpace(lines[n-1]) == "" {
			return true
		}
	}
	return false
}
