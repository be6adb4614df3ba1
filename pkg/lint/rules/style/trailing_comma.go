package style

import (
	"fmt"

	"github.com/leapstack-labs/lualint/pkg/core"
	"github.com/leapstack-labs/lualint/pkg/lint"
	"github.com/leapstack-labs/lualint/pkg/lint/internal/scan"
)

func init() {
	lint.Register(TrailingComma)
}

const trailingCommaID = "trailing-comma"

// Accepted trailing_comma values.
const (
	TrailingRequire = "require"
	TrailingForbid  = "forbid"
)

// TrailingComma checks separator placement in multi-line table constructors.
var TrailingComma = lint.RuleDef{
	ID:          trailingCommaID,
	Name:        "style.trailing_comma",
	Group:       "style",
	Description: "Multi-line tables should end fields with commas, never start lines with one.",
	Severity:    core.SeverityWarning,
	ConfigKeys:  []string{"trailing_comma"},
	Check:       checkTrailingComma,
	Validate:    validateTrailingComma,
	Rationale:   "A trailing comma on the last field keeps diffs to one line when fields are appended. Leading commas hide the separator at the start of a line.",
	BadExample: `local t = {
  one = 1
  , two = 2
}`,
	GoodExample: `local t = {
  one = 1,
  two = 2,
}`,
}

type trailingCommaOptions struct {
	TrailingComma string `mapstructure:"trailing_comma"`
}

func validateTrailingComma(opts map[string]any) error {
	var o trailingCommaOptions
	if err := lint.DecodeOptions(opts, &o); err != nil {
		return err
	}
	switch o.TrailingComma {
	case "", TrailingRequire, TrailingForbid:
		return nil
	}
	return fmt.Errorf("trailing_comma must be %q or %q, got %q", TrailingRequire, TrailingForbid, o.TrailingComma)
}

func isFieldSep(s *scan.Structure, i int) bool {
	return s.Tokens[i].IsPunct(",") || s.Tokens[i].IsPunct(";")
}

func checkTrailingComma(f *lint.File, opts map[string]any) []lint.Diagnostic {
	mode := lint.GetStringOption(opts, "trailing_comma", TrailingRequire)
	s := scan.Build(f.Significant())

	var diagnostics []lint.Diagnostic
	for i, tok := range s.Tokens {
		// leading separators, wherever the table is
		if isFieldSep(s, i) && s.Kind(s.Enclosing[i]) == scan.Brace && s.FirstOnLine(i) {
			diagnostics = append(diagnostics, lint.Diag(trailingCommaID, tok.Pos,
				fmt.Sprintf("leading %q in table constructor; put separators at the end of the line", tok.Text)))
		}

		if !tok.IsPunct("{") {
			continue
		}
		closeIdx := s.Match[i]
		if closeIdx < 0 || closeIdx == i+1 {
			continue // unbalanced or empty
		}
		if s.Tokens[closeIdx].Pos.Line == tok.Pos.Line {
			continue // single-line table
		}

		last := closeIdx - 1
		hasTrailing := isFieldSep(s, last)
		switch {
		case mode == TrailingForbid && hasTrailing && !s.FirstOnLine(last):
			diagnostics = append(diagnostics, lint.Diag(trailingCommaID, s.Tokens[last].Pos,
				fmt.Sprintf("trailing %q after the last field", s.Tokens[last].Text)))
		case mode == TrailingRequire && !hasTrailing:
			diagnostics = append(diagnostics, lint.Diag(trailingCommaID, s.Tokens[last].End(),
				"missing trailing comma after the last field of a multi-line table"))
		}
	}
	return diagnostics
}
