package layout

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/lualint/pkg/core"
	"github.com/leapstack-labs/lualint/pkg/lint"
	"github.com/leapstack-labs/lualint/pkg/token"
)

func init() {
	lint.Register(Indentation)
}

const indentationID = "indentation"

const defaultIndentWidth = 4

// Indentation checks the width and consistency of leading whitespace.
var Indentation = lint.RuleDef{
	ID:          indentationID,
	Name:        "layout.indentation",
	Group:       "layout",
	Description: "Indentation should be a multiple of the indent width and never mix tabs and spaces.",
	Severity:    core.SeverityWarning,
	ConfigKeys:  []string{"indent_width"},
	Check:       checkIndentation,
	Validate:    validateIndentation,
	Rationale:   "Consistent indentation keeps block structure visible at a glance.",
	BadExample:  "if x then\n   print(x)\nend",
	GoodExample: "if x then\n    print(x)\nend",
}

type indentationOptions struct {
	IndentWidth *int `mapstructure:"indent_width"`
}

func validateIndentation(opts map[string]any) error {
	var o indentationOptions
	if err := lint.DecodeOptions(opts, &o); err != nil {
		return err
	}
	if o.IndentWidth != nil && *o.IndentWidth <= 0 {
		return fmt.Errorf("indent_width must be a positive integer, got %d", *o.IndentWidth)
	}
	return nil
}

func checkIndentation(f *lint.File, opts map[string]any) []lint.Diagnostic {
	width := lint.GetIntOption(opts, "indent_width", defaultIndentWidth)
	if width <= 0 {
		width = defaultIndentWidth
	}

	var diagnostics []lint.Diagnostic
	for i, tok := range f.Tokens {
		// leading whitespace is a Whitespace token at column 1 that is
		// followed by something other than a line break
		if tok.Kind != token.Whitespace || tok.Pos.Column != 1 {
			continue
		}
		if i+1 == len(f.Tokens) || f.Tokens[i+1].Kind == token.Newline {
			continue // blank line
		}

		indent := tok.Text
		hasTab := strings.ContainsRune(indent, '\t')
		hasSpace := strings.ContainsRune(indent, ' ')
		switch {
		case hasTab && hasSpace:
			diagnostics = append(diagnostics, lint.Diag(indentationID, tok.Pos,
				"indentation mixes tabs and spaces"))
		case hasSpace && len(indent)%width != 0:
			diagnostics = append(diagnostics, lint.Diag(indentationID, tok.Pos,
				fmt.Sprintf("indentation of %d spaces is not a multiple of %d", len(indent), width)))
		}
	}
	return diagnostics
}
