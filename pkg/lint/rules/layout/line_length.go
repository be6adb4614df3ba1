package layout

import (
	"fmt"

	"github.com/leapstack-labs/lualint/pkg/core"
	"github.com/leapstack-labs/lualint/pkg/lint"
)

func init() {
	lint.Register(LineLength)
}

const lineLengthID = "line-length"

const (
	defaultMaxLineLength = 120
	defaultTabWidth      = 4
)

// LineLength flags lines wider than the configured limit.
var LineLength = lint.RuleDef{
	ID:          lineLengthID,
	Name:        "layout.line_length",
	Group:       "layout",
	Description: "Lines should not exceed the maximum line length.",
	Severity:    core.SeverityInfo,
	ConfigKeys:  []string{"max_line_length", "tab_width"},
	Check:       checkLineLength,
	Validate:    validateLineLength,
	Rationale:   "Long lines force horizontal scrolling in editors and side-by-side diffs.",
	Fix:         "Break long expressions after an operator or a comma.",
}

type lineLengthOptions struct {
	MaxLineLength *int `mapstructure:"max_line_length"`
	TabWidth      *int `mapstructure:"tab_width"`
}

func validateLineLength(opts map[string]any) error {
	var o lineLengthOptions
	if err := lint.DecodeOptions(opts, &o); err != nil {
		return err
	}
	if o.MaxLineLength != nil && *o.MaxLineLength <= 0 {
		return fmt.Errorf("max_line_length must be a positive integer, got %d", *o.MaxLineLength)
	}
	if o.TabWidth != nil && *o.TabWidth <= 0 {
		return fmt.Errorf("tab_width must be a positive integer, got %d", *o.TabWidth)
	}
	return nil
}

func checkLineLength(f *lint.File, opts map[string]any) []lint.Diagnostic {
	limit := lint.GetIntOption(opts, "max_line_length", defaultMaxLineLength)
	tabWidth := lint.GetIntOption(opts, "tab_width", defaultTabWidth)
	if limit <= 0 {
		limit = defaultMaxLineLength
	}
	if tabWidth <= 0 {
		tabWidth = defaultTabWidth
	}

	var diagnostics []lint.Diagnostic
	for n, line := range f.Lines() {
		width, overflow := 0, -1
		for off, r := range line {
			if r == '\t' {
				width += tabWidth
			} else {
				width++
			}
			if width > limit && overflow < 0 {
				overflow = off
			}
		}
		if overflow < 0 {
			continue
		}
		start := f.LineStart(n + 1)
		pos := f.PosAt(start.Offset + overflow)
		diagnostics = append(diagnostics, lint.Diag(lineLengthID, pos,
			fmt.Sprintf("line is %d columns long; maximum is %d", width, limit)))
	}
	return diagnostics
}
