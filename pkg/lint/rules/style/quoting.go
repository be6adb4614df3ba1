package style

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/lualint/pkg/core"
	"github.com/leapstack-labs/lualint/pkg/lint"
	"github.com/leapstack-labs/lualint/pkg/token"
)

func init() {
	lint.Register(Quoting)
}

// Quoting enforces one quote character for short string literals.
var Quoting = lint.RuleDef{
	ID:          quotingID,
	Name:        "style.quoting",
	Group:       "style",
	Description: "String literals should use the configured quote style.",
	Severity:    core.SeverityWarning,
	ConfigKeys:  []string{"quote_style"},
	Check:       checkQuoting,
	Validate:    validateQuoting,
	Rationale:   "Mixing quote characters makes strings harder to scan and produces noisy diffs when code is moved between files.",
	BadExample:  `local name = "Bob"`,
	GoodExample: `local name = 'Bob'`,
	Fix:         "Switch the delimiters. Literals that contain the preferred quote are left alone.",
}

const quotingID = "quoting"

// Accepted quote_style values.
const (
	QuoteSingle = "single"
	QuoteDouble = "double"
)

type quotingOptions struct {
	QuoteStyle string `mapstructure:"quote_style"`
}

func validateQuoting(opts map[string]any) error {
	var o quotingOptions
	if err := lint.DecodeOptions(opts, &o); err != nil {
		return err
	}
	switch o.QuoteStyle {
	case "", QuoteSingle, QuoteDouble:
		return nil
	}
	return fmt.Errorf("quote_style must be %q or %q, got %q", QuoteSingle, QuoteDouble, o.QuoteStyle)
}

func checkQuoting(f *lint.File, opts map[string]any) []lint.Diagnostic {
	want, wantChar, avoid := token.SingleQuoted, "'", "double"
	if lint.GetStringOption(opts, "quote_style", QuoteSingle) == QuoteDouble {
		want, wantChar, avoid = token.DoubleQuoted, `"`, "single"
	}

	var diagnostics []lint.Diagnostic
	for _, tok := range f.Tokens {
		if tok.Kind != token.String || tok.Style == token.LongBracket || tok.Style == want {
			continue
		}
		body := tok.Text[1 : len(tok.Text)-1]
		if strings.Contains(body, wantChar) {
			continue
		}
		diagnostics = append(diagnostics, lint.Diag(quotingID, tok.Pos,
			fmt.Sprintf("string literal uses %s quotes; use %s quotes", avoid, want)))
	}
	return diagnostics
}
