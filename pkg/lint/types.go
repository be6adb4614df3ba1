package lint

import (
	"github.com/leapstack-labs/lualint/pkg/core"
	"github.com/leapstack-labs/lualint/pkg/token"
)

// =============================================================================
// Rule Definitions
// =============================================================================

// RuleDef is a data-driven rule definition.
// Rules are stateless - all context comes via the Check function parameters.
type RuleDef struct {
	ID          string        // Unique identifier used in config and reports, e.g., "quoting"
	Name        string        // Human-readable name, e.g., "style.quoting"
	Group       string        // Category, e.g., "style", "layout", "naming"
	Description string        // Human-readable description
	Severity    core.Severity // Default severity
	Check       CheckFunc     // The check function
	Validate    ValidateFunc  // Optional: rejects malformed options before a run
	ConfigKeys  []string      // Configuration keys this rule accepts (for rule-specific options)

	// Documentation fields for richer rule documentation
	Rationale   string // Why this rule exists, what problems it prevents
	BadExample  string // Code showing the anti-pattern
	GoodExample string // Code showing the correct pattern
	Fix         string // How to fix violations (when not obvious)
}

// CheckFunc analyzes a tokenized file and returns diagnostics.
// The opts parameter contains rule-specific options from configuration.
// Implementations must not retain or modify f.
type CheckFunc func(f *File, opts map[string]any) []Diagnostic

// ValidateFunc checks rule-specific options and reports the first problem.
type ValidateFunc func(opts map[string]any) error

// =============================================================================
// Diagnostics
// =============================================================================

// Diagnostic represents a style violation.
type Diagnostic struct {
	RuleID   string         `json:"rule"`
	Severity core.Severity  `json:"severity"`
	Message  string         `json:"message"`
	Pos      token.Position `json:"pos"`
}

// =============================================================================
// Rule Interface
// =============================================================================

// Rule is the interface all lint rules implement.
type Rule interface {
	// ID returns the unique identifier, e.g., "quoting"
	ID() string

	// Name returns the human-readable name, e.g., "style.quoting"
	Name() string

	// Group returns the category, e.g., "style", "layout", "naming"
	Group() string

	// Description returns a human-readable description
	Description() string

	// DefaultSeverity returns the default severity for this rule
	DefaultSeverity() core.Severity

	// ConfigKeys returns configuration keys this rule accepts
	ConfigKeys() []string

	// Documentation methods for richer rule documentation
	Rationale() string   // Why this rule exists, what problems it prevents
	BadExample() string  // Code showing the anti-pattern
	GoodExample() string // Code showing the correct pattern
	Fix() string         // How to fix violations (when not obvious)

	// Check analyzes a file and returns diagnostics.
	Check(f *File, opts map[string]any) []Diagnostic

	// ValidateOptions reports whether opts are acceptable for this rule.
	ValidateOptions(opts map[string]any) error
}

// GetRuleInfo extracts metadata from a Rule for documentation/tooling.
func GetRuleInfo(r Rule) core.RuleInfo {
	return core.RuleInfo{
		ID:              r.ID(),
		Name:            r.Name(),
		Group:           r.Group(),
		Description:     r.Description(),
		DefaultSeverity: r.DefaultSeverity(),
		ConfigKeys:      r.ConfigKeys(),
		Rationale:       r.Rationale(),
		BadExample:      r.BadExample(),
		GoodExample:     r.GoodExample(),
		Fix:             r.Fix(),
	}
}

// =============================================================================
// Wrapped RuleDef
// =============================================================================

// wrappedRuleDef wraps a RuleDef to implement Rule.
type wrappedRuleDef struct {
	def RuleDef
}

// WrapRuleDef wraps a RuleDef to implement the Rule interface.
func WrapRuleDef(def RuleDef) Rule {
	return &wrappedRuleDef{def: def}
}

func (w *wrappedRuleDef) ID() string                     { return w.def.ID }
func (w *wrappedRuleDef) Name() string                   { return w.def.Name }
func (w *wrappedRuleDef) Group() string                  { return w.def.Group }
func (w *wrappedRuleDef) Description() string            { return w.def.Description }
func (w *wrappedRuleDef) DefaultSeverity() core.Severity { return w.def.Severity }
func (w *wrappedRuleDef) ConfigKeys() []string           { return w.def.ConfigKeys }

// Documentation methods
func (w *wrappedRuleDef) Rationale() string   { return w.def.Rationale }
func (w *wrappedRuleDef) BadExample() string  { return w.def.BadExample }
func (w *wrappedRuleDef) GoodExample() string { return w.def.GoodExample }
func (w *wrappedRuleDef) Fix() string         { return w.def.Fix }

func (w *wrappedRuleDef) Check(f *File, opts map[string]any) []Diagnostic {
	if w.def.Check == nil {
		return nil
	}
	return w.def.Check(f, opts)
}

func (w *wrappedRuleDef) ValidateOptions(opts map[string]any) error {
	if w.def.Validate == nil {
		if len(opts) == 0 {
			return nil
		}
		// a rule without options accepts none
		return DecodeOptions(opts, &struct{}{})
	}
	return w.def.Validate(opts)
}

// Unwrap returns the underlying RuleDef.
func (w *wrappedRuleDef) Unwrap() RuleDef {
	return w.def
}
