package lint

import (
	"fmt"

	"github.com/leapstack-labs/lualint/pkg/token"
)

// Fault components. Rule faults use RuleComponent(id).
const (
	FaultTokenizer = "tokenizer"
	FaultConfig    = "config"
	FaultEngine    = "engine" // deadline or cancellation
	FaultRead      = "read"
)

// RuleComponent returns the fault component name for a rule.
func RuleComponent(ruleID string) string {
	return "rule:" + ruleID
}

// Fault is a tooling failure, as opposed to a style violation: a source file
// that cannot be tokenized, a rule that panicked, or an invalid configuration.
type Fault struct {
	Component string         `json:"component"`
	Path      string         `json:"path,omitempty"`
	Pos       token.Position `json:"pos"`
	Message   string         `json:"message"`
	Err       error          `json:"-"`
}

func (f *Fault) Error() string {
	switch {
	case f.Path != "" && f.Pos.IsValid():
		return fmt.Sprintf("%s:%d:%d: %s: %s", f.Path, f.Pos.Line, f.Pos.Column, f.Component, f.Message)
	case f.Path != "":
		return fmt.Sprintf("%s: %s: %s", f.Path, f.Component, f.Message)
	default:
		return fmt.Sprintf("%s: %s", f.Component, f.Message)
	}
}

func (f *Fault) Unwrap() error {
	return f.Err
}
