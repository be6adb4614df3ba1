package lint

import (
	"maps"
	"slices"
	"strconv"

	"github.com/leapstack-labs/lualint/pkg/core"
)

// Config controls which rules are enabled, their severity and their options.
// A Config handed to NewAnalyzer is copied; later changes do not affect the run.
type Config struct {
	// DisabledRules contains rule IDs to skip
	DisabledRules map[string]bool `json:"disabled,omitempty"`

	// OnlyRules, when non-empty, restricts the run to these rule IDs
	OnlyRules map[string]bool `json:"only,omitempty"`

	// SeverityOverrides changes the default severity of rules
	SeverityOverrides map[string]core.Severity `json:"severity,omitempty"`

	// RuleOptions holds rule-specific options keyed by rule ID
	RuleOptions map[string]map[string]any `json:"options,omitempty"`
}

// NewConfig creates a default configuration with all rules enabled.
func NewConfig() *Config {
	return &Config{
		DisabledRules:     make(map[string]bool),
		OnlyRules:         make(map[string]bool),
		SeverityOverrides: make(map[string]core.Severity),
		RuleOptions:       make(map[string]map[string]any),
	}
}

// IsDisabled returns true if the rule should be skipped.
func (c *Config) IsDisabled(ruleID string) bool {
	if c == nil {
		return false
	}
	if len(c.OnlyRules) > 0 && !c.OnlyRules[ruleID] {
		return true
	}
	return c.DisabledRules[ruleID]
}

// GetSeverity returns the severity for a rule, applying any override.
func (c *Config) GetSeverity(ruleID string, defaultSeverity core.Severity) core.Severity {
	if c != nil {
		if sev, ok := c.SeverityOverrides[ruleID]; ok {
			return sev
		}
	}
	return defaultSeverity
}

// GetRuleOptions returns the options configured for a rule, or nil.
func (c *Config) GetRuleOptions(ruleID string) map[string]any {
	if c == nil {
		return nil
	}
	return c.RuleOptions[ruleID]
}

// Disable disables a rule by ID.
func (c *Config) Disable(ruleID string) *Config {
	c.DisabledRules[ruleID] = true
	return c
}

// Enable re-enables a previously disabled rule.
func (c *Config) Enable(ruleID string) *Config {
	delete(c.DisabledRules, ruleID)
	return c
}

// Only restricts the run to the given rules.
func (c *Config) Only(ruleIDs ...string) *Config {
	for _, id := range ruleIDs {
		c.OnlyRules[id] = true
	}
	return c
}

// SetSeverity overrides the severity for a rule.
func (c *Config) SetSeverity(ruleID string, severity core.Severity) *Config {
	c.SeverityOverrides[ruleID] = severity
	return c
}

// SetRuleOptions replaces the options for a rule.
func (c *Config) SetRuleOptions(ruleID string, opts map[string]any) *Config {
	c.RuleOptions[ruleID] = opts
	return c
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	out := NewConfig()
	if c == nil {
		return out
	}
	maps.Copy(out.DisabledRules, c.DisabledRules)
	maps.Copy(out.OnlyRules, c.OnlyRules)
	maps.Copy(out.SeverityOverrides, c.SeverityOverrides)
	for id, opts := range c.RuleOptions {
		out.RuleOptions[id] = maps.Clone(opts)
	}
	return out
}

// Validate checks every configured rule ID against the registry and runs each
// rule's option validation. It returns the first problem found as a *Fault
// with Component "config".
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	check := func(id, what string) error {
		if _, ok := GetRuleByID(id); !ok {
			return &Fault{Component: FaultConfig, Message: "unknown rule " + strconv.Quote(id) + " in " + what}
		}
		return nil
	}
	for _, id := range slices.Sorted(maps.Keys(c.DisabledRules)) {
		if err := check(id, "disabled rules"); err != nil {
			return err
		}
	}
	for _, id := range slices.Sorted(maps.Keys(c.OnlyRules)) {
		if err := check(id, "selected rules"); err != nil {
			return err
		}
	}
	for _, id := range slices.Sorted(maps.Keys(c.SeverityOverrides)) {
		if err := check(id, "severity overrides"); err != nil {
			return err
		}
	}
	for _, id := range slices.Sorted(maps.Keys(c.RuleOptions)) {
		if err := check(id, "rule options"); err != nil {
			return err
		}
		rule, _ := GetRuleByID(id)
		if err := rule.ValidateOptions(c.RuleOptions[id]); err != nil {
			return &Fault{Component: FaultConfig, Message: "rule " + strconv.Quote(id) + ": " + err.Error(), Err: err}
		}
	}
	return nil
}
