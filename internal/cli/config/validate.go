package config

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/leapstack-labs/lualint/pkg/core"
	"github.com/leapstack-labs/lualint/pkg/lint"
	_ "github.com/leapstack-labs/lualint/pkg/lint/rules" // register rules for ID validation
)

// ValidationError reports an invalid configuration. It is returned before
// any source file is read.
type ValidationError struct {
	File    string // config file, if any
	Field   string // dotted config key
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("invalid configuration")
	if e.File != "" {
		b.WriteString(" in " + e.File)
	}
	if e.Field != "" {
		b.WriteString(": " + e.Field)
	}
	b.WriteString(": " + e.Message)
	return b.String()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate checks the configuration, including rule IDs and rule parameters.
func (c *Config) Validate() error {
	if !slices.Contains(OutputFormats, c.Output) {
		return c.invalid("output", fmt.Sprintf("unknown format %q (want one of %s)", c.Output, strings.Join(OutputFormats, ", ")), nil)
	}
	if c.Workers < 0 {
		return c.invalid("workers", "must not be negative", nil)
	}
	if c.FileTimeout < 0 {
		return c.invalid("file_timeout", "must not be negative", nil)
	}
	if c.Cache.Enabled && c.Cache.Path == "" {
		return c.invalid("cache.path", "required when the cache is enabled", nil)
	}
	_, err := c.ToLintConfig()
	return err
}

// ToLintConfig converts the lint section into an engine configuration and
// validates it against the registered rules.
func (c *Config) ToLintConfig() (*lint.Config, error) {
	lc := lint.NewConfig()
	lintCfg := c.Lint

	for _, id := range lintCfg.Disabled {
		lc.Disable(strings.TrimSpace(id))
	}
	for _, id := range slices.Sorted(maps.Keys(lintCfg.Severity)) {
		sev, ok := core.ParseSeverity(lintCfg.Severity[id])
		if !ok {
			return nil, c.invalid("lint.severity."+id, fmt.Sprintf("unknown severity %q", lintCfg.Severity[id]), nil)
		}
		lc.SetSeverity(id, sev)
	}
	for _, id := range slices.Sorted(maps.Keys(lintCfg.Rules)) {
		if _, ok := lint.GetRuleByID(id); !ok {
			return nil, c.invalid("lint.rules."+id, fmt.Sprintf("unknown rule %q", id), nil)
		}
		rc := lintCfg.Rules[id]
		if rc.Enabled != nil {
			if *rc.Enabled {
				lc.Enable(id)
			} else {
				lc.Disable(id)
			}
		}
		if rc.Severity != "" {
			sev, ok := core.ParseSeverity(rc.Severity)
			if !ok {
				return nil, c.invalid("lint.rules."+id+".severity", fmt.Sprintf("unknown severity %q", rc.Severity), nil)
			}
			lc.SetSeverity(id, sev)
		}
		if len(rc.Parameters) > 0 {
			lc.SetRuleOptions(id, rc.Parameters)
		}
	}

	if err := lc.Validate(); err != nil {
		var fault *lint.Fault
		if errors.As(err, &fault) {
			return nil, c.invalid("lint", fault.Message, err)
		}
		return nil, c.invalid("lint", err.Error(), err)
	}
	return lc, nil
}

func (c *Config) invalid(field, msg string, err error) *ValidationError {
	return &ValidationError{File: c.ConfigFile, Field: field, Message: msg, Err: err}
}
