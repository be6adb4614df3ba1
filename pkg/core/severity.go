package core

import (
	"fmt"
	"strings"
)

// Severity ranks a style violation. Lower values are more important, so a
// report threshold keeps every diagnostic whose severity is <= the threshold.
type Severity int

// Severity levels, most important first.
const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityHint
)

var severityNames = [...]string{
	SeverityError:   "error",
	SeverityWarning: "warning",
	SeverityInfo:    "info",
	SeverityHint:    "hint",
}

// Severities lists every level in rank order.
func Severities() []Severity {
	return []Severity{SeverityError, SeverityWarning, SeverityInfo, SeverityHint}
}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return "unknown"
	}
	return severityNames[s]
}

// AtLeast reports whether s is as important as threshold or more.
func (s Severity) AtLeast(threshold Severity) bool {
	return s <= threshold
}

// ParseSeverity accepts a level name in any case. Unknown names yield
// SeverityWarning and false.
func ParseSeverity(name string) (Severity, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range severityNames {
		if n == name {
			return Severity(i), true
		}
	}
	return SeverityWarning, false
}

// MarshalText encodes the level by name, so JSON reports and config files
// carry "warning" rather than 1.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a level name.
func (s *Severity) UnmarshalText(b []byte) error {
	sev, ok := ParseSeverity(string(b))
	if !ok {
		return fmt.Errorf("unknown severity %q", string(b))
	}
	*s = sev
	return nil
}

// RuleInfo is the printable description of a registered rule, used by the
// rules command and the init template.
type RuleInfo struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Group           string   `json:"group"`
	Description     string   `json:"description"`
	DefaultSeverity Severity `json:"default_severity"`
	ConfigKeys      []string `json:"config_keys,omitempty"`

	Rationale   string `json:"rationale,omitempty"`
	BadExample  string `json:"bad_example,omitempty"`
	GoodExample string `json:"good_example,omitempty"`
	Fix         string `json:"fix,omitempty"`
}
