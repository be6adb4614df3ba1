// Package report turns per-file analysis results into an ordered report and
// renders it as text, JSON or markdown.
package report

import (
	"cmp"
	"slices"

	"github.com/leapstack-labs/lualint/pkg/core"
	"github.com/leapstack-labs/lualint/pkg/lint"
)

// Entry is one style violation as it appears in a report.
type Entry struct {
	Path     string        `json:"path"`
	Line     int           `json:"line"`
	Column   int           `json:"column"`
	Rule     string        `json:"rule"`
	Message  string        `json:"message"`
	Severity core.Severity `json:"severity"`
}

// FaultEntry is one tooling fault as it appears in a report.
type FaultEntry struct {
	Component string `json:"component"`
	Path      string `json:"path,omitempty"`
	Line      int    `json:"line,omitempty"`
	Column    int    `json:"column,omitempty"`
	Message   string `json:"message"`
}

// Summary counts the contents of a report.
type Summary struct {
	Files           int `json:"files"`
	FilesWithIssues int `json:"files_with_issues"`
	Violations      int `json:"violations"`
	Faults          int `json:"faults"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Info            int `json:"info"`
	Hints           int `json:"hints"`
}

// Report is an immutable, ordered view over analysis results.
type Report struct {
	entries []Entry
	faults  []FaultEntry
	summary Summary
}

// Option configures how a report is built.
type Option func(*options)

type options struct {
	threshold core.Severity
}

// MinSeverity drops violations less important than sev. Faults are never
// dropped.
func MinSeverity(sev core.Severity) Option {
	return func(o *options) { o.threshold = sev }
}

// New builds a report from results. Violations are ordered by path, line,
// column and rule ID; the input slices are not modified.
func New(results []lint.FileResult, opts ...Option) *Report {
	o := options{threshold: core.SeverityHint}
	for _, opt := range opts {
		opt(&o)
	}

	r := &Report{}
	r.summary.Files = len(results)

	for _, res := range results {
		kept := 0
		for _, d := range res.Diagnostics {
			if !d.Severity.AtLeast(o.threshold) {
				continue
			}
			kept++
			r.entries = append(r.entries, Entry{
				Path:     res.Path,
				Line:     d.Pos.Line,
				Column:   d.Pos.Column,
				Rule:     d.RuleID,
				Message:  d.Message,
				Severity: d.Severity,
			})
		}
		if kept > 0 {
			r.summary.FilesWithIssues++
		}

		for _, f := range res.Faults {
			path := f.Path
			if path == "" {
				path = res.Path
			}
			r.faults = append(r.faults, FaultEntry{
				Component: f.Component,
				Path:      path,
				Line:      f.Pos.Line,
				Column:    f.Pos.Column,
				Message:   f.Message,
			})
		}
	}

	slices.SortStableFunc(r.entries, func(a, b Entry) int {
		return cmp.Or(
			cmp.Compare(a.Path, b.Path),
			cmp.Compare(a.Line, b.Line),
			cmp.Compare(a.Column, b.Column),
			cmp.Compare(a.Rule, b.Rule),
		)
	})
	slices.SortStableFunc(r.faults, func(a, b FaultEntry) int {
		return cmp.Or(
			cmp.Compare(a.Path, b.Path),
			cmp.Compare(a.Line, b.Line),
			cmp.Compare(a.Column, b.Column),
			cmp.Compare(a.Component, b.Component),
		)
	})

	r.summary.Violations = len(r.entries)
	r.summary.Faults = len(r.faults)
	for _, e := range r.entries {
		switch e.Severity {
		case core.SeverityError:
			r.summary.Errors++
		case core.SeverityWarning:
			r.summary.Warnings++
		case core.SeverityInfo:
			r.summary.Info++
		case core.SeverityHint:
			r.summary.Hints++
		}
	}
	return r
}

// Entries returns a copy of the ordered violations.
func (r *Report) Entries() []Entry {
	return slices.Clone(r.entries)
}

// Faults returns a copy of the ordered faults.
func (r *Report) Faults() []FaultEntry {
	return slices.Clone(r.faults)
}

// Summary returns the report counts.
func (r *Report) Summary() Summary {
	return r.summary
}

// HasViolations reports whether any violation survived filtering.
func (r *Report) HasViolations() bool {
	return len(r.entries) > 0
}

// HasFaults reports whether any tooling fault occurred.
func (r *Report) HasFaults() bool {
	return len(r.faults) > 0
}

// Exit statuses.
const (
	ExitClean      = 0
	ExitViolations = 1
	ExitFault      = 2
)

// ExitCode returns the process status for the report. Faults take
// precedence over violations.
func (r *Report) ExitCode() int {
	switch {
	case r.HasFaults():
		return ExitFault
	case r.HasViolations():
		return ExitViolations
	default:
		return ExitClean
	}
}
