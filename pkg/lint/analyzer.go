package lint

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/lualint/pkg/lexer"
)

// Input is one source file to analyze. Reading it is the caller's job; the
// analyzer performs no I/O.
type Input struct {
	Path   string
	Source string
}

// FileResult holds the outcome of analyzing one file.
type FileResult struct {
	Path        string       `json:"path"`
	Diagnostics []Diagnostic `json:"diagnostics"`
	Faults      []*Fault     `json:"faults,omitempty"`
}

// Faulted reports whether any tooling fault occurred for the file.
func (r FileResult) Faulted() bool {
	return len(r.Faults) > 0
}

// Analyzer runs the enabled lint rules against tokenized files.
type Analyzer struct {
	config  *Config
	rules   []Rule
	workers int
	timeout time.Duration
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithWorkers bounds how many files are analyzed concurrently.
// Zero or less means GOMAXPROCS.
func WithWorkers(n int) AnalyzerOption {
	return func(a *Analyzer) { a.workers = n }
}

// WithFileTimeout bounds the processing time of a single file.
// The deadline is checked between rules.
func WithFileTimeout(d time.Duration) AnalyzerOption {
	return func(a *Analyzer) { a.timeout = d }
}

// NewAnalyzer creates a new analyzer. The configuration is copied and the
// enabled rule set is fixed at this point.
func NewAnalyzer(config *Config, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{config: config.Clone()}
	for _, opt := range opts {
		opt(a)
	}
	if a.workers <= 0 {
		a.workers = runtime.GOMAXPROCS(0)
	}
	for _, rule := range GetAllRules() {
		if !a.config.IsDisabled(rule.ID()) {
			a.rules = append(a.rules, rule)
		}
	}
	return a
}

// Rules returns the rules this analyzer dispatches, ordered by ID.
func (a *Analyzer) Rules() []Rule {
	return a.rules
}

// AnalyzeFile tokenizes src and runs every enabled rule against it.
// A tokenizer failure or a panicking rule is reported as a Fault; a rule that
// fails never prevents the remaining rules from running.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path, src string) FileResult {
	result := FileResult{Path: path, Diagnostics: []Diagnostic{}}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	f, err := NewFile(path, src)
	if err != nil {
		result.Faults = append(result.Faults, tokenizerFault(path, err))
		return result
	}

	for _, rule := range a.rules {
		if err := ctx.Err(); err != nil {
			result.Faults = append(result.Faults, &Fault{
				Component: FaultEngine,
				Path:      path,
				Message:   fmt.Sprintf("stopped before rule %q: %v", rule.ID(), err),
				Err:       err,
			})
			break
		}

		diags, fault := a.runRule(rule, f)
		if fault != nil {
			result.Faults = append(result.Faults, fault)
			continue
		}
		for _, d := range diags {
			if f.Suppressed(d) {
				continue
			}
			result.Diagnostics = append(result.Diagnostics, d)
		}
	}

	sort.SliceStable(result.Diagnostics, func(i, j int) bool {
		di, dj := result.Diagnostics[i], result.Diagnostics[j]
		if di.Pos.Offset != dj.Pos.Offset {
			return di.Pos.Offset < dj.Pos.Offset
		}
		return di.RuleID < dj.RuleID
	})
	return result
}

// runRule runs a single rule, converting a panic or an out-of-range
// diagnostic into a fault attributed to that rule.
func (a *Analyzer) runRule(rule Rule, f *File) (diags []Diagnostic, fault *Fault) {
	defer func() {
		if r := recover(); r != nil {
			diags = nil
			fault = &Fault{
				Component: RuleComponent(rule.ID()),
				Path:      f.Path,
				Message:   fmt.Sprintf("panic: %v", r),
			}
		}
	}()

	raw := rule.Check(f, a.config.GetRuleOptions(rule.ID()))
	diags = make([]Diagnostic, 0, len(raw))
	for _, d := range raw {
		if d.Pos.Offset < 0 || d.Pos.Offset > len(f.Source) || !d.Pos.IsValid() {
			return nil, &Fault{
				Component: RuleComponent(rule.ID()),
				Path:      f.Path,
				Message:   fmt.Sprintf("diagnostic at invalid position %s (offset %d)", d.Pos, d.Pos.Offset),
			}
		}
		d.RuleID = rule.ID()
		d.Severity = a.config.GetSeverity(rule.ID(), rule.DefaultSeverity())
		diags = append(diags, d)
	}
	return diags, nil
}

// AnalyzeFiles analyzes inputs concurrently and returns one result per input,
// in input order. Faults in one file never affect the others.
func (a *Analyzer) AnalyzeFiles(ctx context.Context, inputs []Input) []FileResult {
	results := make([]FileResult, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i, in := range inputs {
		g.Go(func() error {
			results[i] = a.AnalyzeFile(gctx, in.Path, in.Source)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	return results
}

func tokenizerFault(path string, err error) *Fault {
	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		return &Fault{
			Component: FaultTokenizer,
			Path:      path,
			Pos:       lexErr.Pos,
			Message:   fmt.Sprintf("%s: %s", lexErr.Kind, lexErr.Message),
			Err:       err,
		}
	}
	return &Fault{Component: FaultTokenizer, Path: path, Message: err.Error(), Err: err}
}
