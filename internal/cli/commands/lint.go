package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/lualint/internal/cache"
	"github.com/leapstack-labs/lualint/internal/cli/config"
	"github.com/leapstack-labs/lualint/internal/cli/output"
	"github.com/leapstack-labs/lualint/internal/discovery"
	"github.com/leapstack-labs/lualint/internal/metrics"
	"github.com/leapstack-labs/lualint/internal/watch"
	"github.com/leapstack-labs/lualint/pkg/core"
	"github.com/leapstack-labs/lualint/pkg/lint"
	"github.com/leapstack-labs/lualint/pkg/report"
)

// LintOptions holds options for the lint command.
type LintOptions struct {
	Format   string   // Output format: auto, text, markdown, json
	Disable  []string // Rule IDs to disable
	Rules    []string // Run only specific rules
	Severity string   // Minimum severity: error, warning, info, hint
	Watch    bool     // Re-lint on change
}

// NewLintCommand creates the lint command.
func NewLintCommand(version string) *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Check Lua sources against the style rules",
		Long: `Analyze Lua source files for style violations.

Directories are searched for files matching the include globs (default
**/*.lua and **/*.luau) that are not excluded. Files named explicitly are
always linted. Rules are configured in lualint.yaml.

Exit status is 0 when no violations are found, 1 when violations are found
and 2 when a tooling fault occurs (invalid configuration, a file that cannot
be tokenized, a rule failure). Faults take precedence over violations.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Lint the current directory
  lualint lint

  # Lint specific paths
  lualint lint src/ main.lua

  # Plain path:line:column output for editors
  lualint lint --format text

  # Disable specific rules
  lualint lint --disable line-length,naming

  # Run only the quoting rule
  lualint lint --rule quoting

  # Re-lint whenever a file changes
  lualint lint --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, opts, version)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: auto, text, markdown, json")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to disable")
	cmd.Flags().StringSliceVar(&opts.Rules, "rule", nil, "Run only specific rules")
	cmd.Flags().StringVar(&opts.Severity, "severity", "hint", "Minimum severity: error, warning, info, hint")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-lint when files change")

	// read by the config loader
	cmd.Flags().Bool("no-cache", false, "Do not read or write the result cache")
	cmd.Flags().Int("workers", 0, "Files analyzed concurrently (0 = number of CPUs)")
	cmd.Flags().Duration("file-timeout", config.DefaultFileTimeout, "Processing time limit per file")
	cmd.Flags().String("metrics-file", "", "Write Prometheus metrics to this file")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return config.OutputFormats, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("severity", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		var names []string
		for _, sev := range core.Severities() {
			names = append(names, sev.String())
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("rule", completeRuleIDs)
	_ = cmd.RegisterFlagCompletionFunc("disable", completeRuleIDs)

	return cmd
}

func completeRuleIDs(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	var ids []string
	for _, info := range lint.AllRules() {
		ids = append(ids, info.ID)
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}

func runLint(cmd *cobra.Command, paths []string, opts *LintOptions, version string) error {
	if opts.Format != "" && !slices.Contains(config.OutputFormats, opts.Format) {
		return faultError(fmt.Errorf("unknown format %q (want one of %s)", opts.Format, strings.Join(config.OutputFormats, ", ")))
	}
	threshold, ok := core.ParseSeverity(opts.Severity)
	if !ok {
		return faultError(fmt.Errorf("unknown severity %q", opts.Severity))
	}

	cmdCtx := NewCommandContext(cmd, opts.Format)
	lintCfg, err := buildLintConfig(cmdCtx.Cfg, opts)
	if err != nil {
		return faultError(err)
	}

	runner, err := newLintRunner(cmdCtx, lintCfg, version, threshold)
	if err != nil {
		return faultError(err)
	}
	defer runner.Close()

	ctx := cmd.Context()
	rep, err := runner.run(ctx, paths)
	if err != nil {
		return faultError(err)
	}
	if err := renderReport(cmdCtx.Renderer, rep); err != nil {
		return faultError(err)
	}

	if opts.Watch {
		return runner.watch(ctx, cmdCtx.Renderer, paths)
	}
	if code := rep.ExitCode(); code != report.ExitClean {
		return &ExitError{Code: code}
	}
	return nil
}

// buildLintConfig applies command-line rule selection on top of the
// configured lint section.
func buildLintConfig(cfg *config.Config, opts *LintOptions) (*lint.Config, error) {
	lintCfg, err := cfg.ToLintConfig()
	if err != nil {
		return nil, err
	}

	// Apply CLI overrides (higher precedence)
	for _, id := range opts.Disable {
		lintCfg.Disable(strings.TrimSpace(id))
	}
	// If --rule specified, disable all others
	if len(opts.Rules) > 0 {
		ids := make([]string, 0, len(opts.Rules))
		for _, id := range opts.Rules {
			id = strings.TrimSpace(id)
			// a rule named on the command line runs even when the file disables it
			lintCfg.Enable(id)
			ids = append(ids, id)
		}
		lintCfg.Only(ids...)
	}

	if err := lintCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rule selection: %w", err)
	}
	return lintCfg, nil
}

// lintRunner performs one lint pass: discovery, reading, cache lookup,
// analysis and metrics.
type lintRunner struct {
	analyzer    *lint.Analyzer
	finder      *discovery.Finder
	cache       *cache.Cache
	fingerprint string
	metricsFile string
	threshold   core.Severity
	logger      *slog.Logger
}

func newLintRunner(cmdCtx *CommandContext, lintCfg *lint.Config, version string, threshold core.Severity) (*lintRunner, error) {
	cfg := cmdCtx.Cfg
	finder, err := discovery.New(cfg.Include, cfg.Exclude)
	if err != nil {
		return nil, err
	}

	lr := &lintRunner{
		analyzer: lint.NewAnalyzer(lintCfg,
			lint.WithWorkers(cfg.Workers),
			lint.WithFileTimeout(cfg.FileTimeout),
		),
		finder:      finder,
		metricsFile: cfg.Metrics.Textfile,
		threshold:   threshold,
		logger:      cmdCtx.Logger,
	}

	if cfg.Cache.Enabled {
		fp, err := cache.Fingerprint(version, lintCfg)
		if err != nil {
			return nil, err
		}
		c, err := cache.Open(cfg.Cache.Path, cmdCtx.Logger)
		if err != nil {
			// continue without the cache
			cmdCtx.Logger.Warn("cache disabled", slog.String("path", cfg.Cache.Path), slog.Any("error", err))
		} else {
			lr.cache = c
			lr.fingerprint = fp
		}
	}
	return lr, nil
}

// Close releases the cache.
func (lr *lintRunner) Close() {
	if lr.cache != nil {
		_ = lr.cache.Close()
	}
}

func (lr *lintRunner) run(ctx context.Context, paths []string) (*report.Report, error) {
	start := time.Now()

	files, err := lr.finder.Find(paths...)
	if err != nil {
		return nil, err
	}
	lr.logger.Debug("discovered files", slog.Int("count", len(files)))

	m := metrics.New()
	results := make([]lint.FileResult, len(files))
	keys := make([]string, len(files))
	var inputs []lint.Input
	var pending []int
	cached := 0

	for i, path := range files {
		data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from discovery or the command line
		if err != nil {
			results[i] = lint.FileResult{
				Path:        path,
				Diagnostics: []lint.Diagnostic{},
				Faults: []*lint.Fault{{
					Component: lint.FaultRead,
					Path:      path,
					Message:   err.Error(),
					Err:       err,
				}},
			}
			continue
		}
		src := string(data)

		if lr.cache != nil {
			keys[i] = cache.Key(lr.fingerprint, path, src)
			diags, ok, err := lr.cache.Get(ctx, keys[i])
			switch {
			case err != nil:
				lr.logger.Warn("cache read failed", slog.String("path", path), slog.Any("error", err))
			case ok:
				results[i] = lint.FileResult{Path: path, Diagnostics: diags}
				m.FileLinted(true)
				cached++
				continue
			}
		}
		inputs = append(inputs, lint.Input{Path: path, Source: src})
		pending = append(pending, i)
	}

	for j, res := range lr.analyzer.AnalyzeFiles(ctx, inputs) {
		i := pending[j]
		results[i] = res
		m.FileLinted(false)
		if lr.cache != nil && !res.Faulted() {
			if err := lr.cache.Put(ctx, keys[i], res.Path, res.Diagnostics); err != nil {
				lr.logger.Warn("cache write failed", slog.String("path", res.Path), slog.Any("error", err))
			}
		}
	}

	rep := report.New(results, report.MinSeverity(lr.threshold))
	elapsed := time.Since(start)
	summary := rep.Summary()
	lr.logger.Debug("lint finished",
		slog.Int("files", summary.Files),
		slog.Int("cached", cached),
		slog.Int("violations", summary.Violations),
		slog.Int("faults", summary.Faults),
		slog.Duration("elapsed", elapsed),
	)

	if lr.metricsFile != "" {
		m.ObserveReport(rep)
		m.Finish(elapsed, time.Now())
		if err := m.WriteTextfile(lr.metricsFile); err != nil {
			lr.logger.Warn("metrics not written", slog.Any("error", err))
		}
	}
	if lr.cache != nil {
		if _, err := lr.cache.RecordRun(ctx, cache.Run{
			StartedAt:  start,
			Duration:   elapsed,
			Files:      summary.Files,
			Cached:     cached,
			Violations: summary.Violations,
			Faults:     summary.Faults,
		}); err != nil {
			lr.logger.Warn("run not recorded", slog.Any("error", err))
		}
	}
	return rep, nil
}

// watch re-lints paths on every change until ctx is cancelled.
func (lr *lintRunner) watch(ctx context.Context, r *output.Renderer, paths []string) error {
	roots := watchRoots(paths)
	explicit := make(map[string]bool)
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			explicit[filepath.Clean(p)] = true
		}
	}
	match := func(path string) bool {
		if explicit[filepath.Clean(path)] {
			return true
		}
		for _, root := range roots {
			rel, err := filepath.Rel(root, path)
			if err == nil && !strings.HasPrefix(rel, "..") && lr.finder.Match(rel) {
				return true
			}
		}
		return false
	}

	r.Muted("Watching for changes. Press Ctrl+C to stop.")
	w := watch.New(roots, match, watch.WithLogger(lr.logger))
	return w.Run(ctx, func(ctx context.Context, changed []string) {
		lr.logger.Info("re-linting", slog.Int("changed", len(changed)))
		rep, err := lr.run(ctx, paths)
		if err != nil {
			r.Error(err.Error())
			return
		}
		r.Println("")
		_ = renderReport(r, rep)
	})
}

// watchRoots returns the directories to watch for paths: directories as
// given, the parent directory of files.
func watchRoots(paths []string) []string {
	if len(paths) == 0 {
		return []string{"."}
	}
	var roots []string
	for _, p := range paths {
		dir := p
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			dir = filepath.Dir(p)
		}
		dir = filepath.Clean(dir)
		if !slices.Contains(roots, dir) {
			roots = append(roots, dir)
		}
	}
	return roots
}

func renderReport(r *output.Renderer, rep *report.Report) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return rep.WriteJSON(r.Writer())
	case output.ModeMarkdown:
		return rep.WriteMarkdown(r.Writer())
	default:
		if !r.IsTTY() {
			return rep.WriteText(r.Writer())
		}
		renderReportStyled(r, rep)
		return nil
	}
}

func renderReportStyled(r *output.Renderer, rep *report.Report) {
	if !rep.HasViolations() && !rep.HasFaults() {
		r.Success("No lint issues found")
		return
	}
	styles := r.Styles()

	current := ""
	for _, e := range rep.Entries() {
		if e.Path != current {
			if current != "" {
				r.Println("")
			}
			current = e.Path
			r.Println(styles.Path.Render(e.Path))
		}
		r.Printf("  %s  %s  %s  %s\n",
			styles.Muted.Render(fmt.Sprintf("%-7s", fmt.Sprintf("%d:%d", e.Line, e.Column))),
			severityLabel(styles, e.Severity),
			styles.RuleID.Render(e.Rule),
			e.Message,
		)
	}
	for _, f := range rep.Faults() {
		r.Error(fmt.Sprintf("%s: [%s] %s", f.Location(), f.Component, f.Message))
	}

	r.Println("")
	r.Printf("Summary: %s\n", rep.Summary())
}

func severityLabel(styles *output.Styles, sev core.Severity) string {
	label := fmt.Sprintf("%-7s", sev.String())
	return severityStyle(styles, sev).Render(label)
}
