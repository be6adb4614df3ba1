// Package lint provides the rule engine of lualint.
//
// # Architecture
//
// A run has three stages that never share mutable state:
//
//  1. pkg/lexer turns source text into a lossless token stream
//  2. this package dispatches every enabled rule over the tokens of a File
//  3. pkg/report sorts the union of diagnostics and renders it
//
// Each rule is a pure function of (File, options) to diagnostics. Rules do not
// see each other's output, so enabling or disabling one never changes what
// another reports.
//
// # Rule Registration
//
// Rules are automatically registered via init() functions when their packages are imported:
//
//	import _ "github.com/leapstack-labs/lualint/pkg/lint/rules"
//
// # Rule Groups
//
//   - style: quoting, trailing commas, declarations, statement terminators
//   - layout: indentation, spacing, blank lines, line length, end of file
//   - naming: identifier case conventions
//   - comments: comment markers
//
// # Configuration
//
// Use Config to control which rules are enabled and their severity:
//
//	config := lint.NewConfig()
//	config.Disable("line-length")
//	config.SetSeverity("naming", core.SeverityError)
//	config.SetRuleOptions("quoting", map[string]any{"quote_style": "double"})
//
// # Running
//
//	analyzer := lint.NewAnalyzer(config, lint.WithWorkers(4))
//	results := analyzer.AnalyzeFiles(ctx, inputs)
//
// Style violations come back as Diagnostics. Tooling failures (a file that
// cannot be tokenized, a rule that panics) come back as Faults and never stop
// the other rules or files.
package lint
