// Package config provides configuration management for the lualint CLI.
//
// Configuration is layered: built-in defaults, then lualint.yaml, then
// LUALINT_* environment variables, then explicitly set command-line flags.
package config

import "time"

// Config holds all CLI configuration options.
type Config struct {
	Output      string        `koanf:"output"`
	Verbose     bool          `koanf:"verbose"`
	Workers     int           `koanf:"workers"`
	FileTimeout time.Duration `koanf:"file_timeout"`
	Include     []string      `koanf:"include"`
	Exclude     []string      `koanf:"exclude"`
	Cache       CacheConfig   `koanf:"cache"`
	Metrics     MetricsConfig `koanf:"metrics"`
	Lint        LintConfig    `koanf:"lint"`
	DocsURL     string        `koanf:"docs_url"` // rule documentation base URL

	// ProjectRoot is the directory containing the config file, or the
	// working directory when none was found.
	ProjectRoot string `koanf:"-"`
	// ConfigFile is the config file that was loaded, if any.
	ConfigFile string `koanf:"-"`
}

// CacheConfig controls the result cache.
type CacheConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

// MetricsConfig controls the Prometheus textfile written after each run.
type MetricsConfig struct {
	Textfile string `koanf:"textfile"`
}

// LintConfig holds rule selection, severities and per-rule parameters.
type LintConfig struct {
	Disabled []string              `koanf:"disabled"`
	Severity map[string]string     `koanf:"severity"`
	Rules    map[string]RuleConfig `koanf:"rules"`
}

// RuleConfig configures a single rule.
type RuleConfig struct {
	Enabled    *bool          `koanf:"enabled"`
	Severity   string         `koanf:"severity"`
	Parameters map[string]any `koanf:"parameters"`
}

// Default configuration values.
const (
	DefaultOutput      = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultFileTimeout = 10 * time.Second
	DefaultCachePath   = ".lualint/cache.db"
)

// Output formats accepted by the output key and --format flag.
var OutputFormats = []string{"auto", "text", "markdown", "json"}

// DefaultInclude and DefaultExclude are the discovery globs used when the
// config file does not set them.
var (
	DefaultInclude = []string{"**/*.lua", "**/*.luau"}
	DefaultExclude = []string{".git/**", "vendor/**", "Packages/**"}
)

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Output:      DefaultOutput,
		FileTimeout: DefaultFileTimeout,
		Include:     append([]string(nil), DefaultInclude...),
		Exclude:     append([]string(nil), DefaultExclude...),
		Cache:       CacheConfig{Path: DefaultCachePath},
	}
}
