package commands

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/lualint/internal/cli/config"
	"github.com/leapstack-labs/lualint/pkg/lint"
)

// initFileName is the config file written by init.
const initFileName = "lualint.yaml"

const initHeader = `# lualint configuration
#
# Rules may be switched off under lint.disabled, given a different severity
# under lint.severity, or configured under lint.rules.<id>.parameters.
# Run 'lualint rules <id>' to see the options of a rule.

`

// initConfig mirrors the config file layout for writing.
type initConfig struct {
	Output  string        `yaml:"output"`
	Include []string      `yaml:"include"`
	Exclude []string      `yaml:"exclude"`
	Cache   initCache     `yaml:"cache"`
	Lint    initLintBlock `yaml:"lint"`
}

type initCache struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

type initLintBlock struct {
	Disabled []string            `yaml:"disabled"`
	Rules    map[string]initRule `yaml:"rules"`
}

type initRule struct {
	Enabled  bool   `yaml:"enabled"`
	Severity string `yaml:"severity"`
}

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a lualint.yaml configuration file",
		Long: `Create a lualint.yaml configuration file listing every rule with its
default severity, so rules can be tuned without looking up their IDs.`,
		Example: `  # Initialize in current directory
  lualint init

  # Initialize in another directory
  lualint init path/to/project

  # Force overwrite existing config
  lualint init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			r := NewCommandContext(cmd, "").Renderer

			path, err := runInit(dir, force)
			if err != nil {
				return faultError(err)
			}
			r.Success(fmt.Sprintf("Created %s", path))
			r.Println("")
			r.Println("Next steps:")
			r.Println("  lualint lint      # check the project")
			r.Println("  lualint rules     # list the available rules")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

// runInit writes the default configuration to dir and returns its path.
func runInit(dir string, force bool) (string, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, initFileName)
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("%s already exists. Use --force to overwrite", initFileName)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	data, err := defaultConfigYAML()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

func defaultConfigYAML() ([]byte, error) {
	d := config.Default()
	out := initConfig{
		Output:  d.Output,
		Include: d.Include,
		Exclude: d.Exclude,
		Cache:   initCache{Enabled: true, Path: d.Cache.Path},
		Lint: initLintBlock{
			Disabled: []string{},
			Rules:    make(map[string]initRule),
		},
	}
	for _, info := range lint.AllRules() {
		out.Lint.Rules[info.ID] = initRule{Enabled: true, Severity: info.DefaultSeverity.String()}
	}

	var buf bytes.Buffer
	buf.WriteString(initHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
