package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/lualint/internal/cli/config"
)

func TestNewInitCommand(t *testing.T) {
	tests := []struct {
		name     string
		setupDir func(t *testing.T, dir string) // setup before running
		args     []string
		wantErr  bool
	}{
		{
			name: "init empty directory",
			args: []string{},
		},
		{
			name: "init existing config without force",
			setupDir: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "lualint.yaml"), []byte("existing"), 0600))
			},
			args:    []string{},
			wantErr: true,
		},
		{
			name: "init existing config with force",
			setupDir: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "lualint.yaml"), []byte("existing"), 0600))
			},
			args: []string{"--force"},
		},
		{
			name: "init new subdirectory",
			args: []string{"nested/project"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			t.Chdir(tmpDir)

			if tt.setupDir != nil {
				tt.setupDir(t, tmpDir)
			}

			cmd := NewInitCommand()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			dir := tmpDir
			if len(tt.args) > 0 && tt.args[0] != "--force" {
				dir = filepath.Join(tmpDir, tt.args[0])
			}
			assert.FileExists(t, filepath.Join(dir, "lualint.yaml"))
			assert.Contains(t, buf.String(), "Created")
		})
	}
}

func TestInitCommandMetadata(t *testing.T) {
	cmd := NewInitCommand()

	assert.Equal(t, "init [directory]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotNil(t, cmd.Flags().Lookup("force"), "--force flag should exist")
}

// The generated file must load and validate with the regular loader.
func TestInitCreatesValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	path, err := runInit(".", false)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	for _, expected := range []string{"output: auto", "- '**/*.lua'", "cache:", "quoting:", "severity: warning"} {
		assert.Contains(t, string(content), expected, "config should contain %q", expected)
	}

	cfg, err := config.Load("", nil)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, filepath.Join(cfg.ProjectRoot, config.DefaultCachePath), cfg.Cache.Path)
	assert.Contains(t, cfg.Lint.Rules, "naming")
}
