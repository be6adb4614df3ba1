package rules_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/lualint/pkg/lint"
	_ "github.com/leapstack-labs/lualint/pkg/lint/rules" // register rules
)

const messy = `#!/usr/bin/env lua
--module header
` + "local M = {}  \n" + `local a, b = 1, "two"
local my_thing = {
   first = 1
}
local function Helper(x_value)
	if(x_value) then
		return  x_value
	end
	return nil
end
function M._Private()
end
print("done")
--[[
  trailing block
]]
return M`

func analyze(t *testing.T, cfg *lint.Config, src string) []lint.Diagnostic {
	t.Helper()
	result := lint.NewAnalyzer(cfg).AnalyzeFile(context.Background(), "messy.lua", src)
	require.Empty(t, result.Faults)
	return result.Diagnostics
}

func TestAllRulesRegistered(t *testing.T) {
	want := []string{
		"blank-line-after-block",
		"comment-style",
		"declaration-style",
		"eof-newline",
		"indentation",
		"line-length",
		"naming",
		"quoting",
		"semicolon",
		"spacing",
		"trailing-comma",
		"trailing-whitespace",
	}

	var got []string
	for _, info := range lint.AllRules() {
		got = append(got, info.ID)
		assert.NotEmpty(t, info.Description, info.ID)
		assert.NotEmpty(t, info.Group, info.ID)
	}
	assert.Equal(t, want, got)
}

func TestExamples(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		rules []string
		opts  map[string]map[string]any
		want  []string // rule IDs in report order
	}{
		{
			name:  "double quoted literal",
			src:   `local foo = "Bob";`,
			rules: []string{"quoting"},
			opts:  map[string]map[string]any{"quoting": {"quote_style": "single"}},
			want:  []string{"quoting"},
		},
		{
			name:  "comma chained declaration",
			src:   `local a, b = 1, true;`,
			rules: []string{"declaration-style"},
			want:  []string{"declaration-style"},
		},
		{
			name:  "spacing and terminator",
			src:   "if(x) then\n\treturn x\nend",
			rules: []string{"spacing", "semicolon"},
			want:  []string{"spacing", "semicolon"},
		},
		{
			name:  "missing final newline",
			src:   "local x = 1;",
			rules: []string{"eof-newline"},
			want:  []string{"eof-newline"},
		},
		{
			name:  "final newline present",
			src:   "local x = 1;\n",
			rules: []string{"eof-newline"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := lint.NewConfig().Only(tt.rules...)
			for id, o := range tt.opts {
				cfg.SetRuleOptions(id, o)
			}
			require.NoError(t, cfg.Validate())

			var got []string
			for _, d := range analyze(t, cfg, tt.src) {
				got = append(got, d.RuleID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIdempotent(t *testing.T) {
	first := analyze(t, lint.NewConfig(), messy)
	second := analyze(t, lint.NewConfig(), messy)
	assert.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestEveryRuleFiresOnMessyInput(t *testing.T) {
	seen := make(map[string]bool)
	cfg := lint.NewConfig().SetRuleOptions("line-length", map[string]any{"max_line_length": 20})
	for _, d := range analyze(t, cfg, messy) {
		seen[d.RuleID] = true
	}
	for _, info := range lint.AllRules() {
		assert.True(t, seen[info.ID], "rule %s reported nothing", info.ID)
	}
}

// Enabling or disabling other rules never changes what a rule reports.
func TestRuleIndependence(t *testing.T) {
	all := analyze(t, lint.NewConfig(), messy)

	for _, info := range lint.AllRules() {
		t.Run(info.ID, func(t *testing.T) {
			alone := analyze(t, lint.NewConfig().Only(info.ID), messy)

			var fromAll []lint.Diagnostic
			for _, d := range all {
				if d.RuleID == info.ID {
					fromAll = append(fromAll, d)
				}
			}
			assert.Equal(t, fromAll, nilIfEmpty(alone))
		})
	}
}

func TestAnalyzeFiles_Deterministic(t *testing.T) {
	inputs := make([]lint.Input, 16)
	for i := range inputs {
		inputs[i] = lint.Input{Path: "f.lua", Source: messy}
	}

	a := lint.NewAnalyzer(lint.NewConfig(), lint.WithWorkers(4))
	results := a.AnalyzeFiles(context.Background(), inputs)
	require.Len(t, results, len(inputs))
	for _, r := range results[1:] {
		assert.Equal(t, results[0], r)
	}
}

func nilIfEmpty(d []lint.Diagnostic) []lint.Diagnostic {
	if len(d) == 0 {
		return nil
	}
	return d
}
