package lint

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/lualint/pkg/core"
	"github.com/leapstack-labs/lualint/pkg/lexer"
	"github.com/leapstack-labs/lualint/pkg/token"
)

// withRules replaces the global registry for the duration of a test.
func withRules(t *testing.T, defs ...RuleDef) {
	t.Helper()
	Clear()
	for _, def := range defs {
		Register(def)
	}
	t.Cleanup(Clear)
}

// identRule reports every identifier.
var identRule = RuleDef{
	ID:       "ident",
	Group:    "test",
	Severity: core.SeverityWarning,
	Check: func(f *File, _ map[string]any) []Diagnostic {
		var diags []Diagnostic
		for _, tok := range f.Significant() {
			if tok.Kind == token.Identifier {
				diags = append(diags, Diag("ident", tok.Pos, "identifier "+tok.Text))
			}
		}
		return diags
	},
}

var panicRule = RuleDef{
	ID:       "boom",
	Group:    "test",
	Severity: core.SeverityError,
	Check: func(_ *File, _ map[string]any) []Diagnostic {
		panic("rule exploded")
	},
}

func TestAnalyzer_RunsEnabledRules(t *testing.T) {
	withRules(t, identRule)

	result := NewAnalyzer(NewConfig()).AnalyzeFile(context.Background(), "a.lua", "local foo = bar")
	require.Empty(t, result.Faults)
	require.Len(t, result.Diagnostics, 2)
	assert.Equal(t, "ident", result.Diagnostics[0].RuleID)
	assert.Equal(t, core.SeverityWarning, result.Diagnostics[0].Severity)
	assert.Equal(t, 7, result.Diagnostics[0].Pos.Column)
	assert.Equal(t, 13, result.Diagnostics[1].Pos.Column)
}

func TestAnalyzer_DisabledAndSeverity(t *testing.T) {
	withRules(t, identRule)

	disabled := NewAnalyzer(NewConfig().Disable("ident")).AnalyzeFile(context.Background(), "a.lua", "x")
	assert.Empty(t, disabled.Diagnostics)

	cfg := NewConfig().SetSeverity("ident", core.SeverityHint)
	result := NewAnalyzer(cfg).AnalyzeFile(context.Background(), "a.lua", "x")
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, core.SeverityHint, result.Diagnostics[0].Severity)
}

func TestAnalyzer_ConfigIsCopied(t *testing.T) {
	withRules(t, identRule)

	cfg := NewConfig()
	a := NewAnalyzer(cfg)
	cfg.Disable("ident")

	result := a.AnalyzeFile(context.Background(), "a.lua", "x")
	assert.Len(t, result.Diagnostics, 1)
}

func TestAnalyzer_PanicBecomesFault(t *testing.T) {
	withRules(t, identRule, panicRule)

	result := NewAnalyzer(NewConfig()).AnalyzeFile(context.Background(), "a.lua", "x")
	require.Len(t, result.Faults, 1)
	assert.Equal(t, "rule:boom", result.Faults[0].Component)
	assert.Contains(t, result.Faults[0].Message, "rule exploded")

	// the failing rule does not suppress the others
	assert.Len(t, result.Diagnostics, 1)
	assert.True(t, result.Faulted())
}

func TestAnalyzer_TokenizerFault(t *testing.T) {
	withRules(t, identRule)

	result := NewAnalyzer(NewConfig()).AnalyzeFile(context.Background(), "bad.lua", "local s = 'open")
	require.Len(t, result.Faults, 1)

	fault := result.Faults[0]
	assert.Equal(t, FaultTokenizer, fault.Component)
	assert.Equal(t, 10, fault.Pos.Offset)
	assert.Empty(t, result.Diagnostics)

	var lexErr *lexer.Error
	require.True(t, errors.As(fault, &lexErr))
	assert.Equal(t, lexer.MalformedLiteral, lexErr.Kind)
	assert.Equal(t, "bad.lua:1:11: tokenizer: MalformedLiteral: unterminated string literal", fault.Error())
}

func TestAnalyzer_InvalidPositionIsFault(t *testing.T) {
	withRules(t, RuleDef{
		ID: "offside",
		Check: func(f *File, _ map[string]any) []Diagnostic {
			return []Diagnostic{Diag("offside", token.Position{Offset: len(f.Source) + 5, Line: 1, Column: 1}, "x")}
		},
	})

	result := NewAnalyzer(NewConfig()).AnalyzeFile(context.Background(), "a.lua", "x")
	require.Len(t, result.Faults, 1)
	assert.Equal(t, "rule:offside", result.Faults[0].Component)
	assert.Empty(t, result.Diagnostics)
}

func TestAnalyzer_DeadlineStopsBetweenRules(t *testing.T) {
	slow := RuleDef{
		ID: "a-slow",
		Check: func(_ *File, _ map[string]any) []Diagnostic {
			time.Sleep(20 * time.Millisecond)
			return nil
		},
	}
	withRules(t, slow, identRule)

	a := NewAnalyzer(NewConfig(), WithFileTimeout(time.Millisecond))
	result := a.AnalyzeFile(context.Background(), "a.lua", "x")
	require.Len(t, result.Faults, 1)
	assert.Equal(t, FaultEngine, result.Faults[0].Component)
	assert.ErrorIs(t, result.Faults[0], context.DeadlineExceeded)
}

func TestAnalyzer_Suppression(t *testing.T) {
	withRules(t, identRule, RuleDef{
		ID: "other",
		Check: func(f *File, _ map[string]any) []Diagnostic {
			return []Diagnostic{Diag("other", f.LineStart(3), "line three")}
		},
	})

	src := "foo -- lualint: ignore\n" +
		"-- lualint: ignore-next-line ident\n" +
		"bar\n" +
		"baz\n"
	result := NewAnalyzer(NewConfig()).AnalyzeFile(context.Background(), "a.lua", src)
	require.Empty(t, result.Faults)

	var got []string
	for _, d := range result.Diagnostics {
		got = append(got, d.Message)
	}
	// foo is ignored entirely, bar only for ident
	assert.Equal(t, []string{"line three", "identifier baz"}, got)
}

func TestAnalyzeFiles_IsolatesFaults(t *testing.T) {
	withRules(t, identRule)

	inputs := []Input{
		{Path: "good.lua", Source: "a"},
		{Path: "bad.lua", Source: "--[[ never closed"},
		{Path: "also_good.lua", Source: "b c"},
	}
	results := NewAnalyzer(NewConfig(), WithWorkers(2)).AnalyzeFiles(context.Background(), inputs)
	require.Len(t, results, 3)

	assert.Equal(t, "good.lua", results[0].Path)
	assert.Len(t, results[0].Diagnostics, 1)
	assert.True(t, results[1].Faulted())
	assert.Len(t, results[2].Diagnostics, 2)
}

func TestConfig_ValidateUnknownRule(t *testing.T) {
	withRules(t, identRule)

	err := NewConfig().Disable("no-such-rule").Validate()
	require.Error(t, err)

	var fault *Fault
	require.True(t, errors.As(err, &fault))
	assert.Equal(t, FaultConfig, fault.Component)
	assert.Contains(t, fault.Message, `"no-such-rule"`)

	assert.NoError(t, NewConfig().Disable("ident").Validate())
}

func TestConfig_ValidateOptions(t *testing.T) {
	withRules(t, RuleDef{
		ID: "opt",
		Validate: func(opts map[string]any) error {
			if _, ok := opts["bad"]; ok {
				return errors.New("bad option")
			}
			return nil
		},
	})

	assert.NoError(t, NewConfig().SetRuleOptions("opt", map[string]any{"good": 1}).Validate())

	err := NewConfig().SetRuleOptions("opt", map[string]any{"bad": 1}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad option")
}

func TestConfig_ValidateOptions_RuleWithoutOptions(t *testing.T) {
	withRules(t, RuleDef{ID: "plain"})

	assert.NoError(t, NewConfig().SetRuleOptions("plain", map[string]any{}).Validate())

	err := NewConfig().SetRuleOptions("plain", map[string]any{"bogus_key": 3}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus_key")
}

func TestRegistry_SortedAndLookup(t *testing.T) {
	withRules(t, panicRule, identRule)

	rules := GetAllRules()
	require.Len(t, rules, 2)
	assert.Equal(t, "boom", rules[0].ID())
	assert.Equal(t, "ident", rules[1].ID())
	assert.Equal(t, 2, Count())

	rule, ok := GetRuleByID("ident")
	require.True(t, ok)
	assert.Equal(t, "test", GetRuleInfo(rule).Group)
	assert.Len(t, GetRulesByGroup("test"), 2)

	_, ok = GetRuleByID("missing")
	assert.False(t, ok)
}
