package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/lualint/internal/testutil"
	"github.com/leapstack-labs/lualint/pkg/core"
	"github.com/leapstack-labs/lualint/pkg/lint"
	"github.com/leapstack-labs/lualint/pkg/token"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "nested", "cache.db"), testutil.NewTestLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestOpen_Migrates(t *testing.T) {
	c := openTestCache(t)
	version, err := c.Version()
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)
}

func TestOpen_Memory(t *testing.T) {
	c, err := Open(":memory:", nil)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	n, err := c.Len(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestKey(t *testing.T) {
	base := Key("fp", "a.lua", "local x = 1")
	assert.Len(t, base, 16)
	assert.Equal(t, base, Key("fp", "a.lua", "local x = 1"))
	assert.NotEqual(t, base, Key("fp2", "a.lua", "local x = 1"))
	assert.NotEqual(t, base, Key("fp", "b.lua", "local x = 1"))
	assert.NotEqual(t, base, Key("fp", "a.lua", "local x = 2"))
	// the separator prevents path/content ambiguity
	assert.NotEqual(t, Key("fp", "ab", "c"), Key("fp", "a", "bc"))
}

func TestFingerprint(t *testing.T) {
	a, err := Fingerprint("1.0.0", lint.NewConfig())
	require.NoError(t, err)
	b, err := Fingerprint("1.0.0", lint.NewConfig())
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := Fingerprint("1.0.0", lint.NewConfig().Disable("naming"))
	require.NoError(t, err)
	assert.NotEqual(t, a, c)

	d, err := Fingerprint("1.0.1", lint.NewConfig())
	require.NoError(t, err)
	assert.NotEqual(t, a, d)
}

func TestPutGet(t *testing.T) {
	ctx := context.Background()
	c := openTestCache(t)

	diags := []lint.Diagnostic{{
		RuleID:   "quoting",
		Severity: core.SeverityWarning,
		Message:  "string literal uses double quotes; use single quotes",
		Pos:      token.Position{Offset: 12, Line: 1, Column: 13},
	}}

	_, ok, err := c.Get(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Put(ctx, "k1", "a.lua", diags))
	got, ok, err := c.Get(ctx, "k1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, diags, got)

	// clean files are cached too
	require.NoError(t, c.Put(ctx, "k2", "b.lua", nil))
	got, ok, err = c.Get(ctx, "k2")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestPut_EvictsStaleEntriesForPath(t *testing.T) {
	ctx := context.Background()
	c := openTestCache(t)

	require.NoError(t, c.Put(ctx, "old", "a.lua", nil))
	require.NoError(t, c.Put(ctx, "new", "a.lua", nil))

	_, ok, err := c.Get(ctx, "old")
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := c.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, c.Clear(ctx))
	n, err = c.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRecordRun(t *testing.T) {
	ctx := context.Background()
	c := openTestCache(t)

	first, err := c.RecordRun(ctx, Run{
		StartedAt:  time.UnixMilli(1_000),
		Duration:   1500 * time.Millisecond,
		Files:      3,
		Cached:     1,
		Violations: 4,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)

	second, err := c.RecordRun(ctx, Run{StartedAt: time.UnixMilli(2_000), Files: 1, Faults: 1})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	runs, err := c.Runs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second.ID, runs[0].ID)
	assert.Equal(t, 1, runs[0].Faults)
	assert.Equal(t, first.ID, runs[1].ID)
	assert.Equal(t, 1500*time.Millisecond, runs[1].Duration)
	assert.Equal(t, 4, runs[1].Violations)
}

func TestClear(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "k1", "a.lua", nil))
	require.NoError(t, c.Put(ctx, "k2", "b.lua", nil))
	require.NoError(t, c.Clear(ctx))

	n, err := c.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, ok, err := c.Get(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, ok)
}
