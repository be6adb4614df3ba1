// Package cache stores lint results keyed by a hash of the configuration,
// the file path and the file content, so unchanged files are not re-analyzed.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	_ "modernc.org/sqlite" // register the sqlite driver

	"github.com/leapstack-labs/lualint/pkg/lint"
)

// Cache is a SQLite-backed result cache.
type Cache struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Open opens (creating if needed) the cache database at path and applies
// migrations. Use ":memory:" for an in-memory cache.
func Open(path string, logger *slog.Logger) (*Cache, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	dsn := ":memory:"
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return nil, fmt.Errorf("failed to create cache directory: %w", err)
			}
		}
		dsn = "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	// a single connection keeps :memory: databases shared across queries
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping cache database: %w", err)
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Debug("opened cache", slog.String("path", path))
	return &Cache{db: db, path: path, logger: logger}, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Fingerprint identifies everything besides the file that influences lint
// results: the tool version and the effective engine configuration.
func Fingerprint(version string, cfg *lint.Config) (string, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to encode lint config: %w", err)
	}
	h := xxhash.New()
	_, _ = h.WriteString(version)
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(data)
	return strconv.FormatUint(h.Sum64(), 16), nil
}

// Key returns the cache key of a file.
func Key(fingerprint, path, source string) string {
	h := xxhash.New()
	_, _ = h.WriteString(fingerprint)
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(path)
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(source)
	return fmt.Sprintf("%016x", h.Sum64())
}

// Get returns the cached diagnostics for key.
func (c *Cache) Get(ctx context.Context, key string) ([]lint.Diagnostic, bool, error) {
	var data string
	err := c.db.QueryRowContext(ctx, `SELECT diagnostics FROM results WHERE key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache entry: %w", err)
	}

	diags := []lint.Diagnostic{}
	if err := json.Unmarshal([]byte(data), &diags); err != nil {
		return nil, false, fmt.Errorf("corrupt cache entry %s: %w", key, err)
	}
	return diags, true, nil
}

// Put stores the diagnostics of a fault-free file, replacing any older entry
// for the same path.
func (c *Cache) Put(ctx context.Context, key, path string, diags []lint.Diagnostic) error {
	if diags == nil {
		diags = []lint.Diagnostic{}
	}
	data, err := json.Marshal(diags)
	if err != nil {
		return fmt.Errorf("failed to encode diagnostics: %w", err)
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM results WHERE path = ? AND key <> ?`, path, key); err != nil {
		return fmt.Errorf("failed to evict stale entries: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO results (key, path, diagnostics, created_at) VALUES (?, ?, ?, ?)`,
		key, path, string(data), time.Now().UnixMilli(),
	); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return tx.Commit()
}

// Len returns the number of cached files.
func (c *Cache) Len(ctx context.Context) (int, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM results`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count cache entries: %w", err)
	}
	return n, nil
}

// Clear removes every cached result.
func (c *Cache) Clear(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM results`); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}
