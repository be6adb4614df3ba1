package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Run is one recorded lint invocation.
type Run struct {
	ID         string
	StartedAt  time.Time
	Duration   time.Duration
	Files      int
	Cached     int
	Violations int
	Faults     int
}

// generateID creates a new UUID.
func generateID() string {
	return uuid.New().String()
}

// RecordRun appends a run to the run log and returns it with its ID set.
func (c *Cache) RecordRun(ctx context.Context, run Run) (Run, error) {
	run.ID = generateID()
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	c.logger.Debug("recording run", slog.String("id", run.ID), slog.Int("files", run.Files))

	_, err := c.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, duration_ms, files, cached, violations, faults)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UnixMilli(), run.Duration.Milliseconds(),
		run.Files, run.Cached, run.Violations, run.Faults,
	)
	if err != nil {
		return Run{}, fmt.Errorf("failed to record run: %w", err)
	}
	return run, nil
}

// Runs returns the most recent runs, newest first.
func (c *Cache) Runs(ctx context.Context, limit int) ([]Run, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT id, started_at, duration_ms, files, cached, violations, faults
		 FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var r Run
		var startedMs, durationMs int64
		if err := rows.Scan(&r.ID, &startedMs, &durationMs, &r.Files, &r.Cached, &r.Violations, &r.Faults); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.StartedAt = time.UnixMilli(startedMs)
		r.Duration = time.Duration(durationMs) * time.Millisecond
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
