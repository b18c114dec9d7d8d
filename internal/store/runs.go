package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// RecordRun appends a run log entry for one report execution.
func (s *Store) RecordRun(ctx context.Context, runTime time.Time, exitCode int) error {
	if _, err := s.execWithRetry(ctx,
		`INSERT INTO runs (run_time, exit_code) VALUES (?, ?)`,
		runTime.UTC().Format(time.RFC3339), exitCode,
	); err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// LastRun returns the most recent run log entry, or nil when no runs have
// been recorded.
func (s *Store) LastRun(ctx context.Context) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, run_time, exit_code FROM runs ORDER BY id DESC LIMIT 1`)
	var run Run
	if err := row.Scan(&run.ID, &run.RunTime, &run.ExitCode); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select last run: %w", err)
	}
	return &run, nil
}
