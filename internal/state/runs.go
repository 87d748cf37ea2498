package state

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ulule/pyesql/pkg/core"
)

// StartRun records the beginning of a query invocation and returns the
// new run record.
func (s *Store) StartRun(query string, statement bool) (*core.Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	run := &core.Run{
		ID:        generateID(),
		Query:     query,
		Statement: statement,
		Status:    core.RunRunning,
		StartedAt: time.Now().UTC(),
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (id, query, statement, status, started_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Query, run.Statement, string(run.Status), run.StartedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record run: %w", err)
	}
	return run, nil
}

// CompleteRun marks a run finished with the given outcome.
func (s *Store) CompleteRun(id string, status core.RunStatus, rowCount int64, errMsg string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	res, err := s.db.Exec(
		`UPDATE runs SET status = ?, finished_at = ?, row_count = ?, error = ? WHERE id = ?`,
		string(status), time.Now().UTC(), rowCount, errMsg, id,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("run %s not found", id)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]*core.Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(
		`SELECT id, query, statement, status, started_at, finished_at, row_count, error
		 FROM runs ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanRuns(rows)
}

// LatestRun returns the most recent run of the named query, or nil when
// the query has never been invoked.
func (s *Store) LatestRun(query string) (*core.Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.Query(
		`SELECT id, query, statement, status, started_at, finished_at, row_count, error
		 FROM runs WHERE query = ? ORDER BY started_at DESC, id LIMIT 1`, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest run: %w", err)
	}
	defer func() { _ = rows.Close() }()

	runs, err := scanRuns(rows)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return runs[0], nil
}

func scanRuns(rows *sql.Rows) ([]*core.Run, error) {
	var runs []*core.Run
	for rows.Next() {
		var (
			run      core.Run
			status   string
			finished sql.NullTime
		)
		if err := rows.Scan(&run.ID, &run.Query, &run.Statement, &status,
			&run.StartedAt, &finished, &run.RowCount, &run.Error); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.Status = core.RunStatus(status)
		if finished.Valid {
			t := finished.Time
			run.FinishedAt = &t
		}
		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return runs, nil
}
