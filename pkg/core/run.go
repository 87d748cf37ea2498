package core

import "time"

// RunStatus is the lifecycle state of a recorded query invocation.
type RunStatus string

const (
	RunRunning RunStatus = "running"
	RunSuccess RunStatus = "success"
	RunFailed  RunStatus = "failed"
)

// Run records one invocation of a named query against a target database.
type Run struct {
	ID         string
	Query      string
	Statement  bool
	Status     RunStatus
	StartedAt  time.Time
	FinishedAt *time.Time
	RowCount   int64
	Error      string
}
