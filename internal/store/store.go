// Package store persists observation records, job-run status, and scraper
// logs. The upsert on the natural key is the idempotency boundary; the
// status and log sinks are fire-and-forget from the caller's point of view.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/masaki/asset-collector/internal/records"
)

// Job-run terminal and transient statuses.
const (
	StatusRunning = "running"
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// JobRun is the per-invocation state tracked for each scraper job. It is
// overwritten at the start of every run and updated exactly once at the end.
type JobRun struct {
	JobID     string    `json:"job_id"`
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LogEntry is one append-only observability line.
type LogEntry struct {
	ID       uuid.UUID      `json:"id"`
	Source   string         `json:"source"`
	Level    string         `json:"level"`
	Message  string         `json:"message"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Store is the persistence collaborator: an idempotent record upsert keyed by
// the natural key, plus the two write-only observability sinks.
type Store interface {
	// UpsertRecords writes all records; for an existing natural key the
	// later write wins. The call is all-or-nothing from the caller's view:
	// it is invoked once per run, after extraction has fully succeeded.
	UpsertRecords(ctx context.Context, recs []records.Record) error
	// RecordJobStatus creates or overwrites the run state for jobID.
	RecordJobStatus(ctx context.Context, jobID, status, message string) error
	// AppendLog appends one log line.
	AppendLog(ctx context.Context, entry LogEntry) error
}
