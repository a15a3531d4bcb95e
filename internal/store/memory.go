package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/masaki/asset-collector/internal/records"
)

// Memory is an in-process Store used by tests and dry runs. It applies the
// same natural-key upsert semantics as the Postgres store.
type Memory struct {
	mu      sync.RWMutex
	records map[string]records.Record
	jobs    map[string]JobRun
	logs    []LogEntry
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		records: make(map[string]records.Record),
		jobs:    make(map[string]JobRun),
	}
}

// UpsertRecords applies last-write-wins per natural key.
func (m *Memory) UpsertRecords(_ context.Context, recs []records.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range recs {
		m.records[rec.Key()] = rec
	}
	return nil
}

// RecordJobStatus overwrites the run state for jobID.
func (m *Memory) RecordJobStatus(_ context.Context, jobID, status, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[jobID] = JobRun{
		JobID:     jobID,
		Status:    status,
		Message:   message,
		UpdatedAt: time.Now(),
	}
	return nil
}

// AppendLog appends one log line.
func (m *Memory) AppendLog(_ context.Context, entry LogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	m.logs = append(m.logs, entry)
	return nil
}

// Records returns all stored records ordered by natural key.
func (m *Memory) Records() []records.Record {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.records))
	for k := range m.records {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]records.Record, 0, len(keys))
	for _, k := range keys {
		out = append(out, m.records[k])
	}
	return out
}

// Job returns the run state for jobID, if any.
func (m *Memory) Job(jobID string) (JobRun, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	job, ok := m.jobs[jobID]
	return job, ok
}

// Logs returns all appended log lines in order.
func (m *Memory) Logs() []LogEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]LogEntry, len(m.logs))
	copy(out, m.logs)
	return out
}
