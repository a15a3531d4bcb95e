// Package run orchestrates one collection run: extract, persist, report.
// Every run reports exactly one terminal status, and nothing is persisted
// after a mid-run failure.
package run

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/masaki/asset-collector/internal/browser"
	"github.com/masaki/asset-collector/internal/records"
	"github.com/masaki/asset-collector/internal/sources"
	"github.com/masaki/asset-collector/internal/store"
)

// CollectFunc produces the records of one run. It either returns the full
// set or an error; partial results are never persisted.
type CollectFunc func(ctx context.Context) ([]records.Record, error)

// Execute drives one run under jobID: mark running, collect, upsert, and
// mark the terminal status. Collection and persistence failures mark the run
// failed and are returned to the caller for exit-code signaling. Failures of
// the status and log sinks themselves are logged and absorbed; they must not
// fail an otherwise successful extraction.
func Execute(ctx context.Context, jobID string, collect CollectFunc, st store.Store, logger *log.Logger) error {
	logger = logger.With("job", jobID)

	if err := st.RecordJobStatus(ctx, jobID, store.StatusRunning, ""); err != nil {
		logger.Warn("failed to record running status", "error", err)
	}

	recs, err := collect(ctx)
	if err != nil {
		logger.Error("collection failed", "error", err)
		reportFailure(ctx, st, logger, jobID, err)
		return err
	}

	if err := st.UpsertRecords(ctx, recs); err != nil {
		logger.Error("persistence failed", "error", err)
		reportFailure(ctx, st, logger, jobID, err)
		return err
	}

	// Terminal status is written on a context detached from run
	// cancellation: a sibling run's failure (or Ctrl-C) must not leave this
	// job stuck at "running".
	ctx = context.WithoutCancel(ctx)
	msg := fmt.Sprintf("%d record(s) stored", len(recs))
	if err := st.RecordJobStatus(ctx, jobID, store.StatusSuccess, msg); err != nil {
		logger.Warn("failed to record success status", "error", err)
	}
	if err := st.AppendLog(ctx, store.LogEntry{
		Source:  jobID,
		Level:   "info",
		Message: msg,
		Metadata: map[string]any{
			"records": len(recs),
		},
	}); err != nil {
		logger.Warn("failed to append log", "error", err)
	}

	logger.Info("run complete", "records", len(recs))
	return nil
}

func reportFailure(ctx context.Context, st store.Store, logger *log.Logger, jobID string, cause error) {
	// The failure being reported is often the cancellation itself; detach
	// so the terminal status still lands.
	ctx = context.WithoutCancel(ctx)
	if err := st.RecordJobStatus(ctx, jobID, store.StatusFailed, cause.Error()); err != nil {
		logger.Warn("failed to record failure status", "error", err)
	}
	if err := st.AppendLog(ctx, store.LogEntry{
		Source:  jobID,
		Level:   "error",
		Message: cause.Error(),
	}); err != nil {
		logger.Warn("failed to append log", "error", err)
	}
}

// ExecuteSource runs one web source adapter against its own page session.
func ExecuteSource(ctx context.Context, src sources.Source, page browser.Page, st store.Store, logger *log.Logger) error {
	return Execute(ctx, src.Name(), func(ctx context.Context) ([]records.Record, error) {
		return src.Collect(ctx, page)
	}, st, logger)
}
