package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/masaki/asset-collector/internal/records"
)

// upsertAttempts bounds retries of transient write failures. Retrying is safe
// because every write is idempotent on its key.
const upsertAttempts = 3

// Postgres is the production Store, backed by a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

var _ Store = (*Postgres)(nil)

// Connect establishes a connection pool and verifies it with a ping.
func Connect(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// Close closes the connection pool.
func (p *Postgres) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

// UpsertRecords writes each record, resolving natural-key conflicts in favor
// of the new values. Transient failures are retried a bounded number of
// times.
func (p *Postgres) UpsertRecords(ctx context.Context, recs []records.Record) error {
	return retry.Do(
		func() error {
			for _, rec := range recs {
				_, err := p.pool.Exec(ctx,
					`INSERT INTO assets (record_date, institution, name, market_value, invested_amount, source)
					 VALUES ($1, $2, $3, $4, $5, $6)
					 ON CONFLICT (record_date, institution, name, source)
					 DO UPDATE SET market_value = EXCLUDED.market_value,
					               invested_amount = EXCLUDED.invested_amount,
					               updated_at = NOW()`,
					rec.RecordDate, rec.Institution, rec.Name, rec.MarketValue, rec.InvestedAmount, rec.Source,
				)
				if err != nil {
					return fmt.Errorf("failed to upsert record %s: %w", rec.Key(), err)
				}
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(upsertAttempts),
		retry.LastErrorOnly(true),
	)
}

// RecordJobStatus creates or overwrites the job-run row for jobID.
func (p *Postgres) RecordJobStatus(ctx context.Context, jobID, status, message string) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO job_runs (job_id, status, message, updated_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (job_id)
		 DO UPDATE SET status = $2, message = $3, updated_at = NOW()`,
		jobID, status, message,
	)
	if err != nil {
		return fmt.Errorf("failed to record job status for %s: %w", jobID, err)
	}
	return nil
}

// AppendLog appends one scraper log line.
func (p *Postgres) AppendLog(ctx context.Context, entry LogEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	var metadata []byte
	if entry.Metadata != nil {
		var err error
		metadata, err = json.Marshal(entry.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal log metadata: %w", err)
		}
	}
	_, err := p.pool.Exec(ctx,
		`INSERT INTO scraper_logs (id, source, level, message, metadata)
		 VALUES ($1, $2, $3, $4, $5)`,
		entry.ID, entry.Source, entry.Level, entry.Message, metadata,
	)
	if err != nil {
		return fmt.Errorf("failed to append log: %w", err)
	}
	return nil
}
