package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masaki/asset-collector/internal/records"
)

func TestMemoryUpsertIdempotence(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	first := records.Record{
		RecordDate:  "2024-03-15",
		Institution: "野村証券",
		Name:        "持株会",
		MarketValue: 100,
		Source:      "nomura_native",
	}
	second := first
	second.MarketValue = 200

	require.NoError(t, m.UpsertRecords(ctx, []records.Record{first}))
	require.NoError(t, m.UpsertRecords(ctx, []records.Record{second}))

	stored := m.Records()
	require.Len(t, stored, 1, "same natural key must never produce two rows")
	assert.Equal(t, int64(200), stored[0].MarketValue, "second write wins")
}

func TestMemoryDistinctKeys(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.UpsertRecords(ctx, []records.Record{
		{RecordDate: "2024-03-15", Institution: "野村証券", Name: "持株会", MarketValue: 100, Source: "nomura_native"},
		{RecordDate: "2024-03-16", Institution: "野村証券", Name: "持株会", MarketValue: 100, Source: "nomura_native"},
		{RecordDate: "2024-03-15", Institution: "確定拠出年金", Name: "年金資産合計", MarketValue: 200, Source: "dc_native"},
	}))

	assert.Len(t, m.Records(), 3)
}

func TestMemoryJobStatusLifecycle(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.RecordJobStatus(ctx, "nomura", StatusRunning, ""))
	job, ok := m.Job("nomura")
	require.True(t, ok)
	assert.Equal(t, StatusRunning, job.Status)

	require.NoError(t, m.RecordJobStatus(ctx, "nomura", StatusSuccess, "1 record"))
	job, _ = m.Job("nomura")
	assert.Equal(t, StatusSuccess, job.Status)
	assert.Equal(t, "1 record", job.Message)
}

func TestMemoryAppendLog(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.AppendLog(ctx, LogEntry{Source: "nomura", Level: "info", Message: "started"}))
	require.NoError(t, m.AppendLog(ctx, LogEntry{Source: "nomura", Level: "error", Message: "failed"}))

	logs := m.Logs()
	require.Len(t, logs, 2)
	assert.Equal(t, "started", logs[0].Message)
	assert.NotEqual(t, logs[0].ID, logs[1].ID)
}
