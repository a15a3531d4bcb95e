package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.True(t, cfg.Headless)
	assert.Equal(t, DefaultWaitTimeout, cfg.WaitTimeout)
}

func TestLoadFromFileWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{
		"database_url": "postgres://file-value/db",
		"pension": {"start_url": "https://pension.example.com/start"},
		"wait_timeout_seconds": 10
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	t.Setenv("DATABASE_URL", "postgres://env-value/db")
	t.Setenv("PENSION_ACCOUNT_ID", "user1")
	t.Setenv("PENSION_PASSWORD", "secret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://env-value/db", cfg.DatabaseURL, "env wins over file")
	assert.Equal(t, "https://pension.example.com/start", cfg.Pension.StartURL)
	assert.Equal(t, "user1", cfg.Pension.AccountID)
	assert.Equal(t, 10*time.Second, cfg.WaitTimeout)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.json")
	assert.Error(t, err)
}

func TestRequireSource(t *testing.T) {
	cfg := &Config{}
	cfg.Nomura.LoginID = "id"
	cfg.Nomura.Password = "pw"

	assert.NoError(t, cfg.RequireSource("nomura"))
	assert.Error(t, cfg.RequireSource("pension"), "pension credentials absent")
	assert.Error(t, cfg.RequireSource("zaim"))
	assert.Error(t, cfg.RequireSource("unknown"))
}

func TestRequireDatabase(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, cfg.RequireDatabase())

	cfg.DatabaseURL = "postgres://localhost/assets"
	assert.NoError(t, cfg.RequireDatabase())
}
