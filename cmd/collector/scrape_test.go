package main

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrapeCmd_SourceFlagValidation(t *testing.T) {
	logger = log.New(io.Discard)

	tests := []struct {
		name      string
		source    string
		all       bool
		errString string
	}{
		{
			name:      "neither --source nor --all",
			errString: "exactly one of --source or --all",
		},
		{
			name:      "both --source and --all",
			source:    "pension",
			all:       true,
			errString: "exactly one of --source or --all",
		},
		{
			name:      "unknown source",
			source:    "mint",
			errString: "unknown source",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scrapeSource = tt.source
			scrapeAll = tt.all
			t.Cleanup(func() {
				scrapeSource = ""
				scrapeAll = false
			})

			err := scrapeCmd(scrapeCommand, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errString)
		})
	}
}

func TestScrapeCmd_MissingCredentials(t *testing.T) {
	logger = log.New(io.Discard)

	// Credentials come only from the environment; clear them so the
	// preflight check fails regardless of the host environment.
	for _, key := range []string{"PENSION_START_URL", "PENSION_ACCOUNT_ID", "PENSION_PASSWORD"} {
		t.Setenv(key, "")
	}

	scrapeSource = "pension"
	t.Cleanup(func() { scrapeSource = "" })

	err := scrapeCmd(scrapeCommand, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PENSION_ACCOUNT_ID")
}

func TestCommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["scrape"])
	assert.True(t, names["payroll"])
}
