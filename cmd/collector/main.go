// Package main provides the asset-collector CLI: per-institution web
// scrapers and the payroll PDF parser, feeding one shared asset store.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "collector",
	Short: "Personal asset data collector",
	Long:  "Collects account balances from institution web portals and payroll statement PDFs, normalizes them, and upserts them into the asset store.",
}

var logger *log.Logger

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "collector",
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
