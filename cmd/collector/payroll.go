package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/masaki/asset-collector/internal/config"
	"github.com/masaki/asset-collector/internal/payroll"
	"github.com/masaki/asset-collector/internal/records"
	"github.com/masaki/asset-collector/internal/run"
	"github.com/masaki/asset-collector/internal/store"
)

var payrollCommand = &cobra.Command{
	Use:   "payroll <statement.pdf>",
	Short: "Parse a payroll statement PDF and store its line items",
	Long: `Parses the text layer of a payroll or bonus statement PDF, extracts the
statement period and every labeled amount, and upserts one record per
line item into the asset store.

Bonus statements are recognized by the "SYO" filename prefix; everything
else is treated as a salary statement.`,
	Args: cobra.ExactArgs(1),
	RunE: payrollCmd,
}

var (
	payrollConfigPath  string
	payrollJSON        bool
	payrollDryRun      bool
	payrollSnapshotDir string
)

func init() {
	payrollCommand.Flags().StringVar(&payrollConfigPath, "config", "", "Path to config.json file (values can be overridden by environment variables)")
	payrollCommand.Flags().BoolVar(&payrollJSON, "json", false, "Print the parsed document as JSON and exit without storing")
	payrollCommand.Flags().BoolVar(&payrollDryRun, "dry-run", false, "Assemble records and print them without writing to the database")
	payrollCommand.Flags().StringVar(&payrollSnapshotDir, "snapshot-dir", "", "Directory to extract the statement page image into (optional)")

	rootCmd.AddCommand(payrollCommand)
}

func payrollCmd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	path := args[0]

	if payrollJSON {
		doc, err := parseStatement(path, payrollSnapshotDir, logger)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(doc)
	}

	var st store.Store
	if payrollDryRun {
		st = store.NewMemory()
	} else {
		cfg, err := config.Load(payrollConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.RequireDatabase(); err != nil {
			return err
		}
		pg, err := store.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pg.Close()
		st = pg
	}

	// Parsing and assembly run inside the job so a broken PDF or an
	// all-zero statement still marks the run failed.
	if err := run.Execute(ctx, "payroll", collectPayroll(path, payrollSnapshotDir, logger), st, logger); err != nil {
		return err
	}

	if payrollDryRun {
		printDryRun(st)
	}
	return nil
}

// collectPayroll extracts one payroll statement as a CollectFunc, so the
// run's status lifecycle covers parse and assembly failures.
func collectPayroll(path, snapshotDir string, logger *log.Logger) run.CollectFunc {
	return func(context.Context) ([]records.Record, error) {
		doc, err := parseStatement(path, snapshotDir, logger)
		if err != nil {
			return nil, err
		}
		return records.FromPayroll(doc)
	}
}

func parseStatement(path, snapshotDir string, logger *log.Logger) (*payroll.Document, error) {
	doc, err := payroll.Parse(path)
	if err != nil {
		return nil, err
	}
	logger.Info("parsed statement", "path", path, "type", doc.Kind, "month", doc.Month, "fields", len(doc.Details))

	if snapshotDir != "" {
		// Snapshot extraction is best-effort; a statement without an
		// embedded image still has a usable text layer.
		if err := payroll.ExtractSnapshot(path, snapshotDir); err != nil {
			logger.Warn("failed to extract snapshot", "error", err)
		}
	}
	return doc, nil
}
