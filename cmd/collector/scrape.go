package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/masaki/asset-collector/internal/browser"
	"github.com/masaki/asset-collector/internal/config"
	"github.com/masaki/asset-collector/internal/run"
	"github.com/masaki/asset-collector/internal/sources"
	"github.com/masaki/asset-collector/internal/store"
)

var scrapeCommand = &cobra.Command{
	Use:   "scrape",
	Short: "Collect balances from institution web portals",
	Long: `Logs into each configured institution portal with a headless browser,
extracts the current balances, and upserts them into the asset store.

Sources: ` + fmt.Sprint(sources.Names()) + `

Credentials come from the environment (see .env.example). Non-secret
settings can be loaded from a JSON file using --config.`,
	RunE: scrapeCmd,
}

var (
	scrapeConfigPath string
	scrapeSource     string
	scrapeAll        bool
	scrapeDryRun     bool
	scrapeHeadful    bool
)

func init() {
	scrapeCommand.Flags().StringVar(&scrapeConfigPath, "config", "", "Path to config.json file (values can be overridden by environment variables)")
	scrapeCommand.Flags().StringVarP(&scrapeSource, "source", "s", "", "Source to collect from (mutually exclusive with --all)")
	scrapeCommand.Flags().BoolVar(&scrapeAll, "all", false, "Collect from every configured source")
	scrapeCommand.Flags().BoolVar(&scrapeDryRun, "dry-run", false, "Collect and print records without writing to the database")
	scrapeCommand.Flags().BoolVar(&scrapeHeadful, "headful", false, "Run the browser with a visible window (for selector debugging)")

	rootCmd.AddCommand(scrapeCommand)
}

func scrapeCmd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if scrapeAll == (scrapeSource != "") {
		return fmt.Errorf("exactly one of --source or --all is required")
	}

	cfg, err := config.Load(scrapeConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if scrapeHeadful {
		cfg.Headless = false
	}

	names := []string{scrapeSource}
	if scrapeAll {
		names = sources.Names()
	}
	for _, name := range names {
		if err := cfg.RequireSource(name); err != nil {
			return err
		}
	}

	st, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	// Each source gets its own browser session so a crashed portal cannot
	// poison the others, and so sessions never share login state.
	g, gctx := errgroup.WithContext(ctx)
	for _, name := range names {
		src, err := sources.New(name, cfg, logger)
		if err != nil {
			return err
		}
		g.Go(func() error {
			return scrapeOne(gctx, src, cfg, st)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if scrapeDryRun {
		printDryRun(st)
	}
	return nil
}

func scrapeOne(ctx context.Context, src sources.Source, cfg *config.Config, st store.Store) error {
	session, err := browser.NewSession(ctx, browser.Options{
		Headless:          cfg.Headless,
		NavigationTimeout: cfg.WaitTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to start browser for %s: %w", src.Name(), err)
	}
	defer session.Close()

	return run.ExecuteSource(ctx, src, session, st, logger)
}

// openStore returns the Postgres store, or an in-memory store for dry runs.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, func(), error) {
	if scrapeDryRun {
		return store.NewMemory(), func() {}, nil
	}
	if err := cfg.RequireDatabase(); err != nil {
		return nil, nil, err
	}
	pg, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	return pg, pg.Close, nil
}

func printDryRun(st store.Store) {
	mem, ok := st.(*store.Memory)
	if !ok {
		return
	}
	recs := mem.Records()
	fmt.Printf("dry run: %d record(s) collected\n", len(recs))
	for _, r := range recs {
		fmt.Printf("  %s  %-14s  %-24s  market=%d invested=%d  (%s)\n",
			r.RecordDate, r.Institution, r.Name, r.MarketValue, r.InvestedAmount, r.Source)
	}
}
