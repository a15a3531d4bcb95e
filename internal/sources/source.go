// Package sources implements the per-institution collection recipes. Each
// adapter shares the same capability shape over the browser.Page surface:
// login detection, authentication with a submit fallback chain, a post-login
// success check, navigation, and field extraction with ordered fallbacks.
package sources

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/masaki/asset-collector/internal/browser"
	"github.com/masaki/asset-collector/internal/config"
	"github.com/masaki/asset-collector/internal/parsing"
	"github.com/masaki/asset-collector/internal/records"
)

// Source is one institution's collection recipe. Collect drives a full
// extraction against an exclusively-owned page and returns the observation
// records for this run; it never persists anything itself.
type Source interface {
	Name() string
	Collect(ctx context.Context, page browser.Page) ([]records.Record, error)
}

// lookup is one step in an ordered field-extraction fallback chain. fn
// returns the raw text it found, or "" when its strategy does not apply.
type lookup struct {
	name string
	fn   func(ctx context.Context) (string, error)
}

// firstAmount evaluates the chain in order and returns the first lookup whose
// text parses to a non-zero amount. Exhausting the chain yields 0; the
// caller's zero-means-failure policy decides what that means.
func firstAmount(ctx context.Context, logger *log.Logger, chain []lookup) (int64, error) {
	for _, l := range chain {
		raw, err := l.fn(ctx)
		if err != nil {
			return 0, fmt.Errorf("lookup %s failed: %w", l.name, err)
		}
		if raw == "" {
			continue
		}
		if v := parsing.ParseAmount(raw); v != 0 {
			logger.Debug("field extracted", "lookup", l.name, "raw", raw, "value", v)
			return v, nil
		}
	}
	return 0, nil
}

// textIfPresent is a lookup fn reading selector's text, or "" when the
// element is absent.
func textIfPresent(page browser.Page, selector string) func(ctx context.Context) (string, error) {
	return func(ctx context.Context) (string, error) {
		ok, err := page.Exists(ctx, selector)
		if err != nil || !ok {
			return "", err
		}
		return page.Text(ctx, selector)
	}
}

// labelScan is a lookup fn that falls back to scanning the full markup for
// an amount adjacent to label.
func labelScan(page browser.Page, label string) func(ctx context.Context) (string, error) {
	return func(ctx context.Context) (string, error) {
		html, err := page.HTML(ctx)
		if err != nil {
			return "", err
		}
		return scanForLabeledAmount(html, label), nil
	}
}

// clickFirst tries the ordered selector candidates and clicks the first one
// present. Markup drift on the target site moves or renames submit controls;
// the chain tolerates that without hardcoding one selector. When no candidate
// exists the page's first form is submitted directly.
func clickFirst(ctx context.Context, page browser.Page, selectors []string) error {
	for _, sel := range selectors {
		ok, err := page.Exists(ctx, sel)
		if err != nil {
			return err
		}
		if ok {
			return page.Click(ctx, sel)
		}
	}
	return page.SubmitForm(ctx)
}

// New returns the adapter for name, wired with its configuration.
func New(name string, cfg *config.Config, logger *log.Logger) (Source, error) {
	if err := cfg.RequireSource(name); err != nil {
		return nil, err
	}
	dates := parsing.DateParser{}
	switch name {
	case "pension":
		return &Pension{cfg: cfg.Pension, wait: cfg.WaitTimeout, dates: dates, logger: logger}, nil
	case "nomura":
		return &Nomura{cfg: cfg.Nomura, wait: cfg.WaitTimeout, dates: dates, logger: logger}, nil
	case "zaim":
		return &Zaim{cfg: cfg.Zaim, wait: cfg.WaitTimeout, dates: dates, logger: logger}, nil
	}
	return nil, fmt.Errorf("unknown source %q", name)
}

// Names lists the supported adapter names in a stable order.
func Names() []string {
	return []string{"pension", "nomura", "zaim"}
}
