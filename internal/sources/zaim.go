package sources

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"

	"github.com/masaki/asset-collector/internal/browser"
	"github.com/masaki/asset-collector/internal/config"
	"github.com/masaki/asset-collector/internal/parsing"
	"github.com/masaki/asset-collector/internal/records"
)

const (
	zaimDefaultMoneyURL = "https://zaim.net/money"
	zaimLoginEmail      = "input[type='email']"
	zaimLoginPassword   = "input[type='password']"
)

var zaimSubmitChain = []string{
	"button[type='submit']",
	"input[type='submit']",
}

// summaryKeywords mark aggregate rows that must not be recorded as accounts.
var summaryKeywords = []string{"合計", "総資産"}

// Zaim walks the aggregator's balance table and records every account row.
// The site has no per-account stable selectors, so the whole rendered table
// is parsed from markup.
type Zaim struct {
	cfg    config.Zaim
	wait   time.Duration
	dates  parsing.DateParser
	logger *log.Logger
}

var _ Source = (*Zaim)(nil)

func (z *Zaim) Name() string { return "zaim" }

func (z *Zaim) moneyURL() string {
	if z.cfg.MoneyURL != "" {
		return z.cfg.MoneyURL
	}
	return zaimDefaultMoneyURL
}

// Collect navigates to the balance page (authenticating when the session has
// expired), waits for the table, and parses all account rows.
func (z *Zaim) Collect(ctx context.Context, page browser.Page) ([]records.Record, error) {
	if err := page.Navigate(ctx, z.moneyURL()); err != nil {
		return nil, &NavigationError{Source: z.Name(), Step: "balance page", Cause: err}
	}

	required, err := page.Exists(ctx, zaimLoginEmail)
	if err != nil {
		return nil, &NavigationError{Source: z.Name(), Step: "login detection", Cause: err}
	}
	if required {
		z.logger.Info("session expired, authenticating")
		if err := z.authenticate(ctx, page); err != nil {
			return nil, err
		}
	}

	if err := page.WaitVisible(ctx, "table", z.wait); err != nil {
		return nil, &NavigationError{Source: z.Name(), Step: "balance table", Cause: err}
	}

	html, err := page.HTML(ctx)
	if err != nil {
		return nil, &NavigationError{Source: z.Name(), Step: "page markup", Cause: err}
	}

	recs, err := z.parseRows(html)
	if err != nil {
		return nil, err
	}
	z.logger.Info("parsed balance table", "records", len(recs))
	return recs, nil
}

func (z *Zaim) authenticate(ctx context.Context, page browser.Page) error {
	if err := page.Fill(ctx, zaimLoginEmail, z.cfg.Email); err != nil {
		return &LoginError{Source: z.Name(), Reason: "failed to fill email", Cause: err}
	}
	if err := page.Fill(ctx, zaimLoginPassword, z.cfg.Password); err != nil {
		return &LoginError{Source: z.Name(), Reason: "failed to fill password", Cause: err}
	}
	if err := clickFirst(ctx, page, zaimSubmitChain); err != nil {
		return &LoginError{Source: z.Name(), Reason: "failed to submit login form", Cause: err}
	}
	if err := page.Navigate(ctx, z.moneyURL()); err != nil {
		return &NavigationError{Source: z.Name(), Step: "balance page after login", Cause: err}
	}
	return nil
}

// parseRows extracts one record per account row. First cell line is the
// institution, second the account name; the last parseable number in the row
// wins, because earlier numeric cells hold counts and change deltas.
func (z *Zaim) parseRows(html string) ([]records.Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &NavigationError{Source: z.Name(), Step: "markup parse", Cause: err}
	}

	today := z.dates.ParseJapaneseDate("")
	var recs []records.Record

	doc.Find("table tbody tr").Each(func(_ int, row *goquery.Selection) {
		var lines []string
		row.Find("td,th").Each(func(_ int, cell *goquery.Selection) {
			for _, line := range strings.Split(cell.Text(), "\n") {
				if t := strings.TrimSpace(line); t != "" {
					lines = append(lines, t)
				}
			}
		})
		if len(lines) < 2 {
			return
		}

		institution := lines[0]
		for _, kw := range summaryKeywords {
			if strings.Contains(institution, kw) {
				z.logger.Debug("skipping summary row", "institution", institution)
				return
			}
		}
		name := lines[1]

		var value int64
		var seen bool
		for _, line := range lines[1:] {
			if v := parsing.ParseAmount(line); v != 0 {
				value = v
				seen = true
			}
		}
		if !seen {
			return
		}

		rec, err := records.Assemble(today, institution, name, value, 0, "zaim")
		if err != nil {
			z.logger.Warn("skipping row", "institution", institution, "error", err)
			return
		}
		recs = append(recs, rec)
	})

	if len(recs) == 0 {
		return nil, &records.ExtractionError{
			Source:  z.Name(),
			Field:   "rows",
			Message: "no account rows extracted; layout likely changed",
		}
	}
	return recs, nil
}
