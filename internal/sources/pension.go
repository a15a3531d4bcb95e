package sources

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/masaki/asset-collector/internal/browser"
	"github.com/masaki/asset-collector/internal/config"
	"github.com/masaki/asset-collector/internal/parsing"
	"github.com/masaki/asset-collector/internal/records"
)

// Selectors for the defined-contribution pension portal. The .forPcBlock
// prefix pins the desktop layout; the mobile layout duplicates the same IDs.
const (
	pensionLoginAccount  = "input[name='accountId']"
	pensionLoginPassword = "input[name='password']"
	pensionValuation     = ".forPcBlock #txtShisanHyoka"
	pensionInvested      = ".forPcBlock #txtUnyouKingaku"
	pensionAsOfDate      = ".forPcBlock #txtZikaKijunbi"
)

// pensionSubmitChain is the ordered list of submit candidates tried during
// login; the portal has shuffled its button markup more than once.
var pensionSubmitChain = []string{
	"#submit",
	"button[name='loginButton']",
	"input[type='submit']",
}

// Pension collects the total pension valuation from the DC pension portal.
type Pension struct {
	cfg    config.Pension
	wait   time.Duration
	dates  parsing.DateParser
	logger *log.Logger
}

var _ Source = (*Pension)(nil)

func (p *Pension) Name() string { return "pension" }

// Collect logs in if the session is not already active, waits for the
// desktop overview block, and extracts the valuation, invested principal,
// and as-of date.
func (p *Pension) Collect(ctx context.Context, page browser.Page) ([]records.Record, error) {
	if err := page.Navigate(ctx, p.cfg.StartURL); err != nil {
		return nil, &NavigationError{Source: p.Name(), Step: "start page", Cause: err}
	}

	required, err := page.Exists(ctx, pensionLoginAccount)
	if err != nil {
		return nil, &NavigationError{Source: p.Name(), Step: "login detection", Cause: err}
	}
	if required {
		p.logger.Info("login form detected, authenticating")
		if err := p.authenticate(ctx, page); err != nil {
			return nil, err
		}
	} else {
		p.logger.Info("session already active, skipping login")
	}

	if err := page.WaitVisible(ctx, pensionValuation, p.wait); err != nil {
		return nil, &NavigationError{Source: p.Name(), Step: "overview block", Cause: err}
	}

	valuation, err := firstAmount(ctx, p.logger, []lookup{
		{name: "valuation selector", fn: textIfPresent(page, pensionValuation)},
		{name: "valuation label scan", fn: labelScan(page, "資産評価額")},
	})
	if err != nil {
		return nil, err
	}

	invested, err := firstAmount(ctx, p.logger, []lookup{
		{name: "invested selector", fn: textIfPresent(page, pensionInvested)},
		{name: "invested label scan", fn: labelScan(page, "拠出金額")},
	})
	if err != nil {
		return nil, err
	}

	recordDate := p.extractDate(ctx, page)
	p.logger.Info("extracted pension overview",
		"valuation", valuation, "invested", invested, "date", recordDate)

	rec, err := records.Assemble(recordDate, "確定拠出年金", "年金資産合計", valuation, invested, "dc_native")
	if err != nil {
		return nil, err
	}
	return []records.Record{rec}, nil
}

func (p *Pension) authenticate(ctx context.Context, page browser.Page) error {
	if err := page.Fill(ctx, pensionLoginAccount, p.cfg.AccountID); err != nil {
		return &LoginError{Source: p.Name(), Reason: "failed to fill account id", Cause: err}
	}
	if err := page.Fill(ctx, pensionLoginPassword, p.cfg.Password); err != nil {
		return &LoginError{Source: p.Name(), Reason: "failed to fill password", Cause: err}
	}
	if err := clickFirst(ctx, page, pensionSubmitChain); err != nil {
		return &LoginError{Source: p.Name(), Reason: "failed to submit login form", Cause: err}
	}
	return nil
}

// extractDate reads the valuation as-of date; when the element is missing the
// record is dated to the run day.
func (p *Pension) extractDate(ctx context.Context, page browser.Page) string {
	ok, err := page.Exists(ctx, pensionAsOfDate)
	if err != nil || !ok {
		return p.dates.ParseJapaneseDate("")
	}
	raw, err := page.Text(ctx, pensionAsOfDate)
	if err != nil {
		return p.dates.ParseJapaneseDate("")
	}
	return p.dates.ParseJapaneseDate(raw)
}
