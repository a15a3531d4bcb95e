package sources

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/masaki/asset-collector/internal/browser"
	"github.com/masaki/asset-collector/internal/config"
	"github.com/masaki/asset-collector/internal/parsing"
	"github.com/masaki/asset-collector/internal/records"
)

// Selectors for the brokerage portal's email-login flow and balance page.
const (
	nomuraDefaultLoginURL = "https://www.e-plan.nomura.co.jp/login/index.html"
	nomuraEmailTab        = "#m_login_tab_header_id1"
	nomuraLoginID         = "#m_login_mail_address"
	nomuraLoginPassword   = "#m_login_mail_password"
	nomuraLoginSubmit     = ".m_login_btn_01"
	nomuraDetailLink      = `a[href*="WEAW1101.jsp"]`
	nomuraDetailTable     = "table.hidden-sp"
	nomuraBalanceDate     = ".e_zandaka_date"
	nomuraBalanceValue    = ".hidden-sp .m_home_mydate_result_score"
	nomuraErrorElement    = ".formErrorContent"
)

// Nomura collects the stock plan balance from the brokerage portal.
type Nomura struct {
	cfg    config.Nomura
	wait   time.Duration
	dates  parsing.DateParser
	logger *log.Logger
}

var _ Source = (*Nomura)(nil)

func (n *Nomura) Name() string { return "nomura" }

func (n *Nomura) loginURL() string {
	if n.cfg.LoginURL != "" {
		return n.cfg.LoginURL
	}
	return nomuraDefaultLoginURL
}

// Collect authenticates through the email tab, verifies login by the
// presence of a post-login marker, navigates to the balance detail page, and
// extracts the stock plan valuation.
func (n *Nomura) Collect(ctx context.Context, page browser.Page) ([]records.Record, error) {
	if err := page.Navigate(ctx, n.loginURL()); err != nil {
		return nil, &NavigationError{Source: n.Name(), Step: "login page", Cause: err}
	}

	if err := n.authenticate(ctx, page); err != nil {
		return nil, err
	}
	if err := n.checkLoggedIn(ctx, page); err != nil {
		return nil, err
	}
	n.logger.Info("login successful")

	if err := n.openDetail(ctx, page); err != nil {
		return nil, err
	}

	recordDate := n.extractDate(ctx, page)
	valuation, err := firstAmount(ctx, n.logger, []lookup{
		{name: "balance selector", fn: textIfPresent(page, nomuraBalanceValue)},
		{name: "balance label scan", fn: labelScan(page, "残高")},
	})
	if err != nil {
		return nil, err
	}
	n.logger.Info("extracted balance", "value", valuation, "date", recordDate)

	rec, err := records.Assemble(recordDate, "野村証券", "持株会", valuation, 0, "nomura_native")
	if err != nil {
		return nil, err
	}
	return []records.Record{rec}, nil
}

func (n *Nomura) authenticate(ctx context.Context, page browser.Page) error {
	// The email tab is collapsed behind a tab header on the combined login
	// page; click it when present so the inputs become visible.
	if ok, err := page.Exists(ctx, nomuraEmailTab); err == nil && ok {
		if err := page.Click(ctx, nomuraEmailTab); err != nil {
			return &LoginError{Source: n.Name(), Reason: "failed to open email tab", Cause: err}
		}
	}

	required, err := page.Exists(ctx, nomuraLoginID)
	if err != nil {
		return &LoginError{Source: n.Name(), Reason: "login detection failed", Cause: err}
	}
	if !required {
		n.logger.Info("session already active, skipping login")
		return nil
	}

	if err := page.WaitVisible(ctx, nomuraLoginID, n.wait); err != nil {
		return &LoginError{Source: n.Name(), Reason: "login input never became visible", Cause: err}
	}
	if err := page.Fill(ctx, nomuraLoginID, n.cfg.LoginID); err != nil {
		return &LoginError{Source: n.Name(), Reason: "failed to fill login id", Cause: err}
	}
	if err := page.Fill(ctx, nomuraLoginPassword, n.cfg.Password); err != nil {
		return &LoginError{Source: n.Name(), Reason: "failed to fill password", Cause: err}
	}
	if err := clickFirst(ctx, page, []string{nomuraLoginSubmit}); err != nil {
		return &LoginError{Source: n.Name(), Reason: "failed to submit login form", Cause: err}
	}
	return nil
}

// checkLoggedIn decides success by the presence of a post-login marker, not
// by the absence of errors. An explicit on-screen error message is surfaced
// verbatim as the failure reason.
func (n *Nomura) checkLoggedIn(ctx context.Context, page browser.Page) error {
	if ok, err := page.Exists(ctx, nomuraDetailLink); err == nil && ok {
		return nil
	}
	if ok, err := page.ContainsText(ctx, "ログアウト"); err == nil && ok {
		return nil
	}

	if ok, err := page.Exists(ctx, nomuraErrorElement); err == nil && ok {
		if msg, err := page.Text(ctx, nomuraErrorElement); err == nil && strings.TrimSpace(msg) != "" {
			return &LoginError{Source: n.Name(), Reason: strings.TrimSpace(msg)}
		}
	}
	if ok, err := page.ContainsText(ctx, "パスワード変更"); err == nil && ok {
		return &LoginError{Source: n.Name(), Reason: "password change required"}
	}
	return &LoginError{Source: n.Name(), Reason: "no post-login marker found"}
}

func (n *Nomura) openDetail(ctx context.Context, page browser.Page) error {
	ok, err := page.Exists(ctx, nomuraDetailLink)
	if err != nil {
		return &NavigationError{Source: n.Name(), Step: "detail link", Cause: err}
	}
	if ok {
		if err := page.Click(ctx, nomuraDetailLink); err != nil {
			return &NavigationError{Source: n.Name(), Step: "detail link click", Cause: err}
		}
		if err := page.WaitVisible(ctx, nomuraDetailTable, n.wait); err != nil {
			// The balance is sometimes rendered without the desktop
			// table; continue and let extraction decide.
			n.logger.Warn("detail table wait timed out", "error", err)
		}
	}
	return nil
}

func (n *Nomura) extractDate(ctx context.Context, page browser.Page) string {
	ok, err := page.Exists(ctx, nomuraBalanceDate)
	if err != nil || !ok {
		return n.dates.ParseJapaneseDate("")
	}
	raw, err := page.Text(ctx, nomuraBalanceDate)
	if err != nil {
		return n.dates.ParseJapaneseDate("")
	}
	return n.dates.ParseJapaneseDate(raw)
}
