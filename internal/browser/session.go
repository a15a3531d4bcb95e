package browser

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// DefaultNavigationTimeout bounds page loads; individual element waits carry
// their own caller-specified timeouts.
const DefaultNavigationTimeout = 60 * time.Second

// userAgent presented to scraped sites. Some portals serve a degraded mobile
// layout to unknown agents, which moves the selectors we depend on.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Options configures a browser session.
type Options struct {
	Headless bool
	// NavigationTimeout overrides DefaultNavigationTimeout when positive.
	NavigationTimeout time.Duration
}

// Session is a chromedp-backed Page. One session owns one browser context;
// sessions are never shared between runs.
type Session struct {
	ctx     context.Context
	cancels []context.CancelFunc
	navTime time.Duration
}

var _ Page = (*Session)(nil)

// NewSession starts a browser and returns a session bound to ctx. Close must
// be called on every exit path.
func NewSession(ctx context.Context, opts Options) (*Session, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", opts.Headless),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(userAgent),
			chromedp.WindowSize(1280, 800),
		)...,
	)

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	s := &Session{
		ctx:     browserCtx,
		cancels: []context.CancelFunc{cancelBrowser, cancelAlloc},
		navTime: opts.NavigationTimeout,
	}
	if s.navTime <= 0 {
		s.navTime = DefaultNavigationTimeout
	}

	// Start the browser eagerly so a missing Chrome binary fails here, not
	// in the middle of a run.
	if err := chromedp.Run(browserCtx); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}
	return s, nil
}

// Close releases the browser and all derived contexts.
func (s *Session) Close() {
	for _, cancel := range s.cancels {
		cancel()
	}
}

func (s *Session) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- chromedp.Run(runCtx, actions...) }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		cancel()
		return ctx.Err()
	}
}

// Navigate loads url and waits for the body element.
func (s *Session) Navigate(ctx context.Context, url string) error {
	if err := s.run(ctx, s.navTime,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("navigation to %s failed: %w", url, err)
	}
	return nil
}

// WaitVisible waits for selector to become visible within timeout.
func (s *Session) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	if err := s.run(ctx, timeout, chromedp.WaitVisible(selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("wait for %s failed: %w", selector, err)
	}
	return nil
}

// Exists reports whether selector matches anything in the current document.
func (s *Session) Exists(ctx context.Context, selector string) (bool, error) {
	var found bool
	expr := fmt.Sprintf("document.querySelector(%s) !== null", strconv.Quote(selector))
	if err := s.run(ctx, s.navTime, chromedp.Evaluate(expr, &found)); err != nil {
		return false, fmt.Errorf("existence check for %s failed: %w", selector, err)
	}
	return found, nil
}

// Text returns the visible text of the first match for selector.
func (s *Session) Text(ctx context.Context, selector string) (string, error) {
	var text string
	if err := s.run(ctx, s.navTime, chromedp.Text(selector, &text, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("text read for %s failed: %w", selector, err)
	}
	return text, nil
}

// Fill sets the input matching selector to value.
func (s *Session) Fill(ctx context.Context, selector, value string) error {
	if err := s.run(ctx, s.navTime,
		chromedp.SetValue(selector, value, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("fill %s failed: %w", selector, err)
	}
	return nil
}

// Click clicks the first visible match for selector.
func (s *Session) Click(ctx context.Context, selector string) error {
	if err := s.run(ctx, s.navTime, chromedp.Click(selector, chromedp.ByQuery, chromedp.NodeVisible)); err != nil {
		return fmt.Errorf("click %s failed: %w", selector, err)
	}
	return nil
}

// SubmitForm submits the document's first form.
func (s *Session) SubmitForm(ctx context.Context) error {
	if err := s.run(ctx, s.navTime, chromedp.Evaluate("document.forms[0].submit()", nil)); err != nil {
		return fmt.Errorf("form submission failed: %w", err)
	}
	return nil
}

// ContainsText reports whether the rendered body text contains needle.
func (s *Session) ContainsText(ctx context.Context, needle string) (bool, error) {
	var body string
	if err := s.run(ctx, s.navTime, chromedp.Text("body", &body, chromedp.ByQuery)); err != nil {
		return false, fmt.Errorf("body text read failed: %w", err)
	}
	return strings.Contains(body, needle), nil
}

// HTML returns the full rendered markup of the current document.
func (s *Session) HTML(ctx context.Context) (string, error) {
	var html string
	if err := s.run(ctx, s.navTime, chromedp.OuterHTML("html", &html)); err != nil {
		return "", fmt.Errorf("html read failed: %w", err)
	}
	return html, nil
}
