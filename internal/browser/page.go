// Package browser provides headless browser sessions for institutions that
// are only reachable through a rendered page. Adapters depend on the Page
// capability surface, not on the automation technology behind it.
package browser

import (
	"context"
	"time"
)

// Page is the capability set a source adapter needs from a rendered page:
// element existence checks, text reads, fill/click actions, and bounded
// waits. Implementations must honor the context and never block past the
// given timeout.
type Page interface {
	// Navigate loads url and waits for the document body to be ready.
	Navigate(ctx context.Context, url string) error
	// WaitVisible blocks until the selector matches a visible element, or
	// the timeout elapses.
	WaitVisible(ctx context.Context, selector string, timeout time.Duration) error
	// Exists reports whether the selector matches at least one element.
	Exists(ctx context.Context, selector string) (bool, error)
	// Text returns the visible text of the first element matching selector.
	Text(ctx context.Context, selector string) (string, error)
	// Fill sets the value of the input matching selector.
	Fill(ctx context.Context, selector, value string) error
	// Click clicks the first element matching selector.
	Click(ctx context.Context, selector string) error
	// SubmitForm submits the page's first form, for login pages whose
	// submit control cannot be located.
	SubmitForm(ctx context.Context) error
	// ContainsText reports whether the page body's visible text contains s.
	ContainsText(ctx context.Context, s string) (bool, error)
	// HTML returns the full rendered document markup.
	HTML(ctx context.Context) (string, error)
}
