package sources

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// fakePage is a scripted Page for adapter tests: selectors resolve against
// fixed maps, and actions are recorded for assertions.
type fakePage struct {
	exists   map[string]bool
	texts    map[string]string
	bodyText string
	html     string

	// visible lists selectors WaitVisible succeeds for; everything else
	// times out.
	visible map[string]bool

	navigated []string
	clicked   []string
	filled    map[string]string
	submitted bool

	// onClick mutates page state when a selector is clicked, to script
	// post-login transitions.
	onClick map[string]func(p *fakePage)
}

func newFakePage() *fakePage {
	return &fakePage{
		exists:  make(map[string]bool),
		texts:   make(map[string]string),
		visible: make(map[string]bool),
		filled:  make(map[string]string),
		onClick: make(map[string]func(p *fakePage)),
	}
}

func (p *fakePage) Navigate(_ context.Context, url string) error {
	p.navigated = append(p.navigated, url)
	return nil
}

func (p *fakePage) WaitVisible(_ context.Context, selector string, _ time.Duration) error {
	if p.visible[selector] {
		return nil
	}
	return fmt.Errorf("wait for %s timed out", selector)
}

func (p *fakePage) Exists(_ context.Context, selector string) (bool, error) {
	return p.exists[selector], nil
}

func (p *fakePage) Text(_ context.Context, selector string) (string, error) {
	if text, ok := p.texts[selector]; ok {
		return text, nil
	}
	return "", fmt.Errorf("no element for %s", selector)
}

func (p *fakePage) Fill(_ context.Context, selector, value string) error {
	p.filled[selector] = value
	return nil
}

func (p *fakePage) Click(_ context.Context, selector string) error {
	p.clicked = append(p.clicked, selector)
	if fn, ok := p.onClick[selector]; ok {
		fn(p)
	}
	return nil
}

func (p *fakePage) SubmitForm(_ context.Context) error {
	p.submitted = true
	return nil
}

func (p *fakePage) ContainsText(_ context.Context, s string) (bool, error) {
	return strings.Contains(p.bodyText, s), nil
}

func (p *fakePage) HTML(_ context.Context) (string, error) {
	return p.html, nil
}
