package sources

import "fmt"

// LoginError represents an authentication failure. Reason carries the page's
// own error text verbatim when one was displayed, which is the most useful
// diagnostic the run can produce.
type LoginError struct {
	Source string
	Reason string
	Cause  error
}

func (e *LoginError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("login error [%s]: %s: %v", e.Source, e.Reason, e.Cause)
	}
	return fmt.Sprintf("login error [%s]: %s", e.Source, e.Reason)
}

func (e *LoginError) Unwrap() error {
	return e.Cause
}

// NavigationError represents a failed page transition or a wait that timed
// out. Fatal for the run; retries are an external scheduling concern.
type NavigationError struct {
	Source string
	Step   string
	Cause  error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("navigation error [%s]: %s: %v", e.Source, e.Step, e.Cause)
}

func (e *NavigationError) Unwrap() error {
	return e.Cause
}
