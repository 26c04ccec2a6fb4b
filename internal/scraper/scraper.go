// Package scraper fetches product pages and drives the extraction
// pipeline. One invocation issues exactly one outbound GET; there are
// no retries and no script execution.
package scraper

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidURL means the input did not parse as an absolute
	// http(s) URL. Nothing downstream runs.
	ErrInvalidURL = errors.New("invalid product URL")

	// ErrBlocked means the site answered 403 and is actively rejecting
	// automated access. Callers should offer manual entry instead.
	ErrBlocked = errors.New("blocked by site anti-bot protection")
)

// FetchError reports a fetch that failed with a non-2xx status or a
// network-level error. StatusCode is zero when no response arrived
// (DNS, timeout, TLS).
type FetchError struct {
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("fetch failed: %v", e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
