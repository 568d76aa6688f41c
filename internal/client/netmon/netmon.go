// Package netmon is the boundary to the device connectivity monitor.
// The monitor itself is an external collaborator; this package defines the
// surface the core consumes and one concrete probe implementation.
package netmon

import (
	"context"
	"net/http"
	"time"
)

// Checker answers an on-demand connectivity poll.
type Checker interface {
	// Fetch reports whether the device currently has connectivity.
	Fetch(ctx context.Context) bool
}

// HTTPChecker probes a URL to decide connectivity. Any completed response,
// whatever its status, counts as connected; only transport errors do not.
type HTTPChecker struct {
	Client  *http.Client
	URL     string
	Timeout time.Duration
}

// NewHTTPChecker returns a checker probing the given URL with a short
// per-probe timeout.
func NewHTTPChecker(url string) *HTTPChecker {
	return &HTTPChecker{
		Client:  &http.Client{},
		URL:     url,
		Timeout: 3 * time.Second,
	}
}

// Fetch implements Checker.
func (c *HTTPChecker) Fetch(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.URL, nil)
	if err != nil {
		return false
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return true
}
