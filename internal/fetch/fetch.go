// Package fetch retrieves remote catalog source text over HTTP.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/songvault/songvault/pkg/types"
)

const (
	// userAgent identifies songvault to catalog hosts.
	userAgent = "songvault/1.0"

	defaultTimeout = 30 * time.Second
	maxAttempts    = 3
	initialBackoff = 500 * time.Millisecond
)

// Client fetches catalog text with a bounded timeout and retries
// transient failures with exponential backoff. It satisfies types.Fetcher.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a fetch client. A non-positive timeout selects the
// default.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves the text at url. Server errors and transport failures
// are retried up to three attempts; client errors fail immediately.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	var lastErr error
	backoff := initialBackoff

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		text, retryable, err := c.fetchOnce(ctx, url)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}

	return "", fmt.Errorf("%w: %s: %v", types.ErrFetchFailed, url, lastErr)
}

func (c *Client) fetchOnce(ctx context.Context, url string) (text string, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", false, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", ctx.Err() == nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", resp.StatusCode >= 500, fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, err
	}
	return string(body), false, nil
}
