package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// Provider download endpoints refuse requests without a browser-like agent
const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// DefaultTimeout bounds a single holdings download
const DefaultTimeout = 60 * time.Second

// Client downloads raw holdings files over HTTP
type Client struct {
	userAgent  string
	httpClient *http.Client
}

// NewClient creates a new Client. A zero timeout uses DefaultTimeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		userAgent: defaultUserAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch downloads the resource at url and returns its body
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	log.Debugf("Fetch begins: %s", url)
	resp, err := c.doRequest(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	log.Debugf("Fetch ends: %s (%d bytes)", url, len(body))
	return body, nil
}

func (c *Client) doRequest(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%s returned status %d", url, resp.StatusCode)
	}

	return resp, nil
}
