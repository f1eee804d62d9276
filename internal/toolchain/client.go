package toolchain

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
)

// DefaultUserAgent is the User-Agent header sent with requests.
const DefaultUserAgent = "zigup/1.0"

// Client performs the index and archive GETs, optionally through a proxy.
type Client struct {
	http      *http.Client
	userAgent string
}

// NewClient creates a client. A non-empty proxy is applied to every request;
// otherwise the standard proxy environment variables are honoured.
func NewClient(proxy string) (*Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if proxy = strings.TrimSpace(proxy); proxy != "" {
		proxyURL, err := url.Parse(proxy)
		if err != nil {
			return nil, fmt.Errorf("parse proxy %s: %w", proxy, err)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}
	return &Client{
		http:      &http.Client{Transport: transport},
		userAgent: DefaultUserAgent,
	}, nil
}

// Get fetches url and returns the full response body.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", ErrNetwork, rawURL, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %w", ErrNetwork, rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: GET %s: unexpected status %s", ErrNetwork, rawURL, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: read body: %w", ErrNetwork, rawURL, err)
	}
	return data, nil
}

// ArchiveName returns the final path segment of an archive URL.
func ArchiveName(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrMalformedURL, rawURL, err)
	}
	base := path.Base(parsed.Path)
	if base == "." || base == "" || base == "/" {
		return "", fmt.Errorf("%w: infer archive name from %s", ErrMalformedURL, rawURL)
	}
	return base, nil
}
