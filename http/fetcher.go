// Package http provides HTTP-based implementations of admitbot's network
// collaborators: the page fetcher used by the crawler and the document
// downloader.
package http

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"admitbot"
)

// DefaultFetchTimeout is the default timeout for page requests.
const DefaultFetchTimeout = 20 * time.Second

// DefaultUserAgent identifies the crawler to the sites it visits.
const DefaultUserAgent = "admitbot"

// Ensure Fetcher implements admitbot.Fetcher at compile time.
var _ admitbot.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs. Responses that are not HTML
// return EINVALID so the crawler can skip them.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with each request.
// Defaults to DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", admitbot.Errorf(admitbot.EUNAVAILABLE, "fetch %s: %s", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", admitbot.Errorf(admitbot.EUNAVAILABLE, "fetch %s: HTTP %d", url, resp.StatusCode)
	}

	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/html") {
		return "", admitbot.Errorf(admitbot.EINVALID, "fetch %s: not HTML (%s)", url, ct)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", admitbot.Errorf(admitbot.EUNAVAILABLE, "fetch %s: %s", url, err)
	}

	return string(body), nil
}
