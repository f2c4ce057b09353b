package admitbot

import "context"

// CrawlResult holds the outcome of a site crawl.
type CrawlResult struct {
	// Text is the aggregated page text, truncated to the crawler's
	// configured character limit.
	Text string

	// DocumentURLs are the PDF links discovered during the crawl,
	// deduplicated and sorted.
	DocumentURLs []string

	// Pages is the number of pages visited.
	Pages int

	// ContentHash is a hash of Text, useful for spotting unchanged crawls.
	ContentHash string
}

// Crawler collects site text and document links breadth-first from seed URLs.
type Crawler interface {
	// Crawl walks the sites rooted at seeds, restricted to the seeds'
	// registered hostnames (including subdomains). It stops at the
	// configured page limit or queue exhaustion. Per-URL failures are
	// logged and skipped; only a failure to make any progress is an error.
	Crawl(ctx context.Context, seeds []string) (*CrawlResult, error)
}

// Fetcher retrieves HTML from URLs.
type Fetcher interface {
	// Fetch returns the page body for url. Non-HTML responses return
	// EINVALID so callers can skip them.
	Fetch(ctx context.Context, url string) (html string, err error)
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// Downloader saves remote documents to local storage.
type Downloader interface {
	// Fetch downloads url into destDir and returns the local path. It is
	// idempotent: a non-empty file of the derived name is not re-downloaded.
	Fetch(ctx context.Context, url string, destDir string) (localPath string, err error)

	// FetchAll downloads urls into destDir, skipping per-URL failures, and
	// returns the paths that were saved or already present.
	FetchAll(ctx context.Context, urls []string, destDir string) ([]string, error)
}
