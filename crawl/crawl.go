// Package crawl provides the breadth-first site crawler that collects the
// bot's background context and discovers document links.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strings"

	"admitbot"

	"github.com/PuerkitoBio/goquery"
	"github.com/cespare/xxhash/v2"
)

// Frontier sizing for Bloom filter deduplication.
const (
	frontierExpectedURLs      = 10000
	frontierFalsePositiveRate = 0.01
)

// Ensure Crawler implements admitbot.Crawler at compile time.
var _ admitbot.Crawler = (*Crawler)(nil)

// Crawler walks sites breadth-first from seed URLs, aggregating page text
// and collecting PDF links. The crawl stays within the seeds' registered
// hostnames, including subdomains.
type Crawler struct {
	Fetcher  admitbot.Fetcher
	Limiter  admitbot.DomainLimiter
	Logger   *slog.Logger
	MaxPages int
	MaxChars int
}

// Crawl walks the sites rooted at seeds. Per-URL failures are logged and
// skipped; the crawl stops at MaxPages visited or queue exhaustion.
func (c *Crawler) Crawl(ctx context.Context, seeds []string) (*admitbot.CrawlResult, error) {
	if len(seeds) == 0 {
		return nil, admitbot.Errorf(admitbot.EINVALID, "at least one seed URL required")
	}

	roots := make(map[string]struct{}, len(seeds))
	for _, seed := range seeds {
		u, err := url.Parse(seed)
		if err != nil || u.Host == "" {
			return nil, admitbot.Errorf(admitbot.EINVALID, "invalid seed URL %q", seed)
		}
		roots[u.Host] = struct{}{}
	}

	maxPages := c.MaxPages
	if maxPages <= 0 {
		maxPages = 400
	}

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	for _, seed := range seeds {
		frontier.Push(seed)
	}

	var texts []string
	pdfs := make(map[string]struct{})
	visited := 0

	for visited < maxPages {
		pageURL, ok := frontier.Pop()
		if !ok {
			break
		}
		if ctx.Err() != nil {
			break
		}
		visited++

		if c.Limiter != nil {
			parsed, err := url.Parse(pageURL)
			if err != nil {
				continue
			}
			if err := c.Limiter.Wait(ctx, parsed.Host); err != nil {
				break
			}
		}

		html, err := c.Fetcher.Fetch(ctx, pageURL)
		if err != nil {
			if c.Logger != nil {
				c.Logger.Warn("skipping page", "url", pageURL, "error", err)
			}
			continue
		}

		page, err := extractPage(html, pageURL)
		if err != nil {
			if c.Logger != nil {
				c.Logger.Warn("skipping page", "url", pageURL, "error", err)
			}
			continue
		}

		if page.text != "" {
			texts = append(texts, fmt.Sprintf("[%s]\n%s", pageURL, page.text))
		}

		for _, link := range page.pdfLinks {
			if _, seen := pdfs[link]; !seen {
				pdfs[link] = struct{}{}
				if c.Logger != nil {
					c.Logger.Info("discovered document", "url", link)
				}
			}
		}

		for _, link := range page.pageLinks {
			if sameRegisteredHost(link, roots) {
				frontier.Push(link)
			}
		}
	}

	aggregated := strings.Join(texts, "\n\n")
	if c.MaxChars > 0 && len(aggregated) > c.MaxChars {
		aggregated = aggregated[:c.MaxChars]
	}

	documentURLs := make([]string, 0, len(pdfs))
	for link := range pdfs {
		documentURLs = append(documentURLs, link)
	}
	sort.Strings(documentURLs)

	return &admitbot.CrawlResult{
		Text:         aggregated,
		DocumentURLs: documentURLs,
		Pages:        visited,
		ContentHash:  fmt.Sprintf("%x", xxhash.Sum64String(aggregated)),
	}, nil
}

// page holds what a single visited page contributes to the crawl.
type page struct {
	text      string
	pageLinks []string
	pdfLinks  []string
}

// extractPage strips script/style/noscript content, collapses the remaining
// text to non-empty lines, and resolves the page's links against its URL.
func extractPage(html string, pageURL string) (*page, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	doc.Find("script, style, noscript").Remove()

	var lines []string
	for _, line := range strings.Split(doc.Text(), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}

	p := &page{text: strings.Join(lines, "\n")}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		resolved := resolveLink(base, href)
		if resolved == "" {
			return
		}
		if isPDFLink(resolved) {
			p.pdfLinks = append(p.pdfLinks, resolved)
			return
		}
		p.pageLinks = append(p.pageLinks, resolved)
	})

	return p, nil
}

// resolveLink resolves href against base, strips the fragment, and drops
// anything that is not http(s).
func resolveLink(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	resolved.Fragment = ""
	return resolved.String()
}

// isPDFLink reports whether the URL's path, with the query stripped, ends
// in ".pdf".
func isPDFLink(link string) bool {
	path := link
	if idx := strings.Index(path, "?"); idx != -1 {
		path = path[:idx]
	}
	return strings.HasSuffix(strings.ToLower(path), ".pdf")
}

// sameRegisteredHost reports whether the link's host is one of the seed
// hosts or a subdomain of one.
func sameRegisteredHost(link string, roots map[string]struct{}) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	host := u.Host
	for root := range roots {
		if host == root || strings.HasSuffix(host, "."+root) {
			return true
		}
	}
	return false
}
