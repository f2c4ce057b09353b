package slog

import (
	"context"
	"log/slog"
	"time"

	"admitbot"
)

// Ensure Crawler implements admitbot.Crawler at compile time.
var _ admitbot.Crawler = (*Crawler)(nil)

// Crawler wraps an admitbot.Crawler with summary logging per crawl.
type Crawler struct {
	next   admitbot.Crawler
	logger *slog.Logger
}

// NewCrawler creates a logging Crawler around next.
func NewCrawler(next admitbot.Crawler, logger *slog.Logger) *Crawler {
	return &Crawler{next: next, logger: logger}
}

// Crawl delegates to the wrapped crawler and logs the outcome.
func (c *Crawler) Crawl(ctx context.Context, seeds []string) (*admitbot.CrawlResult, error) {
	begin := time.Now()
	result, err := c.next.Crawl(ctx, seeds)
	if err != nil {
		c.logger.Error("crawl",
			"seeds", len(seeds),
			"duration", time.Since(begin),
			"error", err,
		)
		return result, err
	}
	c.logger.Info("crawl",
		"seeds", len(seeds),
		"pages", result.Pages,
		"documents", len(result.DocumentURLs),
		"chars", len(result.Text),
		"hash", result.ContentHash,
		"duration", time.Since(begin),
	)
	return result, nil
}
