// Package mock provides function-field mock implementations of the
// admitbot domain interfaces for use in tests.
package mock

import (
	"context"

	"admitbot"
)

var _ admitbot.Catalog = (*Catalog)(nil)

// Catalog is a mock implementation of admitbot.Catalog.
type Catalog struct {
	ListFn func(ctx context.Context) ([]admitbot.Document, error)
}

func (c *Catalog) List(ctx context.Context) ([]admitbot.Document, error) {
	return c.ListFn(ctx)
}

var _ admitbot.Selector = (*Selector)(nil)

// Selector is a mock implementation of admitbot.Selector.
type Selector struct {
	SelectDocumentsFn func(ctx context.Context, question string, names []string, k int, siteContext string) ([]string, error)
}

func (s *Selector) SelectDocuments(ctx context.Context, question string, names []string, k int, siteContext string) ([]string, error) {
	return s.SelectDocumentsFn(ctx, question, names, k, siteContext)
}

var _ admitbot.Composer = (*Composer)(nil)

// Composer is a mock implementation of admitbot.Composer.
type Composer struct {
	AnswerFromContextFn  func(ctx context.Context, question string, siteContext string) (string, error)
	AnswerFromDocumentFn func(ctx context.Context, question string, path string, siteContext string) (string, error)
}

func (c *Composer) AnswerFromContext(ctx context.Context, question string, siteContext string) (string, error) {
	return c.AnswerFromContextFn(ctx, question, siteContext)
}

func (c *Composer) AnswerFromDocument(ctx context.Context, question string, path string, siteContext string) (string, error) {
	return c.AnswerFromDocumentFn(ctx, question, path, siteContext)
}

var _ admitbot.Crawler = (*Crawler)(nil)

// Crawler is a mock implementation of admitbot.Crawler.
type Crawler struct {
	CrawlFn func(ctx context.Context, seeds []string) (*admitbot.CrawlResult, error)
}

func (c *Crawler) Crawl(ctx context.Context, seeds []string) (*admitbot.CrawlResult, error) {
	return c.CrawlFn(ctx, seeds)
}

var _ admitbot.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of admitbot.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

var _ admitbot.Downloader = (*Downloader)(nil)

// Downloader is a mock implementation of admitbot.Downloader.
type Downloader struct {
	FetchFn    func(ctx context.Context, url string, destDir string) (string, error)
	FetchAllFn func(ctx context.Context, urls []string, destDir string) ([]string, error)
}

func (d *Downloader) Fetch(ctx context.Context, url string, destDir string) (string, error) {
	return d.FetchFn(ctx, url, destDir)
}

func (d *Downloader) FetchAll(ctx context.Context, urls []string, destDir string) ([]string, error) {
	return d.FetchAllFn(ctx, urls, destDir)
}

var _ admitbot.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of admitbot.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return tc.CountTokensFn(ctx, text)
}
