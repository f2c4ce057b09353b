package http

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"admitbot"

	"golang.org/x/sync/errgroup"
)

// DefaultDownloadTimeout allows for large documents on slow hosts.
const DefaultDownloadTimeout = 2 * time.Minute

// defaultDownloadConcurrency bounds simultaneous downloads per FetchAll call.
const defaultDownloadConcurrency = 4

// Ensure Downloader implements admitbot.Downloader at compile time.
var _ admitbot.Downloader = (*Downloader)(nil)

// Downloader saves remote documents to a local directory. Downloads are
// idempotent: a non-empty file of the derived name is kept as-is.
type Downloader struct {
	client      *http.Client
	logger      *slog.Logger
	concurrency int
}

// DownloaderOption configures a Downloader.
type DownloaderOption func(*Downloader)

// WithDownloadConcurrency bounds simultaneous downloads in FetchAll.
func WithDownloadConcurrency(n int) DownloaderOption {
	return func(d *Downloader) {
		d.concurrency = n
	}
}

// NewDownloader creates a new Downloader logging through logger.
func NewDownloader(logger *slog.Logger, opts ...DownloaderOption) *Downloader {
	d := &Downloader{
		client:      &http.Client{Timeout: DefaultDownloadTimeout},
		logger:      logger,
		concurrency: defaultDownloadConcurrency,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Fetch downloads url into destDir and returns the local path.
func (d *Downloader) Fetch(ctx context.Context, url string, destDir string) (string, error) {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(destDir, DeriveName(url))

	if info, err := os.Stat(path); err == nil && info.Size() > 0 {
		return path, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return "", admitbot.Errorf(admitbot.EUNAVAILABLE, "download %s: %s", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", admitbot.Errorf(admitbot.EUNAVAILABLE, "download %s: HTTP %d", url, resp.StatusCode)
	}

	tmp, err := os.CreateTemp(destDir, ".download-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.ReadFrom(resp.Body); err != nil {
		tmp.Close()
		return "", admitbot.Errorf(admitbot.EUNAVAILABLE, "download %s: %s", url, err)
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", err
	}

	d.logger.Info("saved document", "url", url, "path", path)
	return path, nil
}

// FetchAll downloads urls into destDir concurrently. Per-URL failures are
// logged and skipped; the rest of the batch proceeds.
func (d *Downloader) FetchAll(ctx context.Context, urls []string, destDir string) ([]string, error) {
	var mu sync.Mutex
	var saved []string

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.concurrency)

	for _, url := range urls {
		g.Go(func() error {
			path, err := d.Fetch(gctx, url, destDir)
			if err != nil {
				d.logger.Warn("download failed", "url", url, "error", err)
				return nil
			}
			mu.Lock()
			saved = append(saved, path)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return saved, err
	}
	return saved, nil
}

// DeriveName derives a local file name from the last URL segment, with the
// query string stripped. Falls back to "document.pdf" for bare URLs.
func DeriveName(url string) string {
	name := url
	if idx := strings.LastIndex(name, "/"); idx != -1 {
		name = name[idx+1:]
	}
	if idx := strings.Index(name, "?"); idx != -1 {
		name = name[:idx]
	}
	if name == "" {
		return "document.pdf"
	}
	return name
}
