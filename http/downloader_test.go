package http_test

import (
	"context"
	"io"
	"log/slog"
	gohttp "net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	admithttp "admitbot/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDownloader_Fetch_SavesFile(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
		_, _ = w.Write([]byte("%PDF-1.4 content"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	d := admithttp.NewDownloader(discardLogger())

	path, err := d.Fetch(context.Background(), srv.URL+"/fees.pdf", dir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "fees.pdf"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 content", string(data))
}

func TestDownloader_Fetch_SkipsExistingNonEmptyFile(t *testing.T) {
	t.Parallel()

	var hits atomic.Int64
	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("fresh"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fees.pdf"), []byte("cached"), 0644))

	d := admithttp.NewDownloader(discardLogger())
	path, err := d.Fetch(context.Background(), srv.URL+"/fees.pdf", dir)

	require.NoError(t, err)
	assert.Zero(t, hits.Load())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "cached", string(data))
}

func TestDownloader_FetchAll_SkipsFailures(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
		if r.URL.Path == "/bad.pdf" {
			w.WriteHeader(gohttp.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("%PDF-1.4"))
	}))
	defer srv.Close()

	d := admithttp.NewDownloader(discardLogger())
	saved, err := d.FetchAll(context.Background(),
		[]string{srv.URL + "/good.pdf", srv.URL + "/bad.pdf"}, t.TempDir())

	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "good.pdf", filepath.Base(saved[0]))
}

func TestDeriveName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want string
	}{
		{"https://example.com/docs/fees.pdf", "fees.pdf"},
		{"https://example.com/docs/fees.pdf?version=2", "fees.pdf"},
		{"https://example.com/", "document.pdf"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, admithttp.DeriveName(tt.url), tt.url)
	}
}
