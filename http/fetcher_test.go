package http_test

import (
	"context"
	gohttp "net/http"
	"net/http/httptest"
	"testing"

	"admitbot"
	admithttp "admitbot/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch_ReturnsBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body>hello</body></html>"))
	}))
	defer srv.Close()

	html, err := admithttp.NewFetcher().Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Contains(t, html, "hello")
}

func TestFetcher_Fetch_SendsUserAgent(t *testing.T) {
	t.Parallel()

	var gotUA string
	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
	}))
	defer srv.Close()

	f := admithttp.NewFetcher(admithttp.WithUserAgent("admissions-crawler"))
	_, err := f.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, "admissions-crawler", gotUA)
}

func TestFetcher_Fetch_NonHTMLIsInvalid(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
		w.Header().Set("Content-Type", "application/pdf")
	}))
	defer srv.Close()

	_, err := admithttp.NewFetcher().Fetch(context.Background(), srv.URL)

	require.Error(t, err)
	assert.Equal(t, admitbot.EINVALID, admitbot.ErrorCode(err))
}

func TestFetcher_Fetch_Non200IsUnavailable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
		w.WriteHeader(gohttp.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := admithttp.NewFetcher().Fetch(context.Background(), srv.URL)

	require.Error(t, err)
	assert.Equal(t, admitbot.EUNAVAILABLE, admitbot.ErrorCode(err))
}
