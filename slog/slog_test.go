package slog_test

import (
	"bytes"
	"context"
	stdslog "log/slog"
	"testing"

	"admitbot"
	"admitbot/mock"
	admitslog "admitbot/slog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelector_LogsSelectionOutcome(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := stdslog.New(stdslog.NewTextHandler(&buf, nil))

	next := &mock.Selector{
		SelectDocumentsFn: func(context.Context, string, []string, int, string) ([]string, error) {
			return []string{"fees.pdf"}, nil
		},
	}

	s := admitslog.NewSelector(next, logger)
	selected, err := s.SelectDocuments(context.Background(), "fees?", []string{"a.pdf", "fees.pdf"}, 4, "")

	require.NoError(t, err)
	assert.Equal(t, []string{"fees.pdf"}, selected)
	assert.Contains(t, buf.String(), "document selection")
	assert.Contains(t, buf.String(), "selected=1")
	assert.Contains(t, buf.String(), "catalog=2")
}

func TestSelector_LogsAndPropagatesError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := stdslog.New(stdslog.NewTextHandler(&buf, nil))

	next := &mock.Selector{
		SelectDocumentsFn: func(context.Context, string, []string, int, string) ([]string, error) {
			return nil, admitbot.Errorf(admitbot.EUNAVAILABLE, "gemini down")
		},
	}

	s := admitslog.NewSelector(next, logger)
	_, err := s.SelectDocuments(context.Background(), "fees?", []string{"a.pdf"}, 4, "")

	require.Error(t, err)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "gemini down")
}

func TestCrawler_LogsCrawlSummary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := stdslog.New(stdslog.NewTextHandler(&buf, nil))

	next := &mock.Crawler{
		CrawlFn: func(context.Context, []string) (*admitbot.CrawlResult, error) {
			return &admitbot.CrawlResult{
				Text:         "site text",
				DocumentURLs: []string{"https://uni.example/fees.pdf"},
				Pages:        7,
			}, nil
		},
	}

	c := admitslog.NewCrawler(next, logger)
	result, err := c.Crawl(context.Background(), []string{"https://uni.example/"})

	require.NoError(t, err)
	assert.Equal(t, 7, result.Pages)
	assert.Contains(t, buf.String(), "pages=7")
	assert.Contains(t, buf.String(), "documents=1")
}
