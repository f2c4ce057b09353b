package crawl_test

import (
	"testing"

	"admitbot/crawl"

	"github.com/stretchr/testify/assert"
)

func TestFrontier_PushPop_FIFO(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(100, 0.01)
	assert.True(t, f.Push("https://example.com/a"))
	assert.True(t, f.Push("https://example.com/b"))

	url, ok := f.Pop()
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/a", url)

	url, ok = f.Pop()
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/b", url)

	_, ok = f.Pop()
	assert.False(t, ok)
}

func TestFrontier_Push_DeduplicatesSeenURLs(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(100, 0.01)
	assert.True(t, f.Push("https://example.com/a"))
	assert.False(t, f.Push("https://example.com/a"))
	assert.Equal(t, 1, f.Len())
}

func TestFrontier_Push_StripsFragments(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(100, 0.01)
	assert.True(t, f.Push("https://example.com/a#intro"))
	assert.False(t, f.Push("https://example.com/a#fees"))

	url, ok := f.Pop()
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/a", url)
}
