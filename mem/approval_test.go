package mem_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"admitbot"
	"admitbot/mem"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPDF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fees.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0644))
	return path
}

func TestApprovalRegistry_RegisterThenResolve(t *testing.T) {
	t.Parallel()

	path := testPDF(t)
	r := mem.NewApprovalRegistry()

	token := r.Register(path)

	resolved, err := r.Resolve(token)
	require.NoError(t, err)
	assert.Equal(t, path, resolved)
}

func TestApprovalRegistry_TokensAreNotReused(t *testing.T) {
	t.Parallel()

	path := testPDF(t)
	r := mem.NewApprovalRegistry()

	assert.NotEqual(t, r.Register(path), r.Register(path))
}

func TestApprovalRegistry_Resolve_UnknownToken(t *testing.T) {
	t.Parallel()

	r := mem.NewApprovalRegistry()

	_, err := r.Resolve("nope")
	assert.Equal(t, admitbot.ENOTFOUND, admitbot.ErrorCode(err))
}

func TestApprovalRegistry_Resolve_AfterClear(t *testing.T) {
	t.Parallel()

	path := testPDF(t)
	r := mem.NewApprovalRegistry()
	token := r.Register(path)

	r.Clear()

	_, err := r.Resolve(token)
	assert.Equal(t, admitbot.ENOTFOUND, admitbot.ErrorCode(err))
}

func TestApprovalRegistry_Resolve_RechecksFileExistence(t *testing.T) {
	t.Parallel()

	path := testPDF(t)
	r := mem.NewApprovalRegistry()
	token := r.Register(path)

	require.NoError(t, os.Remove(path))

	_, err := r.Resolve(token)
	assert.Equal(t, admitbot.ENOTFOUND, admitbot.ErrorCode(err))
}

func TestApprovalRegistry_ExpiredTokensAreNotResolvable(t *testing.T) {
	t.Parallel()

	path := testPDF(t)
	now := time.Now()
	r := mem.NewApprovalRegistry(
		mem.WithTTL(time.Minute),
		mem.WithClock(func() time.Time { return now }),
	)
	token := r.Register(path)

	now = now.Add(2 * time.Minute)

	_, err := r.Resolve(token)
	assert.Equal(t, admitbot.ENOTFOUND, admitbot.ErrorCode(err))
}

func TestApprovalRegistry_Register_EvictsExpiredEntries(t *testing.T) {
	t.Parallel()

	path := testPDF(t)
	now := time.Now()
	r := mem.NewApprovalRegistry(
		mem.WithTTL(time.Minute),
		mem.WithClock(func() time.Time { return now }),
	)
	stale := r.Register(path)

	now = now.Add(2 * time.Minute)
	fresh := r.Register(path)

	_, err := r.Resolve(stale)
	assert.Equal(t, admitbot.ENOTFOUND, admitbot.ErrorCode(err))

	resolved, err := r.Resolve(fresh)
	assert.NoError(t, err)
	assert.Equal(t, path, resolved)
}
