package mem

import (
	"os"
	"sync"
	"time"

	"admitbot"

	"github.com/google/uuid"
)

// DefaultTTL is how long a minted token stays resolvable. Stale entries are
// evicted lazily on Register, which bounds growth without a background
// goroutine.
const DefaultTTL = time.Hour

// Ensure ApprovalRegistry implements admitbot.ApprovalRegistry at compile time.
var _ admitbot.ApprovalRegistry = (*ApprovalRegistry)(nil)

// ApprovalRegistry maps opaque tokens to document paths. It is safe for
// concurrent use.
type ApprovalRegistry struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

type entry struct {
	path     string
	mintedAt time.Time
}

// Option configures an ApprovalRegistry.
type Option func(*ApprovalRegistry)

// WithTTL sets the token lifetime. Defaults to DefaultTTL.
func WithTTL(d time.Duration) Option {
	return func(r *ApprovalRegistry) {
		r.ttl = d
	}
}

// WithClock sets the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(r *ApprovalRegistry) {
		r.now = now
	}
}

// NewApprovalRegistry creates an empty ApprovalRegistry.
func NewApprovalRegistry(opts ...Option) *ApprovalRegistry {
	r := &ApprovalRegistry{
		entries: make(map[string]entry),
		ttl:     DefaultTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register mints a fresh token for path and stores the mapping.
// The token is a UUIDv4 hex string (122 random bits).
func (r *ApprovalRegistry) Register(path string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for token, e := range r.entries {
		if now.Sub(e.mintedAt) > r.ttl {
			delete(r.entries, token)
		}
	}

	token := uuid.NewString()
	r.entries[token] = entry{path: path, mintedAt: now}
	return token
}

// Resolve returns the path registered for token. The path's existence is
// rechecked: a token outlives neither the TTL nor the file it points at.
func (r *ApprovalRegistry) Resolve(token string) (string, error) {
	r.mu.Lock()
	e, ok := r.entries[token]
	r.mu.Unlock()

	if !ok || r.now().Sub(e.mintedAt) > r.ttl {
		return "", admitbot.Errorf(admitbot.ENOTFOUND, "unknown or expired approval token")
	}
	if _, err := os.Stat(e.path); err != nil {
		return "", admitbot.Errorf(admitbot.ENOTFOUND, "document %q no longer exists", e.path)
	}
	return e.path, nil
}

// Clear empties the mapping.
func (r *ApprovalRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[string]entry)
}
