// Package mem provides in-memory implementations of admitbot state:
// per-conversation sessions and the approval token registry. Nothing here
// survives a process restart; the bot is designed to be re-primed by a
// fresh crawl.
package mem

import (
	"sync"

	"admitbot"
)

// Ensure SessionStore implements admitbot.SessionStore at compile time.
var _ admitbot.SessionStore = (*SessionStore)(nil)

// SessionStore tracks the last question per conversation and the shared
// site context. It is safe for concurrent use.
type SessionStore struct {
	mu          sync.RWMutex
	questions   map[int64]string
	siteContext string
}

// NewSessionStore creates an empty SessionStore.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		questions: make(map[int64]string),
	}
}

// SetQuestion stores the most recent question for a conversation.
func (s *SessionStore) SetQuestion(chatID int64, question string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions[chatID] = question
}

// Question returns the current stored question for a conversation.
func (s *SessionStore) Question(chatID int64) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.questions[chatID]
	if !ok || q == "" {
		return "", false
	}
	return q, true
}

// SetSiteContext replaces the process-wide crawled site text.
func (s *SessionStore) SetSiteContext(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.siteContext = text
}

// SiteContext returns the current crawled site text.
func (s *SessionStore) SiteContext() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.siteContext
}

// Clear empties all questions and the site context.
func (s *SessionStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions = make(map[int64]string)
	s.siteContext = ""
}
