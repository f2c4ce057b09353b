package admitbot

// SessionStore tracks per-conversation state and the shared site context.
//
// Implementations must be safe for concurrent use: inbound events for
// different conversations are handled concurrently and all of them read and
// write this state.
type SessionStore interface {
	// SetQuestion stores the most recent question for a conversation,
	// overwriting any previous one.
	SetQuestion(chatID int64, question string)

	// Question returns the current stored question for a conversation.
	// The question is read, not consumed; ok is false if none is stored.
	Question(chatID int64) (question string, ok bool)

	// SetSiteContext replaces the process-wide crawled site text.
	SetSiteContext(text string)

	// SiteContext returns the current crawled site text, or "" before the
	// first crawl.
	SiteContext() string

	// Clear empties all per-conversation questions and the site context.
	Clear()
}
