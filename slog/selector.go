// Package slog provides logging decorators for admitbot services,
// wrapping them with structured duration/outcome logging.
package slog

import (
	"context"
	"log/slog"
	"time"

	"admitbot"
)

// Ensure Selector implements admitbot.Selector at compile time.
var _ admitbot.Selector = (*Selector)(nil)

// Selector wraps an admitbot.Selector with debug logging of each selection.
type Selector struct {
	next   admitbot.Selector
	logger *slog.Logger
}

// NewSelector creates a logging Selector around next.
func NewSelector(next admitbot.Selector, logger *slog.Logger) *Selector {
	return &Selector{next: next, logger: logger}
}

// SelectDocuments delegates to the wrapped selector and logs the outcome.
func (s *Selector) SelectDocuments(ctx context.Context, question string, names []string, k int, siteContext string) ([]string, error) {
	begin := time.Now()
	selected, err := s.next.SelectDocuments(ctx, question, names, k, siteContext)
	if err != nil {
		s.logger.Warn("document selection",
			"catalog", len(names),
			"duration", time.Since(begin),
			"error", err,
		)
		return selected, err
	}
	s.logger.Info("document selection",
		"catalog", len(names),
		"selected", len(selected),
		"duration", time.Since(begin),
	)
	return selected, nil
}
