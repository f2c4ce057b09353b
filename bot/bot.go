// Package bot contains the per-message control flow: it wires the catalog,
// selector, composer, session state, and approval registry together in
// response to inbound messages and button presses. It is transport-agnostic;
// the telegram package delivers events to it.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync/atomic"

	"admitbot"
)

// Button payloads. Approval tokens travel prefixed with tokenPrefix; the
// "answer without a file" option is the reserved sentinel, never a token.
const (
	tokenPrefix    = "use:"
	noFileSentinel = "nofile"
)

// User-visible replies.
const (
	helpMessage = "Hi! I answer questions about the university's degree programs.\n\n" +
		"Commands:\n" +
		"/crawl - crawl the program sites, collect text and PDFs (stored locally)\n" +
		"/clear - clear the cache\n\n" +
		"After that just ask a question. When documents look relevant, I will propose them for approval first."
	clearedMessage    = "Cache cleared."
	crawlStartMessage = "Starting the site crawl. This can take a few minutes."
	crawlBusyMessage  = "A crawl is already running. Try again once it finishes."
	chooseMessage     = "I found documents that may be relevant. Choose one to use for the answer, " +
		"or press \"Answer without a file\" to answer from the site only."
	noQuestionMessage  = "No pending question found. Please ask again."
	staleTokenMessage  = "File not found."
	analyzingMessage   = "Analyzing the selected document..."
	noFileAckMessage   = "Answering without a file."
	emptyAnswerMessage = "Empty answer."
)

// DefaultMaxCandidates bounds both the candidate list and the number of
// approval tokens minted per affordance.
const DefaultMaxCandidates = 4

// Ensure Bot implements admitbot.Handler at compile time.
var _ admitbot.Handler = (*Bot)(nil)

// Config holds the orchestrator's settings.
type Config struct {
	// SeedURLs are the crawl starting points.
	SeedURLs []string

	// DownloadDir is where discovered documents are stored; it is also the
	// catalog root.
	DownloadDir string

	// MaxCandidates is K: the most document candidates shown per question.
	// Defaults to DefaultMaxCandidates.
	MaxCandidates int
}

// Bot is the orchestrator. All fields except Tokens and Logger are required.
type Bot struct {
	Catalog    admitbot.Catalog
	Selector   admitbot.Selector
	Composer   admitbot.Composer
	Sessions   admitbot.SessionStore
	Approvals  admitbot.ApprovalRegistry
	Crawler    admitbot.Crawler
	Downloader admitbot.Downloader
	Channel    admitbot.Channel
	Tokens     admitbot.TokenCounter
	Logger     *slog.Logger

	Config Config

	// crawling guards against overlapping crawls: a second request is
	// refused rather than racing the first on the shared site context.
	crawling atomic.Bool
}

// HandleCommand processes slash commands. Unknown commands get the help text.
func (b *Bot) HandleCommand(ctx context.Context, chatID int64, command string) {
	switch command {
	case "crawl":
		// Off the hot path: a multi-minute crawl must not block message
		// handling, and must outlive this event's context.
		go b.RunCrawl(context.WithoutCancel(ctx), chatID)
	case "clear":
		b.Sessions.Clear()
		b.Approvals.Clear()
		b.send(ctx, chatID, clearedMessage)
	default:
		b.send(ctx, chatID, helpMessage)
	}
}

// HandleMessage processes an inbound question: it stores the question,
// answers directly when no documents are available, and otherwise proposes
// candidate documents for approval.
func (b *Bot) HandleMessage(ctx context.Context, chatID int64, text string) {
	question := strings.TrimSpace(text)
	if question == "" {
		return
	}
	b.Sessions.SetQuestion(chatID, question)

	docs, err := b.Catalog.List(ctx)
	if err != nil {
		b.logger().Error("catalog scan failed", "error", err)
		b.send(ctx, chatID, "Could not read the document store: "+admitbot.ErrorMessage(err))
		return
	}

	if len(docs) == 0 {
		b.answerFromContext(ctx, chatID, question)
		return
	}

	names := admitbot.DisplayNames(docs)
	candidates, err := b.Selector.SelectDocuments(ctx, question, names, b.maxCandidates(), b.Sessions.SiteContext())
	if err != nil {
		// Fail soft: selection is advisory, so fall back to the first K
		// catalog entries in original order.
		b.logger().Warn("document selection failed", "error", err)
		candidates = names[:min(b.maxCandidates(), len(names))]
	}

	buttons := b.approvalButtons(candidates, docs)
	if err := b.Channel.SendButtons(ctx, chatID, chooseMessage, buttons); err != nil {
		b.logger().Error("send approval affordance failed", "error", err)
	}
}

// HandleCallback processes a button press. The answer is always composed
// against the conversation's current stored question, not one captured when
// the affordance was rendered.
func (b *Bot) HandleCallback(ctx context.Context, chatID int64, callbackID string, payload string) {
	question, ok := b.Sessions.Question(chatID)
	if !ok {
		b.ack(ctx, callbackID, noQuestionMessage)
		return
	}

	switch {
	case payload == noFileSentinel:
		b.ack(ctx, callbackID, noFileAckMessage)
		b.answerFromContext(ctx, chatID, question)

	case strings.HasPrefix(payload, tokenPrefix):
		token := strings.TrimPrefix(payload, tokenPrefix)
		path, err := b.Approvals.Resolve(token)
		if err != nil {
			b.ack(ctx, callbackID, staleTokenMessage)
			return
		}
		b.ack(ctx, callbackID, analyzingMessage)
		b.answerFromDocument(ctx, chatID, question, path)

	default:
		b.logger().Warn("unknown callback payload", "payload", payload)
	}
}

// RunCrawl executes the crawl-and-download flow synchronously, reporting
// completion or failure back to the originating conversation. Only one crawl
// runs at a time; concurrent requests are refused.
func (b *Bot) RunCrawl(ctx context.Context, chatID int64) {
	if !b.crawling.CompareAndSwap(false, true) {
		b.send(ctx, chatID, crawlBusyMessage)
		return
	}
	defer b.crawling.Store(false)

	b.send(ctx, chatID, crawlStartMessage)

	result, err := b.Crawler.Crawl(ctx, b.Config.SeedURLs)
	if err != nil {
		b.logger().Error("crawl failed", "error", err)
		b.send(ctx, chatID, "Crawl failed: "+admitbot.ErrorMessage(err))
		return
	}
	b.Sessions.SetSiteContext(result.Text)

	paths, err := b.Downloader.FetchAll(ctx, result.DocumentURLs, b.Config.DownloadDir)
	if err != nil {
		b.logger().Error("document download failed", "error", err)
		b.send(ctx, chatID, "Document download failed: "+admitbot.ErrorMessage(err))
		return
	}

	b.send(ctx, chatID, b.crawlReport(ctx, result, len(paths)))
}

// crawlReport summarizes a finished crawl for the user.
func (b *Bot) crawlReport(ctx context.Context, result *admitbot.CrawlResult, downloaded int) string {
	var sb strings.Builder
	sb.WriteString("Done.\n")
	fmt.Fprintf(&sb, "- Site text: %d chars", len(result.Text))
	if b.Tokens != nil {
		if tokens, err := b.Tokens.CountTokens(ctx, result.Text); err == nil {
			fmt.Fprintf(&sb, " (~%d tokens)", tokens)
		}
	}
	fmt.Fprintf(&sb, "\n- PDFs found: %d, downloaded: %d\n\n", len(result.DocumentURLs), downloaded)
	sb.WriteString("Now ask a question and I will propose matching documents for approval.")
	return sb.String()
}

// approvalButtons builds the approval affordance: one button per distinct
// matched candidate, falling back to the first K catalog entries when
// nothing matched, plus the reserved "no file" option. Tokens are minted
// here, one per document button.
func (b *Bot) approvalButtons(candidates []string, docs []admitbot.Document) []admitbot.Button {
	k := b.maxCandidates()
	var buttons []admitbot.Button
	seen := make(map[string]struct{})

	for _, name := range candidates {
		if len(buttons) == k {
			break
		}
		lower := strings.ToLower(name)
		if _, dup := seen[lower]; dup {
			continue
		}
		doc, ok := matchByName(docs, name)
		if !ok {
			continue
		}
		seen[lower] = struct{}{}
		buttons = append(buttons, b.documentButton(doc))
	}

	if len(buttons) == 0 {
		for _, doc := range docs[:min(k, len(docs))] {
			buttons = append(buttons, b.documentButton(doc))
		}
	}

	return append(buttons, admitbot.Button{Label: "Answer without a file", Data: noFileSentinel})
}

func (b *Bot) documentButton(doc admitbot.Document) admitbot.Button {
	token := b.Approvals.Register(doc.Path)
	return admitbot.Button{
		Label: "Use: " + doc.DisplayName,
		Data:  tokenPrefix + token,
	}
}

// matchByName finds the first catalog entry whose display name matches
// case-insensitively. Name collisions resolve to the first match.
func matchByName(docs []admitbot.Document, name string) (admitbot.Document, bool) {
	for _, doc := range docs {
		if strings.EqualFold(doc.DisplayName, name) {
			return doc, true
		}
	}
	return admitbot.Document{}, false
}

func (b *Bot) answerFromContext(ctx context.Context, chatID int64, question string) {
	answer, err := b.Composer.AnswerFromContext(ctx, question, b.Sessions.SiteContext())
	if err != nil {
		b.logger().Error("context answer failed", "error", err)
		b.send(ctx, chatID, "Answer failed: "+admitbot.ErrorMessage(err))
		return
	}
	if answer == "" {
		answer = emptyAnswerMessage
	}
	b.send(ctx, chatID, answer)
}

func (b *Bot) answerFromDocument(ctx context.Context, chatID int64, question, path string) {
	answer, err := b.Composer.AnswerFromDocument(ctx, question, path, b.Sessions.SiteContext())
	if err != nil {
		b.logger().Error("document answer failed", "error", err, "path", path)
		b.send(ctx, chatID, "Document analysis failed: "+admitbot.ErrorMessage(err))
		return
	}
	if answer == "" {
		answer = emptyAnswerMessage
	}
	b.send(ctx, chatID, "File: "+filepath.Base(path)+"\n\n"+answer)
}

func (b *Bot) send(ctx context.Context, chatID int64, text string) {
	if err := b.Channel.SendText(ctx, chatID, text); err != nil {
		b.logger().Error("send failed", "chat", chatID, "error", err)
	}
}

func (b *Bot) ack(ctx context.Context, callbackID, text string) {
	if err := b.Channel.AckCallback(ctx, callbackID, text); err != nil {
		b.logger().Error("callback ack failed", "error", err)
	}
}

func (b *Bot) maxCandidates() int {
	if b.Config.MaxCandidates > 0 {
		return b.Config.MaxCandidates
	}
	return DefaultMaxCandidates
}

func (b *Bot) logger() *slog.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return slog.Default()
}
