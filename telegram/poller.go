package telegram

import (
	"context"
	"log/slog"

	"admitbot"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// pollTimeout is the long-poll timeout passed to getUpdates, in seconds.
const pollTimeout = 30

// Poller runs the long-polling loop and dispatches each update to the
// handler on its own goroutine, so one conversation's slow LLM call never
// blocks another's.
type Poller struct {
	api     *tgbotapi.BotAPI
	handler admitbot.Handler
	logger  *slog.Logger
}

// NewPoller creates a Poller delivering updates to handler.
func NewPoller(api *tgbotapi.BotAPI, handler admitbot.Handler, logger *slog.Logger) *Poller {
	return &Poller{api: api, handler: handler, logger: logger}
}

// Run polls for updates until ctx is canceled.
func (p *Poller) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = pollTimeout
	cfg.AllowedUpdates = []string{"message", "callback_query"}

	updates := p.api.GetUpdatesChan(cfg)
	p.logger.Info("telegram polling started", "bot", p.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			p.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			go p.dispatch(ctx, update)
		}
	}
}

// dispatch routes one update to the matching handler method.
func (p *Poller) dispatch(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		msg := update.Message
		if msg.IsCommand() {
			p.handler.HandleCommand(ctx, msg.Chat.ID, msg.Command())
			return
		}
		p.handler.HandleMessage(ctx, msg.Chat.ID, msg.Text)

	case update.CallbackQuery != nil:
		cq := update.CallbackQuery
		if cq.Message == nil {
			p.logger.Warn("callback without originating message", "callback", cq.ID)
			return
		}
		p.handler.HandleCallback(ctx, cq.Message.Chat.ID, cq.ID, cq.Data)
	}
}
