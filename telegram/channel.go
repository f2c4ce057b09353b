// Package telegram adapts admitbot's interactive messaging channel to the
// Telegram Bot API via github.com/go-telegram-bot-api/telegram-bot-api.
package telegram

import (
	"context"

	"admitbot"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Ensure Channel implements admitbot.Channel at compile time.
var _ admitbot.Channel = (*Channel)(nil)

// Channel sends replies and approval affordances through a Telegram bot.
type Channel struct {
	api *tgbotapi.BotAPI
}

// NewChannel creates a Channel on top of an authorized bot API client.
func NewChannel(api *tgbotapi.BotAPI) *Channel {
	return &Channel{api: api}
}

// SendText delivers a plain text reply to a conversation.
func (c *Channel) SendText(_ context.Context, chatID int64, text string) error {
	_, err := c.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

// SendButtons delivers a message with an inline keyboard, one button per row.
func (c *Channel) SendButtons(_ context.Context, chatID int64, text string, buttons []admitbot.Button) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = BuildKeyboard(buttons)
	_, err := c.api.Send(msg)
	return err
}

// AckCallback acknowledges a button press with a short notice.
func (c *Channel) AckCallback(_ context.Context, callbackID string, text string) error {
	_, err := c.api.Request(tgbotapi.NewCallback(callbackID, text))
	return err
}

// BuildKeyboard converts buttons into an inline keyboard, one per row so
// long document names stay readable.
func BuildKeyboard(buttons []admitbot.Button) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, len(buttons))
	for i, b := range buttons {
		rows[i] = tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Data),
		)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
