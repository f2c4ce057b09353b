package mock

import (
	"context"
	"sync"

	"admitbot"
)

var _ admitbot.Channel = (*Channel)(nil)

// Channel is a mock implementation of admitbot.Channel that records
// everything sent through it. The zero value is usable; all sends succeed
// unless an Fn field is set.
type Channel struct {
	mu sync.Mutex

	SendTextFn    func(ctx context.Context, chatID int64, text string) error
	SendButtonsFn func(ctx context.Context, chatID int64, text string, buttons []admitbot.Button) error
	AckCallbackFn func(ctx context.Context, callbackID string, text string) error

	Texts     []SentText
	Keyboards []SentButtons
	Acks      []SentAck
}

// SentText records one SendText call.
type SentText struct {
	ChatID int64
	Text   string
}

// SentButtons records one SendButtons call.
type SentButtons struct {
	ChatID  int64
	Text    string
	Buttons []admitbot.Button
}

// SentAck records one AckCallback call.
type SentAck struct {
	CallbackID string
	Text       string
}

func (c *Channel) SendText(ctx context.Context, chatID int64, text string) error {
	c.mu.Lock()
	c.Texts = append(c.Texts, SentText{ChatID: chatID, Text: text})
	c.mu.Unlock()
	if c.SendTextFn != nil {
		return c.SendTextFn(ctx, chatID, text)
	}
	return nil
}

func (c *Channel) SendButtons(ctx context.Context, chatID int64, text string, buttons []admitbot.Button) error {
	c.mu.Lock()
	c.Keyboards = append(c.Keyboards, SentButtons{ChatID: chatID, Text: text, Buttons: buttons})
	c.mu.Unlock()
	if c.SendButtonsFn != nil {
		return c.SendButtonsFn(ctx, chatID, text, buttons)
	}
	return nil
}

func (c *Channel) AckCallback(ctx context.Context, callbackID string, text string) error {
	c.mu.Lock()
	c.Acks = append(c.Acks, SentAck{CallbackID: callbackID, Text: text})
	c.mu.Unlock()
	if c.AckCallbackFn != nil {
		return c.AckCallbackFn(ctx, callbackID, text)
	}
	return nil
}

// LastText returns the most recent SendText call.
func (c *Channel) LastText() (SentText, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.Texts) == 0 {
		return SentText{}, false
	}
	return c.Texts[len(c.Texts)-1], true
}

// LastButtons returns the most recent SendButtons call.
func (c *Channel) LastButtons() (SentButtons, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.Keyboards) == 0 {
		return SentButtons{}, false
	}
	return c.Keyboards[len(c.Keyboards)-1], true
}
