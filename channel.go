package admitbot

import "context"

// Button is one selectable option in an approval affordance. Data is the
// opaque payload delivered back with the button-press event.
type Button struct {
	Label string
	Data  string
}

// Channel is the outbound side of an interactive messaging channel.
type Channel interface {
	// SendText delivers a plain text reply to a conversation.
	SendText(ctx context.Context, chatID int64, text string) error

	// SendButtons delivers a message with one button per option.
	SendButtons(ctx context.Context, chatID int64, text string, buttons []Button) error

	// AckCallback acknowledges a button press with a short notice.
	AckCallback(ctx context.Context, callbackID string, text string) error
}

// Handler is the inbound side of an interactive messaging channel: the
// transport adapter delivers each event to exactly one of these methods.
// Implementations must tolerate concurrent calls for different
// conversations.
type Handler interface {
	// HandleCommand processes a slash command without its arguments.
	HandleCommand(ctx context.Context, chatID int64, command string)

	// HandleMessage processes an inbound question.
	HandleMessage(ctx context.Context, chatID int64, text string)

	// HandleCallback processes a button press carrying an opaque payload.
	HandleCallback(ctx context.Context, chatID int64, callbackID string, payload string)
}
