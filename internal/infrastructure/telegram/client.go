package telegram

import (
	"context"
	"fmt"
	"strconv"

	"gopkg.in/telebot.v3"

	"medreminder/internal/domain/entity"
	appErrors "medreminder/internal/pkg/errors"
)

// Messenger is the part of telebot.Bot the notifier uses.
type Messenger interface {
	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
}

// Client sends reminders to a Telegram chat. The endpoint address is the chat id.
type Client struct {
	bot Messenger
}

// NewClient builds an offline bot: it only sends, it never polls for updates.
func NewClient(token string) (*Client, error) {
	bot, err := telebot.NewBot(telebot.Settings{
		Token:   token,
		Offline: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &Client{bot: bot}, nil
}

// NewClientWith wraps an existing messenger.
func NewClientWith(m Messenger) *Client {
	return &Client{bot: m}
}

// ParseChatID validates a Telegram chat id.
func ParseChatID(address string) (int64, error) {
	id, err := strconv.ParseInt(address, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: telegram chat id %q must be numeric", appErrors.ErrValidation, address)
	}
	return id, nil
}

// Notify sends the reminder text to the chat.
func (c *Client) Notify(ctx context.Context, endpoint entity.Endpoint, n entity.Notification) error {
	chatID, err := ParseChatID(endpoint.Address)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	text := fmt.Sprintf("%s\n%s", n.Title(), n.Body())
	if _, err := c.bot.Send(&telebot.User{ID: chatID}, text, &telebot.SendOptions{ParseMode: telebot.ModeDefault}); err != nil {
		return fmt.Errorf("telegram send to %d: %w", chatID, err)
	}
	return nil
}
