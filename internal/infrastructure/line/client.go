package line

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/line/line-bot-sdk-go/v7/linebot"

	"medreminder/internal/domain/constant"
	"medreminder/internal/domain/entity"
	appErrors "medreminder/internal/pkg/errors"
	"medreminder/internal/pkg/logger"
)

// Client wraps the linebot.Client.
type Client struct {
	*linebot.Client
	snoozeMinutes int
	log           logger.Logger
}

// NewClient creates a LINE Bot client. snoozeMinutes is offered on the snooze button.
func NewClient(channelSecret, channelToken string, snoozeMinutes int, log logger.Logger, opts ...linebot.ClientOption) (*Client, error) {
	if channelSecret == "" || channelToken == "" {
		return nil, fmt.Errorf("CHANNEL_SECRET and CHANNEL_ACCESS_TOKEN must be set")
	}
	bot, err := linebot.New(channelSecret, channelToken, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create LINE Bot client: %w", err)
	}
	log.Info("Successfully created LINE Bot client.")
	return &Client{
		Client:        bot,
		snoozeMinutes: snoozeMinutes,
		log:           log,
	}, nil
}

// SendMessages sends one or more messages using the ReplyMessage API.
func (c *Client) SendMessages(ctx context.Context, replyToken string, messages ...linebot.SendingMessage) error {
	if _, err := c.ReplyMessage(replyToken, messages...).WithContext(ctx).Do(); err != nil {
		return err
	}
	c.log.Debug("Successfully sent reply message.")
	return nil
}

// PushMessages sends one or more messages using the PushMessage API.
func (c *Client) PushMessages(ctx context.Context, to string, messages ...linebot.SendingMessage) error {
	if _, err := c.PushMessage(to, messages...).WithContext(ctx).Do(); err != nil {
		return err
	}
	c.log.Debug("Successfully sent push message.")
	return nil
}

// ParseRequest parses incoming webhook requests and verifies the signature.
func (c *Client) ParseRequest(r *http.Request) ([]*linebot.Event, error) {
	return c.Client.ParseRequest(r)
}

// Notify pushes the reminder to the LINE user in endpoint.Address with quick
// reply buttons that acknowledge it through the webhook.
func (c *Client) Notify(ctx context.Context, endpoint entity.Endpoint, n entity.Notification) error {
	taken := &linebot.PostbackAction{
		Label:       "Taken",
		Data:        EncodePostback(Postback{ConfirmationID: n.ConfirmationID, Status: constant.StatusTaken}),
		DisplayText: "Taken",
	}
	snoozeLabel := fmt.Sprintf("Snooze %d min", c.snoozeMinutes)
	snooze := &linebot.PostbackAction{
		Label:       snoozeLabel,
		Data:        EncodePostback(Postback{ConfirmationID: n.ConfirmationID, Status: constant.StatusSnoozed, Minutes: c.snoozeMinutes}),
		DisplayText: snoozeLabel,
	}

	msg := linebot.NewTextMessage(fmt.Sprintf("%s\n%s", n.Title(), n.Body())).
		WithQuickReplies(linebot.NewQuickReplyItems(
			linebot.NewQuickReplyButton("", taken),
			linebot.NewQuickReplyButton("", snooze),
		))

	if err := c.PushMessages(ctx, endpoint.Address, msg); err != nil {
		return fmt.Errorf("line push to %s: %w", endpoint.Address, err)
	}
	return nil
}

// Postback is the acknowledgement carried by a quick reply button.
type Postback struct {
	ConfirmationID string
	Status         constant.ConfirmationStatus
	Minutes        int
}

// EncodePostback renders p as postback data, e.g. "action=snoozed&confirmation_id=...&minutes=30".
func EncodePostback(p Postback) string {
	v := url.Values{}
	v.Set("action", string(p.Status))
	v.Set("confirmation_id", p.ConfirmationID)
	if p.Minutes > 0 {
		v.Set("minutes", strconv.Itoa(p.Minutes))
	}
	return v.Encode()
}

// DecodePostback parses postback data produced by EncodePostback.
func DecodePostback(data string) (Postback, error) {
	v, err := url.ParseQuery(data)
	if err != nil {
		return Postback{}, fmt.Errorf("%w: malformed postback data: %v", appErrors.ErrValidation, err)
	}
	p := Postback{
		ConfirmationID: v.Get("confirmation_id"),
		Status:         constant.ConfirmationStatus(v.Get("action")),
	}
	if p.ConfirmationID == "" {
		return Postback{}, fmt.Errorf("%w: postback without confirmation_id", appErrors.ErrValidation)
	}
	if p.Status != constant.StatusTaken && p.Status != constant.StatusSnoozed {
		return Postback{}, fmt.Errorf("%w: unsupported postback action %q", appErrors.ErrValidation, p.Status)
	}
	if m := v.Get("minutes"); m != "" {
		p.Minutes, err = strconv.Atoi(m)
		if err != nil {
			return Postback{}, fmt.Errorf("%w: minutes %q is not a number", appErrors.ErrValidation, m)
		}
	}
	return p, nil
}
