package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/line/line-bot-sdk-go/v7/linebot"

	"medreminder/internal/application/service"
	"medreminder/internal/domain/constant"
	"medreminder/internal/infrastructure/line"
	appErrors "medreminder/internal/pkg/errors"
	"medreminder/internal/pkg/logger"
)

const (
	commandSchedules = "schedules"
	commandToday     = "today"
	commandHelp      = "help"
)

// LineBot is the part of the LINE client the webhook needs.
type LineBot interface {
	ParseRequest(r *http.Request) ([]*linebot.Event, error)
	SendMessages(ctx context.Context, replyToken string, messages ...linebot.SendingMessage) error
}

// LineHandler handles incoming LINE webhook events.
type LineHandler struct {
	lineClient          LineBot
	userService         service.UserService
	scheduleService     service.ScheduleService
	confirmationService service.ConfirmationService
	log                 logger.Logger
}

// NewLineHandler creates a new LineHandler.
func NewLineHandler(
	lineClient LineBot,
	userService service.UserService,
	scheduleService service.ScheduleService,
	confirmationService service.ConfirmationService,
	log logger.Logger,
) *LineHandler {
	return &LineHandler{
		lineClient:          lineClient,
		userService:         userService,
		scheduleService:     scheduleService,
		confirmationService: confirmationService,
		log:                 log,
	}
}

// HandleWebhook is the main entry point for webhook requests.
func (h *LineHandler) HandleWebhook(c echo.Context) error {
	ctx := c.Request().Context()
	events, err := h.lineClient.ParseRequest(c.Request())
	if err != nil {
		if errors.Is(err, linebot.ErrInvalidSignature) {
			h.log.Warn("Invalid LINE signature received")
			return c.String(http.StatusBadRequest, "Invalid signature")
		}
		h.log.Error("Failed to parse LINE webhook request", err)
		return c.String(http.StatusInternalServerError, "Error parsing request")
	}

	for _, event := range events {
		h.log.Debug(fmt.Sprintf("Processing event type: %s", event.Type))
		switch event.Type {
		case linebot.EventTypePostback:
			h.handlePostbackEvent(ctx, event)
		case linebot.EventTypeMessage:
			h.handleMessageEvent(ctx, event)
		case linebot.EventTypeFollow:
			h.handleFollowEvent(ctx, event)
		case linebot.EventTypeUnfollow:
			h.handleUnfollowEvent(ctx, event)
		default:
			h.log.Debug(fmt.Sprintf("Unhandled event type: %s", event.Type))
		}
	}

	return c.String(http.StatusOK, "OK")
}

// handlePostbackEvent acknowledges a reminder from its quick reply button.
func (h *LineHandler) handlePostbackEvent(ctx context.Context, event *linebot.Event) {
	lineUserID := event.Source.UserID
	replyToken := event.ReplyToken

	pb, err := line.DecodePostback(event.Postback.Data)
	if err != nil {
		h.log.Warn(fmt.Sprintf("Ignoring postback from %s: %v", lineUserID, err))
		h.reply(ctx, replyToken, "That button is no longer valid.")
		return
	}

	userID, ok := h.resolve(ctx, replyToken, lineUserID)
	if !ok {
		return
	}

	var minutes *int
	if pb.Minutes > 0 {
		minutes = &pb.Minutes
	}
	resp, err := h.confirmationService.Acknowledge(ctx, userID, pb.ConfirmationID, pb.Status, minutes)
	switch {
	case err == nil:
	case errors.Is(err, appErrors.ErrConflict):
		h.reply(ctx, replyToken, "This reminder was already answered.")
		return
	case errors.Is(err, appErrors.ErrNotFound):
		h.reply(ctx, replyToken, "This reminder could not be found.")
		return
	default:
		h.reply(ctx, replyToken, "Sorry, something went wrong. Please try again.")
		return
	}

	if pb.Status == constant.StatusTaken {
		h.reply(ctx, replyToken, fmt.Sprintf("Recorded %s as taken.", resp.MedicineName))
		return
	}
	h.reply(ctx, replyToken, fmt.Sprintf("OK, I'll remind you about %s again at %s.", resp.MedicineName, *resp.SnoozeUntil))
}

// handleMessageEvent answers the text commands.
func (h *LineHandler) handleMessageEvent(ctx context.Context, event *linebot.Event) {
	lineUserID := event.Source.UserID
	replyToken := event.ReplyToken

	message, ok := event.Message.(*linebot.TextMessage)
	if !ok {
		h.log.Debug(fmt.Sprintf("Received non-text message type from %s", lineUserID))
		return
	}

	switch strings.ToLower(strings.TrimSpace(message.Text)) {
	case commandSchedules:
		h.sendScheduleList(ctx, replyToken, lineUserID)
	case commandToday:
		h.sendTodayList(ctx, replyToken, lineUserID)
	default:
		h.sendHowToUse(ctx, replyToken, lineUserID)
	}
}

// handleFollowEvent tells the user which id to register.
func (h *LineHandler) handleFollowEvent(ctx context.Context, event *linebot.Event) {
	lineUserID := event.Source.UserID
	h.log.Info(fmt.Sprintf("User %s followed the bot.", lineUserID))

	welcome := linebot.NewTextMessage("Welcome! I will send your medication reminders here.")
	register := linebot.NewTextMessage(fmt.Sprintf("Register this LINE ID in the app to receive reminders:\n%s", lineUserID))
	if err := h.lineClient.SendMessages(ctx, event.ReplyToken, welcome, register); err != nil {
		h.log.Error(fmt.Sprintf("Failed to send follow reply to user %s", lineUserID), err)
	}
}

// handleUnfollowEvent stops delivery to a user who blocked the bot.
func (h *LineHandler) handleUnfollowEvent(ctx context.Context, event *linebot.Event) {
	lineUserID := event.Source.UserID
	h.log.Info(fmt.Sprintf("User %s unfollowed or blocked the bot.", lineUserID))

	userID, err := h.userService.ResolveUser(ctx, constant.EndpointLine, lineUserID)
	if err != nil {
		if !errors.Is(err, appErrors.ErrNotFound) {
			h.log.Error(fmt.Sprintf("Failed to resolve LINE user %s on unfollow", lineUserID), err)
		}
		return
	}
	if err := h.userService.ClearEndpoint(ctx, userID); err != nil {
		h.log.Error(fmt.Sprintf("Failed to clear endpoint of user %s on unfollow", userID), err)
	}
}

// --- Helper methods for message handling ---

func (h *LineHandler) sendHowToUse(ctx context.Context, replyToken, lineUserID string) {
	howToUse := fmt.Sprintf(`Reminders arrive here with "Taken" and "Snooze" buttons.

Send "%s" to see your medication schedules.
Send "%s" to see today's reminders.

Your LINE ID: %s`, commandSchedules, commandToday, lineUserID)

	quickReply := linebot.NewQuickReplyItems(
		linebot.NewQuickReplyButton("", linebot.NewMessageAction("Schedules", commandSchedules)),
		linebot.NewQuickReplyButton("", linebot.NewMessageAction("Today", commandToday)),
		linebot.NewQuickReplyButton("", linebot.NewMessageAction("Help", commandHelp)),
	)
	message := linebot.NewTextMessage(howToUse).WithQuickReplies(quickReply)
	if err := h.lineClient.SendMessages(ctx, replyToken, message); err != nil {
		h.log.Error("Failed to send 'how to use' message", err)
	}
}

func (h *LineHandler) sendScheduleList(ctx context.Context, replyToken, lineUserID string) {
	userID, ok := h.resolve(ctx, replyToken, lineUserID)
	if !ok {
		return
	}
	schedules, err := h.scheduleService.ListSchedules(ctx, userID)
	if err != nil {
		h.reply(ctx, replyToken, "Failed to load your schedules.")
		return
	}
	if len(schedules) == 0 {
		h.reply(ctx, replyToken, "You have no active schedules.")
		return
	}

	var builder strings.Builder
	builder.WriteString("Your schedules:")
	for _, s := range schedules {
		fmt.Fprintf(&builder, "\n%s  %s (%s)", s.Time, s.MedicineName, strings.Join(s.Days, ","))
	}
	h.reply(ctx, replyToken, builder.String())
}

func (h *LineHandler) sendTodayList(ctx context.Context, replyToken, lineUserID string) {
	userID, ok := h.resolve(ctx, replyToken, lineUserID)
	if !ok {
		return
	}
	list, err := h.confirmationService.ListConfirmations(ctx, userID, "", "")
	if err != nil {
		h.reply(ctx, replyToken, "Failed to load today's reminders.")
		return
	}
	if len(list) == 0 {
		h.reply(ctx, replyToken, "No reminders have been sent today.")
		return
	}

	var builder strings.Builder
	builder.WriteString("Today:")
	for _, c := range list {
		fmt.Fprintf(&builder, "\n%s  %s: %s", c.ScheduledTime, c.MedicineName, c.Status)
	}
	h.reply(ctx, replyToken, builder.String())
}

// resolve maps the LINE user to the app user, replying when that fails.
func (h *LineHandler) resolve(ctx context.Context, replyToken, lineUserID string) (string, bool) {
	userID, err := h.userService.ResolveUser(ctx, constant.EndpointLine, lineUserID)
	if err == nil {
		return userID, true
	}
	if errors.Is(err, appErrors.ErrNotFound) {
		h.reply(ctx, replyToken, fmt.Sprintf("This LINE account is not linked yet. Register this ID in the app:\n%s", lineUserID))
	} else {
		h.log.Error(fmt.Sprintf("Failed to resolve LINE user %s", lineUserID), err)
		h.reply(ctx, replyToken, "Sorry, something went wrong. Please try again.")
	}
	return "", false
}

func (h *LineHandler) reply(ctx context.Context, replyToken, text string) {
	if err := h.lineClient.SendMessages(ctx, replyToken, linebot.NewTextMessage(text)); err != nil {
		h.log.Error("Failed to send reply message", err)
	}
}
