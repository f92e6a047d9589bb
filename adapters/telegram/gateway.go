// Package telegram provides the channel gateway implementation over the
// Telegram Bot API.
//
// The gateway performs exactly one send per call and translates transport
// errors into postbot error codes; the retry discipline and post-send
// cool-down live in postbot.ChannelPublisher.
package telegram

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	postbot "github.com/zioncoderone/post-bot"
)

// Gateway implements postbot.ChannelGateway using the Telegram Bot API.
type Gateway struct {
	bot             *tgbotapi.BotAPI
	chatID          int64
	channelUsername string
}

// New creates a Gateway for the given bot token and chat identifier.
// The chat identifier is either a numeric chat id or a public channel
// name starting with "@".
func New(token, chat string) (*Gateway, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, postbot.NewErrorWithCause(postbot.ErrCodeConfiguration, "failed to create telegram bot", err)
	}
	return NewWithBot(bot, chat)
}

// NewWithBot creates a Gateway over a pre-configured bot client.
func NewWithBot(bot *tgbotapi.BotAPI, chat string) (*Gateway, error) {
	g := &Gateway{bot: bot}
	if strings.HasPrefix(chat, "@") {
		g.channelUsername = chat
		return g, nil
	}
	id, err := strconv.ParseInt(chat, 10, 64)
	if err != nil {
		return nil, postbot.NewError(postbot.ErrCodeConfiguration,
			"chat identifier must be numeric or start with @")
	}
	g.chatID = id
	return g, nil
}

// SendText delivers a text post with the attached button.
func (g *Gateway) SendText(ctx context.Context, text string, button postbot.Button) error {
	msg := tgbotapi.MessageConfig{
		BaseChat: g.baseChat(button),
		Text:     text,
	}
	return g.send(ctx, msg)
}

// SendPhoto delivers an image post with caption and the attached button.
func (g *Gateway) SendPhoto(ctx context.Context, imageRef, caption string, button postbot.Button) error {
	msg := tgbotapi.PhotoConfig{
		BaseFile: tgbotapi.BaseFile{
			BaseChat: g.baseChat(button),
			File:     tgbotapi.FileURL(imageRef),
		},
		Caption: caption,
	}
	return g.send(ctx, msg)
}

func (g *Gateway) baseChat(button postbot.Button) tgbotapi.BaseChat {
	markup := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL(button.Label, button.URL),
		),
	)
	return tgbotapi.BaseChat{
		ChatID:          g.chatID,
		ChannelUsername: g.channelUsername,
		ReplyMarkup:     markup,
	}
}

// send performs one API call. The bot client has no context plumbing of
// its own, so cancellation is checked before the call; an in-flight send
// runs to completion, matching the no-cancellation delivery model.
func (g *Gateway) send(ctx context.Context, c tgbotapi.Chattable) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := g.bot.Send(c); err != nil {
		return translateError(err)
	}
	return nil
}

// translateError maps transport errors onto postbot error codes. A flood
// control rejection carries the mandatory wait Telegram signaled.
func translateError(err error) error {
	var tgErr *tgbotapi.Error
	if errors.As(err, &tgErr) && tgErr.RetryAfter > 0 {
		return postbot.FloodWait(time.Duration(tgErr.RetryAfter)*time.Second, err)
	}
	return postbot.NewErrorWithCause(postbot.ErrCodeDelivery, "telegram send failed", err)
}
