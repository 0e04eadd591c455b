package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"

	"github.com/projects-showcase/reservation-bot/internal/dialog"
)

// Gateway sends outbound messages through the Bot API. All sends pass
// through one limiter sized under the API's ~30 messages/second
// budget, so a long catalogue listing cannot trip a flood ban.
type Gateway struct {
	bot     *tgbotapi.BotAPI
	limiter *rate.Limiter
}

// NewGateway wraps an authorized Bot API client.
func NewGateway(bot *tgbotapi.BotAPI) *Gateway {
	return &Gateway{
		bot:     bot,
		limiter: rate.NewLimiter(rate.Limit(25), 5),
	}
}

// SendMessage sends plain text to a user.
func (g *Gateway) SendMessage(ctx context.Context, userID int64, text string) error {
	if err := g.limiter.Wait(ctx); err != nil {
		return err
	}
	_, err := g.bot.Send(tgbotapi.NewMessage(userID, text))
	return err
}

// SendHTML sends HTML-formatted text, optionally with an inline
// keyboard of one button per row.
func (g *Gateway) SendHTML(ctx context.Context, userID int64, text string, buttons ...dialog.Button) error {
	if err := g.limiter.Wait(ctx); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(userID, text)
	msg.ParseMode = tgbotapi.ModeHTML

	if len(buttons) > 0 {
		rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(buttons))
		for _, b := range buttons {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Data)))
		}
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	}

	_, err := g.bot.Send(msg)
	return err
}

// AnswerCallbackAlert answers a callback query with an alert popup.
func (g *Gateway) AnswerCallbackAlert(ctx context.Context, callbackID, text string) error {
	if err := g.limiter.Wait(ctx); err != nil {
		return err
	}
	_, err := g.bot.Request(tgbotapi.NewCallbackWithAlert(callbackID, text))
	return err
}
