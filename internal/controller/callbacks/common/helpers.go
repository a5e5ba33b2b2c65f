package common

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// AnswerCallback отвечает на callback query (без alert)
func AnswerCallback(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       false,
	})
}

// AnswerCallbackAlert отвечает на callback query с alert (всплывающее окно)
func AnswerCallbackAlert(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       true,
	})
}

// GetMessageFromCallback извлекает сообщение из callback query
func GetMessageFromCallback(callback *models.CallbackQuery) *models.Message {
	if callback.Message.Message != nil {
		return callback.Message.Message
	}
	return nil
}

// ParseIDFromCallback извлекает ID записи из callback data
// Например: "edit:3f2a..." -> "3f2a..."
func ParseIDFromCallback(data string) (string, error) {
	_, id, ok := strings.Cut(data, ":")
	if !ok || id == "" {
		return "", ErrInvalidFormat
	}
	return id, nil
}

// ParsePageFromCallback извлекает номер страницы: "list_page:2" -> 2
func ParsePageFromCallback(data string) (int, error) {
	_, value, ok := strings.Cut(data, ":")
	if !ok {
		return 0, ErrInvalidFormat
	}
	page, err := strconv.Atoi(value)
	if err != nil {
		return 0, ErrInvalidFormat
	}
	return page, nil
}

// OwnerID владелец записей для пользователя Telegram
func OwnerID(telegramID int64) string {
	return strconv.FormatInt(telegramID, 10)
}

// IsMessageNotModifiedError Telegram отвечает так, если текст и кнопки не изменились
func IsMessageNotModifiedError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}
