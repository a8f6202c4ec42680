package common

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Helper functions для всех callback handlers

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

// ChatIDFromCallback возвращает чат, в котором нажата кнопка
func ChatIDFromCallback(callback *models.CallbackQuery) int64 {
	if msg := GetMessageFromCallback(callback); msg != nil {
		return msg.Chat.ID
	}
	return callback.From.ID
}

// ParseIDFromCallback извлекает ID из callback data
// Например: "view_tutor:123" -> 123
func ParseIDFromCallback(data string) (int64, error) {
	parts := strings.Split(data, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid callback data format")
	}
	return strconv.ParseInt(parts[1], 10, 64)
}

// ParseParts разбирает callback data с несколькими параметрами:
// "pick_slot:123:2" -> []string{"123", "2"}
func ParseParts(data string, want int) ([]string, error) {
	parts := strings.Split(data, ":")
	if len(parts) != want+1 {
		return nil, fmt.Errorf("invalid callback data format")
	}
	return parts[1:], nil
}

// EditOrSend редактирует сообщение с кнопкой, а если не вышло -
// отправляет новое (сообщение могло устареть)
func EditOrSend(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, text string, markup models.ReplyMarkup) {
	msg := GetMessageFromCallback(callback)
	if msg != nil {
		_, err := b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:      msg.Chat.ID,
			MessageID:   msg.ID,
			Text:        text,
			ParseMode:   models.ParseModeHTML,
			ReplyMarkup: markup,
		})
		if err == nil {
			return
		}
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      ChatIDFromCallback(callback),
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: markup,
	})
}
