package handlers

import (
	"context"
	"errors"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks/common"
	"github.com/tutorspace/tutorspace_bot/internal/service"
)

// sendText отправляет простое текстовое сообщение
func (h *Handlers) sendText(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
}

// sendHTML отправляет сообщение с HTML разметкой и клавиатурой
func (h *Handlers) sendHTML(ctx context.Context, b *bot.Bot, chatID int64, text string, markup models.ReplyMarkup) {
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: markup,
	})
}

// sendError переводит ошибку в пользовательское сообщение
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64, err error) {
	h.sendText(ctx, b, chatID, common.ErrorMessage(err))
}

// requireLogin возвращает false и подсказку, если чат не авторизован
func (h *Handlers) requireLogin(ctx context.Context, b *bot.Bot, chatID int64) bool {
	if _, err := h.authService.Account(ctx, chatID); err != nil {
		if errors.Is(err, service.ErrNotLoggedIn) {
			h.sendText(ctx, b, chatID, "🔑 Сначала войдите в аккаунт: /login\nНет аккаунта? /register")
		} else {
			h.sendError(ctx, b, chatID, err)
		}
		return false
	}
	return true
}

// requireTutor возвращает false, если чат не тьютор
func (h *Handlers) requireTutor(ctx context.Context, b *bot.Bot, chatID int64) bool {
	account, err := h.authService.Account(ctx, chatID)
	if err != nil {
		if errors.Is(err, service.ErrNotLoggedIn) {
			h.sendText(ctx, b, chatID, "🔑 Сначала войдите в аккаунт: /login")
		} else {
			h.sendError(ctx, b, chatID, err)
		}
		return false
	}
	if !account.IsTutor {
		h.sendText(ctx, b, chatID, "🎓 Эта команда для тьюторов. Стать тьютором: /settings")
		return false
	}
	return true
}
