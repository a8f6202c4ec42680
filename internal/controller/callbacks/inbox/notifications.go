package inbox

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks/callbacktypes"
	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks/common"
	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks/common/formatting"
	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks/common/keyboard"
	"github.com/tutorspace/tutorspace_bot/internal/model"
)

// ========================
// Notification Handlers
// ========================

// RenderNotifications собирает ленту уведомлений для /notifications
func RenderNotifications(unread, read []*model.Notification) (string, *models.InlineKeyboardMarkup) {
	if len(unread) == 0 && len(read) == 0 {
		return "🔔 Уведомлений нет.", keyboard.Empty()
	}

	var lines []string
	kb := keyboard.NewBuilder()

	if len(unread) > 0 {
		lines = append(lines, "🔔 <b>Новые</b>")
		for _, n := range unread {
			lines = append(lines, formatting.FormatNotification(n))
			row := []models.InlineKeyboardButton{
				keyboard.Button("✅ Прочитано", fmt.Sprintf("notif_read:%d", n.ID)),
			}
			if n.RelatedSession != nil {
				row = append(row, keyboard.Button("📖 К занятию", fmt.Sprintf("view_session:%d", *n.RelatedSession)))
			}
			kb.AddRow(row)
		}
		kb.Row(keyboard.Button("✅ Прочитать все", "notif_read_all"))
	}

	if len(read) > 0 {
		lines = append(lines, "🗂 <b>Ранее</b>")
		shown := read
		if len(shown) > 5 {
			shown = shown[:5]
		}
		for _, n := range shown {
			lines = append(lines, formatting.FormatNotification(n))
			kb.Row(keyboard.Button("🗑 Удалить", fmt.Sprintf("notif_delete:%d", n.ID)))
		}
	}

	return strings.Join(lines, "\n\n"), kb.Build()
}

// HandleNotificationRead отмечает уведомление прочитанным
func HandleNotificationRead(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	notificationID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}
	chatID := common.ChatIDFromCallback(callback)

	if err := h.NotificationService.MarkRead(ctx, chatID, notificationID); err != nil {
		h.Logger.Error("Failed to mark notification read",
			zap.Error(err),
			zap.Int64("notification_id", notificationID))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	refreshNotifications(ctx, b, callback, h, chatID)
}

// HandleNotificationReadAll отмечает все уведомления прочитанными
func HandleNotificationReadAll(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	chatID := common.ChatIDFromCallback(callback)

	if err := h.NotificationService.MarkAllRead(ctx, chatID); err != nil {
		h.Logger.Error("Failed to mark all notifications read", zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	refreshNotifications(ctx, b, callback, h, chatID)
}

// HandleNotificationDelete удаляет уведомление
func HandleNotificationDelete(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	notificationID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}
	chatID := common.ChatIDFromCallback(callback)

	if err := h.NotificationService.Delete(ctx, chatID, notificationID); err != nil {
		h.Logger.Error("Failed to delete notification",
			zap.Error(err),
			zap.Int64("notification_id", notificationID))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	refreshNotifications(ctx, b, callback, h, chatID)
}

// refreshNotifications перерисовывает ленту после действия
func refreshNotifications(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, chatID int64) {
	unread, read, err := h.NotificationService.List(ctx, chatID)
	if err != nil {
		common.AnswerCallback(ctx, b, callback.ID, "Готово")
		return
	}
	text, markup := RenderNotifications(unread, read)
	common.AnswerCallback(ctx, b, callback.ID, "Готово")
	common.EditOrSend(ctx, b, callback, text, markup)
}
