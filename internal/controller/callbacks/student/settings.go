package student

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks/callbacktypes"
	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks/common"
	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks/common/keyboard"
	"github.com/tutorspace/tutorspace_bot/internal/controller/state"
)

// ========================
// Settings Handlers
// ========================

// HandleChangePassword запускает диалог смены пароля
func HandleChangePassword(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	chatID := common.ChatIDFromCallback(callback)

	if _, err := h.AuthService.Account(ctx, chatID); err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	h.StateManager.SetState(chatID, callbacktypes.UserState(state.StateCurrentPassword))

	common.AnswerCallback(ctx, b, callback.ID, "")
	common.EditOrSend(ctx, b, callback, "🔑 Введите текущий пароль:", keyboard.NewBuilder().
		Row(keyboard.Button("❌ Отмена", "cancel_dialog")).
		Build())
}

// HandleDeleteAccount спрашивает подтверждение удаления аккаунта
func HandleDeleteAccount(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	kb := keyboard.NewBuilder().
		Row(keyboard.Button("🗑 Да, удалить навсегда", "confirm_delete_account")).
		Row(keyboard.Button("⬅️ Нет", "back_to_main"))

	common.AnswerCallback(ctx, b, callback.ID, "")
	common.EditOrSend(ctx, b, callback,
		"⚠️ Аккаунт и все данные будут удалены безвозвратно. Продолжить?",
		kb.Build())
}

// HandleConfirmDeleteAccount удаляет аккаунт на сервере и локально
func HandleConfirmDeleteAccount(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	chatID := common.ChatIDFromCallback(callback)

	if err := h.AuthService.DeleteAccount(ctx, chatID); err != nil {
		h.Logger.Error("Failed to delete account",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	h.StateManager.ClearState(chatID)
	h.MessageService.StopWatch(chatID)

	common.AnswerCallback(ctx, b, callback.ID, "")
	common.EditOrSend(ctx, b, callback, "🗑 Аккаунт удалён. Будем рады увидеть вас снова: /register", nil)
}
