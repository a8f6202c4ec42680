package tutor

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks/callbacktypes"
	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks/common"
	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks/common/formatting"
	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks/common/keyboard"
	"github.com/tutorspace/tutorspace_bot/internal/controller/state"
)

// ========================
// Tutor Session Handlers
// ========================

// HandleAcceptSession подтверждает заявку студента
func HandleAcceptSession(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	sessionID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}
	chatID := common.ChatIDFromCallback(callback)

	session, err := h.BookingService.Accept(ctx, chatID, sessionID)
	if err != nil {
		h.Logger.Error("Failed to accept session",
			zap.Error(err),
			zap.Int64("session_id", sessionID))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	text := fmt.Sprintf("✅ Занятие подтверждено!\n\n%s", formatting.FormatSessionInfo(session, true))
	common.AnswerCallback(ctx, b, callback.ID, "")
	common.EditOrSend(ctx, b, callback, text, keyboard.Empty())
}

// HandleRejectSession отклоняет заявку студента
func HandleRejectSession(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	sessionID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}
	chatID := common.ChatIDFromCallback(callback)

	if _, err := h.BookingService.Reject(ctx, chatID, sessionID); err != nil {
		h.Logger.Error("Failed to reject session",
			zap.Error(err),
			zap.Int64("session_id", sessionID))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "")
	common.EditOrSend(ctx, b, callback, "🚫 Заявка отклонена. Студент получит уведомление.", nil)
}

// HandleCompleteSession отмечает занятие проведённым
func HandleCompleteSession(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	sessionID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}
	chatID := common.ChatIDFromCallback(callback)

	if _, err := h.BookingService.Complete(ctx, chatID, sessionID); err != nil {
		h.Logger.Error("Failed to complete session",
			zap.Error(err),
			zap.Int64("session_id", sessionID))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "")
	common.EditOrSend(ctx, b, callback, "✔️ Занятие завершено. Студенту предложат оставить отзыв.", nil)
}

// HandleRescheduleStart запускает диалог переноса: тьютор вводит новое время
func HandleRescheduleStart(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	sessionID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}
	chatID := common.ChatIDFromCallback(callback)

	h.StateManager.SetData(chatID, "reschedule_session_id", sessionID)
	h.StateManager.SetState(chatID, callbacktypes.UserState(state.StateRescheduleTime))

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("❌ Отмена", "cancel_dialog"))

	common.AnswerCallback(ctx, b, callback.ID, "")
	common.EditOrSend(ctx, b, callback,
		"🔄 Введите новые дату и время в формате <b>ДД.ММ.ГГГГ ЧЧ:ММ</b>,\nнапример: 15.03.2026 14:00",
		kb.Build())
}

// HandleBecomeTutor переключает роль тьютора
func HandleBecomeTutor(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	chatID := common.ChatIDFromCallback(callback)

	account, err := h.AuthService.ToggleTutorRole(ctx, chatID)
	if err != nil {
		h.Logger.Error("Failed to toggle tutor role",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	var text string
	if account.IsTutor {
		text = "🎓 Теперь вы тьютор!\n\n" +
			"Добавьте свободное время: /myschedule\n" +
			"Заполните профиль (ставку, темы, описание): /settings"
	} else {
		text = "👋 Роль тьютора отключена. Вы остаётесь студентом."
	}

	common.AnswerCallback(ctx, b, callback.ID, "")
	common.EditOrSend(ctx, b, callback, text, keyboard.Empty())
}
