package inbox

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks/callbacktypes"
	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks/common"
	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks/common/formatting"
	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks/common/keyboard"
	"github.com/tutorspace/tutorspace_bot/internal/controller/state"
	"github.com/tutorspace/tutorspace_bot/internal/model"
)

// ========================
// Chat Handlers
// ========================

// RenderConversations собирает список диалогов для /messages
func RenderConversations(conversations []*model.Conversation) (string, *models.InlineKeyboardMarkup) {
	if len(conversations) == 0 {
		return "💬 У вас пока нет переписок.\nНапишите тьютору из его карточки: /tutors", keyboard.Empty()
	}

	var lines []string
	lines = append(lines, "💬 <b>Ваши переписки:</b>")
	kb := keyboard.NewBuilder()

	for i, conv := range conversations {
		lines = append(lines, formatting.FormatConversation(conv, i+1))
		label := conv.User.DisplayName()
		if conv.UnreadCount > 0 {
			label = fmt.Sprintf("%s (%d)", label, conv.UnreadCount)
		}
		kb.Row(keyboard.Button(label, fmt.Sprintf("open_chat:%d", conv.User.ID)))
	}

	return strings.Join(lines, "\n\n"), kb.Build()
}

// HandleOpenChat открывает переписку: показывает историю и включает
// живой режим - входящие сообщения досылаются в Telegram по мере прихода
func HandleOpenChat(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	userID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}
	chatID := common.ChatIDFromCallback(callback)

	account, err := h.AuthService.Account(ctx, chatID)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	history, err := h.MessageService.History(ctx, chatID, userID)
	if err != nil {
		h.Logger.Error("Failed to load chat history",
			zap.Error(err),
			zap.Int64("user_id", userID))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	if err := h.MessageService.MarkRead(ctx, chatID, userID); err != nil {
		h.Logger.Warn("Failed to mark messages read",
			zap.Error(err),
			zap.Int64("user_id", userID))
	}

	h.StateManager.SetData(chatID, "chat_user_id", userID)
	h.StateManager.SetState(chatID, callbacktypes.UserState(state.StateChatting))

	text := renderHistory(history, account.UserID)
	kb := keyboard.NewBuilder().
		Row(keyboard.Button("🚪 Закрыть чат", "close_chat"))

	common.AnswerCallback(ctx, b, callback.ID, "")
	common.EditOrSend(ctx, b, callback, text, kb.Build())

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "✍️ Пишите сообщения прямо сюда. Новые ответы будут приходить автоматически.",
	})

	since := time.Now()
	if n := len(history); n > 0 {
		since = history[n-1].Timestamp
	}

	// Канал живых сообщений привязан к чату: открытие другой переписки
	// или закрытие чата останавливает предыдущий watcher
	h.MessageService.Watch(ctx, chatID, userID, since, func(incoming []*model.Message) {
		for _, message := range incoming {
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: chatID,
				Text:   fmt.Sprintf("💬 %s:\n%s", message.SenderName, message.Text),
			})
		}
		if err := h.MessageService.MarkRead(ctx, chatID, userID); err != nil {
			h.Logger.Warn("Failed to mark live messages read", zap.Error(err))
		}
	})
}

// HandleCloseChat выключает живой режим переписки
func HandleCloseChat(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	chatID := common.ChatIDFromCallback(callback)

	h.MessageService.StopWatch(chatID)
	h.StateManager.ClearState(chatID)

	common.AnswerCallback(ctx, b, callback.ID, "")
	common.EditOrSend(ctx, b, callback, "🚪 Чат закрыт. Все переписки: /messages", nil)
}

// renderHistory показывает хвост истории переписки
func renderHistory(history []*model.Message, ownUserID int64) string {
	if len(history) == 0 {
		return "💬 Сообщений пока нет. Напишите первым!"
	}

	// Последние 15 сообщений, старые обрезаем
	if len(history) > 15 {
		history = history[len(history)-15:]
	}

	var lines []string
	for _, message := range history {
		prefix := "💬 " + message.SenderName
		if message.Sender == ownUserID {
			prefix = "🟢 Вы"
		}
		lines = append(lines, fmt.Sprintf("%s (%s):\n%s",
			prefix, formatting.FormatDateTime(message.Timestamp), message.Text))
	}
	return strings.Join(lines, "\n\n")
}
