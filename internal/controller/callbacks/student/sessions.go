package student

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
	"github.com/tutorspace/tutorspace_bot/internal/service"
)

// ========================
// Session Handlers
// ========================

// RenderSessions собирает список занятий пользователя для /mysessions
func RenderSessions(list *service.SessionList, isTutor bool) (string, *models.InlineKeyboardMarkup) {
	if len(list.Pending) == 0 && len(list.Upcoming) == 0 && len(list.Past) == 0 {
		return "📅 У вас пока нет занятий.\nНайти тьютора: /tutors", keyboard.Empty()
	}

	var lines []string
	kb := keyboard.NewBuilder()

	appendSection := func(title string, sessions []*model.Session) {
		if len(sessions) == 0 {
			return
		}
		lines = append(lines, fmt.Sprintf("<b>%s</b>", title))
		for _, session := range sessions {
			lines = append(lines, formatting.FormatSessionShort(session, isTutor))
			kb.Row(keyboard.Button(
				fmt.Sprintf("%s %s", formatting.GetSessionStatusDisplay(session.Status).Emoji,
					formatting.FormatDateTime(session.DateTime)),
				fmt.Sprintf("view_session:%d", session.ID),
			))
		}
	}

	appendSection("⏳ Ожидают ответа", list.Pending)
	appendSection("📅 Предстоящие", list.Upcoming)

	// Прошедшие без кнопок, просто последние 5 строк
	if len(list.Past) > 0 {
		lines = append(lines, "<b>🗂 Прошедшие</b>")
		past := list.Past
		if len(past) > 5 {
			past = past[len(past)-5:]
		}
		for _, session := range past {
			lines = append(lines, formatting.FormatSessionShort(session, isTutor))
		}
	}

	return strings.Join(lines, "\n"), kb.Build()
}

// HandleViewSession показывает карточку занятия с действиями по ролям
func HandleViewSession(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	sessionID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}
	chatID := common.ChatIDFromCallback(callback)

	session, isTutor, err := findSession(ctx, h, chatID, sessionID)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	text := formatting.FormatSessionInfo(session, isTutor)
	kb := sessionActions(session, isTutor)

	common.AnswerCallback(ctx, b, callback.ID, "")
	common.EditOrSend(ctx, b, callback, text, kb)
}

// sessionActions подбирает кнопки действий по статусу и роли
func sessionActions(session *model.Session, isTutor bool) *models.InlineKeyboardMarkup {
	kb := keyboard.NewBuilder()
	id := session.ID

	switch {
	case isTutor && session.Status == model.SessionStatusPending:
		kb.Row(
			keyboard.Button("✅ Принять", fmt.Sprintf("accept_session:%d", id)),
			keyboard.Button("🚫 Отклонить", fmt.Sprintf("reject_session:%d", id)),
		)
	case isTutor && session.Status == model.SessionStatusConfirmed:
		kb.Row(keyboard.Button("✔️ Завершить", fmt.Sprintf("complete_session:%d", id)))
		kb.Row(keyboard.Button("🔄 Перенести", fmt.Sprintf("reschedule:%d", id)))
		kb.Row(keyboard.Button("❌ Отменить", fmt.Sprintf("cancel_session:%d", id)))
	case !isTutor && session.Status == model.SessionStatusReschedulePending:
		kb.Row(
			keyboard.Button("✅ Согласен", fmt.Sprintf("resched_accept:%d", id)),
			keyboard.Button("🚫 Не подходит", fmt.Sprintf("resched_reject:%d", id)),
		)
	case !isTutor && (session.Status == model.SessionStatusPending || session.Status == model.SessionStatusConfirmed):
		kb.Row(keyboard.Button("❌ Отменить", fmt.Sprintf("cancel_session:%d", id)))
	case !isTutor && session.IsCompleted():
		kb.Row(keyboard.Button("⭐ Оставить отзыв", fmt.Sprintf("rate_session:%d", id)))
	}

	counterpart := session.Tutor
	if isTutor {
		counterpart = session.Student
	}
	kb.Row(keyboard.Button("💬 Написать", fmt.Sprintf("open_chat:%d", counterpart)))
	kb.Row(keyboard.Button("⬅️ Назад", "back_to_main"))
	return kb.Build()
}

// HandleCancelSession спрашивает подтверждение отмены
func HandleCancelSession(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	sessionID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("❌ Да, отменить", fmt.Sprintf("confirm_cancel:%d", sessionID))).
		Row(keyboard.Button("⬅️ Нет", fmt.Sprintf("view_session:%d", sessionID)))

	common.AnswerCallback(ctx, b, callback.ID, "")
	common.EditOrSend(ctx, b, callback, "Точно отменить занятие?", kb.Build())
}

// HandleConfirmCancelSession отменяет занятие
func HandleConfirmCancelSession(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	sessionID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}
	chatID := common.ChatIDFromCallback(callback)

	if _, err := h.BookingService.Cancel(ctx, chatID, sessionID); err != nil {
		h.Logger.Error("Failed to cancel session",
			zap.Error(err),
			zap.Int64("session_id", sessionID))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "Занятие отменено")
	common.EditOrSend(ctx, b, callback, "❌ Занятие отменено. Вторая сторона получит уведомление.", nil)
}

// HandleRescheduleResponse - студент отвечает на предложенный перенос.
// Отказ отменяет занятие целиком, об этом предупреждаем в тексте кнопки.
func HandleRescheduleResponse(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, accept bool) {
	sessionID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}
	chatID := common.ChatIDFromCallback(callback)

	session, err := h.BookingService.RespondReschedule(ctx, chatID, sessionID, accept)
	if err != nil {
		h.Logger.Error("Failed to respond to reschedule",
			zap.Error(err),
			zap.Int64("session_id", sessionID),
			zap.Bool("accept", accept))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	var text string
	if accept {
		text = fmt.Sprintf("✅ Перенос принят!\n\n%s", formatting.FormatSessionInfo(session, false))
	} else {
		text = "🚫 Перенос отклонён, занятие отменено.\nВыбрать новое время: /tutors"
	}
	common.AnswerCallback(ctx, b, callback.ID, "")
	common.EditOrSend(ctx, b, callback, text, keyboard.Empty())
}

// findSession ищет занятие в списках пользователя
func findSession(ctx context.Context, h *callbacktypes.Handler, chatID, sessionID int64) (*model.Session, bool, error) {
	account, err := h.AuthService.Account(ctx, chatID)
	if err != nil {
		return nil, false, err
	}

	list, err := h.BookingService.MySessions(ctx, chatID)
	if err != nil {
		return nil, false, err
	}

	for _, group := range [][]*model.Session{list.Pending, list.Upcoming, list.Past} {
		for _, session := range group {
			if session.ID == sessionID {
				return session, account.IsTutor && session.Tutor == account.UserID, nil
			}
		}
	}
	return nil, false, common.ErrSessionGone
}
