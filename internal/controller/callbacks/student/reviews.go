package student

import (
	"context"
	"fmt"
	"strconv"
	"strings"

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
// Review Handlers
// ========================

// RenderPendingReviews собирает список завершённых занятий без отзыва
func RenderPendingReviews(sessions []*model.Session) (string, *models.InlineKeyboardMarkup) {
	if len(sessions) == 0 {
		return "⭐ Все завершённые занятия уже оценены. Спасибо!", keyboard.Empty()
	}

	var lines []string
	lines = append(lines, "⭐ <b>Оцените прошедшие занятия:</b>")
	kb := keyboard.NewBuilder()

	for _, session := range sessions {
		lines = append(lines, fmt.Sprintf("%s, %s",
			session.TutorName, formatting.FormatDateTime(session.DateTime)))
		kb.Row(keyboard.Button(
			fmt.Sprintf("⭐ %s %s", session.TutorName, formatting.FormatDate(session.DateTime)),
			fmt.Sprintf("rate_session:%d", session.ID),
		))
	}

	return strings.Join(lines, "\n"), kb.Build()
}

// HandleRateSession показывает кнопки оценки 1-5
func HandleRateSession(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	sessionID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	var row []models.InlineKeyboardButton
	for rating := 1; rating <= 5; rating++ {
		row = append(row, keyboard.Button(
			strings.Repeat("⭐", rating),
			fmt.Sprintf("set_rating:%d:%d", sessionID, rating),
		))
	}
	kb := keyboard.NewBuilder().
		AddRow(row).
		Row(keyboard.Button("❌ Отмена", "cancel_dialog"))

	common.AnswerCallback(ctx, b, callback.ID, "")
	common.EditOrSend(ctx, b, callback, "⭐ <b>Как прошло занятие?</b>", kb.Build())
}

// HandleSetRating фиксирует оценку и просит комментарий
func HandleSetRating(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	parts, err := common.ParseParts(callback.Data, 2)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}
	sessionID, err1 := strconv.ParseInt(parts[0], 10, 64)
	rating, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || rating < 1 || rating > 5 {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}
	chatID := common.ChatIDFromCallback(callback)

	h.StateManager.SetData(chatID, "review_session_id", sessionID)
	h.StateManager.SetData(chatID, "review_rating", rating)
	h.StateManager.SetState(chatID, callbacktypes.UserState(state.StateReviewComment))

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("Отправить без комментария", "skip_review_comment")).
		Row(keyboard.Button("❌ Отмена", "cancel_dialog"))

	common.AnswerCallback(ctx, b, callback.ID, "")
	common.EditOrSend(ctx, b, callback,
		fmt.Sprintf("%s\n\n📝 Напишите пару слов о занятии:", strings.Repeat("⭐", rating)),
		kb.Build())
}

// HandleSkipReviewComment отправляет отзыв без комментария
func HandleSkipReviewComment(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	chatID := common.ChatIDFromCallback(callback)

	if err := SubmitReviewFromState(ctx, h, chatID, ""); err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "Спасибо за отзыв!")
	common.EditOrSend(ctx, b, callback, "✅ Отзыв сохранён. Спасибо!", nil)
}

// SubmitReviewFromState отправляет отзыв из сохранённых данных диалога
func SubmitReviewFromState(ctx context.Context, h *callbacktypes.Handler, chatID int64, comment string) error {
	storedID, ok1 := h.StateManager.GetData(chatID, "review_session_id")
	storedRating, ok2 := h.StateManager.GetData(chatID, "review_rating")
	if !ok1 || !ok2 {
		return common.ErrDialogExpired
	}
	sessionID, ok1 := storedID.(int64)
	rating, ok2 := storedRating.(int)
	if !ok1 || !ok2 {
		return common.ErrDialogExpired
	}

	if err := h.ReviewService.Submit(ctx, chatID, sessionID, rating, comment); err != nil {
		h.Logger.Error("Failed to submit review",
			zap.Error(err),
			zap.Int64("session_id", sessionID),
			zap.Int("rating", rating))
		return err
	}

	h.StateManager.ClearState(chatID)
	return nil
}
