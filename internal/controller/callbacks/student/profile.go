package student

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/tutorspace/tutorspace_bot/internal/api"
	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks/callbacktypes"
	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks/common"
	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks/common/formatting"
	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks/common/keyboard"
	"github.com/tutorspace/tutorspace_bot/internal/controller/state"
	"github.com/tutorspace/tutorspace_bot/internal/model"
)

// ========================
// Profile Editing Handlers
// ========================

// HandleEditProfileMenu показывает текущий профиль и меню редактирования
func HandleEditProfileMenu(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	chatID := common.ChatIDFromCallback(callback)

	profile, err := h.AuthService.Profile(ctx, chatID)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	account, err := h.AuthService.Account(ctx, chatID)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("✏️ О себе", "edit_bio")).
		Row(keyboard.Button("📍 Город", "edit_location"))

	// Ставка, формат и темы имеют смысл только у тьютора
	if account.IsTutor {
		kb.Row(keyboard.Button("💵 Ставка", "edit_rate")).
			Row(keyboard.Button("🎥 Формат занятий", "edit_mode")).
			Row(keyboard.Button("📚 Темы", "edit_topics"))
	}
	kb.Row(keyboard.Button("⬅️ Назад", "back_to_main"))

	common.AnswerCallback(ctx, b, callback.ID, "")
	common.EditOrSend(ctx, b, callback,
		formatting.FormatTutorCard(profile)+"\n\nЧто изменить?",
		kb.Build())
}

// HandleEditField запускает текстовый диалог редактирования одного поля
func HandleEditField(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, st state.UserState, prompt string) {
	chatID := common.ChatIDFromCallback(callback)

	if _, err := h.AuthService.Account(ctx, chatID); err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	h.StateManager.SetState(chatID, callbacktypes.UserState(st))

	common.AnswerCallback(ctx, b, callback.ID, "")
	common.EditOrSend(ctx, b, callback, prompt, keyboard.NewBuilder().
		Row(keyboard.Button("❌ Отмена", "cancel_dialog")).
		Build())
}

// HandleEditMode предлагает выбор формата занятий
func HandleEditMode(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	kb := keyboard.NewBuilder().
		Row(keyboard.Button("💻 По видеосвязи", "set_mode:"+model.ModeWebcam)).
		Row(keyboard.Button("🤝 Лично", "set_mode:"+model.ModeInPerson)).
		Row(keyboard.Button("💻/🤝 Любой формат", "set_mode:"+model.ModeBoth)).
		Row(keyboard.Button("⬅️ Назад", "edit_profile"))

	common.AnswerCallback(ctx, b, callback.ID, "")
	common.EditOrSend(ctx, b, callback, "🎥 В каком формате вы проводите занятия?", kb.Build())
}

// HandleSetMode сохраняет выбранный формат занятий
func HandleSetMode(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	chatID := common.ChatIDFromCallback(callback)

	mode := callback.Data[len("set_mode:"):]
	switch mode {
	case model.ModeWebcam, model.ModeInPerson, model.ModeBoth:
	default:
		common.AnswerCallbackAlert(ctx, b, callback.ID, "Неизвестный формат")
		return
	}

	if _, err := h.AuthService.UpdateProfile(ctx, chatID, profileModeUpdate(mode)); err != nil {
		h.Logger.Error("Failed to update preferred mode",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "Сохранено")
	HandleEditProfileMenu(ctx, b, callback, h)
}

// HandleEditTopics показывает темы тьютора с кнопками удаления
func HandleEditTopics(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	chatID := common.ChatIDFromCallback(callback)

	profile, err := h.AuthService.Profile(ctx, chatID)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	h.StateManager.SetData(chatID, "settings_topics", profile.Topics)

	text := "📚 <b>Ваши темы</b>\n"
	if len(profile.Topics) == 0 {
		text += "\nПока ни одной темы. Добавьте первую, чтобы студенты могли вас найти."
	}

	kb := keyboard.NewBuilder()
	for i, topic := range profile.Topics {
		kb.Row(keyboard.Button("🗑 "+topic, fmt.Sprintf("remove_topic:%d", i)))
	}
	kb.Row(keyboard.Button("➕ Добавить тему", "add_topic")).
		Row(keyboard.Button("⬅️ Назад", "edit_profile"))

	common.AnswerCallback(ctx, b, callback.ID, "")
	common.EditOrSend(ctx, b, callback, text, kb.Build())
}

// HandleRemoveTopic убирает тему из профиля
func HandleRemoveTopic(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	chatID := common.ChatIDFromCallback(callback)

	index, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "Некорректные данные")
		return
	}

	raw, ok := h.StateManager.GetData(chatID, "settings_topics")
	if !ok {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "Список устарел, откройте темы заново")
		return
	}
	topics, ok := raw.([]string)
	if !ok || index < 0 || int(index) >= len(topics) {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "Список устарел, откройте темы заново")
		return
	}

	if err := h.AuthService.RemoveTopic(ctx, chatID, topics[index]); err != nil {
		h.Logger.Error("Failed to remove topic",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
			zap.String("topic", topics[index]))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	HandleEditTopics(ctx, b, callback, h)
}

// HandleAddTopic запускает ввод новой темы
func HandleAddTopic(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	HandleEditField(ctx, b, callback, h, state.StateTopicAdd, "📚 Введите название темы, например «Алгебра»:")
}

func profileModeUpdate(mode string) *api.ProfileUpdate {
	return &api.ProfileUpdate{PreferredMode: &mode}
}
