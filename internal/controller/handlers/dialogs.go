package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/tutorspace/tutorspace_bot/internal/api"
	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks/common/keyboard"
	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks/student"
	"github.com/tutorspace/tutorspace_bot/internal/controller/state"
	"github.com/tutorspace/tutorspace_bot/internal/model"
	"github.com/tutorspace/tutorspace_bot/internal/schedule"
)

// HandleTextMessage обрабатывает текстовые сообщения по текущему
// состоянию диалога
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}
	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)

	switch h.stateManager.GetState(chatID) {
	case state.StateLoginUsername:
		h.handleLoginUsername(ctx, b, chatID, text)
	case state.StateLoginPassword:
		h.handleLoginPassword(ctx, b, update, chatID, text)
	case state.StateRegisterUsername:
		h.handleRegisterUsername(ctx, b, chatID, text)
	case state.StateRegisterEmail:
		h.handleRegisterEmail(ctx, b, chatID, text)
	case state.StateRegisterPassword:
		h.handleRegisterPassword(ctx, b, update, chatID, text)
	case state.StateSearchingTutor:
		h.handleTutorSearch(ctx, b, chatID, text)
	case state.StateBookingNotes:
		h.handleBookingNotes(ctx, b, chatID, text)
	case state.StateAddSlotDate:
		h.handleSlotDate(ctx, b, chatID, text)
	case state.StateAddSlotTimeStart:
		h.handleSlotTimeStart(ctx, b, chatID, text)
	case state.StateAddSlotTimeEnd:
		h.handleSlotTimeEnd(ctx, b, chatID, text)
	case state.StateChatting:
		h.handleChatMessage(ctx, b, chatID, text)
	case state.StateReviewComment:
		h.handleReviewComment(ctx, b, chatID, text)
	case state.StateCurrentPassword:
		h.handleCurrentPassword(ctx, b, update, chatID, text)
	case state.StateNewPassword:
		h.handleNewPassword(ctx, b, update, chatID, text)
	case state.StateRescheduleTime:
		h.handleRescheduleTime(ctx, b, chatID, text)
	case state.StateEditBio:
		h.handleEditBio(ctx, b, chatID, text)
	case state.StateEditLocation:
		h.handleEditLocation(ctx, b, chatID, text)
	case state.StateEditRate:
		h.handleEditRate(ctx, b, chatID, text)
	case state.StateTopicAdd:
		h.handleTopicAdd(ctx, b, chatID, text)
	default:
		h.sendText(ctx, b, chatID, "Не понимаю 🤔 Список команд: /help")
	}
}

// ===== Вход =====

func (h *Handlers) handleLoginUsername(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	h.stateManager.SetData(chatID, "login_username", text)
	h.stateManager.SetState(chatID, state.StateLoginPassword)
	h.sendText(ctx, b, chatID, "🔑 Введите пароль:")
}

func (h *Handlers) handleLoginPassword(ctx context.Context, b *bot.Bot, update *models.Update, chatID int64, password string) {
	// Сообщение с паролем сразу удаляем из чата
	b.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    chatID,
		MessageID: update.Message.ID,
	})

	stored, ok := h.stateManager.GetData(chatID, "login_username")
	username, castOK := stored.(string)
	if !ok || !castOK {
		h.stateManager.ClearState(chatID)
		h.sendText(ctx, b, chatID, "❌ Диалог устарел, начните заново: /login")
		return
	}

	account, err := h.authService.Login(ctx, chatID, username, password)
	if err != nil {
		h.logger.Warn("Login failed", zap.Error(err), zap.String("username", username))
		h.stateManager.ClearState(chatID)
		h.sendText(ctx, b, chatID, "❌ Неверное имя пользователя или пароль. Попробовать ещё раз: /login")
		return
	}

	h.stateManager.ClearState(chatID)

	text := fmt.Sprintf("✅ Добро пожаловать, %s!\n\nКаталог тьюторов: /tutors\nВаши занятия: /mysessions", account.Username)
	if account.IsTutor {
		text += "\nВаше расписание: /myschedule"
	}
	h.sendText(ctx, b, chatID, text)
}

// ===== Регистрация =====

func (h *Handlers) handleRegisterUsername(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	if len(text) < 3 || strings.ContainsAny(text, " \t") {
		h.sendText(ctx, b, chatID, "❌ Имя пользователя: минимум 3 символа, без пробелов. Попробуйте ещё раз:")
		return
	}
	h.stateManager.SetData(chatID, "register_username", text)
	h.stateManager.SetState(chatID, state.StateRegisterEmail)
	h.sendText(ctx, b, chatID, "📧 Введите email:")
}

func (h *Handlers) handleRegisterEmail(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	if !strings.Contains(text, "@") || !strings.Contains(text, ".") {
		h.sendText(ctx, b, chatID, "❌ Это не похоже на email. Попробуйте ещё раз:")
		return
	}
	h.stateManager.SetData(chatID, "register_email", text)
	h.stateManager.SetState(chatID, state.StateRegisterPassword)
	h.sendText(ctx, b, chatID, "🔑 Придумайте пароль (минимум 8 символов):")
}

func (h *Handlers) handleRegisterPassword(ctx context.Context, b *bot.Bot, update *models.Update, chatID int64, password string) {
	b.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    chatID,
		MessageID: update.Message.ID,
	})

	if len(password) < 8 {
		h.sendText(ctx, b, chatID, "❌ Пароль слишком короткий, нужно минимум 8 символов. Попробуйте ещё раз:")
		return
	}

	storedUsername, ok1 := h.stateManager.GetData(chatID, "register_username")
	storedEmail, ok2 := h.stateManager.GetData(chatID, "register_email")
	username, cast1 := storedUsername.(string)
	email, cast2 := storedEmail.(string)
	if !ok1 || !ok2 || !cast1 || !cast2 {
		h.stateManager.ClearState(chatID)
		h.sendText(ctx, b, chatID, "❌ Диалог устарел, начните заново: /register")
		return
	}

	account, err := h.authService.Register(ctx, chatID, &api.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		h.logger.Warn("Registration failed", zap.Error(err), zap.String("username", username))
		h.stateManager.ClearState(chatID)
		h.sendError(ctx, b, chatID, err)
		return
	}

	h.stateManager.ClearState(chatID)
	h.sendText(ctx, b, chatID, fmt.Sprintf(
		"🎉 Аккаунт создан, вы вошли как %s!\n\nНайти тьютора: /tutors\nСтать тьютором: /settings",
		account.Username))
}

// ===== Поиск тьютора =====

func (h *Handlers) handleTutorSearch(ctx context.Context, b *bot.Bot, chatID int64, query string) {
	tutors := h.tutorService.Browse(ctx, chatID)
	filtered := h.tutorService.Filter(tutors, query)

	if len(filtered) == 0 {
		h.sendText(ctx, b, chatID, fmt.Sprintf("😔 По запросу «%s» никого не нашлось. Попробуйте другой запрос или /cancel", query))
		return
	}

	text, markup := student.RenderTutorsPage(filtered, 0)
	h.sendHTML(ctx, b, chatID, fmt.Sprintf("🔍 Результаты по «%s»:\n\n%s", query, text), markup)
}

// ===== Запись: заметки =====

func (h *Handlers) handleBookingNotes(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	h.stateManager.SetData(chatID, "booking_notes", text)
	h.stateManager.SetState(chatID, state.StateNone)

	summary, markup, err := student.BookingSummary(h.callbackDeps, chatID)
	if err != nil {
		h.sendError(ctx, b, chatID, err)
		return
	}
	h.sendHTML(ctx, b, chatID, summary, markup)
}

// ===== Добавление окна доступности =====

func (h *Handlers) handleSlotDate(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	parsed, err := time.ParseInLocation("02.01.2006", text, time.Local)
	if err != nil {
		h.sendText(ctx, b, chatID, "❌ Не понял дату. Формат: ДД.ММ.ГГГГ, например 15.03.2026")
		return
	}
	date := model.DateOf(parsed)
	if date.BeforeDate(model.DateOf(time.Now())) {
		h.sendText(ctx, b, chatID, "❌ Дата уже прошла. Введите будущую дату:")
		return
	}

	h.stateManager.SetData(chatID, "slot_date", date)
	h.stateManager.SetState(chatID, state.StateAddSlotTimeStart)
	h.sendText(ctx, b, chatID, "🕐 Начало окна в формате ЧЧ:ММ, например 09:00")
}

func (h *Handlers) handleSlotTimeStart(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	clock, ok := parseClockInput(text)
	if !ok {
		h.sendText(ctx, b, chatID, "❌ Не понял время. Формат: ЧЧ:ММ, например 09:00")
		return
	}

	h.stateManager.SetData(chatID, "slot_time_start", clock)
	h.stateManager.SetState(chatID, state.StateAddSlotTimeEnd)
	h.sendText(ctx, b, chatID, "🕐 Конец окна в формате ЧЧ:ММ, например 13:00")
}

func (h *Handlers) handleSlotTimeEnd(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	clock, ok := parseClockInput(text)
	if !ok {
		h.sendText(ctx, b, chatID, "❌ Не понял время. Формат: ЧЧ:ММ, например 13:00")
		return
	}

	stored, okStart := h.stateManager.GetData(chatID, "slot_time_start")
	timeStart, castOK := stored.(string)
	if !okStart || !castOK {
		h.stateManager.ClearState(chatID)
		h.sendText(ctx, b, chatID, "❌ Диалог устарел, начните заново: /myschedule")
		return
	}
	if minutes, valid := schedule.SlotMinutes(timeStart, clock); !valid || minutes <= 0 {
		h.sendText(ctx, b, chatID, "❌ Конец окна должен быть позже начала. Попробуйте ещё раз:")
		return
	}

	h.stateManager.SetData(chatID, "slot_time_end", clock)
	h.stateManager.SetState(chatID, state.StateNone)

	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("🔁 Каждую неделю", "slot_recurring:yes"),
			keyboard.Button("📅 Только раз", "slot_recurring:no"),
		).
		Row(keyboard.Button("❌ Отмена", "cancel_dialog"))

	h.sendHTML(ctx, b, chatID, "Повторять это окно еженедельно?", kb.Build())
}

// ===== Живой чат =====

func (h *Handlers) handleChatMessage(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	stored, ok := h.stateManager.GetData(chatID, "chat_user_id")
	userID, castOK := stored.(int64)
	if !ok || !castOK {
		h.stateManager.ClearState(chatID)
		h.sendText(ctx, b, chatID, "❌ Чат закрыт. Открыть переписки: /messages")
		return
	}

	if _, err := h.messageService.Send(ctx, chatID, userID, text); err != nil {
		h.logger.Error("Failed to send chat message",
			zap.Error(err),
			zap.Int64("receiver", userID))
		h.sendError(ctx, b, chatID, err)
		return
	}
	// Подтверждение не шлём, чтобы не засорять переписку
}

// ===== Отзыв: комментарий =====

func (h *Handlers) handleReviewComment(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	if err := student.SubmitReviewFromState(ctx, h.callbackDeps, chatID, text); err != nil {
		h.sendError(ctx, b, chatID, err)
		return
	}
	h.sendText(ctx, b, chatID, "✅ Отзыв сохранён. Спасибо!")
}

// ===== Смена пароля =====

func (h *Handlers) handleCurrentPassword(ctx context.Context, b *bot.Bot, update *models.Update, chatID int64, password string) {
	b.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    chatID,
		MessageID: update.Message.ID,
	})

	h.stateManager.SetData(chatID, "current_password", password)
	h.stateManager.SetState(chatID, state.StateNewPassword)
	h.sendText(ctx, b, chatID, "🔑 Введите новый пароль (минимум 8 символов):")
}

func (h *Handlers) handleNewPassword(ctx context.Context, b *bot.Bot, update *models.Update, chatID int64, password string) {
	b.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    chatID,
		MessageID: update.Message.ID,
	})

	if len(password) < 8 {
		h.sendText(ctx, b, chatID, "❌ Пароль слишком короткий. Попробуйте ещё раз:")
		return
	}

	stored, ok := h.stateManager.GetData(chatID, "current_password")
	current, castOK := stored.(string)
	if !ok || !castOK {
		h.stateManager.ClearState(chatID)
		h.sendText(ctx, b, chatID, "❌ Диалог устарел, начните заново из /settings")
		return
	}

	if err := h.authService.ChangePassword(ctx, chatID, current, password); err != nil {
		h.logger.Warn("Password change failed", zap.Error(err), zap.Int64("chat_id", chatID))
		h.stateManager.ClearState(chatID)
		h.sendError(ctx, b, chatID, err)
		return
	}

	h.stateManager.ClearState(chatID)
	h.sendText(ctx, b, chatID, "✅ Пароль изменён.")
}

// ===== Перенос занятия =====

func (h *Handlers) handleRescheduleTime(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	parsed, err := time.ParseInLocation("02.01.2006 15:04", text, time.Local)
	if err != nil {
		h.sendText(ctx, b, chatID, "❌ Не понял. Формат: ДД.ММ.ГГГГ ЧЧ:ММ, например 15.03.2026 14:00")
		return
	}
	if !parsed.After(time.Now()) {
		h.sendText(ctx, b, chatID, "❌ Время уже прошло. Введите будущие дату и время:")
		return
	}

	stored, ok := h.stateManager.GetData(chatID, "reschedule_session_id")
	sessionID, castOK := stored.(int64)
	if !ok || !castOK {
		h.stateManager.ClearState(chatID)
		h.sendText(ctx, b, chatID, "❌ Диалог устарел. Откройте занятие заново: /mysessions")
		return
	}

	if _, err := h.bookingService.Reschedule(ctx, chatID, sessionID, parsed); err != nil {
		h.logger.Error("Failed to reschedule session",
			zap.Error(err),
			zap.Int64("session_id", sessionID))
		h.sendError(ctx, b, chatID, err)
		return
	}

	h.stateManager.ClearState(chatID)
	h.sendText(ctx, b, chatID,
		"🔄 Предложение о переносе отправлено студенту.\nЗанятие подтвердится после его согласия.")
}

func (h *Handlers) handleEditBio(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	h.applyProfileUpdate(ctx, b, chatID, &api.ProfileUpdate{Bio: &text})
}

func (h *Handlers) handleEditLocation(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	h.applyProfileUpdate(ctx, b, chatID, &api.ProfileUpdate{Location: &text})
}

func (h *Handlers) handleEditRate(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	rate, err := strconv.ParseFloat(strings.ReplaceAll(text, ",", "."), 64)
	if err != nil || rate <= 0 || rate > 10000 {
		h.sendText(ctx, b, chatID, "❌ Не понял. Введите ставку числом, например 25 или 19.50:")
		return
	}
	h.applyProfileUpdate(ctx, b, chatID, &api.ProfileUpdate{HourlyRate: &rate})
}

func (h *Handlers) applyProfileUpdate(ctx context.Context, b *bot.Bot, chatID int64, update *api.ProfileUpdate) {
	if _, err := h.authService.UpdateProfile(ctx, chatID, update); err != nil {
		h.logger.Error("Failed to update profile",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
		h.sendError(ctx, b, chatID, err)
		return
	}
	h.stateManager.SetState(chatID, state.StateNone)
	h.sendText(ctx, b, chatID, "✅ Профиль обновлён. Посмотреть: /settings")
}

func (h *Handlers) handleTopicAdd(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	if len([]rune(text)) < 2 || len([]rune(text)) > 60 {
		h.sendText(ctx, b, chatID, "❌ Название темы должно быть от 2 до 60 символов. Попробуйте ещё раз:")
		return
	}
	if err := h.authService.AddTopic(ctx, chatID, text); err != nil {
		h.logger.Error("Failed to add topic",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
			zap.String("topic", text))
		h.sendError(ctx, b, chatID, err)
		return
	}
	h.stateManager.SetState(chatID, state.StateNone)
	h.sendText(ctx, b, chatID, fmt.Sprintf("✅ Тема «%s» добавлена. Посмотреть профиль: /settings", text))
}

// parseClockInput принимает "9:00" или "09:00" и возвращает "HH:MM:00"
func parseClockInput(text string) (string, bool) {
	parsed, err := time.Parse("15:04", text)
	if err != nil {
		parsed, err = time.Parse("3:04", text)
		if err != nil {
			return "", false
		}
	}
	return parsed.Format("15:04") + ":00", true
}
