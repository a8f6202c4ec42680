package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks/common/formatting"
	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks/common/keyboard"
	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks/inbox"
	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks/student"
	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks/tutor"
	"github.com/tutorspace/tutorspace_bot/internal/controller/state"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	if account, err := h.authService.Account(ctx, chatID); err == nil {
		h.sendText(ctx, b, chatID, fmt.Sprintf(
			"👋 С возвращением, %s!\n\nКаталог тьюторов: /tutors\nВаши занятия: /mysessions\nСправка: /help",
			account.Username))
		return
	}

	name := update.Message.From.FirstName
	if name == "" {
		name = update.Message.From.Username
	}
	h.sendText(ctx, b, chatID, fmt.Sprintf(welcomeText, name))
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.sendHTML(ctx, b, update.Message.Chat.ID, helpText, nil)
}

// HandleLogin запускает диалог входа
func (h *Handlers) HandleLogin(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	if account, err := h.authService.Account(ctx, chatID); err == nil {
		h.sendText(ctx, b, chatID, fmt.Sprintf(
			"Вы уже вошли как %s. Сменить аккаунт: сначала /logout", account.Username))
		return
	}

	h.stateManager.SetState(chatID, state.StateLoginUsername)
	h.sendText(ctx, b, chatID, "👤 Введите имя пользователя:")
}

// HandleLogout выходит из аккаунта
func (h *Handlers) HandleLogout(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	h.messageService.StopWatch(chatID)
	h.stateManager.ClearState(chatID)

	if err := h.authService.Logout(ctx, chatID); err != nil {
		h.logger.Error("Failed to logout", zap.Error(err), zap.Int64("chat_id", chatID))
		h.sendError(ctx, b, chatID, err)
		return
	}
	h.sendText(ctx, b, chatID, "👋 Вы вышли из аккаунта. Войти снова: /login")
}

// HandleRegister запускает диалог регистрации
func (h *Handlers) HandleRegister(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	if _, err := h.authService.Account(ctx, chatID); err == nil {
		h.sendText(ctx, b, chatID, "Вы уже вошли в аккаунт. Сначала /logout")
		return
	}

	h.stateManager.SetState(chatID, state.StateRegisterUsername)
	h.sendText(ctx, b, chatID, "🆕 Придумайте имя пользователя:")
}

// HandleTutors показывает каталог тьюторов
func (h *Handlers) HandleTutors(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	// Каталог открытый, смотреть тьюторов можно и без логина
	tutors := h.tutorService.Browse(ctx, chatID)
	text, markup := student.RenderTutorsPage(tutors, 0)

	// После каталога текст в чате работает как поисковый запрос
	if len(tutors) > 0 {
		h.stateManager.SetState(chatID, state.StateSearchingTutor)
		text += "\n\n🔍 Введите имя или тему, чтобы отфильтровать список"
	}

	h.sendHTML(ctx, b, chatID, text, markup)
}

// HandleMySessions показывает занятия пользователя
func (h *Handlers) HandleMySessions(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	if !h.requireLogin(ctx, b, chatID) {
		return
	}

	account, err := h.authService.Account(ctx, chatID)
	if err != nil {
		h.sendError(ctx, b, chatID, err)
		return
	}

	list, err := h.bookingService.MySessions(ctx, chatID)
	if err != nil {
		h.logger.Error("Failed to load sessions", zap.Error(err), zap.Int64("chat_id", chatID))
		h.sendError(ctx, b, chatID, err)
		return
	}

	text, markup := student.RenderSessions(list, account.IsTutor)
	h.sendHTML(ctx, b, chatID, text, markup)
}

// HandleMySchedule показывает кабинет расписания тьютора
func (h *Handlers) HandleMySchedule(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	if !h.requireTutor(ctx, b, chatID) {
		return
	}

	grouped, err := h.availabilityService.My(ctx, chatID, 0)
	if err != nil {
		h.logger.Error("Failed to load availability", zap.Error(err), zap.Int64("chat_id", chatID))
		h.sendError(ctx, b, chatID, err)
		return
	}

	text, markup := tutor.RenderMySchedule(grouped)
	h.sendHTML(ctx, b, chatID, text, markup)
}

// HandleMessages показывает список переписок
func (h *Handlers) HandleMessages(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	if !h.requireLogin(ctx, b, chatID) {
		return
	}

	conversations, err := h.messageService.Conversations(ctx, chatID)
	if err != nil {
		h.logger.Error("Failed to load conversations", zap.Error(err), zap.Int64("chat_id", chatID))
		h.sendError(ctx, b, chatID, err)
		return
	}

	text, markup := inbox.RenderConversations(conversations)
	h.sendHTML(ctx, b, chatID, text, markup)
}

// HandleNotifications показывает ленту уведомлений
func (h *Handlers) HandleNotifications(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	if !h.requireLogin(ctx, b, chatID) {
		return
	}

	unread, read, err := h.notificationService.List(ctx, chatID)
	if err != nil {
		h.logger.Error("Failed to load notifications", zap.Error(err), zap.Int64("chat_id", chatID))
		h.sendError(ctx, b, chatID, err)
		return
	}

	text, markup := inbox.RenderNotifications(unread, read)
	h.sendHTML(ctx, b, chatID, text, markup)
}

// HandleReviews показывает занятия, ждущие отзыва
func (h *Handlers) HandleReviews(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	if !h.requireLogin(ctx, b, chatID) {
		return
	}

	pending, err := h.reviewService.Pending(ctx, chatID)
	if err != nil {
		h.logger.Error("Failed to load pending reviews", zap.Error(err), zap.Int64("chat_id", chatID))
		h.sendError(ctx, b, chatID, err)
		return
	}

	text, markup := student.RenderPendingReviews(pending)
	h.sendHTML(ctx, b, chatID, text, markup)
}

// HandleSettings показывает профиль и настройки аккаунта
func (h *Handlers) HandleSettings(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	if !h.requireLogin(ctx, b, chatID) {
		return
	}

	profile, err := h.authService.Profile(ctx, chatID)
	if err != nil {
		h.logger.Error("Failed to load profile", zap.Error(err), zap.Int64("chat_id", chatID))
		h.sendError(ctx, b, chatID, err)
		return
	}

	var sb strings.Builder
	sb.WriteString("⚙️ <b>Ваш профиль</b>\n\n")
	fmt.Fprintf(&sb, "👤 %s (@%s)\n", profile.DisplayName(), profile.Username)
	fmt.Fprintf(&sb, "📧 %s\n", profile.Email)
	fmt.Fprintf(&sb, "🎭 Роли: %s\n", strings.Join(profile.Roles, ", "))
	if profile.IsTutor() {
		fmt.Fprintf(&sb, "💰 Ставка: %s\n", formatting.FormatRate(profile.HourlyRate))
		if len(profile.Topics) > 0 {
			fmt.Fprintf(&sb, "🏷 Темы: %s\n", strings.Join(profile.Topics, ", "))
		}
	}

	roleButton := keyboard.Button("🎓 Стать тьютором", "become_tutor")
	if profile.IsTutor() {
		roleButton = keyboard.Button("👤 Отключить роль тьютора", "become_tutor")
	}

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("✏️ Редактировать профиль", "edit_profile")).
		Row(roleButton).
		Row(keyboard.Button("🔑 Сменить пароль", "change_password")).
		Row(keyboard.Button("🗑 Удалить аккаунт", "delete_account"))

	h.sendHTML(ctx, b, chatID, sb.String(), kb.Build())
}

// HandleCancel прерывает текущий диалог
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	h.messageService.StopWatch(chatID)
	h.stateManager.ClearState(chatID)
	h.sendText(ctx, b, chatID, "Диалог прерван. Справка: /help")
}
