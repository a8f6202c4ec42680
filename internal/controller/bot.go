package controller

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks"
	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks/callbacktypes"
	"github.com/tutorspace/tutorspace_bot/internal/controller/handlers"
	"github.com/tutorspace/tutorspace_bot/internal/controller/state"
	"github.com/tutorspace/tutorspace_bot/internal/service"
)

type BotController struct {
	bot          *bot.Bot
	handlers     *handlers.Handlers
	callbackDeps *callbacktypes.Handler
	logger       *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	authService *service.AuthService,
	tutorService *service.TutorService,
	bookingService *service.BookingService,
	availabilityService *service.AvailabilityService,
	messageService *service.MessageService,
	notificationService *service.NotificationService,
	reviewService *service.ReviewService,
	logger *zap.Logger,
) *BotController {
	// Создаём менеджер состояний
	stateManager := state.NewManager()

	// Общие зависимости callback handlers
	callbackDeps := &callbacktypes.Handler{
		AuthService:         authService,
		TutorService:        tutorService,
		BookingService:      bookingService,
		AvailabilityService: availabilityService,
		MessageService:      messageService,
		NotificationService: notificationService,
		ReviewService:       reviewService,
		StateManager:        state.NewAdapter(stateManager),
		Logger:              logger,
	}

	// Обработчики команд
	cmdHandlers := handlers.NewHandlers(
		authService,
		tutorService,
		bookingService,
		availabilityService,
		messageService,
		notificationService,
		reviewService,
		stateManager,
		callbackDeps,
		logger,
	)

	callbackDeps.HandleTutors = cmdHandlers.HandleTutors
	callbackDeps.HandleMySessions = cmdHandlers.HandleMySessions
	callbackDeps.HandleAvailability = cmdHandlers.HandleMySchedule

	return &BotController{
		bot:          botInstance,
		handlers:     cmdHandlers,
		callbackDeps: callbackDeps,
		logger:       logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	// Команды аккаунта
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/login", bot.MatchTypeExact, c.handlers.HandleLogin)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/logout", bot.MatchTypeExact, c.handlers.HandleLogout)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/register", bot.MatchTypeExact, c.handlers.HandleRegister)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/settings", bot.MatchTypeExact, c.handlers.HandleSettings)

	// Команды студента
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/tutors", bot.MatchTypeExact, c.handlers.HandleTutors)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/mysessions", bot.MatchTypeExact, c.handlers.HandleMySessions)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/messages", bot.MatchTypeExact, c.handlers.HandleMessages)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/notifications", bot.MatchTypeExact, c.handlers.HandleNotifications)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/reviews", bot.MatchTypeExact, c.handlers.HandleReviews)

	// Команды тьютора
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/myschedule", bot.MatchTypeExact, c.handlers.HandleMySchedule)

	// Обработчик текстовых сообщений (для диалогов с состояниями)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.handleCallbackQuery)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

// handleCallbackQuery передаёт нажатие кнопки в router
func (c *BotController) handleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	callbacks.Route(ctx, b, update.CallbackQuery, c.callbackDeps)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать работу с ботом"},
		{Command: "tutors", Description: "🎓 Каталог тьюторов"},
		{Command: "mysessions", Description: "📅 Мои занятия"},
		{Command: "messages", Description: "💬 Переписки"},
		{Command: "notifications", Description: "🔔 Уведомления"},
		{Command: "reviews", Description: "⭐ Оценить занятия"},
		{Command: "myschedule", Description: "🗓 Моё свободное время (тьютор)"},
		{Command: "settings", Description: "⚙️ Профиль и настройки"},
		{Command: "login", Description: "🔑 Войти в аккаунт"},
		{Command: "register", Description: "🆕 Создать аккаунт"},
		{Command: "help", Description: "❓ Справка по командам"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
