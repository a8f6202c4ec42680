package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/tutorspace/tutorspace_bot/internal/api"
	"github.com/tutorspace/tutorspace_bot/internal/app"
	"github.com/tutorspace/tutorspace_bot/internal/config"
	"github.com/tutorspace/tutorspace_bot/internal/controller"
	"github.com/tutorspace/tutorspace_bot/internal/repository"
	"github.com/tutorspace/tutorspace_bot/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Sugar().Infow("Starting tutorspace bot",
		"environment", cfg.Environment,
		"api_base_url", cfg.APIBaseURL)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Локальная база: связки Telegram-чатов с аккаунтами маркетплейса
	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Database is not reachable", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, "migrations", logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}

	// Клиент маркетплейса и сервисы
	apiClient := api.New(cfg.APIBaseURL, cfg.APITimeout, logger)
	accounts := repository.NewAccountRepository(pool)

	authService := service.NewAuthService(apiClient, accounts, logger)
	tutorService := service.NewTutorService(authService, logger)
	bookingService := service.NewBookingService(authService, logger)
	availabilityService := service.NewAvailabilityService(authService, logger)
	messageService := service.NewMessageService(authService, app.PollerConfig{
		Initial: cfg.PollInitial,
		Min:     cfg.PollMin,
		Max:     cfg.PollMax,
	}, logger)
	notificationService := service.NewNotificationService(authService, logger)
	reviewService := service.NewReviewService(authService, logger)

	// Живые чаты останавливаем вместе с ботом
	defer messageService.StopAll()

	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	botController := controller.NewBotController(
		b,
		authService,
		tutorService,
		bookingService,
		availabilityService,
		messageService,
		notificationService,
		reviewService,
		logger,
	)

	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Fatal("Failed to register handlers", zap.Error(err))
	}

	if err := botController.Start(ctx); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}

	logger.Info("Bot stopped")
}
