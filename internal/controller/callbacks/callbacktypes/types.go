package callbacktypes

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/tutorspace/tutorspace_bot/internal/service"
	"go.uber.org/zap"
)

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

// StateManager интерфейс для управления состоянием диалогов
type StateManager interface {
	ClearState(chatID int64)
	GetState(chatID int64) UserState
	SetState(chatID int64, state UserState)
	SetData(chatID int64, key string, value interface{})
	GetData(chatID int64, key string) (interface{}, bool)
	GetAllData(chatID int64) map[string]interface{}
}

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	AuthService         *service.AuthService
	TutorService        *service.TutorService
	BookingService      *service.BookingService
	AvailabilityService *service.AvailabilityService
	MessageService      *service.MessageService
	NotificationService *service.NotificationService
	ReviewService       *service.ReviewService
	StateManager        StateManager
	Logger              *zap.Logger

	// Функции-хэндлеры из основного контроллера
	HandleTutors       func(ctx context.Context, b *bot.Bot, update *models.Update)
	HandleMySessions   func(ctx context.Context, b *bot.Bot, update *models.Update)
	HandleAvailability func(ctx context.Context, b *bot.Bot, update *models.Update)
}
