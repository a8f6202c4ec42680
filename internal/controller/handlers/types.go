package handlers

import (
	"go.uber.org/zap"

	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks/callbacktypes"
	"github.com/tutorspace/tutorspace_bot/internal/controller/state"
	"github.com/tutorspace/tutorspace_bot/internal/service"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	authService         *service.AuthService
	tutorService        *service.TutorService
	bookingService      *service.BookingService
	availabilityService *service.AvailabilityService
	messageService      *service.MessageService
	notificationService *service.NotificationService
	reviewService       *service.ReviewService
	stateManager        *state.Manager
	callbackDeps        *callbacktypes.Handler
	logger              *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	authService *service.AuthService,
	tutorService *service.TutorService,
	bookingService *service.BookingService,
	availabilityService *service.AvailabilityService,
	messageService *service.MessageService,
	notificationService *service.NotificationService,
	reviewService *service.ReviewService,
	stateManager *state.Manager,
	callbackDeps *callbacktypes.Handler,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		authService:         authService,
		tutorService:        tutorService,
		bookingService:      bookingService,
		availabilityService: availabilityService,
		messageService:      messageService,
		notificationService: notificationService,
		reviewService:       reviewService,
		stateManager:        stateManager,
		callbackDeps:        callbackDeps,
		logger:              logger,
	}
}
