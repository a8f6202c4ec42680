package service

import (
	"context"

	"github.com/tutorspace/tutorspace_bot/internal/api"
	"github.com/tutorspace/tutorspace_bot/internal/model"
)

// ClientProvider выдаёт API-клиент и аккаунт для чата.
// Реализуется AuthService, в тестах подменяется заглушкой.
type ClientProvider interface {
	ClientFor(chatID int64) *api.Client
	Account(ctx context.Context, chatID int64) (*model.Account, error)
}
