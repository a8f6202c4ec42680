package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/tutorspace/tutorspace_bot/internal/api"
	"github.com/tutorspace/tutorspace_bot/internal/model"
	"github.com/tutorspace/tutorspace_bot/internal/repository"
	"go.uber.org/zap"
)

// ErrNotLoggedIn: чат не привязан к аккаунту маркетплейса
var ErrNotLoggedIn = errors.New("chat is not logged in")

// AuthService управляет привязкой чатов к аккаунтам маркетплейса
type AuthService struct {
	client   *api.Client
	accounts *repository.AccountRepository
	logger   *zap.Logger
}

func NewAuthService(client *api.Client, accounts *repository.AccountRepository, logger *zap.Logger) *AuthService {
	return &AuthService{
		client:   client,
		accounts: accounts,
		logger:   logger,
	}
}

// ClientFor возвращает API-клиент, подписывающий запросы токенами чата
func (s *AuthService) ClientFor(chatID int64) *api.Client {
	return s.client.WithTokens(s.accounts.TokenSourceFor(chatID))
}

// Account возвращает аккаунт чата или ErrNotLoggedIn
func (s *AuthService) Account(ctx context.Context, chatID int64) (*model.Account, error) {
	account, err := s.accounts.GetByChatID(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	if account == nil {
		return nil, ErrNotLoggedIn
	}
	return account, nil
}

// Login логинится на маркетплейсе и привязывает аккаунт к чату
func (s *AuthService) Login(ctx context.Context, chatID int64, username, password string) (*model.Account, error) {
	tokens, err := s.client.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	// Профиль нужен сразу: id и роли сохраняются в связке
	account := &model.Account{
		ChatID:       chatID,
		Username:     username,
		AccessToken:  tokens.Access,
		RefreshToken: tokens.Refresh,
	}
	if err := s.accounts.Upsert(ctx, account); err != nil {
		return nil, err
	}

	profile, err := s.ClientFor(chatID).Profile(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch profile after login: %w", err)
	}

	account.UserID = profile.ID
	account.IsTutor = profile.IsTutor()
	if err := s.accounts.Upsert(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("Chat linked to marketplace account",
		zap.Int64("chat_id", chatID),
		zap.String("username", username),
		zap.Bool("is_tutor", account.IsTutor))

	return account, nil
}

// Logout отвязывает чат от аккаунта. Токены просто забываются,
// на сервере сессий нет.
func (s *AuthService) Logout(ctx context.Context, chatID int64) error {
	if err := s.accounts.Delete(ctx, chatID); err != nil {
		return err
	}
	s.logger.Info("Chat logged out", zap.Int64("chat_id", chatID))
	return nil
}

// Register создаёт аккаунт на маркетплейсе и сразу логинит чат
func (s *AuthService) Register(ctx context.Context, chatID int64, req *api.RegisterRequest) (*model.Account, error) {
	if err := s.client.Register(ctx, req); err != nil {
		return nil, err
	}
	return s.Login(ctx, chatID, req.Username, req.Password)
}

// ChangePassword меняет пароль текущего аккаунта
func (s *AuthService) ChangePassword(ctx context.Context, chatID int64, current, updated string) error {
	return s.ClientFor(chatID).ChangePassword(ctx, current, updated)
}

// ToggleTutorRole включает или выключает роль тьютора
func (s *AuthService) ToggleTutorRole(ctx context.Context, chatID int64) (*model.Account, error) {
	account, err := s.Account(ctx, chatID)
	if err != nil {
		return nil, err
	}

	roles := []string{"Student"}
	if !account.IsTutor {
		roles = append(roles, "Tutor")
	}

	client := s.ClientFor(chatID)
	if err := client.UpdateRoles(ctx, roles); err != nil {
		return nil, err
	}
	if err := s.accounts.UpdateIsTutor(ctx, chatID, !account.IsTutor); err != nil {
		return nil, err
	}

	account.IsTutor = !account.IsTutor
	return account, nil
}

// Profile возвращает профиль текущего пользователя
func (s *AuthService) Profile(ctx context.Context, chatID int64) (*model.TutorProfile, error) {
	return s.ClientFor(chatID).Profile(ctx)
}

// UpdateProfile обновляет поля профиля
func (s *AuthService) UpdateProfile(ctx context.Context, chatID int64, update *api.ProfileUpdate) (*model.TutorProfile, error) {
	return s.ClientFor(chatID).UpdateProfile(ctx, update)
}

// AddTopic добавляет тему в профиль тьютора
func (s *AuthService) AddTopic(ctx context.Context, chatID int64, topic string) error {
	account, err := s.Account(ctx, chatID)
	if err != nil {
		return err
	}
	return s.ClientFor(chatID).AddTopic(ctx, account.UserID, topic)
}

// RemoveTopic убирает тему из профиля тьютора
func (s *AuthService) RemoveTopic(ctx context.Context, chatID int64, topic string) error {
	return s.ClientFor(chatID).RemoveTopic(ctx, topic)
}

// DeleteAccount удаляет аккаунт на маркетплейсе и отвязывает чат
func (s *AuthService) DeleteAccount(ctx context.Context, chatID int64) error {
	if err := s.ClientFor(chatID).DeleteAccount(ctx); err != nil {
		return err
	}
	return s.Logout(ctx, chatID)
}
