package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tutorspace/tutorspace_bot/internal/model"
	"github.com/tutorspace/tutorspace_bot/internal/repository/base"
)

// AccountRepository хранит связки чатов с аккаунтами маркетплейса
type AccountRepository struct {
	*base.Repository
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{Repository: base.NewRepository(pool)}
}

// Upsert сохраняет аккаунт чата. Повторный логин в том же чате
// заменяет прежнюю связку.
func (r *AccountRepository) Upsert(ctx context.Context, account *model.Account) error {
	query := `
		INSERT INTO accounts (chat_id, user_id, username, is_tutor, access_token, refresh_token)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (chat_id) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			username = EXCLUDED.username,
			is_tutor = EXCLUDED.is_tutor,
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := r.QueryRow(
		ctx, query,
		account.ChatID,
		account.UserID,
		account.Username,
		account.IsTutor,
		account.AccessToken,
		account.RefreshToken,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)

	if err != nil {
		return fmt.Errorf("upsert account: %w", err)
	}

	return nil
}

// GetByChatID возвращает аккаунт чата или nil, если чат не залогинен
func (r *AccountRepository) GetByChatID(ctx context.Context, chatID int64) (*model.Account, error) {
	query := `
		SELECT id, chat_id, user_id, username, is_tutor, access_token, refresh_token, created_at, updated_at
		FROM accounts
		WHERE chat_id = $1
	`

	var account model.Account
	err := r.QueryRow(ctx, query, chatID).Scan(
		&account.ID,
		&account.ChatID,
		&account.UserID,
		&account.Username,
		&account.IsTutor,
		&account.AccessToken,
		&account.RefreshToken,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil // Чат не привязан к аккаунту
		}
		return nil, fmt.Errorf("get account by chat id: %w", err)
	}

	return &account, nil
}

// UpdateTokens сохраняет обновлённую пару токенов
func (r *AccountRepository) UpdateTokens(ctx context.Context, chatID int64, access, refresh string) error {
	query := `
		UPDATE accounts
		SET access_token = $2, refresh_token = $3, updated_at = NOW()
		WHERE chat_id = $1
	`

	affected, err := r.ExecAffected(ctx, query, chatID, access, refresh)
	if err != nil {
		return fmt.Errorf("update account tokens: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update account tokens: chat %d has no account", chatID)
	}

	return nil
}

// UpdateIsTutor обновляет флаг роли после её переключения на маркетплейсе
func (r *AccountRepository) UpdateIsTutor(ctx context.Context, chatID int64, isTutor bool) error {
	query := `
		UPDATE accounts
		SET is_tutor = $2, updated_at = NOW()
		WHERE chat_id = $1
	`

	if _, err := r.ExecAffected(ctx, query, chatID, isTutor); err != nil {
		return fmt.Errorf("update account role: %w", err)
	}

	return nil
}

// Delete удаляет связку чата с аккаунтом (логаут)
func (r *AccountRepository) Delete(ctx context.Context, chatID int64) error {
	query := `DELETE FROM accounts WHERE chat_id = $1`

	if _, err := r.ExecAffected(ctx, query, chatID); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}

	return nil
}

// AccountTokenSource адаптирует репозиторий под api.TokenSource
// для конкретного чата
type AccountTokenSource struct {
	repo   *AccountRepository
	chatID int64
}

// TokenSourceFor возвращает источник токенов для чата
func (r *AccountRepository) TokenSourceFor(chatID int64) *AccountTokenSource {
	return &AccountTokenSource{repo: r, chatID: chatID}
}

// Tokens возвращает пару токенов чата. Чат без привязанного аккаунта
// получает пустые токены: запрос уходит анонимно, и открытые эндпоинты
// (каталог тьюторов, чужие профили, слоты) работают без логина,
// а закрытые отвечают 401.
func (s *AccountTokenSource) Tokens(ctx context.Context) (string, string, error) {
	account, err := s.repo.GetByChatID(ctx, s.chatID)
	if err != nil {
		return "", "", err
	}
	if account == nil {
		return "", "", nil
	}
	return account.AccessToken, account.RefreshToken, nil
}

func (s *AccountTokenSource) Save(ctx context.Context, access, refresh string) error {
	return s.repo.UpdateTokens(ctx, s.chatID, access, refresh)
}
