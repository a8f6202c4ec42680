package model

import "time"

// Account - связка Telegram-чата с аккаунтом маркетплейса.
// Единственное, что бот хранит локально: всё остальное живёт за REST API.
type Account struct {
	ID           int64     `json:"id"`
	ChatID       int64     `json:"chat_id"`
	UserID       int64     `json:"user_id"` // id пользователя на маркетплейсе
	Username     string    `json:"username"`
	IsTutor      bool      `json:"is_tutor"`
	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
