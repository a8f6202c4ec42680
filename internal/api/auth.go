package api

import (
	"context"
	"fmt"
	"net/http"
)

// TokenPair - JWT-пара, которую выдаёт /token/
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Login обменивает логин и пароль на пару токенов
func (c *Client) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	body := map[string]string{"username": username, "password": password}

	var tokens TokenPair
	if err := c.post(ctx, "/token/", body, &tokens); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return &tokens, nil
}

// RegisterRequest - анкета регистрации нового пользователя
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// Register создаёт аккаунт. Токены после регистрации получаются
// отдельным вызовом Login.
func (c *Client) Register(ctx context.Context, req *RegisterRequest) error {
	if err := c.post(ctx, "/register/", req, nil); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return nil
}

// ChangePassword меняет пароль текущего пользователя
func (c *Client) ChangePassword(ctx context.Context, current, updated string) error {
	body := map[string]string{
		"current_password": current,
		"new_password":     updated,
	}
	if err := c.post(ctx, "/change-password/", body, nil); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}

// UpdateRoles переключает роли аккаунта (студент/тьютор)
func (c *Client) UpdateRoles(ctx context.Context, roles []string) error {
	body := map[string][]string{"roles": roles}
	if err := c.put(ctx, "/update-role/", body, nil); err != nil {
		return fmt.Errorf("update roles: %w", err)
	}
	return nil
}

// DeleteAccount удаляет аккаунт на маркетплейсе
func (c *Client) DeleteAccount(ctx context.Context) error {
	if err := c.do(ctx, http.MethodDelete, "/profile/", nil, nil); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}
