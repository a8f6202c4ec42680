// Package api - клиент REST API маркетплейса.
// Бот работает как обычный браузерный клиент: JWT в заголовке,
// обновление access-токена по 401, пагинация DRF.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

// ErrUnauthorized: токенов нет или они протухли и обновить не удалось.
// Контроллер по этой ошибке отправляет пользователя на повторный логин.
var ErrUnauthorized = errors.New("unauthorized")

// APIError - ответ сервера со статусом 4xx/5xx
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api status %d: %s", e.Status, e.Body)
}

// Detail вытаскивает человекочитаемую причину из тела ошибки DRF
func (e *APIError) Detail() string {
	var payload struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal([]byte(e.Body), &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Detail != "" {
			return payload.Detail
		}
	}
	return e.Body
}

// TokenSource выдаёт пару токенов аккаунта и сохраняет обновлённую.
// Реализуется репозиторием аккаунтов, клиент о хранилище не знает.
type TokenSource interface {
	Tokens(ctx context.Context) (access, refresh string, err error)
	Save(ctx context.Context, access, refresh string) error
}

type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
	tokens  TokenSource
}

func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// WithTokens возвращает копию клиента, подписывающую запросы токенами
// аккаунта. Базовый клиент остаётся анонимным, транспорт общий.
func (c *Client) WithTokens(ts TokenSource) *Client {
	clone := *c
	clone.tokens = ts
	return &clone
}

// url собирает абсолютный адрес. Ссылки пагинации приходят уже
// абсолютными, их пропускаем как есть.
func (c *Client) url(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.baseURL + path
}

// send выполняет один HTTP-запрос. Сетевые сбои повторяются один раз
// через секунду, HTTP-статусы сюда не входят.
func (c *Client) send(ctx context.Context, method, path string, body []byte, access string) (*http.Response, error) {
	var resp *http.Response

	backoff := retry.WithMaxRetries(1, retry.NewConstant(time.Second))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Request-ID", uuid.NewString())
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if access != "" {
			req.Header.Set("Authorization", "Bearer "+access)
		}

		resp, err = c.http.Do(req)
		if err != nil {
			c.logger.Warn("Request failed, will retry once",
				zap.String("method", method),
				zap.String("path", path),
				zap.Error(err))
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

// refresh обменивает refresh-токен на свежий access и сохраняет пару
func (c *Client) refresh(ctx context.Context, refreshToken string) (string, error) {
	body, err := json.Marshal(map[string]string{"refresh": refreshToken})
	if err != nil {
		return "", fmt.Errorf("marshal refresh request: %w", err)
	}

	resp, err := c.send(ctx, http.MethodPost, "/token/refresh/", body, "")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", ErrUnauthorized
	}

	var tokens struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return "", fmt.Errorf("decode refresh response: %w", err)
	}

	// При ротации сервер может вернуть и новый refresh
	if tokens.Refresh == "" {
		tokens.Refresh = refreshToken
	}
	if err := c.tokens.Save(ctx, tokens.Access, tokens.Refresh); err != nil {
		return "", fmt.Errorf("save refreshed tokens: %w", err)
	}
	return tokens.Access, nil
}

// do выполняет запрос и декодирует ответ в out (если out != nil).
// На 401 авторизованного клиента один раз обновляет access-токен
// и повторяет запрос.
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body []byte
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		body = encoded
	}

	var access, refreshToken string
	if c.tokens != nil {
		var err error
		access, refreshToken, err = c.tokens.Tokens(ctx)
		if err != nil {
			return fmt.Errorf("load tokens: %w", err)
		}
	}

	resp, err := c.send(ctx, method, path, body, access)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized && c.tokens != nil && refreshToken != "" {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		access, err = c.refresh(ctx, refreshToken)
		if err != nil {
			return err
		}
		resp, err = c.send(ctx, method, path, body, access)
		if err != nil {
			return err
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		io.Copy(io.Discard, resp.Body)
		return ErrUnauthorized
	}
	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(resp.Body)
		return &APIError{Status: resp.StatusCode, Body: string(raw)}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, in, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, in, out)
}

func (c *Client) put(ctx context.Context, path string, in, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, in, out)
}

func (c *Client) delete(ctx context.Context, path string, in interface{}) error {
	return c.do(ctx, http.MethodDelete, path, in, nil)
}

// page - страница DRF-пагинации
type page[T any] struct {
	Results []T     `json:"results"`
	Next    *string `json:"next"`
}

// collect собирает список целиком, следуя за next. Эндпоинты без
// пагинации отдают голый массив, он тоже поддерживается.
func collect[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var all []T
	next := path

	for next != "" {
		var raw json.RawMessage
		if err := c.get(ctx, next, &raw); err != nil {
			return nil, err
		}

		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			var items []T
			if err := json.Unmarshal(trimmed, &items); err != nil {
				return nil, fmt.Errorf("decode list %s: %w", path, err)
			}
			return append(all, items...), nil
		}

		var p page[T]
		if err := json.Unmarshal(trimmed, &p); err != nil {
			return nil, fmt.Errorf("decode page %s: %w", path, err)
		}
		all = append(all, p.Results...)

		if p.Next == nil {
			break
		}
		next = *p.Next
	}
	return all, nil
}
