package api

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/tutorspace/tutorspace_bot/internal/model"
)

// Conversations - свёртки переписок с последним сообщением и числом
// непрочитанных
func (c *Client) Conversations(ctx context.Context) ([]*model.Conversation, error) {
	conversations, err := collect[*model.Conversation](ctx, c, "/messages/conversations/")
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return conversations, nil
}

// MessagesWith - вся переписка с собеседником, по всем страницам
func (c *Client) MessagesWith(ctx context.Context, userID int64) ([]*model.Message, error) {
	path := fmt.Sprintf("/messages/?receiver=%d", userID)
	messages, err := collect[*model.Message](ctx, c, path)
	if err != nil {
		return nil, fmt.Errorf("list messages with %d: %w", userID, err)
	}
	return messages, nil
}

// MessagesSince - сообщения переписки новее отметки времени.
// Используется поллером открытого чата.
func (c *Client) MessagesSince(ctx context.Context, userID int64, since time.Time) ([]*model.Message, error) {
	params := url.Values{}
	params.Set("receiver", fmt.Sprintf("%d", userID))
	params.Set("since", since.Format(time.RFC3339))

	messages, err := collect[*model.Message](ctx, c, "/messages/?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("list messages with %d since %s: %w", userID, since, err)
	}
	return messages, nil
}

// SendMessage отправляет сообщение собеседнику
func (c *Client) SendMessage(ctx context.Context, receiverID int64, text string) (*model.Message, error) {
	body := map[string]interface{}{
		"message":  text,
		"receiver": receiverID,
	}

	var message model.Message
	if err := c.post(ctx, "/messages/", body, &message); err != nil {
		return nil, fmt.Errorf("send message to %d: %w", receiverID, err)
	}
	return &message, nil
}

// MarkRead помечает прочитанными все сообщения от отправителя
func (c *Client) MarkRead(ctx context.Context, senderID int64) error {
	body := map[string]int64{"sender_id": senderID}
	if err := c.post(ctx, "/messages/mark-read/", body, nil); err != nil {
		return fmt.Errorf("mark messages from %d read: %w", senderID, err)
	}
	return nil
}

// UnreadCount - общее число непрочитанных сообщений
func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	var payload struct {
		UnreadCount int `json:"unread_count"`
	}
	if err := c.get(ctx, "/messages/unread-count", &payload); err != nil {
		return 0, fmt.Errorf("get unread count: %w", err)
	}
	return payload.UnreadCount, nil
}
