package api

import (
	"context"
	"fmt"

	"github.com/tutorspace/tutorspace_bot/internal/model"
)

// Notifications - уведомления текущего пользователя, свежие первыми
func (c *Client) Notifications(ctx context.Context) ([]*model.Notification, error) {
	notifications, err := collect[*model.Notification](ctx, c, "/notifications/")
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

// MarkNotificationRead помечает одно уведомление прочитанным
func (c *Client) MarkNotificationRead(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/notifications/%d/mark_as_read/", id)
	if err := c.post(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("mark notification %d read: %w", id, err)
	}
	return nil
}

// MarkAllNotificationsRead помечает прочитанными все уведомления
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	if err := c.post(ctx, "/notifications/mark_all_as_read/", nil, nil); err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}

// DeleteNotification удаляет уведомление
func (c *Client) DeleteNotification(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/notifications/%d/", id)
	if err := c.delete(ctx, path, nil); err != nil {
		return fmt.Errorf("delete notification %d: %w", id, err)
	}
	return nil
}
