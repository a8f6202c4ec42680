package service

import (
	"context"

	"github.com/tutorspace/tutorspace_bot/internal/model"
	"go.uber.org/zap"
)

// NotificationService - уведомления маркетплейса
type NotificationService struct {
	auth   ClientProvider
	logger *zap.Logger
}

func NewNotificationService(auth ClientProvider, logger *zap.Logger) *NotificationService {
	return &NotificationService{auth: auth, logger: logger}
}

// List возвращает уведомления, непрочитанные отдельно
func (s *NotificationService) List(ctx context.Context, chatID int64) (unread, read []*model.Notification, err error) {
	notifications, err := s.auth.ClientFor(chatID).Notifications(ctx)
	if err != nil {
		return nil, nil, err
	}

	for _, n := range notifications {
		if n.IsRead {
			read = append(read, n)
		} else {
			unread = append(unread, n)
		}
	}
	return unread, read, nil
}

// MarkRead помечает уведомление прочитанным
func (s *NotificationService) MarkRead(ctx context.Context, chatID, notificationID int64) error {
	return s.auth.ClientFor(chatID).MarkNotificationRead(ctx, notificationID)
}

// MarkAllRead помечает прочитанными все уведомления
func (s *NotificationService) MarkAllRead(ctx context.Context, chatID int64) error {
	return s.auth.ClientFor(chatID).MarkAllNotificationsRead(ctx)
}

// Delete удаляет уведомление
func (s *NotificationService) Delete(ctx context.Context, chatID, notificationID int64) error {
	return s.auth.ClientFor(chatID).DeleteNotification(ctx, notificationID)
}
