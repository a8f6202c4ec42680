package api

import (
	"context"
	"fmt"
	"time"

	"github.com/tutorspace/tutorspace_bot/internal/model"
)

// Sessions - занятия текущего пользователя (как студента и как тьютора)
func (c *Client) Sessions(ctx context.Context) ([]*model.Session, error) {
	sessions, err := collect[*model.Session](ctx, c, "/sessions/")
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

// TutorSessions - занятия конкретного тьютора, нужны для проверки
// занятости слотов перед записью
func (c *Client) TutorSessions(ctx context.Context, tutorID int64) ([]*model.Session, error) {
	path := fmt.Sprintf("/sessions/?tutor=%d", tutorID)
	sessions, err := collect[*model.Session](ctx, c, path)
	if err != nil {
		return nil, fmt.Errorf("list tutor %d sessions: %w", tutorID, err)
	}
	return sessions, nil
}

// CompletedSessions - завершённые занятия, по ним можно оставить отзыв
func (c *Client) CompletedSessions(ctx context.Context) ([]*model.Session, error) {
	sessions, err := collect[*model.Session](ctx, c, "/sessions/?status=completed")
	if err != nil {
		return nil, fmt.Errorf("list completed sessions: %w", err)
	}
	return sessions, nil
}

// BookingRequest - заявка студента на занятие
type BookingRequest struct {
	Tutor    int64     `json:"tutor"`
	DateTime time.Time `json:"date_time"`
	Status   string    `json:"status"`
	Duration string    `json:"duration"` // "HH:MM:SS"
	Notes    string    `json:"notes"`
	Topic    string    `json:"topic"`
	Mode     string    `json:"mode"`
}

// CreateSession отправляет заявку на занятие. Статус всегда pending,
// подтверждает тьютор.
func (c *Client) CreateSession(ctx context.Context, req *BookingRequest) (*model.Session, error) {
	req.Status = string(model.SessionStatusPending)

	var session model.Session
	if err := c.post(ctx, "/sessions/", req, &session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &session, nil
}

// UpdateSessionStatus переводит занятие в новый статус
// (confirmed/rejected - тьютор, cancelled - любая сторона)
func (c *Client) UpdateSessionStatus(ctx context.Context, sessionID int64, status model.SessionStatus) (*model.Session, error) {
	body := map[string]string{"status": string(status)}

	var session model.Session
	path := fmt.Sprintf("/sessions/%d/update_status/", sessionID)
	if err := c.post(ctx, path, body, &session); err != nil {
		return nil, fmt.Errorf("update session %d status: %w", sessionID, err)
	}
	return &session, nil
}

// RescheduleSession предлагает студенту новое время занятия
func (c *Client) RescheduleSession(ctx context.Context, sessionID int64, newDateTime time.Time) (*model.Session, error) {
	body := map[string]string{"date_time": newDateTime.Format(time.RFC3339)}

	var session model.Session
	path := fmt.Sprintf("/sessions/%d/reschedule/", sessionID)
	if err := c.post(ctx, path, body, &session); err != nil {
		return nil, fmt.Errorf("reschedule session %d: %w", sessionID, err)
	}
	return &session, nil
}

// RespondReschedule - ответ студента на перенос: "accept" или "reject".
// Отказ отменяет занятие целиком.
func (c *Client) RespondReschedule(ctx context.Context, sessionID int64, accept bool) (*model.Session, error) {
	response := "reject"
	if accept {
		response = "accept"
	}
	body := map[string]string{"response": response}

	var session model.Session
	path := fmt.Sprintf("/sessions/%d/reschedule_response/", sessionID)
	if err := c.post(ctx, path, body, &session); err != nil {
		return nil, fmt.Errorf("respond to reschedule of session %d: %w", sessionID, err)
	}
	return &session, nil
}
