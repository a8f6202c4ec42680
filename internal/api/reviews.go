package api

import (
	"context"
	"fmt"

	"github.com/tutorspace/tutorspace_bot/internal/model"
)

// TutorReviews - отзывы о тьюторе
func (c *Client) TutorReviews(ctx context.Context, tutorID int64) ([]*model.Review, error) {
	path := fmt.Sprintf("/reviews/%d/", tutorID)
	reviews, err := collect[*model.Review](ctx, c, path)
	if err != nil {
		return nil, fmt.Errorf("list reviews of tutor %d: %w", tutorID, err)
	}
	return reviews, nil
}

// ReviewExists проверяет, оставлен ли уже отзыв по занятию
func (c *Client) ReviewExists(ctx context.Context, sessionID int64) (bool, *model.Review, error) {
	var payload struct {
		Exists bool          `json:"exists"`
		Review *model.Review `json:"review"`
	}
	path := fmt.Sprintf("/reviews/check/%d/", sessionID)
	if err := c.get(ctx, path, &payload); err != nil {
		return false, nil, fmt.Errorf("check review for session %d: %w", sessionID, err)
	}
	return payload.Exists, payload.Review, nil
}

// ReviewedTutors - id тьюторов, которым пользователь уже оставил отзыв
func (c *Client) ReviewedTutors(ctx context.Context) ([]int64, error) {
	var payload struct {
		TutorIDs []int64 `json:"tutor_ids"`
	}
	if err := c.get(ctx, "/reviews/reviewed-tutors/", &payload); err != nil {
		return nil, fmt.Errorf("list reviewed tutors: %w", err)
	}
	return payload.TutorIDs, nil
}

// SubmitReview отправляет отзыв о завершённом занятии
func (c *Client) SubmitReview(ctx context.Context, sessionID int64, rating int, comment string) error {
	body := map[string]interface{}{
		"session_id": sessionID,
		"rating":     rating,
		"comment":    comment,
	}
	if err := c.post(ctx, "/submit-review/", body, nil); err != nil {
		return fmt.Errorf("submit review for session %d: %w", sessionID, err)
	}
	return nil
}
