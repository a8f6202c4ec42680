package service

import (
	"context"

	"github.com/tutorspace/tutorspace_bot/internal/model"
	"go.uber.org/zap"
)

// ReviewService - отзывы о тьюторах
type ReviewService struct {
	auth   ClientProvider
	logger *zap.Logger
}

func NewReviewService(auth ClientProvider, logger *zap.Logger) *ReviewService {
	return &ReviewService{auth: auth, logger: logger}
}

// Pending возвращает завершённые занятия, по которым студент ещё
// не оставил отзыв
func (s *ReviewService) Pending(ctx context.Context, chatID int64) ([]*model.Session, error) {
	client := s.auth.ClientFor(chatID)

	completed, err := client.CompletedSessions(ctx)
	if err != nil {
		return nil, err
	}

	var pending []*model.Session
	for _, session := range completed {
		exists, _, err := client.ReviewExists(ctx, session.ID)
		if err != nil {
			s.logger.Warn("Failed to check review",
				zap.Int64("session_id", session.ID), zap.Error(err))
			continue
		}
		if !exists {
			pending = append(pending, session)
		}
	}
	return pending, nil
}

// Submit отправляет отзыв о завершённом занятии, rating 1-5
func (s *ReviewService) Submit(ctx context.Context, chatID, sessionID int64, rating int, comment string) error {
	if err := s.auth.ClientFor(chatID).SubmitReview(ctx, sessionID, rating, comment); err != nil {
		return err
	}

	s.logger.Info("Review submitted",
		zap.Int64("chat_id", chatID),
		zap.Int64("session_id", sessionID),
		zap.Int("rating", rating))

	return nil
}

// OfTutor - отзывы о тьюторе
func (s *ReviewService) OfTutor(ctx context.Context, chatID, tutorID int64) ([]*model.Review, error) {
	return s.auth.ClientFor(chatID).TutorReviews(ctx, tutorID)
}

// ReviewedTutors - id тьюторов, которым уже оставлен отзыв
func (s *ReviewService) ReviewedTutors(ctx context.Context, chatID int64) ([]int64, error) {
	return s.auth.ClientFor(chatID).ReviewedTutors(ctx)
}
