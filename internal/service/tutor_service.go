package service

import (
	"context"
	"strings"

	"github.com/tutorspace/tutorspace_bot/internal/api"
	"github.com/tutorspace/tutorspace_bot/internal/model"
	"github.com/tutorspace/tutorspace_bot/internal/ranking"
	"go.uber.org/zap"
)

// TutorService - каталог тьюторов: загрузка, обогащение рейтингом,
// фильтрация и сортировка
type TutorService struct {
	auth   ClientProvider
	logger *zap.Logger
}

func NewTutorService(auth ClientProvider, logger *zap.Logger) *TutorService {
	return &TutorService{auth: auth, logger: logger}
}

// Browse возвращает каталог тьюторов, отсортированный по рейтингу.
// Ошибка загрузки каталога отдаётся пустым списком: для пользователя
// это "никого не нашлось", детали в логе.
func (s *TutorService) Browse(ctx context.Context, chatID int64) []*model.TutorProfile {
	client := s.auth.ClientFor(chatID)

	tutors, err := client.Tutors(ctx)
	if err != nil {
		s.logger.Warn("Failed to load tutors catalog", zap.Error(err))
		return nil
	}

	s.enrich(ctx, client, tutors)
	ranking.Rank(tutors)
	return tutors
}

// enrich дотягивает рейтинг из профиля: листинг каталога отдаёт
// урезанные карточки без average_rating. Если и профиль без рейтинга,
// среднее считается по отзывам.
func (s *TutorService) enrich(ctx context.Context, client *api.Client, tutors []*model.TutorProfile) {
	for _, tutor := range tutors {
		if tutor.HasRating() {
			continue
		}

		profile, err := client.ProfileOf(ctx, tutor.Username)
		if err == nil && profile.AverageRating != nil {
			tutor.AverageRating = profile.AverageRating
			tutor.TotalRatings = profile.TotalRatings
			continue
		}

		reviews, err := client.TutorReviews(ctx, tutor.ID)
		if err != nil || len(reviews) == 0 {
			continue
		}
		avg := model.Decimal(model.AverageRating(reviews))
		tutor.AverageRating = &avg
		tutor.TotalRatings = len(reviews)
	}
}

// Filter отбирает тьюторов по подстроке: имя, темы, локация.
// Регистр не учитывается, пустой запрос возвращает всех.
func (s *TutorService) Filter(tutors []*model.TutorProfile, query string) []*model.TutorProfile {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return tutors
	}

	var matched []*model.TutorProfile
	for _, tutor := range tutors {
		if matchesTutor(tutor, query) {
			matched = append(matched, tutor)
		}
	}
	return matched
}

func matchesTutor(t *model.TutorProfile, query string) bool {
	if strings.Contains(strings.ToLower(t.DisplayName()), query) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Username), query) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Location), query) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Bio), query) {
		return true
	}
	if strings.Contains(strings.ToLower(t.LessonDescription), query) {
		return true
	}
	for _, topic := range t.Topics {
		if strings.Contains(strings.ToLower(topic), query) {
			return true
		}
	}
	return false
}

// Details возвращает карточку тьютора: профиль, темы и отзывы
func (s *TutorService) Details(ctx context.Context, chatID, tutorID int64) (*model.TutorProfile, []string, []*model.Review, error) {
	client := s.auth.ClientFor(chatID)

	tutor, err := client.User(ctx, tutorID)
	if err != nil {
		return nil, nil, nil, err
	}

	topics, err := client.UserTopics(ctx, tutorID)
	if err != nil {
		s.logger.Warn("Failed to load tutor topics",
			zap.Int64("tutor_id", tutorID), zap.Error(err))
		topics = nil
	}

	reviews, err := client.TutorReviews(ctx, tutorID)
	if err != nil {
		s.logger.Warn("Failed to load tutor reviews",
			zap.Int64("tutor_id", tutorID), zap.Error(err))
		reviews = nil
	}

	if tutor.AverageRating == nil && len(reviews) > 0 {
		avg := model.Decimal(model.AverageRating(reviews))
		tutor.AverageRating = &avg
		tutor.TotalRatings = len(reviews)
	}

	return tutor, topics, reviews, nil
}
