package service

import (
	"context"
	"errors"
	"time"

	"github.com/tutorspace/tutorspace_bot/internal/api"
	"github.com/tutorspace/tutorspace_bot/internal/model"
	"github.com/tutorspace/tutorspace_bot/internal/schedule"
	"go.uber.org/zap"
)

// ErrSlotHasSessions: слот нельзя удалить, пока на него записаны занятия
var ErrSlotHasSessions = errors.New("slot has booked sessions")

// AvailabilityService - управление расписанием тьютора
type AvailabilityService struct {
	auth   ClientProvider
	logger *zap.Logger
}

func NewAvailabilityService(auth ClientProvider, logger *zap.Logger) *AvailabilityService {
	return &AvailabilityService{auth: auth, logger: logger}
}

// My возвращает актуальные слоты тьютора, сгруппированные по неделям.
// limitWeeks > 0 обрезает хвост (профиль показывает месяц,
// полная страница расписания - всё).
func (s *AvailabilityService) My(ctx context.Context, chatID int64, limitWeeks int) (schedule.GroupedAvailability, error) {
	templates, err := s.auth.ClientFor(chatID).MyAvailability(ctx)
	if err != nil {
		return schedule.GroupedAvailability{}, err
	}

	current := schedule.FilterCurrentAndFuture(templates, time.Now())
	return schedule.GroupByWeek(current, limitWeeks), nil
}

// OfTutor - слоты произвольного тьютора для карточки профиля
func (s *AvailabilityService) OfTutor(ctx context.Context, chatID, tutorID int64, limitWeeks int) (schedule.GroupedAvailability, error) {
	templates, err := s.auth.ClientFor(chatID).TutorAvailability(ctx, tutorID)
	if err != nil {
		return schedule.GroupedAvailability{}, err
	}

	current := schedule.FilterCurrentAndFuture(templates, time.Now())
	return schedule.GroupByWeek(current, limitWeeks), nil
}

// Create добавляет слот в расписание
func (s *AvailabilityService) Create(ctx context.Context, chatID int64, date model.Date, timeStart, timeEnd string, recurring bool) ([]*model.AvailabilityTemplate, error) {
	created, err := s.auth.ClientFor(chatID).CreateAvailability(ctx, &api.NewAvailability{
		AvailableDate: date,
		TimeStart:     timeStart,
		TimeEnd:       timeEnd,
		Recurring:     recurring,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Availability created",
		zap.Int64("chat_id", chatID),
		zap.String("date", date.String()),
		zap.Bool("recurring", recurring))

	return created, nil
}

// Delete удаляет слот. Слот с записанными занятиями не удаляется:
// сначала тьютор разбирается с занятиями.
func (s *AvailabilityService) Delete(ctx context.Context, chatID int64, template *model.AvailabilityTemplate) error {
	client := s.auth.ClientFor(chatID)

	account, err := s.auth.Account(ctx, chatID)
	if err != nil {
		return err
	}

	sessions, err := client.TutorSessions(ctx, account.UserID)
	if err != nil {
		return err
	}
	if schedule.TemplateHasBookedSessions(template, sessions) {
		return ErrSlotHasSessions
	}

	if err := client.DeleteAvailability(ctx, template.ID); err != nil {
		return err
	}

	s.logger.Info("Availability deleted",
		zap.Int64("chat_id", chatID),
		zap.Int64("template_id", template.ID))

	return nil
}
