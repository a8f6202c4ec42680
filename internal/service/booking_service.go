package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/tutorspace/tutorspace_bot/internal/api"
	"github.com/tutorspace/tutorspace_bot/internal/model"
	"github.com/tutorspace/tutorspace_bot/internal/schedule"
	"go.uber.org/zap"
)

// ErrDurationTooLong: выбранная длительность не помещается в слот
var ErrDurationTooLong = errors.New("duration does not fit the slot")

// BookingService - запись на занятия и их жизненный цикл
type BookingService struct {
	auth   ClientProvider
	logger *zap.Logger
}

func NewBookingService(auth ClientProvider, logger *zap.Logger) *BookingService {
	return &BookingService{auth: auth, logger: logger}
}

// AvailableSlots - свободные окна тьютора на ближайший месяц.
// Ошибки загрузки схлопываются в пустой список: для студента это
// "свободного времени нет", детали в логе.
func (s *BookingService) AvailableSlots(ctx context.Context, chatID, tutorID int64) []schedule.Slot {
	client := s.auth.ClientFor(chatID)

	templates, err := client.TutorAvailability(ctx, tutorID)
	if err != nil {
		s.logger.Warn("Failed to load tutor availability",
			zap.Int64("tutor_id", tutorID), zap.Error(err))
		return nil
	}

	sessions, err := client.TutorSessions(ctx, tutorID)
	if err != nil {
		s.logger.Warn("Failed to load tutor sessions",
			zap.Int64("tutor_id", tutorID), zap.Error(err))
		return nil
	}

	return schedule.AvailableForBooking(templates, sessions, time.Now())
}

// BookingForm - заполненная студентом форма записи
type BookingForm struct {
	TutorID  int64
	Slot     schedule.Slot
	Duration string // "HH:MM:SS"
	Topic    string
	Mode     string
	Notes    string
}

// Book отправляет заявку на занятие. Длительность проверяется
// до запроса, сервер перепроверит ещё раз.
func (s *BookingService) Book(ctx context.Context, chatID int64, form *BookingForm) (*model.Session, error) {
	if !schedule.ValidateDuration(form.Slot.TimeStart, form.Slot.TimeEnd, form.Duration) {
		return nil, ErrDurationTooLong
	}

	start, ok := form.Slot.StartAt()
	if !ok {
		return nil, fmt.Errorf("slot %d has malformed time", form.Slot.TemplateID)
	}

	session, err := s.auth.ClientFor(chatID).CreateSession(ctx, &api.BookingRequest{
		Tutor:    form.TutorID,
		DateTime: start,
		Duration: form.Duration,
		Topic:    form.Topic,
		Mode:     form.Mode,
		Notes:    form.Notes,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Session booked",
		zap.Int64("chat_id", chatID),
		zap.Int64("tutor_id", form.TutorID),
		zap.Time("date_time", start))

	return session, nil
}

// SessionList - занятия пользователя, разложенные для показа
type SessionList struct {
	Pending  []*model.Session // ждут ответа
	Upcoming []*model.Session // подтверждённые в будущем
	Past     []*model.Session // завершённые и прочие терминальные
}

// MySessions возвращает занятия чата по группам, в каждой группе
// по возрастанию времени
func (s *BookingService) MySessions(ctx context.Context, chatID int64) (*SessionList, error) {
	sessions, err := s.auth.ClientFor(chatID).Sessions(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].DateTime.Before(sessions[j].DateTime)
	})

	now := time.Now()
	list := &SessionList{}
	for _, session := range sessions {
		switch {
		case session.IsPending():
			list.Pending = append(list.Pending, session)
		case session.IsUpcoming(now):
			list.Upcoming = append(list.Upcoming, session)
		default:
			list.Past = append(list.Past, session)
		}
	}
	return list, nil
}

// Accept подтверждает заявку (только тьютор)
func (s *BookingService) Accept(ctx context.Context, chatID, sessionID int64) (*model.Session, error) {
	return s.auth.ClientFor(chatID).UpdateSessionStatus(ctx, sessionID, model.SessionStatusConfirmed)
}

// Reject отклоняет заявку (только тьютор)
func (s *BookingService) Reject(ctx context.Context, chatID, sessionID int64) (*model.Session, error) {
	return s.auth.ClientFor(chatID).UpdateSessionStatus(ctx, sessionID, model.SessionStatusRejected)
}

// Cancel отменяет занятие (любая сторона)
func (s *BookingService) Cancel(ctx context.Context, chatID, sessionID int64) (*model.Session, error) {
	return s.auth.ClientFor(chatID).UpdateSessionStatus(ctx, sessionID, model.SessionStatusCancelled)
}

// Complete помечает занятие завершённым
func (s *BookingService) Complete(ctx context.Context, chatID, sessionID int64) (*model.Session, error) {
	return s.auth.ClientFor(chatID).UpdateSessionStatus(ctx, sessionID, model.SessionStatusCompleted)
}

// Reschedule предлагает студенту новое время (только тьютор,
// только для подтверждённых занятий)
func (s *BookingService) Reschedule(ctx context.Context, chatID, sessionID int64, newDateTime time.Time) (*model.Session, error) {
	if !newDateTime.After(time.Now()) {
		return nil, fmt.Errorf("cannot reschedule to the past")
	}
	return s.auth.ClientFor(chatID).RescheduleSession(ctx, sessionID, newDateTime)
}

// RespondReschedule - ответ студента на перенос. Отказ отменяет
// занятие целиком.
func (s *BookingService) RespondReschedule(ctx context.Context, chatID, sessionID int64, accept bool) (*model.Session, error) {
	return s.auth.ClientFor(chatID).RespondReschedule(ctx, sessionID, accept)
}
