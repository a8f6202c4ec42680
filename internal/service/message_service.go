package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tutorspace/tutorspace_bot/internal/app"
	"github.com/tutorspace/tutorspace_bot/internal/model"
	"go.uber.org/zap"
)

// MessageService - переписка с пользователями маркетплейса.
// Для открытого чата держит фоновый поллер новых сообщений.
type MessageService struct {
	auth    ClientProvider
	pollCfg app.PollerConfig
	logger  *zap.Logger

	mu       sync.Mutex
	watchers map[int64]context.CancelFunc // по chat_id, на чат один поллер
}

func NewMessageService(auth ClientProvider, pollCfg app.PollerConfig, logger *zap.Logger) *MessageService {
	return &MessageService{
		auth:     auth,
		pollCfg:  pollCfg,
		logger:   logger,
		watchers: make(map[int64]context.CancelFunc),
	}
}

// Conversations - список переписок, свежие сверху
func (s *MessageService) Conversations(ctx context.Context, chatID int64) ([]*model.Conversation, error) {
	conversations, err := s.auth.ClientFor(chatID).Conversations(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(conversations, func(i, j int) bool {
		a, b := conversations[i].LastMessage, conversations[j].LastMessage
		if a == nil || b == nil {
			return b == nil && a != nil
		}
		return a.Timestamp.After(b.Timestamp)
	})
	return conversations, nil
}

// History - вся переписка с собеседником по возрастанию времени
func (s *MessageService) History(ctx context.Context, chatID, userID int64) ([]*model.Message, error) {
	messages, err := s.auth.ClientFor(chatID).MessagesWith(ctx, userID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Timestamp.Before(messages[j].Timestamp)
	})
	return messages, nil
}

// Send отправляет сообщение собеседнику
func (s *MessageService) Send(ctx context.Context, chatID, userID int64, text string) (*model.Message, error) {
	return s.auth.ClientFor(chatID).SendMessage(ctx, userID, text)
}

// MarkRead помечает прочитанной переписку с отправителем
func (s *MessageService) MarkRead(ctx context.Context, chatID, senderID int64) error {
	return s.auth.ClientFor(chatID).MarkRead(ctx, senderID)
}

// Unread - общее число непрочитанных сообщений
func (s *MessageService) Unread(ctx context.Context, chatID int64) (int, error) {
	return s.auth.ClientFor(chatID).UnreadCount(ctx)
}

// Watch запускает опрос новых сообщений открытой переписки.
// Повторный Watch того же чата сначала останавливает предыдущий
// поллер: в чате открыта ровно одна переписка.
func (s *MessageService) Watch(ctx context.Context, chatID, userID int64, since time.Time, onNew func([]*model.Message)) {
	s.StopWatch(chatID)

	watchCtx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.watchers[chatID] = cancel
	s.mu.Unlock()

	client := s.auth.ClientFor(chatID)
	poller := app.NewPoller(s.pollCfg, s.logger)
	dedupe := newMessageDedupe(since)

	go poller.Run(watchCtx, func(ctx context.Context) (int, error) {
		messages, err := client.MessagesSince(ctx, userID, dedupe.lastSeen)
		if err != nil {
			return 0, err
		}

		fresh := dedupe.Filter(messages)
		if len(fresh) > 0 {
			onNew(fresh)
		}
		return len(fresh), nil
	})

	s.logger.Debug("Conversation watch started",
		zap.Int64("chat_id", chatID),
		zap.Int64("user_id", userID))
}

// Дубли возможны только на границе since, долго помнить id незачем
const dedupeRetention = time.Minute

// messageDedupe отсекает сообщения, уже отданные подписчику
type messageDedupe struct {
	lastSeen time.Time
	seen     map[int64]time.Time
}

func newMessageDedupe(since time.Time) *messageDedupe {
	return &messageDedupe{
		lastSeen: since,
		seen:     make(map[int64]time.Time),
	}
}

// Filter возвращает ещё не виденные сообщения и чистит устаревшие
// записи, чтобы карта не росла за время долгой переписки
func (d *messageDedupe) Filter(messages []*model.Message) []*model.Message {
	var fresh []*model.Message
	for _, m := range messages {
		if _, ok := d.seen[m.ID]; ok {
			continue
		}
		d.seen[m.ID] = m.Timestamp
		fresh = append(fresh, m)
		if m.Timestamp.After(d.lastSeen) {
			d.lastSeen = m.Timestamp
		}
	}

	cutoff := d.lastSeen.Add(-dedupeRetention)
	for id, ts := range d.seen {
		if ts.Before(cutoff) {
			delete(d.seen, id)
		}
	}
	return fresh
}

// StopWatch останавливает поллер чата, если он запущен
func (s *MessageService) StopWatch(chatID int64) {
	s.mu.Lock()
	cancel, ok := s.watchers[chatID]
	if ok {
		delete(s.watchers, chatID)
	}
	s.mu.Unlock()

	if ok {
		cancel()
	}
}

// StopAll останавливает все поллеры, вызывается при остановке бота
func (s *MessageService) StopAll() {
	s.mu.Lock()
	watchers := s.watchers
	s.watchers = make(map[int64]context.CancelFunc)
	s.mu.Unlock()

	for _, cancel := range watchers {
		cancel()
	}
}
