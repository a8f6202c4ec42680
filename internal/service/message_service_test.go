package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tutorspace/tutorspace_bot/internal/model"
)

func TestMessageDedupeFiltersRepeats(t *testing.T) {
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	dedupe := newMessageDedupe(base)

	first := []*model.Message{
		{ID: 1, Text: "привет", Timestamp: base.Add(time.Second)},
		{ID: 2, Text: "как дела?", Timestamp: base.Add(2 * time.Second)},
	}
	require.Len(t, dedupe.Filter(first), 2)
	assert.Equal(t, base.Add(2*time.Second), dedupe.lastSeen)

	// Повторная выдача на границе since плюс одно новое сообщение
	second := []*model.Message{
		{ID: 2, Text: "как дела?", Timestamp: base.Add(2 * time.Second)},
		{ID: 3, Text: "норм", Timestamp: base.Add(3 * time.Second)},
	}
	fresh := dedupe.Filter(second)
	require.Len(t, fresh, 1)
	assert.Equal(t, int64(3), fresh[0].ID)
}

func TestMessageDedupePrunesOldEntries(t *testing.T) {
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	dedupe := newMessageDedupe(base)

	// Долгая переписка: сообщения приходят по одному раз в минуту
	for i := 0; i < 500; i++ {
		batch := []*model.Message{{
			ID:        int64(i + 1),
			Text:      fmt.Sprintf("сообщение %d", i+1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}}
		require.Len(t, dedupe.Filter(batch), 1)
	}

	// Карта помнит только записи в пределах окна от последнего сообщения
	assert.LessOrEqual(t, len(dedupe.seen), 3)

	// Свежий дубль при этом по-прежнему отсекается
	repeat := []*model.Message{{
		ID:        500,
		Text:      "сообщение 500",
		Timestamp: base.Add(499 * time.Minute),
	}}
	assert.Empty(t, dedupe.Filter(repeat))
}
