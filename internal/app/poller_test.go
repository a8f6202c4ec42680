package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNextIntervalShrinksOnActivity(t *testing.T) {
	cfg := DefaultPollerConfig()

	got := cfg.NextInterval(5*time.Second, 3)
	assert.Equal(t, 4*time.Second, got)

	// Не опускается ниже минимума
	got = cfg.NextInterval(1500*time.Millisecond, 1)
	assert.Equal(t, time.Second, got)
	got = cfg.NextInterval(time.Second, 1)
	assert.Equal(t, time.Second, got)
}

func TestNextIntervalGrowsOnSilence(t *testing.T) {
	cfg := DefaultPollerConfig()

	got := cfg.NextInterval(5*time.Second, 0)
	assert.Equal(t, 5500*time.Millisecond, got)

	// Потолок 10 секунд
	got = cfg.NextInterval(9800*time.Millisecond, 0)
	assert.Equal(t, 10*time.Second, got)
	got = cfg.NextInterval(10*time.Second, 0)
	assert.Equal(t, 10*time.Second, got)
}

func TestNormalizeFillsDefaults(t *testing.T) {
	cfg := PollerConfig{Initial: 2 * time.Second}.normalize()

	assert.Equal(t, 2*time.Second, cfg.Initial)
	assert.Equal(t, time.Second, cfg.Min)
	assert.Equal(t, 10*time.Second, cfg.Max)
	assert.Equal(t, time.Second, cfg.Shrink)
	assert.Equal(t, 500*time.Millisecond, cfg.Grow)
}

func TestPollerRunStopsOnCancel(t *testing.T) {
	cfg := PollerConfig{
		Initial: time.Millisecond,
		Min:     time.Millisecond,
		Max:     5 * time.Millisecond,
		Shrink:  time.Millisecond,
		Grow:    time.Millisecond,
	}
	poller := NewPoller(cfg, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	ticks := make(chan struct{}, 64)

	done := make(chan struct{})
	go func() {
		defer close(done)
		poller.Run(ctx, func(context.Context) (int, error) {
			select {
			case ticks <- struct{}{}:
			default:
			}
			return 0, nil
		})
	}()

	// Дожидаемся нескольких тиков, затем гасим
	for i := 0; i < 3; i++ {
		select {
		case <-ticks:
		case <-time.After(time.Second):
			t.Fatal("poller did not tick in time")
		}
	}
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop after cancel")
	}
}
