package app

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// PollerConfig - интервалы адаптивного опроса.
// Пока собеседник пишет, опрашиваем чаще, в тишине - реже.
type PollerConfig struct {
	Initial time.Duration // стартовый интервал
	Min     time.Duration // нижняя граница
	Max     time.Duration // верхняя граница
	Shrink  time.Duration // насколько ускоряемся при новых сообщениях
	Grow    time.Duration // насколько замедляемся без новых
}

// DefaultPollerConfig - интервалы по умолчанию: старт 5с, диапазон 1-10с
func DefaultPollerConfig() PollerConfig {
	return PollerConfig{
		Initial: 5 * time.Second,
		Min:     time.Second,
		Max:     10 * time.Second,
		Shrink:  time.Second,
		Grow:    500 * time.Millisecond,
	}
}

// normalize подставляет дефолты вместо нулевых полей
func (c PollerConfig) normalize() PollerConfig {
	def := DefaultPollerConfig()
	if c.Initial <= 0 {
		c.Initial = def.Initial
	}
	if c.Min <= 0 {
		c.Min = def.Min
	}
	if c.Max <= 0 {
		c.Max = def.Max
	}
	if c.Shrink <= 0 {
		c.Shrink = def.Shrink
	}
	if c.Grow <= 0 {
		c.Grow = def.Grow
	}
	return c
}

// Poller периодически дёргает fetch и подстраивает интервал под
// активность: каждое срабатывание с новыми элементами ускоряет опрос,
// каждое пустое - замедляет. Один Poller обслуживает один открытый чат.
type Poller struct {
	cfg    PollerConfig
	logger *zap.Logger
}

// NewPoller создаёт поллер с заданными интервалами
func NewPoller(cfg PollerConfig, logger *zap.Logger) *Poller {
	return &Poller{cfg: cfg.normalize(), logger: logger}
}

// Run опрашивает fetch до отмены контекста. fetch возвращает число
// новых элементов; ошибки логируются и не останавливают цикл.
// Блокирует вызывающую горутину.
func (p *Poller) Run(ctx context.Context, fetch func(context.Context) (int, error)) {
	interval := p.cfg.Initial

	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		fresh, err := fetch(ctx)
		switch {
		case ctx.Err() != nil:
			return
		case err != nil:
			// Интервал при ошибке не трогаем, следующий тик через тот же срок
			p.logger.Warn("Poll tick failed", zap.Error(err))
		default:
			interval = p.cfg.NextInterval(interval, fresh)
		}

		timer.Reset(interval)
	}
}

// NextInterval - чистый шаг адаптации интервала, вынесен для тестов
func (c PollerConfig) NextInterval(current time.Duration, fresh int) time.Duration {
	cfg := c.normalize()
	if fresh > 0 {
		current -= cfg.Shrink
		if current < cfg.Min {
			current = cfg.Min
		}
		return current
	}
	current += cfg.Grow
	if current > cfg.Max {
		current = cfg.Max
	}
	return current
}
