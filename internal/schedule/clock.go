package schedule

import (
	"time"

	"github.com/tutorspace/tutorspace_bot/internal/model"
)

// API передаёт время суток строками "HH:MM:SS" (иногда "HH:MM").
// Строки намеренно не валидируются при загрузке: непарсящееся значение
// не ломает отображение, а просто проходит насквозь как текст.

// parseClock разбирает строку времени суток в часы и минуты.
// Секунды игнорируются - слоты задаются с точностью до минуты.
func parseClock(s string) (hour, minute int, ok bool) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Hour(), t.Minute(), true
		}
	}
	return 0, 0, false
}

// clockMinutes возвращает минуты с полуночи
func clockMinutes(s string) (int, bool) {
	h, m, ok := parseClock(s)
	if !ok {
		return 0, false
	}
	return h*60 + m, true
}

// at совмещает календарную дату с временем суток.
// При непарсящемся времени возвращает полночь даты и ok=false.
func at(d model.Date, clock string) (time.Time, bool) {
	h, m, ok := parseClock(clock)
	if !ok {
		return d.Time, false
	}
	return time.Date(d.Year(), d.Month(), d.Day(), h, m, 0, 0, d.Location()), true
}
