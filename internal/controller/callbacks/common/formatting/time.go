package formatting

import (
	"fmt"
	"strings"
	"time"
)

// FormatDateTime форматирует дату и время
func FormatDateTime(t time.Time) string {
	return t.Format("02.01.2006 15:04")
}

// FormatDate форматирует только дату
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// FormatDateWithWeekday форматирует дату с днём недели
func FormatDateWithWeekday(t time.Time) string {
	return fmt.Sprintf("%s (%s)", t.Format("02.01.2006"), GetWeekdayName(int(t.Weekday())))
}

// FormatTime форматирует только время
func FormatTime(t time.Time) string {
	return t.Format("15:04")
}

// FormatClock обрезает "09:00:00" до "09:00".
// Непарсящееся значение возвращается как есть.
func FormatClock(clock string) string {
	if len(clock) == 8 && strings.Count(clock, ":") == 2 {
		return clock[:5]
	}
	return clock
}

// FormatClockRange форматирует диапазон времени суток
func FormatClockRange(start, end string) string {
	return fmt.Sprintf("%s-%s", FormatClock(start), FormatClock(end))
}

// FormatDuration переводит "HH:MM:SS" в человекочитаемый вид
func FormatDuration(duration string) string {
	parts := strings.Split(duration, ":")
	if len(parts) < 2 {
		return duration
	}
	hours, minutes := parts[0], parts[1]

	h := strings.TrimPrefix(hours, "0")
	if h == "" {
		h = "0"
	}
	if minutes == "00" {
		return fmt.Sprintf("%s ч", h)
	}
	if h == "0" {
		return fmt.Sprintf("%s мин", minutes)
	}
	return fmt.Sprintf("%s ч %s мин", h, minutes)
}

// GetWeekdayName возвращает название дня недели на русском
func GetWeekdayName(weekday int) string {
	names := []string{
		"Воскресенье",
		"Понедельник",
		"Вторник",
		"Среда",
		"Четверг",
		"Пятница",
		"Суббота",
	}
	if weekday >= 0 && weekday < len(names) {
		return names[weekday]
	}
	return "Неизвестно"
}
