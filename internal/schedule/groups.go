package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/tutorspace/tutorspace_bot/internal/model"
)

// WeekGroup - слоты одной календарной недели (якорь - понедельник)
type WeekGroup struct {
	WeekRange string // "Jan 6 - Jan 12"
	WeekStart model.Date
	Slots     []*model.AvailabilityTemplate
}

// GroupedAvailability - разбиение доступности для отображения
type GroupedAvailability struct {
	Recurring []*model.AvailabilityTemplate
	Weeks     []WeekGroup
}

// weekStartOf возвращает понедельник недели, содержащей дату
func weekStartOf(d model.Date) model.Date {
	daysSinceMonday := (int(d.Weekday()) + 6) % 7
	return d.AddDays(-daysSinceMonday)
}

// weekRangeLabel форматирует диапазон недели: "Jan 6 - Jan 12"
func weekRangeLabel(weekStart model.Date) string {
	weekEnd := weekStart.AddDays(6)
	return fmt.Sprintf("%s - %s", weekStart.Format("Jan 2"), weekEnd.Format("Jan 2"))
}

// GroupByWeek раскладывает доступность для отображения: еженедельные
// шаблоны отдельной секцией в исходном порядке, разовые - по календарным
// неделям, отсортированным по возрастанию. Внутри недели порядок вставки.
//
// limitWeeks > 0 ограничивает выдачу первыми limitWeeks неделями
// (страница профиля); 0 - без ограничения (кабинет тьютора).
//
// Функция чистая: два вызова на одном входе дают одинаковый результат.
func GroupByWeek(availabilities []*model.AvailabilityTemplate, limitWeeks int) GroupedAvailability {
	var grouped GroupedAvailability

	byWeek := make(map[string]*WeekGroup)
	for _, tpl := range availabilities {
		if tpl.Recurring {
			grouped.Recurring = append(grouped.Recurring, tpl)
			continue
		}

		weekStart := weekStartOf(tpl.AvailableDate)
		key := weekStart.String()
		group, ok := byWeek[key]
		if !ok {
			group = &WeekGroup{
				WeekRange: weekRangeLabel(weekStart),
				WeekStart: weekStart,
			}
			byWeek[key] = group
		}
		group.Slots = append(group.Slots, tpl)
	}

	weeks := make([]WeekGroup, 0, len(byWeek))
	for _, group := range byWeek {
		weeks = append(weeks, *group)
	}
	sort.Slice(weeks, func(i, j int) bool {
		return weeks[i].WeekStart.Time.Before(weeks[j].WeekStart.Time)
	})

	if limitWeeks > 0 && len(weeks) > limitWeeks {
		weeks = weeks[:limitWeeks]
	}
	grouped.Weeks = weeks

	return grouped
}

// IsTemplatePast: разовое окно на прошедшую дату.
// Еженедельные шаблоны прошедшими не бывают.
func IsTemplatePast(tpl *model.AvailabilityTemplate, now time.Time) bool {
	if tpl.Recurring {
		return false
	}
	return tpl.AvailableDate.BeforeDate(model.DateOf(now))
}

// FilterCurrentAndFuture отбрасывает окна на прошедшие даты
func FilterCurrentAndFuture(availabilities []*model.AvailabilityTemplate, now time.Time) []*model.AvailabilityTemplate {
	current := make([]*model.AvailabilityTemplate, 0, len(availabilities))
	for _, tpl := range availabilities {
		if !IsTemplatePast(tpl, now) {
			current = append(current, tpl)
		}
	}
	return current
}
