package schedule

import (
	"sort"
	"time"

	"github.com/tutorspace/tutorspace_bot/internal/model"
)

// HorizonWeeks - горизонт разворачивания еженедельных шаблонов.
// Студенту показываются ближайшие 4 вхождения каждого шаблона.
const HorizonWeeks = 4

// Slot - конкретное датированное вхождение шаблона доступности.
// Производная величина: живёт один рендер, никогда не сохраняется.
type Slot struct {
	TemplateID int64
	Date       model.Date
	TimeStart  string // "HH:MM:SS"
	TimeEnd    string
	Recurring  bool
}

// StartAt возвращает инстант начала слота
func (s Slot) StartAt() (time.Time, bool) {
	return at(s.Date, s.TimeStart)
}

// EndAt возвращает инстант конца слота
func (s Slot) EndAt() (time.Time, bool) {
	return at(s.Date, s.TimeEnd)
}

// Expand разворачивает шаблоны доступности в конкретные слоты.
//
// Разовые шаблоны дают ровно один слот и отбрасываются, если их дата
// строго раньше сегодняшней. Еженедельные шаблоны дают до HorizonWeeks
// вхождений: дата каждого вычисляется продвижением от "сегодня" до
// ближайшего совпадающего дня недели плюс 0..3 полных недели. Вхождения,
// начало которых уже прошло, отбрасываются.
//
// Порядок результата не определён - сортировка остаётся за вызывающим.
func Expand(templates []*model.AvailabilityTemplate, now time.Time) []Slot {
	today := model.DateOf(now)
	slots := make([]Slot, 0, len(templates))

	for _, tpl := range templates {
		if !tpl.Recurring {
			if tpl.AvailableDate.BeforeDate(today) {
				continue
			}
			slots = append(slots, Slot{
				TemplateID: tpl.ID,
				Date:       tpl.AvailableDate,
				TimeStart:  tpl.TimeStart,
				TimeEnd:    tpl.TimeEnd,
				Recurring:  false,
			})
			continue
		}

		weekday := tpl.AvailableDate.Weekday()
		daysAhead := (int(weekday) - int(now.Weekday()) + 7) % 7

		for week := 0; week < HorizonWeeks; week++ {
			date := today.AddDays(daysAhead + week*7)
			slot := Slot{
				TemplateID: tpl.ID,
				Date:       date,
				TimeStart:  tpl.TimeStart,
				TimeEnd:    tpl.TimeEnd,
				Recurring:  true,
			}
			// Вхождение сегодняшнего дня с уже прошедшим временем не предлагаем.
			// Непарсящееся время не фильтруем - пусть дойдёт до экрана как есть.
			if start, ok := slot.StartAt(); ok && !start.After(now) {
				continue
			}
			slots = append(slots, slot)
		}
	}

	return slots
}

// SortByStart сортирует слоты по возрастанию (дата, время начала)
func SortByStart(slots []Slot) {
	sort.SliceStable(slots, func(i, j int) bool {
		si, _ := slots[i].StartAt()
		sj, _ := slots[j].StartAt()
		return si.Before(sj)
	})
}
