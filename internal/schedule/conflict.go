package schedule

import (
	"time"

	"github.com/tutorspace/tutorspace_bot/internal/model"
)

// Занятые слоты. Занятие блокирует слот, только если оно активно:
// отменённые и отклонённые занятия слот не потребляют - независимо от
// пересечения по времени.

// slotTaken: начало занятия попадает в полуинтервал [start, end) слота
func slotTaken(slot Slot, sessions []*model.Session) bool {
	start, okStart := slot.StartAt()
	end, okEnd := slot.EndAt()
	if !okStart || !okEnd {
		return false
	}
	for _, s := range sessions {
		if !s.IsActive() {
			continue
		}
		// Полуинтервалы: [start,end) пересекает начало занятия iff start <= t < end
		if !s.DateTime.Before(start) && s.DateTime.Before(end) {
			return true
		}
	}
	return false
}

// FilterBooked убирает слоты, занятые активными занятиями.
// Слот не дробится: либо доступен целиком, либо занят целиком.
func FilterBooked(slots []Slot, sessions []*model.Session) []Slot {
	free := make([]Slot, 0, len(slots))
	for _, slot := range slots {
		if !slotTaken(slot, sessions) {
			free = append(free, slot)
		}
	}
	return free
}

// AvailableForBooking - слоты, которые можно предложить студенту:
// развёрнутые шаблоны минус прошедшие минус занятые, по возрастанию начала.
func AvailableForBooking(templates []*model.AvailabilityTemplate, sessions []*model.Session, now time.Time) []Slot {
	var future []Slot
	for _, slot := range Expand(templates, now) {
		if start, ok := slot.StartAt(); ok && !start.After(now) {
			continue
		}
		future = append(future, slot)
	}
	free := FilterBooked(future, sessions)
	SortByStart(free)
	return free
}

// TemplateHasBookedSessions - проверка тьюторской стороны перед удалением
// шаблона: было ли это окно когда-либо занято.
//
// Для еженедельных шаблонов проверка нарочно грубая - по дню недели и
// часу начала занятия в [startHour, endHour), без минут. Так ведёт себя
// продукт; не ужесточать до минутной точности.
func TemplateHasBookedSessions(tpl *model.AvailabilityTemplate, sessions []*model.Session) bool {
	if tpl.Recurring {
		startHour, _, okStart := parseClock(tpl.TimeStart)
		endHour, _, okEnd := parseClock(tpl.TimeEnd)
		if !okStart || !okEnd {
			return false
		}
		weekday := tpl.AvailableDate.Weekday()
		for _, s := range sessions {
			if !s.IsActive() {
				continue
			}
			if s.DateTime.Weekday() == weekday &&
				s.DateTime.Hour() >= startHour && s.DateTime.Hour() < endHour {
				return true
			}
		}
		return false
	}

	slot := Slot{
		Date:      tpl.AvailableDate,
		TimeStart: tpl.TimeStart,
		TimeEnd:   tpl.TimeEnd,
	}
	return slotTaken(slot, sessions)
}
