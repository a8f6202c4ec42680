package formatting

import (
	"fmt"
	"strings"

	"github.com/tutorspace/tutorspace_bot/internal/model"
	"github.com/tutorspace/tutorspace_bot/internal/schedule"
)

// FormatTutorCard форматирует карточку тьютора для страницы профиля
func FormatTutorCard(tutor *model.TutorProfile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "👨‍🏫 <b>%s</b>\n\n", tutor.DisplayName())

	if tutor.HasRating() {
		fmt.Fprintf(&b, "⭐ Рейтинг: %.1f (%d %s)\n",
			tutor.Rating(), tutor.TotalRatings, PluralizeReviews(tutor.TotalRatings))
	} else {
		b.WriteString("⭐ Рейтинг: пока нет отзывов\n")
	}

	fmt.Fprintf(&b, "💰 Ставка: %s\n", FormatRate(tutor.HourlyRate))
	fmt.Fprintf(&b, "📚 Формат: %s\n", GetModeDisplay(tutor.PreferredMode))

	if tutor.Location != "" {
		fmt.Fprintf(&b, "📍 Город: %s\n", tutor.Location)
	}
	if len(tutor.Topics) > 0 {
		fmt.Fprintf(&b, "🏷 Темы: %s\n", strings.Join(tutor.Topics, ", "))
	}
	if tutor.Bio != "" {
		fmt.Fprintf(&b, "\n📝 О себе: %s\n", tutor.Bio)
	}
	if tutor.LessonDescription != "" {
		fmt.Fprintf(&b, "\n🎓 О занятиях: %s\n", tutor.LessonDescription)
	}

	return strings.TrimRight(b.String(), "\n")
}

// FormatTutorShort форматирует строку тьютора в каталоге
func FormatTutorShort(tutor *model.TutorProfile, index int) string {
	rating := "без отзывов"
	if tutor.HasRating() {
		rating = fmt.Sprintf("⭐ %.1f", tutor.Rating())
	}

	topics := ""
	if len(tutor.Topics) > 0 {
		topics = fmt.Sprintf("\n   🏷 %s", strings.Join(tutor.Topics, ", "))
	}

	return fmt.Sprintf(
		"%d. <b>%s</b>\n"+
			"   %s | 💰 %s%s",
		index,
		tutor.DisplayName(),
		rating,
		FormatRate(tutor.HourlyRate),
		topics,
	)
}

// FormatSessionInfo форматирует информацию о занятии.
// forTutor определяет чьё имя показывать в строке собеседника.
func FormatSessionInfo(session *model.Session, forTutor bool) string {
	statusDisplay := GetSessionStatusDisplay(session.Status)

	counterpartLabel := "Тьютор"
	counterpartName := session.TutorName
	if forTutor {
		counterpartLabel = "Студент"
		counterpartName = session.StudentName
	}

	text := fmt.Sprintf(
		"%s <b>Занятие #%d</b>\n\n"+
			"👤 %s: %s\n"+
			"📅 Дата: %s\n"+
			"🕐 Время: %s\n"+
			"⏱ Длительность: %s\n"+
			"📊 Статус: %s",
		statusDisplay.Emoji,
		session.ID,
		counterpartLabel,
		counterpartName,
		FormatDateWithWeekday(session.DateTime),
		FormatTime(session.DateTime),
		FormatDuration(session.Duration),
		statusDisplay.Text,
	)

	if session.Topic != "" {
		text += fmt.Sprintf("\n🏷 Тема: %s", session.Topic)
	}
	if session.Mode != "" {
		text += fmt.Sprintf("\n📚 Формат: %s", GetModeDisplay(session.Mode))
	}
	if session.Notes != "" {
		text += fmt.Sprintf("\n📝 Заметки: %s", session.Notes)
	}

	return text
}

// FormatSessionShort форматирует занятие одной строкой для списков
func FormatSessionShort(session *model.Session, forTutor bool) string {
	statusDisplay := GetSessionStatusDisplay(session.Status)
	name := session.TutorName
	if forTutor {
		name = session.StudentName
	}
	return fmt.Sprintf("%s %s %s, %s",
		statusDisplay.Emoji,
		FormatDateTime(session.DateTime),
		name,
		FormatDuration(session.Duration),
	)
}

// FormatTemplateLine форматирует шаблон доступности одной строкой
func FormatTemplateLine(tpl *model.AvailabilityTemplate) string {
	timeRange := FormatClockRange(tpl.TimeStart, tpl.TimeEnd)
	if tpl.Recurring {
		return fmt.Sprintf("🔁 %s %s", everyWeekday(int(tpl.AvailableDate.Weekday())), timeRange)
	}
	return fmt.Sprintf("📅 %s %s", FormatDateWithWeekday(tpl.AvailableDate.Time), timeRange)
}

// FormatSlotLine форматирует развёрнутое окно доступности
func FormatSlotLine(slot schedule.Slot) string {
	return fmt.Sprintf("📅 %s %s",
		FormatDateWithWeekday(slot.Date.Time),
		FormatClockRange(slot.TimeStart, slot.TimeEnd),
	)
}

// FormatAvailability рендерит сгруппированную доступность: секция
// еженедельных шаблонов, затем недели по порядку.
func FormatAvailability(grouped schedule.GroupedAvailability) string {
	var b strings.Builder

	if len(grouped.Recurring) > 0 {
		b.WriteString("<b>🔁 Еженедельно</b>\n")
		for _, tpl := range grouped.Recurring {
			fmt.Fprintf(&b, "  %s %s\n",
				weekdayAccusativeShort(int(tpl.AvailableDate.Weekday())),
				FormatClockRange(tpl.TimeStart, tpl.TimeEnd))
		}
		b.WriteString("\n")
	}

	for _, week := range grouped.Weeks {
		fmt.Fprintf(&b, "<b>📆 %s</b>\n", week.WeekRange)
		for _, tpl := range week.Slots {
			fmt.Fprintf(&b, "  %s %s\n",
				tpl.AvailableDate.Format("02.01"),
				FormatClockRange(tpl.TimeStart, tpl.TimeEnd))
		}
		b.WriteString("\n")
	}

	if b.Len() == 0 {
		return "Свободных окон нет"
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatNotification форматирует уведомление для списка
func FormatNotification(n *model.Notification) string {
	emoji := notificationEmoji(n.Type)
	marker := ""
	if !n.IsRead {
		marker = " 🔵"
	}
	return fmt.Sprintf("%s <b>%s</b>%s\n%s\n<i>%s</i>",
		emoji, n.Title, marker, n.Message, FormatDateTime(n.CreatedAt))
}

// FormatReview форматирует отзыв о тьюторе
func FormatReview(r *model.Review) string {
	stars := strings.Repeat("⭐", r.Rating)
	text := fmt.Sprintf("%s <b>%s</b>\n<i>%s</i>", stars, r.StudentName, FormatDate(r.CreatedAt))
	if r.Comment != "" {
		text += "\n" + r.Comment
	}
	return text
}

// FormatConversation форматирует переписку в списке диалогов
func FormatConversation(c *model.Conversation, index int) string {
	unread := ""
	if c.UnreadCount > 0 {
		unread = fmt.Sprintf(" (🔵 %d)", c.UnreadCount)
	}
	preview := ""
	if c.LastMessage != nil {
		text := c.LastMessage.Text
		if len([]rune(text)) > 40 {
			text = string([]rune(text)[:40]) + "…"
		}
		preview = fmt.Sprintf("\n   %s", text)
	}
	return fmt.Sprintf("%d. <b>%s</b>%s%s", index, c.User.DisplayName(), unread, preview)
}

func notificationEmoji(notificationType string) string {
	switch notificationType {
	case model.NotificationBookingRequest:
		return "📩"
	case model.NotificationBookingResponse:
		return "📬"
	case model.NotificationSessionCancelled:
		return "❌"
	case model.NotificationSessionRescheduled, model.NotificationRescheduleAccepted, model.NotificationRescheduleRejected:
		return "🔄"
	case model.NotificationSessionReminder:
		return "⏰"
	case model.NotificationSessionCompleted:
		return "✔️"
	case model.NotificationNewReview:
		return "⭐"
	}
	return "🔔"
}

// everyWeekday: "Каждый понедельник", "Каждую среду"
func everyWeekday(weekday int) string {
	names := []string{
		"Каждое воскресенье",
		"Каждый понедельник",
		"Каждый вторник",
		"Каждую среду",
		"Каждый четверг",
		"Каждую пятницу",
		"Каждую субботу",
	}
	if weekday >= 0 && weekday < len(names) {
		return names[weekday]
	}
	return "Еженедельно"
}

func weekdayAccusativeShort(weekday int) string {
	names := []string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}
	if weekday >= 0 && weekday < len(names) {
		return names[weekday]
	}
	return "?"
}
