package formatting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tutorspace/tutorspace_bot/internal/model"
	"github.com/tutorspace/tutorspace_bot/internal/schedule"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		duration string
		expected string
	}{
		{"01:00:00", "1 ч"},
		{"01:30:00", "1 ч 30 мин"},
		{"00:45:00", "45 мин"},
		{"02:00:00", "2 ч"},
		{"плохое", "плохое"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatDuration(tt.duration))
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "09:00", FormatClock("09:00:00"))
	assert.Equal(t, "14:30", FormatClock("14:30"))
	assert.Equal(t, "09:00-11:00", FormatClockRange("09:00:00", "11:00:00"))
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "ставка не указана", FormatRate(nil))

	whole := model.Decimal(25)
	assert.Equal(t, "25 $/ч", FormatRate(&whole))

	fractional := model.Decimal(19.5)
	assert.Equal(t, "19.50 $/ч", FormatRate(&fractional))
}

func TestPluralizeReviews(t *testing.T) {
	assert.Equal(t, "отзыв", PluralizeReviews(1))
	assert.Equal(t, "отзыва", PluralizeReviews(3))
	assert.Equal(t, "отзывов", PluralizeReviews(5))
	assert.Equal(t, "отзывов", PluralizeReviews(11))
	assert.Equal(t, "отзыв", PluralizeReviews(21))
}

func TestFormatTemplateLine(t *testing.T) {
	recurring := &model.AvailabilityTemplate{
		AvailableDate: model.NewDate(2025, time.January, 8, time.Local), // среда
		TimeStart:     "09:00:00",
		TimeEnd:       "11:00:00",
		Recurring:     true,
	}
	assert.Equal(t, "🔁 Каждую среду 09:00-11:00", FormatTemplateLine(recurring))

	oneOff := &model.AvailabilityTemplate{
		AvailableDate: model.NewDate(2025, time.January, 10, time.Local),
		TimeStart:     "14:00:00",
		TimeEnd:       "16:00:00",
	}
	assert.Equal(t, "📅 10.01.2025 (Пятница) 14:00-16:00", FormatTemplateLine(oneOff))
}

func TestFormatAvailability(t *testing.T) {
	templates := []*model.AvailabilityTemplate{
		{
			ID:            1,
			AvailableDate: model.NewDate(2025, time.January, 6, time.Local),
			TimeStart:     "09:00:00",
			TimeEnd:       "11:00:00",
			Recurring:     true,
		},
		{
			ID:            2,
			AvailableDate: model.NewDate(2025, time.January, 10, time.Local),
			TimeStart:     "14:00:00",
			TimeEnd:       "16:00:00",
		},
	}

	text := FormatAvailability(schedule.GroupByWeek(templates, 0))

	assert.Contains(t, text, "Еженедельно")
	assert.Contains(t, text, "Пн 09:00-11:00")
	assert.Contains(t, text, "Jan 6 - Jan 12")
	assert.Contains(t, text, "10.01 14:00-16:00")

	assert.Equal(t, "Свободных окон нет", FormatAvailability(schedule.GroupByWeek(nil, 0)))
}

func TestFormatSessionInfo(t *testing.T) {
	session := &model.Session{
		ID:          42,
		TutorName:   "Анна Иванова",
		StudentName: "Пётр Сидоров",
		DateTime:    time.Date(2025, time.January, 10, 14, 0, 0, 0, time.Local),
		Duration:    "01:30:00",
		Status:      model.SessionStatusConfirmed,
		Topic:       "Алгебра",
		Mode:        model.ModeWebcam,
	}

	forStudent := FormatSessionInfo(session, false)
	assert.Contains(t, forStudent, "Занятие #42")
	assert.Contains(t, forStudent, "Тьютор: Анна Иванова")
	assert.Contains(t, forStudent, "10.01.2025 (Пятница)")
	assert.Contains(t, forStudent, "1 ч 30 мин")
	assert.Contains(t, forStudent, "Подтверждено")
	assert.Contains(t, forStudent, "Алгебра")

	forTutor := FormatSessionInfo(session, true)
	assert.Contains(t, forTutor, "Студент: Пётр Сидоров")
}

func TestFormatTutorCard(t *testing.T) {
	rate := model.Decimal(25)
	rating := model.Decimal(4.8)
	tutor := &model.TutorProfile{
		Username:      "anna",
		FirstName:     "Анна",
		LastName:      "Иванова",
		HourlyRate:    &rate,
		AverageRating: &rating,
		TotalRatings:  12,
		PreferredMode: model.ModeWebcam,
		Topics:        []string{"математика", "физика"},
		Location:      "Москва",
	}

	card := FormatTutorCard(tutor)
	assert.Contains(t, card, "Анна Иванова")
	assert.Contains(t, card, "4.8 (12 отзывов)")
	assert.Contains(t, card, "25 $/ч")
	assert.Contains(t, card, "математика, физика")
	assert.Contains(t, card, "Москва")

	noRating := &model.TutorProfile{Username: "novice"}
	assert.Contains(t, FormatTutorCard(noRating), "пока нет отзывов")
}
