package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tutorspace/tutorspace_bot/internal/model"
)

func sessionAt(dateTime time.Time, status model.SessionStatus) *model.Session {
	return &model.Session{
		ID:       100,
		Tutor:    1,
		Student:  2,
		DateTime: dateTime,
		Duration: "01:00:00",
		Status:   status,
	}
}

func TestFilterBookedInactiveSessionsNeverConsumeSlot(t *testing.T) {
	slot := Slot{
		TemplateID: 1,
		Date:       model.NewDate(2025, time.January, 10, time.Local),
		TimeStart:  "09:00:00",
		TimeEnd:    "11:00:00",
	}
	inside := time.Date(2025, time.January, 10, 9, 30, 0, 0, time.Local)

	tests := []struct {
		status model.SessionStatus
		kept   bool
	}{
		{model.SessionStatusCancelled, true},
		{model.SessionStatusRejected, true},
		{model.SessionStatusPending, false},
		{model.SessionStatusConfirmed, false},
		{model.SessionStatusCompleted, false},
		{model.SessionStatusReschedulePending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			free := FilterBooked([]Slot{slot}, []*model.Session{sessionAt(inside, tt.status)})
			if tt.kept {
				assert.Len(t, free, 1)
			} else {
				assert.Empty(t, free)
			}
		})
	}
}

func TestFilterBookedHalfOpenWindow(t *testing.T) {
	slot := Slot{
		Date:      model.NewDate(2025, time.January, 10, time.Local),
		TimeStart: "09:00:00",
		TimeEnd:   "11:00:00",
	}

	tests := []struct {
		name string
		at   time.Time
		kept bool
	}{
		{"before window", time.Date(2025, time.January, 10, 8, 59, 0, 0, time.Local), true},
		{"at start", time.Date(2025, time.January, 10, 9, 0, 0, 0, time.Local), false},
		{"inside", time.Date(2025, time.January, 10, 10, 30, 0, 0, time.Local), false},
		{"at end", time.Date(2025, time.January, 10, 11, 0, 0, 0, time.Local), true},
		{"other day", time.Date(2025, time.January, 11, 9, 30, 0, 0, time.Local), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			free := FilterBooked([]Slot{slot}, []*model.Session{sessionAt(tt.at, model.SessionStatusConfirmed)})
			assert.Equal(t, tt.kept, len(free) == 1)
		})
	}
}

func TestAvailableForBooking(t *testing.T) {
	templates := []*model.AvailabilityTemplate{
		oneOff(1, model.NewDate(2025, time.January, 20, time.Local), "15:00:00", "17:00:00"),
		oneOff(2, model.NewDate(2025, time.January, 10, time.Local), "09:00:00", "11:00:00"),
		// Сегодня, но время уже прошло - не предлагается
		oneOff(3, model.NewDate(2025, time.January, 8, time.Local), "09:00:00", "10:00:00"),
	}
	sessions := []*model.Session{
		// Занимает слот от 10 января
		sessionAt(time.Date(2025, time.January, 10, 9, 0, 0, 0, time.Local), model.SessionStatusConfirmed),
	}

	slots := AvailableForBooking(templates, sessions, testNow)

	require.Len(t, slots, 1)
	assert.Equal(t, int64(1), slots[0].TemplateID)
}

func TestAvailableForBookingSortedAscending(t *testing.T) {
	templates := []*model.AvailabilityTemplate{
		oneOff(1, model.NewDate(2025, time.January, 20, time.Local), "09:00:00", "11:00:00"),
		weekly(2, model.NewDate(2024, time.December, 2, time.Local), "10:00:00", "12:00:00"), // Mondays
		oneOff(3, model.NewDate(2025, time.January, 9, time.Local), "14:00:00", "16:00:00"),
	}

	slots := AvailableForBooking(templates, nil, testNow)

	require.NotEmpty(t, slots)
	for i := 1; i < len(slots); i++ {
		prev, _ := slots[i-1].StartAt()
		cur, _ := slots[i].StartAt()
		assert.False(t, cur.Before(prev), "slots out of order at %d", i)
	}
	first, _ := slots[0].StartAt()
	assert.True(t, first.After(testNow))
}

func TestTemplateHasBookedSessionsRecurringHourGranularity(t *testing.T) {
	// Шаблон по средам 10:00-12:00. Проверка пересечения для
	// еженедельных шаблонов идёт по часам, не по минутам.
	tpl := weekly(1, model.NewDate(2024, time.December, 4, time.Local), "10:00:00", "12:00:00")
	require.Equal(t, time.Wednesday, tpl.AvailableDate.Weekday())

	wednesday := model.NewDate(2025, time.January, 15, time.Local)
	require.Equal(t, time.Wednesday, wednesday.Weekday())

	tests := []struct {
		name    string
		at      time.Time
		status  model.SessionStatus
		blocked bool
	}{
		{"same weekday inside hours", wednesday.Add(11 * time.Hour), model.SessionStatusConfirmed, true},
		{"last minute of window", wednesday.Add(11*time.Hour + 59*time.Minute), model.SessionStatusConfirmed, true},
		{"at end hour", wednesday.Add(12 * time.Hour), model.SessionStatusConfirmed, false},
		{"before start hour", wednesday.Add(9*time.Hour + 59*time.Minute), model.SessionStatusConfirmed, false},
		{"other weekday same hours", wednesday.AddDate(0, 0, 1).Add(11 * time.Hour), model.SessionStatusConfirmed, false},
		{"cancelled inside hours", wednesday.Add(11 * time.Hour), model.SessionStatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TemplateHasBookedSessions(tpl, []*model.Session{sessionAt(tt.at, tt.status)})
			assert.Equal(t, tt.blocked, got)
		})
	}
}

func TestTemplateHasBookedSessionsOneOff(t *testing.T) {
	tpl := oneOff(1, model.NewDate(2025, time.January, 10, time.Local), "09:00:00", "11:00:00")

	booked := TemplateHasBookedSessions(tpl, []*model.Session{
		sessionAt(time.Date(2025, time.January, 10, 10, 0, 0, 0, time.Local), model.SessionStatusPending),
	})
	assert.True(t, booked)

	free := TemplateHasBookedSessions(tpl, []*model.Session{
		sessionAt(time.Date(2025, time.January, 10, 11, 0, 0, 0, time.Local), model.SessionStatusPending),
	})
	assert.False(t, free)
}
