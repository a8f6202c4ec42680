package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tutorspace/tutorspace_bot/internal/model"
)

// Wednesday, January 8 2025, 12:00 local
var testNow = time.Date(2025, time.January, 8, 12, 0, 0, 0, time.Local)

func oneOff(id int64, date model.Date, start, end string) *model.AvailabilityTemplate {
	return &model.AvailabilityTemplate{
		ID:            id,
		AvailableDate: date,
		TimeStart:     start,
		TimeEnd:       end,
		Recurring:     false,
	}
}

func weekly(id int64, anchor model.Date, start, end string) *model.AvailabilityTemplate {
	return &model.AvailabilityTemplate{
		ID:            id,
		AvailableDate: anchor,
		TimeStart:     start,
		TimeEnd:       end,
		Recurring:     true,
	}
}

func TestExpandOneOff(t *testing.T) {
	tests := []struct {
		name string
		date model.Date
		want int
	}{
		{"future date", model.NewDate(2025, time.January, 10, time.Local), 1},
		{"today", model.NewDate(2025, time.January, 8, time.Local), 1},
		{"yesterday", model.NewDate(2025, time.January, 7, time.Local), 0},
		{"far past", model.NewDate(2024, time.June, 1, time.Local), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := Expand([]*model.AvailabilityTemplate{
				oneOff(1, tt.date, "09:00:00", "11:00:00"),
			}, testNow)

			require.Len(t, slots, tt.want)
			if tt.want == 1 {
				assert.Equal(t, int64(1), slots[0].TemplateID)
				assert.Equal(t, tt.date.String(), slots[0].Date.String())
				assert.False(t, slots[0].Recurring)
			}
		})
	}
}

func TestExpandRecurringFourOccurrences(t *testing.T) {
	// Anchored on a Monday far in the past; expansion counts from "today"
	anchor := model.NewDate(2024, time.December, 2, time.Local)
	require.Equal(t, time.Monday, anchor.Weekday())

	slots := Expand([]*model.AvailabilityTemplate{
		weekly(7, anchor, "10:00:00", "12:00:00"),
	}, testNow)

	require.Len(t, slots, HorizonWeeks)
	for i, slot := range slots {
		assert.Equal(t, time.Monday, slot.Date.Weekday(), "occurrence %d", i)
		assert.True(t, slot.Recurring)
	}

	// Next Monday after Wednesday Jan 8 is Jan 13, then 7 days apart
	assert.Equal(t, "2025-01-13", slots[0].Date.String())
	assert.Equal(t, "2025-01-20", slots[1].Date.String())
	assert.Equal(t, "2025-01-27", slots[2].Date.String())
	assert.Equal(t, "2025-02-03", slots[3].Date.String())
}

func TestExpandRecurringSkipsPassedOccurrence(t *testing.T) {
	// Anchored on today's weekday with a start time that already passed:
	// today's occurrence is dropped, three remain
	anchor := model.NewDate(2024, time.December, 4, time.Local)
	require.Equal(t, time.Wednesday, anchor.Weekday())

	slots := Expand([]*model.AvailabilityTemplate{
		weekly(3, anchor, "09:00:00", "11:00:00"),
	}, testNow)

	require.Len(t, slots, HorizonWeeks-1)
	assert.Equal(t, "2025-01-15", slots[0].Date.String())
}

func TestExpandRecurringKeepsTodayWhenStillAhead(t *testing.T) {
	anchor := model.NewDate(2024, time.December, 4, time.Local)

	slots := Expand([]*model.AvailabilityTemplate{
		weekly(3, anchor, "18:00:00", "20:00:00"),
	}, testNow)

	require.Len(t, slots, HorizonWeeks)
	assert.Equal(t, "2025-01-08", slots[0].Date.String())
}

func TestExpandMalformedTimePassesThrough(t *testing.T) {
	// Непарсящееся время не валидируется и не роняет разворачивание
	slots := Expand([]*model.AvailabilityTemplate{
		oneOff(5, model.NewDate(2025, time.January, 10, time.Local), "garbage", "still garbage"),
	}, testNow)

	require.Len(t, slots, 1)
	assert.Equal(t, "garbage", slots[0].TimeStart)

	_, ok := slots[0].StartAt()
	assert.False(t, ok)
}

func TestSortByStart(t *testing.T) {
	slots := []Slot{
		{Date: model.NewDate(2025, time.January, 20, time.Local), TimeStart: "09:00:00"},
		{Date: model.NewDate(2025, time.January, 10, time.Local), TimeStart: "15:00:00"},
		{Date: model.NewDate(2025, time.January, 10, time.Local), TimeStart: "09:00:00"},
	}

	SortByStart(slots)

	assert.Equal(t, "2025-01-10", slots[0].Date.String())
	assert.Equal(t, "09:00:00", slots[0].TimeStart)
	assert.Equal(t, "15:00:00", slots[1].TimeStart)
	assert.Equal(t, "2025-01-20", slots[2].Date.String())
}
