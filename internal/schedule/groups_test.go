package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tutorspace/tutorspace_bot/internal/model"
)

func TestGroupByWeekLabel(t *testing.T) {
	// Wednesday Jan 8 2025 lives in the week Monday Jan 6 - Sunday Jan 12
	grouped := GroupByWeek([]*model.AvailabilityTemplate{
		oneOff(1, model.NewDate(2025, time.January, 8, time.Local), "09:00:00", "11:00:00"),
	}, 0)

	require.Len(t, grouped.Weeks, 1)
	assert.Equal(t, "Jan 6 - Jan 12", grouped.Weeks[0].WeekRange)
	assert.Equal(t, "2025-01-06", grouped.Weeks[0].WeekStart.String())
}

func TestGroupByWeekPartitionsRecurring(t *testing.T) {
	r1 := weekly(1, model.NewDate(2025, time.January, 6, time.Local), "09:00:00", "10:00:00")
	r2 := weekly(2, model.NewDate(2025, time.January, 7, time.Local), "14:00:00", "15:00:00")
	d1 := oneOff(3, model.NewDate(2025, time.January, 9, time.Local), "09:00:00", "10:00:00")

	grouped := GroupByWeek([]*model.AvailabilityTemplate{r2, d1, r1}, 0)

	// Еженедельные - отдельной секцией, в исходном порядке
	require.Len(t, grouped.Recurring, 2)
	assert.Equal(t, int64(2), grouped.Recurring[0].ID)
	assert.Equal(t, int64(1), grouped.Recurring[1].ID)

	require.Len(t, grouped.Weeks, 1)
	require.Len(t, grouped.Weeks[0].Slots, 1)
	assert.Equal(t, int64(3), grouped.Weeks[0].Slots[0].ID)
}

func TestGroupByWeekSortsBucketsKeepsInsertionOrder(t *testing.T) {
	a := oneOff(1, model.NewDate(2025, time.January, 22, time.Local), "09:00:00", "10:00:00")
	b := oneOff(2, model.NewDate(2025, time.January, 8, time.Local), "15:00:00", "16:00:00")
	c := oneOff(3, model.NewDate(2025, time.January, 6, time.Local), "09:00:00", "10:00:00")

	grouped := GroupByWeek([]*model.AvailabilityTemplate{a, b, c}, 0)

	require.Len(t, grouped.Weeks, 2)
	assert.Equal(t, "Jan 6 - Jan 12", grouped.Weeks[0].WeekRange)
	assert.Equal(t, "Jan 20 - Jan 26", grouped.Weeks[1].WeekRange)

	// Внутри недели - порядок вставки, без пересортировки
	require.Len(t, grouped.Weeks[0].Slots, 2)
	assert.Equal(t, int64(2), grouped.Weeks[0].Slots[0].ID)
	assert.Equal(t, int64(3), grouped.Weeks[0].Slots[1].ID)
}

func TestGroupByWeekLimit(t *testing.T) {
	var templates []*model.AvailabilityTemplate
	for week := 0; week < 6; week++ {
		templates = append(templates, oneOff(
			int64(week+1),
			model.NewDate(2025, time.January, 6+7*week, time.Local),
			"09:00:00", "10:00:00",
		))
	}

	capped := GroupByWeek(templates, 4)
	assert.Len(t, capped.Weeks, 4)

	uncapped := GroupByWeek(templates, 0)
	assert.Len(t, uncapped.Weeks, 6)
}

func TestGroupByWeekIdempotent(t *testing.T) {
	templates := []*model.AvailabilityTemplate{
		weekly(1, model.NewDate(2025, time.January, 6, time.Local), "09:00:00", "10:00:00"),
		oneOff(2, model.NewDate(2025, time.January, 8, time.Local), "15:00:00", "16:00:00"),
		oneOff(3, model.NewDate(2025, time.January, 21, time.Local), "09:00:00", "10:00:00"),
		oneOff(4, model.NewDate(2025, time.January, 9, time.Local), "11:00:00", "12:00:00"),
	}

	first := GroupByWeek(templates, 4)
	second := GroupByWeek(templates, 4)

	assert.Equal(t, first, second)
}

func TestFilterCurrentAndFuture(t *testing.T) {
	templates := []*model.AvailabilityTemplate{
		oneOff(1, model.NewDate(2025, time.January, 7, time.Local), "09:00:00", "10:00:00"),  // вчера
		oneOff(2, model.NewDate(2025, time.January, 8, time.Local), "09:00:00", "10:00:00"),  // сегодня
		oneOff(3, model.NewDate(2025, time.January, 15, time.Local), "09:00:00", "10:00:00"), // будущее
		weekly(4, model.NewDate(2024, time.June, 3, time.Local), "09:00:00", "10:00:00"),     // recurring всегда актуален
	}

	current := FilterCurrentAndFuture(templates, testNow)

	require.Len(t, current, 3)
	assert.Equal(t, int64(2), current[0].ID)
	assert.Equal(t, int64(3), current[1].ID)
	assert.Equal(t, int64(4), current[2].ID)
}
