package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateDuration(t *testing.T) {
	tests := []struct {
		name      string
		timeStart string
		timeEnd   string
		requested string
		want      bool
	}{
		{"fits exactly", "09:00:00", "11:00:00", "02:00:00", true},
		{"shorter than slot", "09:00:00", "11:00:00", "01:00:00", true},
		{"exceeds slot", "09:00:00", "11:00:00", "02:30:00", false},
		{"short time form", "09:00", "11:00", "01:30", true},
		{"exceeds with short form", "09:00", "10:00", "01:30", false},
		{"zero duration", "09:00:00", "11:00:00", "00:00:00", true},
		{"malformed duration", "09:00:00", "11:00:00", "two hours", false},
		{"malformed slot start", "garbage", "11:00:00", "01:00:00", false},
		{"malformed slot end", "09:00:00", "", "01:00:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateDuration(tt.timeStart, tt.timeEnd, tt.requested))
		})
	}
}

func TestDurationMinutes(t *testing.T) {
	m, ok := DurationMinutes("01:30:00")
	assert.True(t, ok)
	assert.Equal(t, 90, m)

	m, ok = DurationMinutes("02:00")
	assert.True(t, ok)
	assert.Equal(t, 120, m)

	_, ok = DurationMinutes("later")
	assert.False(t, ok)
}

func TestSlotMinutes(t *testing.T) {
	m, ok := SlotMinutes("09:00:00", "10:45:00")
	assert.True(t, ok)
	assert.Equal(t, 105, m)

	_, ok = SlotMinutes("10:00:00", "09:00:00")
	assert.False(t, ok)
}
