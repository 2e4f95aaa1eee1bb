package court

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"06:00", 360, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"9:30", 0, true},
		{"6:05", 0, true},
		{"09:5", 0, true},
		{" 9:30", 0, true},
		{"0930", 0, true},
		{"09:30:00", 0, true},
		{"", 0, true},
		{"noon", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateHours(t *testing.T) {
	t.Run("Valid Template", func(t *testing.T) {
		hours := []DayHours{
			{Weekday: time.Monday, Open: "06:00", Close: "22:00"},
			{Weekday: time.Saturday, Open: "08:00", Close: "20:00"},
		}
		assert.NoError(t, ValidateHours(hours))
	})

	t.Run("Empty Template Is Valid", func(t *testing.T) {
		assert.NoError(t, ValidateHours(nil))
	})

	t.Run("Duplicate Weekday", func(t *testing.T) {
		hours := []DayHours{
			{Weekday: time.Monday, Open: "06:00", Close: "12:00"},
			{Weekday: time.Monday, Open: "13:00", Close: "22:00"},
		}
		assert.ErrorIs(t, ValidateHours(hours), ErrBadHours)
	})

	t.Run("Open Not Before Close", func(t *testing.T) {
		assert.ErrorIs(t, ValidateHours([]DayHours{
			{Weekday: time.Monday, Open: "22:00", Close: "06:00"},
		}), ErrBadHours)
		assert.ErrorIs(t, ValidateHours([]DayHours{
			{Weekday: time.Monday, Open: "10:00", Close: "10:00"},
		}), ErrBadHours)
	})

	t.Run("Unparseable Clock Time", func(t *testing.T) {
		assert.ErrorIs(t, ValidateHours([]DayHours{
			{Weekday: time.Monday, Open: "6am", Close: "22:00"},
		}), ErrBadHours)
	})
}

func TestHoursFor(t *testing.T) {
	c := &Court{Hours: []DayHours{
		{Weekday: time.Monday, Open: "06:00", Close: "22:00"},
	}}

	h, ok := c.HoursFor(time.Monday)
	require.True(t, ok)
	assert.Equal(t, "06:00", h.Open)

	_, ok = c.HoursFor(time.Tuesday)
	assert.False(t, ok)
}
