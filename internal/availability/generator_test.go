package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtsidehq/venue-booking-backend/internal/court"
)

// testCourt builds a court whose operating hours apply to every weekday.
func testCourt(slotMinutes int, open, close string) *court.Court {
	c := &court.Court{
		ID:          "court-1",
		VenueID:     "venue-1",
		Name:        "Court A",
		Sport:       "badminton",
		SlotMinutes: slotMinutes,
		IsActive:    true,
	}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		c.Hours = append(c.Hours, court.DayHours{Weekday: wd, Open: open, Close: close})
	}
	return c
}

func TestGenerateSlots(t *testing.T) {
	// A Wednesday, far enough from any DST edge in UTC.
	date := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	t.Run("Full Day: 06:00-22:00 with 60-minute slots yields 16 windows", func(t *testing.T) {
		c := testCourt(60, "06:00", "22:00")

		windows := GenerateSlots(c, date)
		require.Len(t, windows, 16)

		first := windows[0]
		assert.Equal(t, time.Date(2026, 9, 2, 6, 0, 0, 0, time.UTC), first.Start)
		assert.Equal(t, time.Date(2026, 9, 2, 7, 0, 0, 0, time.UTC), first.End)

		last := windows[len(windows)-1]
		assert.Equal(t, time.Date(2026, 9, 2, 21, 0, 0, 0, time.UTC), last.Start)
		assert.Equal(t, time.Date(2026, 9, 2, 22, 0, 0, 0, time.UTC), last.End)

		// Windows must be consecutive and non-overlapping.
		for i := 1; i < len(windows); i++ {
			assert.Equal(t, windows[i-1].End, windows[i].Start)
		}
	})

	t.Run("Trailing Partial Slot Is Dropped", func(t *testing.T) {
		// 09:00-10:30 with 60-minute slots: only 09:00-10:00 fits.
		c := testCourt(60, "09:00", "10:30")

		windows := GenerateSlots(c, date)
		require.Len(t, windows, 1)
		assert.Equal(t, time.Date(2026, 9, 2, 9, 0, 0, 0, time.UTC), windows[0].Start)
		assert.Equal(t, time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC), windows[0].End)
	})

	t.Run("Slot Longer Than Operating Window Yields Nothing", func(t *testing.T) {
		c := testCourt(90, "09:00", "10:00")
		assert.Empty(t, GenerateSlots(c, date))
	})

	t.Run("Inactive Court Yields Nothing", func(t *testing.T) {
		c := testCourt(60, "06:00", "22:00")
		c.IsActive = false
		assert.Empty(t, GenerateSlots(c, date))
	})

	t.Run("Unconfigured Weekday Yields Nothing", func(t *testing.T) {
		c := testCourt(60, "06:00", "22:00")
		// Keep only Monday hours; the test date is a Wednesday.
		c.Hours = []court.DayHours{{Weekday: time.Monday, Open: "06:00", Close: "22:00"}}
		assert.Empty(t, GenerateSlots(c, date))
	})

	t.Run("Deterministic For Same Inputs", func(t *testing.T) {
		c := testCourt(45, "08:00", "20:00")
		first := GenerateSlots(c, date)
		second := GenerateSlots(c, date)
		assert.Equal(t, first, second)
	})
}

func TestWindowAligned(t *testing.T) {
	date := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	c := testCourt(60, "06:00", "22:00")

	at := func(h, m int) time.Time {
		return time.Date(2026, 9, 2, h, m, 0, 0, time.UTC)
	}

	assert.True(t, WindowAligned(c, date, at(10, 0), at(11, 0)))
	assert.True(t, WindowAligned(c, date, at(6, 0), at(7, 0)))
	assert.True(t, WindowAligned(c, date, at(21, 0), at(22, 0)))

	// Off-grid start, wrong length, and out-of-hours windows are all rejected.
	assert.False(t, WindowAligned(c, date, at(10, 30), at(11, 30)))
	assert.False(t, WindowAligned(c, date, at(10, 0), at(12, 0)))
	assert.False(t, WindowAligned(c, date, at(22, 0), at(23, 0)))
	assert.False(t, WindowAligned(c, date, at(5, 0), at(6, 0)))
}

func TestOverlaps(t *testing.T) {
	at := func(h int) time.Time {
		return time.Date(2026, 9, 2, h, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     time.Time
		want                           bool
	}{
		{"identical windows", at(10), at(11), at(10), at(11), true},
		{"partial overlap", at(10), at(12), at(11), at(13), true},
		{"containment", at(10), at(14), at(11), at(12), true},
		{"abutting windows do not overlap", at(10), at(11), at(11), at(12), false},
		{"abutting the other way", at(11), at(12), at(10), at(11), false},
		{"disjoint", at(8), at(9), at(12), at(13), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// Overlap is symmetric.
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}
