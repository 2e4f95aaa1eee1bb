package availability

import (
	"time"

	"github.com/courtsidehq/venue-booking-backend/internal/court"
)

// Window is a half-open [Start, End) time interval on a specific date.
type Window struct {
	Start time.Time
	End   time.Time
}

// GenerateSlots derives the ordered sequence of bookable windows for a court
// on the given date from its operating-hours template. It is a pure function
// of the template, the date and its weekday.
//
// An inactive court or a weekday without configured hours yields no windows.
// Consecutive windows of the court's slot duration are emitted from open time
// until close time; a trailing remainder shorter than the slot duration is
// dropped, so partial slots are never bookable.
func GenerateSlots(c *court.Court, date time.Time) []Window {
	if !c.IsActive || c.SlotMinutes <= 0 {
		return nil
	}

	hours, ok := c.HoursFor(date.Weekday())
	if !ok {
		return nil
	}

	open, err := court.ParseClock(hours.Open)
	if err != nil {
		return nil
	}
	close, err := court.ParseClock(hours.Close)
	if err != nil {
		return nil
	}

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	var windows []Window
	for start := open; start+c.SlotMinutes <= close; start += c.SlotMinutes {
		windows = append(windows, Window{
			Start: day.Add(time.Duration(start) * time.Minute),
			End:   day.Add(time.Duration(start+c.SlotMinutes) * time.Minute),
		})
	}
	return windows
}

// WindowAligned reports whether [start, end) exactly matches one of the
// windows generated for the court on the given date.
func WindowAligned(c *court.Court, date, start, end time.Time) bool {
	for _, w := range GenerateSlots(c, date) {
		if w.Start.Equal(start) && w.End.Equal(end) {
			return true
		}
	}
	return false
}

// Overlaps is the strict half-open interval overlap test. Windows that merely
// abut (aEnd == bStart) do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
