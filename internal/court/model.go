package court

import (
	"fmt"
	"net/http"
	"time"

	"github.com/courtsidehq/venue-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "court not found")
	ErrEmptyName       = apperror.New(http.StatusBadRequest, "court name cannot be empty")
	ErrEmptySport      = apperror.New(http.StatusBadRequest, "court sport cannot be empty")
	ErrBadSlotMinutes  = apperror.New(http.StatusBadRequest, "slot duration must be a positive number of minutes")
	ErrBadHours        = apperror.New(http.StatusBadRequest, "invalid operating hours")
	ErrVenueNotManaged = apperror.New(http.StatusForbidden, "actor may not manage courts of this venue")
)

// DayHours is the operating window of a court for one weekday.
// Open and Close are clock times formatted "HH:MM".
type DayHours struct {
	Weekday time.Weekday
	Open    string
	Close   string
}

// Court is a bookable unit inside a venue. The operating-hours template holds
// at most one window per weekday; a weekday without an entry is closed.
type Court struct {
	ID          string // UUID
	VenueID     string
	Name        string
	Sport       string
	SlotMinutes int
	IsActive    bool
	Hours       []DayHours
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HoursFor returns the operating window for the given weekday, if configured.
func (c *Court) HoursFor(weekday time.Weekday) (DayHours, bool) {
	for _, h := range c.Hours {
		if h.Weekday == weekday {
			return h, true
		}
	}
	return DayHours{}, false
}

// Filter defines parameters for listing courts.
type Filter struct {
	VenueID  string
	Sport    string
	Page     int
	PageSize int
}

// ParseClock parses an "HH:MM" clock time into minutes since midnight.
// Hours and minutes must both be zero padded; time.Parse alone would also
// accept "9:30", which breaks the round trip with to_char(.., 'HH24:MI').
func ParseClock(s string) (int, error) {
	if len(s) != len("15:04") {
		return 0, fmt.Errorf("invalid clock time %q: want HH:MM", s)
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ValidateHours checks every template entry: parseable clock times, open
// strictly before close, and at most one window per weekday.
func ValidateHours(hours []DayHours) error {
	seen := map[time.Weekday]bool{}
	for _, h := range hours {
		if h.Weekday < time.Sunday || h.Weekday > time.Saturday {
			return ErrBadHours
		}
		if seen[h.Weekday] {
			return ErrBadHours
		}
		seen[h.Weekday] = true

		open, err := ParseClock(h.Open)
		if err != nil {
			return ErrBadHours
		}
		close, err := ParseClock(h.Close)
		if err != nil {
			return ErrBadHours
		}
		if open >= close {
			return ErrBadHours
		}
	}
	return nil
}
