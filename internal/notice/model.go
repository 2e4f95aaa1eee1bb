package notice

import (
	"net/http"
	"time"

	"github.com/courtsidehq/venue-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "notice not found")
	ErrTitleRequired = apperror.New(http.StatusBadRequest, "notice title is required")
	ErrBodyRequired  = apperror.New(http.StatusBadRequest, "notice body is required")
)

// Notice is a venue-scoped announcement shown next to the booking calendar,
// e.g. a resurfacing closure or changed holiday hours.
type Notice struct {
	ID        string // UUID
	VenueID   string
	Title     string
	Body      string
	CreatedBy string // UUID of the posting manager
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter defines parameters for listing notices.
type Filter struct {
	VenueID  string
	Keyword  string // matched against title and body
	Page     int
	PageSize int
}
