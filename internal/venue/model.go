package venue

import (
	"net/http"
	"time"

	"github.com/courtsidehq/venue-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "venue not found")
	ErrEmptyName        = apperror.New(http.StatusBadRequest, "venue name cannot be empty")
	ErrNotVenueOwner    = apperror.New(http.StatusForbidden, "actor does not own this venue")
	ErrOwnerRoleNeeded  = apperror.New(http.StatusForbidden, "venue owner must hold the owner role")
	ErrVenueDeactivated = apperror.New(http.StatusConflict, "venue is deactivated")
)

// Venue is a sports facility owned by an owner account. Venues are never hard
// deleted; deactivation keeps historical bookings referable.
type Venue struct {
	ID        string // UUID
	OwnerID   string // UUID of an owner-role user
	Name      string
	Address   string
	City      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter defines parameters for listing venues.
type Filter struct {
	OwnerID  string
	City     string
	Keyword  string // matched against name
	Page     int
	PageSize int
}
