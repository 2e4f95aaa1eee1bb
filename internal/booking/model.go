package booking

import (
	"net/http"
	"time"

	"github.com/courtsidehq/venue-booking-backend/internal/auth"
	"github.com/courtsidehq/venue-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "booking not found")
	ErrSlotConflict      = apperror.New(http.StatusConflict, "time slot already booked, pick another slot")
	ErrInvalidTransition = apperror.New(http.StatusConflict, "booking status does not allow this action")
	ErrActionForbidden   = apperror.New(http.StatusForbidden, "actor is not allowed to perform this action")
	ErrInvalidTimeRange  = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrStartTimePast     = apperror.New(http.StatusBadRequest, "cannot create booking in the past")
	ErrWindowNotBookable = apperror.New(http.StatusBadRequest, "requested window does not match a bookable slot")
	ErrReasonRequired    = apperror.New(http.StatusBadRequest, "rejection reason is required")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
	StatusBlocked   Status = "blocked" // owner maintenance hold
)

// ActiveStatuses are the statuses that occupy a slot for overlap purposes.
// Must stay in sync with the bookings_no_active_overlap constraint predicate.
var ActiveStatuses = []Status{StatusPending, StatusApproved, StatusBlocked}

// Action is a requested lifecycle transition.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionCancel  Action = "cancel"
)

// transitions is the closed state machine table. Missing entries are invalid.
var transitions = map[Status]map[Action]Status{
	StatusPending: {
		ActionApprove: StatusApproved,
		ActionReject:  StatusRejected,
		ActionCancel:  StatusCancelled,
	},
	StatusApproved: {
		ActionCancel: StatusCancelled,
	},
	StatusBlocked: {
		ActionCancel: StatusCancelled, // unblock
	},
	// rejected and cancelled are terminal
}

// Booking is a persisted claim on a court time slot.
type Booking struct {
	ID              string // UUID, internal identity
	BookingCode     string // human-readable, unique, shown to customers
	CourtID         string
	CourtName       string
	VenueID         string
	VenueName       string
	RequesterID     string
	RequesterName   string
	Date            time.Time // date component only
	StartTime       time.Time
	EndTime         time.Time
	Status          Status
	Amount          int64 // smallest currency unit
	CreatedAt       time.Time
	DecidedAt       *time.Time
	DecidedBy       *string
	RejectionReason *string
}

// IsActive reports whether the booking currently occupies its slot.
func (b *Booking) IsActive() bool {
	for _, s := range ActiveStatuses {
		if b.Status == s {
			return true
		}
	}
	return false
}

// NextStatus resolves the target status for an action from the current
// status, or ErrInvalidTransition if the table has no such edge.
func (b *Booking) NextStatus(action Action) (Status, error) {
	next, ok := transitions[b.Status][action]
	if !ok {
		return "", ErrInvalidTransition
	}
	return next, nil
}

// AuthorizeAction enforces the role rules for a transition. Approve and
// reject are manager actions. Cancel is open to the requester, except for
// blocked entries where only a manager may unblock.
func (b *Booking) AuthorizeAction(action Action, actor auth.Actor) error {
	switch action {
	case ActionApprove, ActionReject:
		if !actor.IsManager() {
			return ErrActionForbidden
		}
	case ActionCancel:
		if b.Status == StatusBlocked {
			if !actor.IsManager() {
				return ErrActionForbidden
			}
			return nil
		}
		if actor.ID != b.RequesterID && !actor.IsManager() {
			return ErrActionForbidden
		}
	default:
		return ErrInvalidTransition
	}
	return nil
}

// Filter defines parameters for listing bookings.
type Filter struct {
	CourtID      string
	RequesterID  string
	VenueOwnerID string // restricts results to venues owned by this account
	Status       string
	DateFrom     *time.Time
	DateTo       *time.Time
	Page         int
	PageSize     int
}
