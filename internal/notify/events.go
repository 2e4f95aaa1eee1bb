package notify

import (
	"encoding/json"
	"fmt"
	"time"
)

// Routing keys for booking lifecycle events.
const (
	RKBookingRequested = "booking.requested"
	RKBookingApproved  = "booking.approved"
	RKBookingRejected  = "booking.rejected"
	RKBookingCancelled = "booking.cancelled"
)

// BookingEvent carries enough booking context for a notification message.
// Delivery is best effort; booking correctness never depends on it.
type BookingEvent struct {
	BookingID   string `json:"booking_id"`
	BookingCode string `json:"booking_code"`
	CourtID     string `json:"court_id"`
	RequesterID string `json:"requester_id"`
	Start       int64  `json:"start"` // unix seconds
	End         int64  `json:"end"`
	Status      string `json:"status"`
	Reason      string `json:"reason,omitempty"`
}

// NewBookingEvent builds an event payload from booking fields.
func NewBookingEvent(id, code, courtID, requesterID string, start, end time.Time, status, reason string) BookingEvent {
	return BookingEvent{
		BookingID:   id,
		BookingCode: code,
		CourtID:     courtID,
		RequesterID: requesterID,
		Start:       start.Unix(),
		End:         end.Unix(),
		Status:      status,
		Reason:      reason,
	}
}

// DecodeBookingEvent parses a delivery body back into a BookingEvent.
func DecodeBookingEvent(body []byte) (BookingEvent, error) {
	var ev BookingEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return BookingEvent{}, fmt.Errorf("decode booking event failed: %w", err)
	}
	return ev, nil
}
