package http

import (
	"time"

	"github.com/courtsidehq/venue-booking-backend/internal/availability"
)

type GetAvailabilityRequest struct {
	CourtID string `form:"court_id" binding:"required,uuid"`
	Date    string `form:"date" binding:"required"` // YYYY-MM-DD
}

type SlotResponse struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
}

type AvailabilityResponse struct {
	CourtID string         `json:"court_id"`
	Date    string         `json:"date"`
	Slots   []SlotResponse `json:"slots"`
}

func NewAvailabilityResponse(courtID, date string, slots []availability.Slot) AvailabilityResponse {
	items := make([]SlotResponse, len(slots))
	for i, s := range slots {
		items[i] = SlotResponse{
			StartTime: s.Start,
			EndTime:   s.End,
			Status:    string(s.Status),
		}
	}
	return AvailabilityResponse{
		CourtID: courtID,
		Date:    date,
		Slots:   items,
	}
}
