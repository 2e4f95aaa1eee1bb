package http

import (
	"time"

	"github.com/courtsidehq/venue-booking-backend/internal/court"
	"github.com/courtsidehq/venue-booking-backend/internal/pkg/request"
)

type DayHoursBody struct {
	Weekday int    `json:"weekday" binding:"min=0,max=6"`
	Open    string `json:"open" binding:"required"`
	Close   string `json:"close" binding:"required"`
}

type CreateCourtRequest struct {
	VenueID     string         `json:"venue_id" binding:"required,uuid"`
	Name        string         `json:"name" binding:"required"`
	Sport       string         `json:"sport" binding:"required"`
	SlotMinutes int            `json:"slot_minutes" binding:"required,min=1"`
	Hours       []DayHoursBody `json:"hours"`
}

type UpdateCourtRequest struct {
	Name        *string        `json:"name"`
	Sport       *string        `json:"sport"`
	SlotMinutes *int           `json:"slot_minutes" binding:"omitempty,min=1"`
	IsActive    *bool          `json:"is_active"`
	Hours       []DayHoursBody `json:"hours"`
}

type ListCourtsRequest struct {
	request.ListParams
	VenueID string `form:"venue_id" binding:"omitempty,uuid"`
	Sport   string `form:"sport"`
}

type CourtResponse struct {
	ID          string         `json:"id"`
	VenueID     string         `json:"venue_id"`
	Name        string         `json:"name"`
	Sport       string         `json:"sport"`
	SlotMinutes int            `json:"slot_minutes"`
	IsActive    bool           `json:"is_active"`
	Hours       []DayHoursBody `json:"hours,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func NewCourtResponse(c *court.Court) CourtResponse {
	hours := make([]DayHoursBody, len(c.Hours))
	for i, h := range c.Hours {
		hours[i] = DayHoursBody{Weekday: int(h.Weekday), Open: h.Open, Close: h.Close}
	}
	return CourtResponse{
		ID:          c.ID,
		VenueID:     c.VenueID,
		Name:        c.Name,
		Sport:       c.Sport,
		SlotMinutes: c.SlotMinutes,
		IsActive:    c.IsActive,
		Hours:       hours,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// CourtTag is a minimal court reference embedded in other responses.
type CourtTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func toDayHours(body []DayHoursBody) []court.DayHours {
	if body == nil {
		return nil
	}
	hours := make([]court.DayHours, len(body))
	for i, h := range body {
		hours[i] = court.DayHours{Weekday: time.Weekday(h.Weekday), Open: h.Open, Close: h.Close}
	}
	return hours
}
