package http

import (
	"fmt"
	"time"

	"github.com/courtsidehq/venue-booking-backend/internal/booking"
	courtHttp "github.com/courtsidehq/venue-booking-backend/internal/court/http"
	"github.com/courtsidehq/venue-booking-backend/internal/pkg/request"
	userHttp "github.com/courtsidehq/venue-booking-backend/internal/user/http"
	venueHttp "github.com/courtsidehq/venue-booking-backend/internal/venue/http"
)

type CreateBookingRequest struct {
	CourtID       string `json:"court_id" binding:"required,uuid"`
	Date          string `json:"date" binding:"required"`       // YYYY-MM-DD
	StartTime     string `json:"start_time" binding:"required"` // HH:MM
	EndTime       string `json:"end_time" binding:"required"`   // HH:MM
	Amount        int64  `json:"amount" binding:"min=0"`
	DirectApprove bool   `json:"direct_approve"`
}

type BlockSlotRequest struct {
	CourtID   string `json:"court_id" binding:"required,uuid"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type DecisionRequest struct {
	Action string `json:"action" binding:"required,oneof=approve reject"`
	Reason string `json:"reason"`
}

type ListBookingsRequest struct {
	request.ListParams
	CourtID  string `form:"court_id" binding:"omitempty,uuid"`
	UserID   string `form:"user_id" binding:"omitempty,uuid"`
	Status   string `form:"status" binding:"omitempty,oneof=pending approved rejected cancelled blocked"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
}

// parseWindow turns a date plus two HH:MM clock times into UTC timestamps.
func parseWindow(dateStr, startStr, endStr string) (date, start, end time.Time, err error) {
	date, err = time.Parse("2006-01-02", dateStr)
	if err != nil {
		return date, start, end, fmt.Errorf("date must be formatted YYYY-MM-DD")
	}
	date = date.UTC()

	startClock, err := time.Parse("15:04", startStr)
	if err != nil {
		return date, start, end, fmt.Errorf("start_time must be formatted HH:MM")
	}
	endClock, err := time.Parse("15:04", endStr)
	if err != nil {
		return date, start, end, fmt.Errorf("end_time must be formatted HH:MM")
	}

	start = date.Add(time.Duration(startClock.Hour())*time.Hour + time.Duration(startClock.Minute())*time.Minute)
	end = date.Add(time.Duration(endClock.Hour())*time.Hour + time.Duration(endClock.Minute())*time.Minute)
	return date, start, end, nil
}

type BookingResponse struct {
	ID              string              `json:"id"`
	BookingCode     string              `json:"booking_code"`
	Court           courtHttp.CourtTag  `json:"court"`
	Venue           venueHttp.VenueTag  `json:"venue"`
	Requester       userHttp.UserTag    `json:"requester"`
	Date            string              `json:"date"`
	StartTime       time.Time           `json:"start_time"`
	EndTime         time.Time           `json:"end_time"`
	Status          string              `json:"status"`
	Amount          int64               `json:"amount"`
	CreatedAt       time.Time           `json:"created_at"`
	DecidedAt       *time.Time          `json:"decided_at,omitempty"`
	DecidedBy       *string             `json:"decided_by,omitempty"`
	RejectionReason *string             `json:"rejection_reason,omitempty"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:              b.ID,
		BookingCode:     b.BookingCode,
		Court:           courtHttp.CourtTag{ID: b.CourtID, Name: b.CourtName},
		Venue:           venueHttp.VenueTag{ID: b.VenueID, Name: b.VenueName},
		Requester:       userHttp.UserTag{ID: b.RequesterID, Name: b.RequesterName},
		Date:            b.Date.Format("2006-01-02"),
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		Status:          string(b.Status),
		Amount:          b.Amount,
		CreatedAt:       b.CreatedAt,
		DecidedAt:       b.DecidedAt,
		DecidedBy:       b.DecidedBy,
		RejectionReason: b.RejectionReason,
	}
}

// CreatedBookingResponse is the slim answer to a successful booking request.
type CreatedBookingResponse struct {
	BookingCode string `json:"booking_code"`
	Status      string `json:"status"`
}
