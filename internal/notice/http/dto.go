package http

import (
	"time"

	"github.com/courtsidehq/venue-booking-backend/internal/notice"
	"github.com/courtsidehq/venue-booking-backend/internal/pkg/request"
)

type CreateNoticeRequest struct {
	VenueID string `json:"venue_id" binding:"required,uuid"`
	Title   string `json:"title" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

type UpdateNoticeRequest struct {
	Title *string `json:"title"`
	Body  *string `json:"body"`
}

type ListNoticesRequest struct {
	request.ListParams
	VenueID string `form:"venue_id" binding:"omitempty,uuid"`
	Keyword string `form:"keyword"`
}

type NoticeResponse struct {
	ID        string    `json:"id"`
	VenueID   string    `json:"venue_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewNoticeResponse(n *notice.Notice) NoticeResponse {
	return NoticeResponse{
		ID:        n.ID,
		VenueID:   n.VenueID,
		Title:     n.Title,
		Body:      n.Body,
		CreatedBy: n.CreatedBy,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}
