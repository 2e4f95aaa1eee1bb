package http

import (
	"time"

	"github.com/courtsidehq/venue-booking-backend/internal/pkg/request"
	"github.com/courtsidehq/venue-booking-backend/internal/venue"
)

type CreateVenueRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	City    string `json:"city"`
}

type UpdateVenueRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	City    *string `json:"city"`
}

type ListVenuesRequest struct {
	request.ListParams
	OwnerID string `form:"owner_id" binding:"omitempty,uuid"`
	City    string `form:"city"`
	Keyword string `form:"keyword"`
}

type VenueResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewVenueResponse(v *venue.Venue) VenueResponse {
	return VenueResponse{
		ID:        v.ID,
		OwnerID:   v.OwnerID,
		Name:      v.Name,
		Address:   v.Address,
		City:      v.City,
		IsActive:  v.IsActive,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

// VenueTag is a minimal venue reference embedded in other responses.
type VenueTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
