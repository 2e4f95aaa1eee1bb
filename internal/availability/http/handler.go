package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/courtsidehq/venue-booking-backend/internal/availability"
	"github.com/courtsidehq/venue-booking-backend/internal/pkg/response"
)

type Handler struct {
	service availability.Service
}

func NewHandler(service availability.Service) *Handler {
	return &Handler{service: service}
}

// Get returns the ordered, status-annotated slot list for a court and date.
func (h *Handler) Get(c *gin.Context) {
	var req GetAvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted YYYY-MM-DD"})
		return
	}

	slots, err := h.service.GetAvailableSlots(c.Request.Context(), req.CourtID, date.UTC())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewAvailabilityResponse(req.CourtID, req.Date, slots))
}
