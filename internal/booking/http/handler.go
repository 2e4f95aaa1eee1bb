package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/courtsidehq/venue-booking-backend/internal/auth"
	"github.com/courtsidehq/venue-booking-backend/internal/booking"
	"github.com/courtsidehq/venue-booking-backend/internal/pkg/response"
	"github.com/courtsidehq/venue-booking-backend/internal/venue"
)

type Handler struct {
	service      booking.Service
	venueService venue.Service
}

func NewHandler(service booking.Service, venueService venue.Service) *Handler {
	return &Handler{
		service:      service,
		venueService: venueService,
	}
}

// Create books a slot. Contention is an expected outcome here: a losing
// concurrent request gets 409 and the client re-queries availability.
func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	actor, ok := auth.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	date, start, end, err := parseWindow(body.Date, body.StartTime, body.EndTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.service.RequestBooking(c.Request.Context(), actor, booking.CreateRequest{
		CourtID:       body.CourtID,
		Date:          date,
		StartTime:     start,
		EndTime:       end,
		Amount:        body.Amount,
		DirectApprove: body.DirectApprove,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreatedBookingResponse{
		BookingCode: b.BookingCode,
		Status:      string(b.Status),
	})
}

// Block reserves a window for venue maintenance. Owner/admin only.
func (h *Handler) Block(c *gin.Context) {
	var body BlockSlotRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	actor, ok := auth.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	date, start, end, err := parseWindow(body.Date, body.StartTime, body.EndTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.service.BlockSlot(c.Request.Context(), actor, booking.BlockRequest{
		CourtID:   body.CourtID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreatedBookingResponse{
		BookingCode: b.BookingCode,
		Status:      string(b.Status),
	})
}

// Decide approves or rejects a pending booking.
func (h *Handler) Decide(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body DecisionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	actor, ok := auth.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	b, err := h.service.DecideBooking(c.Request.Context(), actor, id, booking.Action(body.Action), body.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	actor, ok := auth.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	b, err := h.service.CancelBooking(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	if !h.mayView(c, b) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) GetByCode(c *gin.Context) {
	code := c.Param("code")

	b, err := h.service.GetByCode(c.Request.Context(), code)
	if err != nil {
		response.Error(c, err)
		return
	}

	if !h.mayView(c, b) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	actor, ok := auth.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var dateFrom, dateTo *time.Time
	if req.DateFrom != "" {
		if t, err := time.Parse("2006-01-02", req.DateFrom); err == nil {
			dateFrom = &t
		}
	}
	if req.DateTo != "" {
		if t, err := time.Parse("2006-01-02", req.DateTo); err == nil {
			dateTo = &t
		}
	}

	// Role-based visibility (own bookings for users, own venues for owners)
	// is applied by the service.
	filter := booking.Filter{
		CourtID:     req.CourtID,
		RequesterID: req.UserID,
		Status:      req.Status,
		DateFrom:    dateFrom,
		DateTo:      dateTo,
		Page:        req.Page,
		PageSize:    req.PageSize,
	}

	bookings, total, err := h.service.List(c.Request.Context(), actor, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// mayView allows the requester, the venue's manager, and admins.
func (h *Handler) mayView(c *gin.Context, b *booking.Booking) bool {
	actor, ok := auth.GetActor(c)
	if !ok {
		return false
	}
	if actor.ID == b.RequesterID || actor.Role == auth.RoleAdmin {
		return true
	}
	if actor.Role == auth.RoleOwner {
		ok, err := h.venueService.CanManage(c.Request.Context(), actor, b.VenueID)
		return err == nil && ok
	}
	return false
}
