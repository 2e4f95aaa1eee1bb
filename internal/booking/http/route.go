package http

import (
	"github.com/gin-gonic/gin"

	"github.com/courtsidehq/venue-booking-backend/internal/auth"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.GET("/code/:code", h.GetByCode)
		group.POST("", h.Create)
		group.POST("/:id/cancel", h.Cancel)
	}

	// === Owner/Admin Routes ===
	managed := group.Group("")
	managed.Use(auth.RequireRoles(auth.RoleOwner, auth.RoleAdmin))
	{
		managed.POST("/block", h.Block)
		managed.POST("/:id/decision", h.Decide)
	}
}
