package http

import (
	"github.com/gin-gonic/gin"

	"github.com/courtsidehq/venue-booking-backend/internal/auth"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/notices")

	// === Public Routes ===
	group.GET("", h.List)
	group.GET("/:id", h.Get)

	// === Owner/Admin Routes ===
	managed := group.Group("")
	managed.Use(authMiddleware, auth.RequireRoles(auth.RoleOwner, auth.RoleAdmin))
	{
		managed.POST("", h.Create)
		managed.PATCH("/:id", h.Update)
		managed.DELETE("/:id", h.Delete)
	}
}
