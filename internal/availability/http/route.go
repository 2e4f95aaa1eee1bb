package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	// Availability is a read-only public surface; no auth required.
	g.GET("/availability", h.Get)
}
