package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/courtsidehq/venue-booking-backend/internal/auth"
	"github.com/courtsidehq/venue-booking-backend/internal/availability"
	availabilityHttp "github.com/courtsidehq/venue-booking-backend/internal/availability/http"
	"github.com/courtsidehq/venue-booking-backend/internal/booking"
	bookingHttp "github.com/courtsidehq/venue-booking-backend/internal/booking/http"
	"github.com/courtsidehq/venue-booking-backend/internal/court"
	courtHttp "github.com/courtsidehq/venue-booking-backend/internal/court/http"
	"github.com/courtsidehq/venue-booking-backend/internal/notice"
	noticeHttp "github.com/courtsidehq/venue-booking-backend/internal/notice/http"
	"github.com/courtsidehq/venue-booking-backend/internal/user"
	userHttp "github.com/courtsidehq/venue-booking-backend/internal/user/http"
	"github.com/courtsidehq/venue-booking-backend/internal/venue"
	venueHttp "github.com/courtsidehq/venue-booking-backend/internal/venue/http"
)

// Config holds the services and settings the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	UserService         user.Service
	VenueService        venue.Service
	CourtService        court.Service
	AvailabilityService availability.Service
	BookingService      booking.Service
	NoticeService       notice.Service

	JWTManager *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	venueHandler := venueHttp.NewHandler(cfg.VenueService)
	courtHandler := courtHttp.NewHandler(cfg.CourtService)
	availabilityHandler := availabilityHttp.NewHandler(cfg.AvailabilityService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService, cfg.VenueService)
	noticeHandler := noticeHttp.NewHandler(cfg.NoticeService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware)
		venueHttp.RegisterRoutes(v1, venueHandler, authMiddleware)
		courtHttp.RegisterRoutes(v1, courtHandler, authMiddleware)
		availabilityHttp.RegisterRoutes(v1, availabilityHandler)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
		noticeHttp.RegisterRoutes(v1, noticeHandler, authMiddleware)
	}

	return r
}

func splitOrigins(origins string) []string {
	parts := strings.Split(origins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
