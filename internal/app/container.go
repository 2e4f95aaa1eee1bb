package app

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/courtsidehq/venue-booking-backend/internal/api"
	"github.com/courtsidehq/venue-booking-backend/internal/auth"
	"github.com/courtsidehq/venue-booking-backend/internal/availability"
	"github.com/courtsidehq/venue-booking-backend/internal/booking"
	"github.com/courtsidehq/venue-booking-backend/internal/court"
	"github.com/courtsidehq/venue-booking-backend/internal/notice"
	"github.com/courtsidehq/venue-booking-backend/internal/notify"
	"github.com/courtsidehq/venue-booking-backend/internal/user"
	"github.com/courtsidehq/venue-booking-backend/internal/venue"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
	Publisher    notify.Publisher
	Logger       *slog.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Venue Module
	venueRepo := venue.NewPgxRepository(cfg.DBPool)
	venueService := venue.NewService(venueRepo)

	// Court Module
	courtRepo := court.NewPgxRepository(cfg.DBPool)
	courtService := court.NewService(courtRepo, venueService)

	// Booking Module
	// The booking repository doubles as the occupancy source for availability.
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	availabilityService := availability.NewService(courtService, bookingRepo)
	bookingService := booking.NewService(
		bookingRepo,
		courtService,
		venueService,
		availabilityService,
		cfg.Publisher,
		cfg.Logger,
	)

	// Notice Module
	noticeRepo := notice.NewPgxRepository(cfg.DBPool)
	noticeService := notice.NewService(noticeRepo, venueService)

	// API Router Config
	routerParams := api.Config{
		IsProduction:        cfg.IsProduction,
		ProdOrigins:         cfg.ProdOrigins,
		UserService:         userService,
		VenueService:        venueService,
		CourtService:        courtService,
		AvailabilityService: availabilityService,
		BookingService:      bookingService,
		NoticeService:       noticeService,
		JWTManager:          jwtManager,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}
}
