package court

import (
	"context"
	"strings"

	"github.com/courtsidehq/venue-booking-backend/internal/auth"
	"github.com/courtsidehq/venue-booking-backend/internal/venue"
)

type CreateRequest struct {
	VenueID     string
	Name        string
	Sport       string
	SlotMinutes int
	Hours       []DayHours
}

type UpdateRequest struct {
	Name        *string
	Sport       *string
	SlotMinutes *int
	IsActive    *bool
	Hours       []DayHours // nil keeps the existing template; non-nil replaces it
}

type Service interface {
	Create(ctx context.Context, actor auth.Actor, req CreateRequest) (*Court, error)
	GetByID(ctx context.Context, id string) (*Court, error)
	List(ctx context.Context, filter Filter) ([]*Court, int, error)
	Update(ctx context.Context, actor auth.Actor, id string, req UpdateRequest) (*Court, error)
}

type service struct {
	repo         Repository
	venueService venue.Service
}

func NewService(repo Repository, venueService venue.Service) Service {
	return &service{
		repo:         repo,
		venueService: venueService,
	}
}

func (s *service) Create(ctx context.Context, actor auth.Actor, req CreateRequest) (*Court, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if strings.TrimSpace(req.Sport) == "" {
		return nil, ErrEmptySport
	}
	if req.SlotMinutes <= 0 {
		return nil, ErrBadSlotMinutes
	}
	if err := ValidateHours(req.Hours); err != nil {
		return nil, err
	}

	ok, err := s.venueService.CanManage(ctx, actor, req.VenueID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrVenueNotManaged
	}

	c := &Court{
		VenueID:     req.VenueID,
		Name:        strings.TrimSpace(req.Name),
		Sport:       strings.TrimSpace(req.Sport),
		SlotMinutes: req.SlotMinutes,
		IsActive:    true,
		Hours:       req.Hours,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Court, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Court, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, actor auth.Actor, id string, req UpdateRequest) (*Court, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ok, err := s.venueService.CanManage(ctx, actor, c.VenueID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrVenueNotManaged
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Sport != nil {
		if strings.TrimSpace(*req.Sport) == "" {
			return nil, ErrEmptySport
		}
		c.Sport = strings.TrimSpace(*req.Sport)
	}
	if req.SlotMinutes != nil {
		if *req.SlotMinutes <= 0 {
			return nil, ErrBadSlotMinutes
		}
		c.SlotMinutes = *req.SlotMinutes
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	if req.Hours != nil {
		if err := ValidateHours(req.Hours); err != nil {
			return nil, err
		}
		c.Hours = req.Hours
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
