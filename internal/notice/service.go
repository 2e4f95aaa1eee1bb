package notice

import (
	"context"
	"strings"

	"github.com/courtsidehq/venue-booking-backend/internal/auth"
	"github.com/courtsidehq/venue-booking-backend/internal/venue"
)

type CreateRequest struct {
	VenueID string
	Title   string
	Body    string
}

type UpdateRequest struct {
	Title *string
	Body  *string
}

type Service interface {
	Create(ctx context.Context, actor auth.Actor, req CreateRequest) (*Notice, error)
	GetByID(ctx context.Context, id string) (*Notice, error)
	List(ctx context.Context, filter Filter) ([]*Notice, int, error)
	Update(ctx context.Context, actor auth.Actor, id string, req UpdateRequest) (*Notice, error)
	Delete(ctx context.Context, actor auth.Actor, id string) error
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

func (s *service) Create(ctx context.Context, actor auth.Actor, req CreateRequest) (*Notice, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(req.Body) == "" {
		return nil, ErrBodyRequired
	}

	if err := s.requireManager(ctx, actor, req.VenueID); err != nil {
		return nil, err
	}

	n := &Notice{
		VenueID:   req.VenueID,
		Title:     req.Title,
		Body:      req.Body,
		CreatedBy: actor.ID,
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Notice, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Notice, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, actor auth.Actor, id string, req UpdateRequest) (*Notice, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.requireManager(ctx, actor, n.VenueID); err != nil {
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, ErrTitleRequired
		}
		n.Title = *req.Title
	}

	if req.Body != nil {
		if strings.TrimSpace(*req.Body) == "" {
			return nil, ErrBodyRequired
		}
		n.Body = *req.Body
	}

	if err := s.repo.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *service) Delete(ctx context.Context, actor auth.Actor, id string) error {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.requireManager(ctx, actor, n.VenueID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) requireManager(ctx context.Context, actor auth.Actor, venueID string) error {
	ok, err := s.venueService.CanManage(ctx, actor, venueID)
	if err != nil {
		return err
	}
	if !ok {
		return venue.ErrNotVenueOwner
	}
	return nil
}
