package venue

import (
	"context"
	"strings"

	"github.com/courtsidehq/venue-booking-backend/internal/auth"
)

type CreateRequest struct {
	Name    string
	Address string
	City    string
}

type UpdateRequest struct {
	Name    *string
	Address *string
	City    *string
}

type Service interface {
	Create(ctx context.Context, actor auth.Actor, req CreateRequest) (*Venue, error)
	GetByID(ctx context.Context, id string) (*Venue, error)
	List(ctx context.Context, filter Filter) ([]*Venue, int, error)
	Update(ctx context.Context, actor auth.Actor, id string, req UpdateRequest) (*Venue, error)
	Deactivate(ctx context.Context, actor auth.Actor, id string) error

	// CanManage reports whether the actor may administer the given venue:
	// the owning account, or a platform admin.
	CanManage(ctx context.Context, actor auth.Actor, venueID string) (bool, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, actor auth.Actor, req CreateRequest) (*Venue, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}

	// The owning identity must carry the owner role; the check happens at
	// write time rather than trusting the caller.
	if actor.Role != auth.RoleOwner && actor.Role != auth.RoleAdmin {
		return nil, ErrOwnerRoleNeeded
	}

	v := &Venue{
		OwnerID:  actor.ID,
		Name:     strings.TrimSpace(req.Name),
		Address:  req.Address,
		City:     req.City,
		IsActive: true,
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Venue, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Venue, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, actor auth.Actor, id string, req UpdateRequest) (*Venue, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.mayManage(actor, v) {
		return nil, ErrNotVenueOwner
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		v.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		v.Address = *req.Address
	}
	if req.City != nil {
		v.City = *req.City
	}

	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) Deactivate(ctx context.Context, actor auth.Actor, id string) error {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !s.mayManage(actor, v) {
		return ErrNotVenueOwner
	}

	v.IsActive = false
	return s.repo.Update(ctx, v)
}

func (s *service) CanManage(ctx context.Context, actor auth.Actor, venueID string) (bool, error) {
	v, err := s.repo.GetByID(ctx, venueID)
	if err != nil {
		return false, err
	}
	return s.mayManage(actor, v), nil
}

func (s *service) mayManage(actor auth.Actor, v *Venue) bool {
	if actor.Role == auth.RoleAdmin {
		return true
	}
	return actor.Role == auth.RoleOwner && actor.ID == v.OwnerID
}
