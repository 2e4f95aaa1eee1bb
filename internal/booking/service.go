package booking

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/courtsidehq/venue-booking-backend/internal/auth"
	"github.com/courtsidehq/venue-booking-backend/internal/availability"
	"github.com/courtsidehq/venue-booking-backend/internal/court"
	"github.com/courtsidehq/venue-booking-backend/internal/notify"
	"github.com/courtsidehq/venue-booking-backend/internal/venue"
)

// codeRetries bounds regeneration attempts on a booking code collision.
const codeRetries = 3

type CreateRequest struct {
	CourtID   string
	Date      time.Time // midnight UTC of the requested day
	StartTime time.Time
	EndTime   time.Time
	Amount    int64

	// DirectApprove creates the booking in approved status, bypassing the
	// pending decision. Reserved for owners booking walk-in customers.
	DirectApprove bool
}

type BlockRequest struct {
	CourtID   string
	Date      time.Time
	StartTime time.Time
	EndTime   time.Time
}

// Service is the scheduler: the single write path into the booking ledger.
// Availability and slot generation are pure readers; whatever the outcome of
// a request, the ledger's no-overlap invariant holds because the final
// reserve step is one conditional insert.
type Service interface {
	RequestBooking(ctx context.Context, actor auth.Actor, req CreateRequest) (*Booking, error)
	BlockSlot(ctx context.Context, actor auth.Actor, req BlockRequest) (*Booking, error)
	DecideBooking(ctx context.Context, actor auth.Actor, id string, action Action, reason string) (*Booking, error)
	CancelBooking(ctx context.Context, actor auth.Actor, id string) (*Booking, error)

	GetByID(ctx context.Context, id string) (*Booking, error)
	GetByCode(ctx context.Context, code string) (*Booking, error)

	// List applies role-based visibility on top of the filter: regular users
	// see only their own bookings, owners only bookings at their venues,
	// admins everything.
	List(ctx context.Context, actor auth.Actor, filter Filter) ([]*Booking, int, error)
}

type service struct {
	repo         Repository
	courtService court.Service
	venueService venue.Service
	avail        availability.Service
	publisher    notify.Publisher
	logger       *slog.Logger
}

func NewService(
	repo Repository,
	courtService court.Service,
	venueService venue.Service,
	avail availability.Service,
	publisher notify.Publisher,
	logger *slog.Logger,
) Service {
	return &service{
		repo:         repo,
		courtService: courtService,
		venueService: venueService,
		avail:        avail,
		publisher:    publisher,
		logger:       logger,
	}
}

func (s *service) RequestBooking(ctx context.Context, actor auth.Actor, req CreateRequest) (*Booking, error) {
	if err := validateWindow(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	crt, err := s.courtService.GetByID(ctx, req.CourtID)
	if err != nil {
		return nil, err
	}

	v, err := s.venueService.GetByID(ctx, crt.VenueID)
	if err != nil {
		return nil, err
	}
	if !v.IsActive {
		return nil, venue.ErrVenueDeactivated
	}

	initial := StatusPending
	if req.DirectApprove {
		if err := s.requireVenueManager(ctx, actor, crt.VenueID); err != nil {
			return nil, err
		}
		initial = StatusApproved
	}

	// The window must exactly match a generated slot; anything else is
	// rejected before touching the ledger.
	if !availability.WindowAligned(crt, req.Date, req.StartTime, req.EndTime) {
		return nil, ErrWindowNotBookable
	}

	// Advisory pre-check for a friendly conflict answer under no contention.
	// The exclusion constraint behind repo.Create is the authoritative gate.
	free, err := s.avail.IsFree(ctx, req.CourtID, req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, ErrSlotConflict
	}

	b := &Booking{
		CourtID:     req.CourtID,
		RequesterID: actor.ID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Status:      initial,
		Amount:      req.Amount,
	}
	if err := s.insertWithFreshCode(ctx, b); err != nil {
		return nil, err
	}

	key := notify.RKBookingRequested
	if initial == StatusApproved {
		key = notify.RKBookingApproved
	}
	s.publishEvent(key, b, "")

	return b, nil
}

func (s *service) BlockSlot(ctx context.Context, actor auth.Actor, req BlockRequest) (*Booking, error) {
	if err := validateWindow(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	crt, err := s.courtService.GetByID(ctx, req.CourtID)
	if err != nil {
		return nil, err
	}

	if err := s.requireVenueManager(ctx, actor, crt.VenueID); err != nil {
		return nil, err
	}

	if !availability.WindowAligned(crt, req.Date, req.StartTime, req.EndTime) {
		return nil, ErrWindowNotBookable
	}

	b := &Booking{
		CourtID:     req.CourtID,
		RequesterID: actor.ID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Status:      StatusBlocked,
		Amount:      0,
	}
	if err := s.insertWithFreshCode(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *service) DecideBooking(ctx context.Context, actor auth.Actor, id string, action Action, reason string) (*Booking, error) {
	if action != ActionApprove && action != ActionReject {
		return nil, ErrInvalidTransition
	}
	if action == ActionReject && strings.TrimSpace(reason) == "" {
		return nil, ErrReasonRequired
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := b.NextStatus(action)
	if err != nil {
		return nil, err
	}
	if err := b.AuthorizeAction(action, actor); err != nil {
		return nil, err
	}
	// Owners decide only on their own venues; admins decide anywhere.
	if actor.Role == auth.RoleOwner {
		if err := s.requireVenueManager(ctx, actor, b.VenueID); err != nil {
			return nil, err
		}
	}

	var reasonPtr *string
	if action == ActionReject {
		r := strings.TrimSpace(reason)
		reasonPtr = &r
	}

	updated, err := s.applyTransition(ctx, b, next, actor, reasonPtr)
	if err != nil {
		return nil, err
	}

	key := notify.RKBookingApproved
	if action == ActionReject {
		key = notify.RKBookingRejected
	}
	s.publishEvent(key, updated, reason)

	return updated, nil
}

func (s *service) CancelBooking(ctx context.Context, actor auth.Actor, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := b.NextStatus(ActionCancel)
	if err != nil {
		return nil, err
	}
	if err := b.AuthorizeAction(ActionCancel, actor); err != nil {
		return nil, err
	}
	// An owner cancelling someone else's booking must manage the venue.
	if actor.Role == auth.RoleOwner && actor.ID != b.RequesterID {
		if err := s.requireVenueManager(ctx, actor, b.VenueID); err != nil {
			return nil, err
		}
	}

	updated, err := s.applyTransition(ctx, b, next, actor, nil)
	if err != nil {
		return nil, err
	}

	// Cancellation frees the window immediately: the status leaves the
	// active set, so subsequent availability checks see the slot as free.
	s.publishEvent(notify.RKBookingCancelled, updated, "")

	return updated, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByCode(ctx context.Context, code string) (*Booking, error) {
	return s.repo.GetByCode(ctx, code)
}

func (s *service) List(ctx context.Context, actor auth.Actor, filter Filter) ([]*Booking, int, error) {
	switch actor.Role {
	case auth.RoleUser:
		filter.RequesterID = actor.ID
	case auth.RoleOwner:
		filter.VenueOwnerID = actor.ID
	}
	return s.repo.List(ctx, filter)
}

// insertWithFreshCode generates a booking code and inserts, retrying only on
// a code collision. A slot conflict is returned as-is: it is an expected
// outcome of contention, never retried here.
func (s *service) insertWithFreshCode(ctx context.Context, b *Booking) error {
	for attempt := 0; attempt < codeRetries; attempt++ {
		code, err := NewBookingCode()
		if err != nil {
			return err
		}
		b.BookingCode = code

		err = s.repo.Create(ctx, b)
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrCodeCollision) {
			continue
		}
		return err
	}
	return errors.New("exhausted booking code retries")
}

// applyTransition performs the conditional status update and re-reads the
// booking. A lost update race (someone else transitioned first) reports
// ErrInvalidTransition, matching what a fresh attempt would see.
func (s *service) applyTransition(ctx context.Context, b *Booking, next Status, actor auth.Actor, reason *string) (*Booking, error) {
	ok, err := s.repo.UpdateStatusIf(ctx, b.ID, b.Status, next, &actor.ID, reason)
	if err != nil {
		return nil, err
	}
	if !ok {
		if _, err := s.repo.GetByID(ctx, b.ID); err != nil {
			return nil, err
		}
		return nil, ErrInvalidTransition
	}
	return s.repo.GetByID(ctx, b.ID)
}

func (s *service) requireVenueManager(ctx context.Context, actor auth.Actor, venueID string) error {
	ok, err := s.venueService.CanManage(ctx, actor, venueID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrActionForbidden
	}
	return nil
}

// publishEvent hands the event to the notification collaborator without
// waiting on it. The booking outcome is already final; a publish failure is
// logged and dropped.
func (s *service) publishEvent(key string, b *Booking, reason string) {
	ev := notify.NewBookingEvent(
		b.ID, b.BookingCode, b.CourtID, b.RequesterID,
		b.StartTime, b.EndTime, string(b.Status), reason,
	)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.publisher.PublishJSON(ctx, key, ev); err != nil {
			s.logger.Error("failed to publish booking event",
				"routing_key", key,
				"booking_id", b.ID,
				"error", err,
			)
		}
	}()
}

func validateWindow(start, end time.Time) error {
	if !end.After(start) {
		return ErrInvalidTimeRange
	}
	if start.Before(time.Now().UTC()) {
		return ErrStartTimePast
	}
	return nil
}
