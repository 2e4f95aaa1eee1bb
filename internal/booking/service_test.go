package booking

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtsidehq/venue-booking-backend/internal/auth"
	"github.com/courtsidehq/venue-booking-backend/internal/availability"
	"github.com/courtsidehq/venue-booking-backend/internal/court"
	"github.com/courtsidehq/venue-booking-backend/internal/venue"
)

// memRepository mimics the database guarantees in memory: the overlap check
// under a mutex stands in for the exclusion constraint, the code map for the
// unique index.
type memRepository struct {
	mu       sync.Mutex
	seq      int
	bookings map[string]*Booking
	byCode   map[string]string
	venueOf  map[string]string // court ID -> venue ID, filled on reads
	ownerOf  map[string]string // venue ID -> owner ID, for list scoping
}

func newMemRepository(venueOf, ownerOf map[string]string) *memRepository {
	return &memRepository{
		bookings: map[string]*Booking{},
		byCode:   map[string]string{},
		venueOf:  venueOf,
		ownerOf:  ownerOf,
	}
}

func (r *memRepository) Create(ctx context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byCode[b.BookingCode]; exists {
		return ErrCodeCollision
	}
	for _, other := range r.bookings {
		if other.CourtID != b.CourtID || !other.IsActive() {
			continue
		}
		if availability.Overlaps(b.StartTime, b.EndTime, other.StartTime, other.EndTime) {
			return ErrSlotConflict
		}
	}

	r.seq++
	b.ID = fmt.Sprintf("bk-%d", r.seq)
	b.CreatedAt = time.Now().UTC()
	b.VenueID = r.venueOf[b.CourtID]

	stored := *b
	r.bookings[b.ID] = &stored
	r.byCode[b.BookingCode] = b.ID
	return nil
}

func (r *memRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *memRepository) GetByCode(ctx context.Context, code string) (*Booking, error) {
	r.mu.Lock()
	id, ok := r.byCode[code]
	r.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *memRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*Booking
	for _, b := range r.bookings {
		if filter.RequesterID != "" && b.RequesterID != filter.RequesterID {
			continue
		}
		if filter.VenueOwnerID != "" && r.ownerOf[b.VenueID] != filter.VenueOwnerID {
			continue
		}
		if filter.Status != "" && string(b.Status) != filter.Status {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *memRepository) UpdateStatusIf(ctx context.Context, id string, from, to Status, decidedBy *string, reason *string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok || b.Status != from {
		return false, nil
	}
	b.Status = to
	now := time.Now().UTC()
	b.DecidedAt = &now
	b.DecidedBy = decidedBy
	b.RejectionReason = reason
	return true, nil
}

func (r *memRepository) GetOccupied(ctx context.Context, courtID string, date time.Time) ([]availability.OccupiedWindow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []availability.OccupiedWindow
	for _, b := range r.bookings {
		if b.CourtID != courtID || !b.IsActive() {
			continue
		}
		out = append(out, availability.OccupiedWindow{
			Start:  b.StartTime,
			End:    b.EndTime,
			Status: string(b.Status),
		})
	}
	return out, nil
}

type stubCourtService struct {
	courts map[string]*court.Court
}

func (f *stubCourtService) Create(ctx context.Context, actor auth.Actor, req court.CreateRequest) (*court.Court, error) {
	panic("not used")
}

func (f *stubCourtService) GetByID(ctx context.Context, id string) (*court.Court, error) {
	c, ok := f.courts[id]
	if !ok {
		return nil, court.ErrNotFound
	}
	return c, nil
}

func (f *stubCourtService) List(ctx context.Context, filter court.Filter) ([]*court.Court, int, error) {
	panic("not used")
}

func (f *stubCourtService) Update(ctx context.Context, actor auth.Actor, id string, req court.UpdateRequest) (*court.Court, error) {
	panic("not used")
}

type stubVenueService struct {
	venues map[string]*venue.Venue
}

func (f *stubVenueService) Create(ctx context.Context, actor auth.Actor, req venue.CreateRequest) (*venue.Venue, error) {
	panic("not used")
}

func (f *stubVenueService) GetByID(ctx context.Context, id string) (*venue.Venue, error) {
	v, ok := f.venues[id]
	if !ok {
		return nil, venue.ErrNotFound
	}
	return v, nil
}

func (f *stubVenueService) List(ctx context.Context, filter venue.Filter) ([]*venue.Venue, int, error) {
	panic("not used")
}

func (f *stubVenueService) Update(ctx context.Context, actor auth.Actor, id string, req venue.UpdateRequest) (*venue.Venue, error) {
	panic("not used")
}

func (f *stubVenueService) Deactivate(ctx context.Context, actor auth.Actor, id string) error {
	panic("not used")
}

func (f *stubVenueService) CanManage(ctx context.Context, actor auth.Actor, venueID string) (bool, error) {
	if actor.Role == auth.RoleAdmin {
		return true, nil
	}
	v, ok := f.venues[venueID]
	if !ok {
		return false, venue.ErrNotFound
	}
	return actor.Role == auth.RoleOwner && v.OwnerID == actor.ID, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPublisher) PublishJSON(ctx context.Context, routingKey string, v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, routingKey)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// schedulerFixture wires a booking service against in-memory collaborators.
type schedulerFixture struct {
	svc       Service
	repo      *memRepository
	publisher *recordingPublisher
	court     *court.Court
	court2    *court.Court
	requester auth.Actor
	owner     auth.Actor
	owner2    auth.Actor
	admin     auth.Actor
	stranger  auth.Actor
	date      time.Time
}

func newSchedulerFixture(t *testing.T) *schedulerFixture {
	t.Helper()

	owner := auth.Actor{ID: "owner-1", Role: auth.RoleOwner}
	owner2 := auth.Actor{ID: "owner-2", Role: auth.RoleOwner}
	crt := &court.Court{
		ID:          "court-1",
		VenueID:     "venue-1",
		Name:        "Court A",
		Sport:       "badminton",
		SlotMinutes: 60,
		IsActive:    true,
	}
	crt2 := &court.Court{
		ID:          "court-2",
		VenueID:     "venue-2",
		Name:        "Court B",
		Sport:       "badminton",
		SlotMinutes: 60,
		IsActive:    true,
	}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		crt.Hours = append(crt.Hours, court.DayHours{Weekday: wd, Open: "06:00", Close: "22:00"})
		crt2.Hours = append(crt2.Hours, court.DayHours{Weekday: wd, Open: "06:00", Close: "22:00"})
	}

	courts := &stubCourtService{courts: map[string]*court.Court{crt.ID: crt, crt2.ID: crt2}}
	venues := &stubVenueService{venues: map[string]*venue.Venue{
		"venue-1": {ID: "venue-1", OwnerID: owner.ID, Name: "Downtown Sports", IsActive: true},
		"venue-2": {ID: "venue-2", OwnerID: owner2.ID, Name: "Riverside Courts", IsActive: true},
	}}
	repo := newMemRepository(
		map[string]string{crt.ID: "venue-1", crt2.ID: "venue-2"},
		map[string]string{"venue-1": owner.ID, "venue-2": owner2.ID},
	)
	avail := availability.NewService(courts, repo)
	publisher := &recordingPublisher{}

	svc := NewService(repo, courts, venues, avail, publisher, testLogger())

	// A date two days out keeps every generated window in the future.
	future := time.Now().UTC().AddDate(0, 0, 2)
	date := time.Date(future.Year(), future.Month(), future.Day(), 0, 0, 0, 0, time.UTC)

	return &schedulerFixture{
		svc:       svc,
		repo:      repo,
		publisher: publisher,
		court:     crt,
		court2:    crt2,
		requester: auth.Actor{ID: "user-1", Role: auth.RoleUser},
		owner:     owner,
		owner2:    owner2,
		admin:     auth.Actor{ID: "admin-1", Role: auth.RoleAdmin},
		stranger:  auth.Actor{ID: "user-2", Role: auth.RoleUser},
		date:      date,
	}
}

func (f *schedulerFixture) window(hour int) (time.Time, time.Time) {
	start := f.date.Add(time.Duration(hour) * time.Hour)
	return start, start.Add(time.Hour)
}

func (f *schedulerFixture) request(hour int) CreateRequest {
	start, end := f.window(hour)
	return CreateRequest{
		CourtID:   f.court.ID,
		Date:      f.date,
		StartTime: start,
		EndTime:   end,
		Amount:    50000,
	}
}

func TestRequestBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: Pending Booking With Code", func(t *testing.T) {
		f := newSchedulerFixture(t)

		b, err := f.svc.RequestBooking(ctx, f.requester, f.request(10))
		require.NoError(t, err)

		assert.Equal(t, StatusPending, b.Status)
		assert.Equal(t, f.requester.ID, b.RequesterID)
		assert.NotEmpty(t, b.ID)
		assert.Regexp(t, `^BK-[A-Z2-9]{8}$`, b.BookingCode)

		// Round trip through the customer-facing code.
		found, err := f.svc.GetByCode(ctx, b.BookingCode)
		require.NoError(t, err)
		assert.Equal(t, b.ID, found.ID)
	})

	t.Run("Conflict: Second Request For The Same Slot", func(t *testing.T) {
		f := newSchedulerFixture(t)

		_, err := f.svc.RequestBooking(ctx, f.requester, f.request(10))
		require.NoError(t, err)

		_, err = f.svc.RequestBooking(ctx, f.stranger, f.request(10))
		assert.ErrorIs(t, err, ErrSlotConflict)
	})

	t.Run("Concurrent Requests: Exactly One Wins", func(t *testing.T) {
		f := newSchedulerFixture(t)

		const racers = 8
		errs := make(chan error, racers)
		var wg sync.WaitGroup
		for i := 0; i < racers; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				actor := auth.Actor{ID: fmt.Sprintf("racer-%d", n), Role: auth.RoleUser}
				_, err := f.svc.RequestBooking(ctx, actor, f.request(14))
				errs <- err
			}(i)
		}
		wg.Wait()
		close(errs)

		var wins, conflicts int
		for err := range errs {
			switch {
			case err == nil:
				wins++
			default:
				require.ErrorIs(t, err, ErrSlotConflict)
				conflicts++
			}
		}
		assert.Equal(t, 1, wins)
		assert.Equal(t, racers-1, conflicts)
	})

	t.Run("Misaligned Window Is Rejected", func(t *testing.T) {
		f := newSchedulerFixture(t)

		req := f.request(10)
		req.StartTime = req.StartTime.Add(30 * time.Minute)
		req.EndTime = req.EndTime.Add(30 * time.Minute)

		_, err := f.svc.RequestBooking(ctx, f.requester, req)
		assert.ErrorIs(t, err, ErrWindowNotBookable)
	})

	t.Run("Inverted Window Is Rejected", func(t *testing.T) {
		f := newSchedulerFixture(t)

		req := f.request(10)
		req.StartTime, req.EndTime = req.EndTime, req.StartTime

		_, err := f.svc.RequestBooking(ctx, f.requester, req)
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("Past Window Is Rejected", func(t *testing.T) {
		f := newSchedulerFixture(t)

		yesterday := time.Now().UTC().AddDate(0, 0, -1)
		day := time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, time.UTC)
		req := CreateRequest{
			CourtID:   f.court.ID,
			Date:      day,
			StartTime: day.Add(10 * time.Hour),
			EndTime:   day.Add(11 * time.Hour),
		}

		_, err := f.svc.RequestBooking(ctx, f.requester, req)
		assert.ErrorIs(t, err, ErrStartTimePast)
	})

	t.Run("Deactivated Venue Rejects Bookings", func(t *testing.T) {
		f := newSchedulerFixture(t)
		venues := &stubVenueService{venues: map[string]*venue.Venue{
			"venue-1": {ID: "venue-1", OwnerID: f.owner.ID, IsActive: false},
		}}
		courts := &stubCourtService{courts: map[string]*court.Court{f.court.ID: f.court}}
		svc := NewService(f.repo, courts, venues, availability.NewService(courts, f.repo), f.publisher, testLogger())

		_, err := svc.RequestBooking(ctx, f.requester, f.request(10))
		assert.ErrorIs(t, err, venue.ErrVenueDeactivated)
	})

	t.Run("Direct Approve: Manager Only", func(t *testing.T) {
		f := newSchedulerFixture(t)

		req := f.request(9)
		req.DirectApprove = true
		_, err := f.svc.RequestBooking(ctx, f.requester, req)
		assert.ErrorIs(t, err, ErrActionForbidden)

		b, err := f.svc.RequestBooking(ctx, f.owner, req)
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, b.Status)
	})

	t.Run("Unknown Court", func(t *testing.T) {
		f := newSchedulerFixture(t)

		req := f.request(10)
		req.CourtID = "nope"
		_, err := f.svc.RequestBooking(ctx, f.requester, req)
		assert.ErrorIs(t, err, court.ErrNotFound)
	})
}

func TestDecideBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("Approve Then Reject Fails", func(t *testing.T) {
		f := newSchedulerFixture(t)
		b, err := f.svc.RequestBooking(ctx, f.requester, f.request(10))
		require.NoError(t, err)

		approved, err := f.svc.DecideBooking(ctx, f.owner, b.ID, ActionApprove, "")
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, approved.Status)
		require.NotNil(t, approved.DecidedBy)
		assert.Equal(t, f.owner.ID, *approved.DecidedBy)

		_, err = f.svc.DecideBooking(ctx, f.owner, b.ID, ActionReject, "too late")
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("Reject Then Approve Fails", func(t *testing.T) {
		f := newSchedulerFixture(t)
		b, err := f.svc.RequestBooking(ctx, f.requester, f.request(10))
		require.NoError(t, err)

		rejected, err := f.svc.DecideBooking(ctx, f.owner, b.ID, ActionReject, "court flooded after rain")
		require.NoError(t, err)
		assert.Equal(t, StatusRejected, rejected.Status)
		require.NotNil(t, rejected.RejectionReason)
		assert.Equal(t, "court flooded after rain", *rejected.RejectionReason)

		_, err = f.svc.DecideBooking(ctx, f.admin, b.ID, ActionApprove, "")
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("Reject Without Reason Fails", func(t *testing.T) {
		f := newSchedulerFixture(t)
		b, err := f.svc.RequestBooking(ctx, f.requester, f.request(10))
		require.NoError(t, err)

		_, err = f.svc.DecideBooking(ctx, f.owner, b.ID, ActionReject, "   ")
		assert.ErrorIs(t, err, ErrReasonRequired)
	})

	t.Run("Rejection Frees The Slot", func(t *testing.T) {
		f := newSchedulerFixture(t)
		b, err := f.svc.RequestBooking(ctx, f.requester, f.request(10))
		require.NoError(t, err)

		_, err = f.svc.DecideBooking(ctx, f.owner, b.ID, ActionReject, "maintenance")
		require.NoError(t, err)

		// The same slot is bookable again.
		_, err = f.svc.RequestBooking(ctx, f.stranger, f.request(10))
		assert.NoError(t, err)
	})

	t.Run("Regular User Cannot Decide", func(t *testing.T) {
		f := newSchedulerFixture(t)
		b, err := f.svc.RequestBooking(ctx, f.requester, f.request(10))
		require.NoError(t, err)

		_, err = f.svc.DecideBooking(ctx, f.requester, b.ID, ActionApprove, "")
		assert.ErrorIs(t, err, ErrActionForbidden)
	})

	t.Run("Owner Of Another Venue Cannot Decide", func(t *testing.T) {
		f := newSchedulerFixture(t)
		b, err := f.svc.RequestBooking(ctx, f.requester, f.request(10))
		require.NoError(t, err)

		otherOwner := auth.Actor{ID: "owner-2", Role: auth.RoleOwner}
		_, err = f.svc.DecideBooking(ctx, otherOwner, b.ID, ActionApprove, "")
		assert.ErrorIs(t, err, ErrActionForbidden)
	})

	t.Run("Cancel Is Not A Decision", func(t *testing.T) {
		f := newSchedulerFixture(t)
		b, err := f.svc.RequestBooking(ctx, f.requester, f.request(10))
		require.NoError(t, err)

		_, err = f.svc.DecideBooking(ctx, f.owner, b.ID, ActionCancel, "")
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("Unknown Booking", func(t *testing.T) {
		f := newSchedulerFixture(t)
		_, err := f.svc.DecideBooking(ctx, f.owner, "missing", ActionApprove, "")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestCancelBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("Requester Cancels Pending", func(t *testing.T) {
		f := newSchedulerFixture(t)
		b, err := f.svc.RequestBooking(ctx, f.requester, f.request(10))
		require.NoError(t, err)

		cancelled, err := f.svc.CancelBooking(ctx, f.requester, b.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, cancelled.Status)
	})

	t.Run("Cancelling Approved Frees The Slot", func(t *testing.T) {
		f := newSchedulerFixture(t)
		b, err := f.svc.RequestBooking(ctx, f.requester, f.request(10))
		require.NoError(t, err)
		_, err = f.svc.DecideBooking(ctx, f.owner, b.ID, ActionApprove, "")
		require.NoError(t, err)

		_, err = f.svc.CancelBooking(ctx, f.requester, b.ID)
		require.NoError(t, err)

		rebooked, err := f.svc.RequestBooking(ctx, f.stranger, f.request(10))
		require.NoError(t, err)
		assert.Equal(t, StatusPending, rebooked.Status)
	})

	t.Run("Stranger Cannot Cancel", func(t *testing.T) {
		f := newSchedulerFixture(t)
		b, err := f.svc.RequestBooking(ctx, f.requester, f.request(10))
		require.NoError(t, err)

		_, err = f.svc.CancelBooking(ctx, f.stranger, b.ID)
		assert.ErrorIs(t, err, ErrActionForbidden)
	})

	t.Run("Cancel Twice Fails", func(t *testing.T) {
		f := newSchedulerFixture(t)
		b, err := f.svc.RequestBooking(ctx, f.requester, f.request(10))
		require.NoError(t, err)

		_, err = f.svc.CancelBooking(ctx, f.requester, b.ID)
		require.NoError(t, err)
		_, err = f.svc.CancelBooking(ctx, f.requester, b.ID)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestBlockSlot(t *testing.T) {
	ctx := context.Background()

	t.Run("Owner Blocks And Unblocks", func(t *testing.T) {
		f := newSchedulerFixture(t)
		start, end := f.window(10)

		blocked, err := f.svc.BlockSlot(ctx, f.owner, BlockRequest{
			CourtID: f.court.ID, Date: f.date, StartTime: start, EndTime: end,
		})
		require.NoError(t, err)
		assert.Equal(t, StatusBlocked, blocked.Status)
		assert.EqualValues(t, 0, blocked.Amount)

		// The blocked window rejects bookings.
		_, err = f.svc.RequestBooking(ctx, f.requester, f.request(10))
		assert.ErrorIs(t, err, ErrSlotConflict)

		// Unblocking reopens it.
		_, err = f.svc.CancelBooking(ctx, f.owner, blocked.ID)
		require.NoError(t, err)
		_, err = f.svc.RequestBooking(ctx, f.requester, f.request(10))
		assert.NoError(t, err)
	})

	t.Run("Regular User Cannot Block", func(t *testing.T) {
		f := newSchedulerFixture(t)
		start, end := f.window(10)

		_, err := f.svc.BlockSlot(ctx, f.requester, BlockRequest{
			CourtID: f.court.ID, Date: f.date, StartTime: start, EndTime: end,
		})
		assert.ErrorIs(t, err, ErrActionForbidden)
	})

	t.Run("Requester Cannot Unblock", func(t *testing.T) {
		f := newSchedulerFixture(t)
		start, end := f.window(10)

		blocked, err := f.svc.BlockSlot(ctx, f.admin, BlockRequest{
			CourtID: f.court.ID, Date: f.date, StartTime: start, EndTime: end,
		})
		require.NoError(t, err)

		_, err = f.svc.CancelBooking(ctx, f.requester, blocked.ID)
		assert.ErrorIs(t, err, ErrActionForbidden)
	})
}

func TestListBookings(t *testing.T) {
	ctx := context.Background()

	// Seeds one booking per venue: requester at venue-1, stranger at venue-2.
	seed := func(t *testing.T, f *schedulerFixture) (mine, other *Booking) {
		t.Helper()

		mine, err := f.svc.RequestBooking(ctx, f.requester, f.request(10))
		require.NoError(t, err)

		start, end := f.window(10)
		other, err = f.svc.RequestBooking(ctx, f.stranger, CreateRequest{
			CourtID:   f.court2.ID,
			Date:      f.date,
			StartTime: start,
			EndTime:   end,
			Amount:    50000,
		})
		require.NoError(t, err)
		return mine, other
	}

	t.Run("User Sees Only Own Bookings", func(t *testing.T) {
		f := newSchedulerFixture(t)
		mine, _ := seed(t, f)

		// An empty filter must not widen the view past the caller's own rows.
		out, total, err := f.svc.List(ctx, f.requester, Filter{})
		require.NoError(t, err)
		require.Equal(t, 1, total)
		assert.Equal(t, mine.ID, out[0].ID)
	})

	t.Run("User Cannot Impersonate Another Requester", func(t *testing.T) {
		f := newSchedulerFixture(t)
		seed(t, f)

		out, total, err := f.svc.List(ctx, f.requester, Filter{RequesterID: f.stranger.ID})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Equal(t, f.requester.ID, out[0].RequesterID)
	})

	t.Run("Owner Sees Only Own Venues", func(t *testing.T) {
		f := newSchedulerFixture(t)
		mine, other := seed(t, f)

		out, total, err := f.svc.List(ctx, f.owner, Filter{})
		require.NoError(t, err)
		require.Equal(t, 1, total)
		assert.Equal(t, mine.ID, out[0].ID)

		out, total, err = f.svc.List(ctx, f.owner2, Filter{})
		require.NoError(t, err)
		require.Equal(t, 1, total)
		assert.Equal(t, other.ID, out[0].ID)
	})

	t.Run("Admin Sees Everything", func(t *testing.T) {
		f := newSchedulerFixture(t)
		seed(t, f)

		_, total, err := f.svc.List(ctx, f.admin, Filter{})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
	})
}
