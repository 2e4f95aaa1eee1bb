package availability

import (
	"context"
	"time"

	"github.com/courtsidehq/venue-booking-backend/internal/court"
)

// SlotStatus classifies a generated window against the booking ledger.
type SlotStatus string

const (
	SlotFree    SlotStatus = "free"
	SlotPending SlotStatus = "pending"
	SlotBooked  SlotStatus = "booked"
	SlotBlocked SlotStatus = "blocked"
)

// Slot is a derived, never-persisted bookable window annotated with status.
// Recomputing it from the court template and the ledger on every query keeps
// a single source of truth.
type Slot struct {
	Start  time.Time
	End    time.Time
	Status SlotStatus
}

// OccupiedWindow is a window held by an active ledger entry. Status carries
// the ledger status string (pending, approved or blocked).
type OccupiedWindow struct {
	Start  time.Time
	End    time.Time
	Status string
}

// OccupiedSource supplies the active windows for a court on a date. The
// booking ledger repository implements it; this package never mutates.
type OccupiedSource interface {
	GetOccupied(ctx context.Context, courtID string, date time.Time) ([]OccupiedWindow, error)
}

type Service interface {
	// GetAvailableSlots returns the generated windows for the court and date,
	// each annotated with its occupancy status. A window with any overlap,
	// even partial, is marked with the overlapping entry's status rather than
	// split: slot boundaries are fixed by the generator.
	GetAvailableSlots(ctx context.Context, courtID string, date time.Time) ([]Slot, error)

	// IsFree reports whether [start, end) overlaps no active window.
	IsFree(ctx context.Context, courtID string, date, start, end time.Time) (bool, error)
}

type service struct {
	courtService court.Service
	occupied     OccupiedSource
}

func NewService(courtService court.Service, occupied OccupiedSource) Service {
	return &service{
		courtService: courtService,
		occupied:     occupied,
	}
}

func (s *service) GetAvailableSlots(ctx context.Context, courtID string, date time.Time) ([]Slot, error) {
	crt, err := s.courtService.GetByID(ctx, courtID)
	if err != nil {
		return nil, err
	}

	windows := GenerateSlots(crt, date)
	if len(windows) == 0 {
		return nil, nil
	}

	occupied, err := s.occupied.GetOccupied(ctx, courtID, date)
	if err != nil {
		return nil, err
	}

	slots := make([]Slot, len(windows))
	for i, w := range windows {
		slots[i] = Slot{Start: w.Start, End: w.End, Status: SlotFree}
		for _, o := range occupied {
			if Overlaps(w.Start, w.End, o.Start, o.End) {
				slots[i].Status = slotStatusFor(o.Status)
				break
			}
		}
	}
	return slots, nil
}

func (s *service) IsFree(ctx context.Context, courtID string, date, start, end time.Time) (bool, error) {
	occupied, err := s.occupied.GetOccupied(ctx, courtID, date)
	if err != nil {
		return false, err
	}

	for _, o := range occupied {
		if Overlaps(start, end, o.Start, o.End) {
			return false, nil
		}
	}
	return true, nil
}

func slotStatusFor(ledgerStatus string) SlotStatus {
	switch ledgerStatus {
	case "pending":
		return SlotPending
	case "blocked":
		return SlotBlocked
	default:
		// approved is the only other active ledger status
		return SlotBooked
	}
}
