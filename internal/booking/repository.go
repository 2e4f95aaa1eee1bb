package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/courtsidehq/venue-booking-backend/internal/availability"
)

// ErrCodeCollision signals that a freshly generated booking code hit the
// unique index. Callers regenerate and retry; it never reaches the API.
var ErrCodeCollision = errors.New("booking code collision")

type Repository interface {
	// Create inserts the booking. The exclusion constraint on active bookings
	// makes the insert the atomic check-and-reserve step: a concurrent insert
	// with an overlapping window loses and surfaces as ErrSlotConflict.
	Create(ctx context.Context, b *Booking) error

	GetByID(ctx context.Context, id string) (*Booking, error)
	GetByCode(ctx context.Context, code string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// UpdateStatusIf performs a conditional transition: the row is updated
	// only while its status still equals from. Returns false when the row
	// exists but the condition no longer holds (lost update race).
	UpdateStatusIf(ctx context.Context, id string, from, to Status, decidedBy *string, reason *string) (bool, error)

	// GetOccupied implements availability.OccupiedSource.
	GetOccupied(ctx context.Context, courtID string, date time.Time) ([]availability.OccupiedWindow, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("booking_code", "court_id", "requester_id", "date", "start_time", "end_time", "status", "amount").
		Values(b.BookingCode, b.CourtID, b.RequesterID, b.Date, b.StartTime, b.EndTime, b.Status, b.Amount).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.ExclusionViolation:
				return ErrSlotConflict
			case pgerrcode.UniqueViolation:
				return ErrCodeCollision
			}
		}
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

const bookingColumns = `
	b.id, b.booking_code, b.court_id, c.name, v.id, v.name,
	b.requester_id, COALESCE(u.display_name, u.email),
	b.date, b.start_time, b.end_time, b.status, b.amount,
	b.created_at, b.decided_at, b.decided_by, b.rejection_reason
`

const bookingJoins = `
	FROM public.bookings b
	JOIN public.courts c ON b.court_id = c.id
	JOIN public.venues v ON c.venue_id = v.id
	JOIN public.users u ON b.requester_id = u.id
`

func scanBooking(row pgx.Row, extra ...any) (*Booking, error) {
	var b Booking
	dest := []any{
		&b.ID, &b.BookingCode, &b.CourtID, &b.CourtName, &b.VenueID, &b.VenueName,
		&b.RequesterID, &b.RequesterName,
		&b.Date, &b.StartTime, &b.EndTime, &b.Status, &b.Amount,
		&b.CreatedAt, &b.DecidedAt, &b.DecidedBy, &b.RejectionReason,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query := `SELECT` + bookingColumns + bookingJoins + `WHERE b.id = $1`

	b, err := scanBooking(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) GetByCode(ctx context.Context, code string) (*Booking, error) {
	query := `SELECT` + bookingColumns + bookingJoins + `WHERE b.booking_code = $1`

	b, err := scanBooking(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking by code failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"b.id", "b.booking_code", "b.court_id", "c.name", "v.id", "v.name",
		"b.requester_id", "COALESCE(u.display_name, u.email)",
		"b.date", "b.start_time", "b.end_time", "b.status", "b.amount",
		"b.created_at", "b.decided_at", "b.decided_by", "b.rejection_reason",
		"count(*) OVER() as total_count",
	).
		From("public.bookings b").
		Join("public.courts c ON b.court_id = c.id").
		Join("public.venues v ON c.venue_id = v.id").
		Join("public.users u ON b.requester_id = u.id")

	if filter.CourtID != "" {
		query = query.Where(squirrel.Eq{"b.court_id": filter.CourtID})
	}
	if filter.RequesterID != "" {
		query = query.Where(squirrel.Eq{"b.requester_id": filter.RequesterID})
	}
	if filter.VenueOwnerID != "" {
		query = query.Where(squirrel.Eq{"v.owner_id": filter.VenueOwnerID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	if filter.DateFrom != nil {
		query = query.Where(squirrel.GtOrEq{"b.date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		query = query.Where(squirrel.LtOrEq{"b.date": *filter.DateTo})
	}

	query = query.OrderBy("b.start_time DESC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		b, err := scanBooking(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) UpdateStatusIf(ctx context.Context, id string, from, to Status, decidedBy *string, reason *string) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", to).
		Set("decided_at", squirrel.Expr("now()")).
		Set("decided_by", decidedBy).
		Set("rejection_reason", reason).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": from}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build transition query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("transition booking failed: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}

func (r *pgxRepository) GetOccupied(ctx context.Context, courtID string, date time.Time) ([]availability.OccupiedWindow, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("start_time", "end_time", "status").
		From("public.bookings").
		Where(squirrel.Eq{"court_id": courtID}).
		Where(squirrel.Eq{"date": date}).
		Where(squirrel.Eq{"status": ActiveStatuses}).
		OrderBy("start_time").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build occupied windows query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get occupied windows failed: %w", err)
	}
	defer rows.Close()

	var occupied []availability.OccupiedWindow
	for rows.Next() {
		var o availability.OccupiedWindow
		if err := rows.Scan(&o.Start, &o.End, &o.Status); err != nil {
			return nil, fmt.Errorf("scan occupied window failed: %w", err)
		}
		occupied = append(occupied, o)
	}
	return occupied, nil
}
