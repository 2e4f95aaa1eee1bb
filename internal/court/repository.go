package court

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, c *Court) error
	GetByID(ctx context.Context, id string) (*Court, error)
	List(ctx context.Context, filter Filter) ([]*Court, int, error)
	Update(ctx context.Context, c *Court) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, c *Court) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create court tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.courts").
		Columns("venue_id", "name", "sport", "slot_minutes", "is_active").
		Values(c.VenueID, c.Name, c.Sport, c.SlotMinutes, c.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create court query failed: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return fmt.Errorf("create court failed: %w", err)
	}

	if err := insertHours(ctx, tx, c.ID, c.Hours); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Court, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "venue_id", "name", "sport", "slot_minutes", "is_active", "created_at", "updated_at",
	).
		From("public.courts").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get court query failed: %w", err)
	}

	var c Court
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.VenueID, &c.Name, &c.Sport, &c.SlotMinutes, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get court failed: %w", err)
	}

	hours, err := r.loadHours(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Hours = hours

	return &c, nil
}

func (r *pgxRepository) loadHours(ctx context.Context, courtID string) ([]DayHours, error) {
	const query = `
		SELECT weekday, to_char(open_time, 'HH24:MI'), to_char(close_time, 'HH24:MI')
		FROM public.court_hours
		WHERE court_id = $1
		ORDER BY weekday
	`

	rows, err := r.pool.Query(ctx, query, courtID)
	if err != nil {
		return nil, fmt.Errorf("load court hours failed: %w", err)
	}
	defer rows.Close()

	var hours []DayHours
	for rows.Next() {
		var weekday int
		var h DayHours
		if err := rows.Scan(&weekday, &h.Open, &h.Close); err != nil {
			return nil, fmt.Errorf("scan court hours failed: %w", err)
		}
		h.Weekday = time.Weekday(weekday)
		hours = append(hours, h)
	}
	return hours, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Court, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "venue_id", "name", "sport", "slot_minutes", "is_active", "created_at", "updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.courts")

	if filter.VenueID != "" {
		query = query.Where(squirrel.Eq{"venue_id": filter.VenueID})
	}
	if filter.Sport != "" {
		query = query.Where(squirrel.Eq{"sport": filter.Sport})
	}

	query = query.OrderBy("created_at DESC")

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
		return nil, 0, fmt.Errorf("build list courts query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list courts failed: %w", err)
	}
	defer rows.Close()

	var courts []*Court
	var total int

	for rows.Next() {
		var c Court
		if err := rows.Scan(
			&c.ID, &c.VenueID, &c.Name, &c.Sport, &c.SlotMinutes, &c.IsActive,
			&c.CreatedAt, &c.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan court failed: %w", err)
		}
		courts = append(courts, &c)
	}

	// List responses omit the hours template; fetch a court by ID for it.
	return courts, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, c *Court) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update court tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.courts").
		Set("name", c.Name).
		Set("sport", c.Sport).
		Set("slot_minutes", c.SlotMinutes).
		Set("is_active", c.IsActive).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": c.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update court query failed: %w", err)
	}

	ct, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update court failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM public.court_hours WHERE court_id = $1`, c.ID); err != nil {
		return fmt.Errorf("clear court hours failed: %w", err)
	}
	if err := insertHours(ctx, tx, c.ID, c.Hours); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func insertHours(ctx context.Context, tx pgx.Tx, courtID string, hours []DayHours) error {
	for _, h := range hours {
		_, err := tx.Exec(ctx, `
			INSERT INTO public.court_hours (court_id, weekday, open_time, close_time)
			VALUES ($1, $2, $3::time, $4::time)
		`, courtID, int(h.Weekday), h.Open, h.Close)
		if err != nil {
			return fmt.Errorf("insert court hours failed: %w", err)
		}
	}
	return nil
}
