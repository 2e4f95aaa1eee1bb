package notice

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, n *Notice) error
	GetByID(ctx context.Context, id string) (*Notice, error)
	List(ctx context.Context, filter Filter) ([]*Notice, int, error)
	Update(ctx context.Context, n *Notice) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, n *Notice) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.notices").
		Columns("venue_id", "title", "body", "created_by").
		Values(n.VenueID, n.Title, n.Body, n.CreatedBy).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create notice query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Notice, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "venue_id", "title", "body", "created_by", "created_at", "updated_at").
		From("public.notices").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get notice query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var n Notice
	if err := row.Scan(&n.ID, &n.VenueID, &n.Title, &n.Body, &n.CreatedBy, &n.CreatedAt, &n.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get notice failed: %w", err)
	}
	return &n, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Notice, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("id", "venue_id", "title", "body", "created_by", "created_at", "updated_at", "count(*) OVER() as total_count").
		From("public.notices")

	if filter.VenueID != "" {
		query = query.Where(squirrel.Eq{"venue_id": filter.VenueID})
	}
	if filter.Keyword != "" {
		query = query.Where(squirrel.Or{
			squirrel.ILike{"title": "%" + filter.Keyword + "%"},
			squirrel.ILike{"body": "%" + filter.Keyword + "%"},
		})
	}

	query = query.OrderBy("created_at DESC")

	// Pagination
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
		return nil, 0, fmt.Errorf("build list notices query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list notices failed: %w", err)
	}
	defer rows.Close()

	var result []*Notice
	var total int

	for rows.Next() {
		var n Notice
		if err := rows.Scan(
			&n.ID, &n.VenueID, &n.Title, &n.Body, &n.CreatedBy, &n.CreatedAt, &n.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan notice failed: %w", err)
		}
		result = append(result, &n)
	}

	return result, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, n *Notice) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.notices").
		Set("title", n.Title).
		Set("body", n.Body).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": n.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update notice query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update notice failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.notices").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete notice query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete notice failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
