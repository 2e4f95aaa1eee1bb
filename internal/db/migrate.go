package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema statements are applied in order on startup. They are idempotent so a
// restart against an already-migrated database is a no-op.
//
// The EXCLUDE constraint on bookings is the mechanism that keeps concurrent
// check-then-insert booking creation race free: two inserts with overlapping
// windows for the same court cannot both commit while their status is active.
// The losing insert fails with an exclusion violation, which the booking
// repository maps to a slot conflict.
var schemaStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS btree_gist`,

	`CREATE TABLE IF NOT EXISTS public.users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		display_name TEXT,
		role TEXT NOT NULL DEFAULT 'user',
		is_active BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		last_login_at TIMESTAMPTZ
	)`,

	`CREATE TABLE IF NOT EXISTS public.venues (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		owner_id UUID NOT NULL REFERENCES public.users(id),
		name TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS public.courts (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		venue_id UUID NOT NULL REFERENCES public.venues(id),
		name TEXT NOT NULL,
		sport TEXT NOT NULL,
		slot_minutes INT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CHECK (slot_minutes > 0)
	)`,

	// weekday follows time.Weekday: 0 = Sunday ... 6 = Saturday
	`CREATE TABLE IF NOT EXISTS public.court_hours (
		court_id UUID NOT NULL REFERENCES public.courts(id) ON DELETE CASCADE,
		weekday INT NOT NULL,
		open_time TIME NOT NULL,
		close_time TIME NOT NULL,
		PRIMARY KEY (court_id, weekday),
		CHECK (weekday BETWEEN 0 AND 6),
		CHECK (open_time < close_time)
	)`,

	// booking_code is the only secondary uniqueness constraint on bookings;
	// it is populated on every row at insert time.
	`CREATE TABLE IF NOT EXISTS public.bookings (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		booking_code TEXT NOT NULL UNIQUE,
		court_id UUID NOT NULL REFERENCES public.courts(id),
		requester_id UUID NOT NULL REFERENCES public.users(id),
		date DATE NOT NULL,
		start_time TIMESTAMPTZ NOT NULL,
		end_time TIMESTAMPTZ NOT NULL,
		status TEXT NOT NULL,
		amount BIGINT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		decided_at TIMESTAMPTZ,
		decided_by UUID REFERENCES public.users(id),
		rejection_reason TEXT,
		CHECK (start_time < end_time),
		CONSTRAINT bookings_no_active_overlap EXCLUDE USING gist (
			court_id WITH =,
			tstzrange(start_time, end_time) WITH &&
		) WHERE (status IN ('pending', 'approved', 'blocked'))
	)`,

	`CREATE INDEX IF NOT EXISTS idx_bookings_court_date ON public.bookings (court_id, date)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_requester ON public.bookings (requester_id)`,

	`CREATE TABLE IF NOT EXISTS public.notices (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		venue_id UUID NOT NULL REFERENCES public.venues(id),
		title TEXT NOT NULL,
		body TEXT NOT NULL,
		created_by UUID NOT NULL REFERENCES public.users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_notices_venue ON public.notices (venue_id)`,
}

// Migrate applies the schema statements against the pool.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
