// Package repo contains all database access logic for the Tripdesk API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tripdesk/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ItineraryRepo defines the persistence operations for itinerary headers.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type ItineraryRepo interface {
	// Create inserts a new itinerary and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)

	// GetByID retrieves a single itinerary by its UUID primary key.
	// Returns domain.ErrNotFound if no itinerary with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Itinerary, error)

	// ListPaged returns one page of itineraries ordered by start_date
	// descending, plus the total row count.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Itinerary, int64, error)

	// Update overwrites the mutable header fields and returns the updated
	// record. Returns domain.ErrNotFound if no itinerary with that ID exists.
	Update(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)

	// Delete removes an itinerary and, via FK cascade, all its items.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgItineraryRepo is the Postgres implementation of ItineraryRepo.
type pgItineraryRepo struct {
	db db
}

// NewItineraryRepo constructs an ItineraryRepo backed by the provided db
// connection. In production pass *pgxpool.Pool; in tests pass a pgx.Tx for
// rollback isolation.
func NewItineraryRepo(db db) ItineraryRepo {
	return &pgItineraryRepo{db: db}
}

func (r *pgItineraryRepo) Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	const q = `
		INSERT INTO itineraries (title, start_date, end_date, notes)
		VALUES (@title, @start_date, @end_date, @notes)
		RETURNING id, title, start_date, end_date, notes, created_at, updated_at`

	args := pgx.NamedArgs{
		"title":      it.Title,
		"start_date": it.StartDate,
		"end_date":   it.EndDate,
		"notes":      it.Notes,
	}

	result, err := scanItinerary(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgItineraryRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Itinerary, error) {
	const q = `
		SELECT id, title, start_date, end_date, notes, created_at, updated_at
		FROM itineraries
		WHERE id = @id`

	result, err := scanItinerary(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgItineraryRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Itinerary, int64, error) {
	const countQ = `SELECT count(*) FROM itineraries`

	var total int64
	if err := r.db.QueryRow(ctx, countQ).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.ItineraryRepo.ListPaged: count: %w", err)
	}

	const q = `
		SELECT id, title, start_date, end_date, notes, created_at, updated_at
		FROM itineraries
		ORDER BY start_date DESC, created_at DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ItineraryRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	var out []domain.Itinerary
	for rows.Next() {
		it, err := scanItinerary(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.ItineraryRepo.ListPaged: scan: %w", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.ItineraryRepo.ListPaged: rows: %w", err)
	}

	return out, total, nil
}

func (r *pgItineraryRepo) Update(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	const q = `
		UPDATE itineraries
		SET title      = @title,
		    start_date = @start_date,
		    end_date   = @end_date,
		    notes      = @notes,
		    updated_at = now()
		WHERE id = @id
		RETURNING id, title, start_date, end_date, notes, created_at, updated_at`

	args := pgx.NamedArgs{
		"id":         it.ID,
		"title":      it.Title,
		"start_date": it.StartDate,
		"end_date":   it.EndDate,
		"notes":      it.Notes,
	}

	result, err := scanItinerary(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgItineraryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM itineraries WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ItineraryRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ItineraryRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanItinerary maps a single database row into a domain.Itinerary.
func scanItinerary(s scanner) (domain.Itinerary, error) {
	var (
		it    domain.Itinerary
		id    pgtype.UUID
		start pgtype.Date
		end   pgtype.Date
	)

	err := s.Scan(&id, &it.Title, &start, &end, &it.Notes, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Itinerary{}, domain.ErrNotFound
		}
		return domain.Itinerary{}, err
	}

	it.ID = uuid.UUID(id.Bytes)
	it.StartDate = start.Time
	it.EndDate = end.Time
	return it, nil
}
