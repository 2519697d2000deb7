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

// ItemRepo defines the persistence operations for itinerary items.
// All operations are scoped by itineraryID to enforce ownership.
type ItemRepo interface {
	// Create inserts a new item and returns the persisted record. The unique
	// (itinerary, day, order) constraint maps to domain.ErrValidation when
	// the slot is already taken.
	Create(ctx context.Context, item domain.Item) (domain.Item, error)

	// GetByID retrieves a single item by its UUID, scoped to the itinerary.
	// Returns domain.ErrNotFound if no item with that ID exists under it.
	GetByID(ctx context.Context, itineraryID, itemID uuid.UUID) (domain.Item, error)

	// ListByItinerary returns all items of an itinerary ordered by
	// (day_number, order_in_day) ascending.
	ListByItinerary(ctx context.Context, itineraryID uuid.UUID) ([]domain.Item, error)

	// UpdateFields replaces the editable fields of an item and returns the
	// updated record. Scheduling columns (day, order) are untouched.
	UpdateFields(ctx context.Context, itineraryID, itemID uuid.UUID, fields domain.ItemFields) (domain.Item, error)

	// Move repositions an item to (day, order) in a single atomic statement.
	// When another item already occupies the slot the two swap positions,
	// which is how an intra-day reorder is persisted.
	Move(ctx context.Context, itineraryID, itemID uuid.UUID, day, order int) error

	// Delete removes an item by ID, scoped to the itinerary.
	// Returns domain.ErrNotFound if no item with that ID exists under it.
	Delete(ctx context.Context, itineraryID, itemID uuid.UUID) error
}

// pgItemRepo is the Postgres implementation of ItemRepo.
type pgItemRepo struct {
	db db
}

// NewItemRepo constructs an ItemRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewItemRepo(db db) ItemRepo {
	return &pgItemRepo{db: db}
}

const itemColumns = `id, itinerary_id, place_id, day_number, order_in_day,
	start_time, end_time, description, estimated_cost, transport,
	created_at, updated_at`

func (r *pgItemRepo) Create(ctx context.Context, item domain.Item) (domain.Item, error) {
	const q = `
		INSERT INTO itinerary_items
			(itinerary_id, place_id, day_number, order_in_day,
			 start_time, end_time, description, estimated_cost, transport)
		VALUES
			(@itinerary_id, @place_id, @day_number, @order_in_day,
			 @start_time, @end_time, @description, @estimated_cost, @transport)
		RETURNING ` + itemColumns

	args := pgx.NamedArgs{
		"itinerary_id":   item.ItineraryID,
		"place_id":       item.PlaceID,
		"day_number":     item.DayNumber,
		"order_in_day":   item.OrderInDay,
		"start_time":     clockToPG(item.StartTime),
		"end_time":       clockToPG(item.EndTime),
		"description":    item.Description,
		"estimated_cost": item.EstimatedCost,
		"transport":      transportToPG(item.Transport),
	}

	result, err := scanItem(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Item{}, fmt.Errorf("repo.ItemRepo.Create: %w", mapItemError(err))
	}
	return result, nil
}

func (r *pgItemRepo) GetByID(ctx context.Context, itineraryID, itemID uuid.UUID) (domain.Item, error) {
	const q = `
		SELECT ` + itemColumns + `
		FROM itinerary_items
		WHERE id = @id AND itinerary_id = @itinerary_id`

	result, err := scanItem(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": itemID, "itinerary_id": itineraryID}))
	if err != nil {
		return domain.Item{}, fmt.Errorf("repo.ItemRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgItemRepo) ListByItinerary(ctx context.Context, itineraryID uuid.UUID) ([]domain.Item, error) {
	const q = `
		SELECT ` + itemColumns + `
		FROM itinerary_items
		WHERE itinerary_id = @itinerary_id
		ORDER BY day_number, order_in_day`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"itinerary_id": itineraryID})
	if err != nil {
		return nil, fmt.Errorf("repo.ItemRepo.ListByItinerary: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ItemRepo.ListByItinerary: scan: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ItemRepo.ListByItinerary: rows: %w", err)
	}

	return items, nil
}

func (r *pgItemRepo) UpdateFields(ctx context.Context, itineraryID, itemID uuid.UUID, fields domain.ItemFields) (domain.Item, error) {
	const q = `
		UPDATE itinerary_items
		SET start_time     = @start_time,
		    end_time       = @end_time,
		    description    = @description,
		    estimated_cost = @estimated_cost,
		    transport      = @transport,
		    updated_at     = now()
		WHERE id = @id AND itinerary_id = @itinerary_id
		RETURNING ` + itemColumns

	args := pgx.NamedArgs{
		"id":             itemID,
		"itinerary_id":   itineraryID,
		"start_time":     clockToPG(fields.StartTime),
		"end_time":       clockToPG(fields.EndTime),
		"description":    fields.Description,
		"estimated_cost": fields.EstimatedCost,
		"transport":      transportToPG(fields.Transport),
	}

	result, err := scanItem(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Item{}, fmt.Errorf("repo.ItemRepo.UpdateFields: %w", err)
	}
	return result, nil
}

// Move repositions an item, swapping with the current occupant of the target
// slot when there is one. Both rows change in one statement; the deferred
// unique constraint on (itinerary_id, day_number, order_in_day) is checked
// only once the statement completes, so the transient duplicate during the
// swap is invisible.
func (r *pgItemRepo) Move(ctx context.Context, itineraryID, itemID uuid.UUID, day, order int) error {
	const q = `
		WITH target AS (
			SELECT id, day_number, order_in_day
			FROM itinerary_items
			WHERE id = @id AND itinerary_id = @itinerary_id
		),
		occupant AS (
			SELECT id
			FROM itinerary_items
			WHERE itinerary_id = @itinerary_id
			  AND day_number   = @day_number
			  AND order_in_day = @order_in_day
			  AND id <> @id
		)
		UPDATE itinerary_items i
		SET day_number = CASE WHEN i.id = (SELECT id FROM target)
		                      THEN @day_number
		                      ELSE (SELECT day_number FROM target) END,
		    order_in_day = CASE WHEN i.id = (SELECT id FROM target)
		                        THEN @order_in_day
		                        ELSE (SELECT order_in_day FROM target) END,
		    updated_at = now()
		WHERE i.id IN (SELECT id FROM target UNION SELECT id FROM occupant)`

	args := pgx.NamedArgs{
		"id":           itemID,
		"itinerary_id": itineraryID,
		"day_number":   day,
		"order_in_day": order,
	}

	tag, err := r.db.Exec(ctx, q, args)
	if err != nil {
		return fmt.Errorf("repo.ItemRepo.Move: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ItemRepo.Move: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgItemRepo) Delete(ctx context.Context, itineraryID, itemID uuid.UUID) error {
	const q = `DELETE FROM itinerary_items WHERE id = @id AND itinerary_id = @itinerary_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": itemID, "itinerary_id": itineraryID})
	if err != nil {
		return fmt.Errorf("repo.ItemRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ItemRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// mapItemError converts constraint violations into domain errors:
// duplicate (day, order) slots and dangling place references are caller
// mistakes, not server faults.
func mapItemError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%w: order in day already taken", domain.ErrValidation)
		case "23503": // foreign_key_violation
			if pgErr.ConstraintName == "itinerary_items_place_id_fkey" {
				return domain.ErrMissingPlace
			}
			return domain.ErrNotFound
		}
	}
	return err
}

// scanItem maps a single database row into a domain.Item, converting the
// nullable TIME, NUMERIC, and TEXT columns into pointer-optionals.
func scanItem(s scanner) (domain.Item, error) {
	var (
		item      domain.Item
		id        pgtype.UUID
		itinID    pgtype.UUID
		placeID   pgtype.UUID
		start     pgtype.Time
		end       pgtype.Time
		cost      pgtype.Float8
		transport pgtype.Text
	)

	err := s.Scan(&id, &itinID, &placeID, &item.DayNumber, &item.OrderInDay,
		&start, &end, &item.Description, &cost, &transport,
		&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Item{}, domain.ErrNotFound
		}
		return domain.Item{}, err
	}

	item.ID = uuid.UUID(id.Bytes)
	item.ItineraryID = uuid.UUID(itinID.Bytes)
	item.PlaceID = uuid.UUID(placeID.Bytes)
	item.StartTime = pgToClock(start)
	item.EndTime = pgToClock(end)
	if cost.Valid {
		c := cost.Float64
		item.EstimatedCost = &c
	}
	if transport.Valid {
		m := domain.TransportMode(transport.String)
		item.Transport = &m
	}

	return item, nil
}

// clockToPG converts an optional time-of-day into a nullable TIME parameter.
func clockToPG(c *domain.ClockTime) pgtype.Time {
	if c == nil {
		return pgtype.Time{}
	}
	return pgtype.Time{
		Microseconds: int64(c.Minutes()) * 60 * 1_000_000,
		Valid:        true,
	}
}

// pgToClock converts a nullable TIME column back into an optional ClockTime.
// Seconds and finer are dropped; the schedule works at minute precision.
func pgToClock(t pgtype.Time) *domain.ClockTime {
	if !t.Valid {
		return nil
	}
	minutes := int(t.Microseconds / 1_000_000 / 60)
	return &domain.ClockTime{Hour: minutes / 60, Minute: minutes % 60}
}

// transportToPG converts an optional transport mode into a nullable TEXT
// parameter.
func transportToPG(m *domain.TransportMode) pgtype.Text {
	if m == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: string(*m), Valid: true}
}
