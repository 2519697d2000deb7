package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tripdesk/backend/internal/domain"
)

// PlaceRepo defines the persistence operations for the place catalog.
type PlaceRepo interface {
	// Create inserts a new place and returns the persisted record.
	Create(ctx context.Context, p domain.Place) (domain.Place, error)

	// GetByID retrieves a single place by its UUID primary key.
	// Returns domain.ErrNotFound if no place with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Place, error)

	// GetByIDs retrieves the places for the given ids in one query. Missing
	// ids are simply absent from the result map; the caller decides whether
	// that is an error.
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Place, error)

	// ListPaged returns one page of places ordered by name, plus the total
	// row count.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Place, int64, error)
}

// pgPlaceRepo is the Postgres implementation of PlaceRepo.
type pgPlaceRepo struct {
	db db
}

// NewPlaceRepo constructs a PlaceRepo backed by the provided db connection.
func NewPlaceRepo(db db) PlaceRepo {
	return &pgPlaceRepo{db: db}
}

const placeColumns = `id, name, address, lat, lng, rating, created_at, updated_at`

func (r *pgPlaceRepo) Create(ctx context.Context, p domain.Place) (domain.Place, error) {
	const q = `
		INSERT INTO places (name, address, lat, lng, rating)
		VALUES (@name, @address, @lat, @lng, @rating)
		RETURNING ` + placeColumns

	args := pgx.NamedArgs{
		"name":    p.Name,
		"address": p.Address,
		"lat":     p.Lat,
		"lng":     p.Lng,
		"rating":  p.Rating,
	}

	result, err := scanPlace(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Place{}, fmt.Errorf("repo.PlaceRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgPlaceRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Place, error) {
	const q = `
		SELECT ` + placeColumns + `
		FROM places
		WHERE id = @id`

	result, err := scanPlace(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Place{}, fmt.Errorf("repo.PlaceRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgPlaceRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Place, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]domain.Place{}, nil
	}

	const q = `
		SELECT ` + placeColumns + `
		FROM places
		WHERE id = ANY(@ids)`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"ids": ids})
	if err != nil {
		return nil, fmt.Errorf("repo.PlaceRepo.GetByIDs: %w", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID]domain.Place, len(ids))
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.PlaceRepo.GetByIDs: scan: %w", err)
		}
		out[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.PlaceRepo.GetByIDs: rows: %w", err)
	}

	return out, nil
}

func (r *pgPlaceRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Place, int64, error) {
	const countQ = `SELECT count(*) FROM places`

	var total int64
	if err := r.db.QueryRow(ctx, countQ).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.PlaceRepo.ListPaged: count: %w", err)
	}

	const q = `
		SELECT ` + placeColumns + `
		FROM places
		ORDER BY name
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.PlaceRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	var out []domain.Place
	for rows.Next() {
		place, err := scanPlace(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.PlaceRepo.ListPaged: scan: %w", err)
		}
		out = append(out, place)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.PlaceRepo.ListPaged: rows: %w", err)
	}

	return out, total, nil
}

// scanPlace maps a single database row into a domain.Place.
func scanPlace(s scanner) (domain.Place, error) {
	var (
		p      domain.Place
		id     pgtype.UUID
		lat    pgtype.Float8
		lng    pgtype.Float8
		rating pgtype.Float8
	)

	err := s.Scan(&id, &p.Name, &p.Address, &lat, &lng, &rating, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Place{}, domain.ErrNotFound
		}
		return domain.Place{}, err
	}

	p.ID = uuid.UUID(id.Bytes)
	if lat.Valid {
		v := lat.Float64
		p.Lat = &v
	}
	if lng.Valid {
		v := lng.Float64
		p.Lng = &v
	}
	if rating.Valid {
		v := rating.Float64
		p.Rating = &v
	}

	return p, nil
}
