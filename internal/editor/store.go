package editor

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tripdesk/backend/internal/domain"
)

// Store is the persistence service surface the editor syncs against.
// internal/client implements it over HTTP; tests implement it with in-memory
// doubles. Every call is atomic on the server side: it either succeeds or
// returns an error, never a partial result.
type Store interface {
	// CreateItinerary persists a new itinerary with its initial items and
	// returns the server-assigned id.
	CreateItinerary(ctx context.Context, title string, start, end time.Time, items []domain.Item) (uuid.UUID, error)

	// GetItineraryDetail returns the header and full item collection.
	GetItineraryDetail(ctx context.Context, id uuid.UUID) (domain.Detail, error)

	// UpdateItinerary overwrites the header fields. Notes travel along because
	// the server applies the update wholesale; omitting them would clear them.
	UpdateItinerary(ctx context.Context, id uuid.UUID, title string, start, end time.Time, notes string) error

	// DeleteItinerary removes the itinerary and all its items. Terminal.
	DeleteItinerary(ctx context.Context, id uuid.UUID) error

	// AddItems appends new items; the server assigns authoritative ids and
	// canonical order values.
	AddItems(ctx context.Context, id uuid.UUID, items []domain.Item) error

	// UpdateItem replaces an item's editable fields.
	UpdateItem(ctx context.Context, id, itemID uuid.UUID, fields domain.ItemFields) error

	// MoveItem repositions an item to (newDay, newOrder) in one positional
	// update. When newOrder is already taken within newDay the server swaps
	// the two items rather than rejecting.
	MoveItem(ctx context.Context, id, itemID uuid.UUID, newDay, newOrder int) error

	// DeleteItem removes a single item.
	DeleteItem(ctx context.Context, id, itemID uuid.UUID) error
}
