package domain

import (
	"time"

	"github.com/google/uuid"
)

// Item is a single planned visit to a place on a specific day of an itinerary.
//
// DayNumber is 1-based and must lie within the itinerary's day count.
// OrderInDay establishes the total order of items within one day: unique per
// day, not necessarily contiguous. Removing an item never renumbers its
// siblings, so gaps are normal and later moves operate on the values as-is.
//
// Optional attributes use pointers so that "absent" is distinguishable from a
// zero value. An item with no transport is an item whose transport is unknown,
// not an item that walks.
type Item struct {
	ID          uuid.UUID `json:"id"`
	ItineraryID uuid.UUID `json:"itinerary_id"`
	PlaceID     uuid.UUID `json:"place_id"`
	DayNumber   int       `json:"day_number"`
	OrderInDay  int       `json:"order_in_day"`
	ItemFields
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ItemFields is the set of editable attributes of an item — everything a user
// can change on the item edit form. Updates replace the whole set at once, so
// a save always carries the merged view of staged edits over last-known-good
// values rather than a sparse diff.
type ItemFields struct {
	StartTime     *ClockTime     `json:"start_time,omitempty"`
	EndTime       *ClockTime     `json:"end_time,omitempty"`
	Description   string         `json:"description,omitempty"`
	EstimatedCost *float64       `json:"estimated_cost,omitempty"`
	Transport     *TransportMode `json:"transport,omitempty"`
}

// WithFields returns a copy of the item with its editable fields replaced.
func (i Item) WithFields(f ItemFields) Item {
	i.ItemFields = f
	return i
}
