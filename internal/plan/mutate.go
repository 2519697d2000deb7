package plan

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/tripdesk/backend/internal/domain"
)

// Direction is the axis of an intra-day move.
type Direction int

const (
	// MoveUp moves an item one position earlier within its day.
	MoveUp Direction = iota
	// MoveDown moves an item one position later within its day.
	MoveDown
)

// String returns the wire form of the direction ("up" / "down").
func (d Direction) String() string {
	if d == MoveUp {
		return "up"
	}
	return "down"
}

// ParseDirection converts the wire form into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "up":
		return MoveUp, nil
	case "down":
		return MoveDown, nil
	}
	return 0, fmt.Errorf("%w: direction must be \"up\" or \"down\", got %q", domain.ErrValidation, s)
}

// All mutation operations below are pure: they never modify the input slice,
// returning a fresh collection instead. The returned "changed" values are the
// minimal set of items whose persisted fields differ from the input — exactly
// what the sync layer must push to the persistence service.

// Add schedules a new item for the given place on the given day. The item's
// OrderInDay is the day's current maximum plus one, or 1 when the day is
// empty, so a new item always lands at the end of its day.
//
// Returns domain.ErrOutOfRange when day is outside [1, dayCount] and
// domain.ErrMissingPlace when the draft carries no place reference.
func Add(items []domain.Item, dayCount, day int, draft domain.Item) ([]domain.Item, domain.Item, error) {
	if day < 1 || day > dayCount {
		return nil, domain.Item{}, fmt.Errorf("day %d of %d: %w", day, dayCount, domain.ErrOutOfRange)
	}
	if draft.PlaceID == uuid.Nil {
		return nil, domain.Item{}, domain.ErrMissingPlace
	}

	draft.DayNumber = day
	draft.OrderInDay = nextOrder(items, day, uuid.Nil)

	out := make([]domain.Item, len(items), len(items)+1)
	copy(out, items)
	out = append(out, draft)
	return out, draft, nil
}

// Remove deletes the item with the given id. Siblings keep their OrderInDay
// values — removal never compacts the day, so gaps in the order sequence are
// normal. A missing id is a no-op, not an error, which makes removal safe to
// retry.
func Remove(items []domain.Item, id uuid.UUID) []domain.Item {
	out := make([]domain.Item, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}

// MoveWithinDay moves an item one position up or down inside its day by
// swapping OrderInDay values with its neighbor. No other item is renumbered,
// so the day's total order and per-day uniqueness are preserved by
// construction.
//
// Moving the first item up or the last item down is a valid rest state: the
// input is returned unchanged with an empty changed slice, and no error.
// Returns domain.ErrNotFound when no item has the given id.
func MoveWithinDay(items []domain.Item, id uuid.UUID, dir Direction) (updated []domain.Item, changed []domain.Item, err error) {
	idx := indexByID(items, id)
	if idx < 0 {
		return nil, nil, fmt.Errorf("move item %s: %w", id, domain.ErrNotFound)
	}

	day := GroupByDay(items)[items[idx].DayNumber]
	pos := 0
	for i, it := range day {
		if it.ID == id {
			pos = i
			break
		}
	}

	// Boundary: nothing above the first item, nothing below the last.
	if (dir == MoveUp && pos == 0) || (dir == MoveDown && pos == len(day)-1) {
		return items, nil, nil
	}

	neighbor := day[pos-1]
	if dir == MoveDown {
		neighbor = day[pos+1]
	}

	out := make([]domain.Item, len(items))
	copy(out, items)
	a := indexByID(out, id)
	b := indexByID(out, neighbor.ID)
	out[a].OrderInDay, out[b].OrderInDay = out[b].OrderInDay, out[a].OrderInDay

	return out, []domain.Item{out[a], out[b]}, nil
}

// ChangeDay reassigns an item to another day, appending it to that day's end
// using the same order rule as Add. The vacated position in the old day is
// left as a gap; the old day is not compacted.
//
// Returns domain.ErrOutOfRange when newDay is outside [1, dayCount] and
// domain.ErrNotFound when no item has the given id.
func ChangeDay(items []domain.Item, dayCount int, id uuid.UUID, newDay int) (updated []domain.Item, moved domain.Item, err error) {
	if newDay < 1 || newDay > dayCount {
		return nil, domain.Item{}, fmt.Errorf("day %d of %d: %w", newDay, dayCount, domain.ErrOutOfRange)
	}
	idx := indexByID(items, id)
	if idx < 0 {
		return nil, domain.Item{}, fmt.Errorf("change day of item %s: %w", id, domain.ErrNotFound)
	}

	out := make([]domain.Item, len(items))
	copy(out, items)
	out[idx].DayNumber = newDay
	out[idx].OrderInDay = nextOrder(items, newDay, id)
	return out, out[idx], nil
}

// EditFields replaces the editable fields of an item. Field-level rules are
// enforced by ValidateFields before the edit is accepted.
// Returns domain.ErrNotFound when no item has the given id.
func EditFields(items []domain.Item, id uuid.UUID, fields domain.ItemFields) (updated []domain.Item, edited domain.Item, err error) {
	if err := ValidateFields(fields); err != nil {
		return nil, domain.Item{}, err
	}
	idx := indexByID(items, id)
	if idx < 0 {
		return nil, domain.Item{}, fmt.Errorf("edit item %s: %w", id, domain.ErrNotFound)
	}

	out := make([]domain.Item, len(items))
	copy(out, items)
	out[idx] = out[idx].WithFields(fields)
	return out, out[idx], nil
}

// nextOrder computes the append-to-end order value for a day: the maximum
// OrderInDay over the day's items plus one, or 1 for an empty day. The item
// with id exclude (the one being moved) is ignored so reassigning within the
// same day does not count itself.
func nextOrder(items []domain.Item, day int, exclude uuid.UUID) int {
	max := 0
	for _, it := range items {
		if it.DayNumber == day && it.ID != exclude && it.OrderInDay > max {
			max = it.OrderInDay
		}
	}
	return max + 1
}

// indexByID returns the position of the item with the given id, or -1.
func indexByID(items []domain.Item, id uuid.UUID) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
