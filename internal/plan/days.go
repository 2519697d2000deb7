// Package plan implements the itinerary day/ordering engine: partitioning
// items into day buckets, keeping each bucket strictly ordered, and the pure
// mutation operations over that structure (add, remove, move, reassign).
//
// Nothing in this package performs I/O. Every function is a pure
// transformation over its inputs, safe to call on every render. Persistence
// and optimistic sync live in internal/editor; this package only decides what
// the next valid state looks like.
package plan

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/tripdesk/backend/internal/domain"
)

// DayCount returns the number of calendar days spanned by [start, end],
// inclusive of both endpoints. Returns domain.ErrInvalidRange when end
// precedes start. Time-of-day and zone components are ignored.
func DayCount(start, end time.Time) (int, error) {
	s := midnightUTC(start)
	e := midnightUTC(end)
	if e.Before(s) {
		return 0, domain.ErrInvalidRange
	}
	return int(e.Sub(s).Hours()/24) + 1, nil
}

// DayDate returns the calendar date of day n (1-based) for an itinerary
// starting at start.
func DayDate(start time.Time, n int) time.Time {
	return midnightUTC(start).AddDate(0, 0, n-1)
}

// midnightUTC strips the time-of-day and zone from t, keeping only the
// calendar date. Anchoring in UTC keeps day arithmetic immune to DST jumps.
func midnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayProjection is the derived, render-ready view of one itinerary day:
// its label, calendar date, and items sorted by order-in-day. It has no
// lifecycle of its own — recompute it whenever the itinerary or its items
// change.
type DayProjection struct {
	Number int
	Date   time.Time
	Label  string
	Items  []domain.Item
}

// GroupByDay buckets items by day number and sorts each bucket by OrderInDay
// ascending. Duplicate order values are not expected (uniqueness is an
// invariant maintained by the mutation operations), but if present the sort
// is stable, so original slice order breaks the tie.
func GroupByDay(items []domain.Item) map[int][]domain.Item {
	buckets := make(map[int][]domain.Item)
	for _, it := range items {
		buckets[it.DayNumber] = append(buckets[it.DayNumber], it)
	}
	for day := range buckets {
		sort.SliceStable(buckets[day], func(i, j int) bool {
			return buckets[day][i].OrderInDay < buckets[day][j].OrderInDay
		})
	}
	return buckets
}

// Projections maps (itinerary dates, items) to the full ordered list of day
// projections, one per day of the trip. Days with no items get an empty,
// non-nil item slice so callers can range without nil checks.
func Projections(it domain.Itinerary, items []domain.Item) ([]DayProjection, error) {
	count, err := DayCount(it.StartDate, it.EndDate)
	if err != nil {
		return nil, err
	}

	buckets := GroupByDay(items)
	days := make([]DayProjection, count)
	for n := 1; n <= count; n++ {
		bucket := buckets[n]
		if bucket == nil {
			bucket = []domain.Item{}
		}
		days[n-1] = DayProjection{
			Number: n,
			Date:   DayDate(it.StartDate, n),
			Label:  fmt.Sprintf("Day %d", n),
			Items:  bucket,
		}
	}
	return days, nil
}

// PlaceResolver looks up a place by id. It is how the engine reaches the
// external place catalog without owning it; ok=false means the place is
// unknown to the catalog.
type PlaceResolver func(id uuid.UUID) (domain.Place, bool)

// MapPoints projects items onto the map: one point per item whose place
// resolves and has coordinates. Items with unresolvable or ungeocoded places
// are silently excluded — an incomplete map is preferable to a failed render.
func MapPoints(items []domain.Item, resolve PlaceResolver) []domain.MapPoint {
	points := []domain.MapPoint{}
	for _, it := range items {
		place, ok := resolve(it.PlaceID)
		if !ok || !place.HasCoordinates() {
			continue
		}
		points = append(points, domain.MapPoint{
			ID:      it.ID,
			Lat:     *place.Lat,
			Lng:     *place.Lng,
			Name:    place.Name,
			Address: place.Address,
			Rating:  place.Rating,
		})
	}
	return points
}
