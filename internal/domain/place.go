package domain

import (
	"time"

	"github.com/google/uuid"
)

// Place is a catalog entity an item points at. The itinerary engine stores
// only the reference; place attributes are read-only decoration resolved at
// render time. Lat/Lng are nil for places that have not been geocoded.
type Place struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Lat       *float64  `json:"lat,omitempty"`
	Lng       *float64  `json:"lng,omitempty"`
	Rating    *float64  `json:"rating,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasCoordinates reports whether the place can be plotted on a map.
func (p Place) HasCoordinates() bool {
	return p.Lat != nil && p.Lng != nil
}

// MapPoint is the map-projection view of one item: the place attributes a map
// widget needs, keyed by the item's id. Items whose place has no coordinates
// never appear as map points.
type MapPoint struct {
	ID      uuid.UUID `json:"id"`
	Lat     float64   `json:"lat"`
	Lng     float64   `json:"lng"`
	Name    string    `json:"name"`
	Address string    `json:"address,omitempty"`
	Rating  *float64  `json:"rating,omitempty"`
}
