// Package api defines the JSON wire types of the itinerary persistence API.
// Both the server handlers and the HTTP client marshal through these types,
// so the contract lives in exactly one place. Calendar dates use
// openapi_types.Date ("2006-01-02"); times of day use domain.ClockTime
// ("15:04").
package api

import (
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/tripdesk/backend/internal/domain"
)

// ErrorDetail is the machine-readable part of an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// Pagination echoes the applied page/limit and the total row count.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// Itinerary is the wire form of an itinerary header.
type Itinerary struct {
	Id        uuid.UUID          `json:"id"`
	Title     string             `json:"title"`
	StartDate openapi_types.Date `json:"start_date"`
	EndDate   openapi_types.Date `json:"end_date"`
	Notes     *string            `json:"notes,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// Item is the wire form of a scheduled item.
type Item struct {
	Id            uuid.UUID             `json:"id"`
	ItineraryId   uuid.UUID             `json:"itinerary_id"`
	PlaceId       uuid.UUID             `json:"place_id"`
	DayNumber     int                   `json:"day_number"`
	OrderInDay    int                   `json:"order_in_day"`
	StartTime     *domain.ClockTime     `json:"start_time,omitempty"`
	EndTime       *domain.ClockTime     `json:"end_time,omitempty"`
	Description   *string               `json:"description,omitempty"`
	EstimatedCost *float64              `json:"estimated_cost,omitempty"`
	Transport     *domain.TransportMode `json:"transport,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// ItineraryDetail is the header plus the full item collection.
type ItineraryDetail struct {
	Itinerary Itinerary `json:"itinerary"`
	Items     []Item    `json:"items"`
}

// ItineraryList is the paginated list response.
type ItineraryList struct {
	Data       []Itinerary `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// NewItem is an item as submitted by the client. The id, when present, is a
// client-generated temporary id; the server ignores it and assigns its own.
type NewItem struct {
	PlaceId       uuid.UUID             `json:"place_id"`
	DayNumber     int                   `json:"day_number"`
	OrderInDay    int                   `json:"order_in_day"`
	StartTime     *domain.ClockTime     `json:"start_time,omitempty"`
	EndTime       *domain.ClockTime     `json:"end_time,omitempty"`
	Description   *string               `json:"description,omitempty"`
	EstimatedCost *float64              `json:"estimated_cost,omitempty"`
	Transport     *domain.TransportMode `json:"transport,omitempty"`
}

// CreateItineraryRequest creates an itinerary, optionally with initial items.
type CreateItineraryRequest struct {
	Title     string             `json:"title"`
	StartDate openapi_types.Date `json:"start_date"`
	EndDate   openapi_types.Date `json:"end_date"`
	Notes     *string            `json:"notes,omitempty"`
	Items     []NewItem          `json:"items,omitempty"`
}

// UpdateItineraryRequest overwrites the header fields.
type UpdateItineraryRequest struct {
	Title     string             `json:"title"`
	StartDate openapi_types.Date `json:"start_date"`
	EndDate   openapi_types.Date `json:"end_date"`
	Notes     *string            `json:"notes,omitempty"`
}

// AddItemsRequest appends new items to an itinerary.
type AddItemsRequest struct {
	Items []NewItem `json:"items"`
}

// UpdateItemRequest replaces an item's editable fields wholesale.
// Omitted optional fields become absent, which is how an edit clears them.
type UpdateItemRequest struct {
	StartTime     *domain.ClockTime     `json:"start_time,omitempty"`
	EndTime       *domain.ClockTime     `json:"end_time,omitempty"`
	Description   *string               `json:"description,omitempty"`
	EstimatedCost *float64              `json:"estimated_cost,omitempty"`
	Transport     *domain.TransportMode `json:"transport,omitempty"`
}

// MoveItemRequest repositions an item in one atomic positional update.
type MoveItemRequest struct {
	DayNumber  int `json:"day_number"`
	OrderInDay int `json:"order_in_day"`
}

// Place is the wire form of a catalog place.
type Place struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   *string   `json:"address,omitempty"`
	Lat       *float64  `json:"lat,omitempty"`
	Lng       *float64  `json:"lng,omitempty"`
	Rating    *float64  `json:"rating,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PlaceList is the paginated place list response.
type PlaceList struct {
	Data       []Place    `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// CreatePlaceRequest registers a place in the catalog.
type CreatePlaceRequest struct {
	Name    string   `json:"name"`
	Address *string  `json:"address,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
	Rating  *float64 `json:"rating,omitempty"`
}
