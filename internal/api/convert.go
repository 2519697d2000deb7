package api

import (
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/tripdesk/backend/internal/domain"
)

// Converters between wire and domain shapes. The server handlers and the
// HTTP client share these so the two sides cannot drift apart.

// FromItinerary converts a domain itinerary to its wire form.
func FromItinerary(it domain.Itinerary) Itinerary {
	out := Itinerary{
		Id:        it.ID,
		Title:     it.Title,
		StartDate: openapi_types.Date{Time: it.StartDate},
		EndDate:   openapi_types.Date{Time: it.EndDate},
		CreatedAt: it.CreatedAt,
		UpdatedAt: it.UpdatedAt,
	}
	out.Notes = nilIfEmpty(it.Notes)
	return out
}

// ToItinerary converts a wire itinerary back to the domain shape.
func ToItinerary(it Itinerary) domain.Itinerary {
	return domain.Itinerary{
		ID:        it.Id,
		Title:     it.Title,
		StartDate: it.StartDate.Time,
		EndDate:   it.EndDate.Time,
		Notes:     deref(it.Notes),
		CreatedAt: it.CreatedAt,
		UpdatedAt: it.UpdatedAt,
	}
}

// FromItem converts a domain item to its wire form.
func FromItem(it domain.Item) Item {
	return Item{
		Id:            it.ID,
		ItineraryId:   it.ItineraryID,
		PlaceId:       it.PlaceID,
		DayNumber:     it.DayNumber,
		OrderInDay:    it.OrderInDay,
		StartTime:     it.StartTime,
		EndTime:       it.EndTime,
		Description:   nilIfEmpty(it.Description),
		EstimatedCost: it.EstimatedCost,
		Transport:     it.Transport,
		CreatedAt:     it.CreatedAt,
		UpdatedAt:     it.UpdatedAt,
	}
}

// ToItem converts a wire item back to the domain shape.
func ToItem(it Item) domain.Item {
	return domain.Item{
		ID:          it.Id,
		ItineraryID: it.ItineraryId,
		PlaceID:     it.PlaceId,
		DayNumber:   it.DayNumber,
		OrderInDay:  it.OrderInDay,
		ItemFields: domain.ItemFields{
			StartTime:     it.StartTime,
			EndTime:       it.EndTime,
			Description:   deref(it.Description),
			EstimatedCost: it.EstimatedCost,
			Transport:     it.Transport,
		},
		CreatedAt: it.CreatedAt,
		UpdatedAt: it.UpdatedAt,
	}
}

// FromNewItem converts a submitted item to a domain item without identity;
// the caller decides ids and ownership.
func FromNewItem(n NewItem) domain.Item {
	return domain.Item{
		PlaceID:    n.PlaceId,
		DayNumber:  n.DayNumber,
		OrderInDay: n.OrderInDay,
		ItemFields: domain.ItemFields{
			StartTime:     n.StartTime,
			EndTime:       n.EndTime,
			Description:   deref(n.Description),
			EstimatedCost: n.EstimatedCost,
			Transport:     n.Transport,
		},
	}
}

// ToNewItem converts a domain item draft into the submission shape.
func ToNewItem(it domain.Item) NewItem {
	return NewItem{
		PlaceId:       it.PlaceID,
		DayNumber:     it.DayNumber,
		OrderInDay:    it.OrderInDay,
		StartTime:     it.StartTime,
		EndTime:       it.EndTime,
		Description:   nilIfEmpty(it.Description),
		EstimatedCost: it.EstimatedCost,
		Transport:     it.Transport,
	}
}

// FromFields converts editable fields into an update request body.
func FromFields(f domain.ItemFields) UpdateItemRequest {
	return UpdateItemRequest{
		StartTime:     f.StartTime,
		EndTime:       f.EndTime,
		Description:   nilIfEmpty(f.Description),
		EstimatedCost: f.EstimatedCost,
		Transport:     f.Transport,
	}
}

// ToFields converts an update request body into editable fields.
func ToFields(r UpdateItemRequest) domain.ItemFields {
	return domain.ItemFields{
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		Description:   deref(r.Description),
		EstimatedCost: r.EstimatedCost,
		Transport:     r.Transport,
	}
}

// FromPlace converts a domain place to its wire form.
func FromPlace(p domain.Place) Place {
	return Place{
		Id:        p.ID,
		Name:      p.Name,
		Address:   nilIfEmpty(p.Address),
		Lat:       p.Lat,
		Lng:       p.Lng,
		Rating:    p.Rating,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ToPlace converts a wire place back to the domain shape.
func ToPlace(p Place) domain.Place {
	return domain.Place{
		ID:        p.Id,
		Name:      p.Name,
		Address:   deref(p.Address),
		Lat:       p.Lat,
		Lng:       p.Lng,
		Rating:    p.Rating,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// nilIfEmpty converts an empty string to a nil pointer so optional JSON
// fields are omitted rather than sent as "".
func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// deref safely dereferences a *string, returning "" when nil.
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
