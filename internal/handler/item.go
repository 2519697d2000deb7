package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/tripdesk/backend/internal/api"
	"github.com/tripdesk/backend/internal/domain"
)

// AddItems handles POST /itineraries/{itineraryID}/items. The batch is
// persisted in submission order; the response carries the stored items with
// their server-assigned ids, in the same order.
func (s *Server) AddItems(w http.ResponseWriter, r *http.Request) {
	itineraryID, ok := pathUUID(r, "itineraryID")
	if !ok {
		respondJSON(w, http.StatusBadRequest, badRequestBody("malformed itinerary id"))
		return
	}

	var req api.AddItemsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, badRequestBody("malformed request body"))
		return
	}
	if len(req.Items) == 0 {
		respondJSON(w, http.StatusBadRequest, badRequestBody("items must not be empty"))
		return
	}

	items := make([]domain.Item, len(req.Items))
	for i, n := range req.Items {
		items[i] = api.FromNewItem(n)
	}

	stored, err := s.items.Add(r.Context(), itineraryID, items)
	if err != nil {
		respondServiceError(w, err, "itinerary not found")
		return
	}

	data := make([]api.Item, len(stored))
	for i, item := range stored {
		data[i] = api.FromItem(item)
	}
	respondJSON(w, http.StatusCreated, data)
}

// UpdateItem handles PUT /itineraries/{itineraryID}/items/{itemID}.
// The body replaces the item's editable fields wholesale; day and order are
// only changed through the move endpoint.
func (s *Server) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itineraryID, itemID, ok := itemPath(r)
	if !ok {
		respondJSON(w, http.StatusBadRequest, badRequestBody("malformed id"))
		return
	}

	var req api.UpdateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, badRequestBody("malformed request body"))
		return
	}

	updated, err := s.items.UpdateFields(r.Context(), itineraryID, itemID, api.ToFields(req))
	if err != nil {
		respondServiceError(w, err, "item not found")
		return
	}

	respondJSON(w, http.StatusOK, api.FromItem(updated))
}

// MoveItem handles POST /itineraries/{itineraryID}/items/{itemID}/move.
// Both intra-day reorders and day reassignments go through here; the server
// swaps with the occupant of the target slot when there is one.
func (s *Server) MoveItem(w http.ResponseWriter, r *http.Request) {
	itineraryID, itemID, ok := itemPath(r)
	if !ok {
		respondJSON(w, http.StatusBadRequest, badRequestBody("malformed id"))
		return
	}

	var req api.MoveItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, badRequestBody("malformed request body"))
		return
	}

	if err := s.items.Move(r.Context(), itineraryID, itemID, req.DayNumber, req.OrderInDay); err != nil {
		respondServiceError(w, err, "item not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteItem handles DELETE /itineraries/{itineraryID}/items/{itemID}.
func (s *Server) DeleteItem(w http.ResponseWriter, r *http.Request) {
	itineraryID, itemID, ok := itemPath(r)
	if !ok {
		respondJSON(w, http.StatusBadRequest, badRequestBody("malformed id"))
		return
	}

	if err := s.items.Delete(r.Context(), itineraryID, itemID); err != nil {
		respondServiceError(w, err, "item not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// itemPath extracts the itinerary and item ids from the URL.
func itemPath(r *http.Request) (itineraryID, itemID uuid.UUID, ok bool) {
	itineraryID, ok = pathUUID(r, "itineraryID")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	itemID, ok = pathUUID(r, "itemID")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return itineraryID, itemID, true
}
