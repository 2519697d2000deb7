package handler

import (
	"net/http"

	"github.com/tripdesk/backend/internal/api"
	"github.com/tripdesk/backend/internal/domain"
)

// CreateItinerary handles POST /itineraries. The body may carry an initial
// item batch; the whole request succeeds or fails as one unit.
func (s *Server) CreateItinerary(w http.ResponseWriter, r *http.Request) {
	var req api.CreateItineraryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, badRequestBody("malformed request body"))
		return
	}

	items := make([]domain.Item, len(req.Items))
	for i, n := range req.Items {
		items[i] = api.FromNewItem(n)
	}

	detail, err := s.itineraries.Create(r.Context(), requestToItinerary(req), items)
	if err != nil {
		respondServiceError(w, err, "itinerary not found")
		return
	}

	respondJSON(w, http.StatusCreated, detailToResponse(detail))
}

// ListItineraries handles GET /itineraries.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListItineraries(w http.ResponseWriter, r *http.Request) {
	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))

	page, total, err := s.itineraries.ListPaged(r.Context(), params)
	if err != nil {
		respondServiceError(w, err, "itinerary not found")
		return
	}

	data := make([]api.Itinerary, len(page))
	for i, it := range page {
		data[i] = api.FromItinerary(it)
	}
	respondJSON(w, http.StatusOK, api.ItineraryList{
		Data: data,
		Pagination: api.Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	})
}

// GetItinerary handles GET /itineraries/{itineraryID}. The response carries
// the header plus all items, ordered by (day, order).
func (s *Server) GetItinerary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "itineraryID")
	if !ok {
		respondJSON(w, http.StatusBadRequest, badRequestBody("malformed itinerary id"))
		return
	}

	detail, err := s.itineraries.GetDetail(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "itinerary not found")
		return
	}

	respondJSON(w, http.StatusOK, detailToResponse(detail))
}

// UpdateItinerary handles PUT /itineraries/{itineraryID}.
func (s *Server) UpdateItinerary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "itineraryID")
	if !ok {
		respondJSON(w, http.StatusBadRequest, badRequestBody("malformed itinerary id"))
		return
	}

	var req api.UpdateItineraryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, badRequestBody("malformed request body"))
		return
	}

	it := domain.Itinerary{
		ID:        id,
		Title:     req.Title,
		StartDate: req.StartDate.Time,
		EndDate:   req.EndDate.Time,
	}
	if req.Notes != nil {
		it.Notes = *req.Notes
	}

	updated, err := s.itineraries.Update(r.Context(), it)
	if err != nil {
		respondServiceError(w, err, "itinerary not found")
		return
	}

	respondJSON(w, http.StatusOK, api.FromItinerary(updated))
}

// DeleteItinerary handles DELETE /itineraries/{itineraryID}.
func (s *Server) DeleteItinerary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "itineraryID")
	if !ok {
		respondJSON(w, http.StatusBadRequest, badRequestBody("malformed itinerary id"))
		return
	}

	if err := s.itineraries.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err, "itinerary not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

// requestToItinerary converts a create request body into a domain.Itinerary.
func requestToItinerary(req api.CreateItineraryRequest) domain.Itinerary {
	it := domain.Itinerary{
		Title:     req.Title,
		StartDate: req.StartDate.Time,
		EndDate:   req.EndDate.Time,
	}
	if req.Notes != nil {
		it.Notes = *req.Notes
	}
	return it
}

// detailToResponse converts a domain.Detail into its wire form.
func detailToResponse(d domain.Detail) api.ItineraryDetail {
	items := make([]api.Item, len(d.Items))
	for i, item := range d.Items {
		items[i] = api.FromItem(item)
	}
	return api.ItineraryDetail{
		Itinerary: api.FromItinerary(d.Itinerary),
		Items:     items,
	}
}
