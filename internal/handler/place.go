package handler

import (
	"net/http"

	"github.com/tripdesk/backend/internal/api"
	"github.com/tripdesk/backend/internal/domain"
)

// CreatePlace handles POST /places.
func (s *Server) CreatePlace(w http.ResponseWriter, r *http.Request) {
	var req api.CreatePlaceRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, badRequestBody("malformed request body"))
		return
	}

	p := domain.Place{
		Name:   req.Name,
		Lat:    req.Lat,
		Lng:    req.Lng,
		Rating: req.Rating,
	}
	if req.Address != nil {
		p.Address = *req.Address
	}

	created, err := s.places.Create(r.Context(), p)
	if err != nil {
		respondServiceError(w, err, "place not found")
		return
	}

	respondJSON(w, http.StatusCreated, api.FromPlace(created))
}

// ListPlaces handles GET /places.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListPlaces(w http.ResponseWriter, r *http.Request) {
	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))

	page, total, err := s.places.ListPaged(r.Context(), params)
	if err != nil {
		respondServiceError(w, err, "place not found")
		return
	}

	data := make([]api.Place, len(page))
	for i, p := range page {
		data[i] = api.FromPlace(p)
	}
	respondJSON(w, http.StatusOK, api.PlaceList{
		Data: data,
		Pagination: api.Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	})
}

// GetPlace handles GET /places/{placeID}.
func (s *Server) GetPlace(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "placeID")
	if !ok {
		respondJSON(w, http.StatusBadRequest, badRequestBody("malformed place id"))
		return
	}

	p, err := s.places.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "place not found")
		return
	}

	respondJSON(w, http.StatusOK, api.FromPlace(p))
}
