// Package handler implements the HTTP layer of the Tripdesk API.
// Handlers are methods on Server, split into resource-specific files
// (itinerary.go, item.go, place.go) that all share the same struct so they
// can reach its dependencies. Wire shapes live in internal/api; handlers only
// decode, dispatch to a servicer, and encode.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tripdesk/backend/internal/domain"
	"github.com/tripdesk/backend/spec"
)

// ItineraryServicer defines the business operations the itinerary handlers
// depend on. Defining the interface here (in the consumer package) lets
// handler tests inject a mock without touching the database or service layer.
type ItineraryServicer interface {
	Create(ctx context.Context, it domain.Itinerary, items []domain.Item) (domain.Detail, error)
	GetDetail(ctx context.Context, id uuid.UUID) (domain.Detail, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Itinerary, int64, error)
	Update(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ItemServicer defines the business operations the item handlers depend on.
type ItemServicer interface {
	Add(ctx context.Context, itineraryID uuid.UUID, items []domain.Item) ([]domain.Item, error)
	UpdateFields(ctx context.Context, itineraryID, itemID uuid.UUID, fields domain.ItemFields) (domain.Item, error)
	Move(ctx context.Context, itineraryID, itemID uuid.UUID, day, order int) error
	Delete(ctx context.Context, itineraryID, itemID uuid.UUID) error
}

// PlaceServicer defines the business operations the place handlers depend on.
type PlaceServicer interface {
	Create(ctx context.Context, p domain.Place) (domain.Place, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Place, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Place, int64, error)
}

// Server holds the handlers' dependencies. Methods live in resource-specific
// files but all operate on this struct.
type Server struct {
	itineraries ItineraryServicer
	items       ItemServicer
	places      PlaceServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(itineraries ItineraryServicer, items ItemServicer, places PlaceServicer) *Server {
	return &Server{itineraries: itineraries, items: items, places: places}
}

// Routes returns the chi router with every API endpoint registered.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", serveOpenAPI)

	r.Route("/itineraries", func(r chi.Router) {
		r.Post("/", s.CreateItinerary)
		r.Get("/", s.ListItineraries)
		r.Route("/{itineraryID}", func(r chi.Router) {
			r.Get("/", s.GetItinerary)
			r.Put("/", s.UpdateItinerary)
			r.Delete("/", s.DeleteItinerary)
			r.Post("/items", s.AddItems)
			r.Route("/items/{itemID}", func(r chi.Router) {
				r.Put("/", s.UpdateItem)
				r.Delete("/", s.DeleteItem)
				r.Post("/move", s.MoveItem)
			})
		})
	})

	r.Route("/places", func(r chi.Router) {
		r.Post("/", s.CreatePlace)
		r.Get("/", s.ListPlaces)
		r.Get("/{placeID}", s.GetPlace)
	})

	return r
}

// serveOpenAPI serves the embedded API contract. Serving it from the binary
// means the contract and the running code are always in sync.
func serveOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(spec.OpenAPI)
}

// respondJSON writes v as a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("handler: encode response", "error", err)
	}
}

// decodeJSON decodes the request body into v, rejecting unknown fields so
// typos in client payloads fail loudly instead of being silently dropped.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// pathUUID extracts a UUID URL parameter, reporting ok=false on a malformed id.
func pathUUID(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// queryInt parses an optional integer query parameter, returning nil when the
// parameter is absent or malformed so pagination falls back to its defaults.
func queryInt(r *http.Request, name string) *int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}
