// Package service contains the business logic for the Tripdesk API.
// Services validate inputs, enforce scheduling rules, and orchestrate repo
// calls. No SQL lives here — services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tripdesk/backend/internal/domain"
	"github.com/tripdesk/backend/internal/plan"
	"github.com/tripdesk/backend/internal/repo"
)

// ItineraryService implements business logic for itinerary operations.
// It holds the item repo as well because creating an itinerary may carry an
// initial batch of items, and shrinking the date range must be checked against
// the items already scheduled.
type ItineraryService struct {
	itineraries repo.ItineraryRepo
	items       repo.ItemRepo
	places      repo.PlaceRepo
}

// NewItineraryService constructs an ItineraryService backed by the provided repos.
func NewItineraryService(itineraries repo.ItineraryRepo, items repo.ItemRepo, places repo.PlaceRepo) *ItineraryService {
	return &ItineraryService{itineraries: itineraries, items: items, places: places}
}

// Create validates and persists a new itinerary, optionally with an initial
// item batch. Item day numbers are checked against the new date range before
// anything is written.
// Returns domain.ErrValidation if input violates scheduling rules.
func (s *ItineraryService) Create(ctx context.Context, it domain.Itinerary, items []domain.Item) (domain.Detail, error) {
	if err := plan.ValidateHeader(it.Title, it.StartDate, it.EndDate); err != nil {
		return domain.Detail{}, err
	}
	dayCount, err := plan.DayCount(it.StartDate, it.EndDate)
	if err != nil {
		return domain.Detail{}, err
	}
	if err := plan.ValidateItems(items, dayCount); err != nil {
		return domain.Detail{}, err
	}
	if err := requirePlaces(ctx, s.places, items); err != nil {
		return domain.Detail{}, fmt.Errorf("service.ItineraryService.Create: %w", err)
	}

	created, err := s.itineraries.Create(ctx, it)
	if err != nil {
		return domain.Detail{}, fmt.Errorf("service.ItineraryService.Create: %w", err)
	}

	stored := []domain.Item{}
	for _, item := range items {
		item.ItineraryID = created.ID
		persisted, err := s.items.Create(ctx, item)
		if err != nil {
			return domain.Detail{}, fmt.Errorf("service.ItineraryService.Create: item: %w", err)
		}
		stored = append(stored, persisted)
	}

	return domain.Detail{Itinerary: created, Items: stored}, nil
}

// GetDetail returns an itinerary header together with all its items ordered
// by (day, order). Returns domain.ErrNotFound if the itinerary does not exist.
func (s *ItineraryService) GetDetail(ctx context.Context, id uuid.UUID) (domain.Detail, error) {
	it, err := s.itineraries.GetByID(ctx, id)
	if err != nil {
		return domain.Detail{}, fmt.Errorf("service.ItineraryService.GetDetail: %w", err)
	}
	items, err := s.items.ListByItinerary(ctx, id)
	if err != nil {
		return domain.Detail{}, fmt.Errorf("service.ItineraryService.GetDetail: items: %w", err)
	}
	if items == nil {
		items = []domain.Item{}
	}
	return domain.Detail{Itinerary: it, Items: items}, nil
}

// ListPaged returns one page of itinerary headers plus the total count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ItineraryService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Itinerary, int64, error) {
	page, total, err := s.itineraries.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ItineraryService.ListPaged: %w", err)
	}
	if page == nil {
		page = []domain.Itinerary{}
	}
	return page, total, nil
}

// Update overwrites the itinerary header. Shrinking the date range is refused
// while items are still scheduled on days that would fall outside it — the
// caller has to move or remove those items first.
// Returns domain.ErrValidation for invalid input, domain.ErrNotFound if the
// itinerary does not exist.
func (s *ItineraryService) Update(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	if err := plan.ValidateHeader(it.Title, it.StartDate, it.EndDate); err != nil {
		return domain.Itinerary{}, err
	}

	dayCount, err := plan.DayCount(it.StartDate, it.EndDate)
	if err != nil {
		return domain.Itinerary{}, err
	}
	items, err := s.items.ListByItinerary(ctx, it.ID)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Update: items: %w", err)
	}
	for _, item := range items {
		if item.DayNumber > dayCount {
			return domain.Itinerary{}, fmt.Errorf("item %s is scheduled on day %d of %d: %w",
				item.ID, item.DayNumber, dayCount, domain.ErrOutOfRange)
		}
	}

	updated, err := s.itineraries.Update(ctx, it)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes an itinerary and, via FK cascade, all its items.
// Returns domain.ErrNotFound if it does not exist.
func (s *ItineraryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.itineraries.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.ItineraryService.Delete: %w", err)
	}
	return nil
}

// requirePlaces verifies every place referenced by the batch exists in the
// catalog, so a dangling reference fails before any row is written.
func requirePlaces(ctx context.Context, places repo.PlaceRepo, items []domain.Item) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(items))
	seen := make(map[uuid.UUID]bool, len(items))
	for _, it := range items {
		if !seen[it.PlaceID] {
			seen[it.PlaceID] = true
			ids = append(ids, it.PlaceID)
		}
	}
	found, err := places.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return fmt.Errorf("place %s: %w", id, domain.ErrMissingPlace)
		}
	}
	return nil
}
