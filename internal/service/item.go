package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tripdesk/backend/internal/domain"
	"github.com/tripdesk/backend/internal/plan"
	"github.com/tripdesk/backend/internal/repo"
)

// ItemService implements business logic for itinerary item operations.
// It holds the itinerary repo because every item operation is scoped to a
// parent itinerary, and day numbers are validated against its date range.
type ItemService struct {
	itineraries repo.ItineraryRepo
	items       repo.ItemRepo
	places      repo.PlaceRepo
}

// NewItemService constructs an ItemService backed by the provided repos.
func NewItemService(itineraries repo.ItineraryRepo, items repo.ItemRepo, places repo.PlaceRepo) *ItemService {
	return &ItemService{itineraries: itineraries, items: items, places: places}
}

// Add validates a batch of new items against the parent itinerary's date
// range and persists them in submission order. Client-supplied ids are
// discarded; the database assigns identity.
// Returns domain.ErrNotFound if the itinerary does not exist,
// domain.ErrValidation (or one of its named cases) for rule violations.
func (s *ItemService) Add(ctx context.Context, itineraryID uuid.UUID, items []domain.Item) ([]domain.Item, error) {
	it, err := s.itineraries.GetByID(ctx, itineraryID)
	if err != nil {
		return nil, fmt.Errorf("service.ItemService.Add: %w", err)
	}
	dayCount, err := plan.DayCount(it.StartDate, it.EndDate)
	if err != nil {
		return nil, err
	}
	if err := plan.ValidateItems(items, dayCount); err != nil {
		return nil, err
	}
	if err := requirePlaces(ctx, s.places, items); err != nil {
		return nil, fmt.Errorf("service.ItemService.Add: %w", err)
	}

	stored := []domain.Item{}
	for _, item := range items {
		item.ID = uuid.Nil
		item.ItineraryID = itineraryID
		persisted, err := s.items.Create(ctx, item)
		if err != nil {
			return nil, fmt.Errorf("service.ItemService.Add: %w", err)
		}
		stored = append(stored, persisted)
	}
	return stored, nil
}

// UpdateFields replaces an item's editable fields wholesale, leaving its
// day and order untouched.
// Returns domain.ErrValidation for invalid fields, domain.ErrNotFound if the
// item does not exist under the given itinerary.
func (s *ItemService) UpdateFields(ctx context.Context, itineraryID, itemID uuid.UUID, fields domain.ItemFields) (domain.Item, error) {
	if err := plan.ValidateFields(fields); err != nil {
		return domain.Item{}, err
	}
	updated, err := s.items.UpdateFields(ctx, itineraryID, itemID, fields)
	if err != nil {
		return domain.Item{}, fmt.Errorf("service.ItemService.UpdateFields: %w", err)
	}
	return updated, nil
}

// Move repositions an item to (day, order), swapping with the occupant of the
// target slot when there is one. The target day must fall inside the
// itinerary's date range.
// Returns domain.ErrOutOfRange for a day outside the range,
// domain.ErrNotFound if the item does not exist under the given itinerary.
func (s *ItemService) Move(ctx context.Context, itineraryID, itemID uuid.UUID, day, order int) error {
	it, err := s.itineraries.GetByID(ctx, itineraryID)
	if err != nil {
		return fmt.Errorf("service.ItemService.Move: %w", err)
	}
	dayCount, err := plan.DayCount(it.StartDate, it.EndDate)
	if err != nil {
		return err
	}
	if day < 1 || day > dayCount {
		return fmt.Errorf("day %d of %d: %w", day, dayCount, domain.ErrOutOfRange)
	}
	if order < 1 {
		return fmt.Errorf("%w: order in day must be positive, got %d", domain.ErrValidation, order)
	}

	if err := s.items.Move(ctx, itineraryID, itemID, day, order); err != nil {
		return fmt.Errorf("service.ItemService.Move: %w", err)
	}
	return nil
}

// Delete removes an item by ID, scoped to the given itinerary. Remaining
// order values are left as they are; gaps are fine, only relative order
// matters.
// Returns domain.ErrNotFound if the item does not exist under the itinerary.
func (s *ItemService) Delete(ctx context.Context, itineraryID, itemID uuid.UUID) error {
	if err := s.items.Delete(ctx, itineraryID, itemID); err != nil {
		return fmt.Errorf("service.ItemService.Delete: %w", err)
	}
	return nil
}
