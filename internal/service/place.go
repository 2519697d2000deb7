package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tripdesk/backend/internal/domain"
	"github.com/tripdesk/backend/internal/repo"
)

// PlaceService implements business logic for the place catalog.
type PlaceService struct {
	places repo.PlaceRepo
}

// NewPlaceService constructs a PlaceService backed by the provided PlaceRepo.
func NewPlaceService(places repo.PlaceRepo) *PlaceService {
	return &PlaceService{places: places}
}

// Create validates and persists a new catalog place.
// Returns domain.ErrValidation if input violates business rules.
func (s *PlaceService) Create(ctx context.Context, p domain.Place) (domain.Place, error) {
	if err := validatePlace(p); err != nil {
		return domain.Place{}, err
	}
	result, err := s.places.Create(ctx, p)
	if err != nil {
		return domain.Place{}, fmt.Errorf("service.PlaceService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single place by ID.
// Returns domain.ErrNotFound if no place with that ID exists.
func (s *PlaceService) GetByID(ctx context.Context, id uuid.UUID) (domain.Place, error) {
	result, err := s.places.GetByID(ctx, id)
	if err != nil {
		return domain.Place{}, fmt.Errorf("service.PlaceService.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of places ordered by name plus the total count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *PlaceService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Place, int64, error) {
	page, total, err := s.places.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.PlaceService.ListPaged: %w", err)
	}
	if page == nil {
		page = []domain.Place{}
	}
	return page, total, nil
}

// validatePlace enforces catalog rules:
//   - Name must be non-empty (whitespace-only names are rejected).
//   - Lat and Lng must be set together and fall in valid geographic bounds.
//   - Rating, if set, must be between 0 and 5.
func validatePlace(p domain.Place) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if (p.Lat == nil) != (p.Lng == nil) {
		return fmt.Errorf("%w: lat and lng must be provided together", domain.ErrValidation)
	}
	if p.Lat != nil {
		if *p.Lat < -90 || *p.Lat > 90 {
			return fmt.Errorf("%w: lat must be between -90 and 90", domain.ErrValidation)
		}
		if *p.Lng < -180 || *p.Lng > 180 {
			return fmt.Errorf("%w: lng must be between -180 and 180", domain.ErrValidation)
		}
	}
	if p.Rating != nil && (*p.Rating < 0 || *p.Rating > 5) {
		return fmt.Errorf("%w: rating must be between 0 and 5", domain.ErrValidation)
	}
	return nil
}
