package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripdesk/backend/internal/domain"
	"github.com/tripdesk/backend/internal/repo"
	"github.com/tripdesk/backend/internal/service"
)

// ---- mock repos ------------------------------------------------------------

// mockItineraryRepo is a hand-written test double for repo.ItineraryRepo.
type mockItineraryRepo struct {
	create    func(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Itinerary, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.Itinerary, int64, error)
	update    func(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockItineraryRepo) Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	return m.create(ctx, it)
}
func (m *mockItineraryRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Itinerary, error) {
	return m.getByID(ctx, id)
}
func (m *mockItineraryRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Itinerary, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockItineraryRepo) Update(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	return m.update(ctx, it)
}
func (m *mockItineraryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

// compile-time check: mockItineraryRepo must satisfy repo.ItineraryRepo.
var _ repo.ItineraryRepo = (*mockItineraryRepo)(nil)

// ---- helpers ---------------------------------------------------------------

func validItinerary() domain.Itinerary {
	return domain.Itinerary{
		Title:     "Tokyo Long Weekend",
		StartDate: time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 11, 12, 0, 0, 0, 0, time.UTC),
	}
}

// echoItemRepo returns a mockItemRepo whose Create echoes its input with a
// fresh id, which is enough for most itinerary-level tests.
func echoItemRepo() *mockItemRepo {
	return &mockItemRepo{
		create: func(_ context.Context, item domain.Item) (domain.Item, error) {
			item.ID = uuid.New()
			return item, nil
		},
		listByItinerary: func(_ context.Context, _ uuid.UUID) ([]domain.Item, error) {
			return nil, nil
		},
	}
}

// allFoundPlaceRepo returns a mockPlaceRepo that resolves every requested id.
func allFoundPlaceRepo() *mockPlaceRepo {
	return &mockPlaceRepo{
		getByIDs: func(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Place, error) {
			out := make(map[uuid.UUID]domain.Place, len(ids))
			for _, id := range ids {
				out[id] = domain.Place{ID: id, Name: "Somewhere"}
			}
			return out, nil
		},
	}
}

// ---- Create ----------------------------------------------------------------

func TestItineraryService_Create_OK(t *testing.T) {
	input := validItinerary()
	stored := input
	stored.ID = uuid.New()

	svc := service.NewItineraryService(
		&mockItineraryRepo{
			create: func(_ context.Context, _ domain.Itinerary) (domain.Itinerary, error) {
				return stored, nil
			},
		},
		echoItemRepo(),
		allFoundPlaceRepo(),
	)

	got, err := svc.Create(context.Background(), input, nil)

	require.NoError(t, err)
	assert.Equal(t, stored.ID, got.Itinerary.ID)
	assert.NotNil(t, got.Items)
	assert.Empty(t, got.Items)
}

func TestItineraryService_Create_WithItems(t *testing.T) {
	itineraryID := uuid.New()
	placeID := uuid.New()

	var capturedParent uuid.UUID
	itemRepo := echoItemRepo()
	itemRepo.create = func(_ context.Context, item domain.Item) (domain.Item, error) {
		capturedParent = item.ItineraryID
		item.ID = uuid.New()
		return item, nil
	}

	svc := service.NewItineraryService(
		&mockItineraryRepo{
			create: func(_ context.Context, it domain.Itinerary) (domain.Itinerary, error) {
				it.ID = itineraryID
				return it, nil
			},
		},
		itemRepo,
		allFoundPlaceRepo(),
	)

	items := []domain.Item{{PlaceID: placeID, DayNumber: 2, OrderInDay: 1}}
	got, err := svc.Create(context.Background(), validItinerary(), items)

	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, itineraryID, capturedParent, "items should be re-parented to the new itinerary")
	assert.NotEqual(t, uuid.Nil, got.Items[0].ID)
}

func TestItineraryService_Create_TitleRequired(t *testing.T) {
	svc := service.NewItineraryService(&mockItineraryRepo{}, echoItemRepo(), allFoundPlaceRepo())

	input := validItinerary()
	input.Title = "   "

	_, err := svc.Create(context.Background(), input, nil)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestItineraryService_Create_EndBeforeStart(t *testing.T) {
	svc := service.NewItineraryService(&mockItineraryRepo{}, echoItemRepo(), allFoundPlaceRepo())

	input := validItinerary()
	input.EndDate = input.StartDate.AddDate(0, 0, -1)

	_, err := svc.Create(context.Background(), input, nil)

	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

func TestItineraryService_Create_ItemDayOutOfRange(t *testing.T) {
	svc := service.NewItineraryService(&mockItineraryRepo{}, echoItemRepo(), allFoundPlaceRepo())

	// Nov 10–12 is three days; day 4 does not exist.
	items := []domain.Item{{PlaceID: uuid.New(), DayNumber: 4, OrderInDay: 1}}

	_, err := svc.Create(context.Background(), validItinerary(), items)

	assert.ErrorIs(t, err, domain.ErrOutOfRange)
}

func TestItineraryService_Create_UnknownPlace(t *testing.T) {
	svc := service.NewItineraryService(
		&mockItineraryRepo{},
		echoItemRepo(),
		&mockPlaceRepo{
			getByIDs: func(_ context.Context, _ []uuid.UUID) (map[uuid.UUID]domain.Place, error) {
				return map[uuid.UUID]domain.Place{}, nil
			},
		},
	)

	items := []domain.Item{{PlaceID: uuid.New(), DayNumber: 1, OrderInDay: 1}}

	_, err := svc.Create(context.Background(), validItinerary(), items)

	assert.ErrorIs(t, err, domain.ErrMissingPlace)
}

// ---- GetDetail -------------------------------------------------------------

func TestItineraryService_GetDetail_OK(t *testing.T) {
	id := uuid.New()
	items := []domain.Item{
		{ID: uuid.New(), ItineraryID: id, DayNumber: 1, OrderInDay: 1},
		{ID: uuid.New(), ItineraryID: id, DayNumber: 1, OrderInDay: 2},
	}

	itemRepo := echoItemRepo()
	itemRepo.listByItinerary = func(_ context.Context, _ uuid.UUID) ([]domain.Item, error) {
		return items, nil
	}

	svc := service.NewItineraryService(
		&mockItineraryRepo{
			getByID: func(_ context.Context, gotID uuid.UUID) (domain.Itinerary, error) {
				assert.Equal(t, id, gotID)
				return domain.Itinerary{ID: id, Title: "Trip"}, nil
			},
		},
		itemRepo,
		allFoundPlaceRepo(),
	)

	got, err := svc.GetDetail(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, id, got.Itinerary.ID)
	assert.Len(t, got.Items, 2)
}

func TestItineraryService_GetDetail_NotFound(t *testing.T) {
	svc := service.NewItineraryService(
		&mockItineraryRepo{
			getByID: func(_ context.Context, _ uuid.UUID) (domain.Itinerary, error) {
				return domain.Itinerary{}, domain.ErrNotFound
			},
		},
		echoItemRepo(),
		allFoundPlaceRepo(),
	)

	_, err := svc.GetDetail(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItineraryService_GetDetail_EmptyItemsNonNil(t *testing.T) {
	svc := service.NewItineraryService(
		&mockItineraryRepo{
			getByID: func(_ context.Context, id uuid.UUID) (domain.Itinerary, error) {
				return domain.Itinerary{ID: id}, nil
			},
		},
		echoItemRepo(),
		allFoundPlaceRepo(),
	)

	got, err := svc.GetDetail(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.NotNil(t, got.Items)
	assert.Empty(t, got.Items)
}

// ---- ListPaged -------------------------------------------------------------

func TestItineraryService_ListPaged_OK(t *testing.T) {
	svc := service.NewItineraryService(
		&mockItineraryRepo{
			listPaged: func(_ context.Context, _ domain.PaginationParams) ([]domain.Itinerary, int64, error) {
				return []domain.Itinerary{{ID: uuid.New()}, {ID: uuid.New()}}, 7, nil
			},
		},
		echoItemRepo(),
		allFoundPlaceRepo(),
	)

	page, total, err := svc.ListPaged(context.Background(), domain.PaginationParams{Page: 1, Limit: 2})

	require.NoError(t, err)
	assert.Len(t, page, 2)
	assert.Equal(t, int64(7), total)
}

func TestItineraryService_ListPaged_ReturnsEmptySlice(t *testing.T) {
	svc := service.NewItineraryService(
		&mockItineraryRepo{
			listPaged: func(_ context.Context, _ domain.PaginationParams) ([]domain.Itinerary, int64, error) {
				return nil, 0, nil
			},
		},
		echoItemRepo(),
		allFoundPlaceRepo(),
	)

	page, _, err := svc.ListPaged(context.Background(), domain.PaginationParams{Page: 1, Limit: 20})

	require.NoError(t, err)
	assert.NotNil(t, page)
	assert.Empty(t, page)
}

// ---- Update ----------------------------------------------------------------

func TestItineraryService_Update_OK(t *testing.T) {
	input := validItinerary()
	input.ID = uuid.New()
	input.Title = "Renamed"

	svc := service.NewItineraryService(
		&mockItineraryRepo{
			update: func(_ context.Context, it domain.Itinerary) (domain.Itinerary, error) {
				return it, nil
			},
		},
		echoItemRepo(),
		allFoundPlaceRepo(),
	)

	got, err := svc.Update(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
}

func TestItineraryService_Update_StrandedItemsRejected(t *testing.T) {
	input := validItinerary()
	input.ID = uuid.New()
	// Shrink the trip to a single day while an item sits on day 3.
	input.EndDate = input.StartDate

	itemRepo := echoItemRepo()
	itemRepo.listByItinerary = func(_ context.Context, _ uuid.UUID) ([]domain.Item, error) {
		return []domain.Item{{ID: uuid.New(), DayNumber: 3, OrderInDay: 1}}, nil
	}

	svc := service.NewItineraryService(&mockItineraryRepo{}, itemRepo, allFoundPlaceRepo())

	_, err := svc.Update(context.Background(), input)

	assert.ErrorIs(t, err, domain.ErrOutOfRange)
}

func TestItineraryService_Update_ValidationFails(t *testing.T) {
	input := validItinerary()
	input.ID = uuid.New()
	input.Title = ""

	svc := service.NewItineraryService(&mockItineraryRepo{}, echoItemRepo(), allFoundPlaceRepo())

	_, err := svc.Update(context.Background(), input)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---- Delete ----------------------------------------------------------------

func TestItineraryService_Delete_OK(t *testing.T) {
	svc := service.NewItineraryService(
		&mockItineraryRepo{
			delete: func(_ context.Context, _ uuid.UUID) error { return nil },
		},
		echoItemRepo(),
		allFoundPlaceRepo(),
	)

	err := svc.Delete(context.Background(), uuid.New())

	require.NoError(t, err)
}

func TestItineraryService_Delete_NotFound(t *testing.T) {
	svc := service.NewItineraryService(
		&mockItineraryRepo{
			delete: func(_ context.Context, _ uuid.UUID) error { return domain.ErrNotFound },
		},
		echoItemRepo(),
		allFoundPlaceRepo(),
	)

	err := svc.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- error propagation -----------------------------------------------------

func TestItineraryService_Create_RepoError(t *testing.T) {
	repoErr := errors.New("db exploded")

	svc := service.NewItineraryService(
		&mockItineraryRepo{
			create: func(_ context.Context, _ domain.Itinerary) (domain.Itinerary, error) {
				return domain.Itinerary{}, repoErr
			},
		},
		echoItemRepo(),
		allFoundPlaceRepo(),
	)

	_, err := svc.Create(context.Background(), validItinerary(), nil)

	assert.ErrorIs(t, err, repoErr)
}
