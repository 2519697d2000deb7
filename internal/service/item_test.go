package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripdesk/backend/internal/domain"
	"github.com/tripdesk/backend/internal/repo"
	"github.com/tripdesk/backend/internal/service"
)

// ---- mock repos ------------------------------------------------------------

// mockItemRepo is a hand-written test double for repo.ItemRepo.
type mockItemRepo struct {
	create          func(ctx context.Context, item domain.Item) (domain.Item, error)
	getByID         func(ctx context.Context, itineraryID, itemID uuid.UUID) (domain.Item, error)
	listByItinerary func(ctx context.Context, itineraryID uuid.UUID) ([]domain.Item, error)
	updateFields    func(ctx context.Context, itineraryID, itemID uuid.UUID, fields domain.ItemFields) (domain.Item, error)
	move            func(ctx context.Context, itineraryID, itemID uuid.UUID, day, order int) error
	delete          func(ctx context.Context, itineraryID, itemID uuid.UUID) error
}

func (m *mockItemRepo) Create(ctx context.Context, item domain.Item) (domain.Item, error) {
	return m.create(ctx, item)
}
func (m *mockItemRepo) GetByID(ctx context.Context, itineraryID, itemID uuid.UUID) (domain.Item, error) {
	return m.getByID(ctx, itineraryID, itemID)
}
func (m *mockItemRepo) ListByItinerary(ctx context.Context, itineraryID uuid.UUID) ([]domain.Item, error) {
	return m.listByItinerary(ctx, itineraryID)
}
func (m *mockItemRepo) UpdateFields(ctx context.Context, itineraryID, itemID uuid.UUID, fields domain.ItemFields) (domain.Item, error) {
	return m.updateFields(ctx, itineraryID, itemID, fields)
}
func (m *mockItemRepo) Move(ctx context.Context, itineraryID, itemID uuid.UUID, day, order int) error {
	return m.move(ctx, itineraryID, itemID, day, order)
}
func (m *mockItemRepo) Delete(ctx context.Context, itineraryID, itemID uuid.UUID) error {
	return m.delete(ctx, itineraryID, itemID)
}

// compile-time check: mockItemRepo must satisfy repo.ItemRepo.
var _ repo.ItemRepo = (*mockItemRepo)(nil)

// ---- helpers ---------------------------------------------------------------

// threeDayItineraryRepo returns a mockItineraryRepo whose GetByID resolves any
// id to a three-day itinerary (Nov 10–12).
func threeDayItineraryRepo() *mockItineraryRepo {
	return &mockItineraryRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Itinerary, error) {
			it := validItinerary()
			it.ID = id
			return it, nil
		},
	}
}

func newItem(day, order int) domain.Item {
	return domain.Item{PlaceID: uuid.New(), DayNumber: day, OrderInDay: order}
}

// ---- Add -------------------------------------------------------------------

func TestItemService_Add_OK(t *testing.T) {
	itineraryID := uuid.New()

	var captured []domain.Item
	svc := service.NewItemService(
		threeDayItineraryRepo(),
		&mockItemRepo{
			create: func(_ context.Context, item domain.Item) (domain.Item, error) {
				item.ID = uuid.New()
				captured = append(captured, item)
				return item, nil
			},
		},
		allFoundPlaceRepo(),
	)

	got, err := svc.Add(context.Background(), itineraryID, []domain.Item{newItem(1, 1), newItem(3, 1)})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, itineraryID, captured[0].ItineraryID, "items should be parented to the itinerary")
	assert.NotEqual(t, uuid.Nil, got[0].ID, "server assigns identity")
}

func TestItemService_Add_DiscardsClientID(t *testing.T) {
	tempID := uuid.New()
	serverID := uuid.New()

	svc := service.NewItemService(
		threeDayItineraryRepo(),
		&mockItemRepo{
			create: func(_ context.Context, item domain.Item) (domain.Item, error) {
				assert.Equal(t, uuid.Nil, item.ID, "client-side temporary id must not reach the database")
				item.ID = serverID
				return item, nil
			},
		},
		allFoundPlaceRepo(),
	)

	item := newItem(1, 1)
	item.ID = tempID

	got, err := svc.Add(context.Background(), uuid.New(), []domain.Item{item})

	require.NoError(t, err)
	assert.Equal(t, serverID, got[0].ID)
}

func TestItemService_Add_ItineraryNotFound(t *testing.T) {
	svc := service.NewItemService(
		&mockItineraryRepo{
			getByID: func(_ context.Context, _ uuid.UUID) (domain.Itinerary, error) {
				return domain.Itinerary{}, domain.ErrNotFound
			},
		},
		&mockItemRepo{},
		allFoundPlaceRepo(),
	)

	_, err := svc.Add(context.Background(), uuid.New(), []domain.Item{newItem(1, 1)})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItemService_Add_DayOutOfRange(t *testing.T) {
	svc := service.NewItemService(threeDayItineraryRepo(), &mockItemRepo{}, allFoundPlaceRepo())

	_, err := svc.Add(context.Background(), uuid.New(), []domain.Item{newItem(4, 1)})

	assert.ErrorIs(t, err, domain.ErrOutOfRange)
}

func TestItemService_Add_MissingPlace(t *testing.T) {
	svc := service.NewItemService(threeDayItineraryRepo(), &mockItemRepo{}, allFoundPlaceRepo())

	item := newItem(1, 1)
	item.PlaceID = uuid.Nil

	_, err := svc.Add(context.Background(), uuid.New(), []domain.Item{item})

	assert.ErrorIs(t, err, domain.ErrMissingPlace)
}

// ---- UpdateFields ----------------------------------------------------------

func TestItemService_UpdateFields_OK(t *testing.T) {
	itemID := uuid.New()

	svc := service.NewItemService(
		threeDayItineraryRepo(),
		&mockItemRepo{
			updateFields: func(_ context.Context, _, id uuid.UUID, fields domain.ItemFields) (domain.Item, error) {
				return domain.Item{ID: id, ItemFields: fields}, nil
			},
		},
		allFoundPlaceRepo(),
	)

	got, err := svc.UpdateFields(context.Background(), uuid.New(), itemID, domain.ItemFields{Description: "Lunch"})

	require.NoError(t, err)
	assert.Equal(t, itemID, got.ID)
	assert.Equal(t, "Lunch", got.Description)
}

func TestItemService_UpdateFields_InvalidTimeWindow(t *testing.T) {
	svc := service.NewItemService(threeDayItineraryRepo(), &mockItemRepo{}, allFoundPlaceRepo())

	start := domain.ClockTime{Hour: 14, Minute: 0}
	end := domain.ClockTime{Hour: 9, Minute: 0}

	_, err := svc.UpdateFields(context.Background(), uuid.New(), uuid.New(),
		domain.ItemFields{StartTime: &start, EndTime: &end})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestItemService_UpdateFields_NotFound(t *testing.T) {
	svc := service.NewItemService(
		threeDayItineraryRepo(),
		&mockItemRepo{
			updateFields: func(_ context.Context, _, _ uuid.UUID, _ domain.ItemFields) (domain.Item, error) {
				return domain.Item{}, domain.ErrNotFound
			},
		},
		allFoundPlaceRepo(),
	)

	_, err := svc.UpdateFields(context.Background(), uuid.New(), uuid.New(), domain.ItemFields{})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- Move ------------------------------------------------------------------

func TestItemService_Move_OK(t *testing.T) {
	itineraryID, itemID := uuid.New(), uuid.New()

	svc := service.NewItemService(
		threeDayItineraryRepo(),
		&mockItemRepo{
			move: func(_ context.Context, iID, mID uuid.UUID, day, order int) error {
				assert.Equal(t, itineraryID, iID)
				assert.Equal(t, itemID, mID)
				assert.Equal(t, 2, day)
				assert.Equal(t, 1, order)
				return nil
			},
		},
		allFoundPlaceRepo(),
	)

	err := svc.Move(context.Background(), itineraryID, itemID, 2, 1)

	require.NoError(t, err)
}

func TestItemService_Move_DayOutOfRange(t *testing.T) {
	svc := service.NewItemService(threeDayItineraryRepo(), &mockItemRepo{}, allFoundPlaceRepo())

	err := svc.Move(context.Background(), uuid.New(), uuid.New(), 4, 1)

	assert.ErrorIs(t, err, domain.ErrOutOfRange)
}

func TestItemService_Move_NonPositiveOrder(t *testing.T) {
	svc := service.NewItemService(threeDayItineraryRepo(), &mockItemRepo{}, allFoundPlaceRepo())

	err := svc.Move(context.Background(), uuid.New(), uuid.New(), 1, 0)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestItemService_Move_ItemNotFound(t *testing.T) {
	svc := service.NewItemService(
		threeDayItineraryRepo(),
		&mockItemRepo{
			move: func(_ context.Context, _, _ uuid.UUID, _, _ int) error {
				return domain.ErrNotFound
			},
		},
		allFoundPlaceRepo(),
	)

	err := svc.Move(context.Background(), uuid.New(), uuid.New(), 1, 1)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- Delete ----------------------------------------------------------------

func TestItemService_Delete_OK(t *testing.T) {
	svc := service.NewItemService(
		threeDayItineraryRepo(),
		&mockItemRepo{
			delete: func(_ context.Context, _, _ uuid.UUID) error { return nil },
		},
		allFoundPlaceRepo(),
	)

	err := svc.Delete(context.Background(), uuid.New(), uuid.New())

	require.NoError(t, err)
}

func TestItemService_Delete_NotFound(t *testing.T) {
	svc := service.NewItemService(
		threeDayItineraryRepo(),
		&mockItemRepo{
			delete: func(_ context.Context, _, _ uuid.UUID) error { return domain.ErrNotFound },
		},
		allFoundPlaceRepo(),
	)

	err := svc.Delete(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- error propagation -----------------------------------------------------

func TestItemService_Add_RepoError(t *testing.T) {
	repoErr := errors.New("db exploded")

	svc := service.NewItemService(
		threeDayItineraryRepo(),
		&mockItemRepo{
			create: func(_ context.Context, _ domain.Item) (domain.Item, error) {
				return domain.Item{}, repoErr
			},
		},
		allFoundPlaceRepo(),
	)

	_, err := svc.Add(context.Background(), uuid.New(), []domain.Item{newItem(1, 1)})

	assert.ErrorIs(t, err, repoErr)
}
