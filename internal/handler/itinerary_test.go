package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripdesk/backend/internal/api"
	"github.com/tripdesk/backend/internal/domain"
	"github.com/tripdesk/backend/internal/handler"
)

// mockItineraryServicer is a test double for handler.ItineraryServicer.
// Set only the method fields your test needs.
type mockItineraryServicer struct {
	create    func(ctx context.Context, it domain.Itinerary, items []domain.Item) (domain.Detail, error)
	getDetail func(ctx context.Context, id uuid.UUID) (domain.Detail, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.Itinerary, int64, error)
	update    func(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockItineraryServicer) Create(ctx context.Context, it domain.Itinerary, items []domain.Item) (domain.Detail, error) {
	return m.create(ctx, it, items)
}
func (m *mockItineraryServicer) GetDetail(ctx context.Context, id uuid.UUID) (domain.Detail, error) {
	return m.getDetail(ctx, id)
}
func (m *mockItineraryServicer) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Itinerary, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockItineraryServicer) Update(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	return m.update(ctx, it)
}
func (m *mockItineraryServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

// compile-time check: mockItineraryServicer must satisfy handler.ItineraryServicer.
var _ handler.ItineraryServicer = (*mockItineraryServicer)(nil)

// ---- helpers ---------------------------------------------------------------

// newRouter wires a Server with the given mocks into the chi router, exactly
// how main.go wires it in production. Nil mocks are fine for untouched routes.
func newRouter(its handler.ItineraryServicer, items handler.ItemServicer, places handler.PlaceServicer) http.Handler {
	return handler.NewServer(its, items, places).Routes()
}

func itineraryFixture() domain.Itinerary {
	return domain.Itinerary{
		ID:        uuid.New(),
		Title:     "Tokyo Long Weekend",
		StartDate: time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 11, 12, 0, 0, 0, 0, time.UTC),
		Notes:     "test notes",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func dateStr(t time.Time) string {
	return t.Format("2006-01-02")
}

// ---- POST /itineraries -----------------------------------------------------

func TestCreateItinerary_201(t *testing.T) {
	fixture := itineraryFixture()
	svc := &mockItineraryServicer{
		create: func(_ context.Context, _ domain.Itinerary, _ []domain.Item) (domain.Detail, error) {
			return domain.Detail{Itinerary: fixture, Items: []domain.Item{}}, nil
		},
	}

	body := jsonBody(t, map[string]any{
		"title":      "Tokyo Long Weekend",
		"start_date": dateStr(fixture.StartDate),
		"end_date":   dateStr(fixture.EndDate),
	})

	req := httptest.NewRequest(http.MethodPost, "/itineraries", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newRouter(svc, nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp api.ItineraryDetail
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, fixture.ID, resp.Itinerary.Id)
	assert.Equal(t, fixture.Title, resp.Itinerary.Title)
	assert.NotNil(t, resp.Items)
}

func TestCreateItinerary_201_WithItems(t *testing.T) {
	fixture := itineraryFixture()
	placeID := uuid.New()

	var captured []domain.Item
	svc := &mockItineraryServicer{
		create: func(_ context.Context, _ domain.Itinerary, items []domain.Item) (domain.Detail, error) {
			captured = items
			stored := items[0]
			stored.ID = uuid.New()
			stored.ItineraryID = fixture.ID
			return domain.Detail{Itinerary: fixture, Items: []domain.Item{stored}}, nil
		},
	}

	body := jsonBody(t, map[string]any{
		"title":      fixture.Title,
		"start_date": dateStr(fixture.StartDate),
		"end_date":   dateStr(fixture.EndDate),
		"items": []map[string]any{
			{"place_id": placeID, "day_number": 2, "order_in_day": 1, "start_time": "09:30"},
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/itineraries", body)
	rec := httptest.NewRecorder()

	newRouter(svc, nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, captured, 1)
	assert.Equal(t, placeID, captured[0].PlaceID)
	assert.Equal(t, 2, captured[0].DayNumber)
	require.NotNil(t, captured[0].StartTime)
	assert.Equal(t, "09:30", captured[0].StartTime.String())
}

func TestCreateItinerary_422_ValidationError(t *testing.T) {
	svc := &mockItineraryServicer{
		create: func(_ context.Context, _ domain.Itinerary, _ []domain.Item) (domain.Detail, error) {
			return domain.Detail{}, fmt.Errorf("%w: title is required", domain.ErrValidation)
		},
	}

	body := jsonBody(t, map[string]any{
		"title":      "",
		"start_date": "2025-11-10",
		"end_date":   "2025-11-12",
	})

	req := httptest.NewRequest(http.MethodPost, "/itineraries", body)
	rec := httptest.NewRecorder()

	newRouter(svc, nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp api.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "validation_error", resp.Error.Code)
	assert.Equal(t, "title is required", resp.Error.Message)
}

func TestCreateItinerary_400_MalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/itineraries", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()

	newRouter(&mockItineraryServicer{}, nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ---- GET /itineraries ------------------------------------------------------

func TestListItineraries_200(t *testing.T) {
	svc := &mockItineraryServicer{
		listPaged: func(_ context.Context, p domain.PaginationParams) ([]domain.Itinerary, int64, error) {
			assert.Equal(t, 2, p.Page)
			assert.Equal(t, 5, p.Limit)
			return []domain.Itinerary{itineraryFixture()}, 11, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/itineraries?page=2&limit=5", nil)
	rec := httptest.NewRecorder()

	newRouter(svc, nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp api.ItineraryList
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, 2, resp.Pagination.Page)
	assert.Equal(t, 5, resp.Pagination.Limit)
	assert.Equal(t, 11, resp.Pagination.Total)
}

// ---- GET /itineraries/{id} -------------------------------------------------

func TestGetItinerary_200(t *testing.T) {
	fixture := itineraryFixture()
	item := domain.Item{ID: uuid.New(), ItineraryID: fixture.ID, PlaceID: uuid.New(), DayNumber: 1, OrderInDay: 1}

	svc := &mockItineraryServicer{
		getDetail: func(_ context.Context, id uuid.UUID) (domain.Detail, error) {
			assert.Equal(t, fixture.ID, id)
			return domain.Detail{Itinerary: fixture, Items: []domain.Item{item}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/itineraries/"+fixture.ID.String(), nil)
	rec := httptest.NewRecorder()

	newRouter(svc, nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp api.ItineraryDetail
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, fixture.ID, resp.Itinerary.Id)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, item.ID, resp.Items[0].Id)
}

func TestGetItinerary_404(t *testing.T) {
	svc := &mockItineraryServicer{
		getDetail: func(_ context.Context, _ uuid.UUID) (domain.Detail, error) {
			return domain.Detail{}, domain.ErrNotFound
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/itineraries/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()

	newRouter(svc, nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp api.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "not_found", resp.Error.Code)
}

func TestGetItinerary_400_MalformedID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/itineraries/not-a-uuid", nil)
	rec := httptest.NewRecorder()

	newRouter(&mockItineraryServicer{}, nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ---- PUT /itineraries/{id} -------------------------------------------------

func TestUpdateItinerary_200(t *testing.T) {
	fixture := itineraryFixture()

	svc := &mockItineraryServicer{
		update: func(_ context.Context, it domain.Itinerary) (domain.Itinerary, error) {
			assert.Equal(t, fixture.ID, it.ID, "path id should win over any body id")
			return it, nil
		},
	}

	body := jsonBody(t, map[string]any{
		"title":      "Renamed",
		"start_date": dateStr(fixture.StartDate),
		"end_date":   dateStr(fixture.EndDate),
	})

	req := httptest.NewRequest(http.MethodPut, "/itineraries/"+fixture.ID.String(), body)
	rec := httptest.NewRecorder()

	newRouter(svc, nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp api.Itinerary
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Renamed", resp.Title)
}

func TestUpdateItinerary_422_StrandedItems(t *testing.T) {
	svc := &mockItineraryServicer{
		update: func(_ context.Context, _ domain.Itinerary) (domain.Itinerary, error) {
			return domain.Itinerary{}, fmt.Errorf("item x is scheduled on day 3 of 1: %w", domain.ErrOutOfRange)
		},
	}

	body := jsonBody(t, map[string]any{
		"title":      "Shrunk",
		"start_date": "2025-11-10",
		"end_date":   "2025-11-10",
	})

	req := httptest.NewRequest(http.MethodPut, "/itineraries/"+uuid.NewString(), body)
	rec := httptest.NewRecorder()

	newRouter(svc, nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

// ---- DELETE /itineraries/{id} ----------------------------------------------

func TestDeleteItinerary_204(t *testing.T) {
	svc := &mockItineraryServicer{
		delete: func(_ context.Context, _ uuid.UUID) error { return nil },
	}

	req := httptest.NewRequest(http.MethodDelete, "/itineraries/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()

	newRouter(svc, nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
}

func TestDeleteItinerary_404(t *testing.T) {
	svc := &mockItineraryServicer{
		delete: func(_ context.Context, _ uuid.UUID) error { return domain.ErrNotFound },
	}

	req := httptest.NewRequest(http.MethodDelete, "/itineraries/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()

	newRouter(svc, nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
