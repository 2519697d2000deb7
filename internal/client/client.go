// Package client implements editor.Store over HTTP against the Tripdesk API.
// It speaks the wire shapes defined in internal/api and translates response
// statuses back into domain sentinel errors, so the editor never sees raw
// HTTP details.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/tripdesk/backend/internal/api"
	"github.com/tripdesk/backend/internal/domain"
	"github.com/tripdesk/backend/internal/editor"
)

// Client is an HTTP implementation of editor.Store.
type Client struct {
	baseURL string
	http    *http.Client
}

// compile-time check: Client must satisfy editor.Store.
var _ editor.Store = (*Client)(nil)

// New constructs a Client for the API at baseURL (scheme + host, no trailing
// slash). Passing a nil httpClient uses a default with a 10s timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

// CreateItinerary persists a new itinerary with its initial items and returns
// the server-assigned id.
func (c *Client) CreateItinerary(ctx context.Context, title string, start, end time.Time, items []domain.Item) (uuid.UUID, error) {
	req := api.CreateItineraryRequest{
		Title:     title,
		StartDate: openapi_types.Date{Time: start},
		EndDate:   openapi_types.Date{Time: end},
	}
	for _, item := range items {
		req.Items = append(req.Items, api.ToNewItem(item))
	}

	var resp api.ItineraryDetail
	if err := c.do(ctx, http.MethodPost, "/itineraries", req, &resp); err != nil {
		return uuid.Nil, err
	}
	return resp.Itinerary.Id, nil
}

// GetItineraryDetail returns the header and full item collection.
func (c *Client) GetItineraryDetail(ctx context.Context, id uuid.UUID) (domain.Detail, error) {
	var resp api.ItineraryDetail
	if err := c.do(ctx, http.MethodGet, "/itineraries/"+id.String(), nil, &resp); err != nil {
		return domain.Detail{}, err
	}

	items := make([]domain.Item, len(resp.Items))
	for i, item := range resp.Items {
		items[i] = api.ToItem(item)
	}
	return domain.Detail{Itinerary: api.ToItinerary(resp.Itinerary), Items: items}, nil
}

// UpdateItinerary overwrites the header fields.
func (c *Client) UpdateItinerary(ctx context.Context, id uuid.UUID, title string, start, end time.Time, notes string) error {
	req := api.UpdateItineraryRequest{
		Title:     title,
		StartDate: openapi_types.Date{Time: start},
		EndDate:   openapi_types.Date{Time: end},
	}
	if notes != "" {
		req.Notes = &notes
	}
	return c.do(ctx, http.MethodPut, "/itineraries/"+id.String(), req, nil)
}

// DeleteItinerary removes the itinerary and all its items.
func (c *Client) DeleteItinerary(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/itineraries/"+id.String(), nil, nil)
}

// AddItems appends new items; the server assigns authoritative ids.
func (c *Client) AddItems(ctx context.Context, id uuid.UUID, items []domain.Item) error {
	req := api.AddItemsRequest{Items: make([]api.NewItem, len(items))}
	for i, item := range items {
		req.Items[i] = api.ToNewItem(item)
	}
	return c.do(ctx, http.MethodPost, "/itineraries/"+id.String()+"/items", req, nil)
}

// UpdateItem replaces an item's editable fields.
func (c *Client) UpdateItem(ctx context.Context, id, itemID uuid.UUID, fields domain.ItemFields) error {
	return c.do(ctx, http.MethodPut,
		"/itineraries/"+id.String()+"/items/"+itemID.String(), api.FromFields(fields), nil)
}

// MoveItem repositions an item to (newDay, newOrder) in one positional update.
func (c *Client) MoveItem(ctx context.Context, id, itemID uuid.UUID, newDay, newOrder int) error {
	req := api.MoveItemRequest{DayNumber: newDay, OrderInDay: newOrder}
	return c.do(ctx, http.MethodPost,
		"/itineraries/"+id.String()+"/items/"+itemID.String()+"/move", req, nil)
}

// DeleteItem removes a single item.
func (c *Client) DeleteItem(ctx context.Context, id, itemID uuid.UUID) error {
	return c.do(ctx, http.MethodDelete,
		"/itineraries/"+id.String()+"/items/"+itemID.String(), nil, nil)
}

// do performs one request/response round trip. body and out may be nil.
// Non-2xx statuses are mapped onto domain sentinels: 404 to ErrNotFound,
// 400/422 to ErrValidation with the server's message, everything else to a
// plain error the editor wraps as a remote failure.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encode %s %s: %w", method, path, err)
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("client: build %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("client: decode %s %s: %w", method, path, err)
		}
	}
	return nil
}

// statusError converts a non-2xx response into a domain error, pulling the
// message out of the standard error body when one is present.
func statusError(resp *http.Response) error {
	var body api.ErrorResponse
	message := resp.Status
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error.Message != "" {
		message = body.Error.Message
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", domain.ErrValidation, message)
	default:
		return fmt.Errorf("status %d: %s", resp.StatusCode, message)
	}
}
