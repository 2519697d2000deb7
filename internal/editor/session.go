// Package editor implements the optimistic sync layer of the itinerary
// engine: a single-editor session that applies mutations locally first,
// pushes them to the persistence service, and reconciles on failure.
//
// Rollback is coarse-grained by design: when a positional update fails the
// session reloads the whole itinerary from the store rather than replaying an
// inverse patch, so the local state always converges to whatever the server
// holds. Pending field edits are the one exception — they survive a failed
// save so user input is never thrown away.
package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tripdesk/backend/internal/domain"
	"github.com/tripdesk/backend/internal/plan"
)

// ErrNotLoaded is returned by operations that need an itinerary before one
// has been loaded or created.
var ErrNotLoaded = errors.New("editor: no itinerary loaded")

// ErrClosed is returned by operations on a session whose itinerary has been
// deleted. Deletion is terminal; start a new session for a new itinerary.
var ErrClosed = errors.New("editor: itinerary has been deleted")

// Session is a single editing session over one itinerary.
//
// A mutex serializes every operation, so two overlapping intents on the same
// itinerary are ordered rather than racing — the engine itself guarantees
// single-writer semantics instead of relying on the UI to disable buttons.
// The lock is held across the remote call on purpose: a mutation is not done
// until the store has answered and the session has reconciled.
type Session struct {
	store Store
	log   *slog.Logger

	mu     sync.Mutex
	loaded bool
	closed bool
	it     domain.Itinerary
	items  []domain.Item
	edits  map[uuid.UUID]domain.ItemFields // pending per-item field overrides
}

// NewSession constructs a Session syncing against the given store.
// A nil logger falls back to slog.Default().
func NewSession(store Store, log *slog.Logger) *Session {
	if log == nil {
		log = slog.Default()
	}
	return &Session{
		store: store,
		log:   log,
		edits: make(map[uuid.UUID]domain.ItemFields),
	}
}

// Load fetches the itinerary detail from the store and makes it the session's
// authoritative state. Any pending edits from a previous itinerary are
// discarded.
func (s *Session) Load(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return s.reload(ctx, id)
}

// Create validates and persists a brand-new itinerary, then loads the
// server's canonical copy so the session sees server-assigned ids.
func (s *Session) Create(ctx context.Context, title string, start, end time.Time, items []domain.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	if err := plan.ValidateHeader(title, start, end); err != nil {
		return err
	}
	count, err := plan.DayCount(start, end)
	if err != nil {
		return err
	}
	if err := plan.ValidateItems(items, count); err != nil {
		return err
	}

	id, err := s.store.CreateItinerary(ctx, title, start, end, items)
	if err != nil {
		return remoteErr("create itinerary", err)
	}
	return s.reload(ctx, id)
}

// SaveHeader commits new header fields. Header edits are buffered by the
// caller (plain form state); the authoritative itinerary only changes after
// the store confirms, so a failure leaves prior state untouched.
func (s *Session) SaveHeader(ctx context.Context, title string, start, end time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return err
	}

	if err := plan.ValidateHeader(title, start, end); err != nil {
		return err
	}
	count, err := plan.DayCount(start, end)
	if err != nil {
		return err
	}
	// Shrinking the date range must not strand items on days that no longer exist.
	if err := plan.ValidateItems(s.items, count); err != nil {
		return err
	}

	if err := s.store.UpdateItinerary(ctx, s.it.ID, title, start, end, s.it.Notes); err != nil {
		return remoteErr("save header", err)
	}

	s.it.Title = title
	s.it.StartDate = start
	s.it.EndDate = end
	return nil
}

// Delete removes the itinerary permanently and closes the session.
// There is no undo; callers should confirm with the user first.
func (s *Session) Delete(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return err
	}

	if err := s.store.DeleteItinerary(ctx, s.it.ID); err != nil {
		return remoteErr("delete itinerary", err)
	}
	s.closed = true
	s.loaded = false
	s.items = nil
	s.edits = make(map[uuid.UUID]domain.ItemFields)
	return nil
}

// AddItem schedules a place on the given day. The draft carries a
// client-generated temporary id; on success the whole itinerary is refetched
// so the temp id is replaced by the server-assigned one and the ordering is
// canonical. The new item is therefore not visible until the round trip
// completes — reconcile-by-reload, not partial merge.
func (s *Session) AddItem(ctx context.Context, day int, placeID uuid.UUID, fields domain.ItemFields) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return err
	}

	draft := domain.Item{
		ID:          uuid.New(), // temporary id until the server assigns one
		ItineraryID: s.it.ID,
		PlaceID:     placeID,
		ItemFields:  fields,
	}
	if err := plan.ValidateFields(fields); err != nil {
		return err
	}
	_, draft, err := plan.Add(s.items, s.dayCount(), day, draft)
	if err != nil {
		return err
	}

	if err := s.store.AddItems(ctx, s.it.ID, []domain.Item{draft}); err != nil {
		return remoteErr("add item", err)
	}
	return s.reload(ctx, s.it.ID)
}

// RemoveItem deletes an item. Removing an id the session does not know is a
// no-op, and a server-side "not found" is treated as success, so removal is
// safe to retry. The local state drops the item immediately; a remote failure
// rolls back by reload.
func (s *Session) RemoveItem(ctx context.Context, itemID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return err
	}

	if idx := indexOf(s.items, itemID); idx < 0 {
		return nil
	}

	s.items = plan.Remove(s.items, itemID)
	delete(s.edits, itemID)

	err := s.store.DeleteItem(ctx, s.it.ID, itemID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return s.rollback(ctx, "remove item", err)
	}
	return nil
}

// MoveItem moves an item one position up or down within its day. The swap is
// applied locally first, then pushed as a single positional update. On remote
// failure the session reloads the itinerary — the fresh server state is the
// rollback — and returns an error wrapping domain.ErrRemote.
//
// Moving past the boundary of a day is a no-op and makes no remote call.
func (s *Session) MoveItem(ctx context.Context, itemID uuid.UUID, dir plan.Direction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return err
	}

	updated, changed, err := plan.MoveWithinDay(s.items, itemID, dir)
	if err != nil {
		return err
	}
	if len(changed) == 0 {
		return nil
	}

	s.items = updated // optimistic apply

	moved := changed[0]
	if err := s.store.MoveItem(ctx, s.it.ID, moved.ID, moved.DayNumber, moved.OrderInDay); err != nil {
		return s.rollback(ctx, "move item", err)
	}
	return nil
}

// ChangeDay reassigns an item to another day, appended at that day's end.
// Same optimistic-apply / rollback-by-reload discipline as MoveItem.
func (s *Session) ChangeDay(ctx context.Context, itemID uuid.UUID, newDay int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return err
	}

	updated, moved, err := plan.ChangeDay(s.items, s.dayCount(), itemID, newDay)
	if err != nil {
		return err
	}

	s.items = updated // optimistic apply

	if err := s.store.MoveItem(ctx, s.it.ID, moved.ID, moved.DayNumber, moved.OrderInDay); err != nil {
		return s.rollback(ctx, "change day", err)
	}
	return nil
}

// BeginEdit opens (or resumes) the pending-edit buffer for an item and
// returns the field values the edit form should start from: the staged
// values if a buffer already exists, last-known-good otherwise.
func (s *Session) BeginEdit(itemID uuid.UUID) (domain.ItemFields, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return domain.ItemFields{}, err
	}

	if staged, ok := s.edits[itemID]; ok {
		return staged, nil
	}
	idx := indexOf(s.items, itemID)
	if idx < 0 {
		return domain.ItemFields{}, fmt.Errorf("edit item %s: %w", itemID, domain.ErrNotFound)
	}
	return s.items[idx].ItemFields, nil
}

// StageEdit replaces the pending buffer for an item with the given fields.
// Nothing is persisted until SaveEdit; DiscardEdit throws the buffer away.
func (s *Session) StageEdit(itemID uuid.UUID, fields domain.ItemFields) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return err
	}
	if indexOf(s.items, itemID) < 0 {
		return fmt.Errorf("edit item %s: %w", itemID, domain.ErrNotFound)
	}
	s.edits[itemID] = fields
	return nil
}

// SaveEdit validates and persists the pending buffer for an item. On success
// the buffer is cleared and the authoritative item adopts the fields. On
// remote failure the buffer is retained — the user's input is not lost — and
// the error invites a retry.
func (s *Session) SaveEdit(ctx context.Context, itemID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return err
	}

	fields, ok := s.edits[itemID]
	if !ok {
		return nil // nothing staged, nothing to save
	}
	if err := plan.ValidateFields(fields); err != nil {
		return err
	}
	idx := indexOf(s.items, itemID)
	if idx < 0 {
		return fmt.Errorf("save item %s: %w", itemID, domain.ErrNotFound)
	}

	if err := s.store.UpdateItem(ctx, s.it.ID, itemID, fields); err != nil {
		return remoteErr("save item", err) // buffer stays
	}

	s.items[idx] = s.items[idx].WithFields(fields)
	delete(s.edits, itemID)
	return nil
}

// DiscardEdit drops the pending buffer for an item, if any.
func (s *Session) DiscardEdit(itemID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.edits, itemID)
}

// Itinerary returns a copy of the authoritative header.
func (s *Session) Itinerary() (domain.Itinerary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return domain.Itinerary{}, err
	}
	return s.it, nil
}

// Items returns a copy of the authoritative item collection.
func (s *Session) Items() ([]domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return nil, err
	}
	out := make([]domain.Item, len(s.items))
	copy(out, s.items)
	return out, nil
}

// PendingView returns the item as the edit form should show it: the
// authoritative item with any staged fields overlaid.
func (s *Session) PendingView(itemID uuid.UUID) (domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return domain.Item{}, err
	}
	idx := indexOf(s.items, itemID)
	if idx < 0 {
		return domain.Item{}, fmt.Errorf("item %s: %w", itemID, domain.ErrNotFound)
	}
	item := s.items[idx]
	if staged, ok := s.edits[itemID]; ok {
		item = item.WithFields(staged)
	}
	return item, nil
}

// Projections returns the render-ready day views of the authoritative state.
func (s *Session) Projections() ([]plan.DayProjection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return nil, err
	}
	return plan.Projections(s.it, s.items)
}

// MapPoints returns the map projection for one day. Items whose place the
// resolver cannot find, or which have no coordinates, are excluded.
func (s *Session) MapPoints(day int, resolve plan.PlaceResolver) ([]domain.MapPoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return nil, err
	}
	return plan.MapPoints(plan.GroupByDay(s.items)[day], resolve), nil
}

// ---- internals -------------------------------------------------------------

// ready guards operations that need a live, loaded itinerary.
func (s *Session) ready() error {
	if s.closed {
		return ErrClosed
	}
	if !s.loaded {
		return ErrNotLoaded
	}
	return nil
}

// dayCount is the inclusive day span of the loaded itinerary. The header is
// validated on every save, so the range is known to be well-formed here.
func (s *Session) dayCount() int {
	count, err := plan.DayCount(s.it.StartDate, s.it.EndDate)
	if err != nil {
		return 0
	}
	return count
}

// reload replaces the session state with a fresh detail fetch. Pending edit
// buffers are kept only for items that still exist after the reload.
func (s *Session) reload(ctx context.Context, id uuid.UUID) error {
	detail, err := s.store.GetItineraryDetail(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("load itinerary %s: %w", id, domain.ErrNotFound)
		}
		return remoteErr("load itinerary", err)
	}
	s.it = detail.Itinerary
	s.items = detail.Items
	s.loaded = true
	for itemID := range s.edits {
		if indexOf(s.items, itemID) < 0 {
			delete(s.edits, itemID)
		}
	}
	return nil
}

// rollback resynchronizes after a failed optimistic mutation: log, reload the
// server's state wholesale, and surface the original failure. When even the
// reload fails the session keeps its optimistic state and reports both
// errors; the next successful load will converge it.
func (s *Session) rollback(ctx context.Context, op string, cause error) error {
	s.log.Warn("itinerary mutation failed, reloading",
		"op", op,
		"itinerary_id", s.it.ID,
		"error", cause,
	)
	if err := s.reload(ctx, s.it.ID); err != nil {
		return fmt.Errorf("editor: %s: %w (rollback reload also failed: %v)", op, errors.Join(domain.ErrRemote, cause), err)
	}
	return remoteErr(op, cause)
}

// remoteErr wraps a store failure so callers can match domain.ErrRemote while
// keeping the original chain intact.
func remoteErr(op string, err error) error {
	return fmt.Errorf("editor: %s: %w", op, errors.Join(domain.ErrRemote, err))
}

// indexOf returns the position of the item with the given id, or -1.
func indexOf(items []domain.Item, id uuid.UUID) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
