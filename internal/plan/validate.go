package plan

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tripdesk/backend/internal/domain"
)

// Validation is fail-fast: every function stops at the first violated
// constraint and names it in the returned error, matching the submit flow
// where one message is surfaced to the user per attempt. All failures wrap
// domain.ErrValidation.

// ValidateHeader enforces the rules for an itinerary header save:
// non-empty title, both dates present, and a day count of at least one.
func ValidateHeader(title string, start, end time.Time) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if start.IsZero() {
		return fmt.Errorf("%w: start date is required", domain.ErrValidation)
	}
	if end.IsZero() {
		return fmt.Errorf("%w: end date is required", domain.ErrValidation)
	}
	if _, err := DayCount(start, end); err != nil {
		return err
	}
	return nil
}

// ValidateItems checks a full candidate item collection before it is allowed
// to reach the persistence service: day number in range, place reference
// present, positive order, and a coherent time window per item.
func ValidateItems(items []domain.Item, dayCount int) error {
	for _, it := range items {
		if it.DayNumber < 1 || it.DayNumber > dayCount {
			return fmt.Errorf("item %s: day %d of %d: %w", it.ID, it.DayNumber, dayCount, domain.ErrOutOfRange)
		}
		if it.PlaceID == uuid.Nil {
			return fmt.Errorf("item %s: %w", it.ID, domain.ErrMissingPlace)
		}
		if it.OrderInDay < 1 {
			return fmt.Errorf("%w: item %s: order in day must be positive, got %d", domain.ErrValidation, it.ID, it.OrderInDay)
		}
		if err := ValidateFields(it.ItemFields); err != nil {
			return fmt.Errorf("item %s: %w", it.ID, err)
		}
	}
	return nil
}

// ValidateFields enforces field-level rules for an item edit: the end time
// must not precede the start time when both are set, the estimated cost must
// be non-negative, and the transport mode must be a known value.
func ValidateFields(f domain.ItemFields) error {
	if f.StartTime != nil && f.EndTime != nil && f.EndTime.Before(*f.StartTime) {
		return fmt.Errorf("%w: end time must not precede start time", domain.ErrValidation)
	}
	if f.EstimatedCost != nil && *f.EstimatedCost < 0 {
		return fmt.Errorf("%w: estimated cost must not be negative", domain.ErrValidation)
	}
	if f.Transport != nil && !f.Transport.Valid() {
		return fmt.Errorf("%w: unknown transport mode %q", domain.ErrValidation, string(*f.Transport))
	}
	return nil
}
