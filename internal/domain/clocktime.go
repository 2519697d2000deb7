package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// ClockTime is a time of day with minute precision and no date or zone
// attached. It marshals to/from the "15:04" wire form used by the item
// start/end time fields.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime parses "HH:MM" (24-hour) into a ClockTime.
func ParseClockTime(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return ClockTime{}, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// String returns the "HH:MM" form.
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Minutes returns the number of minutes since midnight, used for ordering.
func (c ClockTime) Minutes() int {
	return c.Hour*60 + c.Minute
}

// Before reports whether c is earlier in the day than other.
func (c ClockTime) Before(other ClockTime) bool {
	return c.Minutes() < other.Minutes()
}

// MarshalJSON implements json.Marshaler.
func (c ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *ClockTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseClockTime(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
