// Package domain contains the core data types for the Tripdesk backend.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (plan, editor, repo, service, handler, client).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Itinerary is a titled trip spanning an inclusive date range.
// It is the top-level aggregate; items belong to an itinerary and are
// scheduled onto one of its days.
type Itinerary struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Detail bundles an itinerary header with its full item collection, as
// returned by the persistence service's detail endpoint. The editor session
// loads and reloads this shape wholesale.
type Detail struct {
	Itinerary Itinerary `json:"itinerary"`
	Items     []Item    `json:"items"`
}
