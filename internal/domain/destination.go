// Package domain contains the core data types for the travel planner.
// This package has no dependencies on other internal packages and is imported
// by every layer (validate, repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Location is a latitude/longitude pair in decimal degrees.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Destination is a point of interest owned by the document store.
// ImageURL is empty until an upload has succeeded.
type Destination struct {
	ID          uuid.UUID
	Name        string
	Description string
	Category    string
	Location    Location
	ImageURL    string
	CreatedAt   time.Time
}

// DestinationDraft is the form state for a destination, exactly as typed.
// Coordinates stay as text until validation parses them.
// Drafts are values: an edit produces a new draft rather than mutating one.
type DestinationDraft struct {
	Name        string
	Description string
	Category    string
	Latitude    string
	Longitude   string
	ImageURL    string
}

// WithImageURL returns a copy of the draft that references an uploaded image.
func (d DestinationDraft) WithImageURL(url string) DestinationDraft {
	d.ImageURL = url
	return d
}
