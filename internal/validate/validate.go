// Package validate checks form drafts before any write reaches the repository.
// Every function is a pure predicate: no I/O, no side effects. On failure the
// returned error wraps domain.ErrMissingField or domain.ErrNotNumeric and its
// text is a human-readable reason suitable for display.
package validate

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkordes/travel-planner/internal/domain"
)

// field is a named draft value, checked in declaration order.
type field struct {
	name  string
	value string
}

// Destination validates a destination draft and returns the record it describes.
// Missing fields are reported before malformed coordinates, so a blank
// latitude yields ErrMissingField, not ErrNotNumeric.
// Text fields are echoed unchanged; ID and CreatedAt are left zero.
func Destination(d domain.DestinationDraft) (domain.Destination, error) {
	if err := required(
		field{"name", d.Name},
		field{"description", d.Description},
		field{"category", d.Category},
		field{"latitude", d.Latitude},
		field{"longitude", d.Longitude},
	); err != nil {
		return domain.Destination{}, err
	}

	lat, err := coordinate("latitude", d.Latitude)
	if err != nil {
		return domain.Destination{}, err
	}
	lon, err := coordinate("longitude", d.Longitude)
	if err != nil {
		return domain.Destination{}, err
	}

	return domain.Destination{
		Name:        d.Name,
		Description: d.Description,
		Category:    d.Category,
		Location:    domain.Location{Latitude: lat, Longitude: lon},
		ImageURL:    d.ImageURL,
	}, nil
}

// Reservation validates a reservation draft. UserID is not part of the draft;
// the caller stamps it from the authenticated identity.
func Reservation(d domain.ReservationDraft) (domain.Reservation, error) {
	if err := required(
		field{"destination", d.Destination},
		field{"date", d.Date},
		field{"type", d.Type},
	); err != nil {
		return domain.Reservation{}, err
	}
	return domain.Reservation{
		Destination: d.Destination,
		Date:        d.Date,
		Type:        d.Type,
	}, nil
}

// Registration checks the profile half of a sign-up. Email and password are
// left to the identity provider.
func Registration(r domain.Registration) error {
	return required(
		field{"name", r.Name},
		field{"surname", r.Surname},
	)
}

// required returns ErrMissingField naming the first blank field.
func required(fields ...field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", domain.ErrMissingField, f.name)
		}
	}
	return nil
}

// coordinate parses a decimal degree value. NaN and infinities are rejected:
// a persisted location is always a pair of finite numbers.
func coordinate(name, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s must be a number", domain.ErrNotNumeric, name)
	}
	return v, nil
}
