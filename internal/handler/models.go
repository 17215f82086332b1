package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/geo"
)

// coordinate is a latitude or longitude as the client typed it. It accepts a
// JSON number or a JSON string so that "not a number" reaches the validator
// instead of failing JSON decoding. null decodes as blank.
type coordinate string

func (c *coordinate) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*c = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = coordinate(s)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("coordinate must be a number or a string")
		}
		*c = coordinate(n)
	}
	return nil
}

type locationRequest struct {
	Latitude  coordinate `json:"latitude"`
	Longitude coordinate `json:"longitude"`
}

type destinationRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Location    locationRequest `json:"location"`
	ImageURL    string          `json:"imageUrl"`
}

func (d destinationRequest) draft() domain.DestinationDraft {
	return domain.DestinationDraft{
		Name:        d.Name,
		Description: d.Description,
		Category:    d.Category,
		Latitude:    string(d.Location.Latitude),
		Longitude:   string(d.Location.Longitude),
		ImageURL:    d.ImageURL,
	}
}

type reservationRequest struct {
	Destination string `json:"destination"`
	Date        string `json:"date"`
	Type        string `json:"type"`
}

func (r reservationRequest) draft() domain.ReservationDraft {
	return domain.ReservationDraft{Destination: r.Destination, Date: r.Date, Type: r.Type}
}

type registerRequest struct {
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ---- responses -------------------------------------------------------------

type locationJSON struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type destinationJSON struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Location    locationJSON `json:"location"`
	ImageURL    string       `json:"imageUrl,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
}

type nearbyJSON struct {
	destinationJSON
	DistanceKm float64 `json:"distanceKm"`
}

type reservationJSON struct {
	ID          uuid.UUID `json:"id"`
	Destination string    `json:"destination"`
	Date        string    `json:"date"`
	Type        string    `json:"type"`
	UserID      uuid.UUID `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
}

type userJSON struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

type profileJSON struct {
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type sessionJSON struct {
	Token string   `json:"token"`
	User  userJSON `json:"user"`
}

type currentSessionJSON struct {
	Authenticated bool         `json:"authenticated"`
	User          *userJSON    `json:"user,omitempty"`
	Profile       *profileJSON `json:"profile,omitempty"`
}

type destinationsJSON struct {
	ID           *uuid.UUID        `json:"id,omitempty"`
	Destinations []destinationJSON `json:"destinations"`
}

type reservationsJSON struct {
	ID           *uuid.UUID        `json:"id,omitempty"`
	Reservations []reservationJSON `json:"reservations"`
}

type overviewJSON struct {
	Destinations []destinationJSON `json:"destinations"`
	Reservations []reservationJSON `json:"reservations"`
}

type uploadJSON struct {
	ImageURL string `json:"imageUrl"`
}

func destinationToResponse(d domain.Destination) destinationJSON {
	return destinationJSON{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Category:    d.Category,
		Location:    locationJSON{Latitude: d.Location.Latitude, Longitude: d.Location.Longitude},
		ImageURL:    d.ImageURL,
		CreatedAt:   d.CreatedAt,
	}
}

func destinationsToResponse(ds []domain.Destination) []destinationJSON {
	out := make([]destinationJSON, len(ds))
	for i, d := range ds {
		out[i] = destinationToResponse(d)
	}
	return out
}

func hitsToResponse(hits []geo.Hit) []nearbyJSON {
	out := make([]nearbyJSON, len(hits))
	for i, h := range hits {
		out[i] = nearbyJSON{destinationJSON: destinationToResponse(h.Destination), DistanceKm: round3(h.DistanceKm)}
	}
	return out
}

func reservationsToResponse(rs []domain.Reservation) []reservationJSON {
	out := make([]reservationJSON, len(rs))
	for i, r := range rs {
		out[i] = reservationJSON{
			ID:          r.ID,
			Destination: r.Destination,
			Date:        r.Date,
			Type:        r.Type,
			UserID:      r.UserID,
			CreatedAt:   r.CreatedAt,
		}
	}
	return out
}

func sessionToResponse(s domain.Session) sessionJSON {
	return sessionJSON{Token: s.Token, User: userJSON{ID: s.Identity.UserID, Email: s.Identity.Email}}
}

// round3 keeps distances to metre precision.
func round3(km float64) float64 {
	return math.Round(km*1000) / 1000
}
