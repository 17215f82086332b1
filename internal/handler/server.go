// Package handler implements the HTTP handlers for the travel planner API.
// All handlers are methods on Server. They are split into domain-specific
// files (health.go, destination.go, etc.) but share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/geo"
	"github.com/pkordes/travel-planner/internal/service"
	"github.com/pkordes/travel-planner/internal/storage"
)

// The interfaces below are defined in the consumer package so handler tests
// can inject mocks without touching Postgres, Redis, or the object store.

// DestinationServicer defines the destination operations the handlers use.
type DestinationServicer interface {
	Create(ctx context.Context, draft domain.DestinationDraft) (uuid.UUID, error)
	List(ctx context.Context) ([]domain.Destination, error)
	Refresh(ctx context.Context) []domain.Destination
	Update(ctx context.Context, id uuid.UUID, draft domain.DestinationDraft) error
	Delete(ctx context.Context, id uuid.UUID) error
	Nearby(ctx context.Context, lat, lon, radiusKm float64) ([]geo.Hit, error)
}

// ReservationServicer defines the reservation operations the handlers use.
type ReservationServicer interface {
	Create(ctx context.Context, owner domain.Identity, draft domain.ReservationDraft) (uuid.UUID, error)
	ListMine(ctx context.Context, owner domain.Identity) ([]domain.Reservation, error)
	Refresh(ctx context.Context, owner domain.Identity) []domain.Reservation
}

// SessionServicer is the session gate.
type SessionServicer interface {
	Register(ctx context.Context, r domain.Registration) (domain.Session, error)
	SignIn(ctx context.Context, email, password string) (domain.Session, error)
	SignOut(ctx context.Context, token string)
	CurrentIdentity(ctx context.Context, token string) (domain.Identity, error)
	Profile(ctx context.Context, id domain.Identity) (domain.Profile, error)
}

// OverviewLoader loads the reservation form's data.
type OverviewLoader interface {
	Load(ctx context.Context, owner domain.Identity) (service.Overview, error)
}

// ImageUploader uploads whatever the picker selects.
type ImageUploader interface {
	PickAndUpload(ctx context.Context, p storage.Picker) (string, error)
}

// FileStore serves stored objects. Satisfied by *filesystem.System.
type FileStore interface {
	Exists(fileKey string) (bool, error)
	Serve(res http.ResponseWriter, req *http.Request, fileKey string, name string) error
}

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

// Ping calls f(ctx).
func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// Deps are the Server's collaborators. Checks maps a health check name
// ("database", "redis") to its pinger.
type Deps struct {
	Destinations DestinationServicer
	Reservations ReservationServicer
	Sessions     SessionServicer
	Overview     OverviewLoader
	Uploads      ImageUploader
	Files        FileStore
	Checks       map[string]Pinger
	Log          *slog.Logger
}

// Server holds the dependencies of every handler.
type Server struct {
	destinations DestinationServicer
	reservations ReservationServicer
	sessions     SessionServicer
	overview     OverviewLoader
	uploads      ImageUploader
	files        FileStore
	checks       map[string]Pinger
	log          *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(d Deps) *Server {
	log := d.Log
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		destinations: d.Destinations,
		reservations: d.Reservations,
		sessions:     d.Sessions,
		overview:     d.Overview,
		uploads:      d.Uploads,
		files:        d.Files,
		checks:       d.Checks,
		log:          log,
	}
}
