package service_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/repo"
	"github.com/pkordes/travel-planner/internal/service"
)

// ---- mock repos ------------------------------------------------------------

// mockDestinationRepo is a hand-written test double for repo.DestinationRepo.
// Unset funcs fail loudly if called.
type mockDestinationRepo struct {
	create  func(ctx context.Context, d domain.Destination) (uuid.UUID, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Destination, error)
	list    func(ctx context.Context) ([]domain.Destination, error)
	update  func(ctx context.Context, id uuid.UUID, d domain.Destination) error
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockDestinationRepo) Create(ctx context.Context, d domain.Destination) (uuid.UUID, error) {
	return m.create(ctx, d)
}
func (m *mockDestinationRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Destination, error) {
	return m.getByID(ctx, id)
}
func (m *mockDestinationRepo) List(ctx context.Context) ([]domain.Destination, error) {
	return m.list(ctx)
}
func (m *mockDestinationRepo) Update(ctx context.Context, id uuid.UUID, d domain.Destination) error {
	return m.update(ctx, id, d)
}
func (m *mockDestinationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

// compile-time check: mockDestinationRepo must satisfy repo.DestinationRepo.
var _ repo.DestinationRepo = (*mockDestinationRepo)(nil)

// mockReservationRepo is a hand-written test double for repo.ReservationRepo.
type mockReservationRepo struct {
	create     func(ctx context.Context, r domain.Reservation) (uuid.UUID, error)
	list       func(ctx context.Context) ([]domain.Reservation, error)
	listByUser func(ctx context.Context, userID uuid.UUID) ([]domain.Reservation, error)
}

func (m *mockReservationRepo) Create(ctx context.Context, r domain.Reservation) (uuid.UUID, error) {
	return m.create(ctx, r)
}
func (m *mockReservationRepo) List(ctx context.Context) ([]domain.Reservation, error) {
	return m.list(ctx)
}
func (m *mockReservationRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Reservation, error) {
	return m.listByUser(ctx, userID)
}

var _ repo.ReservationRepo = (*mockReservationRepo)(nil)

// mockProfileRepo is a hand-written test double for repo.ProfileRepo.
type mockProfileRepo struct {
	create  func(ctx context.Context, p domain.Profile) (domain.Profile, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Profile, error)
}

func (m *mockProfileRepo) Create(ctx context.Context, p domain.Profile) (domain.Profile, error) {
	return m.create(ctx, p)
}
func (m *mockProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Profile, error) {
	return m.getByID(ctx, id)
}

var _ repo.ProfileRepo = (*mockProfileRepo)(nil)

// mockProvider is a hand-written test double for service.IdentityProvider.
type mockProvider struct {
	createAccount func(ctx context.Context, email, password string) (domain.Identity, error)
	deleteAccount func(ctx context.Context, id domain.Identity) error
	authenticate  func(ctx context.Context, email, password string) (domain.Identity, error)
	startSession  func(ctx context.Context, id domain.Identity) (domain.Session, error)
	identify      func(ctx context.Context, token string) (domain.Identity, error)
	endSession    func(ctx context.Context, token string) error
}

func (m *mockProvider) CreateAccount(ctx context.Context, email, password string) (domain.Identity, error) {
	return m.createAccount(ctx, email, password)
}
func (m *mockProvider) DeleteAccount(ctx context.Context, id domain.Identity) error {
	return m.deleteAccount(ctx, id)
}
func (m *mockProvider) Authenticate(ctx context.Context, email, password string) (domain.Identity, error) {
	return m.authenticate(ctx, email, password)
}
func (m *mockProvider) StartSession(ctx context.Context, id domain.Identity) (domain.Session, error) {
	return m.startSession(ctx, id)
}
func (m *mockProvider) Identify(ctx context.Context, token string) (domain.Identity, error) {
	return m.identify(ctx, token)
}
func (m *mockProvider) EndSession(ctx context.Context, token string) error {
	return m.endSession(ctx, token)
}

var _ service.IdentityProvider = (*mockProvider)(nil)

// ---- helpers ---------------------------------------------------------------

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func splitDraft() domain.DestinationDraft {
	return domain.DestinationDraft{
		Name:        "Split",
		Description: "Coastal city",
		Category:    "History",
		Latitude:    "43.5081",
		Longitude:   "16.4402",
	}
}

func alice() domain.Identity {
	return domain.Identity{UserID: uuid.New(), Email: "alice@example.com"}
}
