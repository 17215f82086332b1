package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/geo"
	"github.com/pkordes/travel-planner/internal/handler"
	"github.com/pkordes/travel-planner/internal/service"
	"github.com/pkordes/travel-planner/internal/storage"
)

// ---- mocks -----------------------------------------------------------------
// Set only the method fields your test needs.

type mockDestinations struct {
	create  func(ctx context.Context, draft domain.DestinationDraft) (uuid.UUID, error)
	list    func(ctx context.Context) ([]domain.Destination, error)
	refresh func(ctx context.Context) []domain.Destination
	update  func(ctx context.Context, id uuid.UUID, draft domain.DestinationDraft) error
	delete  func(ctx context.Context, id uuid.UUID) error
	nearby  func(ctx context.Context, lat, lon, radiusKm float64) ([]geo.Hit, error)
}

func (m *mockDestinations) Create(ctx context.Context, d domain.DestinationDraft) (uuid.UUID, error) {
	return m.create(ctx, d)
}
func (m *mockDestinations) List(ctx context.Context) ([]domain.Destination, error) {
	return m.list(ctx)
}
func (m *mockDestinations) Refresh(ctx context.Context) []domain.Destination {
	return m.refresh(ctx)
}
func (m *mockDestinations) Update(ctx context.Context, id uuid.UUID, d domain.DestinationDraft) error {
	return m.update(ctx, id, d)
}
func (m *mockDestinations) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockDestinations) Nearby(ctx context.Context, lat, lon, r float64) ([]geo.Hit, error) {
	return m.nearby(ctx, lat, lon, r)
}

var _ handler.DestinationServicer = (*mockDestinations)(nil)

type mockReservations struct {
	create   func(ctx context.Context, owner domain.Identity, draft domain.ReservationDraft) (uuid.UUID, error)
	listMine func(ctx context.Context, owner domain.Identity) ([]domain.Reservation, error)
	refresh  func(ctx context.Context, owner domain.Identity) []domain.Reservation
}

func (m *mockReservations) Create(ctx context.Context, owner domain.Identity, d domain.ReservationDraft) (uuid.UUID, error) {
	return m.create(ctx, owner, d)
}
func (m *mockReservations) ListMine(ctx context.Context, owner domain.Identity) ([]domain.Reservation, error) {
	return m.listMine(ctx, owner)
}
func (m *mockReservations) Refresh(ctx context.Context, owner domain.Identity) []domain.Reservation {
	return m.refresh(ctx, owner)
}

var _ handler.ReservationServicer = (*mockReservations)(nil)

// mockSessions resolves tokens from a map unless identify is set.
type mockSessions struct {
	tokens   map[string]domain.Identity
	register func(ctx context.Context, r domain.Registration) (domain.Session, error)
	signIn   func(ctx context.Context, email, password string) (domain.Session, error)
	signOut  func(ctx context.Context, token string)
	identify func(ctx context.Context, token string) (domain.Identity, error)
	profile  func(ctx context.Context, id domain.Identity) (domain.Profile, error)
}

func (m *mockSessions) Register(ctx context.Context, r domain.Registration) (domain.Session, error) {
	return m.register(ctx, r)
}
func (m *mockSessions) SignIn(ctx context.Context, email, password string) (domain.Session, error) {
	return m.signIn(ctx, email, password)
}
func (m *mockSessions) SignOut(ctx context.Context, token string) {
	if m.signOut != nil {
		m.signOut(ctx, token)
	}
}
func (m *mockSessions) CurrentIdentity(ctx context.Context, token string) (domain.Identity, error) {
	if m.identify != nil {
		return m.identify(ctx, token)
	}
	return m.tokens[token], nil
}
func (m *mockSessions) Profile(ctx context.Context, id domain.Identity) (domain.Profile, error) {
	return m.profile(ctx, id)
}

var _ handler.SessionServicer = (*mockSessions)(nil)

type mockOverview struct {
	load func(ctx context.Context, owner domain.Identity) (service.Overview, error)
}

func (m *mockOverview) Load(ctx context.Context, owner domain.Identity) (service.Overview, error) {
	return m.load(ctx, owner)
}

var _ handler.OverviewLoader = (*mockOverview)(nil)

type mockUploader struct {
	pickAndUpload func(ctx context.Context, p storage.Picker) (string, error)
}

func (m *mockUploader) PickAndUpload(ctx context.Context, p storage.Picker) (string, error) {
	return m.pickAndUpload(ctx, p)
}

var _ handler.ImageUploader = (*mockUploader)(nil)

// ---- helpers ---------------------------------------------------------------

const testToken = "test-token"

var testUser = domain.Identity{UserID: uuid.MustParse("7b1f6c1e-1d2a-4c1b-9a4e-5f0c2d3e4a5b"), Email: "ana@example.com"}

// newRouter wires a Server with the given deps through the full middleware
// stack, exactly as main.go does. testToken resolves to testUser.
func newRouter(d handler.Deps) http.Handler {
	if d.Sessions == nil {
		d.Sessions = &mockSessions{}
	}
	if ms, ok := d.Sessions.(*mockSessions); ok && ms.tokens == nil {
		ms.tokens = map[string]domain.Identity{testToken: testUser}
	}
	d.Log = quietLog()
	return handler.NewServer(d).Routes(handler.RouterOptions{
		CORSOrigins:   []string{"http://localhost:5173"},
		MaxBodyBytes:  1 << 20,
		AuthRateLimit: 100,
	})
}

func quietLog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// do sends a request, authenticated as testUser unless anonymous is set.
func do(t *testing.T, h http.Handler, method, path string, body any, anonymous bool) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if !anonymous {
		req.Header.Set("Authorization", "Bearer "+testToken)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// mustField returns the raw JSON of a top-level field.
func mustField(t *testing.T, body []byte, name string) json.RawMessage {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &m))
	raw, ok := m[name]
	require.True(t, ok, "field %q missing", name)
	return raw
}
