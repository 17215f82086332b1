package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/service"
)

func newDestinationService(r *mockDestinationRepo) *service.DestinationService {
	return service.NewDestinationService(r, discardLogger())
}

// ---- Create ----------------------------------------------------------------

func TestDestinationService_Create_OK(t *testing.T) {
	want := uuid.New()
	var stored domain.Destination
	svc := newDestinationService(&mockDestinationRepo{
		create: func(_ context.Context, d domain.Destination) (uuid.UUID, error) {
			stored = d
			return want, nil
		},
	})

	got, err := svc.Create(context.Background(), splitDraft().WithImageURL("https://cdn/x.jpg"))

	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, "Split", stored.Name)
	assert.Equal(t, domain.Location{Latitude: 43.5081, Longitude: 16.4402}, stored.Location)
	assert.Equal(t, "https://cdn/x.jpg", stored.ImageURL)
}

func TestDestinationService_Create_InvalidDraftNeverReachesRepo(t *testing.T) {
	svc := newDestinationService(&mockDestinationRepo{
		create: func(context.Context, domain.Destination) (uuid.UUID, error) {
			t.Fatal("repo.Create must not be called for an invalid draft")
			return uuid.Nil, nil
		},
	})

	missing := splitDraft()
	missing.Category = " "
	_, err := svc.Create(context.Background(), missing)
	assert.ErrorIs(t, err, domain.ErrMissingField)

	bad := splitDraft()
	bad.Longitude = "east"
	_, err = svc.Create(context.Background(), bad)
	assert.ErrorIs(t, err, domain.ErrNotNumeric)
}

func TestDestinationService_Create_WriteError(t *testing.T) {
	svc := newDestinationService(&mockDestinationRepo{
		create: func(context.Context, domain.Destination) (uuid.UUID, error) {
			return uuid.Nil, domain.ErrWrite
		},
	})

	_, err := svc.Create(context.Background(), splitDraft())
	assert.ErrorIs(t, err, domain.ErrWrite)
}

// ---- List / Refresh --------------------------------------------------------

func TestDestinationService_List_NilBecomesEmpty(t *testing.T) {
	svc := newDestinationService(&mockDestinationRepo{
		list: func(context.Context) ([]domain.Destination, error) { return nil, nil },
	})

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDestinationService_Refresh_ReadErrorIsEmptyList(t *testing.T) {
	svc := newDestinationService(&mockDestinationRepo{
		list: func(context.Context) ([]domain.Destination, error) { return nil, domain.ErrRead },
	})

	got := svc.Refresh(context.Background())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

// ---- Update ----------------------------------------------------------------

func TestDestinationService_Update_OK(t *testing.T) {
	id := uuid.New()
	var gotID uuid.UUID
	svc := newDestinationService(&mockDestinationRepo{
		update: func(_ context.Context, i uuid.UUID, d domain.Destination) error {
			gotID = i
			assert.Equal(t, "Coastal city", d.Description)
			return nil
		},
	})

	require.NoError(t, svc.Update(context.Background(), id, splitDraft()))
	assert.Equal(t, id, gotID)
}

func TestDestinationService_Update_NotFound(t *testing.T) {
	svc := newDestinationService(&mockDestinationRepo{
		update: func(context.Context, uuid.UUID, domain.Destination) error { return domain.ErrNotFound },
	})

	err := svc.Update(context.Background(), uuid.New(), splitDraft())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDestinationService_Update_ValidationFirst(t *testing.T) {
	svc := newDestinationService(&mockDestinationRepo{
		update: func(context.Context, uuid.UUID, domain.Destination) error {
			t.Fatal("repo.Update must not be called for an invalid draft")
			return nil
		},
	})

	draft := splitDraft()
	draft.Latitude = ""
	err := svc.Update(context.Background(), uuid.New(), draft)
	assert.ErrorIs(t, err, domain.ErrMissingField)
}

// ---- Delete ----------------------------------------------------------------

func TestDestinationService_Delete_SecondDeleteIsNotFound(t *testing.T) {
	deleted := map[uuid.UUID]bool{}
	svc := newDestinationService(&mockDestinationRepo{
		delete: func(_ context.Context, id uuid.UUID) error {
			if deleted[id] {
				return domain.ErrNotFound
			}
			deleted[id] = true
			return nil
		},
	})

	id := uuid.New()
	require.NoError(t, svc.Delete(context.Background(), id))
	assert.ErrorIs(t, svc.Delete(context.Background(), id), domain.ErrNotFound)
}

// ---- Nearby ----------------------------------------------------------------

func TestDestinationService_Nearby(t *testing.T) {
	t0 := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	svc := newDestinationService(&mockDestinationRepo{
		list: func(context.Context) ([]domain.Destination, error) {
			return []domain.Destination{
				{ID: uuid.New(), Name: "Zagreb", Location: domain.Location{Latitude: 45.815, Longitude: 15.9819}, CreatedAt: t0},
				{ID: uuid.New(), Name: "Trogir", Location: domain.Location{Latitude: 43.5169, Longitude: 16.2514}, CreatedAt: t0},
				{ID: uuid.New(), Name: "Split", Location: domain.Location{Latitude: 43.5081, Longitude: 16.4402}, CreatedAt: t0},
			}, nil
		},
	})

	hits, err := svc.Nearby(context.Background(), 43.5081, 16.4402, 50)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "Split", hits[0].Destination.Name)
	assert.Equal(t, "Trogir", hits[1].Destination.Name)
}

func TestDestinationService_Nearby_Errors(t *testing.T) {
	readErr := errors.New("connection reset")
	svc := newDestinationService(&mockDestinationRepo{
		list: func(context.Context) ([]domain.Destination, error) {
			return nil, errors.Join(domain.ErrRead, readErr)
		},
	})
	_, err := svc.Nearby(context.Background(), 0, 0, 10)
	assert.ErrorIs(t, err, domain.ErrRead)
	assert.ErrorIs(t, err, readErr)

	svc = newDestinationService(&mockDestinationRepo{
		list: func(context.Context) ([]domain.Destination, error) { return nil, nil },
	})
	_, err = svc.Nearby(context.Background(), 0, 0, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}
