package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/repo"
)

func TestReservationRepo_CreateThenList(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewReservationRepo(tx)
	ctx := context.Background()
	owner := seedAccount(t, tx, "ana@example.com")

	id, err := r.Create(ctx, domain.Reservation{
		Destination: "Split",
		Date:        "12.05.2025",
		Type:        "Hotel",
		UserID:      owner,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	all, err := r.List(ctx)
	require.NoError(t, err)

	var found *domain.Reservation
	for i := range all {
		if all[i].ID == id {
			found = &all[i]
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, "Split", found.Destination)
	assert.Equal(t, "12.05.2025", found.Date)
	assert.Equal(t, "Hotel", found.Type)
	assert.Equal(t, owner, found.UserID)
	assert.False(t, found.CreatedAt.IsZero())
}

func TestReservationRepo_ListByUser(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewReservationRepo(tx)
	ctx := context.Background()
	ana := seedAccount(t, tx, "ana@example.com")
	ivo := seedAccount(t, tx, "ivo@example.com")

	_, err := r.Create(ctx, domain.Reservation{Destination: "Split", Date: "1.6.2025", Type: "Hotel", UserID: ana})
	require.NoError(t, err)
	_, err = r.Create(ctx, domain.Reservation{Destination: "Hvar", Date: "2.6.2025", Type: "Ferry", UserID: ivo})
	require.NoError(t, err)

	got, err := r.ListByUser(ctx, ana)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Split", got[0].Destination)
}

func TestReservationRepo_ListByUser_Empty(t *testing.T) {
	r := repo.NewReservationRepo(newTestTx(t))

	got, err := r.ListByUser(context.Background(), missingID)

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestReservationRepo_Create_UnknownOwner(t *testing.T) {
	r := repo.NewReservationRepo(newTestTx(t))

	_, err := r.Create(context.Background(), domain.Reservation{
		Destination: "Split", Date: "1.6.2025", Type: "Hotel", UserID: missingID,
	})

	assert.ErrorIs(t, err, domain.ErrWrite)
}
