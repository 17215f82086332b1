package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/repo"
)

func TestAccountRepo_CreateAndGetByEmail(t *testing.T) {
	r := repo.NewAccountRepo(newTestTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, "Ana@Example.com", "hash")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", created.Email, "emails are stored lowercased")

	got, err := r.GetByEmail(ctx, "ANA@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "hash", got.PasswordHash)
}

func TestAccountRepo_GetByEmail_NotFound(t *testing.T) {
	r := repo.NewAccountRepo(newTestTx(t))

	_, err := r.GetByEmail(context.Background(), "nobody@example.com")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAccountRepo_Delete(t *testing.T) {
	r := repo.NewAccountRepo(newTestTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, "ana@example.com", "hash")
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, created.ID))

	_, err = r.GetByEmail(ctx, "ana@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = r.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "second delete finds nothing")
}

// The duplicate insert aborts the transaction, so it must be the last statement.
func TestAccountRepo_Create_Duplicate(t *testing.T) {
	r := repo.NewAccountRepo(newTestTx(t))
	ctx := context.Background()

	_, err := r.Create(ctx, "ana@example.com", "hash")
	require.NoError(t, err)

	_, err = r.Create(ctx, "ANA@example.com", "other")

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestProfileRepo_CreateAndGet(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewProfileRepo(tx)
	ctx := context.Background()
	id := seedAccount(t, tx, "ana@example.com")

	created, err := r.Create(ctx, domain.Profile{ID: id, Name: "Ana", Surname: "Horvat", Email: "ana@example.com"})
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := r.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)
	assert.Equal(t, "Horvat", got.Surname)
}

func TestProfileRepo_GetByID_NotFound(t *testing.T) {
	r := repo.NewProfileRepo(newTestTx(t))

	_, err := r.GetByID(context.Background(), missingID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
