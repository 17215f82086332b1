package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/repo"
	"github.com/pkordes/travel-planner/testutil"
)

// newTestTx opens a transaction against the test database that is rolled
// back when the test finishes, giving free per-test isolation.
//
// Requires TEST_DATABASE_URL; TestMain applies the migrations.
func newTestTx(t *testing.T) pgx.Tx {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})
	return tx
}

// splitFixture is the destination from the "Split" scenario.
func splitFixture() domain.Destination {
	return domain.Destination{
		Name:        "Split",
		Description: "Coastal city",
		Category:    "History",
		Location:    domain.Location{Latitude: 43.5081, Longitude: 16.4402},
	}
}

// missingID is a UUID that is never inserted by any test.
var missingID = uuid.UUID{0xde, 0xad, 0xbe, 0xef, 0xde, 0xad, 0xbe, 0xef,
	0xde, 0xad, 0xbe, 0xef, 0xde, 0xad, 0xbe, 0xef}

// seedAccount inserts an account inside tx and returns its id.
func seedAccount(t *testing.T, tx pgx.Tx, email string) uuid.UUID {
	t.Helper()
	a, err := repo.NewAccountRepo(tx).Create(context.Background(), email, "not-a-real-hash")
	require.NoError(t, err)
	return a.ID
}
