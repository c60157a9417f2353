//go:build integration
// +build integration

package postgres_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"kinofav/internal/domain"
	"kinofav/internal/migrations"
	"kinofav/internal/repository/postgres"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupPostgres starts a PostgreSQL container, applies the embedded
// migrations, and returns a database connection.
func setupPostgres(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForAll(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			wait.ForListeningPort("5432/tcp"),
		).WithDeadline(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("postgres://test:test@%s:%s/testdb?sslmode=disable", host, port.Port())

	db, err := sql.Open("postgres", connStr)
	require.NoError(t, err, "failed to connect to PostgreSQL")

	goose.SetBaseFS(migrations.FS)
	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.UpContext(ctx, db, "."), "failed to apply migrations")

	cleanup := func() {
		db.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return db, cleanup
}

func createAccount(t *testing.T, db *sql.DB, username string) *domain.Account {
	t.Helper()

	repo := postgres.NewAccountRepository(db)
	account := &domain.Account{
		Username:     username,
		PasswordHash: "$2a$10$test.hash.for.testing.purposes.only",
	}
	require.NoError(t, repo.Create(context.Background(), account))
	return account
}

func TestAccountRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db, cleanup := setupPostgres(t)
	defer cleanup()

	ctx := context.Background()
	repo := postgres.NewAccountRepository(db)

	t.Run("create_and_fetch", func(t *testing.T) {
		account := createAccount(t, db, "alice")
		assert.NotZero(t, account.ID)
		assert.False(t, account.CreatedAt.IsZero())

		byName, err := repo.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, account.ID, byName.ID)

		byID, err := repo.GetByID(ctx, account.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", byID.Username)
	})

	t.Run("duplicate_username", func(t *testing.T) {
		createAccount(t, db, "bob")

		err := repo.Create(ctx, &domain.Account{
			Username:     "bob",
			PasswordHash: "another-hash",
		})
		assert.ErrorIs(t, err, domain.ErrAccountExists)
	})

	t.Run("missing_account", func(t *testing.T) {
		_, err := repo.GetByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, domain.ErrAccountNotFound)

		_, err = repo.GetByID(ctx, 999999)
		assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	})
}

func TestFavoriteRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db, cleanup := setupPostgres(t)
	defer cleanup()

	ctx := context.Background()
	repo := postgres.NewFavoriteRepository(db)

	owner := createAccount(t, db, "owner")
	other := createAccount(t, db, "other")

	t.Run("add_is_idempotent", func(t *testing.T) {
		favorite := &domain.Favorite{
			AccountID:   owner.ID,
			FilmID:      301,
			Name:        "The Matrix",
			Description: "Simulated reality",
		}

		created, err := repo.CreateIfAbsent(ctx, favorite)
		require.NoError(t, err)
		assert.True(t, created)
		assert.NotZero(t, favorite.ID)

		// Repeat add must not create a second row
		again := &domain.Favorite{AccountID: owner.ID, FilmID: 301, Name: "The Matrix"}
		created, err = repo.CreateIfAbsent(ctx, again)
		require.NoError(t, err)
		assert.False(t, created)

		favorites, err := repo.ListByAccount(ctx, owner.ID)
		require.NoError(t, err)
		assert.Len(t, favorites, 1)
	})

	t.Run("same_film_for_two_accounts", func(t *testing.T) {
		created, err := repo.CreateIfAbsent(ctx, &domain.Favorite{
			AccountID: other.ID,
			FilmID:    301,
			Name:      "The Matrix",
		})
		require.NoError(t, err)
		assert.True(t, created, "uniqueness is per account, not per film")
	})

	t.Run("delete_scoped_to_account", func(t *testing.T) {
		// Deleting owner's entry must not touch other's entry for the same film
		count, err := repo.DeleteByFilm(ctx, owner.ID, 301)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		exists, err := repo.Exists(ctx, other.ID, 301)
		require.NoError(t, err)
		assert.True(t, exists)

		// Second delete finds nothing
		count, err = repo.DeleteByFilm(ctx, owner.ID, 301)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})

	t.Run("list_in_insertion_order", func(t *testing.T) {
		for _, filmID := range []int64{501, 502, 503} {
			_, err := repo.CreateIfAbsent(ctx, &domain.Favorite{
				AccountID: owner.ID,
				FilmID:    filmID,
				Name:      fmt.Sprintf("Film %d", filmID),
			})
			require.NoError(t, err)
		}

		favorites, err := repo.ListByAccount(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, favorites, 3)
		assert.Equal(t, int64(501), favorites[0].FilmID)
		assert.Equal(t, int64(502), favorites[1].FilmID)
		assert.Equal(t, int64(503), favorites[2].FilmID)
	})

	t.Run("cascade_on_account_delete", func(t *testing.T) {
		_, err := db.ExecContext(ctx, "DELETE FROM accounts WHERE id = $1", other.ID)
		require.NoError(t, err)

		favorites, err := repo.ListByAccount(ctx, other.ID)
		require.NoError(t, err)
		assert.Empty(t, favorites)
	})
}
