package session_test

import (
	"testing"

	"github.com/mauv0809/golf-match-manager/internal/database"
	"github.com/mauv0809/golf-match-manager/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a migrated in-memory SQLite database for testing.
func setupTestDB(t *testing.T) session.Store {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	t.Cleanup(teardown)

	return session.NewStore(db)
}

func TestSessionLifecycle(t *testing.T) {
	store := setupTestDB(t)

	token, err := store.Create("alice@example.com")
	require.NoError(t, err)
	assert.Len(t, token, 36)

	email, err := store.Lookup(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", email)

	other, err := store.Create("alice@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, token, other, "every login gets its own token")

	require.NoError(t, store.Delete(token))
	_, err = store.Lookup(token)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	_, err = store.Lookup(other)
	assert.NoError(t, err, "logging out one session keeps the others")

	require.NoError(t, store.Delete("unknown-token"))
}

func TestDeleteAllForUser(t *testing.T) {
	store := setupTestDB(t)

	a1, err := store.Create("alice@example.com")
	require.NoError(t, err)
	a2, err := store.Create("alice@example.com")
	require.NoError(t, err)
	b, err := store.Create("bob@example.com")
	require.NoError(t, err)

	require.NoError(t, store.DeleteAllForUser("alice@example.com"))

	for _, token := range []string{a1, a2} {
		_, err := store.Lookup(token)
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	}
	email, err := store.Lookup(b)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", email)
}
