package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conftrack/conftrack/internal/db/models"
)

func newTestRouter(t *testing.T) (*Router, *DatabaseProvider, *fakeBinder) {
	t.Helper()

	db := setupTestDB(t)
	database := NewDatabaseProvider(db, NewHasher(testHashParams))
	binder := &fakeBinder{accept: true}
	directory := NewDirectoryProvider(db, binder)

	return NewRouter(database, directory, []string{"admin", "root"}), database, binder
}

func TestRouterReservedNeverTouchesDirectory(t *testing.T) {
	db := setupTestDB(t)
	database := NewDatabaseProvider(db, NewHasher(testHashParams))
	directory := NewDirectoryProvider(db, &panicBinder{t: t})
	router := NewRouter(database, directory, []string{"admin"})

	_, err := router.CreateUser(UserCreate{Username: "admin", Password: "Sup3rSecret!"})
	require.NoError(t, err)

	// succeeds on local credentials with the directory unusable
	user, err := router.Authenticate("admin", "Sup3rSecret!")
	require.NoError(t, err)
	require.NotNil(t, user)

	// fails on local credentials with the directory untouched
	user, err = router.Authenticate("admin", "wrong")
	require.NoError(t, err)
	assert.Nil(t, user)

	// lookup is local as well
	user, err = router.Lookup("admin")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, models.AuthSourceLocal, user.AuthSource)
}

func TestRouterNonReservedGoesToDirectory(t *testing.T) {
	router, _, binder := newTestRouter(t)

	user, err := router.Authenticate("bob", "pw")
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Equal(t, models.AuthSourceDirectory, user.AuthSource)
	assert.Equal(t, 1, binder.calls)
}

func TestRouterNonReservedCreateRefused(t *testing.T) {
	router, _, binder := newTestRouter(t)

	usernames := []string{"bob", "alice", "Admin"} // reserved set is case-sensitive

	for _, username := range usernames {
		_, err := router.CreateUser(UserCreate{Username: username, Password: "pw"})
		assert.ErrorIs(t, err, ErrCreationNotSupported, "username %q", username)
	}

	assert.Zero(t, binder.calls, "creation never involves the directory")
}

func TestRouterDatabaseModeRoutesEverythingLocally(t *testing.T) {
	db := setupTestDB(t)
	database := NewDatabaseProvider(db, NewHasher(testHashParams))
	router := NewRouter(database, nil, nil)

	user, err := router.CreateUser(UserCreate{Username: "bob", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, models.AuthSourceLocal, user.AuthSource)

	authed, err := router.Authenticate("bob", "pw")
	require.NoError(t, err)
	require.NotNil(t, authed)
	assert.Equal(t, user.ID, authed.ID)
}
