package auth

import (
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/conftrack/conftrack/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to create test database")

	// A single connection keeps every session on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Credential{},
		&models.Tag{},
		&models.Conference{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func newTestDatabaseProvider(t *testing.T) (*DatabaseProvider, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)

	return NewDatabaseProvider(db, NewHasher(testHashParams)), db
}

func TestDatabaseProviderCreateUser(t *testing.T) {
	provider, db := newTestDatabaseProvider(t)

	user, err := provider.CreateUser(UserCreate{Username: "admin", Password: "Sup3rSecret!"})
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "admin", user.Username)
	assert.Equal(t, models.AuthSourceLocal, user.AuthSource)
	assert.True(t, user.Active)
	assert.Len(t, user.Tags, 5, "new users get the starter labels")

	// credential row written in the same transaction
	var cred models.Credential
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&cred).Error)
	assert.NotEqual(t, "Sup3rSecret!", cred.HashedPassword, "password must not be stored in plaintext")

	var tagCount int64
	require.NoError(t, db.Model(&models.Tag{}).Where("user_id = ?", user.ID).Count(&tagCount).Error)
	assert.EqualValues(t, 5, tagCount)
}

func TestDatabaseProviderCreateUserValidation(t *testing.T) {
	provider, _ := newTestDatabaseProvider(t)

	_, err := provider.CreateUser(UserCreate{Username: "nopass"})
	assert.ErrorIs(t, err, ErrMissingPassword)

	_, err = provider.CreateUser(UserCreate{Username: "admin", Password: "first"})
	require.NoError(t, err)

	_, err = provider.CreateUser(UserCreate{Username: "admin", Password: "second"})
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestDatabaseProviderConcurrentCreate(t *testing.T) {
	provider, db := newTestDatabaseProvider(t)

	var wg sync.WaitGroup

	errs := make([]error, 2)

	for i := range errs {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			_, errs[i] = provider.CreateUser(UserCreate{Username: "alice", Password: "pw"})
		}(i)
	}

	wg.Wait()

	var succeeded, duplicate int

	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		default:
			assert.ErrorIs(t, err, ErrUserExists)
			duplicate++
		}
	}

	assert.Equal(t, 1, succeeded, "exactly one signup must win")
	assert.Equal(t, 1, duplicate, "the loser must observe the existing user")

	// no orphaned rows either way
	var userCount, credCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.Credential{}).Count(&credCount).Error)
	assert.EqualValues(t, 1, userCount)
	assert.EqualValues(t, 1, credCount)
}

func TestDatabaseProviderAuthenticate(t *testing.T) {
	provider, db := newTestDatabaseProvider(t)

	created, err := provider.CreateUser(UserCreate{Username: "admin", Password: "Sup3rSecret!"})
	require.NoError(t, err)

	testCases := []struct {
		name     string
		username string
		password string
		wantUser bool
		wantErr  error
	}{
		{name: "correct password", username: "admin", password: "Sup3rSecret!", wantUser: true},
		{name: "wrong password", username: "admin", password: "wrong"},
		{name: "unknown user", username: "nobody", password: "whatever"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			user, err := provider.Authenticate(tc.username, tc.password)
			require.NoError(t, err)

			if tc.wantUser {
				require.NotNil(t, user)
				assert.Equal(t, created.ID, user.ID)
			} else {
				assert.Nil(t, user, "no-match must be (nil, nil), not an error")
			}
		})
	}

	// disabled account is an explicit error, collapsed later by the service
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", created.ID).Update("active", false).Error)

	_, err = provider.Authenticate("admin", "Sup3rSecret!")
	assert.ErrorIs(t, err, ErrUserDisabled)
}

func TestDatabaseProviderLookup(t *testing.T) {
	provider, _ := newTestDatabaseProvider(t)

	user, err := provider.Lookup("missing")
	require.NoError(t, err)
	assert.Nil(t, user)

	created, err := provider.CreateUser(UserCreate{Username: "admin", Password: "pw"})
	require.NoError(t, err)

	user, err = provider.Lookup("admin")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, created.ID, user.ID)
}

func TestCredentialStoreDuplicate(t *testing.T) {
	db := setupTestDB(t)
	store := NewCredentialStore(db)

	user := models.User{Active: true, Username: "admin", AuthSource: models.AuthSourceLocal}
	require.NoError(t, db.Create(&user).Error)

	require.NoError(t, store.Create(db, user.ID, "digest"))

	err := store.Create(db, user.ID, "digest2")
	assert.ErrorIs(t, err, ErrDuplicateCredential)
}

func TestCredentialStoreFindByUsername(t *testing.T) {
	db := setupTestDB(t)
	store := NewCredentialStore(db)

	cred, err := store.FindByUsername("missing")
	require.NoError(t, err)
	assert.Nil(t, cred)

	user := models.User{Active: true, Username: "admin", AuthSource: models.AuthSourceLocal}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, store.Create(db, user.ID, "digest"))

	cred, err = store.FindByUsername("admin")
	require.NoError(t, err)
	require.NotNil(t, cred)
	assert.Equal(t, user.ID, cred.UserID)
	assert.Equal(t, "digest", cred.HashedPassword)
}

func TestCredentialStoreDeleteForUser(t *testing.T) {
	db := setupTestDB(t)
	store := NewCredentialStore(db)

	user := models.User{Active: true, Username: "admin", AuthSource: models.AuthSourceLocal}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, store.Create(db, user.ID, "digest"))

	require.NoError(t, store.DeleteForUser(db, user.ID))

	cred, err := store.FindByUserID(user.ID)
	require.NoError(t, err)
	assert.Nil(t, cred)
}
