package conference

import (
	"testing"
	"time"

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

	err = db.AutoMigrate(&models.User{}, &models.Tag{}, &models.Conference{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func seedUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := &models.User{Active: true, Username: "admin", AuthSource: models.AuthSourceLocal}
	require.NoError(t, db.Create(user).Error)

	return user
}

func TestCreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)

	start := time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)

	created, err := Create(db, &models.Conference{
		Name:            "NeurIPS",
		Location:        "Vancouver",
		WebsiteURL:      "https://neurips.cc",
		StartDate:       &start,
		CreatedByUserID: user.ID,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := Get(db, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "NeurIPS", got.Name)
	assert.Equal(t, "Vancouver", got.Location)
	require.NotNil(t, got.StartDate)
	assert.True(t, got.StartDate.Equal(start))

	_, err = Get(db, 9999)
	assert.ErrorIs(t, err, ErrConferenceNotFound)

	_, err = Create(db, &models.Conference{CreatedByUserID: user.ID})
	assert.ErrorIs(t, err, ErrConferenceNameEmpty)
}

func TestList(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)

	for _, name := range []string{"ICML", "ICLR"} {
		_, err := Create(db, &models.Conference{Name: name, CreatedByUserID: user.ID})
		require.NoError(t, err)
	}

	confs, err := List(db)
	require.NoError(t, err)
	assert.Len(t, confs, 2)
}

func TestUpdate(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)

	created, err := Create(db, &models.Conference{Name: "ICML", CreatedByUserID: user.ID})
	require.NoError(t, err)

	updated, err := Update(db, created.ID, &models.Conference{Name: "ICML 2027", Location: "Vienna"})
	require.NoError(t, err)
	assert.Equal(t, "ICML 2027", updated.Name)
	assert.Equal(t, "Vienna", updated.Location)
	assert.Equal(t, user.ID, updated.CreatedByUserID, "creator survives updates")

	_, err = Update(db, 9999, &models.Conference{Name: "x"})
	assert.ErrorIs(t, err, ErrConferenceNotFound)
}

func TestDelete(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)

	created, err := Create(db, &models.Conference{Name: "doomed", CreatedByUserID: user.ID})
	require.NoError(t, err)

	require.NoError(t, Delete(db, created.ID))

	_, err = Get(db, created.ID)
	assert.ErrorIs(t, err, ErrConferenceNotFound)

	assert.ErrorIs(t, Delete(db, created.ID), ErrConferenceNotFound)
}

func TestAttachDetachTag(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)

	tag := &models.Tag{Name: "Submitted", Color: "#f59e0b", UserID: user.ID}
	require.NoError(t, db.Create(tag).Error)

	created, err := Create(db, &models.Conference{Name: "ICML", CreatedByUserID: user.ID})
	require.NoError(t, err)

	require.NoError(t, AttachTag(db, created.ID, tag))

	got, err := Get(db, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Tags, 1)
	assert.Equal(t, tag.ID, got.Tags[0].ID)

	require.NoError(t, DetachTag(db, created.ID, tag))

	got, err = Get(db, created.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Tags)
}
