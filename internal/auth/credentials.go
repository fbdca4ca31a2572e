package auth

import (
	"errors"

	"gorm.io/gorm"

	"github.com/conftrack/conftrack/internal/db/models"
)

// CredentialStore persists local password credentials, one row per
// database-provider user.
type CredentialStore struct {
	db *gorm.DB
}

// NewCredentialStore creates a credential store on the given database.
func NewCredentialStore(db *gorm.DB) *CredentialStore {
	return &CredentialStore{db: db}
}

// FindByUsername retrieves the credential belonging to the named user.
// Returns (nil, nil) when the user has no credential row.
func (s *CredentialStore) FindByUsername(username string) (*models.Credential, error) {
	var cred models.Credential

	err := s.db.
		Joins("JOIN users ON users.id = credentials.user_id").
		Where("users.username = ?", username).
		First(&cred).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, storageErr("failed to query credential", err)
	}

	return &cred, nil
}

// FindByUserID retrieves the credential for a user id.
// Returns (nil, nil) when no credential row exists.
func (s *CredentialStore) FindByUserID(userID uint64) (*models.Credential, error) {
	var cred models.Credential

	err := s.db.Where("user_id = ?", userID).First(&cred).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, storageErr("failed to query credential", err)
	}

	return &cred, nil
}

// Create inserts a credential for a user inside the caller's transaction so
// the row commits or rolls back together with the owning User row.
// A pre-existing row yields ErrDuplicateCredential.
func (s *CredentialStore) Create(tx *gorm.DB, userID uint64, hashedPassword string) error {
	cred := models.Credential{
		UserID:         userID,
		HashedPassword: hashedPassword,
		Source:         models.AuthSourceLocal,
	}

	err := tx.Create(&cred).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateCredential
		}

		return storageErr("failed to create credential", err)
	}

	return nil
}

// DeleteForUser removes the credential owned by a user, if any.
func (s *CredentialStore) DeleteForUser(tx *gorm.DB, userID uint64) error {
	if err := tx.Where("user_id = ?", userID).Delete(&models.Credential{}).Error; err != nil {
		return storageErr("failed to delete credential", err)
	}

	return nil
}
