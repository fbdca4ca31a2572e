package auth

import (
	"errors"

	"gorm.io/gorm"

	"github.com/conftrack/conftrack/internal/db/models"
)

// DatabaseProvider authenticates users against locally stored credentials
// and owns local account creation.
type DatabaseProvider struct {
	db     *gorm.DB
	hasher *Hasher
	creds  *CredentialStore
}

// NewDatabaseProvider creates a new local database authentication provider.
func NewDatabaseProvider(db *gorm.DB, hasher *Hasher) *DatabaseProvider {
	return &DatabaseProvider{
		db:     db,
		hasher: hasher,
		creds:  NewCredentialStore(db),
	}
}

// Authenticate verifies a password against the stored credential.
// An unknown username, a user without a credential row, or a wrong password
// all short-circuit to (nil, nil).
func (p *DatabaseProvider) Authenticate(username, password string) (*models.User, error) {
	var user models.User

	err := p.db.Where("username = ?", username).First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, storageErr("failed to query user", err)
	}

	if !user.Active {
		return nil, ErrUserDisabled
	}

	cred, err := p.creds.FindByUserID(user.ID)
	if err != nil {
		return nil, err
	}

	if cred == nil || !p.hasher.Verify(password, cred.HashedPassword) {
		return nil, nil
	}

	return &user, nil
}

// Lookup retrieves a user by username.
func (p *DatabaseProvider) Lookup(username string) (*models.User, error) {
	var user models.User

	err := p.db.Where("username = ?", username).First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, storageErr("failed to query user", err)
	}

	return &user, nil
}

// CreateUser registers a new local account. The User row, the starter tags
// and the Credential row are written in one transaction; any failure rolls
// all of them back. Races on the same username are resolved by the unique
// constraint on users.username, not by the pre-check.
func (p *DatabaseProvider) CreateUser(uc UserCreate) (*models.User, error) {
	if uc.Password == "" {
		return nil, ErrMissingPassword
	}

	existing, err := p.Lookup(uc.Username)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		return nil, ErrUserExists
	}

	hashedPassword, err := p.hasher.Hash(uc.Password)
	if err != nil {
		return nil, storageErr("failed to hash password", err)
	}

	user := models.User{
		Active:     true,
		Username:   uc.Username,
		Superuser:  uc.Superuser,
		AuthSource: models.AuthSourceLocal,
	}

	var tags []models.Tag

	err = p.db.Transaction(func(tx *gorm.DB) error {
		if errCreate := tx.Create(&user).Error; errCreate != nil {
			return errCreate
		}

		tags = models.DefaultTags(user.ID)
		if errTags := tx.Create(&tags).Error; errTags != nil {
			return errTags
		}

		return p.creds.Create(tx, user.ID, hashedPassword)
	})

	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}

		if errors.Is(err, ErrDuplicateCredential) || errors.Is(err, ErrStorage) {
			return nil, err
		}

		return nil, storageErr("failed to create user", err)
	}

	user.Tags = tags

	return &user, nil
}
