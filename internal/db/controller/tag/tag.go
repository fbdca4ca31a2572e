// Package tag provides CRUD operations for user-owned conference tags.
package tag

import (
	"errors"

	"gorm.io/gorm"

	"github.com/conftrack/conftrack/internal/db/models"
)

const (
	idAndUserQueryPattern = "id = ? AND user_id = ?"
)

var (
	// ErrTagNotFound is returned when a tag is not found or belongs to another user.
	ErrTagNotFound = errors.New("tag not found")
	// ErrTagNameEmpty is returned when attempting to create/update a tag with an empty name.
	ErrTagNameEmpty = errors.New("tag name cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves one of a user's tags by id.
func Get(db *gorm.DB, userID, id uint64) (*models.Tag, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var tag models.Tag

	result := db.Where(idAndUserQueryPattern, id, userID).First(&tag)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}

		return nil, result.Error
	}

	return &tag, nil
}

// List retrieves all tags owned by a user.
func List(db *gorm.DB, userID uint64) ([]models.Tag, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var tags []models.Tag

	result := db.Where("user_id = ?", userID).Order("id").Find(&tags)
	if result.Error != nil {
		return nil, result.Error
	}

	return tags, nil
}

// Create creates a new tag for a user.
func Create(db *gorm.DB, userID uint64, name, color string) (*models.Tag, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if name == "" {
		return nil, ErrTagNameEmpty
	}

	tag := &models.Tag{
		Name:   name,
		Color:  color,
		UserID: userID,
	}

	result := db.Create(tag)
	if result.Error != nil {
		return nil, result.Error
	}

	return tag, nil
}

// Update updates the name and/or color of one of a user's tags.
// Empty arguments leave the corresponding field unchanged.
func Update(db *gorm.DB, userID, id uint64, name, color string) (*models.Tag, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	tag, err := Get(db, userID, id)
	if err != nil {
		return nil, err
	}

	if name != "" {
		tag.Name = name
	}

	if color != "" {
		tag.Color = color
	}

	result := db.Save(tag)
	if result.Error != nil {
		return nil, result.Error
	}

	return tag, nil
}

// Delete deletes one of a user's tags and its conference attachments.
func Delete(db *gorm.DB, userID, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where(idAndUserQueryPattern, id, userID).Delete(&models.Tag{})
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return ErrTagNotFound
		}

		return tx.Exec("DELETE FROM conference_tags WHERE tag_id = ?", id).Error
	})
}
