// Package conference provides CRUD operations for tracked conferences.
package conference

import (
	"errors"

	"gorm.io/gorm"

	"github.com/conftrack/conftrack/internal/db/models"
)

var (
	// ErrConferenceNotFound is returned when a conference is not found.
	ErrConferenceNotFound = errors.New("conference not found")
	// ErrConferenceNameEmpty is returned when attempting to create a conference with an empty name.
	ErrConferenceNameEmpty = errors.New("conference name cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves a conference by id, with its tags preloaded.
func Get(db *gorm.DB, id uint64) (*models.Conference, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var conf models.Conference

	result := db.Preload("Tags").First(&conf, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrConferenceNotFound
		}

		return nil, result.Error
	}

	return &conf, nil
}

// List retrieves all conferences with their tags preloaded.
func List(db *gorm.DB) ([]models.Conference, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var confs []models.Conference

	result := db.Preload("Tags").Order("id").Find(&confs)
	if result.Error != nil {
		return nil, result.Error
	}

	return confs, nil
}

// Create creates a new conference.
func Create(db *gorm.DB, conf *models.Conference) (*models.Conference, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if conf.Name == "" {
		return nil, ErrConferenceNameEmpty
	}

	result := db.Create(conf)
	if result.Error != nil {
		return nil, result.Error
	}

	return conf, nil
}

// Update applies changed fields to an existing conference.
func Update(db *gorm.DB, id uint64, updates *models.Conference) (*models.Conference, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	conf, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	if updates.Name == "" {
		updates.Name = conf.Name
	}

	updates.ID = conf.ID
	updates.CreatedByUserID = conf.CreatedByUserID
	updates.CreatedAt = conf.CreatedAt

	result := db.Omit("Tags").Save(updates)
	if result.Error != nil {
		return nil, result.Error
	}

	return Get(db, id)
}

// Delete deletes a conference and its tag attachments.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM conference_tags WHERE conference_id = ?", id).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Conference{}, id)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return ErrConferenceNotFound
		}

		return nil
	})
}

// AttachTag links one of the user's tags to a conference.
func AttachTag(db *gorm.DB, id uint64, tag *models.Tag) error {
	if db == nil {
		return ErrDBNil
	}

	conf, err := Get(db, id)
	if err != nil {
		return err
	}

	return db.Model(conf).Association("Tags").Append(tag)
}

// DetachTag unlinks a tag from a conference.
func DetachTag(db *gorm.DB, id uint64, tag *models.Tag) error {
	if db == nil {
		return ErrDBNil
	}

	conf, err := Get(db, id)
	if err != nil {
		return err
	}

	return db.Model(conf).Association("Tags").Delete(tag)
}
