package models

import (
	"time"
)

// Conference represents a research conference a user tracks.
type Conference struct {
	// ID is the unique identifier for the conference.
	ID uint64 `gorm:"primaryKey"`
	// Name is the conference name.
	Name string `gorm:"size:255;not null"`
	// StartDate and EndDate bound the conference itself.
	StartDate *time.Time
	EndDate   *time.Time
	// Location is a free-form venue description.
	Location string `gorm:"size:255"`
	// WebsiteURL points at the conference home page.
	WebsiteURL string `gorm:"size:255"`
	// AbstractDeadline is the abstract submission cutoff.
	AbstractDeadline *time.Time
	// PaperDeadline is the paper submission cutoff.
	PaperDeadline *time.Time
	// CreatedByUserID is the user who added the conference.
	CreatedByUserID uint64 `gorm:"index;not null"`
	// Tags are the labels attached to this conference.
	Tags []Tag `gorm:"many2many:conference_tags"`
	// CreatedAt is the timestamp when the conference was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the conference was last updated (managed by GORM).
	UpdatedAt time.Time
}
