// Package models contains database model definitions.
package models

import (
	"time"
)

// AuthSource represents the authentication source for a user account.
// It indicates how the user authenticates (local database or external directory).
type AuthSource string

const (
	// AuthSourceLocal indicates the user authenticates with a local database password.
	AuthSourceLocal AuthSource = "local"
	// AuthSourceDirectory indicates the user authenticates via the external LDAP directory.
	AuthSourceDirectory AuthSource = "directory"
)

// User represents a user account in the system.
// Users can authenticate via the local database or the external directory.
// Directory users are provisioned on first successful bind and never carry
// a local credential row.
type User struct {
	// ID is the unique identifier for the user.
	ID uint64 `gorm:"primaryKey"`
	// Active indicates whether the user account is active and can log in.
	Active bool
	// Username is the unique username for login. Comparison is case-sensitive.
	Username string `gorm:"unique;size:255;not null"`
	// Superuser indicates elevated privileges.
	Superuser bool
	// AuthSource indicates how this user authenticates (local or directory).
	AuthSource AuthSource `gorm:"type:varchar(20);not null;default:'local'"`
	// Tags are the user's categorization labels.
	Tags []Tag `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	// CreatedAt is the timestamp when the user was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the user was last updated (managed by GORM).
	UpdatedAt time.Time
}
