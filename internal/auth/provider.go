package auth

import (
	"github.com/conftrack/conftrack/internal/db/models"
)

// UserCreate carries the attributes for registering a new account.
type UserCreate struct {
	Username  string
	Password  string
	Superuser bool
}

// Provider is the capability contract implemented by every authentication
// backend. The variant set is closed: DatabaseProvider and
// DirectoryProvider are the only implementations, with Router dispatching
// between them per username.
type Provider interface {
	// Authenticate verifies a username/password pair and returns the
	// resolved user. A plain no-match (unknown user, wrong password,
	// rejected or failed directory bind) is (nil, nil), not an error.
	Authenticate(username, password string) (*models.User, error)

	// Lookup resolves a username to its local user record.
	// Returns (nil, nil) when no record exists.
	Lookup(username string) (*models.User, error)

	// CreateUser registers a new account.
	CreateUser(uc UserCreate) (*models.User, error)
}
