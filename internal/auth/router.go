package auth

import (
	"github.com/conftrack/conftrack/internal/db/models"
)

// Router deterministically selects one concrete provider per username.
// Usernames in the reserved set are always handled by the database
// provider; everyone else is governed by the directory. The reserved set is
// configuration, fixed for the process lifetime, and is the sole trust
// boundary between locally administered accounts and directory accounts.
type Router struct {
	database  Provider
	directory Provider
	reserved  map[string]struct{}
}

// NewRouter creates a provider router. A nil directory provider (database
// mode) routes every username to the database provider.
func NewRouter(database, directory Provider, reservedUsernames []string) *Router {
	reserved := make(map[string]struct{}, len(reservedUsernames))
	for _, username := range reservedUsernames {
		reserved[username] = struct{}{}
	}

	return &Router{
		database:  database,
		directory: directory,
		reserved:  reserved,
	}
}

// handledLocally reports whether the username must be served by the
// database provider. The check never depends on request content beyond the
// username itself.
func (r *Router) handledLocally(username string) bool {
	if r.directory == nil {
		return true
	}

	_, ok := r.reserved[username]

	return ok
}

// Authenticate routes the credential check. The reserved-set membership is
// decided before anything else so a reserved username never reaches the
// directory, even when the directory would accept it.
func (r *Router) Authenticate(username, password string) (*models.User, error) {
	if r.handledLocally(username) {
		return r.database.Authenticate(username, password)
	}

	return r.directory.Authenticate(username, password)
}

// Lookup routes a username resolution.
func (r *Router) Lookup(username string) (*models.User, error) {
	if r.handledLocally(username) {
		return r.database.Lookup(username)
	}

	return r.directory.Lookup(username)
}

// CreateUser routes account creation. Non-reserved usernames are refused
// outright; directory-side user management is out of scope regardless of
// what the directory itself might allow.
func (r *Router) CreateUser(uc UserCreate) (*models.User, error) {
	if r.handledLocally(uc.Username) {
		return r.database.CreateUser(uc)
	}

	return nil, ErrCreationNotSupported
}
