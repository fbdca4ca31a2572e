package config

import (
	"github.com/conftrack/conftrack/internal/logger"
)

// Auth mode values.
const (
	// AuthModeDatabase authenticates every username against the local database.
	AuthModeDatabase = "database"
	// AuthModeDirectory authenticates reserved usernames against the local
	// database and everyone else against the external directory.
	AuthModeDirectory = "directory"
)

// Directory holds the external LDAP directory settings.
type Directory struct {
	// ServerURL is the directory server address (ldap:// or ldaps://).
	ServerURL string
	// DNTemplate is the bind DN pattern containing a {username} placeholder.
	DNTemplate string
	// TimeoutSeconds bounds directory dials and binds.
	TimeoutSeconds int
}

// FirstUser is the superuser account seeded into an empty database.
type FirstUser struct {
	Username string
	Password string
}

// Auth holds the authentication settings.
type Auth struct {
	Mode              string   // database or directory
	ReservedUsernames []string // usernames always handled by the database provider
	TokenSecret       string   // symmetric signing key for bearer tokens
	TokenTTLHours     int      // bearer token lifetime
	Directory         Directory
	FirstUser         FirstUser
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Auth      Auth
	Webserver Webserver
}

// Webserver implement webserver settings.
type Webserver struct {
	Domain       string // domain name for the webserver
	Port         int    // listening port for the webserver
	ShutDownTime int    // wait time for shutdown
	URL          string // base url for the webserver
}
